// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mcpserver exposes conversion and direct reads as MCP tools over
// stdio.
package mcpserver

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/pdiddy/mdbridge/pkg/types"
)

const serverName = "mdbridge"

// Converter runs a conversion request.
type Converter interface {
	ToMarkdown(ctx context.Context, req types.ConversionRequest) (types.MarkdownResult, error)
}

// Getter reads an existing Markdown file.
type Getter interface {
	Get(path string) (types.MarkdownResult, error)
}

// Server holds the handlers behind the MCP tools.
type Server struct {
	conv   Converter
	get    Getter
	logger *slog.Logger
}

// New returns a Server. A nil logger uses slog.Default().
func New(conv Converter, get Getter, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{conv: conv, get: get, logger: logger}
}

// fileTools are format-named aliases of to-markdown that take only a
// local file path.
var fileTools = []struct {
	name string
	desc string
}{
	{"pdf-to-markdown", "Convert a PDF document to Markdown."},
	{"docx-to-markdown", "Convert a Word document to Markdown."},
	{"xlsx-to-markdown", "Convert an Excel workbook to Markdown tables."},
	{"pptx-to-markdown", "Convert a PowerPoint presentation to Markdown."},
	{"image-to-markdown", "Convert an image to Markdown using its metadata and OCR text."},
	{"audio-to-markdown", "Convert an audio file to Markdown using its metadata and transcript."},
}

// Tools returns every tool with its handler.
func (s *Server) Tools() []server.ServerTool {
	tools := []server.ServerTool{
		{
			Tool: mcp.NewTool(
				"to-markdown",
				mcp.WithDescription("Convert a local file or a URL to Markdown. PDFs may be restricted to a page range."),
				mcp.WithString("file_path", mcp.Description("Absolute path of the document to convert")),
				mcp.WithString("url", mcp.Description("http or https URL of the document to convert")),
				mcp.WithNumber("page_start", mcp.Description("First PDF page to convert, 1-based")),
				mcp.WithNumber("page_end", mcp.Description("Last PDF page to convert, inclusive")),
			),
			Handler: s.handleToMarkdown,
		},
	}

	for _, ft := range fileTools {
		tools = append(tools, server.ServerTool{
			Tool: mcp.NewTool(
				ft.name,
				mcp.WithDescription(ft.desc),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("Absolute path of the file")),
			),
			Handler: s.handleFile,
		})
	}

	tools = append(tools,
		server.ServerTool{
			Tool: mcp.NewTool(
				"webpage-to-markdown",
				mcp.WithDescription("Fetch a web page and convert it to Markdown."),
				mcp.WithString("url", mcp.Required(), mcp.Description("http or https URL of the page")),
			),
			Handler: s.handleWebpage,
		},
		server.ServerTool{
			Tool: mcp.NewTool(
				"get-markdown-file",
				mcp.WithDescription("Return the contents of an existing .md or .markdown file."),
				mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the Markdown file")),
			),
			Handler: s.handleGet,
		},
	)
	return tools
}

// Build returns an MCP server with all tools registered.
func (s *Server) Build(version string) *server.MCPServer {
	ms := server.NewMCPServer(serverName, version, server.WithLogging())
	ms.AddTools(s.Tools()...)
	return ms
}

// Run serves the tools on stdin/stdout until the client disconnects.
func (s *Server) Run(version string) error {
	s.logger.Info("starting MCP server on stdio")
	return server.ServeStdio(s.Build(version))
}

// --- Tool Handlers ---

func (s *Server) handleToMarkdown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	filePath, _ := args["file_path"].(string)
	url, _ := args["url"].(string)

	start, err := intArg(args, "page_start")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	end, err := intArg(args, "page_end")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return s.convert(ctx, types.ConversionRequest{
		FilePath:  filePath,
		URL:       url,
		PageRange: types.PageRange{Start: start, End: end},
	})
}

func (s *Server) handleFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, ok := request.GetArguments()["file_path"].(string)
	if !ok || filePath == "" {
		return mcp.NewToolResultError("file_path argument required"), nil
	}
	return s.convert(ctx, types.ConversionRequest{FilePath: filePath})
}

func (s *Server) handleWebpage(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, ok := request.GetArguments()["url"].(string)
	if !ok || url == "" {
		return mcp.NewToolResultError("url argument required"), nil
	}
	return s.convert(ctx, types.ConversionRequest{URL: url})
}

func (s *Server) handleGet(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath, ok := request.GetArguments()["file_path"].(string)
	if !ok || filePath == "" {
		return mcp.NewToolResultError("file_path argument required"), nil
	}
	res, err := s.get.Get(filePath)
	if err != nil {
		s.logger.Warn("get-markdown-file failed", "path", filePath, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatResult(res)), nil
}

func (s *Server) convert(ctx context.Context, req types.ConversionRequest) (*mcp.CallToolResult, error) {
	res, err := s.conv.ToMarkdown(ctx, req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(FormatResult(res)), nil
}

// FormatResult renders a result the way tool clients receive it.
func FormatResult(res types.MarkdownResult) string {
	return fmt.Sprintf("Output file: %s\n\nConverted content:\n\n%s", res.Path, res.Text)
}

// intArg reads an optional whole-number argument. JSON numbers arrive as
// float64.
func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%s must be a whole number, got %v", key, n)
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}
