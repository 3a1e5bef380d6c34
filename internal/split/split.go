// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package split restricts a PDF to a page range before conversion. The
// default backend runs the split_pdf.py script from the toolchain; the
// pdfcpu backend does the same in-process.
package split

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/internal/runner"
	"github.com/pdiddy/mdbridge/internal/toolchain"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// Request describes one split.
type Request struct {
	Input     string
	Output    string
	Pages     types.PageRange
	Toolchain types.ToolchainConfig
}

// Splitter writes the selected pages of Input to Output. A non-empty
// warning is advisory diagnostic text; it never signals failure.
type Splitter interface {
	Split(ctx context.Context, req Request) (warning string, err error)
}

// ScriptSplitter runs split_pdf.py with the virtual environment's
// interpreter, or through uv when the environment has none.
type ScriptSplitter struct {
	run runner.Runner
}

// NewScriptSplitter returns a ScriptSplitter that starts processes with r.
func NewScriptSplitter(r runner.Runner) *ScriptSplitter {
	return &ScriptSplitter{run: r}
}

// Command builds the command line for req. The toolchain must already be
// resolved.
func (s *ScriptSplitter) Command(req Request) runner.Command {
	tc := req.Toolchain
	args := []string{tc.SplitScript, req.Input, req.Output}
	if req.Pages.Start != 0 {
		args = append(args, "--start", strconv.Itoa(req.Pages.Start))
	}
	if req.Pages.End != 0 {
		args = append(args, "--end", strconv.Itoa(req.Pages.End))
	}

	interpreter := toolchain.NewLayout(tc.ProjectRoot).Interpreter()
	if toolchain.Exists(interpreter) {
		return runner.Command{Name: interpreter, Args: args}
	}
	return runner.Command{
		Name: tc.ToolRunnerPath,
		Args: append([]string{"run", "--project", tc.ProjectRoot, "python"}, args...),
	}
}

// Split runs the script. The script reports failures on stdout and exits
// non-zero, so stdout is folded into the returned error.
func (s *ScriptSplitter) Split(ctx context.Context, req Request) (string, error) {
	cmd := s.Command(req)
	out, err := runner.Capture(ctx, s.run, cmd)
	if err != nil {
		if msg := strings.TrimSpace(out.Stdout); msg != "" {
			return "", fmt.Errorf("splitting %s: %s: %w", req.Input, msg, err)
		}
		return "", fmt.Errorf("splitting %s with %s: %w", req.Input, cmd.Name, err)
	}
	return strings.TrimSpace(out.Stderr), nil
}

// Bounds converts a requested range into concrete 1-based inclusive page
// numbers for a document of total pages. Missing bounds default to the
// first and last page; out-of-range bounds are clamped. An empty result is
// an input error.
func Bounds(pages types.PageRange, total int) (start, end int, err error) {
	start, end = pages.Start, pages.End
	if start < 1 {
		start = 1
	}
	if end == 0 || end > total {
		end = total
	}
	if start > end {
		return 0, 0, apperr.InvalidInput("invalid page range %d-%d for document with %d pages",
			pages.Start, pages.End, total)
	}
	return start, end, nil
}
