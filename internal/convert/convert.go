// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements document-to-Markdown conversion: acquire the
// input, optionally restrict a PDF to a page range, run a pluggable
// converter, and persist the Markdown to a new file.
package convert

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/internal/split"
	"github.com/pdiddy/mdbridge/internal/tempfile"
	"github.com/pdiddy/mdbridge/internal/toolchain"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// Converter transforms a document on disk into Markdown text. Different
// backends (markitdown in a virtualenv, markitdown in a container)
// implement this interface.
type Converter interface {
	// Convert reads the document at path and returns the Markdown content.
	Convert(ctx context.Context, path string) (string, error)
}

// ToolchainBinder is implemented by converters that can be rebound to a
// per-request toolchain.
type ToolchainBinder interface {
	WithToolchain(tc types.ToolchainConfig) Converter
}

// Fetcher downloads a URL into a temporary file and returns its path.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Recorder is notified after each successful conversion.
type Recorder interface {
	Record(ctx context.Context, req types.ConversionRequest, res types.MarkdownResult) error
}

// Options configures a Service. Zero values are valid.
type Options struct {
	// Toolchain is the default toolchain; requests may override fields.
	Toolchain types.ToolchainConfig

	// OutputDir receives persisted Markdown (default os.TempDir()).
	OutputDir string

	// TempDir receives split PDFs (default os.TempDir()).
	TempDir string

	// Timeout bounds each external stage. Zero means no limit.
	Timeout time.Duration

	Recorder Recorder
	Logger   *slog.Logger
}

// Service runs the conversion pipeline. It holds no per-request state and
// is safe for concurrent use.
type Service struct {
	conv     Converter
	splitter split.Splitter
	fetcher  Fetcher
	opts     Options
	logger   *slog.Logger
}

// NewService wires a pipeline from its stages.
func NewService(conv Converter, splitter split.Splitter, fetcher Fetcher, opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{conv: conv, splitter: splitter, fetcher: fetcher, opts: opts, logger: logger}
}

// Validate checks that req names exactly one source and a sane page range.
func Validate(req types.ConversionRequest) error {
	switch {
	case req.FilePath == "" && req.URL == "":
		return apperr.InvalidInput("either filePath or url must be provided")
	case req.FilePath != "" && req.URL != "":
		return apperr.InvalidInput("filePath and url are mutually exclusive")
	case req.Start < 0 || req.End < 0:
		return apperr.InvalidInput("page numbers must be positive, got start=%d end=%d", req.Start, req.End)
	}
	return nil
}

// ToMarkdown converts the document named by req and persists the result to
// a new file. Any failure, whatever the stage, is returned wrapped as an
// apperr.ErrProcessing error; the cause remains reachable with errors.Is.
func (s *Service) ToMarkdown(ctx context.Context, req types.ConversionRequest) (types.MarkdownResult, error) {
	res, err := s.toMarkdown(ctx, req)
	if err != nil {
		s.logger.Error("conversion failed", "source", req.Source(), "error", err)
		return types.MarkdownResult{}, apperr.Processing(err)
	}
	s.logger.Info("converted", "source", req.Source(), "output", res.Path, "bytes", len(res.Text))
	return res, nil
}

func (s *Service) toMarkdown(ctx context.Context, req types.ConversionRequest) (types.MarkdownResult, error) {
	if err := Validate(req); err != nil {
		return types.MarkdownResult{}, err
	}
	tc := toolchain.Resolve(toolchain.Merge(s.opts.Toolchain, req.Toolchain))

	// Acquisition output first, then split output.
	var temps []string
	defer func() { tempfile.Remove(s.logger, temps...) }()

	input := req.FilePath
	if req.URL != "" {
		p, err := s.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			return types.MarkdownResult{}, err
		}
		temps = append(temps, p)
		input = p
	}

	if req.PageRange.IsSet() && strings.HasSuffix(strings.ToLower(input), ".pdf") {
		out := tempfile.Reserve(s.opts.TempDir, tempfile.PrefixSplit, ".pdf")
		temps = append(temps, out)
		if err := s.split(ctx, split.Request{Input: input, Output: out, Pages: req.PageRange, Toolchain: tc}); err != nil {
			return types.MarkdownResult{}, err
		}
		input = out
	}

	text, err := s.convert(ctx, req, input)
	if err != nil {
		return types.MarkdownResult{}, err
	}

	outPath, err := tempfile.Write(s.opts.OutputDir, tempfile.PrefixOutput, tempfile.ExtMarkdown, []byte(text))
	if err != nil {
		return types.MarkdownResult{}, fmt.Errorf("persisting markdown: %w", err)
	}
	res := types.MarkdownResult{Path: outPath, Text: text}

	if s.opts.Recorder != nil {
		if err := s.opts.Recorder.Record(ctx, req, res); err != nil {
			s.logger.Warn("recording conversion history", "error", err)
		}
	}
	return res, nil
}

func (s *Service) split(ctx context.Context, req split.Request) error {
	ctx, cancel := s.stage(ctx)
	defer cancel()

	warning, err := s.splitter.Split(ctx, req)
	if warning != "" {
		s.logger.Warn("pdf splitter wrote to stderr", "input", req.Input, "stderr", warning)
	}
	if err != nil {
		return fmt.Errorf("splitting pdf: %w", err)
	}
	return nil
}

func (s *Service) convert(ctx context.Context, req types.ConversionRequest, input string) (string, error) {
	ctx, cancel := s.stage(ctx)
	defer cancel()

	conv := s.conv
	if b, ok := conv.(ToolchainBinder); ok && req.Toolchain != (types.ToolchainConfig{}) {
		conv = b.WithToolchain(toolchain.Merge(s.opts.Toolchain, req.Toolchain))
	}
	return conv.Convert(ctx, input)
}

func (s *Service) stage(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout > 0 {
		return context.WithTimeout(ctx, s.opts.Timeout)
	}
	return context.WithCancel(ctx)
}
