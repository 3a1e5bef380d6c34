// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/container"
	"github.com/pdiddy/mdbridge/internal/convert"
	"github.com/pdiddy/mdbridge/internal/fetch"
	"github.com/pdiddy/mdbridge/internal/history"
	"github.com/pdiddy/mdbridge/internal/reader"
	"github.com/pdiddy/mdbridge/internal/runner"
	"github.com/pdiddy/mdbridge/internal/split"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// app bundles the components a subcommand needs.
type app struct {
	cfg     types.Config
	service *convert.Service
	reader  *reader.Reader
	history *history.Store
}

// Close releases the history database, if open.
func (a *app) Close() error {
	if a.history != nil {
		return a.history.Close()
	}
	return nil
}

// newApp loads configuration and wires the conversion pipeline.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig(viper.GetViper(), fetchTokens)
	if err != nil {
		return nil, err
	}
	return buildApp(ctx, cfg, runner.OS{}, logger)
}

func buildApp(ctx context.Context, cfg types.Config, r runner.Runner, logger *slog.Logger) (*app, error) {
	conv, err := newConverter(ctx, cfg.Conversion, r)
	if err != nil {
		return nil, err
	}

	var splitter split.Splitter
	switch cfg.Conversion.Splitter {
	case types.SplitterPdfcpu:
		splitter = split.NewPdfcpuSplitter()
	default:
		splitter = split.NewScriptSplitter(r)
	}

	a := &app{cfg: cfg, reader: reader.New(cfg.Reader.ShareDir)}

	opts := convert.Options{
		Toolchain: cfg.Conversion.Toolchain,
		OutputDir: cfg.Conversion.OutputDir,
		TempDir:   cfg.Fetch.TempDir,
		Timeout:   cfg.Conversion.Timeout,
		Logger:    logger,
	}
	if cfg.History.Path != "" {
		store, err := history.NewStore(cfg.History)
		if err != nil {
			return nil, err
		}
		a.history = store
		opts.Recorder = store
	}

	a.service = convert.NewService(conv, splitter, fetch.New(nil, cfg.Fetch, logger), opts)
	return a, nil
}

func newConverter(ctx context.Context, cfg types.ConversionConfig, r runner.Runner) (convert.Converter, error) {
	switch cfg.Backend {
	case types.BackendContainer:
		rt, err := container.DetectRuntime(ctx, r)
		if err != nil {
			return nil, err
		}
		return convert.NewContainerConverter(ctx, rt)
	case types.BackendMarkitdown, "":
		return convert.NewMarkitdownConverter(r, cfg.Toolchain), nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q", cfg.Backend)
	}
}
