// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/fetch"
	"github.com/pdiddy/mdbridge/internal/reader"
	"github.com/pdiddy/mdbridge/internal/secrets"
	"github.com/pdiddy/mdbridge/pkg/types"
)

const (
	defaultServeAddr  = ":8080"
	defaultMaxResults = 20
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("conversion.backend", string(types.BackendMarkitdown))
	v.SetDefault("conversion.splitter", string(types.SplitterScript))
	v.SetDefault("conversion.timeout", "0s")
	v.SetDefault("fetch.timeout", "0s")
	v.SetDefault("fetch.user_agent", fetch.DefaultUserAgent)
	v.SetDefault("fetch.max_retries", 0)
	v.SetDefault("history.max_results", defaultMaxResults)
	v.SetDefault("serve.transport", string(types.TransportStdio))
	v.SetDefault("serve.addr", defaultServeAddr)
	v.SetDefault("log.level", "info")
}

// bindEnv maps MDBRIDGE_<KEY> variables onto config keys. MD_SHARE_DIR
// sets reader.share_dir and wins over MDBRIDGE_READER_SHARE_DIR.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("MDBRIDGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("reader.share_dir", reader.ShareDirEnv, "MDBRIDGE_READER_SHARE_DIR")
}

// loadConfig assembles a Config from v and the per-host fetch tokens.
func loadConfig(v *viper.Viper, tokens secrets.Tokens) (types.Config, error) {
	cfg := types.Config{
		Fetch: types.FetchConfig{
			HTTPConfig: types.HTTPConfig{
				Timeout:   v.GetDuration("fetch.timeout"),
				UserAgent: v.GetString("fetch.user_agent"),
			},
			MaxRetries: v.GetInt("fetch.max_retries"),
			TempDir:    v.GetString("fetch.temp_dir"),
			Tokens:     tokens,
		},
		Conversion: types.ConversionConfig{
			Backend:   types.ConversionBackend(v.GetString("conversion.backend")),
			Splitter:  types.SplitterBackend(v.GetString("conversion.splitter")),
			OutputDir: v.GetString("conversion.output_dir"),
			Timeout:   v.GetDuration("conversion.timeout"),
			Toolchain: types.ToolchainConfig{
				ProjectRoot:    v.GetString("toolchain.project_root"),
				ToolRunnerPath: v.GetString("toolchain.tool_runner"),
				SplitScript:    v.GetString("toolchain.split_script"),
			},
		},
		Reader: types.ReaderConfig{
			ShareDir: v.GetString("reader.share_dir"),
		},
		History: types.HistoryConfig{
			Path:       v.GetString("history.path"),
			MaxResults: v.GetInt("history.max_results"),
		},
		Serve: types.ServeConfig{
			Transport: types.ServeTransport(v.GetString("serve.transport")),
			Addr:      v.GetString("serve.addr"),
		},
	}

	switch cfg.Conversion.Backend {
	case types.BackendMarkitdown, types.BackendContainer:
	default:
		return cfg, fmt.Errorf("unknown conversion backend %q (want markitdown or container)", cfg.Conversion.Backend)
	}
	switch cfg.Conversion.Splitter {
	case types.SplitterScript, types.SplitterPdfcpu:
	default:
		return cfg, fmt.Errorf("unknown splitter %q (want script or pdfcpu)", cfg.Conversion.Splitter)
	}
	if cfg.Fetch.MaxRetries < 0 {
		return cfg, fmt.Errorf("fetch.max_retries must not be negative, got %d", cfg.Fetch.MaxRetries)
	}
	return cfg, nil
}
