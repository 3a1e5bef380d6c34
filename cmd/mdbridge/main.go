// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdbridge CLI.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// fetchTokens holds the per-host download tokens loaded from .secrets/ at startup.
var fetchTokens secrets.Tokens

// logger is configured from log.level before any subcommand runs.
var logger = slog.Default()

// rootCmd is the base command for the mdbridge CLI.
var rootCmd = &cobra.Command{
	Use:   "mdbridge",
	Short: "Convert documents and web pages to Markdown",
	Long: `mdbridge converts local documents and remote URLs to Markdown by driving
markitdown. PDFs can be restricted to a page range before conversion. Each
result is written to a new Markdown file whose path is reported with the text.

The same operations are available as MCP tools (serve --transport stdio) and
as a REST API (serve --transport http).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		l, err := newLogger(viper.GetString("log.level"))
		if err != nil {
			return err
		}
		logger = l
		slog.SetDefault(l)

		tokens, err := secrets.LoadFetchTokens(secrets.DefaultDir, logger)
		if err != nil {
			return err
		}
		fetchTokens = tokens
		if len(tokens) > 0 {
			logger.Debug("loaded fetch tokens", "hosts", tokens.Hosts())
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./mdbridge.yaml or ~/.config/mdbridge/mdbridge.yaml)")
	pf.String("log-level", "", "log level: debug, info, warn, or error")
	pf.String("project-root", "", "directory holding the .venv with markitdown (default: parent of the binary's directory)")
	pf.String("tool-runner", "", "uv executable used when the venv has no interpreter (default ~/.local/bin/uv)")
	pf.String("backend", "", "conversion backend: markitdown or container")
	pf.String("splitter", "", "PDF page splitter: script or pdfcpu")
	pf.String("output-dir", "", "directory for converted Markdown (default: system temp dir)")

	for key, flag := range map[string]string{
		"log.level":              "log-level",
		"toolchain.project_root": "project-root",
		"toolchain.tool_runner":  "tool-runner",
		"conversion.backend":     "backend",
		"conversion.splitter":    "splitter",
		"conversion.output_dir":  "output-dir",
	} {
		_ = viper.BindPFlag(key, pf.Lookup(flag))
	}

	setDefaults(viper.GetViper())
}

func initConfig() {
	_ = godotenv.Load()

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdbridge")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdbridge"))
		}
	}

	bindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a text logger on stderr at the named level.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
