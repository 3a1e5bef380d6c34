// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/api"
	"github.com/pdiddy/mdbridge/internal/mcpserver"
	"github.com/pdiddy/mdbridge/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions as MCP tools or a REST API",
	Long: `Serve exposes conversion and direct Markdown reads to other programs.

With --transport stdio (the default) it speaks the Model Context Protocol on
stdin/stdout, offering to-markdown, format-specific aliases such as
pdf-to-markdown, webpage-to-markdown, and get-markdown-file.

With --transport http it serves a REST API on --addr:

  GET  /health
  POST /v1/convert            {"file_path": "...", "page_start": 1, "page_end": 3}
  GET  /v1/markdown?path=...`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("transport", "", "stdio (MCP) or http (REST)")
	serveCmd.Flags().String("addr", "", "listen address for --transport http (default :8080)")
	_ = viper.BindPFlag("serve.transport", serveCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("serve.addr", serveCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	switch a.cfg.Serve.Transport {
	case types.TransportStdio:
		return mcpserver.New(a.service, a.reader, logger).Run(version)
	case types.TransportHTTP:
		return api.NewServer(a.service, a.reader, logger).Run(cmd.Context(), a.cfg.Serve.Addr)
	default:
		return fmt.Errorf("unknown transport %q (want stdio or http)", a.cfg.Serve.Transport)
	}
}
