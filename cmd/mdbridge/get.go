// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdbridge/internal/reader"
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Print an existing Markdown file",
	Long: `Get reads a .md or .markdown file and prints it unchanged. When
MD_SHARE_DIR (or reader.share_dir) is set, only files inside that directory
are allowed.`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().String("format", "raw", "output format: raw, text, json, or yaml")

	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig(viper.GetViper(), fetchTokens)
	if err != nil {
		return err
	}
	res, err := reader.New(cfg.Reader.ShareDir).Get(args[0])
	if err != nil {
		return err
	}
	if format == "raw" {
		_, err = fmt.Fprint(os.Stdout, res.Text)
		return err
	}
	return writeResult(os.Stdout, res, format)
}
