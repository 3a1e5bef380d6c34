// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/url"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdbridge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file|url>",
	Short: "Convert a document or URL to Markdown",
	Long: `Convert runs markitdown on a local file or a downloaded URL and writes the
Markdown to a new file. For PDFs, --page-start and --page-end restrict the
conversion to a 1-based inclusive page range; other formats ignore them.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().Int("page-start", 0, "first PDF page to convert (1-based)")
	convertCmd.Flags().Int("page-end", 0, "last PDF page to convert (inclusive)")
	convertCmd.Flags().String("format", "text", "output format: text, json, or yaml")

	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	start, _ := cmd.Flags().GetInt("page-start")
	end, _ := cmd.Flags().GetInt("page-end")
	format, _ := cmd.Flags().GetString("format")

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.service.ToMarkdown(cmd.Context(), requestFor(args[0], types.PageRange{Start: start, End: end}))
	if err != nil {
		return err
	}
	return writeResult(os.Stdout, res, format)
}

// requestFor treats http and https arguments as URLs and anything else as a
// file path.
func requestFor(arg string, pages types.PageRange) types.ConversionRequest {
	req := types.ConversionRequest{PageRange: pages}
	if u, err := url.Parse(arg); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		req.URL = arg
	} else {
		req.FilePath = arg
	}
	return req
}
