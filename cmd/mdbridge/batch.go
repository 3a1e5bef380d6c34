// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdbridge/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <manifest.yaml>",
	Short: "Convert every document listed in a YAML manifest",
	Long: `Batch reads a manifest of conversion requests and converts each one in
order, printing a status line per request and a summary. A failed request
does not stop the batch, but the command exits non-zero if any failed.

Manifest format:

  requests:
    - file_path: papers/a.pdf
      page_start: 2
      page_end: 5
    - url: https://example.com/report.docx`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	reqs, err := convert.LoadManifest(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	result := a.service.ConvertBatch(cmd.Context(), reqs, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d request(s) failed conversion", result.Failed)
	}
	return nil
}
