// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdbridge/internal/mcpserver"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// writeResult renders res as text, json, or yaml.
func writeResult(w io.Writer, res types.MarkdownResult, format string) error {
	switch format {
	case "", "text":
		_, err := fmt.Fprintln(w, mcpserver.FormatResult(res))
		return err
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "yaml":
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
	}
}
