// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"go.yaml.in/yaml/v3"
)

// Write renders entries to w as "table", "json" or "yaml".
func Write(w io.Writer, entries []Entry, format string) error {
	switch format {
	case "", "table":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "CREATED\tSOURCE\tPAGES\tBYTES\tOUTPUT")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\n",
				e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Source, pages(e), e.Bytes, e.OutputPath)
		}
		return tw.Flush()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "yaml":
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("marshaling YAML: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want table, json or yaml)", format)
	}
}

func pages(e Entry) string {
	switch {
	case e.PageStart == 0 && e.PageEnd == 0:
		return "all"
	case e.PageEnd == 0:
		return fmt.Sprintf("%d-", e.PageStart)
	case e.PageStart == 0:
		return fmt.Sprintf("1-%d", e.PageEnd)
	default:
		return fmt.Sprintf("%d-%d", e.PageStart, e.PageEnd)
	}
}
