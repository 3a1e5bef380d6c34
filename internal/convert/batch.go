// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/mdbridge/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Failed    int
	Results   []types.MarkdownResult
}

// Total returns the number of requests processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Failed
}

// HasFailures reports whether any request failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertBatch runs each request in order, printing per-request status to w
// and returning a summary. A failed request does not stop the batch.
func (s *Service) ConvertBatch(ctx context.Context, reqs []types.ConversionRequest, w io.Writer) BatchResult {
	var result BatchResult
	for _, req := range reqs {
		if err := ctx.Err(); err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", req.Source(), err)
			result.Failed++
			continue
		}
		res, err := s.ToMarkdown(ctx, req)
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", req.Source(), err)
			result.Failed++
			continue
		}
		fmt.Fprintf(w, "converted: %s -> %s\n", req.Source(), res.Path)
		result.Converted++
		result.Results = append(result.Results, res)
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d failed (total: %d)\n",
		result.Converted, result.Failed, result.Total())
	return result
}

// Manifest is the YAML document read by the batch command.
type Manifest struct {
	Requests []types.ConversionRequest `yaml:"requests"`
}

// LoadManifest reads a batch manifest from path.
func LoadManifest(path string) ([]types.ConversionRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if len(m.Requests) == 0 {
		return nil, fmt.Errorf("manifest %s lists no requests", path)
	}
	return m.Requests, nil
}
