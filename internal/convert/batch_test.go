// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdbridge/pkg/types"
)

// selectiveConverter returns different results per file path.
type selectiveConverter struct {
	outputs map[string]string
	errors  map[string]error
}

func (s *selectiveConverter) Convert(_ context.Context, path string) (string, error) {
	if err, ok := s.errors[path]; ok {
		return "", err
	}
	if out, ok := s.outputs[path]; ok {
		return out, nil
	}
	return "", errors.New("unexpected path: " + path)
}

func TestConvertBatch(t *testing.T) {
	dir := t.TempDir()
	a, b, c := filepath.Join(dir, "a.docx"), filepath.Join(dir, "b.pdf"), filepath.Join(dir, "c.xlsx")

	conv := &selectiveConverter{
		outputs: map[string]string{a: "# A", b: "# B"},
		errors:  map[string]error{c: errors.New("bad workbook")},
	}
	svc := NewService(conv, &fakeSplitter{}, &fakeFetcher{}, Options{
		OutputDir: t.TempDir(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	reqs := []types.ConversionRequest{{FilePath: a}, {FilePath: b}, {FilePath: c}, {}}

	var log bytes.Buffer
	result := svc.ConvertBatch(context.Background(), reqs, &log)

	assert.Equal(t, 2, result.Converted)
	assert.Equal(t, 2, result.Failed)
	assert.Equal(t, 4, result.Total())
	assert.True(t, result.HasFailures())
	require.Len(t, result.Results, 2)
	assert.Equal(t, "# A", result.Results[0].Text)
	assert.Equal(t, "# B", result.Results[1].Text)

	out := log.String()
	assert.Contains(t, out, "converted: "+a+" -> ")
	assert.Contains(t, out, "failed:  "+c)
	assert.Contains(t, out, "bad workbook")
	assert.Contains(t, out, "Batch summary: 2 converted, 2 failed (total: 4)")
}

func TestConvertBatch_CancelledContext(t *testing.T) {
	conv := &fakeConverter{output: "# x"}
	svc := NewService(conv, &fakeSplitter{}, &fakeFetcher{}, Options{
		OutputDir: t.TempDir(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var log bytes.Buffer
	result := svc.ConvertBatch(ctx, []types.ConversionRequest{{FilePath: "a.docx"}, {FilePath: "b.docx"}}, &log)
	assert.Equal(t, 2, result.Failed)
	assert.Empty(t, conv.paths)
	assert.Equal(t, 2, strings.Count(log.String(), "context canceled"))
}

func TestLoadManifest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.yaml")
	manifest := `requests:
  - file_path: papers/a.pdf
    page_start: 2
    page_end: 5
  - url: https://example.com/b.pdf
  - file_path: notes.docx
    toolchain:
      project_root: /opt/mdbridge
`
	require.NoError(t, os.WriteFile(path, []byte(manifest), 0o644))

	reqs, err := LoadManifest(path)
	require.NoError(t, err)
	require.Len(t, reqs, 3)

	assert.Equal(t, "papers/a.pdf", reqs[0].FilePath)
	assert.Equal(t, types.PageRange{Start: 2, End: 5}, reqs[0].PageRange)
	assert.Equal(t, "https://example.com/b.pdf", reqs[1].URL)
	assert.False(t, reqs[1].PageRange.IsSet())
	assert.Equal(t, "/opt/mdbridge", reqs[2].Toolchain.ProjectRoot)
}

func TestLoadManifest_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadManifest(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("requests: []\n"), 0o644))
	_, err = LoadManifest(empty)
	assert.ErrorContains(t, err, "lists no requests")

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("requests: [unterminated\n"), 0o644))
	_, err = LoadManifest(bad)
	assert.ErrorContains(t, err, "parsing manifest")
}
