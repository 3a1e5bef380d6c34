// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdbridge/internal/fetch"
	"github.com/pdiddy/mdbridge/internal/runner/runnertest"
	"github.com/pdiddy/mdbridge/internal/secrets"
	"github.com/pdiddy/mdbridge/pkg/types"
)

func testViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadConfig(testViper(), nil)
	require.NoError(t, err)

	assert.Equal(t, types.BackendMarkitdown, cfg.Conversion.Backend)
	assert.Equal(t, types.SplitterScript, cfg.Conversion.Splitter)
	assert.Zero(t, cfg.Conversion.Timeout, "no timeout unless configured")
	assert.Zero(t, cfg.Fetch.MaxRetries, "no retries unless configured")
	assert.Equal(t, fetch.DefaultUserAgent, cfg.Fetch.UserAgent)
	assert.Equal(t, types.TransportStdio, cfg.Serve.Transport)
	assert.Equal(t, ":8080", cfg.Serve.Addr)
	assert.Empty(t, cfg.History.Path, "history is off by default")
	assert.Empty(t, cfg.Reader.ShareDir)
}

func TestLoadConfig_Values(t *testing.T) {
	v := testViper()
	v.Set("toolchain.project_root", "/opt/mdbridge")
	v.Set("toolchain.tool_runner", "/usr/bin/uv")
	v.Set("conversion.backend", "container")
	v.Set("conversion.splitter", "pdfcpu")
	v.Set("conversion.timeout", "90s")
	v.Set("fetch.max_retries", 3)
	v.Set("reader.share_dir", "/srv/share")
	v.Set("history.path", "/var/lib/mdbridge/history.db")

	cfg, err := loadConfig(v, secrets.Tokens{"docs.example": "tok"})
	require.NoError(t, err)

	assert.Equal(t, "/opt/mdbridge", cfg.Conversion.Toolchain.ProjectRoot)
	assert.Equal(t, "/usr/bin/uv", cfg.Conversion.Toolchain.ToolRunnerPath)
	assert.Equal(t, types.BackendContainer, cfg.Conversion.Backend)
	assert.Equal(t, types.SplitterPdfcpu, cfg.Conversion.Splitter)
	assert.Equal(t, 90*time.Second, cfg.Conversion.Timeout)
	assert.Equal(t, 3, cfg.Fetch.MaxRetries)
	assert.Equal(t, "/srv/share", cfg.Reader.ShareDir)
	assert.Equal(t, "/var/lib/mdbridge/history.db", cfg.History.Path)
	assert.Equal(t, map[string]string{"docs.example": "tok"}, cfg.Fetch.Tokens)
}

func TestBindEnv_ShareDir(t *testing.T) {
	t.Setenv("MD_SHARE_DIR", "/from/env")
	t.Setenv("MDBRIDGE_READER_SHARE_DIR", "/from/prefixed")
	v := testViper()
	bindEnv(v)

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Reader.ShareDir)

	t.Setenv("MD_SHARE_DIR", "")
	cfg, err = loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, "/from/prefixed", cfg.Reader.ShareDir)
}

func TestBindEnv_PrefixedKeys(t *testing.T) {
	t.Setenv("MDBRIDGE_FETCH_MAX_RETRIES", "2")
	t.Setenv("MDBRIDGE_CONVERSION_SPLITTER", "pdfcpu")
	v := testViper()
	bindEnv(v)

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Fetch.MaxRetries)
	assert.Equal(t, types.SplitterPdfcpu, cfg.Conversion.Splitter)
}

func TestBindEnv_NoShareDir(t *testing.T) {
	t.Setenv("MD_SHARE_DIR", "")
	t.Setenv("MDBRIDGE_READER_SHARE_DIR", "")
	v := testViper()
	bindEnv(v)

	cfg, err := loadConfig(v, nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.Reader.ShareDir)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		key    string
		value  any
		errMsg string
	}{
		{"conversion.backend", "pandoc", "unknown conversion backend"},
		{"conversion.splitter", "qpdf", "unknown splitter"},
		{"fetch.max_retries", -1, "must not be negative"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v := testViper()
			v.Set(tt.key, tt.value)
			_, err := loadConfig(v, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewLogger(t *testing.T) {
	_, err := newLogger("")
	assert.NoError(t, err)
	_, err = newLogger("debug")
	assert.NoError(t, err)
	_, err = newLogger("loud")
	assert.Error(t, err)
}

func TestRequestFor(t *testing.T) {
	pages := types.PageRange{Start: 1, End: 2}
	assert.Equal(t, types.ConversionRequest{URL: "https://example.com/a.pdf", PageRange: pages},
		requestFor("https://example.com/a.pdf", pages))
	assert.Equal(t, types.ConversionRequest{FilePath: "docs/a.pdf", PageRange: pages},
		requestFor("docs/a.pdf", pages))
	assert.Equal(t, types.ConversionRequest{FilePath: "C:/docs/a.pdf"},
		requestFor("C:/docs/a.pdf", types.PageRange{}))
}

func TestWriteResult(t *testing.T) {
	res := types.MarkdownResult{Path: "/tmp/o.md", Text: "# T"}

	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, res, "text"))
	assert.Equal(t, "Output file: /tmp/o.md\n\nConverted content:\n\n# T\n", buf.String())

	buf.Reset()
	require.NoError(t, writeResult(&buf, res, "json"))
	assert.JSONEq(t, `{"path":"/tmp/o.md","text":"# T"}`, buf.String())

	buf.Reset()
	require.NoError(t, writeResult(&buf, res, "yaml"))
	assert.Contains(t, buf.String(), "path: /tmp/o.md\n")

	assert.Error(t, writeResult(&buf, res, "xml"))
}

func TestBuildApp(t *testing.T) {
	cfg, err := loadConfig(testViper(), nil)
	require.NoError(t, err)
	cfg.History.Path = filepath.Join(t.TempDir(), "history.db")
	cfg.Reader.ShareDir = "/srv/share"

	a, err := buildApp(context.Background(), cfg, &runnertest.Fake{}, nil)
	require.NoError(t, err)
	defer a.Close()

	assert.NotNil(t, a.service)
	assert.NotNil(t, a.history)
	assert.Equal(t, "/srv/share", a.reader.ShareDir())
}

func TestBuildApp_NoHistory(t *testing.T) {
	cfg, err := loadConfig(testViper(), nil)
	require.NoError(t, err)

	a, err := buildApp(context.Background(), cfg, &runnertest.Fake{}, nil)
	require.NoError(t, err)
	assert.Nil(t, a.history)
	assert.NoError(t, a.Close())
}

func TestBuildApp_ContainerUnavailable(t *testing.T) {
	cfg, err := loadConfig(testViper(), nil)
	require.NoError(t, err)
	cfg.Conversion.Backend = types.BackendContainer

	fake := &runnertest.Fake{RunFunc: runnertest.Script("", "", assert.AnError)}
	_, err = buildApp(context.Background(), cfg, fake, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no container runtime available")
}
