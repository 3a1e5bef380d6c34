// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch downloads URL-sourced documents into temporary files so the
// conversion toolchain can read them from disk.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/internal/httputil"
	"github.com/pdiddy/mdbridge/internal/tempfile"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// DefaultUserAgent is sent when the configuration leaves UserAgent empty.
const DefaultUserAgent = "mdbridge/0.1"

// fallbackExt is used when neither the URL nor the response identifies the
// document type.
const fallbackExt = tempfile.ExtMarkdown

// knownExts are URL path extensions kept as-is so the converter can detect
// the format from the file name.
var knownExts = map[string]bool{
	".pdf": true, ".docx": true, ".doc": true, ".pptx": true, ".xlsx": true, ".xls": true,
	".html": true, ".htm": true, ".csv": true, ".json": true, ".xml": true, ".txt": true,
	".md": true, ".epub": true, ".zip": true, ".jpg": true, ".jpeg": true, ".png": true,
	".mp3": true, ".wav": true, ".m4a": true, ".ipynb": true, ".msg": true,
}

var contentTypeExts = map[string]string{
	"application/pdf":  ".pdf",
	"application/json": ".json",
	"text/html":        ".html",
	"text/csv":         ".csv",
	"text/plain":       ".txt",

	"application/vnd.openxmlformats-officedocument.wordprocessingml.document":   ".docx",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet":         ".xlsx",
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": ".pptx",
}

// Fetcher downloads documents over HTTP.
type Fetcher struct {
	client *http.Client
	cfg    types.FetchConfig
	logger *slog.Logger
}

// New returns a Fetcher. A nil client uses one with cfg.Timeout; a nil
// logger uses slog.Default().
func New(client *http.Client, cfg types.FetchConfig, logger *slog.Logger) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	return &Fetcher{client: client, cfg: cfg, logger: logger}
}

// Fetch downloads rawURL, buffers the whole body, and writes it unchanged to
// a new temporary file whose extension reflects the document type. The
// caller owns the returned file.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", apperr.InvalidInput("invalid url %q: %v", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", apperr.InvalidInput("unsupported url scheme %q", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	if tok, ok := f.cfg.Tokens[strings.ToLower(u.Hostname())]; ok {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := httputil.DoWithRetry(ctx, f.client, req, f.cfg.MaxRetries, f.logger)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, rawURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response from %s: %w", rawURL, err)
	}

	ext := Extension(u, resp.Header.Get("Content-Type"))
	p, err := tempfile.Write(f.cfg.TempDir, tempfile.PrefixDownload, ext, body)
	if err != nil {
		return "", err
	}
	f.logger.Debug("fetched document", "url", rawURL, "path", p, "bytes", len(body))
	return p, nil
}

// Extension picks the file extension for a downloaded document: ".pdf"
// when the URL path ends in .pdf, then any other recognized URL path
// extension, then the response Content-Type, and finally ".md".
func Extension(u *url.URL, contentType string) string {
	ext := strings.ToLower(path.Ext(u.Path))
	if ext == ".pdf" || knownExts[ext] {
		return ext
	}
	if mt, _, err := mime.ParseMediaType(contentType); err == nil {
		if e, ok := contentTypeExts[mt]; ok {
			return e
		}
	}
	return fallbackExt
}
