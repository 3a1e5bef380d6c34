// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tempfile names, creates, and removes the short-lived files that
// carry a document between pipeline stages. Names are <prefix>_<uuid><ext>
// and files are created exclusively, so concurrent requests sharing a
// directory never reuse a name.
package tempfile

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Prefixes for the artifacts each stage produces.
const (
	PrefixDownload = "download"
	PrefixSplit    = "split"
	PrefixOutput   = "markdown_output"
)

// ExtMarkdown is the extension of persisted conversion output.
const ExtMarkdown = ".md"

// Name returns a fresh file name such as "split_<uuid>.pdf".
func Name(prefix, ext string) string {
	return prefix + "_" + uuid.NewString() + ext
}

// Reserve returns a path in dir that does not exist yet, for tools that
// create the file themselves. An empty dir means os.TempDir().
func Reserve(dir, prefix, ext string) string {
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, Name(prefix, ext))
}

// Write creates a new file in dir exclusively, writes data, and returns its
// path. An empty dir means os.TempDir(). The file is removed if writing fails.
func Write(dir, prefix, ext string, data []byte) (string, error) {
	path := Reserve(dir, prefix, ext)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}

	_, writeErr := f.Write(data)
	closeErr := f.Close()
	if writeErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("writing temp file %s: %w", path, writeErr)
	}
	if closeErr != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing temp file %s: %w", path, closeErr)
	}
	return path, nil
}

// Remove deletes each non-empty path in order. Failures are logged and
// otherwise ignored; a path that is already gone is not a failure.
func Remove(logger *slog.Logger, paths ...string) {
	if logger == nil {
		logger = slog.Default()
	}
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn("removing temp file", "path", p, "error", err)
		}
	}
}
