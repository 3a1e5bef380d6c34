// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader returns the contents of existing Markdown files, optionally
// confined to a shared directory.
package reader

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/internal/pathutil"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// ShareDirEnv names the environment variable that sets the share directory.
const ShareDirEnv = "MD_SHARE_DIR"

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
}

// Reader reads Markdown files. Extensions match exactly, so "NOTES.MD" is
// rejected. The zero value allows any path.
type Reader struct {
	shareDir string
}

// New returns a Reader confined to shareDir. An empty shareDir disables the
// restriction.
func New(shareDir string) *Reader {
	return &Reader{shareDir: shareDir}
}

// ShareDir returns the configured restriction, or "" when unrestricted.
func (r *Reader) ShareDir() string {
	return r.shareDir
}

// Get returns the file's text unchanged. The returned Path is the path as
// supplied by the caller. Checks run in order: extension, share directory,
// existence.
func (r *Reader) Get(path string) (types.MarkdownResult, error) {
	ext := filepath.Ext(filepath.Clean(path))
	if !markdownExts[ext] {
		return types.MarkdownResult{}, apperr.InvalidInput("required to be a markdown file (.md or .markdown), got %q", path)
	}

	abs, err := pathutil.Normalize(path)
	if err != nil {
		return types.MarkdownResult{}, apperr.InvalidInput("resolving %s: %v", path, err)
	}

	if r.shareDir != "" {
		share, err := pathutil.Normalize(r.shareDir)
		if err != nil {
			return types.MarkdownResult{}, fmt.Errorf("resolving %s: %w", ShareDirEnv, err)
		}
		if !pathutil.Within(share, abs) {
			return types.MarkdownResult{}, apperr.Permission("access denied: only files in %s are allowed", share)
		}
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return types.MarkdownResult{}, apperr.NotFound("file %s does not exist", path)
		}
		return types.MarkdownResult{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return types.MarkdownResult{}, apperr.InvalidInput("%s is a directory", path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return types.MarkdownResult{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return types.MarkdownResult{Path: path, Text: string(data)}, nil
}
