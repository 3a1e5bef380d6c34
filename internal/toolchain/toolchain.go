// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain locates the external conversion toolchain: a project
// directory with a .venv that has markitdown installed, the PDF splitter
// script, and the uv tool runner.
package toolchain

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/pdiddy/mdbridge/internal/pathutil"
	"github.com/pdiddy/mdbridge/pkg/types"
)

const (
	venvDir         = ".venv"
	splitScriptPath = "src/split_pdf.py"
)

// Layout derives executable paths under a project root for one platform.
type Layout struct {
	Root string
	GOOS string
}

// NewLayout returns the layout for root on the running platform.
func NewLayout(root string) Layout {
	return Layout{Root: root, GOOS: runtime.GOOS}
}

// VenvDir is the virtual environment directory.
func (l Layout) VenvDir() string {
	return filepath.Join(l.Root, venvDir)
}

func (l Layout) bin(name string) string {
	if l.GOOS == "windows" {
		return filepath.Join(l.VenvDir(), "Scripts", name+".exe")
	}
	return filepath.Join(l.VenvDir(), "bin", name)
}

// Interpreter is the Python interpreter inside the virtual environment.
func (l Layout) Interpreter() string { return l.bin("python") }

// Markitdown is the conversion executable inside the virtual environment.
func (l Layout) Markitdown() string { return l.bin("markitdown") }

// DefaultProjectRoot returns the parent of the directory holding the
// running executable, so a binary in <root>/bin finds <root>/.venv.
func DefaultProjectRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(filepath.Dir(exe))
}

// DefaultToolRunnerPath returns ~/.local/bin/uv.
func DefaultToolRunnerPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "uv"
	}
	name := "uv"
	if runtime.GOOS == "windows" {
		name = "uv.exe"
	}
	return filepath.Join(home, ".local", "bin", name)
}

// Resolve fills empty fields of cfg with defaults and expands "~" in the
// configured paths.
func Resolve(cfg types.ToolchainConfig) types.ToolchainConfig {
	if cfg.ProjectRoot == "" {
		cfg.ProjectRoot = DefaultProjectRoot()
	}
	if cfg.ToolRunnerPath == "" {
		cfg.ToolRunnerPath = DefaultToolRunnerPath()
	}
	cfg.ProjectRoot = expand(cfg.ProjectRoot)
	cfg.ToolRunnerPath = expand(cfg.ToolRunnerPath)
	if cfg.SplitScript == "" {
		cfg.SplitScript = filepath.Join(cfg.ProjectRoot, filepath.FromSlash(splitScriptPath))
	}
	cfg.SplitScript = expand(cfg.SplitScript)
	return cfg
}

// Merge returns override with empty fields taken from base.
func Merge(base, override types.ToolchainConfig) types.ToolchainConfig {
	if override.ProjectRoot == "" {
		override.ProjectRoot = base.ProjectRoot
	}
	if override.ToolRunnerPath == "" {
		override.ToolRunnerPath = base.ToolRunnerPath
	}
	if override.SplitScript == "" {
		override.SplitScript = base.SplitScript
	}
	return override
}

func expand(p string) string {
	if e, err := pathutil.ExpandHome(p); err == nil {
		return e
	}
	return p
}

// Exists reports whether path names an existing regular file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
