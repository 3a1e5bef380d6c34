// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolchain

import (
	"fmt"
	"io"

	"github.com/pdiddy/mdbridge/internal/runner"
	"github.com/pdiddy/mdbridge/pkg/types"
)

// Component records whether one toolchain component was found.
type Component struct {
	Name     string
	Path     string
	Found    bool
	Required bool
}

// Report lists every component inspected by Check.
type Report struct {
	Components []Component
}

// OK reports whether every required component was found.
func (r Report) OK() bool {
	for _, p := range r.Components {
		if p.Required && !p.Found {
			return false
		}
	}
	return true
}

// Print writes one status line per component.
func (r Report) Print(w io.Writer) {
	for _, p := range r.Components {
		status := "found"
		if !p.Found {
			status = "missing"
			if !p.Required {
				status = "missing (optional)"
			}
		}
		fmt.Fprintf(w, "%-12s %-20s %s\n", p.Name+":", status, p.Path)
	}
}

// Check inspects the toolchain described by cfg. The tool runner is also
// looked up on PATH when the configured path does not exist.
func Check(r runner.Runner, cfg types.ToolchainConfig) Report {
	cfg = Resolve(cfg)
	l := NewLayout(cfg.ProjectRoot)

	toolRunner := Component{Name: "uv", Path: cfg.ToolRunnerPath, Found: Exists(cfg.ToolRunnerPath)}
	if !toolRunner.Found {
		if p, err := r.LookPath("uv"); err == nil {
			toolRunner.Path, toolRunner.Found = p, true
		}
	}

	return Report{Components: []Component{
		{Name: "venv", Path: l.VenvDir(), Found: Exists(l.VenvDir()), Required: true},
		{Name: "markitdown", Path: l.Markitdown(), Found: Exists(l.Markitdown()), Required: true},
		{Name: "python", Path: l.Interpreter(), Found: Exists(l.Interpreter())},
		{Name: "split", Path: cfg.SplitScript, Found: Exists(cfg.SplitScript)},
		toolRunner,
	}}
}
