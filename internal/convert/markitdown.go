// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/mdbridge/internal/apperr"
	"github.com/pdiddy/mdbridge/internal/container"
	"github.com/pdiddy/mdbridge/internal/runner"
	"github.com/pdiddy/mdbridge/internal/toolchain"
	"github.com/pdiddy/mdbridge/pkg/types"
)

const imageMarkitdown = "markitdown:latest"

// MarkitdownConverter runs the markitdown executable installed in the
// toolchain's virtual environment.
type MarkitdownConverter struct {
	run       runner.Runner
	toolchain types.ToolchainConfig
}

// NewMarkitdownConverter returns a converter for the toolchain described by
// tc. Defaults are filled in; the executable is looked up on every call.
func NewMarkitdownConverter(r runner.Runner, tc types.ToolchainConfig) *MarkitdownConverter {
	return &MarkitdownConverter{run: r, toolchain: toolchain.Resolve(tc)}
}

// WithToolchain returns a copy bound to a different toolchain. It
// implements ToolchainBinder.
func (m *MarkitdownConverter) WithToolchain(tc types.ToolchainConfig) Converter {
	return &MarkitdownConverter{run: m.run, toolchain: toolchain.Resolve(tc)}
}

// Executable is the resolved markitdown path.
func (m *MarkitdownConverter) Executable() string {
	return toolchain.NewLayout(m.toolchain.ProjectRoot).Markitdown()
}

// Convert runs markitdown on path and returns its stdout. A missing
// executable fails before anything is started. Any stderr output fails the
// conversion even when markitdown exits cleanly.
func (m *MarkitdownConverter) Convert(ctx context.Context, path string) (string, error) {
	exe := m.Executable()
	if !toolchain.Exists(exe) {
		return "", apperr.NotFound("markitdown executable not found at %s", exe)
	}

	out, err := runner.Capture(ctx, m.run, runner.Command{Name: exe, Args: []string{path}})
	if out.Stderr != "" {
		return "", apperr.External("markitdown reported an error for %s: %q", path, strings.TrimSpace(out.Stderr))
	}
	if err != nil {
		return "", fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	return out.Stdout, nil
}

// ContainerConverter pipes documents through the markitdown container image
// using docker or podman.
type ContainerConverter struct {
	runtime container.Runtime
}

// NewContainerConverter verifies that the markitdown image exists locally in
// rt before returning.
func NewContainerConverter(ctx context.Context, rt container.Runtime) (*ContainerConverter, error) {
	if err := rt.ImageExists(ctx, imageMarkitdown); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &ContainerConverter{runtime: rt}, nil
}

// Convert streams the document at path into the container and returns the
// Markdown it prints. The same stderr policy as MarkitdownConverter applies.
func (c *ContainerConverter) Convert(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFound("input file not found: %s", path)
		}
		return "", fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out, errOut strings.Builder
	runErr := c.runtime.Run(ctx, imageMarkitdown, f, &out, &errOut)
	if errOut.Len() > 0 {
		return "", apperr.External("markitdown container reported an error for %s: %q", path, strings.TrimSpace(errOut.String()))
	}
	if runErr != nil {
		return "", fmt.Errorf("converting %s with markitdown container: %w", path, runErr)
	}
	return out.String(), nil
}
