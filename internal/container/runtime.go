// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container implements container runtime detection and execution
// for the containerized markitdown backend.
package container

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/mdbridge/internal/runner"
)

const (
	binDocker = "docker"
	binPodman = "podman"
)

// Runtime provides container operations: checking availability, verifying
// images, and running containers.
type Runtime interface {
	// Name returns the runtime name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary exists on PATH and
	// responds to an info command.
	Available(ctx context.Context) bool

	// ImageExists checks whether the named image exists locally.
	// Returns nil when the image is found, or an error describing the failure.
	ImageExists(ctx context.Context, image string) error

	// Run executes a container with the given image, piping stdin to the
	// container and collecting its stdout and stderr.
	Run(ctx context.Context, image string, stdin io.Reader, stdout, stderr io.Writer) error
}

// runtime implements Runtime for a specific container binary. Docker and
// Podman differ only in binary name and the image-check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	run           runner.Runner
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available(ctx context.Context) bool {
	if _, err := r.run.LookPath(r.bin); err != nil {
		return false
	}
	return r.run.Run(ctx, runner.Command{Name: r.bin, Args: []string{"info"}}) == nil
}

func (r *runtime) ImageExists(ctx context.Context, image string) error {
	args := make([]string, 0, len(r.imageCheckCmd)+1)
	args = append(args, r.imageCheckCmd...)
	args = append(args, image)

	if err := r.run.Run(ctx, runner.Command{Name: r.bin, Args: args}); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(ctx context.Context, image string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := runner.Command{
		Name:   r.bin,
		Args:   []string{"run", "--rm", "-i", image},
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}
	if err := r.run.Run(ctx, cmd); err != nil {
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(r runner.Runner) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		run:           r,
	}
}

func newPodmanRuntime(r runner.Runner) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		run:           r,
	}
}

// DetectRuntime tries docker first, falls back to podman. Returns an error
// if neither runtime is available.
func DetectRuntime(ctx context.Context, r runner.Runner) (Runtime, error) {
	docker := newDockerRuntime(r)
	if docker.Available(ctx) {
		return docker, nil
	}

	podman := newPodmanRuntime(r)
	if podman.Available(ctx) {
		return podman, nil
	}

	return nil, fmt.Errorf(
		"no container runtime available: neither %s nor %s found or operational",
		binDocker, binPodman,
	)
}
