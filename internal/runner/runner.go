// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner is the boundary between the pipeline and external
// processes. Production code runs commands through OS; tests substitute
// runnertest.Fake.
package runner

import (
	"bytes"
	"context"
	"io"
	"os/exec"
	"strings"
)

// Command describes one subprocess invocation.
type Command struct {
	Name   string
	Args   []string
	Dir    string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// Runner starts external processes.
type Runner interface {
	// LookPath searches PATH for an executable.
	LookPath(file string) (string, error)

	// Run starts the command and blocks until it exits or ctx is done.
	Run(ctx context.Context, cmd Command) error
}

// OS is the production Runner backed by os/exec.
type OS struct{}

func (OS) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OS) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = c.Stdin
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr
	return cmd.Run()
}

// Output is what a captured command wrote.
type Output struct {
	Stdout string
	Stderr string
}

// Capture runs c with stdout and stderr collected into unbounded buffers,
// so arbitrarily large documents fit. Any writers already set on c are
// replaced. The output is returned even when the command fails.
func Capture(ctx context.Context, r Runner, c Command) (Output, error) {
	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr
	err := r.Run(ctx, c)
	return Output{Stdout: stdout.String(), Stderr: stderr.String()}, err
}
