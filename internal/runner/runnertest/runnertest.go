// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/pdiddy/mdbridge/internal/runner"
)

// Fake records every command and answers it with RunFunc. With no RunFunc,
// commands succeed silently. LookPath succeeds for names in OnPath.
type Fake struct {
	OnPath  map[string]string
	RunFunc func(ctx context.Context, cmd runner.Command) error

	mu    sync.Mutex
	calls []runner.Command
}

// Script returns a RunFunc that writes fixed stdout and stderr, then
// returns err.
func Script(stdout, stderr string, err error) func(context.Context, runner.Command) error {
	return func(_ context.Context, cmd runner.Command) error {
		if cmd.Stdout != nil {
			io.WriteString(cmd.Stdout, stdout)
		}
		if cmd.Stderr != nil {
			io.WriteString(cmd.Stderr, stderr)
		}
		return err
	}
}

func (f *Fake) LookPath(file string) (string, error) {
	if p, ok := f.OnPath[file]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH: " + file)
}

func (f *Fake) Run(ctx context.Context, cmd runner.Command) error {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	f.mu.Unlock()
	if f.RunFunc != nil {
		return f.RunFunc(ctx, cmd)
	}
	return nil
}

// Calls returns the commands run so far.
func (f *Fake) Calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]runner.Command, len(f.calls))
	copy(out, f.calls)
	return out
}
