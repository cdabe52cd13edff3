// Zaparoo Ample
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Ample.
//
// Zaparoo Ample is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Ample is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Ample.  If not, see <http://www.gnu.org/licenses/>.

// Package command wraps process execution behind an interface so probe and
// launch code can be tested without running an emulator.
package command

import (
	"context"
	"os/exec"
)

// StartOptions configures how a process is run.
type StartOptions struct {
	// Dir is the working directory. Empty means the caller's directory.
	Dir string
	// HideWindow prevents a console window from appearing (Windows-only).
	HideWindow bool
}

// Executor runs external programs.
type Executor interface {
	// Run executes a command and waits for it to complete.
	Run(ctx context.Context, name string, args ...string) error

	// RunWithOptions executes a command with options and waits for it.
	RunWithOptions(ctx context.Context, opts StartOptions, name string, args ...string) error

	// Output runs a command and returns its standard output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)

	// Start starts a command without waiting for it to complete.
	Start(ctx context.Context, name string, args ...string) error

	// StartWithOptions starts a command with options without waiting.
	StartWithOptions(ctx context.Context, opts StartOptions, name string, args ...string) error
}

// RealExecutor runs commands with os/exec.
type RealExecutor struct{}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Run(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) RunWithOptions(
	ctx context.Context,
	opts StartOptions,
	name string,
	args ...string,
) error {
	return newCmd(ctx, opts, name, args...).Run()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) Start(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Start()
}

// StartWithOptions starts a detached-style child that is not waited on.
// The process is not tied to ctx so it outlives the request that started
// it.
//
//nolint:wrapcheck // Wrapping exec errors loses important context
func (*RealExecutor) StartWithOptions(
	_ context.Context,
	opts StartOptions,
	name string,
	args ...string,
) error {
	cmd := newCmd(context.Background(), opts, name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}
