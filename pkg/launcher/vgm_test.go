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

package launcher

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	testhelpers "github.com/ZaparooProject/zaparoo-ample/pkg/testing/helpers"
	"github.com/ZaparooProject/zaparoo-ample/pkg/testing/mocks"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var vgmExe = filepath.Join(emulatorDir, exeName(VGMEmulatorName))

func newVGMLauncher(t *testing.T) (*Launcher, *testhelpers.FSHelper, *mocks.MockCommandExecutor) {
	t.Helper()
	fs := newLauncherFS(t, emulatorExe, vgmExe)
	cmd := &mocks.MockCommandExecutor{}
	return NewLauncher(fs.Fs, cmd, emulatorExe), fs, cmd
}

// writesCapture makes the mocked emulator leave a capture behind on exit.
func writesCapture(t *testing.T, fs afero.Fs, machine, content string) func(mock.Arguments) {
	t.Helper()
	return func(mock.Arguments) {
		path := filepath.Join(emulatorDir, VGMCaptureFile(machine))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))
	}
}

func TestLauncher_LaunchVGM_MovesCapture(t *testing.T) {
	t.Parallel()
	l, fs, cmd := newVGMLauncher(t)

	dest := filepath.Join("/", "music", "new", "zork.vgm")
	cmd.On("RunWithOptions", mock.Anything,
		command.StartOptions{Dir: emulatorDir},
		vgmExe, []string{"apple2e", "-vgmwrite", "1"},
	).Run(writesCapture(t, fs.Fs, "apple2e", "capture")).Return(nil).Once()

	err := l.LaunchVGM(context.Background(), "apple2e", []string{VGMEmulatorName, "apple2e", "-vgmwrite", "1"}, dest)
	require.NoError(t, err)

	data, err := afero.ReadFile(fs.Fs, dest)
	require.NoError(t, err)
	assert.Equal(t, "capture", string(data))
	assert.False(t, fs.FileExists(filepath.Join(emulatorDir, VGMCaptureFile("apple2e"))))
	cmd.AssertExpectations(t)
}

func TestLauncher_LaunchVGM_ReplacesExisting(t *testing.T) {
	t.Parallel()
	l, fs, cmd := newVGMLauncher(t)

	dest := filepath.Join("/", "music", "zork.vgm")
	require.NoError(t, fs.WriteFile(dest, []byte("old")))
	cmd.On("RunWithOptions", mock.Anything, mock.Anything, vgmExe, mock.Anything).
		Run(writesCapture(t, fs.Fs, "apple2e", "new")).
		Return(errors.New("exit status 1")).Once()

	err := l.LaunchVGM(context.Background(), "apple2e", []string{VGMEmulatorName, "apple2e"}, dest)
	require.NoError(t, err, "a capture was written, so the exit status is not fatal")

	data, err := afero.ReadFile(fs.Fs, dest)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestLauncher_LaunchVGM_NoCapture(t *testing.T) {
	t.Parallel()
	l, _, cmd := newVGMLauncher(t)

	cmd.On("RunWithOptions", mock.Anything, mock.Anything, vgmExe, mock.Anything).Return(nil).Once()
	err := l.LaunchVGM(context.Background(), "apple2e", []string{VGMEmulatorName, "apple2e"}, "/music/a.vgm")
	require.ErrorIs(t, err, ErrNoVGMCapture)
}

func TestLauncher_LaunchVGM_RunFailure(t *testing.T) {
	t.Parallel()
	l, _, cmd := newVGMLauncher(t)

	runErr := errors.New("exec format error")
	cmd.On("RunWithOptions", mock.Anything, mock.Anything, vgmExe, mock.Anything).Return(runErr).Once()
	err := l.LaunchVGM(context.Background(), "apple2e", []string{VGMEmulatorName, "apple2e"}, "/music/a.vgm")
	require.ErrorIs(t, err, runErr)

	require.ErrorIs(t, l.LaunchVGM(context.Background(), "apple2e", nil, "/music/a.vgm"), ErrEmptyCommand)
}

func TestLauncher_UsesVGM(t *testing.T) {
	t.Parallel()

	l, _, _ := newVGMLauncher(t)
	assert.True(t, l.UsesVGM([]string{VGMEmulatorName, "apple2e"}))
	assert.True(t, l.UsesVGM([]string{vgmExe, "apple2e"}))
	assert.False(t, l.UsesVGM([]string{EmulatorName, "apple2e"}))
	assert.False(t, l.UsesVGM(nil))

	plain := NewLauncher(newLauncherFS(t, emulatorExe).Fs, &mocks.MockCommandExecutor{}, emulatorExe)
	assert.False(t, plain.UsesVGM([]string{VGMEmulatorName, "apple2e"}))
}
