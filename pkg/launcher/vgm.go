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
	"fmt"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var ErrNoVGMCapture = errors.New("emulator wrote no VGM capture")

// VGMCaptureFile is the name the VGM build gives its capture in the
// emulator directory.
func VGMCaptureFile(machine string) string {
	return machine + "_0.vgm"
}

// UsesVGM reports whether argv runs the installed VGM build.
func (l *Launcher) UsesVGM(argv []string) bool {
	return len(argv) > 0 && l.HasVGM() && l.resolveExecutable(argv[0]) == l.vgmPath()
}

// LaunchVGM runs argv in the emulator directory, waits for it to exit and
// moves the capture of machine to dest. A non-zero exit is only an error
// when no capture was written.
func (l *Launcher) LaunchVGM(ctx context.Context, machine string, argv []string, dest string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	exe := l.resolveExecutable(argv[0])
	log.Info().
		Str("exe", exe).
		Strs("args", argv[1:]).
		Str("vgm", dest).
		Msg("launching emulator with VGM capture")

	runErr := l.exec.RunWithOptions(ctx, command.StartOptions{Dir: l.EmulatorDir()}, exe, argv[1:]...)
	if runErr != nil {
		log.Warn().Err(runErr).Msg("emulator exited with error")
	}

	src := filepath.Join(l.EmulatorDir(), VGMCaptureFile(machine))
	if ok, _ := afero.Exists(l.fs, src); !ok {
		if runErr != nil {
			return fmt.Errorf("failed to run %s: %w", exe, runErr)
		}
		return fmt.Errorf("%w: %s", ErrNoVGMCapture, src)
	}

	if err := moveFile(l.fs, src, dest); err != nil {
		return fmt.Errorf("failed to save VGM capture: %w", err)
	}
	log.Info().Str("path", dest).Msg("saved VGM capture")
	return nil
}

// moveFile replaces dst with src. Rename fails across volumes, so it falls
// back to copy and remove.
func moveFile(fs afero.Fs, src, dst string) error {
	if dir := filepath.Dir(dst); dir != "" {
		if err := fs.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	if ok, _ := afero.Exists(fs, dst); ok {
		if err := fs.Remove(dst); err != nil {
			return fmt.Errorf("failed to replace %s: %w", dst, err)
		}
	}

	if err := fs.Rename(src, dst); err == nil {
		return nil
	}

	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}
	if err := afero.WriteFile(fs, dst, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dst, err)
	}
	if err := fs.Remove(src); err != nil {
		return fmt.Errorf("failed to remove %s: %w", src, err)
	}
	return nil
}
