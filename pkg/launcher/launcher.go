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
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	EmulatorName    = "mame"
	VGMEmulatorName = "mame-vgm"
	EmulatorBinDir  = "mame_bin"
	IniFile         = "mame.ini"
)

var ErrEmulatorNotFound = errors.New("emulator executable not found")

// lookPath is swapped in tests.
var lookPath = exec.LookPath

func exeName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}

func isFile(fs afero.Fs, path string) bool {
	fi, err := fs.Stat(path)
	return err == nil && !fi.IsDir()
}

// FindEmulator locates the emulator executable. The configured path is
// tried first, then <appDir>/mame_bin/mame and <appDir>/mame, and finally
// the PATH.
func FindEmulator(fs afero.Fs, appDir, configured string) (string, error) {
	var candidates []string
	if configured != "" && configured != EmulatorName {
		candidates = append(candidates, configured)
	}
	if appDir != "" {
		candidates = append(candidates,
			filepath.Join(appDir, EmulatorBinDir, exeName(EmulatorName)),
			filepath.Join(appDir, exeName(EmulatorName)),
		)
	}

	for _, p := range candidates {
		if isFile(fs, p) {
			log.Debug().Str("path", p).Msg("found emulator")
			return p, nil
		}
	}

	if p, err := lookPath(EmulatorName); err == nil {
		log.Debug().Str("path", p).Msg("found emulator on PATH")
		return p, nil
	}

	return "", ErrEmulatorNotFound
}

// Launcher starts the emulator and manages files next to it.
type Launcher struct {
	fs           afero.Fs
	exec         command.Executor
	emulatorPath string
}

// NewLauncher creates a launcher for the emulator at emulatorPath.
func NewLauncher(fs afero.Fs, exec command.Executor, emulatorPath string) *Launcher {
	return &Launcher{fs: fs, exec: exec, emulatorPath: emulatorPath}
}

// EmulatorPath returns the emulator executable path.
func (l *Launcher) EmulatorPath() string {
	return l.emulatorPath
}

// EmulatorDir is the working directory the emulator is run from, so it
// picks up its own mame.ini.
func (l *Launcher) EmulatorDir() string {
	return filepath.Dir(l.emulatorPath)
}

func (l *Launcher) vgmPath() string {
	return filepath.Join(l.EmulatorDir(), exeName(VGMEmulatorName))
}

// HasVGM reports whether the VGM-capable emulator build is installed.
func (l *Launcher) HasVGM() bool {
	return isFile(l.fs, l.vgmPath())
}

// DisplayName is the executable name shown at the head of a command
// preview: the VGM build when VGM capture is on and installed.
func (l *Launcher) DisplayName(vgm bool) string {
	if vgm && l.HasVGM() {
		return VGMEmulatorName
	}
	return EmulatorName
}

// EnsureIni generates mame.ini in the emulator directory when it does not
// exist yet.
func (l *Launcher) EnsureIni(ctx context.Context) error {
	dir := l.EmulatorDir()
	iniPath := filepath.Join(dir, IniFile)
	if ok, _ := afero.Exists(l.fs, iniPath); ok {
		return nil
	}

	log.Info().Str("dir", dir).Msg("generating emulator ini")
	err := l.exec.RunWithOptions(ctx, command.StartOptions{Dir: dir, HideWindow: true}, l.emulatorPath, "-cc")
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", IniFile, err)
	}
	return nil
}

// resolveExecutable maps the display names used in previews to real
// executables. Anything else is passed through untouched.
func (l *Launcher) resolveExecutable(name string) string {
	switch strings.ToLower(name) {
	case EmulatorName, EmulatorName + ".exe":
		return l.emulatorPath
	case VGMEmulatorName, VGMEmulatorName + ".exe":
		if l.HasVGM() {
			return l.vgmPath()
		}
	}
	return name
}

// Launch starts argv, whose first element is an executable or a display
// name from DisplayName, in the emulator directory. It does not wait for
// the process to exit.
func (l *Launcher) Launch(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return ErrEmptyCommand
	}

	exe := l.resolveExecutable(argv[0])
	log.Info().
		Str("exe", exe).
		Strs("args", argv[1:]).
		Msg("launching emulator")

	err := l.exec.StartWithOptions(ctx, command.StartOptions{Dir: l.EmulatorDir()}, exe, argv[1:]...)
	if err != nil {
		return fmt.Errorf("failed to launch %s: %w", exe, err)
	}
	return nil
}

// LaunchCommandLine parses a hand-edited preview and launches it.
func (l *Launcher) LaunchCommandLine(ctx context.Context, cmdline string) ([]string, error) {
	argv, err := SplitCommandLine(strings.TrimSpace(cmdline))
	if err != nil {
		return nil, err
	}
	if err := l.Launch(ctx, argv); err != nil {
		return nil, err
	}
	return argv, nil
}
