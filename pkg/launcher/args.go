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

// Package launcher turns a resolved machine configuration into an emulator
// argument vector, probes the emulator for the flags it understands, and
// starts it.
package launcher

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/resolver"
)

// SkipGameInfoFlag is always passed to skip the emulator's startup info
// screens.
const SkipGameInfoFlag = "-skip_gameinfo"

// BuildArguments assembles the emulator argument vector. Token order is
// fixed:
//
//  1. machine name
//  2. software list tokens ("list:item"), positional
//  3. -skip_gameinfo
//  4. -<slot> <value> for each non-empty slot selection, in store order
//  5. -<bay> <path> for each media assignment, in store order
//  6. UI flags, see AppendUIArguments
//
// It performs no I/O. Capability filtering, when wanted, is applied to the
// inputs beforehand with FilterSlots and FilterMedia.
func BuildArguments(
	machine string,
	slots *resolver.Selections,
	media *resolver.Selections,
	softwareArgs []string,
	ui *UIOptions,
) []string {
	args := []string{machine}

	for _, sw := range softwareArgs {
		if sw != "" {
			args = append(args, sw)
		}
	}

	args = append(args, SkipGameInfoFlag)

	slots.Each(func(name, value string) {
		if value != "" {
			args = append(args, "-"+name, value)
		}
	})

	media.Each(func(key, path string) {
		if path != "" {
			args = append(args, "-"+key, filepath.Clean(path))
		}
	})

	if ui != nil {
		args = AppendUIArguments(args, ui)
	}
	return args
}

// AppendUIArguments appends the UI-sourced flags in this order: window
// mode and size, square pixel stretching, BGFX video, speed, rewind,
// debugger, samples, AVI/WAV/VGM capture, mouse capture, shared directory.
func AppendUIArguments(args []string, ui *UIOptions) []string {
	if ui.Fullscreen {
		args = append(args, "-nowindow", "-maximize")
	} else {
		args = append(args, "-window")
		if ui.WindowScale > 1 {
			if w, h, ok := WindowResolution(ui.Resolution, ui.WindowScale, ui.SquarePixels); ok {
				args = append(args, "-resolution", fmt.Sprintf("%dx%d", w, h))
			}
		} else {
			args = append(args, "-nomax")
		}
	}

	if ui.SquarePixels {
		args = append(args, "-nounevenstretch")
	}

	if ui.BGFX {
		args = append(args, "-video", "bgfx")
		if backend := ParseBackend(ui.Backend); backend != BackendDefault {
			args = append(args, "-bgfx_backend", backend)
		}
		if chain := ParseEffect(ui.Effect); chain != EffectDefault {
			args = append(args, "-bgfx_screen_chains", chain)
		}
	}

	switch {
	case ui.NoThrottle:
		args = append(args, "-nothrottle")
	case ui.Speed > 0 && ui.Speed != NormalSpeed:
		args = append(args, "-speed", formatSpeed(ui.Speed))
	}

	if ui.Rewind {
		args = append(args, "-rewind")
	}
	if ui.Debug {
		args = append(args, "-debug")
	}
	if !ui.DiskSounds {
		args = append(args, "-nosamples")
	}

	if ui.AVIPath != "" {
		args = append(args, "-aviwrite", ui.AVIPath)
	}
	if ui.WAVPath != "" {
		args = append(args, "-wavwrite", ui.WAVPath)
	}
	if ui.VGMPath != "" {
		// the VGM build only accepts "1"
		args = append(args, "-vgmwrite", "1")
	}

	if ui.CaptureMouse {
		args = append(args, "-mouse")
	}
	if ui.ShareDir != "" {
		args = append(args, "-share_directory", filepath.Clean(ui.ShareDir))
	}

	return args
}

// formatSpeed renders a percentage as the emulator's speed factor, always
// with a decimal point: 200 becomes "2.0", 125 becomes "1.25".
func formatSpeed(percent int) string {
	s := strconv.FormatFloat(float64(percent)/100.0, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
