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

package helpers

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/adrg/xdg"
)

// PortableDir is the name of the directory which, when found next to the
// executable, holds config and data for a portable install.
const PortableDir = "user"

var (
	portableDirOnce   sync.Once
	portableDirCache  string
	portableDirExists bool
)

func ExeDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}

	return filepath.Dir(exe)
}

// HasPortableDir checks for a "user" directory next to the executable. The
// result is cached after the first call.
func HasPortableDir() (string, bool) {
	portableDirOnce.Do(func() {
		dir := ExeDir()
		if dir == "" {
			return
		}
		candidate := filepath.Join(dir, PortableDir)
		info, err := os.Stat(candidate)
		if err != nil || !info.IsDir() {
			return
		}
		portableDirCache = candidate
		portableDirExists = true
	})
	return portableDirCache, portableDirExists
}

func ConfigDir() string {
	if v, ok := HasPortableDir(); ok {
		return v
	}
	return filepath.Join(xdg.ConfigHome, config.AppName)
}

func DataDir() string {
	if v, ok := HasPortableDir(); ok {
		return v
	}
	return filepath.Join(xdg.DataHome, config.AppName)
}

// LogDir holds the rotated log file.
func LogDir() string {
	return filepath.Join(os.TempDir(), config.AppName)
}
