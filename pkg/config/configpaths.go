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

package config

import (
	"path/filepath"
)

const (
	HashDirName = "hash"
	RomsDirName = "roms"
)

type Emulator struct {
	Path string `toml:"path,omitempty"`
}

// Paths overrides the locations of catalog and emulator data. Empty values
// fall back to directories derived at runtime.
type Paths struct {
	Resources string `toml:"resources,omitempty"`
	Hash      string `toml:"hash,omitempty"`
	Roms      string `toml:"roms,omitempty"`
	Share     string `toml:"share,omitempty"`
}

// EmulatorPath returns the configured emulator executable, or "" to search
// for one.
func (c *Instance) EmulatorPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Emulator.Path
}

func (c *Instance) SetEmulatorPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Emulator.Path = path
}

// ResourcesDir returns the configured catalog directory, or "" to search
// for one.
func (c *Instance) ResourcesDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.Resources
}

// HashDir returns the software list directory. Defaults to the hash
// directory next to the emulator.
func (c *Instance) HashDir(emulatorDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Paths.Hash != "" {
		return c.vals.Paths.Hash
	}
	if emulatorDir == "" {
		return ""
	}
	return filepath.Join(emulatorDir, HashDirName)
}

// RomsDir returns the ROM directory. Defaults to the roms directory next
// to the emulator.
func (c *Instance) RomsDir(emulatorDir string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Paths.Roms != "" {
		return c.vals.Paths.Roms
	}
	if emulatorDir == "" {
		return ""
	}
	return filepath.Join(emulatorDir, RomsDirName)
}

// ShareDir is the host directory exposed to the emulated machine, or "".
func (c *Instance) ShareDir() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Paths.Share
}
