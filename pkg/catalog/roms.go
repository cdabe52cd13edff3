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

package catalog

import (
	"path/filepath"

	"github.com/spf13/afero"
)

// RomEntry is a ROM set listed in roms.plist.
type RomEntry struct {
	Value       string `plist:"value"`
	Description string `plist:"description"`
}

// RomStatus reports whether a ROM set is present in the ROM directory.
type RomStatus struct {
	RomEntry
	Exists bool
}

// Roms returns the ROM sets listed in roms.plist.
func (l *Loader) Roms() ([]RomEntry, error) {
	var roms []RomEntry
	if err := l.readPlist(RomsFile, &roms); err != nil {
		return nil, err
	}
	return roms, nil
}

// RomStatus checks every ROM set from roms.plist against romsDir. A set is
// present as <value>.zip, <value>.7z or an unpacked <value> directory.
func (l *Loader) RomStatus(romsDir string) ([]RomStatus, error) {
	roms, err := l.Roms()
	if err != nil {
		return nil, err
	}

	status := make([]RomStatus, 0, len(roms))
	for _, rom := range roms {
		status = append(status, RomStatus{
			RomEntry: rom,
			Exists:   romExists(l.fs, romsDir, rom.Value),
		})
	}
	return status, nil
}

func romExists(fs afero.Fs, romsDir, value string) bool {
	for _, ext := range []string{".zip", ".7z"} {
		if ok, _ := afero.Exists(fs, filepath.Join(romsDir, value+ext)); ok {
			return true
		}
	}
	ok, _ := afero.IsDir(fs, filepath.Join(romsDir, value))
	return ok
}

// MissingRoms filters a status list down to absent ROM sets.
func MissingRoms(status []RomStatus) []RomStatus {
	var missing []RomStatus
	for _, s := range status {
		if !s.Exists {
			missing = append(missing, s)
		}
	}
	return missing
}
