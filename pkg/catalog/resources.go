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

// ResourcesSubdir is where catalog documents live relative to an install.
var ResourcesSubdir = filepath.Join("Ample", "Resources")

// maxResourceLevels is how many directories FindResources checks, starting
// at the one it is given.
const maxResourceLevels = 3

// FindResources looks for Ample/Resources/models.plist in each given
// directory and up to two of its parents, returning the first resources
// directory found. Start directories are tried in order.
func FindResources(fs afero.Fs, startDirs ...string) (string, error) {
	for _, start := range startDirs {
		if start == "" {
			continue
		}
		dir := filepath.Clean(start)
		for range maxResourceLevels {
			candidate := filepath.Join(dir, ResourcesSubdir)
			if ok, _ := afero.Exists(fs, filepath.Join(candidate, ModelsFile)); ok {
				return candidate, nil
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}
	return "", ErrNoResources
}
