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
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"howett.net/plist"
)

// FSHelper provides utilities for filesystem mocking in tests
type FSHelper struct {
	Fs afero.Fs
}

// NewMemoryFS creates a new in-memory filesystem for testing
func NewMemoryFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewMemMapFs(),
	}
}

// NewOSFS creates a filesystem helper using the real filesystem (for integration tests)
func NewOSFS() *FSHelper {
	return &FSHelper{
		Fs: afero.NewOsFs(),
	}
}

// WriteFile writes content to a file, creating parent directories.
func (h *FSHelper) WriteFile(path string, content []byte) error {
	if err := h.Fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for file %s: %w", path, err)
	}
	if err := afero.WriteFile(h.Fs, path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}
	return nil
}

// WritePlist encodes v as an XML property list at path.
func (h *FSHelper) WritePlist(path string, v any) error {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to marshal plist %s: %w", path, err)
	}
	return h.WriteFile(path, data)
}

// FileExists checks if a file exists
func (h *FSHelper) FileExists(path string) bool {
	exists, err := afero.Exists(h.Fs, path)
	if err != nil {
		return false
	}
	return exists
}

// CreateDirectoryStructure creates files and directories from a nested
// map: string or []byte values are files, maps are directories and nil is
// an empty directory.
func (h *FSHelper) CreateDirectoryStructure(basePath string, structure map[string]any) error {
	for name, content := range structure {
		fullPath := filepath.Join(basePath, name)

		switch v := content.(type) {
		case string:
			if err := h.WriteFile(fullPath, []byte(v)); err != nil {
				return err
			}
		case []byte:
			if err := h.WriteFile(fullPath, v); err != nil {
				return err
			}
		case map[string]any:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create directory %s: %w", fullPath, err)
			}
			if err := h.CreateDirectoryStructure(fullPath, v); err != nil {
				return err
			}
		case nil:
			if err := h.Fs.MkdirAll(fullPath, 0o755); err != nil {
				return fmt.Errorf("failed to create empty directory %s: %w", fullPath, err)
			}
		}
	}
	return nil
}

// Apple2eDoc returns a machine description shaped like the real Apple IIe
// catalog entry: a RAM size slot, a slot 6 Disk II controller with two
// 5.25" drives, a slot 7 hard disk controller with no default and a
// cassette port on the root.
func Apple2eDoc() map[string]any {
	return map[string]any{
		"description": "Apple //e",
		"resolution":  []any{560, 192},
		"media":       map[string]any{"cass": 1},
		"software": []any{
			"apple2_flop_orig.xml",
			map[string]any{"name": "apple2_cass", "filter": "A2E"},
		},
		"slots": []any{
			map[string]any{
				"name":        "ramsize",
				"description": "RAM",
				"options": []any{
					map[string]any{"value": "64K", "description": "64K"},
					map[string]any{"value": "128K", "description": "128K", "default": true},
				},
			},
			map[string]any{
				"name":        "sl6",
				"description": "Slot 6",
				"options": []any{
					map[string]any{"value": "", "description": "None"},
					map[string]any{
						"value":       "diskii",
						"description": "Disk II Controller",
						"default":     true,
						"devname":     "a2diskii",
						"media":       map[string]any{"floppy_5_25": 2},
					},
				},
			},
			map[string]any{
				"name":        "sl7",
				"description": "Slot 7",
				"options": []any{
					map[string]any{"value": "", "description": "None"},
					map[string]any{
						"value":       "cffa2",
						"description": "CFFA2000",
						"media":       map[string]any{"hard": 2},
					},
				},
			},
		},
	}
}

// Apple2eModels returns a small picker tree with a header group.
func Apple2eModels() []any {
	return []any{
		map[string]any{
			"description": "Apple II",
			"children": []any{
				map[string]any{"description": "Apple ][+", "value": "apple2p"},
				map[string]any{"description": "Apple //e", "value": "apple2e"},
				map[string]any{"description": "Apple //c", "value": "apple2c"},
			},
		},
		map[string]any{"description": "Macintosh Plus", "value": "macplus"},
	}
}

// SoftwareListXML is a minimal hash file with two disks, one marked for a
// different machine.
const SoftwareListXML = `<?xml version="1.0"?>
<!DOCTYPE softwarelist SYSTEM "softwarelist.dtd">
<softwarelist name="apple2_flop_orig" description="Apple II original disks">
	<software name="zork1">
		<description>Zork I</description>
		<sharedfeat name="compatibility" value="A2,A2E"/>
	</software>
	<software name="choplift">
		<description>Choplifter</description>
	</software>
	<software name="gsonly">
		<description>GS Exclusive</description>
		<sharedfeat name="compatibility" value="A2GS"/>
	</software>
</softwarelist>
`
