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
	"testing"

	testhelpers "github.com/ZaparooProject/zaparoo-ample/pkg/testing/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	resDir  = filepath.Join("/", "ample", "Resources")
	hashDir = filepath.Join("/", "ample", "hash")
	romsDir = filepath.Join("/", "ample", "roms")
)

func newTestLoader(t *testing.T) (*Loader, *testhelpers.FSHelper) {
	t.Helper()
	h := testhelpers.NewMemoryFS()
	require.NoError(t, h.WritePlist(filepath.Join(resDir, ModelsFile), testhelpers.Apple2eModels()))
	require.NoError(t, h.WritePlist(filepath.Join(resDir, "apple2e.plist"), testhelpers.Apple2eDoc()))
	require.NoError(t, h.WriteFile(
		filepath.Join(hashDir, "apple2_flop_orig.xml"),
		[]byte(testhelpers.SoftwareListXML),
	))
	return NewLoader(h.Fs, resDir, hashDir), h
}

func TestLoader_FlatMachines(t *testing.T) {
	t.Parallel()

	l, _ := newTestLoader(t)
	machines, err := l.FlatMachines()
	require.NoError(t, err)

	assert.Equal(t, []MachineEntry{
		{Name: "apple2p", Description: "Apple ][+"},
		{Name: "apple2e", Description: "Apple //e"},
		{Name: "apple2c", Description: "Apple //c"},
		{Name: "macplus", Description: "Macintosh Plus"},
	}, machines)
}

func TestFlattenModels_DescriptionFallback(t *testing.T) {
	t.Parallel()

	machines := FlattenModels([]Model{
		{Description: "Group", Children: []Model{{Value: "nodesc"}}},
	})
	assert.Equal(t, []MachineEntry{{Name: "nodesc", Description: "nodesc"}}, machines)
}

func TestLoader_MachineIsCached(t *testing.T) {
	t.Parallel()

	l, h := newTestLoader(t)
	first, err := l.Machine("apple2e")
	require.NoError(t, err)

	require.NoError(t, h.Fs.Remove(filepath.Join(resDir, "apple2e.plist")))
	second, err := l.Machine("apple2e")
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestLoader_MachineNotFound(t *testing.T) {
	t.Parallel()

	l, _ := newTestLoader(t)
	_, err := l.Machine("zx81")
	require.ErrorIs(t, err, ErrMachineNotFound)
}

func TestLoader_NoResourcesDir(t *testing.T) {
	t.Parallel()

	l := NewLoader(testhelpers.NewMemoryFS().Fs, "", "")
	_, err := l.Machine("apple2e")
	require.ErrorIs(t, err, ErrNoResources)
	_, err = l.Models()
	require.ErrorIs(t, err, ErrNoResources)
}

func TestLoader_SoftwareLists(t *testing.T) {
	t.Parallel()

	l, _ := newTestLoader(t)
	lists, err := l.SoftwareLists("apple2e")
	require.NoError(t, err)

	// apple2_cass has no hash file and is left out
	require.Len(t, lists, 1)
	list := lists[0]
	assert.Equal(t, "apple2_flop_orig", list.Name)
	assert.Equal(t, "Apple II original disks", list.Description)

	names := make([]string, len(list.Items))
	for i, item := range list.Items {
		names[i] = item.Name
	}
	assert.Equal(t, []string{"choplift", "gsonly", "zork1"}, names)
	assert.Equal(t, "apple2_flop_orig:zork1", list.Items[2].Token(list.Name))
}

func TestLoader_SoftwareListsWithoutHashDir(t *testing.T) {
	t.Parallel()

	_, h := newTestLoader(t)
	l := NewLoader(h.Fs, resDir, "")
	lists, err := l.SoftwareLists("apple2e")
	require.NoError(t, err)
	assert.Empty(t, lists)
}

func TestLoader_SoftwareListsSkipsBrokenXML(t *testing.T) {
	t.Parallel()

	l, h := newTestLoader(t)
	require.NoError(t, h.WriteFile(filepath.Join(hashDir, "apple2_cass.xml"), []byte("<softwarelist")))

	lists, err := l.SoftwareLists("apple2e")
	require.NoError(t, err)
	require.Len(t, lists, 1)
	assert.Equal(t, "apple2_flop_orig", lists[0].Name)
}

func TestLoader_RomStatus(t *testing.T) {
	t.Parallel()

	l, h := newTestLoader(t)
	require.NoError(t, h.WritePlist(filepath.Join(resDir, RomsFile), []any{
		map[string]any{"value": "apple2e", "description": "Apple //e"},
		map[string]any{"value": "macplus", "description": "Macintosh Plus"},
		map[string]any{"value": "a2diskii", "description": "Disk II"},
		map[string]any{"value": "cffa2", "description": "CFFA 2.0"},
	}))
	require.NoError(t, h.CreateDirectoryStructure(romsDir, map[string]any{
		"apple2e.zip": []byte{},
		"cffa2.7z":    []byte{},
		"macplus":     map[string]any{"342-0341-a.u6d": []byte{}},
	}))

	status, err := l.RomStatus(romsDir)
	require.NoError(t, err)
	require.Len(t, status, 4)

	present := make(map[string]bool)
	for _, s := range status {
		present[s.Value] = s.Exists
	}
	assert.Equal(t, map[string]bool{
		"apple2e":  true,
		"macplus":  true,
		"a2diskii": false,
		"cffa2":    true,
	}, present)

	missing := MissingRoms(status)
	require.Len(t, missing, 1)
	assert.Equal(t, "a2diskii", missing[0].Value)
}
