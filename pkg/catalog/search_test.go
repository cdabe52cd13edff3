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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testMachines = []MachineEntry{
	{Name: "apple2e", Description: "Apple //e"},
	{Name: "apple2gs", Description: "Apple IIgs"},
	{Name: "macplus", Description: "Macintosh Plus"},
	{Name: "mac512k", Description: "Macintosh 512K"},
	{Name: "to7", Description: "Thomson TO7"},
	{Name: "mo5", Description: "Thomson MO5 (Télématique)"},
}

func names(entries []MachineEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestSearchMachines(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{name: "empty returns all", query: "  ", expected: names(testMachines)},
		{name: "description substring", query: "macintosh", expected: []string{"macplus", "mac512k"}},
		{name: "name substring", query: "2gs", expected: []string{"apple2gs"}},
		{name: "case insensitive", query: "APPLE", expected: []string{"apple2e", "apple2gs"}},
		{name: "diacritic insensitive", query: "telematique", expected: []string{"mo5"}},
		{name: "no match", query: "amiga", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, names(SearchMachines(testMachines, tt.query)))
		})
	}
}

func TestFoldKey(t *testing.T) {
	t.Parallel()

	assert.Equal(t, FoldKey("ecran"), FoldKey("Écran"))
	assert.Equal(t, FoldKey("apple //e"), FoldKey("APPLE //E"))
	assert.NotEqual(t, FoldKey("apple"), FoldKey("apples"))
}

func TestSearchMachines_FuzzyRankedAfterSubstring(t *testing.T) {
	t.Parallel()

	results := names(SearchMachines(testMachines, "macintosh plsu"))
	require.NotEmpty(t, results)
	assert.Equal(t, "macplus", results[0], "closest fuzzy match first")
	assert.NotContains(t, results, "to7")

	results = names(SearchMachines(testMachines, "thomson"))
	assert.Equal(t, []string{"to7", "mo5"}, results[:2])
}
