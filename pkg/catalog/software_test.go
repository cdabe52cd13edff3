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

func TestParseSoftwareListXML(t *testing.T) {
	t.Parallel()

	data := []byte(`<softwarelist name="mac_flop">
	<software name="b"><description>Écran</description></software>
	<software name="a"><description>apple</description></software>
	<software name="c"><description>Zebra</description></software>
	<software name="nodesc"></software>
</softwarelist>`)

	desc, items, err := ParseSoftwareListXML("mac_flop", data)
	require.NoError(t, err)
	assert.Equal(t, "mac_flop", desc, "missing description falls back to the list name")

	var order []string
	for _, item := range items {
		order = append(order, item.Description)
	}
	assert.Equal(t, []string{"apple", "Écran", "nodesc", "Zebra"}, order)
}

func TestParseSoftwareListXML_Invalid(t *testing.T) {
	t.Parallel()

	_, _, err := ParseSoftwareListXML("broken", []byte("<softwarelist><software"))
	require.Error(t, err)
}

func TestFilterCompatible(t *testing.T) {
	t.Parallel()

	items := []SoftwareItem{
		{Name: "zork1", Compatibility: "A2,A2E"},
		{Name: "choplift"},
		{Name: "gsonly", Compatibility: "A2GS"},
		{Name: "prefix", Compatibility: "A2EX"},
	}

	tests := []struct {
		name     string
		filter   string
		expected []string
	}{
		{name: "no filter keeps all", filter: "", expected: []string{"zork1", "choplift", "gsonly", "prefix"}},
		{name: "exact entries only", filter: "A2E", expected: []string{"zork1", "choplift"}},
		{name: "unmatched keeps untagged", filter: "MAC", expected: []string{"choplift"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var names []string
			for _, item := range FilterCompatible(items, tt.filter) {
				names = append(names, item.Name)
			}
			assert.Equal(t, tt.expected, names)
		})
	}
}

func TestSplitSoftwareToken(t *testing.T) {
	t.Parallel()

	list, item, ok := SplitSoftwareToken("apple2_flop_orig:zork1")
	require.True(t, ok)
	assert.Equal(t, "apple2_flop_orig", list)
	assert.Equal(t, "zork1", item)

	for _, bad := range []string{"", "nocolon", ":item", "list:"} {
		_, _, ok := SplitSoftwareToken(bad)
		assert.False(t, ok, bad)
	}
}
