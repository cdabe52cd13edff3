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

package resolver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelections_InsertionOrder(t *testing.T) {
	t.Parallel()

	s := NewSelections()
	s.Set("sl6", "diskii")
	s.Set("ramsize", "128K")
	s.Set("aux", "ext80")
	s.Set("sl6", "diskii1")

	assert.Equal(t, []string{"sl6", "ramsize", "aux"}, s.Keys())
	v, ok := s.Get("sl6")
	require.True(t, ok)
	assert.Equal(t, "diskii1", v)
}

func TestSelections_EmptyValueIsPresent(t *testing.T) {
	t.Parallel()

	s := SelectionsFrom("sl7", "")
	assert.True(t, s.Has("sl7"))
	assert.False(t, s.Has("sl6"))
}

func TestSelections_Delete(t *testing.T) {
	t.Parallel()

	s := SelectionsFrom("a", "1", "b", "2", "c", "3")
	s.Delete("b")
	s.Delete("missing")
	assert.Equal(t, []string{"a", "c"}, s.Keys())

	s.Set("b", "4")
	assert.Equal(t, []string{"a", "c", "b"}, s.Keys())
}

func TestSelections_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	s := SelectionsFrom("a", "1")
	c := s.Clone()
	c.Set("b", "2")
	c.Set("a", "9")

	assert.Equal(t, map[string]string{"a": "1"}, s.Map())
	assert.Equal(t, map[string]string{"a": "9", "b": "2"}, c.Map())
}

func TestSelections_Clear(t *testing.T) {
	t.Parallel()

	s := SelectionsFrom("a", "1", "b", "2")
	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Keys())
}

func TestSelections_NilSafeReads(t *testing.T) {
	t.Parallel()

	var s *Selections
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.Nil(t, s.Keys())
	assert.Equal(t, 0, s.Clone().Len())
	assert.NotPanics(t, func() {
		s.Each(func(string, string) { t.Error("unexpected entry") })
	})
}

func TestSelectionsFrom_OddPairsIgnoresTrailingKey(t *testing.T) {
	t.Parallel()

	s := SelectionsFrom("a", "1", "dangling")
	assert.Equal(t, []string{"a"}, s.Keys())
}
