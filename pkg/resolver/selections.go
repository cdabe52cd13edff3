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

// Selections is an insertion-ordered string map. It backs both slot
// selections (slot name to option value) and media assignments (bay key
// to file path), so emitted arguments follow the order entries were first
// set in.
//
// Selections is not safe for concurrent use; a resolution pass assumes
// exclusive access.
type Selections struct {
	values map[string]string
	keys   []string
}

// NewSelections creates an empty store.
func NewSelections() *Selections {
	return &Selections{values: make(map[string]string)}
}

// SelectionsFrom builds a store from key/value pairs given in order.
func SelectionsFrom(pairs ...string) *Selections {
	s := NewSelections()
	for i := 0; i+1 < len(pairs); i += 2 {
		s.Set(pairs[i], pairs[i+1])
	}
	return s
}

// Get returns the value for key and whether it is present. A present
// empty value is distinct from an absent key.
func (s *Selections) Get(key string) (string, bool) {
	if s == nil {
		return "", false
	}
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Selections) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set assigns value to key. Updating an existing key keeps its position.
func (s *Selections) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Delete removes key if present.
func (s *Selections) Delete(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Clear removes every entry.
func (s *Selections) Clear() {
	s.values = make(map[string]string)
	s.keys = nil
}

// Len returns the number of entries.
func (s *Selections) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}

// Keys returns the keys in insertion order.
func (s *Selections) Keys() []string {
	if s == nil {
		return nil
	}
	keys := make([]string, len(s.keys))
	copy(keys, s.keys)
	return keys
}

// Each calls fn for every entry in insertion order.
func (s *Selections) Each(fn func(key, value string)) {
	if s == nil {
		return
	}
	for _, k := range s.keys {
		fn(k, s.values[k])
	}
}

// Clone returns an independent copy.
func (s *Selections) Clone() *Selections {
	c := NewSelections()
	s.Each(c.Set)
	return c
}

// Map returns the entries as a plain map.
func (s *Selections) Map() map[string]string {
	m := make(map[string]string, s.Len())
	s.Each(func(k, v string) { m[k] = v })
	return m
}
