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
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/rs/zerolog/log"
)

// Resolved is the derived view of a session after a resolution pass.
type Resolved struct {
	MediaTotals MediaTotals
	// Slots holds the selections that apply to the reachable slots.
	Slots *Selections
	// Media holds assignments for bays that still exist, with cleaned paths.
	Media       *Selections
	Software    string
	ActiveSlots []ActiveSlot
	Bays        []Bay
}

// BayKeys returns the keys of the resolved bays in order.
func (r *Resolved) BayKeys() []string {
	keys := make([]string, len(r.Bays))
	for i, b := range r.Bays {
		keys[i] = b.Key
	}
	return keys
}

// Session owns the selection store for the currently chosen machine. It is
// meant to be driven from a single goroutine; results of background work
// must be handed to that goroutine rather than applied concurrently.
type Session struct {
	machine  *catalog.Machine
	slots    *Selections
	media    *Selections
	software string
}

// NewSession creates a session with no machine selected.
func NewSession() *Session {
	return &Session{
		slots: NewSelections(),
		media: NewSelections(),
	}
}

// Machine returns the selected machine, or nil.
func (s *Session) Machine() *catalog.Machine {
	return s.machine
}

// SelectMachine switches to m. Slot selections are reset and defaults
// applied. Media assignments are kept and only surface again where m
// exposes the same bay key. The software selection survives only if m
// accepts the same software list.
func (s *Session) SelectMachine(m *catalog.Machine) {
	s.machine = m
	s.slots.Clear()

	if s.software != "" {
		list, _, _ := catalog.SplitSoftwareToken(s.software)
		if m == nil || !m.SupportsSoftwareList(list) {
			log.Debug().Str("software", s.software).Msg("clearing unsupported software selection")
			s.software = ""
		}
	}

	ApplyDefaultSelections(m, s.slots)
}

// SetSlot selects value for the named slot and applies defaults to any
// slots the new choice exposes.
func (s *Session) SetSlot(name, value string) {
	s.slots.Set(name, value)
	ApplyDefaultSelections(s.machine, s.slots)
}

// Slot returns the raw selection for a slot.
func (s *Session) Slot(name string) (string, bool) {
	return s.slots.Get(name)
}

// Selections returns a copy of the raw slot selection store.
func (s *Session) Selections() *Selections {
	return s.slots.Clone()
}

// SetMedia assigns a file to a bay key. An empty path ejects the bay.
func (s *Session) SetMedia(key, path string) {
	if path == "" {
		s.media.Delete(key)
		return
	}
	s.media.Set(key, path)
}

// EjectMedia clears a bay assignment.
func (s *Session) EjectMedia(key string) {
	s.media.Delete(key)
}

// MediaAssignments returns a copy of every media assignment, including
// ones for bays the current configuration does not expose.
func (s *Session) MediaAssignments() *Selections {
	return s.media.Clone()
}

// SetSoftware selects a "list:item" software token.
func (s *Session) SetSoftware(token string) {
	s.software = token
}

// ClearSoftware removes the software selection.
func (s *Session) ClearSoftware() {
	s.software = ""
}

// Software returns the selected software token, or "".
func (s *Session) Software() string {
	return s.software
}

// SoftwareArgs returns the positional software arguments.
func (s *Session) SoftwareArgs() []string {
	if s.software == "" {
		return nil
	}
	return []string{s.software}
}

// Resolve recomputes the derived configuration from scratch.
func (s *Session) Resolve() Resolved {
	totals := AggregateMedia(s.machine, s.slots)
	bays := Bays(totals)

	keys := make([]string, len(bays))
	for i, b := range bays {
		keys[i] = b.Key
	}

	media := NewSelections()
	FilterStickyMedia(s.media, keys).Each(func(key, path string) {
		if path == "" {
			return
		}
		media.Set(key, filepath.Clean(path))
	})

	return Resolved{
		ActiveSlots: ResolveActiveSlots(s.machine, s.slots),
		Slots:       EffectiveSelections(s.machine, s.slots),
		MediaTotals: totals,
		Bays:        bays,
		Media:       media,
		Software:    s.software,
	}
}
