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

package launcher

import (
	"bufio"
	"regexp"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/resolver"
	"github.com/rs/zerolog/log"
)

// AlwaysAllowedSlot is passed through even when the probe does not list
// it; -listslots does not report RAM size but the emulator accepts it.
const AlwaysAllowedSlot = "ramsize"

// NameSet is a set of flag names. A nil NameSet means "unknown".
type NameSet map[string]struct{}

// Known reports whether the set carries probe results.
func (s NameSet) Known() bool {
	return s != nil
}

// Contains reports whether name is in the set.
func (s NameSet) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

func newNameSet(names ...string) NameSet {
	s := make(NameSet, len(names))
	for _, n := range names {
		s[n] = struct{}{}
	}
	return s
}

// Capabilities is what the emulator reports it accepts for a machine.
type Capabilities struct {
	Slots NameSet
	Media NameSet
}

// FilterSlots drops selections for slots the emulator does not recognize.
// With unknown capabilities every selection is kept.
func FilterSlots(caps Capabilities, slots *resolver.Selections) *resolver.Selections {
	if !caps.Slots.Known() {
		return slots.Clone()
	}
	out := resolver.NewSelections()
	slots.Each(func(name, value string) {
		if caps.Slots.Contains(name) || name == AlwaysAllowedSlot {
			out.Set(name, value)
			return
		}
		log.Debug().Str("slot", name).Msg("skipping slot unknown to emulator")
	})
	return out
}

// FilterMedia drops assignments for bays the emulator does not recognize.
// With unknown capabilities every assignment is kept.
func FilterMedia(caps Capabilities, media *resolver.Selections) *resolver.Selections {
	if !caps.Media.Known() {
		return media.Clone()
	}
	out := resolver.NewSelections()
	media.Each(func(key, path string) {
		if caps.Media.Contains(key) {
			out.Set(key, path)
			return
		}
		log.Debug().Str("media", key).Msg("skipping media unknown to emulator")
	})
	return out
}

// ParseListSlots extracts slot names from -listslots output. Column
// offsets are taken from the dashed separator line; without one, the
// second field of system lines and the first field of other lines is used.
func ParseListSlots(machine, output string) NameSet {
	slots := newNameSet()
	slotCol := -1

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.Contains(trimmed, "SLOT NAME") {
			continue
		}
		if strings.HasPrefix(trimmed, "---") {
			slotCol = secondColumn(line)
			continue
		}

		if slotCol > 0 {
			if len(line) > slotCol && line[slotCol] != ' ' {
				if fields := strings.Fields(line[slotCol:]); len(fields) > 0 {
					slots[fields[0]] = struct{}{}
				}
			}
			continue
		}

		fields := strings.Fields(trimmed)
		if strings.HasPrefix(trimmed, machine) && len(fields) >= 2 {
			slots[fields[1]] = struct{}{}
		} else if len(fields) >= 1 {
			slots[fields[0]] = struct{}{}
		}
	}
	return slots
}

// secondColumn returns the offset of the second dash group in a separator
// line, or -1.
func secondColumn(sep string) int {
	inGap := false
	for i, r := range sep {
		switch {
		case r == ' ':
			inGap = true
		case inGap && r == '-':
			return i
		}
	}
	return -1
}

var briefNameRe = regexp.MustCompile(`\((\w+)\)`)

// ParseListMedia extracts the brief media names, found in parentheses,
// from -listmedia output.
func ParseListMedia(output string) NameSet {
	media := newNameSet()
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		m := briefNameRe.FindStringSubmatch(scanner.Text())
		if m == nil || m[1] == "brief" {
			continue
		}
		media[m[1]] = struct{}{}
	}
	return media
}
