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

// Package resolver computes the live configuration of a machine from its
// catalog description and the user's slot selections: which slots are
// reachable, which defaults apply, how many media bays exist and what they
// are called.
//
// Every operation is a bounded, synchronous walk over an immutable
// catalog.Machine. Nothing is cached between calls; callers recompute the
// whole view after each edit.
package resolver

import (
	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/rs/zerolog/log"
)

const (
	// MaxActiveSlotDepth bounds the walk collecting reachable slots.
	MaxActiveSlotDepth = 10
	// MaxDefaultDepth bounds the walk applying default selections.
	MaxDefaultDepth = 20
	// MaxMediaDepth bounds the walk aggregating media counts.
	MaxMediaDepth = 10
)

// ActiveSlot is a reachable slot together with the node that declares it.
type ActiveSlot struct {
	Slot  *catalog.Slot
	Owner catalog.NodeID
	Depth int
}

type walker struct {
	m         *catalog.Machine
	sel       *Selections
	op        string
	truncated bool
}

func (w *walker) done() {
	if w.truncated {
		log.Debug().
			Str("machine", w.m.Name).
			Str("op", w.op).
			Msg("depth limit reached, catalog walk truncated")
	}
}

// selectedOption returns the option of slot matching the current selection.
func selectedOption(slot *catalog.Slot, sel *Selections) (*catalog.Option, bool) {
	v, ok := sel.Get(slot.Name)
	if !ok {
		return nil, false
	}
	return slot.FindOption(v)
}

// optionTargets lists the nodes a chosen option expands into: its inline
// sub-tree followed by the device it names, when either exists.
func optionTargets(m *catalog.Machine, opt *catalog.Option) []catalog.NodeID {
	var targets []catalog.NodeID
	if opt.HasNode() {
		targets = append(targets, opt.Node)
	}
	if dev, ok := m.Device(opt.DeviceName); ok {
		targets = append(targets, dev)
	}
	return targets
}

// ResolveActiveSlots returns every slot reachable from the machine root
// under the current selections, depth-first in catalog order. A slot whose
// selection matches an option is followed by the slots of that option's
// sub-tree and referenced device. Devices listed on a node are walked for
// every node except the root, whose devices are only reachable by
// reference. Duplicate paths to the same device are each visited.
func ResolveActiveSlots(m *catalog.Machine, sel *Selections) []ActiveSlot {
	if m == nil || m.RootNode() == nil {
		return nil
	}
	w := &walker{m: m, sel: sel, op: "active_slots"}
	var out []ActiveSlot
	w.activeSlots(m.Root, 0, true, &out)
	w.done()
	return out
}

func (w *walker) activeSlots(id catalog.NodeID, depth int, isRoot bool, out *[]ActiveSlot) {
	if depth > MaxActiveSlotDepth {
		w.truncated = true
		return
	}
	node := w.m.Node(id)
	if node == nil {
		return
	}

	for i := range node.Slots {
		slot := &node.Slots[i]
		*out = append(*out, ActiveSlot{Slot: slot, Owner: id, Depth: depth})

		opt, ok := selectedOption(slot, w.sel)
		if !ok {
			continue
		}
		for _, target := range optionTargets(w.m, opt) {
			w.activeSlots(target, depth+1, false, out)
		}
	}

	if isRoot {
		return
	}
	for _, dev := range node.Devices {
		w.activeSlots(dev, depth+1, false, out)
	}
}

// ApplyDefaultSelections fills in defaults for every slot without a
// selection, walking the selected branches and all listed devices. The
// first option flagged default wins, even when its value is empty. Slots
// with no default option stay unset so the emulator's own default applies.
func ApplyDefaultSelections(m *catalog.Machine, sel *Selections) {
	if m == nil || sel == nil || m.RootNode() == nil {
		return
	}
	w := &walker{m: m, sel: sel, op: "defaults"}
	w.defaults(m.Root, 0)
	w.done()
}

func (w *walker) defaults(id catalog.NodeID, depth int) {
	if depth > MaxDefaultDepth {
		w.truncated = true
		return
	}
	node := w.m.Node(id)
	if node == nil {
		return
	}

	for i := range node.Slots {
		slot := &node.Slots[i]
		if !w.sel.Has(slot.Name) {
			if def, ok := slot.DefaultOption(); ok {
				w.sel.Set(slot.Name, def.Value)
			}
		}

		opt, ok := selectedOption(slot, w.sel)
		if ok && opt.HasNode() {
			w.defaults(opt.Node, depth+1)
		}
	}

	for _, dev := range node.Devices {
		w.defaults(dev, depth+1)
	}
}

// EffectiveSelections returns the selections that apply to the current
// configuration, in store order: entries naming a reachable slot whose
// value matches one of that slot's options. Stale values and selections
// for unreachable slots are dropped.
func EffectiveSelections(m *catalog.Machine, sel *Selections) *Selections {
	out := NewSelections()
	if m == nil || sel == nil {
		return out
	}

	active := make(map[string][]*catalog.Slot)
	for _, as := range ResolveActiveSlots(m, sel) {
		active[as.Slot.Name] = append(active[as.Slot.Name], as.Slot)
	}

	sel.Each(func(name, value string) {
		for _, slot := range active[name] {
			if _, ok := slot.FindOption(value); ok {
				out.Set(name, value)
				return
			}
		}
	})
	return out
}
