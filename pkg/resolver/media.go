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
	"strconv"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
)

// MediaTotals is the number of bays per media kind.
type MediaTotals map[catalog.MediaKind]int

// prunedAtZero lists the kinds dropped from totals when no bay remains.
// Floppy kinds are deliberately absent and survive at zero.
var prunedAtZero = []catalog.MediaKind{
	catalog.MediaHard,
	catalog.MediaCDROM,
	catalog.MediaCassette,
}

// AggregateMedia sums the media counts of every node reachable under the
// current selections. Selected options contribute their inline sub-tree
// and referenced device. Listed devices are walked for every node except
// the root. Hard disk, CD-ROM and cassette kinds whose total is zero or
// less are removed.
func AggregateMedia(m *catalog.Machine, sel *Selections) MediaTotals {
	totals := make(MediaTotals)
	if m == nil || m.RootNode() == nil {
		return totals
	}
	w := &walker{m: m, sel: sel, op: "media"}
	w.media(m.Root, 0, true, totals)
	w.done()
	PruneEmptyMedia(totals)
	return totals
}

func (w *walker) media(id catalog.NodeID, depth int, isRoot bool, totals MediaTotals) {
	if depth > MaxMediaDepth {
		w.truncated = true
		return
	}
	node := w.m.Node(id)
	if node == nil {
		return
	}

	for kind, count := range node.Media {
		totals[kind] += count
	}

	for i := range node.Slots {
		opt, ok := selectedOption(&node.Slots[i], w.sel)
		if !ok {
			continue
		}
		for _, target := range optionTargets(w.m, opt) {
			w.media(target, depth+1, false, totals)
		}
	}

	if isRoot {
		return
	}
	for _, dev := range node.Devices {
		w.media(dev, depth+1, false, totals)
	}
}

// PruneEmptyMedia removes hard disk, CD-ROM and cassette entries with no
// bays. Floppy entries are kept even at zero.
func PruneEmptyMedia(totals MediaTotals) {
	for _, kind := range prunedAtZero {
		if count, ok := totals[kind]; ok && count <= 0 {
			delete(totals, kind)
		}
	}
}

// Bay is a single removable media attachment point.
type Bay struct {
	Key   string
	Kind  catalog.MediaKind
	Index int
}

// Bays numbers the media bays of totals. Kinds are visited in
// catalog.MediaOrder and numbered 1-based per flag prefix, so 5.25" and
// 3.5" floppies share the flop sequence. A machine with exactly one
// cassette bay gets the bare key "cass".
func Bays(totals MediaTotals) []Bay {
	counters := make(map[string]int)
	var bays []Bay
	for _, kind := range catalog.MediaOrder {
		count, ok := totals[kind]
		if !ok {
			continue
		}
		prefix := kind.Prefix()
		for range max(count, 0) {
			counters[prefix]++
			idx := counters[prefix]
			key := prefix + strconv.Itoa(idx)
			if prefix == catalog.MediaCassette.Prefix() && idx == 1 && count == 1 {
				key = prefix
			}
			bays = append(bays, Bay{Key: key, Kind: kind, Index: idx})
		}
	}
	return bays
}

// DeriveMediaBayKeys returns the bay keys of totals in numbering order.
func DeriveMediaBayKeys(totals MediaTotals) []string {
	bays := Bays(totals)
	keys := make([]string, len(bays))
	for i, b := range bays {
		keys[i] = b.Key
	}
	return keys
}

// FilterStickyMedia keeps the assignments whose bay key still exists,
// preserving assignment order.
func FilterStickyMedia(assignments *Selections, keys []string) *Selections {
	active := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		active[k] = struct{}{}
	}
	out := NewSelections()
	assignments.Each(func(key, path string) {
		if _, ok := active[key]; ok {
			out.Set(key, path)
		}
	})
	return out
}
