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
	"sort"
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinFuzzySimilarity is the Jaro-Winkler score a machine must reach to be
// returned as a fuzzy match.
const MinFuzzySimilarity float32 = 0.85

// FoldKey normalizes s for case and diacritic insensitive comparison.
func FoldKey(s string) string {
	t := transform.Chain(
		norm.NFD,
		runes.Remove(runes.In(unicode.Mn)),
		norm.NFC,
	)
	if normalized, _, err := transform.String(t, s); err == nil {
		s = normalized
	}
	return cases.Fold().String(s)
}

type scoredMachine struct {
	entry      MachineEntry
	similarity float32
}

// SearchMachines returns machines whose description or name contains the
// query, in catalog order, followed by fuzzy matches on the description
// sorted by similarity. An empty query returns all machines.
func SearchMachines(machines []MachineEntry, query string) []MachineEntry {
	q := strings.TrimSpace(FoldKey(query))
	if q == "" {
		return machines
	}

	var results []MachineEntry
	seen := make(map[string]struct{})
	for _, m := range machines {
		if strings.Contains(FoldKey(m.Description), q) || strings.Contains(FoldKey(m.Name), q) {
			results = append(results, m)
			seen[m.Name] = struct{}{}
		}
	}

	var fuzzy []scoredMachine
	for _, m := range machines {
		if _, ok := seen[m.Name]; ok {
			continue
		}
		similarity := edlib.JaroWinklerSimilarity(q, FoldKey(m.Description))
		if similarity >= MinFuzzySimilarity {
			fuzzy = append(fuzzy, scoredMachine{entry: m, similarity: similarity})
		}
	}

	sort.SliceStable(fuzzy, func(i, j int) bool {
		return fuzzy[i].similarity > fuzzy[j].similarity
	})

	for _, f := range fuzzy {
		log.Debug().
			Str("query", query).
			Str("machine", f.entry.Name).
			Float32("similarity", f.similarity).
			Msg("fuzzy machine match")
		results = append(results, f.entry)
	}

	return results
}
