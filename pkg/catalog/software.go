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
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// SoftwareItem is one entry of a software list.
type SoftwareItem struct {
	Name          string
	Description   string
	Compatibility string
}

// Token is the positional emulator argument selecting this item.
func (s *SoftwareItem) Token(list string) string {
	return list + ":" + s.Name
}

// SoftwareList is a software list filtered for one machine.
type SoftwareList struct {
	Name        string
	Description string
	Items       []SoftwareItem
}

type softwareList struct {
	description string
	items       []SoftwareItem
}

type xmlSharedFeat struct {
	Name  string `xml:"name,attr"`
	Value string `xml:"value,attr"`
}

type xmlSoftware struct {
	Name        string          `xml:"name,attr"`
	Description *string         `xml:"description"`
	SharedFeats []xmlSharedFeat `xml:"sharedfeat"`
}

type xmlSoftwareList struct {
	XMLName     xml.Name      `xml:"softwarelist"`
	Name        string        `xml:"name,attr"`
	Description string        `xml:"description,attr"`
	Software    []xmlSoftware `xml:"software"`
}

// ParseSoftwareListXML decodes a software list hash file. Items are sorted
// case-insensitively by description.
func ParseSoftwareListXML(listName string, data []byte) (description string, items []SoftwareItem, err error) {
	var doc xmlSoftwareList
	if err := xml.Unmarshal(data, &doc); err != nil {
		return "", nil, fmt.Errorf("failed to unmarshal software list XML: %w", err)
	}

	description = doc.Description
	if description == "" {
		description = listName
	}

	items = make([]SoftwareItem, 0, len(doc.Software))
	for i := range doc.Software {
		sw := &doc.Software[i]
		item := SoftwareItem{Name: sw.Name, Description: sw.Name}
		if sw.Description != nil {
			item.Description = *sw.Description
		}
		for _, feat := range sw.SharedFeats {
			if feat.Name == "compatibility" {
				item.Compatibility = feat.Value
				break
			}
		}
		items = append(items, item)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return FoldKey(items[i].Description) < FoldKey(items[j].Description)
	})

	return description, items, nil
}

// loadSoftwareList reads and caches <hash>/<name>.xml. A missing file or
// hash directory yields (nil, nil).
func (l *Loader) loadSoftwareList(name string) (*softwareList, error) {
	if sl, ok := l.software[name]; ok {
		return sl, nil
	}
	if l.hashDir == "" {
		return nil, nil
	}

	path := filepath.Join(l.hashDir, name+".xml")
	data, err := afero.ReadFile(l.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read software list %s: %w", path, err)
	}

	desc, items, err := ParseSoftwareListXML(name, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	sl := &softwareList{description: desc, items: items}
	l.software[name] = sl
	return sl, nil
}

// SoftwareLists returns the software lists available to a machine, with
// each list's compatibility filter applied. Lists without a hash file are
// left out; lists that fail to parse are logged and skipped.
func (l *Loader) SoftwareLists(machine string) ([]SoftwareList, error) {
	m, err := l.Machine(machine)
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	results := make([]SoftwareList, 0, len(m.Software))
	for _, ref := range m.Software {
		sl, err := l.loadSoftwareList(ref.Name)
		if err != nil {
			log.Warn().Err(err).Str("list", ref.Name).Msg("error loading software list")
			continue
		}
		if sl == nil {
			continue
		}
		results = append(results, SoftwareList{
			Name:        ref.Name,
			Description: sl.description,
			Items:       FilterCompatible(sl.items, ref.Filter),
		})
	}
	return results, nil
}

// FilterCompatible keeps items without a compatibility feature and items
// whose comma separated compatibility list contains filter. An empty
// filter keeps everything.
func FilterCompatible(items []SoftwareItem, filter string) []SoftwareItem {
	if filter == "" {
		return items
	}
	filtered := make([]SoftwareItem, 0, len(items))
	for _, item := range items {
		if item.Compatibility == "" {
			filtered = append(filtered, item)
			continue
		}
		for _, c := range strings.Split(item.Compatibility, ",") {
			if c == filter {
				filtered = append(filtered, item)
				break
			}
		}
	}
	return filtered
}

// SplitSoftwareToken splits a "list:item" token.
func SplitSoftwareToken(token string) (list, item string, ok bool) {
	list, item, ok = strings.Cut(token, ":")
	if !ok || list == "" || item == "" {
		return "", "", false
	}
	return list, item, true
}
