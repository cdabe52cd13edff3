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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"howett.net/plist"
)

const (
	ModelsFile = "models.plist"
	RomsFile   = "roms.plist"
)

// Model is an entry of the machine picker tree. Entries with an empty
// Value are grouping headers.
type Model struct {
	Description string  `plist:"description"`
	Value       string  `plist:"value"`
	Children    []Model `plist:"children"`
}

// MachineEntry is a selectable machine from the flattened model tree.
type MachineEntry struct {
	Name        string
	Description string
}

// Loader reads catalog documents from a resources directory and software
// list XML from a hash directory. Parsed documents are cached for the
// lifetime of the loader.
type Loader struct {
	fs           afero.Fs
	machines     map[string]*Machine
	software     map[string]*softwareList
	resourcesDir string
	hashDir      string
	models       []Model
	modelsLoaded bool
	mu           syncutil.Mutex
}

// NewLoader creates a loader over fs. hashDir may be empty, in which case
// no software lists are available.
func NewLoader(fs afero.Fs, resourcesDir, hashDir string) *Loader {
	return &Loader{
		fs:           fs,
		resourcesDir: resourcesDir,
		hashDir:      hashDir,
		machines:     make(map[string]*Machine),
		software:     make(map[string]*softwareList),
	}
}

func (l *Loader) readPlist(filename string, dest any) error {
	if l.resourcesDir == "" {
		return ErrNoResources
	}
	path := filepath.Join(l.resourcesDir, filename)
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := plist.NewDecoder(bytes.NewReader(data)).Decode(dest); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// Models returns the machine picker tree from models.plist.
func (l *Loader) Models() ([]Model, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.modelsLoaded {
		return l.models, nil
	}

	var models []Model
	if err := l.readPlist(ModelsFile, &models); err != nil {
		return nil, err
	}
	l.models = models
	l.modelsLoaded = true
	log.Debug().Int("groups", len(models)).Msg("loaded machine models")
	return models, nil
}

// FlatMachines returns every selectable machine in the model tree in
// depth-first order.
func (l *Loader) FlatMachines() ([]MachineEntry, error) {
	models, err := l.Models()
	if err != nil {
		return nil, err
	}
	return FlattenModels(models), nil
}

// FlattenModels walks a model tree depth-first, returning entries that
// carry a machine name. Missing descriptions fall back to the name.
func FlattenModels(models []Model) []MachineEntry {
	var machines []MachineEntry
	for i := range models {
		m := &models[i]
		if m.Value != "" {
			desc := m.Description
			if desc == "" {
				desc = m.Value
			}
			machines = append(machines, MachineEntry{Name: m.Value, Description: desc})
		}
		if len(m.Children) > 0 {
			machines = append(machines, FlattenModels(m.Children)...)
		}
	}
	return machines
}

// Machine loads and caches the description document of a machine.
func (l *Loader) Machine(name string) (*Machine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if m, ok := l.machines[name]; ok {
		return m, nil
	}
	if l.resourcesDir == "" {
		return nil, ErrNoResources
	}

	path := filepath.Join(l.resourcesDir, name+".plist")
	data, err := afero.ReadFile(l.fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrMachineNotFound, name)
	} else if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	m, err := DecodeMachine(name, data)
	if err != nil {
		return nil, err
	}
	l.machines[name] = m
	log.Debug().
		Str("machine", name).
		Int("nodes", len(m.Nodes)).
		Msg("loaded machine description")
	return m, nil
}
