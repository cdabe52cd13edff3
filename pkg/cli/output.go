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

package cli

import (
	"fmt"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-ample/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-ample/pkg/resolver"
	"github.com/rs/zerolog/log"
)

const listRowFormat = "%-16s %s\n"

func (a *App) printMachines(entries []catalog.MachineEntry) {
	for _, e := range entries {
		_, _ = fmt.Fprintf(a.Out, listRowFormat, e.Name, e.Description)
	}
}

func (a *App) listMachines() error {
	loader, err := a.catalog()
	if err != nil {
		return err
	}
	entries, err := loader.FlatMachines()
	if err != nil {
		return fmt.Errorf("failed to list machines: %w", err)
	}
	a.printMachines(entries)
	return nil
}

func (a *App) searchMachines(query string) error {
	loader, err := a.catalog()
	if err != nil {
		return err
	}
	entries, err := loader.FlatMachines()
	if err != nil {
		return fmt.Errorf("failed to list machines: %w", err)
	}
	a.printMachines(catalog.SearchMachines(entries, query))
	return nil
}

func (a *App) romReport() error {
	romsDir := a.Cfg.RomsDir(a.emulatorDir())
	if romsDir == "" {
		return ErrNoRomsDir
	}
	loader, err := a.catalog()
	if err != nil {
		return err
	}
	status, err := loader.RomStatus(romsDir)
	if err != nil {
		return fmt.Errorf("failed to check ROMs: %w", err)
	}

	missing := catalog.MissingRoms(status)
	_, _ = fmt.Fprintf(a.Out, "%d of %d ROM sets present in %s\n",
		len(status)-len(missing), len(status), romsDir)
	for _, rom := range missing {
		_, _ = fmt.Fprintf(a.Out, "missing: "+listRowFormat, rom.Value, rom.Description)
	}
	return nil
}

func (a *App) printHistory() error {
	if a.History == nil {
		return ErrNoHistory
	}
	entries, err := a.History.RecentLaunches(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read launch history: %w", err)
	}
	for _, e := range entries {
		cmd := ""
		if len(e.Args) > 0 {
			cmd = launcher.FormatCommandLine(e.Args[0], e.Args[1:])
		}
		_, _ = fmt.Fprintf(a.Out, "%s  %-12s %s\n",
			e.Time.Local().Format("2006-01-02 15:04"), e.Machine, cmd)
	}
	return nil
}

func (a *App) show(loader *catalog.Loader, m *catalog.Machine, r *resolver.Resolved) {
	desc := ""
	if root := m.RootNode(); root != nil {
		desc = root.Description
	}
	_, _ = fmt.Fprintf(a.Out, "Machine: %s", m.Name)
	if desc != "" {
		_, _ = fmt.Fprintf(a.Out, " (%s)", desc)
	}
	_, _ = fmt.Fprintln(a.Out)

	_, _ = fmt.Fprintln(a.Out, "Slots:")
	for _, as := range r.ActiveSlots {
		value, _ := r.Slots.Get(as.Slot.Name)
		choices := make([]string, 0, len(as.Slot.Options))
		for _, o := range as.Slot.Options {
			if o.Disabled {
				continue
			}
			if o.Value == "" {
				choices = append(choices, `""`)
			} else {
				choices = append(choices, o.Value)
			}
		}
		_, _ = fmt.Fprintf(a.Out, "%s%s = %q [%s]\n",
			strings.Repeat("  ", as.Depth+1), as.Slot.Name, value, strings.Join(choices, " "))
	}

	_, _ = fmt.Fprintln(a.Out, "Media:")
	var kind catalog.MediaKind
	for _, bay := range r.Bays {
		if bay.Kind != kind {
			kind = bay.Kind
			_, _ = fmt.Fprintf(a.Out, "  %s\n", kind.Label())
		}
		path, _ := r.Media.Get(bay.Key)
		_, _ = fmt.Fprintf(a.Out, "    %s = %s\n", bay.Key, path)
	}

	lists, err := loader.SoftwareLists(m.Name)
	if err != nil {
		log.Warn().Err(err).Msg("failed to load software lists")
		return
	}
	if len(lists) == 0 {
		return
	}
	_, _ = fmt.Fprintln(a.Out, "Software:")
	for _, sl := range lists {
		_, _ = fmt.Fprintf(a.Out, "  %s: %s (%d items)\n", sl.Name, sl.Description, len(sl.Items))
	}
	if r.Software != "" {
		_, _ = fmt.Fprintf(a.Out, "  selected: %s\n", r.Software)
	}
}
