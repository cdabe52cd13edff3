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
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/ZaparooProject/zaparoo-ample/pkg/database"
	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-ample/pkg/launcher"
	"github.com/ZaparooProject/zaparoo-ample/pkg/resolver"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

var (
	ErrNoMachine       = errors.New("no machine selected")
	ErrInvalidSlot     = errors.New("slot is not available")
	ErrUnknownBay      = errors.New("media bay is not available")
	ErrInvalidSoftware = errors.New("invalid software selection")
	ErrNoRomsDir       = errors.New("ROM directory unknown, set paths.roms or the emulator path")
	ErrNoHistory       = errors.New("launch history unavailable")
)

const historyLimit = 25

// App runs CLI actions against the catalog, emulator and launch history.
type App struct {
	Out     io.Writer
	Fs      afero.Fs
	Exec    command.Executor
	Cfg     *config.Instance
	History database.HistoryDBI
	// AppDir and WorkDir are searched for the catalog resources and, for
	// AppDir, a bundled emulator.
	AppDir  string
	WorkDir string

	loader       *catalog.Loader
	prober       *launcher.Prober
	emulatorPath string
	emulatorErr  error
}

// Run performs the action selected by f. A machine with no action flag is
// previewed.
func (a *App) Run(ctx context.Context, f *Flags) error {
	configured := a.Cfg.EmulatorPath()
	if *f.Emulator != "" {
		configured = *f.Emulator
	}
	a.emulatorPath, a.emulatorErr = launcher.FindEmulator(a.Fs, a.AppDir, configured)
	if a.emulatorErr != nil {
		log.Warn().Err(a.emulatorErr).Msg("emulator not found")
	}

	switch {
	case *f.Machines:
		return a.listMachines()
	case f.isFlagPassed("search"):
		return a.searchMachines(*f.Search)
	case *f.Roms:
		return a.romReport()
	case *f.History:
		return a.printHistory()
	case *f.CmdLine != "":
		return a.launchCommandLine(ctx, *f.CmdLine, *f.VGM)
	}

	name := *f.Machine
	if name == "" {
		name = a.Cfg.LastMachine()
	}
	if name == "" {
		return ErrNoMachine
	}

	loader, err := a.catalog()
	if err != nil {
		return err
	}
	m, err := loader.Machine(name)
	if err != nil {
		return fmt.Errorf("failed to load machine: %w", err)
	}

	session, err := buildSession(m, f)
	if err != nil {
		return err
	}
	resolved := session.Resolve()

	if *f.Show {
		a.show(loader, m, &resolved)
		if !*f.Preview && !*f.Launch {
			return nil
		}
	}

	argv, vgmDest, err := a.buildCommand(ctx, m, session, &resolved, f)
	if err != nil {
		return err
	}

	if *f.Launch {
		return a.launch(ctx, m.Name, session.Software(), argv, vgmDest)
	}
	_, _ = fmt.Fprintln(a.Out, launcher.FormatCommandLine(argv[0], argv[1:]))
	return nil
}

func (a *App) emulatorDir() string {
	if a.emulatorPath == "" {
		return ""
	}
	return filepath.Dir(a.emulatorPath)
}

func (a *App) catalog() (*catalog.Loader, error) {
	if a.loader != nil {
		return a.loader, nil
	}

	resDir := a.Cfg.ResourcesDir()
	if resDir == "" {
		found, err := catalog.FindResources(a.Fs, a.AppDir, a.WorkDir)
		if err != nil {
			return nil, fmt.Errorf("failed to find catalog: %w", err)
		}
		resDir = found
	}
	log.Debug().Str("resources", resDir).Msg("using catalog")

	a.loader = catalog.NewLoader(a.Fs, resDir, a.Cfg.HashDir(a.emulatorDir()))
	return a.loader, nil
}

func (a *App) launcher() *launcher.Launcher {
	return launcher.NewLauncher(a.Fs, a.Exec, a.emulatorPath)
}

// buildSession selects m and applies the slot, media and software flags.
// Every requested slot and bay must survive resolution.
func buildSession(m *catalog.Machine, f *Flags) (*resolver.Session, error) {
	s := resolver.NewSession()
	s.SelectMachine(m)

	for _, kv := range f.Slots.Pairs() {
		s.SetSlot(kv[0], kv[1])
	}
	for _, kv := range f.Media.Pairs() {
		s.SetMedia(kv[0], kv[1])
	}
	if *f.Software != "" {
		list, _, ok := catalog.SplitSoftwareToken(*f.Software)
		if !ok {
			return nil, fmt.Errorf("%w: expected list:item, got %q", ErrInvalidSoftware, *f.Software)
		}
		if !m.SupportsSoftwareList(list) {
			return nil, fmt.Errorf("%w: %s does not use software list %s", ErrInvalidSoftware, m.Name, list)
		}
		s.SetSoftware(*f.Software)
	}

	r := s.Resolve()
	for _, kv := range f.Slots.Pairs() {
		if v, ok := r.Slots.Get(kv[0]); !ok || v != kv[1] {
			return nil, fmt.Errorf("%w: %s=%s", ErrInvalidSlot, kv[0], kv[1])
		}
	}
	keys := r.BayKeys()
	for _, kv := range f.Media.Pairs() {
		found := false
		for _, k := range keys {
			if k == kv[0] {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: %s (have %s)", ErrUnknownBay, kv[0], strings.Join(keys, ", "))
		}
	}
	return s, nil
}

// buildCommand returns the full argv, display executable first, and the
// VGM destination when capture is on. Without a known emulator the preview
// still works but nothing is filtered.
func (a *App) buildCommand(
	ctx context.Context,
	m *catalog.Machine,
	s *resolver.Session,
	r *resolver.Resolved,
	f *Flags,
) ([]string, string, error) {
	ui := a.Cfg.UIOptions(m.Resolution)
	f.ApplyUIOverrides(&ui)
	if err := ui.Validate(); err != nil {
		return nil, "", fmt.Errorf("failed to build command: %w", err)
	}
	if ui.VGMPath != "" && (a.emulatorPath == "" || !a.launcher().HasVGM()) {
		log.Warn().Msg("VGM build of the emulator not installed, capture disabled")
		ui.VGMPath = ""
	}

	exe := launcher.EmulatorName
	slots, media := r.Slots, r.Media
	if a.emulatorPath != "" {
		exe = a.launcher().DisplayName(ui.VGMPath != "")
		if !*f.NoProbe {
			if a.prober == nil {
				a.prober = launcher.NewProber(a.Exec, a.emulatorPath)
			}
			caps := a.prober.Probe(ctx, m.Name)
			slots = launcher.FilterSlots(caps, slots)
			media = launcher.FilterMedia(caps, media)
		}
	}

	args := launcher.BuildArguments(m.Name, slots, media, s.SoftwareArgs(), &ui)
	return append([]string{exe}, args...), ui.VGMPath, nil
}

// launch starts argv detached. With a VGM destination it instead waits for
// the emulator to exit and collects the capture.
func (a *App) launch(ctx context.Context, machine, software string, argv []string, vgmDest string) error {
	if a.emulatorErr != nil {
		return a.emulatorErr
	}

	l := a.launcher()
	if err := l.EnsureIni(ctx); err != nil {
		log.Warn().Err(err).Msg("continuing without emulator ini")
	}

	if vgmDest != "" && l.UsesVGM(argv) {
		a.recordLaunch(machine, software, argv)
		_, _ = fmt.Fprintf(a.Out, "Launched %s, waiting to collect VGM capture\n", machine)
		if err := l.LaunchVGM(ctx, machine, argv, vgmDest); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(a.Out, "Saved VGM capture to %s\n", vgmDest)
		return nil
	}

	if err := l.Launch(ctx, argv); err != nil {
		return err
	}

	a.recordLaunch(machine, software, argv)
	_, _ = fmt.Fprintf(a.Out, "Launched %s\n", machine)
	return nil
}

// launchCommandLine launches a hand-edited preview. A preview headed by the
// VGM build collects its capture when a destination was given.
func (a *App) launchCommandLine(ctx context.Context, cmdline, vgmDest string) error {
	if a.emulatorErr != nil {
		return a.emulatorErr
	}

	l := a.launcher()
	machine := ""
	if vgmDest != "" {
		argv, err := launcher.SplitCommandLine(strings.TrimSpace(cmdline))
		if err != nil {
			return err
		}
		machine = commandLineMachine(argv)
		if machine != "" && l.UsesVGM(argv) {
			a.recordLaunch(machine, "", argv)
			_, _ = fmt.Fprintf(a.Out, "Launched %s, waiting to collect VGM capture\n", machine)
			if err := l.LaunchVGM(ctx, machine, argv, vgmDest); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(a.Out, "Saved VGM capture to %s\n", vgmDest)
			return nil
		}
	}

	argv, err := l.LaunchCommandLine(ctx, cmdline)
	if err != nil {
		return err
	}

	if machine = commandLineMachine(argv); machine != "" {
		a.recordLaunch(machine, "", argv)
	}
	_, _ = fmt.Fprintf(a.Out, "Launched %s\n", launcher.FormatCommandLine(argv[0], argv[1:]))
	return nil
}

func commandLineMachine(argv []string) string {
	if len(argv) > 1 && !strings.HasPrefix(argv[1], "-") {
		return argv[1]
	}
	return ""
}

// recordLaunch stores the launch, prunes old history and remembers the
// machine. Failures are logged; the emulator is already running.
func (a *App) recordLaunch(machine, software string, argv []string) {
	if a.History != nil {
		err := a.History.AddLaunch(&database.LaunchEntry{
			Machine:  machine,
			Software: software,
			Args:     argv,
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to record launch")
		}
		if n, err := a.History.CleanupHistory(a.Cfg.HistoryRetention()); err != nil {
			log.Warn().Err(err).Msg("failed to clean up launch history")
		} else if n > 0 {
			log.Debug().Int64("deleted", n).Msg("pruned launch history")
		}
	}

	a.Cfg.SetLastMachine(machine)
	if err := a.Cfg.Save(); err != nil {
		log.Warn().Err(err).Msg("failed to save config")
	}
}
