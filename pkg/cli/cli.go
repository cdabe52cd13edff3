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
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-ample/pkg/launcher"
	"github.com/rs/zerolog"
)

// pairList collects repeated name=value flags in the order given.
type pairList struct {
	pairs [][2]string
}

func (p *pairList) String() string {
	parts := make([]string, len(p.pairs))
	for i, kv := range p.pairs {
		parts[i] = kv[0] + "=" + kv[1]
	}
	return strings.Join(parts, ",")
}

func (p *pairList) Set(v string) error {
	name, value, ok := strings.Cut(v, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", v)
	}
	p.pairs = append(p.pairs, [2]string{name, value})
	return nil
}

func (p *pairList) Pairs() [][2]string {
	return p.pairs
}

type Flags struct {
	set *flag.FlagSet

	Version  *bool
	Machines *bool
	Search   *string
	Machine  *string
	Slots    *pairList
	Media    *pairList
	Software *string
	Show     *bool
	Preview  *bool
	Launch   *bool
	CmdLine  *string
	Roms     *bool
	History  *bool
	Verbose  *bool
	Emulator *string
	NoProbe  *bool

	Scale        *int
	Fullscreen   *bool
	SquarePixels *bool
	BGFX         *bool
	Backend      *string
	Effect       *string
	Speed        *int
	NoThrottle   *bool
	Rewind       *bool
	Debug        *bool
	DiskSounds   *bool
	AVI          *string
	WAV          *string
	VGM          *string
	Mouse        *bool
	Share        *string
}

// SetupFlags defines the CLI flags on fs. Pass flag.CommandLine from main.
func SetupFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{
		set:   fs,
		Slots: &pairList{},
		Media: &pairList{},
	}

	f.Version = fs.Bool("version", false, "print version and exit")
	f.Machines = fs.Bool("machines", false, "list every machine in the catalog")
	f.Search = fs.String("search", "", "search machines by name or description")
	f.Machine = fs.String("machine", "", "machine to configure (defaults to the last one used)")
	fs.Var(f.Slots, "slot", "set a slot, as name=value (repeatable)")
	fs.Var(f.Media, "media", "mount media in a bay, as key=path (repeatable)")
	f.Software = fs.String("software", "", "software list item, as list:item")
	f.Show = fs.Bool("show", false, "print active slots, media bays and software lists")
	f.Preview = fs.Bool("preview", false, "print the emulator command line")
	f.Launch = fs.Bool("launch", false, "start the emulator")
	f.CmdLine = fs.String("cmdline", "", "launch a hand-edited command line")
	f.Roms = fs.Bool("roms", false, "report missing ROM sets")
	f.History = fs.Bool("history", false, "print recent launches")
	f.Verbose = fs.Bool("verbose", false, "log to stderr at debug level")
	f.Emulator = fs.String("emulator", "", "emulator executable (overrides config)")
	f.NoProbe = fs.Bool("noprobe", false, "skip asking the emulator which flags it supports")

	f.Scale = fs.Int("scale", 0, "window scale, 1 to 8")
	f.Fullscreen = fs.Bool("fullscreen", false, "run fullscreen")
	f.SquarePixels = fs.Bool("square", false, "use square pixels")
	f.BGFX = fs.Bool("bgfx", true, "use the BGFX renderer")
	f.Backend = fs.String("backend", "", "BGFX backend")
	f.Effect = fs.String("effect", "", "BGFX screen effect")
	f.Speed = fs.Int("speed", 0, "emulation speed in percent")
	f.NoThrottle = fs.Bool("nothrottle", false, "run as fast as possible")
	f.Rewind = fs.Bool("rewind", false, "enable rewind")
	f.Debug = fs.Bool("debug", false, "start the debugger")
	f.DiskSounds = fs.Bool("disksounds", false, "play disk drive samples")
	f.AVI = fs.String("avi", "", "record video to this file")
	f.WAV = fs.String("wav", "", "record audio to this file")
	f.VGM = fs.String("vgm", "", "record VGM to this file with the mame-vgm build")
	f.Mouse = fs.Bool("mouse", false, "capture the mouse")
	f.Share = fs.String("share", "", "host directory shared with the machine")

	return f
}

// Parse parses args, which exclude the program name.
func (f *Flags) Parse(args []string) error {
	if err := f.set.Parse(args); err != nil {
		return fmt.Errorf("failed to parse flags: %w", err)
	}
	return nil
}

func (f *Flags) isFlagPassed(name string) bool {
	found := false
	f.set.Visit(func(fl *flag.Flag) {
		if fl.Name == name {
			found = true
		}
	})
	return found
}

// ApplyUIOverrides copies explicitly passed UI flags over opts. Flags left
// unset keep the configured values.
func (f *Flags) ApplyUIOverrides(opts *launcher.UIOptions) {
	if f.isFlagPassed("scale") {
		opts.WindowScale = *f.Scale
	}
	if f.isFlagPassed("fullscreen") {
		opts.Fullscreen = *f.Fullscreen
	}
	if f.isFlagPassed("square") {
		opts.SquarePixels = *f.SquarePixels
	}
	if f.isFlagPassed("bgfx") {
		opts.BGFX = *f.BGFX
	}
	if f.isFlagPassed("backend") {
		opts.Backend = launcher.ParseBackend(*f.Backend)
	}
	if f.isFlagPassed("effect") {
		opts.Effect = launcher.ParseEffect(*f.Effect)
	}
	if f.isFlagPassed("speed") {
		opts.Speed = *f.Speed
	}
	if f.isFlagPassed("nothrottle") {
		opts.NoThrottle = *f.NoThrottle
	}
	if f.isFlagPassed("rewind") {
		opts.Rewind = *f.Rewind
	}
	if f.isFlagPassed("debug") {
		opts.Debug = *f.Debug
	}
	if f.isFlagPassed("disksounds") {
		opts.DiskSounds = *f.DiskSounds
	}
	if f.isFlagPassed("mouse") {
		opts.CaptureMouse = *f.Mouse
	}
	if f.isFlagPassed("share") {
		opts.ShareDir = *f.Share
	}
	opts.AVIPath = *f.AVI
	opts.WAVPath = *f.WAV
	opts.VGMPath = *f.VGM
}

// Setup initializes logging and loads the user config.
//
//nolint:gocritic // config struct copied for immutability
func Setup(defaults config.Values, writers []io.Writer) (*config.Instance, error) {
	if err := helpers.InitLogging(helpers.LogDir(), writers); err != nil {
		return nil, fmt.Errorf("error initializing logging: %w", err)
	}

	cfg, err := config.NewConfig(helpers.ConfigDir(), defaults)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if cfg.DebugLogging() || len(writers) > 0 {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	return cfg, nil
}
