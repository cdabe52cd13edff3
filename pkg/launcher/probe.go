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
	"context"
	"fmt"
	"time"

	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/command"
	"github.com/ZaparooProject/zaparoo-ample/pkg/helpers/syncutil"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// DefaultProbeTimeout bounds each capability query.
const DefaultProbeTimeout = 5 * time.Second

// Prober asks the emulator which slot and media flags a machine accepts.
// Successful answers are cached per machine for the prober's lifetime;
// failures are not cached and report unknown.
type Prober struct {
	exec     command.Executor
	slots    map[string]NameSet
	media    map[string]NameSet
	emulator string
	timeout  time.Duration
	mu       syncutil.Mutex
}

// NewProber creates a prober for the emulator at path.
func NewProber(exec command.Executor, emulator string) *Prober {
	return &Prober{
		exec:     exec,
		emulator: emulator,
		timeout:  DefaultProbeTimeout,
		slots:    make(map[string]NameSet),
		media:    make(map[string]NameSet),
	}
}

// SetTimeout overrides the per-query timeout.
func (p *Prober) SetTimeout(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.timeout = d
}

func (p *Prober) cached(machine string) (slots, media NameSet) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[machine], p.media[machine]
}

// Probe returns the capabilities of machine. It never fails: queries that
// error or time out leave the corresponding set unknown, which makes
// filtering pass everything through.
func (p *Prober) Probe(ctx context.Context, machine string) Capabilities {
	slots, media := p.cached(machine)
	if slots.Known() && media.Known() {
		return Capabilities{Slots: slots, Media: media}
	}

	var g errgroup.Group
	if !slots.Known() {
		g.Go(func() error {
			var err error
			slots, err = p.query(ctx, machine, "-listslots", func(out string) NameSet {
				return ParseListSlots(machine, out)
			})
			return err
		})
	}
	if !media.Known() {
		g.Go(func() error {
			var err error
			media, err = p.query(ctx, machine, "-listmedia", ParseListMedia)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		log.Warn().
			Err(err).
			Str("machine", machine).
			Msg("emulator capability probe failed")
	}

	p.mu.Lock()
	if slots.Known() {
		p.slots[machine] = slots
	}
	if media.Known() {
		p.media[machine] = media
	}
	p.mu.Unlock()

	return Capabilities{Slots: slots, Media: media}
}

func (p *Prober) query(
	ctx context.Context,
	machine string,
	flag string,
	parse func(string) NameSet,
) (NameSet, error) {
	p.mu.Lock()
	timeout := p.timeout
	p.mu.Unlock()

	qctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	out, err := p.exec.Output(qctx, p.emulator, machine, flag)
	if err != nil {
		return nil, fmt.Errorf("%s query failed: %w", flag, err)
	}
	return parse(string(out)), nil
}
