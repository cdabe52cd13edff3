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

//go:build deadlock

package syncutil

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	deadlock "github.com/sasha-s/go-deadlock"
)

const DeadlockEnabled = true

// Twice the emulator probe timeout. Nothing should hold a lock across a
// full probe.
const lockTimeout = 10 * time.Second

// reportWriter forwards detector reports to whatever logger is current at
// the time of the report.
type reportWriter struct{}

func (reportWriter) Write(p []byte) (int, error) {
	log.Error().Str("component", "deadlock").Msg(strings.TrimSpace(string(p)))
	return len(p), nil
}

func init() {
	deadlock.Opts.DeadlockTimeout = lockTimeout
	deadlock.Opts.LogBuf = reportWriter{}
}

type Mutex struct {
	deadlock.Mutex
}

type RWMutex struct {
	deadlock.RWMutex
}
