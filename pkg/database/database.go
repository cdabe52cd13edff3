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

package database

import (
	"time"
)

// LaunchEntry is one recorded emulator launch.
type LaunchEntry struct {
	Time     time.Time `json:"time"`
	ID       string    `json:"id"`
	Machine  string    `json:"machine"`
	Software string    `json:"software,omitempty"`
	Args     []string  `json:"args"`
	DBID     int64     `db:"DBID" json:"dbid"`
}

// HistoryDBI is the launch history store used by the CLI.
type HistoryDBI interface {
	AddLaunch(entry *LaunchEntry) error
	RecentLaunches(limit int) ([]LaunchEntry, error)
	CleanupHistory(retentionDays int) (int64, error)
	GetDBPath() string
	Close() error
}
