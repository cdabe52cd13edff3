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

package config

// History configures the launch history database.
type History struct {
	RetentionDays *int `toml:"retention_days,omitempty"`
}

// HistoryRetention returns the number of days to keep launch history.
// Returns 0 if cleanup is disabled, or 90 by default.
func (c *Instance) HistoryRetention() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.History.RetentionDays == nil {
		return 90
	}
	return *c.vals.History.RetentionDays
}

func (c *Instance) SetHistoryRetention(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.History.RetentionDays = &days
}
