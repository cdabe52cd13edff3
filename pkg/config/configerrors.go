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

// ErrorReporting configures opt-in crash and error reports.
type ErrorReporting struct {
	DSN string `toml:"dsn,omitempty"`
}

// ErrorReportingDSN returns the Sentry DSN errors are reported to. Empty
// means reporting is off.
func (c *Instance) ErrorReportingDSN() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.ErrorReporting.DSN
}

func (c *Instance) SetErrorReportingDSN(dsn string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.ErrorReporting.DSN = dsn
}
