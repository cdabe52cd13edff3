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

package helpers

import (
	"testing"

	"github.com/ZaparooProject/zaparoo-ample/pkg/database"
	"github.com/stretchr/testify/require"
)

// AssertValidLaunchEntry checks the fields every stored launch must carry.
// A zero Time sorts the entry to the bottom of the history list forever.
func AssertValidLaunchEntry(t *testing.T, entry *database.LaunchEntry) {
	t.Helper()

	require.NotNil(t, entry, "LaunchEntry should not be nil")
	require.False(t, entry.Time.IsZero(), "LaunchEntry.Time must be set")
	require.NotEmpty(t, entry.ID, "LaunchEntry.ID is required")
	require.NotEmpty(t, entry.Machine, "LaunchEntry.Machine is required")
	require.NotNil(t, entry.Args, "LaunchEntry.Args must be non-nil")
}

// AssertValidLaunchEntries runs AssertValidLaunchEntry over a history page.
func AssertValidLaunchEntries(t *testing.T, entries []database.LaunchEntry) {
	t.Helper()

	for i := range entries {
		AssertValidLaunchEntry(t, &entries[i])
	}
}
