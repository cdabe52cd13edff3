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
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatCommandLine(t *testing.T) {
	t.Parallel()

	line := FormatCommandLine("mame", []string{"apple2e", "-flop1", "/My Disks/Zork I.dsk"})
	assert.Equal(t, `mame apple2e -flop1 '/My Disks/Zork I.dsk'`, line)
}

func TestSplitCommandLine_RoundTrip(t *testing.T) {
	t.Parallel()

	argv := []string{"mame", "apple2e", "apple2_flop_orig:zork1", "-flop1", "/it's here/a.dsk"}
	parsed, err := SplitCommandLine(FormatCommandLine(argv[0], argv[1:]))
	require.NoError(t, err)
	assert.Equal(t, argv, parsed)
}

func TestSplitCommandLine_Errors(t *testing.T) {
	t.Parallel()

	_, err := SplitCommandLine("   ")
	require.ErrorIs(t, err, ErrEmptyCommand)

	_, err = SplitCommandLine(`mame apple2e -flop1 "/unterminated`)
	require.Error(t, err)
}

func TestSplitWindows_KeepsBackslashes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cmdline  string
		expected []string
	}{
		{
			name:     "unquoted drive path",
			cmdline:  `mame apple2e -flop1 C:\Disks\zork.dsk`,
			expected: []string{"mame", "apple2e", "-flop1", `C:\Disks\zork.dsk`},
		},
		{
			name:     "quoted path with spaces",
			cmdline:  `C:\MAME\mame.exe apple2e -flop1 "C:\My Disks\Zork I.dsk"`,
			expected: []string{`C:\MAME\mame.exe`, "apple2e", "-flop1", `C:\My Disks\Zork I.dsk`},
		},
		{
			name:     "share directory with trailing backslash",
			cmdline:  "mame  macplus\t-share_directory D:\\share\\ ",
			expected: []string{"mame", "macplus", "-share_directory", `D:\share\`},
		},
		{
			name:     "empty and doubled quotes",
			cmdline:  `mame "" "say ""hi"""`,
			expected: []string{"mame", "", `say "hi"`},
		},
		{
			name:     "quotes inside a word",
			cmdline:  `mame -flop1 C:\"My Disks"\a.dsk`,
			expected: []string{"mame", "-flop1", `C:\My Disks\a.dsk`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			argv, err := splitWindows(tt.cmdline)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, argv)
		})
	}
}

func TestSplitWindows_UnterminatedQuote(t *testing.T) {
	t.Parallel()

	_, err := splitWindows(`mame apple2e -flop1 "C:\Disks\zork.dsk`)
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestJoinWindows_RoundTrip(t *testing.T) {
	t.Parallel()

	argv := []string{`C:\MAME\mame.exe`, "apple2e", "-flop1", `C:\My Disks\Zork "I".dsk`, "", `C:\Disks\`}
	line := joinWindows(argv)
	assert.Equal(t, `C:\MAME\mame.exe apple2e -flop1 "C:\My Disks\Zork ""I"".dsk" "" C:\Disks\`, line)

	parsed, err := splitWindows(line)
	require.NoError(t, err)
	assert.Equal(t, argv, parsed)
}

func TestSplitCommandLine_PlatformRules(t *testing.T) {
	t.Parallel()

	argv, err := SplitCommandLine(`mame apple2e -flop1 C:\Disks\zork.dsk`)
	require.NoError(t, err)
	if runtime.GOOS == "windows" {
		assert.Equal(t, `C:\Disks\zork.dsk`, argv[3])
	} else {
		assert.Equal(t, "C:Diskszork.dsk", argv[3])
	}
}
