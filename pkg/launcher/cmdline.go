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
	"errors"
	"fmt"
	"runtime"
	"strings"

	shellquote "github.com/kballard/go-shellquote"
)

var (
	ErrEmptyCommand      = errors.New("empty command line")
	ErrUnterminatedQuote = errors.New("unterminated quote")
)

// Windows previews use double quotes only. Backslash is a path separator
// there, so it is never treated as an escape.
var windowsRules = runtime.GOOS == "windows"

// FormatCommandLine renders exe and args as a single shell-safe string for
// previewing and hand-editing.
func FormatCommandLine(exe string, args []string) string {
	argv := append([]string{exe}, args...)
	if windowsRules {
		return joinWindows(argv)
	}
	return shellquote.Join(argv...)
}

// SplitCommandLine parses an edited preview back into argv.
func SplitCommandLine(cmdline string) ([]string, error) {
	var argv []string
	var err error
	if windowsRules {
		argv, err = splitWindows(cmdline)
	} else {
		argv, err = shellquote.Split(cmdline)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse command line: %w", err)
	}
	if len(argv) == 0 {
		return nil, ErrEmptyCommand
	}
	return argv, nil
}

func joinWindows(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\"") {
			arg = `"` + strings.ReplaceAll(arg, `"`, `""`) + `"`
		}
		parts[i] = arg
	}
	return strings.Join(parts, " ")
}

// splitWindows splits on spaces and tabs outside double quotes. Inside
// quotes a doubled quote is a literal one.
func splitWindows(cmdline string) ([]string, error) {
	var (
		argv    []string
		cur     strings.Builder
		inToken bool
		quoted  bool
	)
	runes := []rune(cmdline)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			inToken = true
			if quoted && i+1 < len(runes) && runes[i+1] == '"' {
				cur.WriteRune('"')
				i++
				continue
			}
			quoted = !quoted
		case (r == ' ' || r == '\t') && !quoted:
			if inToken {
				argv = append(argv, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			inToken = true
			cur.WriteRune(r)
		}
	}
	if quoted {
		return nil, ErrUnterminatedQuote
	}
	if inToken {
		argv = append(argv, cur.String())
	}
	return argv, nil
}
