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
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaparooProject/zaparoo-ample/pkg/config"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replaces the global logger, so not parallel.
func TestInitLogging(t *testing.T) {
	orig, origWriter := log.Logger, logWriter
	t.Cleanup(func() {
		log.Logger = orig
		logWriter = origWriter
	})

	logDir := filepath.Join(t.TempDir(), "logs")
	var buf bytes.Buffer

	require.NoError(t, InitLogging(logDir, []io.Writer{&buf}))
	log.Info().Str("machine", "apple2e").Msg("hello")

	assert.True(t, strings.Contains(buf.String(), `"machine":"apple2e"`))
	_, err := os.Stat(filepath.Join(logDir, config.LogFile))
	require.NoError(t, err, "log file should be created")

	buf.Reset()
	_, err = LogWriter().Write([]byte("raw line\n"))
	require.NoError(t, err)
	assert.Equal(t, "raw line\n", buf.String())
}

func TestInitLogging_BadDir(t *testing.T) {
	orig := log.Logger
	t.Cleanup(func() { log.Logger = orig })

	file := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(file, []byte{}, 0o600))

	err := InitLogging(filepath.Join(file, "logs"), nil)
	require.Error(t, err)
}

func TestDirs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, config.AppName, filepath.Base(LogDir()))
	if _, ok := HasPortableDir(); !ok {
		assert.Equal(t, config.AppName, filepath.Base(ConfigDir()))
		assert.Equal(t, config.AppName, filepath.Base(DataDir()))
	}
}
