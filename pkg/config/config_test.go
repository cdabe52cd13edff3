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

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-ample/pkg/launcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestInstance(t *testing.T, content string) *Instance {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0o600))
	cfg := &Instance{
		cfgPath:  cfgPath,
		vals:     BaseDefaults,
		defaults: BaseDefaults,
	}
	require.NoError(t, cfg.Load())
	return cfg
}

func TestLoad_PreservesDefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	cfg := newTestInstance(t, fmt.Sprintf("config_schema = %d\n", SchemaVersion))

	assert.Equal(t, DefaultWindowScale, cfg.WindowScale())
	assert.True(t, cfg.BGFX())
	assert.Equal(t, launcher.NormalSpeed, cfg.Speed())
	assert.Equal(t, 90, cfg.HistoryRetention())
	assert.Empty(t, cfg.EmulatorPath())
	assert.Empty(t, cfg.LastMachine())
}

func TestLoad_OverridesDefaults(t *testing.T) {
	t.Parallel()

	cfg := newTestInstance(t, fmt.Sprintf(`config_schema = %d
debug_logging = true
last_machine = "macplus"

[emulator]
path = "/opt/mame/mame"

[paths]
resources = "/opt/ample/Resources"
roms = "/data/roms"
share = "/data/share"

[video]
window_scale = 3
bgfx = false
square_pixels = true
effect = "CRT Geometry"

[cpu]
speed = 200
rewind = true

[history]
retention_days = 0

[error_reporting]
dsn = "https://key@errors.example.org/1"
`, SchemaVersion))

	assert.True(t, cfg.DebugLogging())
	assert.Equal(t, "macplus", cfg.LastMachine())
	assert.Equal(t, "/opt/mame/mame", cfg.EmulatorPath())
	assert.Equal(t, "/opt/ample/Resources", cfg.ResourcesDir())
	assert.Equal(t, "/data/roms", cfg.RomsDir("/opt/mame"))
	assert.Equal(t, filepath.Join("/opt/mame", HashDirName), cfg.HashDir("/opt/mame"))
	assert.Equal(t, "/data/share", cfg.ShareDir())
	assert.Equal(t, 3, cfg.WindowScale())
	assert.False(t, cfg.BGFX())
	assert.Equal(t, 200, cfg.Speed())
	assert.Equal(t, 0, cfg.HistoryRetention())
	assert.Equal(t, "https://key@errors.example.org/1", cfg.ErrorReportingDSN())
}

func TestLoad_SchemaMismatch(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_schema = 99\n"), 0o600))

	cfg := &Instance{cfgPath: cfgPath, defaults: BaseDefaults}
	err := cfg.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema version mismatch")
}

func TestLoad_InvalidTOML(t *testing.T) {
	t.Parallel()

	cfgPath := filepath.Join(t.TempDir(), CfgFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte("config_schema = [\n"), 0o600))

	cfg := &Instance{cfgPath: cfgPath, defaults: BaseDefaults}
	require.Error(t, cfg.Load())
}

func TestLoadSave_NoPath(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	require.Error(t, cfg.Load())
	require.Error(t, cfg.Save())
}

func TestSave_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := newTestInstance(t, fmt.Sprintf("config_schema = %d\n", SchemaVersion))
	cfg.SetLastMachine("apple2e")
	cfg.SetEmulatorPath("/usr/games/mame")
	cfg.SetWindowScale(4)
	cfg.SetSpeed(50)
	cfg.SetHistoryRetention(7)
	cfg.SetBGFX(false)
	cfg.SetErrorReportingDSN("https://key@errors.example.org/2")
	require.NoError(t, cfg.Save())

	reloaded := &Instance{cfgPath: cfg.Path(), defaults: BaseDefaults}
	require.NoError(t, reloaded.Load())
	assert.Equal(t, "apple2e", reloaded.LastMachine())
	assert.Equal(t, "/usr/games/mame", reloaded.EmulatorPath())
	assert.Equal(t, 4, reloaded.WindowScale())
	assert.Equal(t, 50, reloaded.Speed())
	assert.Equal(t, 7, reloaded.HistoryRetention())
	assert.False(t, reloaded.BGFX())
	assert.Equal(t, "https://key@errors.example.org/2", reloaded.ErrorReportingDSN())
}

func TestPathDefaults(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}
	assert.Equal(t, filepath.Join("/opt/mame", RomsDirName), cfg.RomsDir("/opt/mame"))
	assert.Equal(t, filepath.Join("/opt/mame", HashDirName), cfg.HashDir("/opt/mame"))
	assert.Empty(t, cfg.RomsDir(""))
	assert.Empty(t, cfg.HashDir(""))
}

func TestUIOptions(t *testing.T) {
	t.Parallel()

	cfg := newTestInstance(t, fmt.Sprintf(`config_schema = %d
[video]
window_scale = 1
backend = "Direct3D 11"
effect = "CRT Geometry"
fullscreen = true
disk_sounds = true

[cpu]
no_throttle = true
debug = true

[paths]
share = "/data/share"
`, SchemaVersion))

	res := &catalog.Resolution{Width: 560, Height: 192}
	opts := cfg.UIOptions(res)

	assert.Same(t, res, opts.Resolution)
	assert.Equal(t, 1, opts.WindowScale)
	assert.True(t, opts.BGFX)
	assert.Equal(t, "direct3d11", opts.Backend)
	assert.Equal(t, "crt-geom", opts.Effect)
	assert.True(t, opts.Fullscreen)
	assert.True(t, opts.DiskSounds)
	assert.True(t, opts.NoThrottle)
	assert.True(t, opts.Debug)
	assert.Equal(t, launcher.NormalSpeed, opts.Speed)
	assert.Equal(t, "/data/share", opts.ShareDir)
	require.NoError(t, opts.Validate())
}

func TestNewConfig_WritesDefaults(t *testing.T) {
	t.Setenv(CfgEnv, "")

	dir := filepath.Join(t.TempDir(), "nested")
	cfg, err := NewConfig(dir, BaseDefaults)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, CfgFile), cfg.Path())
	_, err = os.Stat(cfg.Path())
	require.NoError(t, err, "config file should exist")
}

func TestNewConfig_EnvOverride(t *testing.T) {
	custom := filepath.Join(t.TempDir(), "custom.toml")
	t.Setenv(CfgEnv, custom)

	cfg, err := NewConfig(t.TempDir(), BaseDefaults)
	require.NoError(t, err)
	assert.Equal(t, custom, cfg.Path())
}

// Getters are called from the CLI while a background save may hold the
// lock; none of them may take the lock recursively.
func TestInstance_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	cfg := &Instance{}

	done := make(chan struct{})
	for range 10 {
		go func() {
			for range 100 {
				_ = cfg.UIOptions(nil)
				_ = cfg.HashDir("/opt/mame")
				cfg.SetLastMachine("apple2e")
			}
			done <- struct{}{}
		}()
	}

	for range 10 {
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("concurrent access deadlocked")
		}
	}
}
