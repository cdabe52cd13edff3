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
	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/ZaparooProject/zaparoo-ample/pkg/launcher"
)

const DefaultWindowScale = 2

// Video configures how the emulator window is presented.
type Video struct {
	WindowScale  *int   `toml:"window_scale,omitempty"`
	BGFX         *bool  `toml:"bgfx,omitempty"`
	Backend      string `toml:"backend,omitempty"`
	Effect       string `toml:"effect,omitempty"`
	Fullscreen   bool   `toml:"fullscreen,omitempty"`
	SquarePixels bool   `toml:"square_pixels,omitempty"`
	CaptureMouse bool   `toml:"capture_mouse,omitempty"`
	DiskSounds   bool   `toml:"disk_sounds,omitempty"`
}

// CPU configures emulation speed and debugging.
type CPU struct {
	// Speed is a percentage of normal speed.
	Speed      *int `toml:"speed,omitempty"`
	NoThrottle bool `toml:"no_throttle,omitempty"`
	Rewind     bool `toml:"rewind,omitempty"`
	Debug      bool `toml:"debug,omitempty"`
}

// WindowScale returns the integer window multiplier, 2 by default.
func (c *Instance) WindowScale() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Video.WindowScale == nil {
		return DefaultWindowScale
	}
	return *c.vals.Video.WindowScale
}

func (c *Instance) SetWindowScale(scale int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Video.WindowScale = &scale
}

// BGFX reports whether the BGFX renderer is used. Enabled by default.
func (c *Instance) BGFX() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.Video.BGFX == nil {
		return true
	}
	return *c.vals.Video.BGFX
}

func (c *Instance) SetBGFX(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Video.BGFX = &enabled
}

// Speed returns the emulation speed percentage, 100 by default.
func (c *Instance) Speed() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.vals.CPU.Speed == nil {
		return launcher.NormalSpeed
	}
	return *c.vals.CPU.Speed
}

func (c *Instance) SetSpeed(percent int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.CPU.Speed = &percent
}

// UIOptions builds emulator UI options from the saved settings for a
// machine with the given native resolution. Capture paths are per-launch
// and left empty.
func (c *Instance) UIOptions(res *catalog.Resolution) launcher.UIOptions {
	c.mu.RLock()
	defer c.mu.RUnlock()

	opts := launcher.DefaultUIOptions()
	opts.Resolution = res

	v := c.vals.Video
	if v.WindowScale != nil {
		opts.WindowScale = *v.WindowScale
	}
	if v.BGFX != nil {
		opts.BGFX = *v.BGFX
	}
	if v.Backend != "" {
		opts.Backend = launcher.ParseBackend(v.Backend)
	}
	if v.Effect != "" {
		opts.Effect = launcher.ParseEffect(v.Effect)
	}
	opts.Fullscreen = v.Fullscreen
	opts.SquarePixels = v.SquarePixels
	opts.CaptureMouse = v.CaptureMouse
	opts.DiskSounds = v.DiskSounds

	cpu := c.vals.CPU
	if cpu.Speed != nil {
		opts.Speed = *cpu.Speed
	}
	opts.NoThrottle = cpu.NoThrottle
	opts.Rewind = cpu.Rewind
	opts.Debug = cpu.Debug

	opts.ShareDir = c.vals.Paths.Share

	return opts
}
