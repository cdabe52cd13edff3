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
	"testing"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUIOptions_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		modify  func(*UIOptions)
		name    string
		wantErr string
	}{
		{name: "defaults", modify: func(*UIOptions) {}},
		{name: "zero speed means normal", modify: func(o *UIOptions) { o.Speed = 0 }},
		{name: "scale too large", modify: func(o *UIOptions) { o.WindowScale = 9 }, wantErr: "windowscale"},
		{name: "negative scale", modify: func(o *UIOptions) { o.WindowScale = -1 }, wantErr: "windowscale"},
		{name: "speed too low", modify: func(o *UIOptions) { o.Speed = 5 }, wantErr: "speed"},
		{name: "unknown backend", modify: func(o *UIOptions) { o.Backend = "directx9" }, wantErr: "backend must be one of"},
		{name: "unknown effect", modify: func(o *UIOptions) { o.Effect = "sepia" }, wantErr: "effect must be one of"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ui := DefaultUIOptions()
			tt.modify(&ui)
			err := ui.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseEffect(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "crt-geom-deluxe", ParseEffect("CRT Geometry Deluxe"))
	assert.Equal(t, "lcd-grid", ParseEffect("LCD-GRID"))
	assert.Equal(t, EffectDefault, ParseEffect("Default"))
	assert.Equal(t, EffectDefault, ParseEffect("sepia"))
}

func TestParseBackend(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "direct3d11", ParseBackend("Direct3D 11"))
	assert.Equal(t, "opengl", ParseBackend("OpenGL"))
	assert.Equal(t, BackendDefault, ParseBackend(""))
	assert.Equal(t, BackendDefault, ParseBackend("Default"))
}

func TestWindowResolution(t *testing.T) {
	t.Parallel()

	tests := []struct {
		res    *catalog.Resolution
		name   string
		scale  int
		width  int
		height int
		square bool
		ok     bool
	}{
		{name: "wide 4:3", res: &catalog.Resolution{Width: 560, Height: 192}, scale: 2, width: 1120, height: 840, ok: true},
		{name: "wide square", res: &catalog.Resolution{Width: 560, Height: 192}, scale: 3, square: true, width: 1680, height: 1152, ok: true},
		{name: "narrow", res: &catalog.Resolution{Width: 512, Height: 342}, scale: 2, width: 1024, height: 684, ok: true},
		{name: "narrow square", res: &catalog.Resolution{Width: 512, Height: 342}, scale: 2, square: true, width: 1024, height: 684, ok: true},
		{name: "scale one", res: &catalog.Resolution{Width: 512, Height: 342}, scale: 1},
		{name: "unknown size", scale: 2},
		{name: "zero height", res: &catalog.Resolution{Width: 512}, scale: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			w, h, ok := WindowResolution(tt.res, tt.scale, tt.square)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.width, w)
			assert.Equal(t, tt.height, h)
		})
	}
}
