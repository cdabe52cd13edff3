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
	"strings"

	"github.com/ZaparooProject/zaparoo-ample/pkg/catalog"
	"github.com/go-playground/validator/v10"
)

const (
	BackendDefault = "default"
	EffectDefault  = "default"
	// NormalSpeed is the emulation speed percentage that needs no flag.
	NormalSpeed = 100
)

// effectChains maps front-end effect labels to BGFX screen chain names.
var effectChains = map[string]string{
	"Unfiltered":          "unfiltered",
	"HLSL":                "hlsl",
	"CRT Geometry":        "crt-geom",
	"CRT Geometry Deluxe": "crt-geom-deluxe",
	"LCD Grid":            "lcd-grid",
	"Fighters":            "fighters",
}

// ParseEffect accepts either a front-end label ("CRT Geometry") or a chain
// name ("crt-geom") and returns the chain name. Unknown values map to
// EffectDefault.
func ParseEffect(s string) string {
	if chain, ok := effectChains[s]; ok {
		return chain
	}
	for _, chain := range effectChains {
		if strings.EqualFold(chain, s) {
			return chain
		}
	}
	return EffectDefault
}

// ParseBackend normalizes a backend label ("Direct3D 11") into the value
// passed to -bgfx_backend ("direct3d11").
func ParseBackend(s string) string {
	b := strings.ToLower(strings.ReplaceAll(s, " ", ""))
	if b == "" {
		return BackendDefault
	}
	return b
}

// UIOptions are the user-facing emulator settings appended after the
// machine configuration.
type UIOptions struct {
	// Resolution is the native display size of the selected machine, used
	// to size scaled windows. Nil disables the resolution flag.
	Resolution *catalog.Resolution `validate:"-"`
	Backend    string              `validate:"omitempty,oneof=default opengl vulkan metal direct3d11 direct3d12"`
	Effect     string              `validate:"omitempty,oneof=default unfiltered hlsl crt-geom crt-geom-deluxe lcd-grid fighters"`
	AVIPath    string
	WAVPath    string
	// VGMPath is where the VGM build's capture is moved after the emulator
	// exits. Capture is off when empty.
	VGMPath  string
	ShareDir string
	// WindowScale is the integer window multiplier. Ignored in fullscreen.
	WindowScale int `validate:"min=0,max=8"`
	// Speed is the emulation speed in percent. Zero means normal speed.
	Speed        int `validate:"omitempty,min=10,max=1000"`
	Fullscreen   bool
	SquarePixels bool
	BGFX         bool
	NoThrottle   bool
	Rewind       bool
	Debug        bool
	DiskSounds   bool
	CaptureMouse bool
}

// DefaultUIOptions mirrors the front-end's initial state: BGFX on, a 2x
// window and everything else off.
func DefaultUIOptions() UIOptions {
	return UIOptions{
		WindowScale: 2,
		BGFX:        true,
		Backend:     BackendDefault,
		Effect:      EffectDefault,
		Speed:       NormalSpeed,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks option ranges and enumerations.
func (o *UIOptions) Validate() error {
	if err := validate.Struct(o); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			msgs := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				msgs = append(msgs, formatValidationError(fe))
			}
			return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

func formatValidationError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "min", "max":
		return fmt.Sprintf("%s out of range (%s %s)", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}

// WindowResolution computes the -resolution size for a scaled window.
//
// With square pixels a machine wider than 2:1 (the Apple II's 560x192) has
// its height doubled before scaling; other machines scale as-is. Without
// square pixels a wide machine is shown at 4:3 by deriving the height from
// the width. ok is false when no resolution flag applies: scale 1 or
// below, or an unknown native size.
func WindowResolution(res *catalog.Resolution, scale int, squarePixels bool) (width, height int, ok bool) {
	if res == nil || res.Width <= 0 || res.Height <= 0 || scale <= 1 {
		return 0, 0, false
	}

	w, h := res.Width, res.Height
	wide := float64(w)/float64(h) > 2.0

	if squarePixels {
		if wide {
			return w * scale, h * 2 * scale, true
		}
		return w * scale, h * scale, true
	}

	effH := h
	if wide {
		effH = w * 3 / 4
	}
	return w * scale, effH * scale, true
}
