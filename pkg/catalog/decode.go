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

package catalog

import (
	"bytes"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/rs/zerolog/log"
	"howett.net/plist"
)

type rawNode struct {
	Media       map[string]any `mapstructure:"media"`
	Name        string         `mapstructure:"name"`
	Description string         `mapstructure:"description"`
	Slots       []rawSlot      `mapstructure:"slots"`
	Devices     []rawNode      `mapstructure:"devices"`
}

type rawSlot struct {
	Name        string      `mapstructure:"name"`
	Description string      `mapstructure:"description"`
	Options     []rawOption `mapstructure:"options"`
}

type rawOption struct {
	Media       map[string]any `mapstructure:"media"`
	Name        string         `mapstructure:"name"`
	Value       string         `mapstructure:"value"`
	Description string         `mapstructure:"description"`
	DeviceName  string         `mapstructure:"devname"`
	Slots       []rawSlot      `mapstructure:"slots"`
	Devices     []rawNode      `mapstructure:"devices"`
	Default     bool           `mapstructure:"default"`
	Disabled    bool           `mapstructure:"disabled"`
}

type rawMachine struct {
	Media       map[string]any `mapstructure:"media"`
	Description string         `mapstructure:"description"`
	Slots       []rawSlot      `mapstructure:"slots"`
	Devices     []rawNode      `mapstructure:"devices"`
	Resolution  []int          `mapstructure:"resolution"`
	Software    []any          `mapstructure:"software"`
}

func (o *rawOption) hasContent() bool {
	return len(o.Slots) > 0 || len(o.Devices) > 0 || len(o.Media) > 0
}

// isTruthy accepts the spellings catalog documents use for boolean flags.
func isTruthy(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "1":
		return true
	default:
		return false
	}
}

// lenientHook turns values that cannot be converted to the target type
// into that type's zero value, so one malformed field never fails the
// whole document. Truthy strings decode into bool fields.
func lenientHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		switch to.Kind() {
		case reflect.Bool:
			switch from.Kind() {
			case reflect.Bool, reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
				reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
				reflect.Float32, reflect.Float64:
				return data, nil
			case reflect.String:
				s, _ := data.(string)
				return isTruthy(s), nil
			default:
				logDropped(data, "bool")
				return false, nil
			}
		case reflect.Int:
			if from.Kind() != reflect.String {
				if from.Kind() == reflect.Map || from.Kind() == reflect.Slice {
					logDropped(data, "int")
					return 0, nil
				}
				return data, nil
			}
			s, _ := data.(string)
			n, ok := parseCount(s)
			if !ok {
				logDropped(data, "int")
			}
			return n, nil
		case reflect.String:
			if from.Kind() == reflect.Map || from.Kind() == reflect.Slice {
				logDropped(data, "string")
				return "", nil
			}
		case reflect.Struct, reflect.Map:
			if from.Kind() != reflect.Map {
				logDropped(data, to.Kind().String())
				return map[string]any{}, nil
			}
		case reflect.Slice:
			if from.Kind() != reflect.Slice && from.Kind() != reflect.Array {
				logDropped(data, "list")
				return []any{}, nil
			}
		default:
		}
		return data, nil
	}
}

func logDropped(data any, want string) {
	log.Debug().
		Interface("value", data).
		Str("want", want).
		Msg("ignoring malformed catalog value")
}

// parseCount reads an integer from a string, accepting "2" and "2.0".
func parseCount(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f), true
	}
	return 0, false
}

// mediaCount converts a decoded media count. Values that are not numbers
// are reported as absent.
func mediaCount(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return int(n), true
	case float64:
		return int(n), true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		return parseCount(n)
	default:
		return 0, false
	}
}

func decodeRaw(input any, dest any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           dest,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		DecodeHook:       lenientHook(),
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := decoder.Decode(input); err != nil {
		return fmt.Errorf("failed to decode machine description: %w", err)
	}
	return nil
}

// DecodeMachine parses a plist machine description document.
func DecodeMachine(name string, data []byte) (*Machine, error) {
	var doc any
	if err := plist.NewDecoder(bytes.NewReader(data)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse plist for %s: %w", name, err)
	}
	return decodeMachineDoc(name, doc)
}

func decodeMachineDoc(name string, doc any) (*Machine, error) {
	var raw rawMachine
	if err := decodeRaw(doc, &raw); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	b := NewBuilder(name)
	root := b.Root()
	b.Node(root).Description = raw.Description

	// Top-level devices first so DeviceName references resolve to them.
	for i := range raw.Devices {
		b.AddDevice(root, Node{Name: raw.Devices[i].Name})
	}
	for i, id := range b.Node(root).Devices {
		fillNode(b, id, &raw.Devices[i])
	}

	addMedia(b, root, raw.Media)
	for i := range raw.Slots {
		addSlot(b, root, &raw.Slots[i])
	}

	if len(raw.Resolution) >= 2 && raw.Resolution[0] > 0 && raw.Resolution[1] > 0 {
		b.SetResolution(raw.Resolution[0], raw.Resolution[1])
	}

	for _, entry := range raw.Software {
		if ref, ok := parseSoftwareRef(entry); ok {
			b.AddSoftwareList(ref)
		}
	}

	return b.Build(), nil
}

func fillNode(b *Builder, id NodeID, raw *rawNode) {
	b.Node(id).Description = raw.Description
	addMedia(b, id, raw.Media)
	for i := range raw.Slots {
		addSlot(b, id, &raw.Slots[i])
	}
	for i := range raw.Devices {
		dev := b.AddDevice(id, Node{Name: raw.Devices[i].Name})
		fillNode(b, dev, &raw.Devices[i])
	}
}

func addMedia(b *Builder, id NodeID, media map[string]any) {
	for key, v := range media {
		kind, ok := ParseMediaKind(key)
		if !ok {
			log.Debug().Str("media", key).Msg("ignoring unknown media kind")
			continue
		}
		count, ok := mediaCount(v)
		if !ok {
			log.Debug().Str("media", key).Interface("count", v).Msg("ignoring malformed media count")
			continue
		}
		b.SetMedia(id, kind, count)
	}
}

func addSlot(b *Builder, owner NodeID, raw *rawSlot) {
	if raw.Name == "" {
		return
	}
	slot := Slot{
		Name:        raw.Name,
		Description: raw.Description,
		Options:     make([]Option, 0, len(raw.Options)),
	}
	for i := range raw.Options {
		ro := &raw.Options[i]
		opt := Option{
			Value:       ro.Value,
			Description: ro.Description,
			DeviceName:  ro.DeviceName,
			Default:     ro.Default,
			Disabled:    ro.Disabled,
			Node:        NoNode,
		}
		if ro.hasContent() {
			opt.Node = b.AddNode(Node{Name: ro.Name})
			fillNode(b, opt.Node, &rawNode{
				Media:       ro.Media,
				Description: ro.Description,
				Slots:       ro.Slots,
				Devices:     ro.Devices,
			})
		}
		slot.Options = append(slot.Options, opt)
	}
	b.AddSlot(owner, slot)
}

// parseSoftwareRef accepts a bare list name, a {name, filter} dictionary
// or a [name, filter] array.
func parseSoftwareRef(entry any) (SoftwareListRef, bool) {
	var ref SoftwareListRef
	switch v := entry.(type) {
	case string:
		ref.Name = v
	case map[string]any:
		ref.Name, _ = v["name"].(string)
		ref.Filter, _ = v["filter"].(string)
	case []any:
		if len(v) >= 1 {
			ref.Name, _ = v[0].(string)
		}
		if len(v) >= 2 {
			ref.Filter, _ = v[1].(string)
		}
	}
	ref.Name = strings.TrimSuffix(ref.Name, ".xml")
	return ref, ref.Name != ""
}
