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

// Package catalog holds the typed machine catalog: the model tree used to
// pick a machine, the per-machine description documents (slots, devices,
// media) and the software lists each machine supports.
//
// Machine descriptions are stored as an arena of nodes. A machine, a slot
// option with nested content and a globally defined device all share the
// same Node shape and are addressed by NodeID, so shared device sub-trees
// are referenced by name instead of being copied into every option.
package catalog

import (
	"errors"
)

var (
	ErrMachineNotFound = errors.New("machine description not found")
	ErrNoResources     = errors.New("catalog resources directory not found")
)

// NodeID indexes a Node inside a Machine arena.
type NodeID int

// NoNode marks an option without an inline sub-tree.
const NoNode NodeID = -1

// MediaKind is a removable media type as reported by the catalog.
type MediaKind string

const (
	MediaFloppy525 MediaKind = "floppy_5_25"
	MediaFloppy35  MediaKind = "floppy_3_5"
	MediaHard      MediaKind = "hard"
	MediaCDROM     MediaKind = "cdrom"
	MediaCassette  MediaKind = "cassette"
)

// MediaOrder is the fixed order media kinds are numbered and displayed in.
var MediaOrder = []MediaKind{
	MediaFloppy525,
	MediaFloppy35,
	MediaHard,
	MediaCDROM,
	MediaCassette,
}

// ParseMediaKind maps a catalog media key to a MediaKind. Both "cassette"
// and the short "cass" spelling map to MediaCassette.
func ParseMediaKind(key string) (MediaKind, bool) {
	switch key {
	case "floppy_5_25":
		return MediaFloppy525, true
	case "floppy_3_5":
		return MediaFloppy35, true
	case "hard":
		return MediaHard, true
	case "cdrom":
		return MediaCDROM, true
	case "cassette", "cass":
		return MediaCassette, true
	default:
		return "", false
	}
}

// Prefix returns the emulator flag prefix used for bays of this kind.
func (k MediaKind) Prefix() string {
	switch k {
	case MediaFloppy525, MediaFloppy35:
		return "flop"
	case MediaHard:
		return "hard"
	case MediaCDROM:
		return "cdrom"
	case MediaCassette:
		return "cass"
	default:
		return string(k)
	}
}

// Label is the section heading a front-end shows for this kind.
func (k MediaKind) Label() string {
	switch k {
	case MediaFloppy525:
		return `5.25" Floppies`
	case MediaFloppy35:
		return `3.5" Floppies`
	case MediaHard:
		return "Hard Drives"
	case MediaCDROM:
		return "CD-ROMs"
	case MediaCassette:
		return "Cassettes"
	default:
		return string(k)
	}
}

// Resolution is the native display size of a machine.
type Resolution struct {
	Width  int
	Height int
}

// Option is one choice offered by a Slot.
type Option struct {
	// Value is assigned to the slot when chosen. An empty value is a
	// valid choice meaning "explicitly nothing".
	Value       string
	Description string
	// DeviceName references a device in the machine's top-level devices
	// list. Empty when the option has no device reference.
	DeviceName string
	// Node is the option's inline sub-tree, or NoNode.
	Node     NodeID
	Default  bool
	Disabled bool
}

// HasNode reports whether the option carries inline slots, devices or media.
func (o *Option) HasNode() bool {
	return o.Node != NoNode
}

// Slot is a named configuration point on a machine or device.
type Slot struct {
	Name        string
	Description string
	Options     []Option
}

// FindOption returns the first option whose value equals value.
func (s *Slot) FindOption(value string) (*Option, bool) {
	for i := range s.Options {
		if s.Options[i].Value == value {
			return &s.Options[i], true
		}
	}
	return nil, false
}

// DefaultOption returns the first option flagged as default, including
// disabled options and options with an empty value.
func (s *Slot) DefaultOption() (*Option, bool) {
	for i := range s.Options {
		if s.Options[i].Default {
			return &s.Options[i], true
		}
	}
	return nil, false
}

// Node is a machine, an option with nested content, or a device.
type Node struct {
	Media       map[MediaKind]int
	Name        string
	Description string
	Slots       []Slot
	Devices     []NodeID
}

// SoftwareListRef is a software list a machine accepts, with an optional
// compatibility filter.
type SoftwareListRef struct {
	Name   string
	Filter string
}

// Machine is the parsed description of one emulated machine. It is
// immutable once loaded.
type Machine struct {
	Resolution *Resolution
	devices    map[string]NodeID
	Name       string
	Nodes      []Node
	Software   []SoftwareListRef
	Root       NodeID
}

// Node returns the node with the given id. Out of range ids return nil.
func (m *Machine) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(m.Nodes) {
		return nil
	}
	return &m.Nodes[id]
}

// RootNode returns the top-level machine node.
func (m *Machine) RootNode() *Node {
	return m.Node(m.Root)
}

// Device looks up a globally defined device by name. The first device
// declared with the name wins.
func (m *Machine) Device(name string) (NodeID, bool) {
	if name == "" {
		return NoNode, false
	}
	id, ok := m.devices[name]
	return id, ok
}

// SupportsSoftwareList reports whether the machine accepts the named list.
func (m *Machine) SupportsSoftwareList(name string) bool {
	for _, ref := range m.Software {
		if ref.Name == name {
			return true
		}
	}
	return false
}

// Builder assembles a Machine arena. It is used by the plist decoder and
// is handy for constructing machines in tests.
type Builder struct {
	m *Machine
}

// NewBuilder starts a machine with an empty root node.
func NewBuilder(name string) *Builder {
	b := &Builder{m: &Machine{
		Name:    name,
		devices: make(map[string]NodeID),
	}}
	b.m.Root = b.AddNode(Node{Description: name})
	return b
}

// AddNode appends a node to the arena and returns its id.
func (b *Builder) AddNode(n Node) NodeID {
	b.m.Nodes = append(b.m.Nodes, n)
	return NodeID(len(b.m.Nodes) - 1)
}

// Node gives mutable access to a node while building.
func (b *Builder) Node(id NodeID) *Node {
	return b.m.Node(id)
}

// Root returns the root node id.
func (b *Builder) Root() NodeID {
	return b.m.Root
}

// AddSlot appends a slot to the node. Options with nested content must
// have their nodes added first.
func (b *Builder) AddSlot(owner NodeID, slot Slot) {
	n := b.m.Node(owner)
	n.Slots = append(n.Slots, slot)
}

// AddDevice appends a device node under owner. Devices attached to the
// root are also registered for DeviceName lookups.
func (b *Builder) AddDevice(owner NodeID, dev Node) NodeID {
	id := b.AddNode(dev)
	n := b.m.Node(owner)
	n.Devices = append(n.Devices, id)
	if owner == b.m.Root && dev.Name != "" {
		if _, exists := b.m.devices[dev.Name]; !exists {
			b.m.devices[dev.Name] = id
		}
	}
	return id
}

// SetMedia adds count units of kind to the node.
func (b *Builder) SetMedia(id NodeID, kind MediaKind, count int) {
	n := b.m.Node(id)
	if n.Media == nil {
		n.Media = make(map[MediaKind]int)
	}
	n.Media[kind] += count
}

// SetResolution records the machine's native display size.
func (b *Builder) SetResolution(width, height int) {
	b.m.Resolution = &Resolution{Width: width, Height: height}
}

// AddSoftwareList records a software list the machine accepts.
func (b *Builder) AddSoftwareList(ref SoftwareListRef) {
	b.m.Software = append(b.m.Software, ref)
}

// Build returns the finished machine. The builder must not be used after.
func (b *Builder) Build() *Machine {
	return b.m
}
