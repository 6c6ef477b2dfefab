// seehuhn.de/go/vfcheck - consistency checks for OpenType variable fonts
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package fvar has code for reading the "fvar" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/fvar
package fvar

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"seehuhn.de/go/vfcheck/font"
)

// Table contains the information from an "fvar" table.
type Table struct {
	Axes      []Axis
	Instances []Instance
}

// Axis describes one axis of the design space.
type Axis struct {
	Tag     string
	Min     float64
	Default float64
	Max     float64
	Flags   uint16
	NameID  uint16
}

// Instance is a named instance, i.e. a named point in the design space.
type Instance struct {
	SubfamilyNameID uint16
	Flags           uint16

	// PostScriptNameID is 0 if the instance record has no PostScript name.
	PostScriptNameID uint16

	// Coordinates maps axis tags to design-space coordinates.
	Coordinates map[string]float64
}

// Location is a point in the design space, with coordinates listed in axis
// order.
type Location []Coord

// Coord is the coordinate of a Location along a single axis.
type Coord struct {
	Tag   string
	Value float64
}

func (loc Location) String() string {
	parts := make([]string, len(loc))
	for i, c := range loc {
		parts[i] = c.Tag + "=" + strconv.FormatFloat(c.Value, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

// Axis returns the axis with the given tag, or nil if there is no such axis.
func (t *Table) Axis(tag string) *Axis {
	for i := range t.Axes {
		if t.Axes[i].Tag == tag {
			return &t.Axes[i]
		}
	}
	return nil
}

// Location returns the coordinates of the instance in axis order.
// Axes not mentioned by the instance are set to their default value.
func (t *Table) Location(inst *Instance) Location {
	loc := make(Location, len(t.Axes))
	for i, axis := range t.Axes {
		v, ok := inst.Coordinates[axis.Tag]
		if !ok {
			v = axis.Default
		}
		loc[i] = Coord{Tag: axis.Tag, Value: v}
	}
	return loc
}

// Coords returns the coordinates which are explicitly given by the
// instance, in axis order.
func (t *Table) Coords(inst *Instance) Location {
	var loc Location
	for _, axis := range t.Axes {
		if v, ok := inst.Coordinates[axis.Tag]; ok {
			loc = append(loc, Coord{Tag: axis.Tag, Value: v})
		}
	}
	return loc
}

// Decode extracts information from the "fvar" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 16 {
		return nil, errMalformed("table too short")
	}
	major := uint16(data[0])<<8 | uint16(data[1])
	if major != 1 {
		return nil, &font.NotSupportedError{
			SubSystem: "sfnt/fvar",
			Feature:   fmt.Sprintf("table version %d", major),
		}
	}
	axesOffset := int(data[4])<<8 | int(data[5])
	axisCount := int(data[8])<<8 | int(data[9])
	axisSize := int(data[10])<<8 | int(data[11])
	instanceCount := int(data[12])<<8 | int(data[13])
	instanceSize := int(data[14])<<8 | int(data[15])

	if axisSize < 20 {
		return nil, errMalformed("invalid axis record size")
	}
	if instanceSize != 4*axisCount+4 && instanceSize != 4*axisCount+6 {
		return nil, errMalformed("invalid instance record size")
	}
	hasPSName := instanceSize == 4*axisCount+6

	instancesOffset := axesOffset + axisCount*axisSize
	if axesOffset < 16 || instancesOffset+instanceCount*instanceSize > len(data) {
		return nil, errMalformed("records out of bounds")
	}

	t := &Table{
		Axes: make([]Axis, axisCount),
	}
	seen := make(map[string]bool, axisCount)
	for i := range t.Axes {
		rec := data[axesOffset+i*axisSize:]
		tag := string(rec[0:4])
		if seen[tag] {
			return nil, errMalformed("duplicate axis " + strconv.Quote(tag))
		}
		seen[tag] = true
		t.Axes[i] = Axis{
			Tag:     tag,
			Min:     fixed(rec[4:]),
			Default: fixed(rec[8:]),
			Max:     fixed(rec[12:]),
			Flags:   uint16(rec[16])<<8 | uint16(rec[17]),
			NameID:  uint16(rec[18])<<8 | uint16(rec[19]),
		}
	}

	if instanceCount > 0 {
		t.Instances = make([]Instance, instanceCount)
	}
	for i := range t.Instances {
		rec := data[instancesOffset+i*instanceSize:]
		inst := Instance{
			SubfamilyNameID: uint16(rec[0])<<8 | uint16(rec[1]),
			Flags:           uint16(rec[2])<<8 | uint16(rec[3]),
			Coordinates:     make(map[string]float64, axisCount),
		}
		for j, axis := range t.Axes {
			inst.Coordinates[axis.Tag] = fixed(rec[4+4*j:])
		}
		if hasPSName {
			pos := 4 + 4*axisCount
			inst.PostScriptNameID = uint16(rec[pos])<<8 | uint16(rec[pos+1])
		}
		t.Instances[i] = inst
	}

	return t, nil
}

// Encode converts the table into its binary representation.
// All instance records include a PostScript name ID.
func (t *Table) Encode() []byte {
	axisCount := len(t.Axes)
	instanceSize := 4*axisCount + 6
	buf := make([]byte, 16, 16+20*axisCount+instanceSize*len(t.Instances))
	buf[1] = 1
	buf[5] = 16
	buf[7] = 2
	buf[8], buf[9] = byte(axisCount>>8), byte(axisCount)
	buf[11] = 20
	buf[12], buf[13] = byte(len(t.Instances)>>8), byte(len(t.Instances))
	buf[14], buf[15] = byte(instanceSize>>8), byte(instanceSize)

	for _, axis := range t.Axes {
		var tag [4]byte
		copy(tag[:], axis.Tag)
		buf = append(buf, tag[:]...)
		buf = appendFixed(buf, axis.Min)
		buf = appendFixed(buf, axis.Default)
		buf = appendFixed(buf, axis.Max)
		buf = append(buf,
			byte(axis.Flags>>8), byte(axis.Flags),
			byte(axis.NameID>>8), byte(axis.NameID))
	}
	for _, inst := range t.Instances {
		buf = append(buf,
			byte(inst.SubfamilyNameID>>8), byte(inst.SubfamilyNameID),
			byte(inst.Flags>>8), byte(inst.Flags))
		for _, axis := range t.Axes {
			v, ok := inst.Coordinates[axis.Tag]
			if !ok {
				v = axis.Default
			}
			buf = appendFixed(buf, v)
		}
		buf = append(buf,
			byte(inst.PostScriptNameID>>8), byte(inst.PostScriptNameID))
	}
	return buf
}

// fixed decodes a 16.16 fixed-point number.
func fixed(b []byte) float64 {
	v := int32(b[0])<<24 | int32(b[1])<<16 | int32(b[2])<<8 | int32(b[3])
	return float64(v) / 65536
}

func appendFixed(buf []byte, x float64) []byte {
	v := int32(math.Round(x * 65536))
	return append(buf, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func errMalformed(reason string) error {
	return &font.InvalidFontError{
		SubSystem: "sfnt/fvar",
		Reason:    reason,
	}
}
