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

// Package stat has code for reading the "STAT" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/stat
package stat

import (
	"fmt"
	"math"

	"seehuhn.de/go/vfcheck/font"
)

// Table contains the information from a "STAT" table.
type Table struct {
	DesignAxes []DesignAxis
	Values     []AxisValue

	// ElidedFallbackNameID is 0 for version 1.0 tables.
	ElidedFallbackNameID uint16
}

// DesignAxis describes one axis of the design space.
type DesignAxis struct {
	Tag      string
	NameID   uint16
	Ordering uint16
}

// AxisValue is an axis value record.
//
// Which of the value fields are meaningful depends on the format:
// format 1 uses Value, format 2 uses Nominal, RangeMin and RangeMax,
// format 3 uses Value and LinkedValue, and format 4 only uses Locations.
// For other formats only Format, Flags and NameID are set.
type AxisValue struct {
	Format    int
	AxisIndex int    // not used for format 4
	AxisTag   string // not used for format 4
	Flags     uint16
	NameID    uint16

	Value       float64
	LinkedValue float64
	Nominal     float64
	RangeMin    float64
	RangeMax    float64

	Locations []AxisLocation
}

// AxisLocation is one coordinate of a format 4 axis value record.
type AxisLocation struct {
	AxisIndex int
	AxisTag   string
	Value     float64
}

// Decode extracts information from the "STAT" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 18 {
		return nil, errMalformed("table too short")
	}
	major := uint16(data[0])<<8 | uint16(data[1])
	minor := uint16(data[2])<<8 | uint16(data[3])
	if major != 1 {
		return nil, &font.NotSupportedError{
			SubSystem: "sfnt/STAT",
			Feature:   fmt.Sprintf("table version %d.%d", major, minor),
		}
	}
	designAxisSize := int(data[4])<<8 | int(data[5])
	designAxisCount := int(data[6])<<8 | int(data[7])
	designAxesOffset := int(uint32(data[8])<<24 | uint32(data[9])<<16 | uint32(data[10])<<8 | uint32(data[11]))
	axisValueCount := int(data[12])<<8 | int(data[13])
	valueOffsetsOffset := int(uint32(data[14])<<24 | uint32(data[15])<<16 | uint32(data[16])<<8 | uint32(data[17]))

	t := &Table{}
	if minor >= 1 {
		if len(data) < 20 {
			return nil, errMalformed("table too short")
		}
		t.ElidedFallbackNameID = uint16(data[18])<<8 | uint16(data[19])
	}

	if designAxisCount > 0 {
		if designAxisSize < 8 {
			return nil, errMalformed("invalid design axis size")
		}
		end := designAxesOffset + designAxisCount*designAxisSize
		if designAxesOffset < 18 || end > len(data) {
			return nil, errMalformed("design axes out of bounds")
		}
		t.DesignAxes = make([]DesignAxis, designAxisCount)
		for i := range t.DesignAxes {
			rec := data[designAxesOffset+i*designAxisSize:]
			t.DesignAxes[i] = DesignAxis{
				Tag:      string(rec[0:4]),
				NameID:   uint16(rec[4])<<8 | uint16(rec[5]),
				Ordering: uint16(rec[6])<<8 | uint16(rec[7]),
			}
		}
	}

	if axisValueCount == 0 {
		return t, nil
	}
	if valueOffsetsOffset < 18 || valueOffsetsOffset+2*axisValueCount > len(data) {
		return nil, errMalformed("axis value offsets out of bounds")
	}
	base := data[valueOffsetsOffset:]
	t.Values = make([]AxisValue, 0, axisValueCount)
	for i := 0; i < axisValueCount; i++ {
		offs := int(base[2*i])<<8 | int(base[2*i+1])
		if offs >= len(base) {
			return nil, errMalformed("axis value out of bounds")
		}
		val, err := t.decodeValue(base[offs:])
		if err != nil {
			return nil, err
		}
		t.Values = append(t.Values, *val)
	}

	return t, nil
}

func (t *Table) decodeValue(rec []byte) (*AxisValue, error) {
	if len(rec) < 8 {
		return nil, errIncompleteValue
	}
	format := int(rec[0])<<8 | int(rec[1])
	val := &AxisValue{
		Format: format,
		Flags:  uint16(rec[4])<<8 | uint16(rec[5]),
		NameID: uint16(rec[6])<<8 | uint16(rec[7]),
	}

	switch format {
	case 1, 2, 3:
		need := [...]int{1: 12, 2: 20, 3: 16}[format]
		if len(rec) < need {
			return nil, errIncompleteValue
		}
		idx := int(rec[2])<<8 | int(rec[3])
		if idx >= len(t.DesignAxes) {
			return nil, errMalformed("axis index out of range")
		}
		val.AxisIndex = idx
		val.AxisTag = t.DesignAxes[idx].Tag
		switch format {
		case 1:
			val.Value = fixed(rec[8:])
		case 2:
			val.Nominal = fixed(rec[8:])
			val.RangeMin = fixed(rec[12:])
			val.RangeMax = fixed(rec[16:])
		case 3:
			val.Value = fixed(rec[8:])
			val.LinkedValue = fixed(rec[12:])
		}
	case 4:
		// format 4 has axisCount where the other formats have axisIndex
		count := int(rec[2])<<8 | int(rec[3])
		if len(rec) < 8+6*count {
			return nil, errIncompleteValue
		}
		val.Locations = make([]AxisLocation, count)
		for j := range val.Locations {
			loc := rec[8+6*j:]
			idx := int(loc[0])<<8 | int(loc[1])
			if idx >= len(t.DesignAxes) {
				return nil, errMalformed("axis index out of range")
			}
			val.Locations[j] = AxisLocation{
				AxisIndex: idx,
				AxisTag:   t.DesignAxes[idx].Tag,
				Value:     fixed(loc[2:]),
			}
		}
	default:
		// Records in unknown formats are kept with their header fields
		// only, so that the remaining records can still be used.
	}
	return val, nil
}

// Encode converts the table into a version 1.1 "STAT" table.
func (t *Table) Encode() []byte {
	const headerSize = 20
	const designAxisSize = 8

	designAxesOffset := headerSize
	valueOffsetsOffset := designAxesOffset + designAxisSize*len(t.DesignAxes)

	buf := make([]byte, headerSize, valueOffsetsOffset+2*len(t.Values))
	buf[1] = 1
	buf[3] = 1
	buf[5] = designAxisSize
	buf[6], buf[7] = byte(len(t.DesignAxes)>>8), byte(len(t.DesignAxes))
	buf = putUint32(buf, 8, uint32(designAxesOffset))
	buf[12], buf[13] = byte(len(t.Values)>>8), byte(len(t.Values))
	buf = putUint32(buf, 14, uint32(valueOffsetsOffset))
	buf[18], buf[19] = byte(t.ElidedFallbackNameID>>8), byte(t.ElidedFallbackNameID)

	for _, axis := range t.DesignAxes {
		var tag [4]byte
		copy(tag[:], axis.Tag)
		buf = append(buf, tag[:]...)
		buf = append(buf,
			byte(axis.NameID>>8), byte(axis.NameID),
			byte(axis.Ordering>>8), byte(axis.Ordering))
	}

	var records []byte
	offs := 2 * len(t.Values)
	for _, val := range t.Values {
		buf = append(buf, byte(offs>>8), byte(offs))
		rec := val.encode()
		records = append(records, rec...)
		offs += len(rec)
	}
	return append(buf, records...)
}

func (val *AxisValue) encode() []byte {
	second := val.AxisIndex
	if val.Format == 4 {
		second = len(val.Locations)
	}
	rec := []byte{
		byte(val.Format >> 8), byte(val.Format),
		byte(second >> 8), byte(second),
		byte(val.Flags >> 8), byte(val.Flags),
		byte(val.NameID >> 8), byte(val.NameID),
	}
	switch val.Format {
	case 1:
		rec = appendFixed(rec, val.Value)
	case 2:
		rec = appendFixed(rec, val.Nominal)
		rec = appendFixed(rec, val.RangeMin)
		rec = appendFixed(rec, val.RangeMax)
	case 3:
		rec = appendFixed(rec, val.Value)
		rec = appendFixed(rec, val.LinkedValue)
	case 4:
		for _, loc := range val.Locations {
			rec = append(rec, byte(loc.AxisIndex>>8), byte(loc.AxisIndex))
			rec = appendFixed(rec, loc.Value)
		}
	}
	return rec
}

func putUint32(buf []byte, pos int, x uint32) []byte {
	buf[pos] = byte(x >> 24)
	buf[pos+1] = byte(x >> 16)
	buf[pos+2] = byte(x >> 8)
	buf[pos+3] = byte(x)
	return buf
}

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
		SubSystem: "sfnt/STAT",
		Reason:    reason,
	}
}

var errIncompleteValue = &font.InvalidFontError{
	SubSystem: "sfnt/STAT",
	Reason:    "incomplete axis value record",
}
