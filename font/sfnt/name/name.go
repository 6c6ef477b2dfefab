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

// Package name has code for reading and writing the "name" table.
// https://docs.microsoft.com/en-us/typography/opentype/spec/name
package name

import (
	"sort"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"

	"seehuhn.de/go/vfcheck/font"
)

// Platform IDs used in name records.
const (
	PlatformUnicode   = 0
	PlatformMacintosh = 1
	PlatformWindows   = 3
)

// Table contains the records of a "name" table.
type Table struct {
	Records []Record
}

// Record is a single name record, with the string already decoded.
// Macintosh records use the Cyrillic character set for encoding ID 7
// and the Roman character set otherwise.
type Record struct {
	PlatformID uint16
	EncodingID uint16
	LanguageID uint16
	NameID     uint16
	Value      string
}

// Lookup returns the string for the given name ID.
// English Windows names are preferred, then English Macintosh names,
// then any other decodable record.
func (t *Table) Lookup(nameID uint16) (string, bool) {
	if t == nil {
		return "", false
	}
	best := -1
	bestRank := 0
	for i, rec := range t.Records {
		if rec.NameID != nameID || rec.Value == "" {
			continue
		}
		rank := rank(rec)
		if best < 0 || rank < bestRank {
			best = i
			bestRank = rank
		}
	}
	if best < 0 {
		return "", false
	}
	return t.Records[best].Value, true
}

func rank(rec Record) int {
	switch {
	case rec.PlatformID == PlatformWindows && rec.EncodingID == 1 && rec.LanguageID == 0x0409:
		return 0
	case rec.PlatformID == PlatformMacintosh && rec.EncodingID == 0 && rec.LanguageID == 0:
		return 1
	case rec.PlatformID == PlatformWindows:
		return 2
	case rec.PlatformID == PlatformUnicode:
		return 3
	default:
		return 4
	}
}

// Decode extracts the name records from the "name" table.
func Decode(data []byte) (*Table, error) {
	if len(data) < 6 {
		return nil, errMalformedNames
	}
	version := uint16(data[0])<<8 | uint16(data[1])
	if version > 1 {
		return nil, errMalformedNames
	}

	numRec := int(data[2])<<8 + int(data[3])
	storageOffset := int(data[4])<<8 + int(data[5])

	recBase := 6
	endOfHeader := recBase + 12*numRec
	if endOfHeader > len(data) {
		return nil, errMalformedNames
	}
	if version > 0 {
		if endOfHeader+2 > len(data) {
			return nil, errMalformedNames
		}
		numLang := int(data[endOfHeader])<<8 + int(data[endOfHeader+1])
		endOfHeader += 2 + numLang*4
	}
	if storageOffset < endOfHeader || storageOffset > len(data) {
		return nil, errMalformedNames
	}

	t := &Table{
		Records: make([]Record, 0, numRec),
	}
	for i := 0; i < numRec; i++ {
		pos := recBase + i*12
		rec := Record{
			PlatformID: uint16(data[pos])<<8 | uint16(data[pos+1]),
			EncodingID: uint16(data[pos+2])<<8 | uint16(data[pos+3]),
			LanguageID: uint16(data[pos+4])<<8 | uint16(data[pos+5]),
			NameID:     uint16(data[pos+6])<<8 | uint16(data[pos+7]),
		}
		nameLen := int(data[pos+8])<<8 | int(data[pos+9])
		nameOffset := int(data[pos+10])<<8 | int(data[pos+11])

		if storageOffset+nameOffset+nameLen > len(data) {
			return nil, errMalformedNames
		}
		nameBytes := data[storageOffset+nameOffset : storageOffset+nameOffset+nameLen]

		switch rec.PlatformID {
		case PlatformUnicode, PlatformWindows:
			rec.Value = utf16Decode(nameBytes)
		case PlatformMacintosh:
			rec.Value = macDecode(rec.EncodingID, nameBytes)
		}
		t.Records = append(t.Records, rec)
	}

	return t, nil
}

// Encode converts a "name" table into its binary form.
// Records are written in the order required by the OpenType specification.
func (t *Table) Encode() []byte {
	type recInfo struct {
		Record
		offset uint16
		length uint16
	}
	records := make([]*recInfo, 0, len(t.Records))

	b := newNameBuilder()
	for _, rec := range t.Records {
		var enc []byte
		if rec.PlatformID == PlatformMacintosh {
			enc = macEncode(rec.EncodingID, rec.Value)
		} else {
			enc = utf16Encode(rec.Value)
		}
		offset, length := b.Add(enc)
		records = append(records, &recInfo{
			Record: rec,
			offset: offset,
			length: length,
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].PlatformID != records[j].PlatformID {
			return records[i].PlatformID < records[j].PlatformID
		}
		if records[i].EncodingID != records[j].EncodingID {
			return records[i].EncodingID < records[j].EncodingID
		}
		if records[i].LanguageID != records[j].LanguageID {
			return records[i].LanguageID < records[j].LanguageID
		}
		return records[i].NameID < records[j].NameID
	})

	numRec := len(records)
	startOfRecords := 6
	startOfStrings := startOfRecords + numRec*12
	res := make([]byte, startOfStrings+len(b.data))

	res[2] = byte(numRec >> 8)
	res[3] = byte(numRec)
	res[4] = byte(startOfStrings >> 8)
	res[5] = byte(startOfStrings)
	for i := 0; i < numRec; i++ {
		rec := records[i]
		base := startOfRecords + i*12
		res[base] = byte(rec.PlatformID >> 8)
		res[base+1] = byte(rec.PlatformID)
		res[base+2] = byte(rec.EncodingID >> 8)
		res[base+3] = byte(rec.EncodingID)
		res[base+4] = byte(rec.LanguageID >> 8)
		res[base+5] = byte(rec.LanguageID)
		res[base+6] = byte(rec.NameID >> 8)
		res[base+7] = byte(rec.NameID)
		res[base+8] = byte(rec.length >> 8)
		res[base+9] = byte(rec.length)
		res[base+10] = byte(rec.offset >> 8)
		res[base+11] = byte(rec.offset)
	}
	copy(res[startOfStrings:], b.data)

	return res
}

type nameBuilder struct {
	data []byte
	idx  map[string]uint16
}

func newNameBuilder() *nameBuilder {
	return &nameBuilder{
		idx: make(map[string]uint16),
	}
}

func (nb *nameBuilder) Add(b []byte) (offs, length uint16) {
	key := string(b)
	if idx, ok := nb.idx[key]; ok {
		return idx, uint16(len(b))
	}
	idx := uint16(len(nb.data))
	nb.idx[key] = idx
	nb.data = append(nb.data, b...)
	return idx, uint16(len(b))
}

var utf16 = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)

func utf16Decode(buf []byte) string {
	res, err := utf16.NewDecoder().Bytes(buf)
	if err != nil {
		return ""
	}
	return string(res)
}

func utf16Encode(s string) []byte {
	res, err := utf16.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return res
}

// macCharmap returns the character set for a Macintosh encoding ID.
// Encodings without a table in x/text fall back to Roman.
func macCharmap(encodingID uint16) *charmap.Charmap {
	switch encodingID {
	case 7:
		return charmap.MacintoshCyrillic
	default:
		return charmap.Macintosh
	}
}

func macDecode(encodingID uint16, buf []byte) string {
	res, err := macCharmap(encodingID).NewDecoder().Bytes(buf)
	if err != nil {
		return ""
	}
	return string(res)
}

func macEncode(encodingID uint16, s string) []byte {
	res, err := macCharmap(encodingID).NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil
	}
	return res
}

var errMalformedNames = &font.InvalidFontError{
	SubSystem: "sfnt/name",
	Reason:    "malformed name table",
}
