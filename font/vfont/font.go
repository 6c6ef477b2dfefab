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

// Package vfont loads the tables of a variable font which are needed for
// consistency checking.
//
// All tables are decoded once, when the font is loaded.  The resulting
// [Font] is read-only and can be shared between goroutines.
package vfont

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"seehuhn.de/go/sfnt"
	"seehuhn.de/go/sfnt/glyf"
	"seehuhn.de/go/sfnt/glyph"
	"seehuhn.de/go/sfnt/header"
	"seehuhn.de/go/sfnt/os2"

	"seehuhn.de/go/vfcheck/font"
	"seehuhn.de/go/vfcheck/font/outline"
	"seehuhn.de/go/vfcheck/font/sfnt/fvar"
	"seehuhn.de/go/vfcheck/font/sfnt/name"
	"seehuhn.de/go/vfcheck/font/sfnt/stat"
)

// Font contains the decoded tables of a font file.
// Fields for tables which are not present in the file are nil.
type Font struct {
	Fvar  *fvar.Table
	STAT  *stat.Table
	OS2   *os2.Info
	Names *name.Table

	// GlyphOrder lists the glyph names in glyph ID order.
	// This is nil for fonts without "glyf" outlines.
	GlyphOrder []string

	// Outlines is nil for fonts without "glyf" outlines.
	Outlines outline.Set

	// Data is the original font file.
	Data []byte
}

// IsVariable reports whether the font has an "fvar" table.
func (f *Font) IsVariable() bool {
	return f.Fvar != nil
}

// InstanceName returns the subfamily name of a named instance.
func (f *Font) InstanceName(inst *fvar.Instance) (string, bool) {
	return f.Names.Lookup(inst.SubfamilyNameID)
}

// ReadFile loads a font from a file.
func ReadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// Read loads a font from r.
func Read(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes the tables of a font file.
// Missing tables are not an error; malformed tables are.
func Parse(data []byte) (*Font, error) {
	r := bytes.NewReader(data)
	hdr, err := header.Read(r)
	if err != nil {
		return nil, err
	}
	readTable := func(tag string) ([]byte, error) {
		if _, ok := hdr.Toc[tag]; !ok {
			return nil, &font.MissingTableError{Table: tag}
		}
		return hdr.ReadTableBytes(r, tag)
	}

	f := &Font{Data: data}

	fvarData, err := readTable("fvar")
	if err != nil && !font.IsMissing(err) {
		return nil, err
	} else if err == nil {
		f.Fvar, err = fvar.Decode(fvarData)
		if err != nil {
			return nil, err
		}
	}

	statData, err := readTable("STAT")
	if err != nil && !font.IsMissing(err) {
		return nil, err
	} else if err == nil {
		f.STAT, err = stat.Decode(statData)
		if err != nil {
			return nil, err
		}
	}

	nameData, err := readTable("name")
	if err != nil && !font.IsMissing(err) {
		return nil, err
	} else if err == nil {
		f.Names, err = name.Decode(nameData)
		if err != nil {
			return nil, err
		}
	}

	os2Data, err := readTable("OS/2")
	if err != nil && !font.IsMissing(err) {
		return nil, err
	} else if err == nil {
		f.OS2, err = os2.Read(bytes.NewReader(os2Data))
		if err != nil {
			return nil, err
		}
	}

	if _, ok := hdr.Toc["glyf"]; ok {
		f.GlyphOrder, f.Outlines, err = ReadOutlines(data)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// ReadOutlines loads the glyph names and "glyf" outlines of a font file.
func ReadOutlines(data []byte) ([]string, outline.Set, error) {
	ttf, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, nil, err
	}
	outlines, ok := ttf.Outlines.(*glyf.Outlines)
	if !ok {
		return nil, nil, &font.NotSupportedError{
			SubSystem: "sfnt",
			Feature:   "CFF outlines",
		}
	}

	ttf.EnsureGlyphNames()
	order := make([]string, len(outlines.Glyphs))
	for i := range order {
		order[i] = ttf.GlyphName(glyph.ID(i))
	}

	set, err := outline.FromGlyf(outlines.Glyphs, order)
	if err != nil {
		return nil, nil, err
	}
	return order, set, nil
}
