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

package outline

import (
	"fmt"

	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/sfnt/glyf"

	"seehuhn.de/go/vfcheck/font"
)

// FromGlyf converts the glyphs of a "glyf" table into a Set.
// The slice names gives the glyph name for each glyph ID.
func FromGlyf(glyphs glyf.Glyphs, names []string) (Set, error) {
	if len(names) != len(glyphs) {
		return nil, fmt.Errorf("have %d glyph names for %d glyphs",
			len(names), len(glyphs))
	}

	res := make(Set, len(glyphs))
	for gid, g := range glyphs {
		name := names[gid]
		if g == nil {
			res[name] = &Simple{}
			continue
		}

		switch d := g.Data.(type) {
		case glyf.SimpleGlyph:
			info, err := d.Unpack()
			if err != nil {
				return nil, fmt.Errorf("glyph %q: %w", name, err)
			}
			s := &Simple{}
			for _, cc := range info.Contours {
				for _, p := range cc {
					s.Points = append(s.Points, vec.Vec2{X: float64(p.X), Y: float64(p.Y)})
				}
				if len(cc) > 0 {
					s.EndPoints = append(s.EndPoints, len(s.Points)-1)
				}
			}
			res[name] = s

		case glyf.CompositeGlyph:
			c := &Composite{
				Components: make([]Component, len(d.Components)),
			}
			for i, comp := range d.Components {
				ref := int(comp.GlyphIndex)
				if ref >= len(names) {
					return nil, &font.InvalidFontError{
						SubSystem: "sfnt/glyf",
						Reason:    fmt.Sprintf("glyph %q: invalid component %d", name, ref),
					}
				}
				info, err := comp.Unpack()
				if err != nil {
					return nil, fmt.Errorf("glyph %q: component %d: %w", name, i, err)
				}
				c.Components[i] = Component{
					Name:      names[ref],
					Transform: info.Trfm,
				}
			}
			res[name] = c

		default:
			return nil, fmt.Errorf("glyph %q: unexpected glyph type %T", name, g.Data)
		}
	}
	return res, nil
}
