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

// Package outline models the glyph outlines of one static font instance.
//
// An outline is either a [*Simple] outline, made of points grouped into
// contours, or a [*Composite] outline which references other glyphs by name.
// Outlines are compared structurally across the instances of a variable font,
// so the model keeps the point order of the "glyf" table.
package outline

import (
	"fmt"
	"strings"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/vec"
)

// Outline is implemented by [*Simple] and [*Composite].
type Outline interface {
	NumPoints() int

	// NumContours returns the number of contours of a simple outline,
	// and -1 for composite outlines.
	NumContours() int

	IsComposite() bool
}

// Simple is an outline which consists of contours.
type Simple struct {
	Points []vec.Vec2

	// EndPoints holds the index of the last point of each contour.
	EndPoints []int
}

// NumPoints implements the [Outline] interface.
func (s *Simple) NumPoints() int {
	return len(s.Points)
}

// NumContours implements the [Outline] interface.
func (s *Simple) NumContours() int {
	return len(s.EndPoints)
}

// IsComposite implements the [Outline] interface.
func (s *Simple) IsComposite() bool {
	return false
}

// Validate checks that the contour end points are strictly increasing and
// refer to existing points.
func (s *Simple) Validate() error {
	prev := -1
	for i, end := range s.EndPoints {
		if end <= prev {
			return fmt.Errorf("contour %d: end point %d not increasing", i, end)
		}
		if end >= len(s.Points) {
			return fmt.Errorf("contour %d: end point %d out of range", i, end)
		}
		prev = end
	}
	return nil
}

// Contour returns the points of contour i.
func (s *Simple) Contour(i int) []vec.Vec2 {
	start := 0
	if i > 0 {
		start = s.EndPoints[i-1] + 1
	}
	return s.Points[start : s.EndPoints[i]+1]
}

// Composite is an outline made from references to other glyphs.
type Composite struct {
	Components []Component
}

// Component is a reference to another glyph, placed using an affine
// transformation.
type Component struct {
	Name      string
	Transform matrix.Matrix
}

// NumPoints implements the [Outline] interface.
// Composite outlines have no points of their own.
func (c *Composite) NumPoints() int {
	return 0
}

// NumContours implements the [Outline] interface.
func (c *Composite) NumContours() int {
	return -1
}

// IsComposite implements the [Outline] interface.
func (c *Composite) IsComposite() bool {
	return true
}

// Names returns the glyph names of the components, in order.
func (c *Composite) Names() []string {
	res := make([]string, len(c.Components))
	for i, comp := range c.Components {
		res[i] = comp.Name
	}
	return res
}

// Key returns a string which identifies the sequence of component glyphs.
// Two composites have the same key if and only if they reference the same
// glyphs in the same order.
func (c *Composite) Key() string {
	return strings.Join(c.Names(), "\x00")
}

// IsEmpty reports whether o has no outline data at all.
func IsEmpty(o Outline) bool {
	if o == nil {
		return true
	}
	switch o := o.(type) {
	case *Simple:
		return len(o.Points) == 0
	case *Composite:
		return len(o.Components) == 0
	default:
		return false
	}
}

// Set maps glyph names to outlines.
type Set map[string]Outline
