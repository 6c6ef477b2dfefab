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

package check

import (
	"math"

	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/vfcheck/font/outline"
	"seehuhn.de/go/vfcheck/instance"
)

// DefaultTolerance is the largest angle, in degrees, by which the direction
// of the last segment of a contour may change between two adjacent
// instances.
const DefaultTolerance = 45

// Interpolation looks for glyphs which are unlikely to interpolate cleanly
// between the given instances.  The instances must be in "fvar" order.
//
// Glyphs with structural differences between instances are reported by
// [Topology]; the remaining glyphs are checked by [Direction].
func Interpolation(order []string, mm []*instance.Materialized, tol float64) []Finding {
	res, clean := Topology(order, mm)
	res = append(res, Direction(clean, mm, tol)...)
	return res
}

// Topology compares the structure of each glyph across all instances.
// Each glyph is reported at most once, for the first of the following
// properties which differs between instances: the number of points, the
// number of contours, being a composite glyph, and the list of components.
//
// The glyphs which are present in all instances and passed all tests are
// returned in clean, in glyph order.
func Topology(order []string, mm []*instance.Materialized) (res []Finding, clean []string) {
	for _, glyphName := range order {
		gg := make([]outline.Outline, 0, len(mm))
		for _, m := range mm {
			if g, ok := m.Glyphs[glyphName]; ok && g != nil {
				gg = append(gg, g)
			}
		}

		if allEmpty(gg) {
			continue
		}

		var category Category
		switch {
		case countDistinct(gg, pointCount) > 1:
			category = PointCount
		case countDistinct(gg, contourCount) > 1:
			category = ContourCount
		case countDistinct(gg, compositeStatus) > 1:
			category = CompositeStatus
		case countDistinct(gg, componentKey) > 1:
			category = ComponentList
		}
		if category != "" {
			res = append(res, Finding{
				Category: category,
				Key:      glyphName,
			})
			continue
		}

		if len(gg) == len(mm) && !hasEmpty(gg) {
			clean = append(clean, glyphName)
		}
	}
	return res, clean
}

func allEmpty(gg []outline.Outline) bool {
	for _, g := range gg {
		if !outline.IsEmpty(g) {
			return false
		}
	}
	return true
}

func hasEmpty(gg []outline.Outline) bool {
	for _, g := range gg {
		if outline.IsEmpty(g) {
			return true
		}
	}
	return false
}

// countDistinct returns the number of distinct non-empty keys among the
// outlines.
func countDistinct[K comparable](gg []outline.Outline, key func(outline.Outline) (K, bool)) int {
	seen := make(map[K]struct{}, 2)
	for _, g := range gg {
		if k, ok := key(g); ok {
			seen[k] = struct{}{}
		}
	}
	return len(seen)
}

func pointCount(g outline.Outline) (int, bool) {
	n := g.NumPoints()
	return n, n > 0
}

func contourCount(g outline.Outline) (int, bool) {
	n := g.NumContours()
	return n, n != 0
}

func compositeStatus(g outline.Outline) (bool, bool) {
	return g.IsComposite(), true
}

func componentKey(g outline.Outline) (string, bool) {
	c, ok := g.(*outline.Composite)
	if !ok || len(c.Components) == 0 {
		return "", false
	}
	return c.Key(), true
}

// Direction compares, for each contour, the direction of the segment which
// ends at the last point of the contour between consecutive instances.
// A glyph is reported if for some contour the directions differ by more
// than tol degrees, both as computed and after mapping the angles into the
// range [0, 360).  Each glyph is reported at most once.
//
// Only glyphs which passed [Topology] must be passed in.  Composite glyphs
// are ignored.
func Direction(glyphs []string, mm []*instance.Materialized, tol float64) []Finding {
	var res []Finding

glyphLoop:
	for _, glyphName := range glyphs {
		for i := 1; i < len(mm); i++ {
			cur, ok1 := mm[i].Glyphs[glyphName].(*outline.Simple)
			prev, ok2 := mm[i-1].Glyphs[glyphName].(*outline.Simple)
			if !ok1 || !ok2 || len(cur.Points) != len(prev.Points) {
				continue glyphLoop
			}

			for _, n := range cur.EndPoints {
				deg := endDirection(cur.Points, n)
				prevDeg := endDirection(prev.Points, n)
				if directionChanged(deg, prevDeg, tol) {
					res = append(res, Finding{
						Category: EndPointDirection,
						Key:      glyphName,
					})
					continue glyphLoop
				}
			}
		}
	}
	return res
}

// endDirection returns the angle, in degrees, of the segment from the point
// before pp[n] to pp[n].  For n == 0 the point before is the last point of
// the outline.
func endDirection(pp []vec.Vec2, n int) float64 {
	before := pp[(n-1+len(pp))%len(pp)]
	d := pp[n].Sub(before)
	return math.Atan2(d.Y, d.X) * 180 / math.Pi
}

// directionChanged reports whether two angles, in degrees, differ by more
// than tol, both as given and after mapping them into [0, 360).
func directionChanged(deg, prevDeg, tol float64) bool {
	if math.Abs(deg-prevDeg) <= tol {
		// catches cases like -2 vs. 0 degrees
		return false
	}
	return math.Abs(normalizeDegree(deg)-normalizeDegree(prevDeg)) > tol
}

func normalizeDegree(deg float64) float64 {
	if deg < 0 {
		return deg + 360
	}
	return deg
}
