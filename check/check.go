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

// Package check implements consistency checks for variable fonts.
//
// Each check is a pure function of the decoded font tables (or of the
// materialized instances) and returns a list of findings.  An empty list
// means that the check passed.  Checks which do not apply to a font return
// ok == false.
package check

// Category classifies a finding.
type Category string

// Categories of findings.
const (
	BadWeightClass   Category = "bad-weight-class"
	MissingOS2Table  Category = "missing-os2-table"
	MissingSTATTable Category = "missing-stat-table"
	MissingNameID    Category = "missing-name-id"
	MissingAxisValue Category = "missing-fvar-instance-axis-value"
	BadVendorID      Category = "bad-vendor-id"
	MacNameEntry     Category = "mac-names"

	PointCount        Category = "differences in point count"
	ContourCount      Category = "differences in contour count"
	CompositeStatus   Category = "differences in composite status"
	ComponentList     Category = "differences in components"
	EndPointDirection Category = "differences in end-point direction (more than 45 degrees)"
)

// Finding describes a single problem.
type Finding struct {
	Category Category

	// Key identifies the glyph, instance or axis the finding refers to.
	Key string

	Detail string
}
