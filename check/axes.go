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
	"fmt"
	"strconv"

	"seehuhn.de/go/vfcheck/font/sfnt/stat"
	"seehuhn.de/go/vfcheck/font/vfont"
)

// WeightClass checks that OS/2 usWeightClass equals the default value of
// the "wght" axis.
// The check does not apply to fonts without a "wght" axis.
func WeightClass(f *vfont.Font) ([]Finding, bool) {
	if !f.IsVariable() {
		return nil, false
	}
	axis := f.Fvar.Axis("wght")
	if axis == nil {
		return nil, false
	}
	if f.OS2 == nil {
		return []Finding{{
			Category: MissingOS2Table,
			Key:      "OS/2",
			Detail:   "Missing OS/2 table.",
		}}, true
	}

	os2Value := int(f.OS2.WeightClass)
	if os2Value == int(axis.Default) {
		return nil, true
	}
	return []Finding{{
		Category: BadWeightClass,
		Key:      "wght",
		Detail: fmt.Sprintf("OS/2 usWeightClass is '%d', but should match fvar default value '%s'.",
			os2Value, formatValue(axis.Default)),
	}}, true
}

// FvarSTAT checks that every coordinate of every named instance is
// represented by an axis value record in the STAT table.
//
// A missing STAT table gives a single finding and ends the check.
// Instances with an unresolvable subfamily name are reported and skipped.
func FvarSTAT(f *vfont.Font) ([]Finding, bool) {
	if !f.IsVariable() {
		return nil, false
	}
	if f.STAT == nil {
		return []Finding{{
			Category: MissingSTATTable,
			Key:      "STAT",
			Detail:   "Missing STAT table in variable font.",
		}}, true
	}

	var res []Finding
	for i := range f.Fvar.Instances {
		inst := &f.Fvar.Instances[i]
		instName, ok := f.InstanceName(inst)
		if !ok {
			res = append(res, Finding{
				Category: MissingNameID,
				Key:      strconv.Itoa(int(inst.SubfamilyNameID)),
				Detail: fmt.Sprintf("The name ID %d used in an fvar instance is missing in the name table.",
					inst.SubfamilyNameID),
			})
			continue
		}

		for _, c := range f.Fvar.Coords(inst) {
			if coveredInSTAT(f.STAT, c.Tag, c.Value) {
				continue
			}
			res = append(res, Finding{
				Category: MissingAxisValue,
				Key:      instName + ":" + c.Tag,
				Detail: fmt.Sprintf("%s: '%s' axis value '%s' missing in STAT table.",
					instName, c.Tag, formatValue(c.Value)),
			})
		}
	}
	return res, true
}

// coveredInSTAT reports whether an axis value record of t represents the
// given axis value.  Values are compared for exact equality.
//
// Format 2 records only match their nominal value, not their range.
// Format 4 records and records in unknown formats are not considered.
func coveredInSTAT(t *stat.Table, tag string, value float64) bool {
	for _, val := range t.Values {
		if val.Format == 4 || val.AxisTag != tag {
			continue
		}
		switch val.Format {
		case 1:
			if val.Value == value {
				return true
			}
		case 2:
			if val.Nominal == value {
				return true
			}
		case 3:
			if val.Value == value || val.LinkedValue == value {
				return true
			}
		}
	}
	return false
}

func formatValue(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
