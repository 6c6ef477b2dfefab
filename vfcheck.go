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

package vfcheck

import (
	"context"
	"fmt"
	"math"
	"slices"
	"strings"

	"seehuhn.de/go/vfcheck/check"
	"seehuhn.de/go/vfcheck/font"
	"seehuhn.de/go/vfcheck/font/vfont"
	"seehuhn.de/go/vfcheck/instance"
	"seehuhn.de/go/vfcheck/report"
)

// Identifiers of the individual checks.
const (
	CheckMacNames      = "no_mac_entries"
	CheckVendorID      = "vendor_id"
	CheckWeightClass   = "weight_class_fvar"
	CheckFvarSTAT      = "inconsistencies_between_fvar_stat"
	CheckInterpolation = "interpolation_issues"
)

// AllChecks lists the identifiers of all checks, in the order they are run.
var AllChecks = []string{
	CheckMacNames,
	CheckVendorID,
	CheckWeightClass,
	CheckFvarSTAT,
	CheckInterpolation,
}

// Options control which checks are run and how.
// A nil *Options is equivalent to the zero value.
type Options struct {
	// Vendor is the expected OS/2 vendor ID.  If this is empty, the
	// vendor ID check is skipped.
	Vendor string

	// Tolerance is the largest change of contour direction, in degrees,
	// which is accepted between adjacent instances.  If this is zero,
	// check.DefaultTolerance is used.  Negative values are invalid.
	Tolerance float64

	// Workers limits the number of instances which are computed
	// concurrently.  If this is zero, there is no limit.
	Workers int

	// Skip lists the identifiers of checks which are not run.
	Skip []string

	// Instancer computes the outlines of the named instances.  If this is
	// nil, the interpolation check is skipped.
	Instancer instance.Instancer
}

// Verify reports an error if the options contain invalid settings.
func (opt *Options) Verify() error {
	if opt == nil {
		return nil
	}
	if opt.Tolerance < 0 || math.IsNaN(opt.Tolerance) {
		return fmt.Errorf("invalid tolerance %g, must be non-negative", opt.Tolerance)
	}
	return nil
}

// Validate runs all enabled checks on f.
//
// Failures of individual checks are recorded in the report and do not stop
// the remaining checks.  Running Validate twice on the same font gives
// identical reports.
func Validate(ctx context.Context, f *vfont.Font, opt *Options) *report.Report {
	if opt == nil {
		opt = &Options{}
	}
	tol := opt.Tolerance
	if tol == 0 {
		tol = check.DefaultTolerance
	}

	r := &report.Report{}
	for _, id := range AllChecks {
		if slices.Contains(opt.Skip, id) {
			continue
		}
		if !f.IsVariable() && id != CheckMacNames && id != CheckVendorID {
			r.Add(report.Skipped(id, "Not a variable font."))
			continue
		}

		switch id {
		case CheckMacNames:
			ff, ok := check.MacNames(f)
			if !ok {
				r.Add(report.Skipped(id, "No name table."))
				continue
			}
			r.Add(report.Individual(id, ff, "No Mac name table entries."))

		case CheckVendorID:
			ff, ok := check.VendorID(f, opt.Vendor)
			if !ok {
				r.Add(report.Skipped(id, "No vendor ID configured."))
				continue
			}
			r.Add(report.Individual(id, ff,
				fmt.Sprintf("OS/2 VendorID '%s' is correct.", opt.Vendor)))

		case CheckWeightClass:
			ff, ok := check.WeightClass(f)
			if !ok {
				r.Add(report.Skipped(id, "No wght axis."))
				continue
			}
			var passText string
			if f.OS2 != nil {
				passText = fmt.Sprintf("OS/2 usWeightClass '%d' matches fvar default value.",
					int(f.OS2.WeightClass))
			}
			r.Add(report.Individual(id, ff, passText))

		case CheckFvarSTAT:
			ff, _ := check.FvarSTAT(f)
			r.Add(report.Individual(id, ff, "STAT table matches the fvar instances."))

		case CheckInterpolation:
			r.Add(interpolation(ctx, f, opt, tol))
		}
	}
	return r
}

func interpolation(ctx context.Context, f *vfont.Font, opt *Options, tol float64) report.Result {
	id := CheckInterpolation
	if opt.Instancer == nil {
		return report.Skipped(id, "No instancer configured.")
	}
	if err := opt.Verify(); err != nil {
		return report.Errored(id, err)
	}
	if f.Outlines == nil {
		return report.Errored(id, &font.NotSupportedError{
			SubSystem: "vfcheck",
			Feature:   "fonts without glyf outlines",
		})
	}

	mm, err := instance.Materialize(ctx, f, opt.Instancer, opt.Workers)
	if err != nil {
		return report.Errored(id, err)
	}
	ff := check.Interpolation(f.GlyphOrder, mm, tol)
	return report.Grouped(id, "interpolation-issues", ff, "No interpolation issues found.")
}

// ParseSkip splits a comma-separated list of check identifiers.
// Unknown identifiers are reported as an error.
func ParseSkip(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var res []string
	for _, id := range strings.Split(s, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if !slices.Contains(AllChecks, id) {
			return nil, fmt.Errorf("unknown check %q", id)
		}
		res = append(res, id)
	}
	return res, nil
}
