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
	"strings"

	"seehuhn.de/go/vfcheck/font/sfnt/name"
	"seehuhn.de/go/vfcheck/font/vfont"
)

// VendorID checks that OS/2 achVendID equals want.
// The check does not apply if want is empty.
func VendorID(f *vfont.Font, want string) ([]Finding, bool) {
	if want == "" {
		return nil, false
	}
	if f.OS2 == nil {
		return []Finding{{
			Category: MissingOS2Table,
			Key:      "OS/2",
			Detail:   "Missing OS/2 table.",
		}}, true
	}

	got := strings.TrimRight(f.OS2.Vendor, " \x00")
	if got == want {
		return nil, true
	}
	return []Finding{{
		Category: BadVendorID,
		Key:      got,
		Detail:   fmt.Sprintf("OS/2 VendorID is '%s', but should be '%s'.", got, want),
	}}, true
}

// MacNames reports name table entries for the Macintosh platform.
// Modern systems do not use these entries any more.
func MacNames(f *vfont.Font) ([]Finding, bool) {
	if f.Names == nil {
		return nil, false
	}
	var res []Finding
	for _, rec := range f.Names.Records {
		if rec.PlatformID != name.PlatformMacintosh {
			continue
		}
		res = append(res, Finding{
			Category: MacNameEntry,
			Key:      strconv.Itoa(int(rec.NameID)),
			Detail:   fmt.Sprintf("Please remove name ID %d", rec.NameID),
		})
	}
	return res, true
}
