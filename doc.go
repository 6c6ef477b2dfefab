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

// Package vfcheck checks OpenType variable fonts for internal
// inconsistencies which normal font loading does not detect.
//
// The checks compare the "fvar" table with the "OS/2" and "STAT" tables,
// and compare the glyph outlines of all named instances with each other:
//
//	f, err := vfont.ReadFile("MyFont[wght].ttf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	inst, err := instance.NewCommand()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer inst.Close()
//
//	r := vfcheck.Validate(ctx, f, &vfcheck.Options{Instancer: inst})
//	r.WriteText(os.Stdout, false)
//
// Computing the outlines of the named instances is delegated to an
// [instance.Instancer].  If no instancer is given, the interpolation check
// is skipped.
package vfcheck
