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

package stat

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/vfcheck/font"
)

func testTable() *Table {
	return &Table{
		DesignAxes: []DesignAxis{
			{Tag: "wght", NameID: 256, Ordering: 0},
			{Tag: "ital", NameID: 257, Ordering: 1},
		},
		Values: []AxisValue{
			{Format: 1, AxisIndex: 0, AxisTag: "wght", NameID: 260, Value: 700},
			{Format: 2, AxisIndex: 0, AxisTag: "wght", NameID: 261,
				Nominal: 300, RangeMin: 250, RangeMax: 350},
			{Format: 3, AxisIndex: 0, AxisTag: "wght", Flags: 2, NameID: 262,
				Value: 400, LinkedValue: 700},
			{Format: 4, NameID: 263, Locations: []AxisLocation{
				{AxisIndex: 0, AxisTag: "wght", Value: 900},
				{AxisIndex: 1, AxisTag: "ital", Value: 1},
			}},
			{Format: 1, AxisIndex: 1, AxisTag: "ital", NameID: 264, Value: 0.5},
		},
		ElidedFallbackNameID: 2,
	}
}

func TestRoundTrip(t *testing.T) {
	in := testTable()
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("round trip failed (-want +got):\n%s", d)
	}
}

func TestVersion10(t *testing.T) {
	in := testTable()
	data := in.Encode()
	data[3] = 0 // minor version

	out, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if out.ElidedFallbackNameID != 0 {
		t.Errorf("ElidedFallbackNameID = %d, want 0", out.ElidedFallbackNameID)
	}
	in.ElidedFallbackNameID = 0
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("unexpected table (-want +got):\n%s", d)
	}
}

func TestNoValues(t *testing.T) {
	in := &Table{
		DesignAxes: []DesignAxis{{Tag: "wdth", NameID: 256}},
	}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("unexpected table (-want +got):\n%s", d)
	}
}

func TestDecodeErrors(t *testing.T) {
	badIndex := testTable()
	badIndex.Values[0].AxisIndex = 2

	badVersion := testTable().Encode()
	badVersion[1] = 2

	cases := []struct {
		name        string
		data        []byte
		unsupported bool
	}{
		{"short", []byte{0, 1, 0, 1}, false},
		{"axis index", badIndex.Encode(), false},
		{"truncated", testTable().Encode()[:40], false},
		{"version", badVersion, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(c.data)
			if err == nil {
				t.Fatal("missing error")
			}
			if font.IsUnsupported(err) != c.unsupported {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestUnknownFormat(t *testing.T) {
	in := &Table{
		DesignAxes: []DesignAxis{{Tag: "wght", NameID: 256}},
		Values: []AxisValue{
			{Format: 1, AxisTag: "wght", NameID: 260, Value: 400},
			{Format: 5, Flags: 1, NameID: 261},
			{Format: 1, AxisTag: "wght", NameID: 262, Value: 700},
		},
	}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("unexpected table (-want +got):\n%s", d)
	}

	// an unknown format in an existing table, with trailing payload
	data := testTable().Encode()
	// the first axis value record follows the offsets array
	data[20+2*8+2*5+1] = 9
	out, err = Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	want := testTable()
	want.Values[0] = AxisValue{Format: 9, NameID: 260}
	if d := cmp.Diff(want, out); d != "" {
		t.Errorf("unexpected table (-want +got):\n%s", d)
	}
}

func FuzzSTAT(f *testing.F) {
	f.Add(testTable().Encode())
	f.Fuzz(func(t *testing.T, data []byte) {
		t1, err := Decode(data)
		if err != nil {
			return
		}
		t2, err := Decode(t1.Encode())
		if err != nil {
			t.Fatal(err)
		}
		if d := cmp.Diff(t1, t2); d != "" {
			t.Error(d)
		}
	})
}
