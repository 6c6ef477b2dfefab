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

package name

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testTable() *Table {
	return &Table{
		Records: []Record{
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 1, Value: "Test Sans"},
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 2, Value: "Régular"},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0407, NameID: 2, Value: "Standard"},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 1, Value: "Test Sans"},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 2, Value: "Regular"},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 256, Value: "Weight ✓"},
		},
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

func TestEncodeSorts(t *testing.T) {
	in := &Table{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 2, Value: "Bold"},
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 2, Value: "Bold"},
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0409, NameID: 1, Value: "Test"},
		},
	}
	out, err := Decode(in.Encode())
	if err != nil {
		t.Fatal(err)
	}
	var got []uint16
	for _, rec := range out.Records {
		got = append(got, rec.PlatformID<<8|rec.NameID)
	}
	want := []uint16{1<<8 | 2, 3<<8 | 1, 3<<8 | 2}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong record order (-want +got):\n%s", d)
	}
}

func TestLookup(t *testing.T) {
	tab := testTable()
	cases := []struct {
		nameID uint16
		want   string
		ok     bool
	}{
		{1, "Test Sans", true},
		{2, "Regular", true},
		{256, "Weight ✓", true},
		{257, "", false},
	}
	for _, c := range cases {
		got, ok := tab.Lookup(c.nameID)
		if got != c.want || ok != c.ok {
			t.Errorf("Lookup(%d) = %q, %t, want %q, %t", c.nameID, got, ok, c.want, c.ok)
		}
	}

	macOnly := &Table{
		Records: []Record{
			{PlatformID: 3, EncodingID: 1, LanguageID: 0x0407, NameID: 2, Value: "Fett"},
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 2, Value: "Bold"},
		},
	}
	if got, _ := macOnly.Lookup(2); got != "Bold" {
		t.Errorf("Lookup(2) = %q, want \"Bold\"", got)
	}

	var missing *Table
	if _, ok := missing.Lookup(2); ok {
		t.Error("Lookup on nil table succeeded")
	}
}

func TestMacEncodings(t *testing.T) {
	in := &Table{
		Records: []Record{
			{PlatformID: 1, EncodingID: 0, LanguageID: 0, NameID: 2, Value: "Äpfel"},
			{PlatformID: 1, EncodingID: 1, LanguageID: 11, NameID: 2, Value: "Bold"},
			{PlatformID: 1, EncodingID: 7, LanguageID: 32, NameID: 2, Value: "Жирный"},
		},
	}
	data := in.Encode()
	if !bytes.Contains(data, []byte{0x86, 0xe8, 0xf0, 0xed, 0xfb, 0xe9}) {
		t.Error("Cyrillic name not stored in Mac Cyrillic encoding")
	}

	out, err := Decode(data)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff(in, out); d != "" {
		t.Errorf("unexpected records (-want +got):\n%s", d)
	}
}

func TestDecodeErrors(t *testing.T) {
	good := testTable().Encode()
	cases := map[string][]byte{
		"empty":     nil,
		"version":   append([]byte{0, 2}, good[2:]...),
		"truncated": good[:len(good)-1],
	}
	for name, data := range cases {
		if _, err := Decode(data); err == nil {
			t.Errorf("%s: missing error", name)
		}
	}
}

func FuzzNames(f *testing.F) {
	f.Add(testTable().Encode())

	f.Fuzz(func(t *testing.T, in []byte) {
		n1, err := Decode(in)
		if err != nil {
			return
		}

		// The first encoding normalizes the record order and the
		// string encodings.  After this, the table must be stable.
		n2, err := Decode(n1.Encode())
		if err != nil {
			t.Fatal(err)
		}
		n3, err := Decode(n2.Encode())
		if err != nil {
			t.Fatal(err)
		}

		if d := cmp.Diff(n2, n3); d != "" {
			t.Error(d)
		}
	})
}
