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

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAddHeader(t *testing.T) {
	plain := []byte("package foo\n")
	out, changed := addHeader(plain)
	if !changed || !strings.HasPrefix(string(out), header) || !strings.HasSuffix(string(out), "package foo\n") {
		t.Errorf("header not added: %q", out)
	}

	again, changed := addHeader(out)
	if changed || string(again) != string(out) {
		t.Error("header added twice")
	}

	if out, _ := addHeader([]byte("// Copyright someone else\npackage foo\n")); out != nil {
		t.Error("foreign header was not flagged")
	}
}

// Every source file of this repository carries the license header.
func TestRepositoryHeaders(t *testing.T) {
	root := filepath.Join("..", "..")
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && (strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		body, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		if _, changed := addHeader(body); changed {
			t.Errorf("%s: missing license header", path)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
}
