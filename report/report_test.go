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

package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"seehuhn.de/go/vfcheck/check"
)

func TestGrouped(t *testing.T) {
	ff := []check.Finding{
		{Category: check.PointCount, Key: "a"},
		{Category: check.EndPointDirection, Key: "o"},
		{Category: check.PointCount, Key: "c"},
		{Category: check.PointCount, Key: "a"},
		{Category: check.ContourCount, Key: "b"},
	}
	got := Grouped("interpolation_issues", "interpolation-issues", ff, "ok")
	want := Result{
		CheckID: "interpolation_issues",
		Status:  StatusFail,
		Messages: []Message{
			{Code: "interpolation-issues", Text: "differences in point count: a, c"},
			{Code: "interpolation-issues", Text: "differences in end-point direction (more than 45 degrees): o"},
			{Code: "interpolation-issues", Text: "differences in contour count: b"},
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}

	again := Grouped("interpolation_issues", "interpolation-issues", ff, "ok")
	if d := cmp.Diff(got, again); d != "" {
		t.Errorf("results differ between runs:\n%s", d)
	}
}

func TestIndividual(t *testing.T) {
	f1 := check.Finding{Category: check.MacNameEntry, Key: "1", Detail: "Please remove name ID 1"}
	f2 := check.Finding{Category: check.MacNameEntry, Key: "2", Detail: "Please remove name ID 2"}

	got := Individual("no_mac_entries", []check.Finding{f1, f2, f1}, "ok")
	want := Result{
		CheckID: "no_mac_entries",
		Status:  StatusFail,
		Messages: []Message{
			{Code: "mac-names", Text: "Please remove name ID 1"},
			{Code: "mac-names", Text: "Please remove name ID 2"},
		},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("unexpected result (-want +got):\n%s", d)
	}
}

func TestPass(t *testing.T) {
	for _, res := range []Result{
		Individual("x", nil, "all good"),
		Grouped("x", "code", nil, "all good"),
	} {
		want := Result{CheckID: "x", Status: StatusPass, Messages: []Message{{Text: "all good"}}}
		if d := cmp.Diff(want, res); d != "" {
			t.Errorf("unexpected result (-want +got):\n%s", d)
		}
	}
}

func TestReport(t *testing.T) {
	r := &Report{Font: "Test.ttf"}
	r.Add(Individual("a", nil, "fine"))
	r.Add(Skipped("b", "Not a variable font."))
	if r.Failed() {
		t.Error("report without failures is failed")
	}
	r.Add(Errored("c", errors.New("boom")))
	if !r.Failed() {
		t.Error("report with errors is not failed")
	}
	r.Add(Grouped("d", "code", []check.Finding{{Category: "cat", Key: "k"}}, ""))

	counts := map[Status]int{}
	for _, s := range []Status{StatusPass, StatusFail, StatusSkip, StatusError} {
		counts[s] = r.Count(s)
	}
	wantCounts := map[Status]int{StatusPass: 1, StatusFail: 1, StatusSkip: 1, StatusError: 1}
	if d := cmp.Diff(wantCounts, counts); d != "" {
		t.Errorf("unexpected counts (-want +got):\n%s", d)
	}

	buf := &bytes.Buffer{}
	if err := r.WriteText(buf, false); err != nil {
		t.Fatal(err)
	}
	wantText := strings.Join([]string{
		"Test.ttf",
		"  PASS  a",
		"        fine",
		"  SKIP  b",
		"        Not a variable font.",
		"  ERROR c",
		"        [error] boom",
		"  FAIL  d",
		"        [code] cat: k",
		"",
	}, "\n")
	if d := cmp.Diff(wantText, buf.String()); d != "" {
		t.Errorf("unexpected text output (-want +got):\n%s", d)
	}

	buf.Reset()
	if err := r.WriteJSON(buf); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Font    string
		Results []struct {
			Check  string
			Status string
		}
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatal(err)
	}
	if decoded.Font != "Test.ttf" || len(decoded.Results) != 4 {
		t.Fatalf("unexpected JSON output: %s", buf.String())
	}
	if s := decoded.Results[2].Status; s != "ERROR" {
		t.Errorf("status = %q, want ERROR", s)
	}
}
