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
	"encoding/json"
	"fmt"
	"io"
)

// Report holds the results of all checks run on one font.
type Report struct {
	Font    string   `json:"font,omitempty"`
	Results []Result `json:"results"`
}

// Add appends a result to the report.
func (r *Report) Add(res Result) {
	r.Results = append(r.Results, res)
}

// Failed reports whether any check failed or could not be completed.
func (r *Report) Failed() bool {
	for _, res := range r.Results {
		if res.Status == StatusFail || res.Status == StatusError {
			return true
		}
	}
	return false
}

// Count returns the number of results with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == s {
			n++
		}
	}
	return n
}

// WriteText writes a human-readable version of the report to w.
// If color is true, the status of each check is highlighted using ANSI
// escape sequences.
func (r *Report) WriteText(w io.Writer, color bool) error {
	if r.Font != "" {
		if _, err := fmt.Fprintln(w, r.Font); err != nil {
			return err
		}
	}
	for _, res := range r.Results {
		status := fmt.Sprintf("%-5s", res.Status)
		if color {
			status = ansiColor[res.Status] + status + "\x1b[0m"
		}
		if _, err := fmt.Fprintf(w, "  %s %s\n", status, res.CheckID); err != nil {
			return err
		}
		for _, msg := range res.Messages {
			var err error
			if msg.Code != "" && res.Status != StatusPass {
				_, err = fmt.Fprintf(w, "        [%s] %s\n", msg.Code, msg.Text)
			} else {
				_, err = fmt.Fprintf(w, "        %s\n", msg.Text)
			}
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON writes the report to w in JSON format.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

var ansiColor = map[Status]string{
	StatusPass:  "\x1b[32m",
	StatusFail:  "\x1b[31m",
	StatusSkip:  "\x1b[90m",
	StatusError: "\x1b[35m",
}
