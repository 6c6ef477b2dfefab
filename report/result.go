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

// Package report collects the findings of the individual checks into
// per-check results.
package report

import (
	"fmt"
	"strings"

	"seehuhn.de/go/vfcheck/check"
)

// Status is the outcome of a single check.
type Status int

// These are the possible outcomes of a check.
const (
	StatusPass Status = iota
	StatusFail
	StatusSkip
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	case StatusSkip:
		return "SKIP"
	case StatusError:
		return "ERROR"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// MarshalText implements the encoding.TextMarshaler interface.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Message is a single line of check output.
type Message struct {
	Code string `json:"code,omitempty"`
	Text string `json:"text"`
}

// Result is the outcome of one check.
type Result struct {
	CheckID  string    `json:"check"`
	Status   Status    `json:"status"`
	Messages []Message `json:"messages,omitempty"`
}

// Individual turns findings into a result with one message per finding.
// Identical findings are only reported once.  If there are no findings,
// the result is a pass with message passText.
func Individual(checkID string, ff []check.Finding, passText string) Result {
	if len(ff) == 0 {
		return pass(checkID, passText)
	}

	res := Result{CheckID: checkID, Status: StatusFail}
	seen := make(map[check.Finding]bool, len(ff))
	for _, f := range ff {
		if seen[f] {
			continue
		}
		seen[f] = true
		res.Messages = append(res.Messages, Message{
			Code: string(f.Category),
			Text: f.Detail,
		})
	}
	return res
}

// Grouped turns findings into a result with one message per category.
// Each message lists the distinct keys of the findings in this category, in
// the order they were first seen.  If there are no findings, the result is
// a pass with message passText.
func Grouped(checkID, code string, ff []check.Finding, passText string) Result {
	if len(ff) == 0 {
		return pass(checkID, passText)
	}

	var order []check.Category
	keys := make(map[check.Category][]string)
	seen := make(map[check.Category]map[string]bool)
	for _, f := range ff {
		if _, ok := seen[f.Category]; !ok {
			order = append(order, f.Category)
			seen[f.Category] = make(map[string]bool)
		}
		if seen[f.Category][f.Key] {
			continue
		}
		seen[f.Category][f.Key] = true
		keys[f.Category] = append(keys[f.Category], f.Key)
	}

	res := Result{CheckID: checkID, Status: StatusFail}
	for _, cat := range order {
		res.Messages = append(res.Messages, Message{
			Code: code,
			Text: string(cat) + ": " + strings.Join(keys[cat], ", "),
		})
	}
	return res
}

// Skipped returns a result for a check which does not apply.
func Skipped(checkID, reason string) Result {
	return Result{
		CheckID:  checkID,
		Status:   StatusSkip,
		Messages: []Message{{Text: reason}},
	}
}

// Errored returns a result for a check which could not be completed.
func Errored(checkID string, err error) Result {
	return Result{
		CheckID:  checkID,
		Status:   StatusError,
		Messages: []Message{{Code: "error", Text: err.Error()}},
	}
}

func pass(checkID, text string) Result {
	return Result{
		CheckID:  checkID,
		Status:   StatusPass,
		Messages: []Message{{Text: text}},
	}
}
