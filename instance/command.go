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

package instance

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/zeebo/xxh3"

	"seehuhn.de/go/vfcheck/font/outline"
	"seehuhn.de/go/vfcheck/font/sfnt/fvar"
	"seehuhn.de/go/vfcheck/font/vfont"
)

// DefaultCommand runs the fontTools instancer.
var DefaultCommand = []string{
	"fonttools", "varLib.instancer", "-q", "-o", "{out}", "{font}", "{loc}",
}

// Command is an Instancer which runs an external program to generate a
// static font for each location.
//
// The arguments may contain the placeholders "{font}" (the variable font
// file), "{out}" (the file the static instance must be written to) and
// "{loc}" (expands to one "tag=value" argument per axis).
type Command struct {
	Args []string

	dir string

	mu      sync.Mutex
	sources map[uint64]string
}

// NewCommand creates a Command instancer which keeps its files in a new
// temporary directory.  Call Close to remove the directory.
// If no arguments are given, DefaultCommand is used.
func NewCommand(args ...string) (*Command, error) {
	if len(args) == 0 {
		args = DefaultCommand
	}
	if _, err := exec.LookPath(args[0]); err != nil {
		return nil, fmt.Errorf("instancer %q not found: %w", args[0], err)
	}
	dir, err := os.MkdirTemp("", "vfcheck-")
	if err != nil {
		return nil, err
	}
	c := &Command{
		Args:    args,
		dir:     dir,
		sources: make(map[uint64]string),
	}
	return c, nil
}

// Close removes all temporary files.
func (c *Command) Close() error {
	return os.RemoveAll(c.dir)
}

// Instantiate implements the [Instancer] interface.
func (c *Command) Instantiate(ctx context.Context, f *vfont.Font, loc fvar.Location) (outline.Set, error) {
	src, key, err := c.source(f)
	if err != nil {
		return nil, err
	}
	out, err := c.outFile(key)
	if err != nil {
		return nil, err
	}
	defer os.Remove(out)

	args := expandArgs(c.Args, src, out, loc)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	var stderr strings.Builder
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("%s: %w", args[0], err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		return nil, err
	}
	_, glyphs, err := vfont.ReadOutlines(data)
	if err != nil {
		return nil, fmt.Errorf("reading instance: %w", err)
	}
	return glyphs, nil
}

// source writes the font data to the temporary directory, once per font.
func (c *Command) source(f *vfont.Font) (string, uint64, error) {
	key := xxh3.Hash(f.Data)

	c.mu.Lock()
	defer c.mu.Unlock()

	if fname, ok := c.sources[key]; ok {
		return fname, key, nil
	}
	fname := filepath.Join(c.dir, fmt.Sprintf("%016x.ttf", key))
	if err := os.WriteFile(fname, f.Data, 0o600); err != nil {
		return "", 0, err
	}
	c.sources[key] = fname
	return fname, key, nil
}

// outFile reserves a new file name for the output of one instancer run.
// Every call returns a different name, also for repeated locations.
func (c *Command) outFile(key uint64) (string, error) {
	fd, err := os.CreateTemp(c.dir, fmt.Sprintf("%016x-*.ttf", key))
	if err != nil {
		return "", err
	}
	out := fd.Name()
	if err := fd.Close(); err != nil {
		os.Remove(out)
		return "", err
	}
	return out, nil
}

func expandArgs(template []string, src, out string, loc fvar.Location) []string {
	res := make([]string, 0, len(template)+len(loc))
	for _, arg := range template {
		switch arg {
		case "{loc}":
			for _, c := range loc {
				res = append(res, c.Tag+"="+strconv.FormatFloat(c.Value, 'g', -1, 64))
			}
		default:
			arg = strings.ReplaceAll(arg, "{font}", src)
			arg = strings.ReplaceAll(arg, "{out}", out)
			res = append(res, arg)
		}
	}
	return res
}
