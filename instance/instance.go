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

// Package instance produces static outlines for the named instances of a
// variable font.
//
// The interpolation itself is delegated to an [Instancer].  This package
// only decides which locations to instantiate and keeps the results in the
// order of the "fvar" table.
package instance

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"seehuhn.de/go/vfcheck/font/outline"
	"seehuhn.de/go/vfcheck/font/sfnt/fvar"
	"seehuhn.de/go/vfcheck/font/vfont"
)

// Instancer computes the static outlines of a variable font at a given
// location in the design space.
// Implementations must be safe for concurrent use.
type Instancer interface {
	Instantiate(ctx context.Context, f *vfont.Font, loc fvar.Location) (outline.Set, error)
}

// InstancerFunc is an adapter to allow the use of ordinary functions as
// Instancers.
type InstancerFunc func(ctx context.Context, f *vfont.Font, loc fvar.Location) (outline.Set, error)

// Instantiate calls fn(ctx, f, loc).
func (fn InstancerFunc) Instantiate(ctx context.Context, f *vfont.Font, loc fvar.Location) (outline.Set, error) {
	return fn(ctx, f, loc)
}

// Materialized holds the outlines of one named instance.
type Materialized struct {
	// Name is the subfamily name of the instance.  If the name ID cannot be
	// resolved, Name is a placeholder and Resolved is false.
	Name     string
	NameID   uint16
	Resolved bool

	Location fvar.Location
	Glyphs   outline.Set
}

// Materialize instantiates all named instances of f.
//
// At most workers instances are computed concurrently; a value <= 0 means
// no limit.  The result has one entry per named instance, in the order of
// the "fvar" table.
func Materialize(ctx context.Context, f *vfont.Font, inst Instancer, workers int) ([]*Materialized, error) {
	if !f.IsVariable() {
		return nil, nil
	}

	instances := f.Fvar.Instances
	res := make([]*Materialized, len(instances))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i := range instances {
		fi := &instances[i]
		m := &Materialized{
			NameID:   fi.SubfamilyNameID,
			Location: f.Fvar.Location(fi),
		}
		m.Name, m.Resolved = f.InstanceName(fi)
		if !m.Resolved {
			m.Name = fmt.Sprintf("nameID %d", fi.SubfamilyNameID)
		}
		res[i] = m

		g.Go(func() error {
			glyphs, err := inst.Instantiate(ctx, f, m.Location)
			if err != nil {
				return fmt.Errorf("instance %q (%s): %w", m.Name, m.Location, err)
			}
			m.Glyphs = glyphs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
