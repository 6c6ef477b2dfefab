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

// Package profile writes pprof CPU and heap profiles for the command line
// tools.
package profile

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
)

// Session is a running profiling session.
type Session struct {
	cpu     *os.File
	memName string
}

// Start begins CPU profiling if cpuName is non-empty.  If memName is
// non-empty, a heap profile is written to this file when the session is
// stopped.
func Start(cpuName, memName string) (*Session, error) {
	s := &Session{memName: memName}
	if cpuName == "" {
		return s, nil
	}

	fd, err := os.Create(cpuName)
	if err != nil {
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	if err := pprof.StartCPUProfile(fd); err != nil {
		fd.Close()
		return nil, fmt.Errorf("cpu profile: %w", err)
	}
	s.cpu = fd
	return s, nil
}

// Stop ends CPU profiling and writes the heap profile.
// It is safe to call Stop on a nil session.
func (s *Session) Stop() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("cpu profile: %w", err))
		}
		s.cpu = nil
	}

	if s.memName != "" {
		if err := writeHeap(s.memName); err != nil {
			errs = append(errs, fmt.Errorf("memory profile: %w", err))
		}
		s.memName = ""
	}
	return errors.Join(errs...)
}

func writeHeap(fname string) error {
	fd, err := os.Create(fname)
	if err != nil {
		return err
	}
	runtime.GC()
	err = pprof.Lookup("allocs").WriteTo(fd, 0)
	err2 := fd.Close()
	if err == nil {
		err = err2
	}
	return err
}
