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
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hako/durafmt"
	"golang.org/x/term"

	"seehuhn.de/go/vfcheck"
	"seehuhn.de/go/vfcheck/check"
	"seehuhn.de/go/vfcheck/font/vfont"
	"seehuhn.de/go/vfcheck/instance"
	"seehuhn.de/go/vfcheck/report"
	"seehuhn.de/go/vfcheck/tools/internal/buildinfo"
	"seehuhn.de/go/vfcheck/tools/internal/profile"
)

var (
	vendorArg    = flag.String("vendor", "", "expected OS/2 vendor ID")
	toleranceArg = flag.Float64("tolerance", check.DefaultTolerance, "accepted change of contour direction, in `degrees` (0 = default)")
	workersArg   = flag.Int("j", 0, "number of instances to compute in parallel (0 = no limit)")
	skipArg      = flag.String("skip", "", "comma-separated list of `checks` to skip")
	instancerArg = flag.String("instancer", strings.Join(instance.DefaultCommand, " "),
		"`command` used to compute static instances, or \"none\"")
	jsonArg    = flag.Bool("json", false, "write the report in JSON format")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
	memprofile = flag.String("memprofile", "", "write memory profile to `file`")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "vf-check \u2014 check variable fonts for internal inconsistencies\n")
		fmt.Fprintf(os.Stderr, "%s\n\n", buildinfo.Short("vf-check"))
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  vf-check [options] <pattern>...\n\n")
		fmt.Fprintf(os.Stderr, "Arguments:\n")
		fmt.Fprintf(os.Stderr, "  pattern    font file names; \"*\" and \"**\" are expanded\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nChecks:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", strings.Join(vfcheck.AllChecks, ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vf-check 'fonts/**/*.ttf'\n")
		fmt.Fprintf(os.Stderr, "  vf-check -vendor WERK -skip vendor_id,no_mac_entries MyFont.ttf\n")
		fmt.Fprintf(os.Stderr, "  vf-check -instancer none MyFont.ttf\n")
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	failed, err := run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if failed {
		os.Exit(2)
	}
}

func run() (bool, error) {
	prof, err := profile.Start(*cpuprofile, *memprofile)
	if err != nil {
		return false, err
	}
	defer func() {
		if err := prof.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}()

	skip, err := vfcheck.ParseSkip(*skipArg)
	if err != nil {
		return false, err
	}

	var fileNames []string
	for _, pattern := range flag.Args() {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return false, fmt.Errorf("%s: %w", pattern, err)
		}
		if len(matches) == 0 {
			return false, fmt.Errorf("%s: no such file", pattern)
		}
		fileNames = append(fileNames, matches...)
	}

	opt := &vfcheck.Options{
		Vendor:    *vendorArg,
		Tolerance: *toleranceArg,
		Workers:   *workersArg,
		Skip:      skip,
	}
	if err := opt.Verify(); err != nil {
		return false, err
	}
	if args := strings.Fields(*instancerArg); len(args) > 0 && args[0] != "none" {
		inst, err := instance.NewCommand(args...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v, skipping interpolation checks\n", err)
		} else {
			defer inst.Close()
			opt.Instancer = inst
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	color := !*jsonArg && term.IsTerminal(int(os.Stdout.Fd()))
	start := time.Now()
	anyFailed := false
	var pass, fail int
	for _, fname := range fileNames {
		r, err := checkFile(ctx, fname, opt)
		if err != nil {
			return anyFailed, err
		}
		if r.Failed() {
			anyFailed = true
		}
		pass += r.Count(report.StatusPass)
		fail += r.Count(report.StatusFail) + r.Count(report.StatusError)

		if *jsonArg {
			err = r.WriteJSON(os.Stdout)
		} else {
			err = r.WriteText(os.Stdout, color)
		}
		if err != nil {
			return anyFailed, err
		}
	}

	if !*jsonArg {
		elapsed := durafmt.Parse(time.Since(start).Round(time.Millisecond)).LimitFirstN(2)
		fmt.Printf("\n%d fonts, %d checks passed, %d failed, in %s\n",
			len(fileNames), pass, fail, elapsed)
	}
	return anyFailed, nil
}

func checkFile(ctx context.Context, fname string, opt *vfcheck.Options) (*report.Report, error) {
	f, err := vfont.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	r := vfcheck.Validate(ctx, f, opt)
	r.Font = fname
	return r, ctx.Err()
}
