// This file is part of GopherApple.
//
// GopherApple is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// GopherApple is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with GopherApple.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/gopherapple/gopherapple/console"
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/gui"
	"github.com/gopherapple/gopherapple/gui/sdlplay"
	"github.com/gopherapple/gopherapple/hardware"
	"github.com/gopherapple/gopherapple/hardware/cpu/instructions"
	"github.com/gopherapple/gopherapple/logger"
	"github.com/gopherapple/gopherapple/media"
	"github.com/gopherapple/gopherapple/modalflag"
	"github.com/gopherapple/gopherapple/performance"
	"github.com/gopherapple/gopherapple/statsview"
	"github.com/gopherapple/gopherapple/version"
	"github.com/gopherapple/gopherapple/wavwriter"
)

func init() {
	// SDL window creation, event pumping and rendering must all happen on
	// the main thread
	runtime.LockOSThread()
}

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "PLAY", "TERM", "PERFORMANCE")

	vers, _ := version.Version()
	md.AdditionalHelp(fmt.Sprintf("%s %s", version.ApplicationName, vers))

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		fallthrough
	case "PLAY":
		err = play(md)
	case "TERM":
		err = term(md)
	case "PERFORMANCE":
		err = perform(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %s\n", md.String(), err)
		os.Exit(20)
	}
}

// machine flags shared by every mode.
type machineFlags struct {
	rom   *string
	cmos  *bool
	clock *string
}

func addMachineFlags(md *modalflag.Modes) machineFlags {
	return machineFlags{
		rom:   md.AddString("rom", "", "machine ROM image (12K). a built-in stub is used if empty"),
		cmos:  md.AddBool("cmos", false, "fit the CMOS variant of the CPU"),
		clock: md.AddString("clock", "1MHz", "clock mode: 1MHz, 2.8MHz, free"),
	}
}

func newMachine(flgs machineFlags) (*hardware.Apple2, error) {
	var rom []uint8

	if *flgs.rom != "" {
		var err error
		rom, err = os.ReadFile(*flgs.rom)
		if err != nil {
			return nil, curated.Errorf("cannot load machine ROM: %v", err)
		}
	}

	variant := instructions.NMOS
	if *flgs.cmos {
		variant = instructions.CMOS
	}

	ap, err := hardware.NewApple2(variant, rom)
	if err != nil {
		return nil, err
	}

	switch *flgs.clock {
	case "1MHz":
		ap.Clock = hardware.Clock1MHz
	case "2.8MHz":
		ap.Clock = hardware.Clock28MHz
	case "free":
		ap.Clock = hardware.ClockFreeRun
	default:
		return nil, curated.Errorf("unknown clock mode (%s)", *flgs.clock)
	}

	return ap, nil
}

// attachMedia mounts the remaining command line arguments: disk images into
// the drives in order, cassettes into the tape port.
func attachMedia(ap *hardware.Apple2, args []string) error {
	driveNum := 0

	for _, arg := range args {
		desc, err := media.NewDescriptor(arg)
		if err != nil {
			return err
		}

		if desc.Type == media.Cassette {
			if err := ap.Cassette.Load(desc); err != nil {
				return err
			}
			continue
		}

		if driveNum > 1 {
			return curated.Errorf("too many disk images (the controller has two drives)")
		}
		if err := ap.DiskII.Mount(driveNum, desc); err != nil {
			return err
		}
		driveNum++
	}

	return nil
}

// runSurface runs the machine against a gui.GUI, stopping cleanly on an
// interrupt signal.
func runSurface(ap *hardware.Apple2, scr gui.GUI) error {
	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)
	defer signal.Stop(intChan)

	return ap.Run(func() (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
		}
		return scr.Service()
	})
}

func play(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addMachineFlags(md)
	scale := md.AddFloat64("scale", 2.0, "window scaling")
	wav := md.AddString("wav", "", "record audio to wav file")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout)
	} else {
		logger.SetEcho(nil)
	}

	ap, err := newMachine(flgs)
	if err != nil {
		return err
	}

	if err := attachMedia(ap, md.RemainingArgs()); err != nil {
		return err
	}

	if *wav != "" {
		aw, err := wavwriter.New(*wav, ap.Speaker.SampleRate())
		if err != nil {
			return err
		}
		ap.Speaker.Attach(aw)
		defer aw.End()
	}

	scr, err := sdlplay.NewSdlPlay(ap, float32(*scale))
	if err != nil {
		return err
	}
	defer scr.End()

	return runSurface(ap, scr)
}

func term(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addMachineFlags(md)

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	// log entries would wreck the terminal display
	logger.SetEcho(nil)

	ap, err := newMachine(flgs)
	if err != nil {
		return err
	}

	if err := attachMedia(ap, md.RemainingArgs()); err != nil {
		return err
	}

	cn, err := console.NewConsole(ap)
	if err != nil {
		return err
	}
	defer cn.End()

	return runSurface(ap, cn)
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	flgs := addMachineFlags(md)
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "run through a profiler: cpu, mem, all, none")
	stats := md.AddBool("statsview", false, "run the runtime stats server")
	viz := md.AddString("viz", "", "dump the machine graph to a dot file after the run")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	prof, err := performance.ParseProfile(*profile)
	if err != nil {
		return err
	}

	if *stats {
		if !statsview.Available() {
			return curated.Errorf("statsview not available. rebuild with the statsview build constraint")
		}
		statsview.Launch(os.Stdout)
	}

	ap, err := newMachine(flgs)
	if err != nil {
		return err
	}

	if err := attachMedia(ap, md.RemainingArgs()); err != nil {
		return err
	}

	if err := performance.Check(os.Stdout, prof, ap, *duration); err != nil {
		return err
	}

	if *viz != "" {
		return performance.DumpMachineGraph(ap, *viz)
	}

	return nil
}
