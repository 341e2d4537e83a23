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

// Package hardware assembles the components of the emulated machine and
// runs them against the wall clock.
package hardware

import (
	"time"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/cpu"
	"github.com/gopherapple/gopherapple/hardware/cpu/instructions"
	"github.com/gopherapple/gopherapple/hardware/display"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
	"github.com/gopherapple/gopherapple/hardware/peripherals/cassette"
	"github.com/gopherapple/gopherapple/hardware/peripherals/diskii"
	"github.com/gopherapple/gopherapple/hardware/peripherals/keyboard"
	"github.com/gopherapple/gopherapple/hardware/peripherals/languagecard"
	"github.com/gopherapple/gopherapple/hardware/peripherals/speaker"
	"github.com/gopherapple/gopherapple/media"
)

// the peripheral slot the disk controller lives in. DOS expects slot six.
const DiskSlot = 6

// AudioSampleRate is the PCM rate the speaker renders at.
const AudioSampleRate = 44100

// Apple2 is the main container for the emulated components of the machine.
type Apple2 struct {
	CPU *cpu.CPU
	Mem *memory.Memory

	Keyboard     *keyboard.Keyboard
	Speaker      *speaker.Speaker
	Cassette     *cassette.Cassette
	LanguageCard *languagecard.LanguageCard
	Display      *display.Display
	DiskII       *diskii.Controller

	// how fast to run. change before calling Run()
	Clock ClockMode

	stats RunStats

	// wall clock in nanoseconds and a way to wait on it. replaceable so the
	// run loop can be tested without real delays
	now   func() uint64
	sleep func(time.Duration)
}

// NewApple2 creates the machine and everything plugged into it. The rom is
// the 12K system ROM image; if nil a built-in stub is used which boots
// straight into the disk controller firmware.
func NewApple2(variant instructions.Variant, rom []uint8) (*Apple2, error) {
	ap := &Apple2{
		Clock: Clock1MHz,
		now:   func() uint64 { return uint64(time.Now().UnixNano()) },
		sleep: time.Sleep,
	}

	ap.Mem = memory.NewMemory()

	var err error
	ap.CPU, err = cpu.NewCPU(variant, ap.Mem)
	if err != nil {
		return nil, curated.Errorf("apple2: %v", err)
	}

	// peripherals that keep time do so off the CPU cycle counter. the clock
	// rate is read through a function so a change to the Clock field, made
	// after creation but before Run(), reaches them
	cycles := func() uint64 { return ap.CPU.Cycles }
	clockHz := func() int { return ap.Clock.Hz() }

	if rom == nil {
		rom = stubSystemROM()
	}
	ap.LanguageCard, err = languagecard.NewLanguageCard(rom)
	if err != nil {
		return nil, curated.Errorf("apple2: %v", err)
	}

	ap.Keyboard = keyboard.NewKeyboard()
	ap.Speaker = speaker.NewSpeaker(cycles, clockHz, AudioSampleRate)
	ap.Cassette = cassette.NewCassette(cycles, clockHz)
	ap.Display = display.NewDisplay()
	ap.DiskII = diskii.NewController(DiskSlot, cycles)

	for _, install := range []func(*memory.Memory) error{
		ap.LanguageCard.Install,
		ap.Keyboard.Install,
		ap.Speaker.Install,
		ap.Cassette.Install,
		ap.Display.Install,
		ap.DiskII.Install,
	} {
		if err := install(ap.Mem); err != nil {
			return nil, curated.Errorf("apple2: %v", err)
		}
	}

	ap.Reset()

	return ap, nil
}

// Reset the machine as the power switch would.
func (ap *Apple2) Reset() {
	ap.CPU.Reset()
}

// Attach mounted media to the machine. Disks go into drive one of the disk
// controller; cassettes into the tape port.
func (ap *Apple2) Attach(desc *media.Descriptor) error {
	switch desc.Type {
	case media.Cassette:
		return ap.Cassette.Load(desc)
	default:
		return ap.DiskII.Mount(0, desc)
	}
}

// stubSystemROM builds a minimal 12K system ROM for running without a real
// ROM image. The reset vector points at the disk controller's boot firmware
// and the monitor entry points that the firmware calls are serviced.
func stubSystemROM() []uint8 {
	rom := make([]uint8, 0x3000)

	// any stray call into the ROM returns immediately
	for i := range rom {
		rom[i] = 0x60
	}

	// the monitor's cycle counted delay loop at $fca8. the boot firmware
	// calls it while stepping the drive
	wait := []uint8{
		0x38,       // SEC
		0x48,       // PHA
		0xe9, 0x01, // SBC #$01
		0xd0, 0xfc, // BNE -4
		0x68,       // PLA
		0xe9, 0x01, // SBC #$01
		0xd0, 0xf6, // BNE -10
		0x60,       // RTS
	}
	copy(rom[0xfca8-0xd000:], wait)

	// reset straight into the slot six boot firmware
	rom[addresses.Reset-0xd000] = 0x00
	rom[addresses.Reset+1-0xd000] = 0xc6

	// interrupt vectors point at an RTS. a BRK halts the CPU after
	// vectoring so the destination only matters for the halt report
	rom[addresses.NMI-0xd000] = 0x58
	rom[addresses.NMI+1-0xd000] = 0xff
	rom[addresses.Break-0xd000] = 0x58
	rom[addresses.Break+1-0xd000] = 0xff

	return rom
}
