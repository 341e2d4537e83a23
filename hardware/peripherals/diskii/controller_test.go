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

package diskii_test

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
	"github.com/gopherapple/gopherapple/hardware/peripherals/diskii"
	"github.com/gopherapple/gopherapple/media"
	"github.com/gopherapple/gopherapple/test"
)

// register addresses for a controller in slot 6.
const (
	ph0Off    = uint16(0xc0e0)
	ph0On     = uint16(0xc0e1)
	ph1On     = uint16(0xc0e3)
	ph2On     = uint16(0xc0e5)
	ph3On     = uint16(0xc0e7)
	motorOff  = uint16(0xc0e8)
	motorOn   = uint16(0xc0e9)
	drive1Sel = uint16(0xc0ea)
	drive2Sel = uint16(0xc0eb)
	q6L       = uint16(0xc0ec)
	q6H       = uint16(0xc0ed)
	q7L       = uint16(0xc0ee)
	q7H       = uint16(0xc0ef)
)

type clock struct {
	cycles uint64
}

func newController(t *testing.T) (*diskii.Controller, *clock) {
	t.Helper()
	clk := &clock{}
	ct := diskii.NewController(6, func() uint64 { return clk.cycles })
	return ct, clk
}

func blankDisk(typ media.Type) *media.Descriptor {
	size := media.SectorImageSize
	if typ == media.DiskNibble {
		size = media.NibbleImageSize
	}
	return &media.Descriptor{
		Filename: "blank.dsk",
		Type:     typ,
		Data:     make([]byte, size),
	}
}

func TestInstall(t *testing.T) {
	mem := memory.NewMemory()
	ct, _ := newController(t)
	err := ct.Install(mem)
	test.ExpectSuccess(t, err)

	// firmware appears in the slot window
	test.Equate(t, mem.Read(addresses.SlotFirmwareBase(6)), 0xa2)
	test.Equate(t, mem.PageType(0xc6) == memory.ROM, true)

	// the device registers are reachable through memory
	test.Equate(t, mem.Read(q7L), 0x80)

	// a second controller in the same slot is rejected
	other := diskii.NewController(6, func() uint64 { return 0 })
	err = other.Install(mem)
	test.ExpectFailure(t, err)
}

func TestStepper(t *testing.T) {
	ct, _ := newController(t)

	st := ct.Status()
	test.Equate(t, st.Track, 0)

	// stepping in: phases 1, 2 move the head one full track
	ct.Read(ph1On)
	ct.Read(ph2On)
	test.Equate(t, ct.Status().Track, 1)

	// and on through 3, 0 to track two
	ct.Read(ph3On)
	ct.Read(ph0On)
	test.Equate(t, ct.Status().Track, 2)

	// stepping out again
	ct.Read(ph3On)
	ct.Read(ph2On)
	ct.Read(ph1On)
	ct.Read(ph0On)
	test.Equate(t, ct.Status().Track, 0)

	// the head cannot go below track zero however hard the stepper tries
	ct.Read(ph3On)
	ct.Read(ph2On)
	ct.Read(ph1On)
	test.Equate(t, ct.Status().Track, 0)

	// re-energising the same phase does not move the head
	ct.Read(ph1On)
	ct.Read(ph1On)
	test.Equate(t, ct.Status().Track, 0)
}

func TestMotorDeferral(t *testing.T) {
	ct, clk := newController(t)

	ct.Read(motorOn)
	test.Equate(t, ct.Status().Motor, true)

	// motor off does not take effect immediately
	clk.cycles = 1000
	ct.Read(motorOff)
	test.Equate(t, ct.Status().Motor, true)

	// still spinning at the deadline
	clk.cycles = 1000 + 750000
	ct.Read(q6H)
	test.Equate(t, ct.Status().Motor, true)

	// stopped one cycle later
	clk.cycles = 1000 + 750001
	ct.Read(q6H)
	test.Equate(t, ct.Status().Motor, false)
}

func TestMotorOffCancelled(t *testing.T) {
	ct, clk := newController(t)

	ct.Read(motorOn)
	clk.cycles = 1000
	ct.Read(motorOff)

	// motor on again before the deadline cancels the turn off
	clk.cycles = 2000
	ct.Read(motorOn)

	clk.cycles = 10000000
	ct.Read(q6H)
	test.Equate(t, ct.Status().Motor, true)
}

func TestWriteProtectSense(t *testing.T) {
	ct, _ := newController(t)

	// Q7L with Q6 low reads the write protect notch. mounted disks are
	// always protected; writing is not supported
	test.Equate(t, ct.Read(q7L), 0x80)

	// with Q6 high the same read reports nothing
	ct.Read(q6H)
	test.Equate(t, ct.Read(q7L), 0xee)
}

func TestDriveSelect(t *testing.T) {
	ct, _ := newController(t)

	err := ct.Mount(1, blankDisk(media.DiskDOSOrder))
	test.ExpectSuccess(t, err)

	test.Equate(t, ct.Status().SelectedDrive, 0)
	test.Equate(t, ct.IsMounted(0), false)
	test.Equate(t, ct.IsMounted(1), true)

	ct.Read(drive2Sel)
	test.Equate(t, ct.Status().SelectedDrive, 1)

	// the two drives have independent state
	ct.Read(ph1On)
	ct.Read(ph2On)
	test.Equate(t, ct.Status().Track, 1)
	ct.Read(drive1Sel)
	test.Equate(t, ct.Status().Track, 0)
}

func TestReadNibbleStream(t *testing.T) {
	ct, _ := newController(t)

	err := ct.Mount(0, blankDisk(media.DiskDOSOrder))
	test.ExpectSuccess(t, err)

	ct.Read(motorOn)
	ct.Read(q7L) // into read mode

	// a nibble arrives one bit per read. the first track byte is a sync
	// 0xff, whose bits appear from the top of the shift register
	want := []uint8{0x01, 0x03, 0x07, 0x0f, 0x1f, 0x3f, 0x7f, 0xff}
	for i, w := range want {
		v := ct.Read(q6L)
		if v != w {
			t.Fatalf("read %d returned %02x, expected %02x", i, v, w)
		}
	}

	// with the motor off the shift register freezes
	ct2, _ := newController(t)
	err = ct2.Mount(0, blankDisk(media.DiskDOSOrder))
	test.ExpectSuccess(t, err)
	test.Equate(t, ct2.Read(q6L), 0x00)
	test.Equate(t, ct2.Read(q6L), 0x00)
}

func TestHeadWraparound(t *testing.T) {
	ct, _ := newController(t)

	// a nibble image that is zero except for a marker at the very start of
	// track zero
	disk := blankDisk(media.DiskNibble)
	disk.Data[0] = 0xd5

	err := ct.Mount(0, disk)
	test.ExpectSuccess(t, err)

	ct.Read(motorOn)
	ct.Read(q7L)

	// the marker is the first nibble off the disk
	var last uint8
	for i := 0; i < 8; i++ {
		last = ct.Read(q6L)
	}
	test.Equate(t, last, 0xd5)

	// consume the rest of the revolution
	for i := 8; i < diskii.TrackLength*8; i++ {
		last = ct.Read(q6L)
	}
	test.Equate(t, last, 0x00)

	// the head is back at the start. the marker comes round again
	for i := 0; i < 8; i++ {
		last = ct.Read(q6L)
	}
	test.Equate(t, last, 0xd5)
}
