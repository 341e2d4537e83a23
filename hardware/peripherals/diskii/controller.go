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

package diskii

import (
	"fmt"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
	"github.com/gopherapple/gopherapple/logger"
	"github.com/gopherapple/gopherapple/media"
)

// the sixteen device registers, as offsets from the slot's register base.
const (
	regPh0Off = iota
	regPh0On
	regPh1Off
	regPh1On
	regPh2Off
	regPh2On
	regPh3Off
	regPh3On
	regMotorOff
	regMotorOn
	regDrive1Select
	regDrive2Select
	regQ6L
	regQ6H
	regQ7L
	regQ7H
)

// the disk volume number written into every address field when encoding.
// DOS 3.3 uses 254 for disks it initialises and the RWTS does not care.
const defaultVolume = 0xfe

// Controller is a Disk II interface card and the two drives cabled to it.
type Controller struct {
	slot   int
	drives [2]*drive
	sel    int

	// the deferred motor off needs to know how far the machine has run
	cycles func() uint64
}

// NewController is the preferred method of initialisation for the
// Controller type. The cycles function reports the machine's running cycle
// count; the controller uses it to time the delayed motor off.
func NewController(slot int, cycles func() uint64) *Controller {
	return &Controller{
		slot:   slot,
		drives: [2]*drive{newDrive(), newDrive()},
		cycles: cycles,
	}
}

// Install the controller into the machine: the device registers into the
// soft switch page and the boot firmware into the slot's firmware window.
func (ct *Controller) Install(mem *memory.Memory) error {
	base := addresses.SlotRegisterBase(ct.slot)
	if err := mem.IO.Register(base, base+15, ct); err != nil {
		return curated.Errorf("diskii: %v", err)
	}
	if err := mem.MapROM(addresses.SlotFirmwareBase(ct.slot), firmware); err != nil {
		return curated.Errorf("diskii: %v", err)
	}
	return nil
}

// Mount a disk image in a drive. Sector ordered images are nibblized on
// the way in.
func (ct *Controller) Mount(driveNum int, desc *media.Descriptor) error {
	if driveNum < 0 || driveNum > 1 {
		return curated.Errorf("diskii: no such drive (%d)", driveNum)
	}

	var tracks [][]uint8
	var err error

	switch desc.Type {
	case media.DiskDOSOrder:
		tracks, err = encodeDisk(desc.Data, defaultVolume, InterleaveDOS)
	case media.DiskProDOSOrder:
		tracks, err = encodeDisk(desc.Data, defaultVolume, InterleaveProDOS)
	case media.DiskNibble:
		tracks, err = splitNibbleImage(desc.Data)
	default:
		return curated.Errorf("diskii: cannot mount %s", desc)
	}
	if err != nil {
		return err
	}

	dr := ct.drives[driveNum]
	dr.tracks = tracks
	dr.headPosition = 0
	dr.bitPosition = 0
	dr.shiftRegister = 0

	logger.Log("diskii", fmt.Sprintf("slot %d drive %d: mounted %s", ct.slot, driveNum+1, desc))

	return nil
}

// Unmount the disk from a drive.
func (ct *Controller) Unmount(driveNum int) {
	if driveNum < 0 || driveNum > 1 {
		return
	}
	ct.drives[driveNum].tracks = nil
}

// IsMounted returns true if the drive holds a disk.
func (ct *Controller) IsMounted(driveNum int) bool {
	if driveNum < 0 || driveNum > 1 {
		return false
	}
	return ct.drives[driveNum].tracks != nil
}

// Status is a snapshot of the controller for display purposes.
type Status struct {
	SelectedDrive int
	Track         int
	Motor         bool
	WriteProtect  bool
}

// Status of the currently selected drive.
func (ct *Controller) Status() Status {
	dr := ct.drives[ct.sel]
	return Status{
		SelectedDrive: ct.sel,
		Track:         dr.halfTrack / 2,
		Motor:         dr.motor,
		WriteProtect:  dr.writeProtect,
	}
}

// Read a device register. All controller state changes happen on reads;
// the addresses merely have to be touched.
func (ct *Controller) Read(address uint16) uint8 {
	reg := int(address & 0x000f)
	dr := ct.drives[ct.sel]

	// a pending motor off takes effect lazily, whenever the controller
	// notices the deadline has passed
	if dr.motor && dr.motorOffAt != 0 && ct.cycles() > dr.motorOffAt {
		dr.motor = false
		dr.motorOffAt = 0
	}

	switch reg {
	case regPh0Off:
		dr.phaseOff(0)
	case regPh0On:
		dr.phaseOn(0)
	case regPh1Off:
		dr.phaseOff(1)
	case regPh1On:
		dr.phaseOn(1)
	case regPh2Off:
		dr.phaseOff(2)
	case regPh2On:
		dr.phaseOn(2)
	case regPh3Off:
		dr.phaseOff(3)
	case regPh3On:
		dr.phaseOn(3)

	case regMotorOff:
		// the drive keeps spinning for a while. turning an already stopped
		// motor off does nothing
		if dr.motor {
			dr.motorOffAt = ct.cycles() + motorOffDelay
		}
	case regMotorOn:
		dr.motor = true
		dr.motorOffAt = 0

	case regDrive1Select:
		ct.sel = 0
	case regDrive2Select:
		ct.sel = 1

	case regQ6L:
		dr.q6 = false
	case regQ6H:
		dr.q6 = true
	case regQ7L:
		dr.q7 = false
		if !dr.q6 {
			// write protect sense
			if dr.writeProtect {
				return 0x80
			}
			return 0x00
		}
	case regQ7H:
		dr.q7 = true
	}

	// in read mode, touching any even register shifts data off the disk
	if reg&0x01 == 0 && !dr.q6 && !dr.q7 {
		return dr.readNibble()
	}

	return memory.FloatingBus
}

// Write a device register. The controller's state machine is driven
// entirely by reads; disk writing is not supported and the data is
// dropped.
func (ct *Controller) Write(address uint16, data uint8) {
}
