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

// Package addresses defines the memory addresses that have hardware meaning:
// the CPU vectors, the soft switch page and the slot windows.
package addresses

// CPU vectors.
const (
	NMI   = uint16(0xfffa)
	Reset = uint16(0xfffc)
	Break = uint16(0xfffe)
)

// The soft switch page. Every read and write in this range is dispatched to
// a peripheral handler rather than to RAM or ROM.
const (
	IOBase = uint16(0xc000)
	IOTop  = uint16(0xc0ff)
)

// Individual soft switches for the motherboard peripherals.
const (
	KeyboardData   = uint16(0xc000)
	KeyboardStrobe = uint16(0xc010)
	SpeakerToggle  = uint16(0xc030)
	CassetteInput  = uint16(0xc060)
)

// The language card responds to the sixteen addresses from LanguageCardBase.
// It lives in slot 0 so the range is the same as SlotRegisterBase(0).
const LanguageCardBase = uint16(0xc080)

// SlotRegisterBase returns the base of the sixteen device register addresses
// assigned to a peripheral slot.
func SlotRegisterBase(slot int) uint16 {
	return 0xc080 + uint16(slot)*0x10
}

// SlotFirmwareBase returns the base of the 256 byte firmware window assigned
// to a peripheral slot. Slot firmware is visible at $Cs00.
func SlotFirmwareBase(slot int) uint16 {
	return 0xc000 + uint16(slot)*0x100
}
