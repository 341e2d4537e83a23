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

// Package languagecard emulates the 16K language card. The card shadows
// the ROM region with RAM: 8K at $e000 and two switchable 4K banks at
// $d000. Sixteen soft switches choose, independently, whether reads come
// from ROM or RAM and whether writes reach the RAM underneath. Write
// enabling needs two consecutive reads of an odd switch, a latch the
// original built in to stop a stray access unprotecting the RAM.
package languagecard

import (
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
)

// sizes of the shadowed region.
const (
	romSize  = 0x3000 // $d000 to $ffff
	bankSize = 0x1000 // the switchable $d000 banks
	highSize = 0x2000 // the fixed $e000 to $ffff RAM
)

// LanguageCard is the 16K RAM card in slot zero.
type LanguageCard struct {
	mem *memory.Memory
	rom []uint8

	// 16K: bank one, bank two, then the fixed high 8K
	ram []uint8

	bank2    bool
	readRAM  bool
	writeRAM bool
	prewrite bool
}

// NewLanguageCard is the preferred method of initialisation for the
// LanguageCard type. The rom is the 12K system ROM image the card sits
// underneath.
func NewLanguageCard(rom []uint8) (*LanguageCard, error) {
	if len(rom) != romSize {
		return nil, curated.Errorf("languagecard: system ROM must be 12K (%d bytes)", len(rom))
	}
	return &LanguageCard{
		rom: rom,
		ram: make([]uint8, 2*bankSize+highSize),

		// power on state: reads from ROM, writes reach the RAM, bank two
		bank2:    true,
		readRAM:  false,
		writeRAM: true,
	}, nil
}

// Install maps the system ROM and registers the card's soft switches.
func (lc *LanguageCard) Install(mem *memory.Memory) error {
	if err := mem.MapROM(0xd000, lc.rom); err != nil {
		return curated.Errorf("languagecard: %v", err)
	}
	if err := mem.IO.Register(addresses.LanguageCardBase, addresses.LanguageCardBase+0x0f, lc); err != nil {
		return curated.Errorf("languagecard: %v", err)
	}

	lc.mem = mem
	lc.apply()

	return nil
}

// Bank2 returns true if the second $d000 bank is selected.
func (lc *LanguageCard) Bank2() bool {
	return lc.bank2
}

// ReadRAM returns true if reads of the shadowed region come from RAM.
func (lc *LanguageCard) ReadRAM() bool {
	return lc.readRAM
}

// WriteRAM returns true if writes to the shadowed region reach the RAM.
func (lc *LanguageCard) WriteRAM() bool {
	return lc.writeRAM
}

// the sixteen soft switches decode as: bit 3 selects the bank, bits 0 and
// 1 together select the read source and write protection.
func (lc *LanguageCard) access(address uint16, write bool) {
	n := address & 0x000f

	lc.bank2 = n&0x08 == 0
	lc.readRAM = n&0x03 == 0x00 || n&0x03 == 0x03

	if n&0x01 == 0x01 {
		// two consecutive reads unprotect the RAM. a write in between
		// resets the latch
		if !write && lc.prewrite {
			lc.writeRAM = true
		}
		lc.prewrite = !write
	} else {
		lc.writeRAM = false
		lc.prewrite = false
	}

	lc.apply()
}

// apply the current switch state to the page tables.
func (lc *LanguageCard) apply() {
	if lc.mem == nil {
		return
	}

	bank := lc.ram[0:bankSize]
	if lc.bank2 {
		bank = lc.ram[bankSize : 2*bankSize]
	}
	high := lc.ram[2*bankSize:]

	// the switchable $d000 region
	for p := 0; p < 16; p++ {
		if lc.readRAM {
			lc.mem.SetPageRead(uint8(0xd0+p), bank[p*256:(p+1)*256])
		} else {
			lc.mem.SetPageRead(uint8(0xd0+p), lc.rom[p*256:(p+1)*256])
		}
		if lc.writeRAM {
			lc.mem.SetPageWrite(uint8(0xd0+p), bank[p*256:(p+1)*256])
		} else {
			lc.mem.SetPageWrite(uint8(0xd0+p), nil)
		}
	}

	// the fixed $e000 to $ffff region
	for p := 0; p < 32; p++ {
		if lc.readRAM {
			lc.mem.SetPageRead(uint8(0xe0+p), high[p*256:(p+1)*256])
		} else {
			lc.mem.SetPageRead(uint8(0xe0+p), lc.rom[bankSize+p*256:bankSize+(p+1)*256])
		}
		if lc.writeRAM {
			lc.mem.SetPageWrite(uint8(0xe0+p), high[p*256:(p+1)*256])
		} else {
			lc.mem.SetPageWrite(uint8(0xe0+p), nil)
		}
	}
}

// Read a language card soft switch.
func (lc *LanguageCard) Read(address uint16) uint8 {
	lc.access(address, false)
	return memory.FloatingBus
}

// Write a language card soft switch.
func (lc *LanguageCard) Write(address uint16, data uint8) {
	lc.access(address, true)
}
