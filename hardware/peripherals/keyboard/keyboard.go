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

// Package keyboard emulates the keyboard latch. A key press loads the
// latch with the key's ASCII value and raises the strobe. Software reads
// the latch at $c000, sees the strobe in the high bit, and acknowledges it
// by touching $c010.
package keyboard

import (
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
)

// Keyboard is the keyboard latch and strobe.
type Keyboard struct {
	latch  uint8
	strobe bool
}

// NewKeyboard is the preferred method of initialisation for the Keyboard
// type.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// Install the keyboard soft switches. The data latch and the strobe clear
// each occupy sixteen mirrored addresses.
func (kb *Keyboard) Install(mem *memory.Memory) error {
	if err := mem.IO.Register(addresses.KeyboardData, addresses.KeyboardData+0x0f, kb); err != nil {
		return curated.Errorf("keyboard: %v", err)
	}
	if err := mem.IO.Register(addresses.KeyboardStrobe, addresses.KeyboardStrobe+0x0f, kb); err != nil {
		return curated.Errorf("keyboard: %v", err)
	}
	return nil
}

// KeyPress loads the latch with an ASCII value and raises the strobe. An
// unacknowledged previous key is simply overwritten.
func (kb *Keyboard) KeyPress(key uint8) {
	kb.latch = key & 0x7f
	kb.strobe = true
}

// Read a keyboard soft switch.
func (kb *Keyboard) Read(address uint16) uint8 {
	if address >= addresses.KeyboardStrobe {
		kb.strobe = false
		return memory.FloatingBus
	}

	// the strobe is the high bit of the latch
	if kb.strobe {
		return kb.latch | 0x80
	}
	return kb.latch
}

// Write a keyboard soft switch. Writing the strobe address clears the
// strobe just as reading it does.
func (kb *Keyboard) Write(address uint16, data uint8) {
	if address >= addresses.KeyboardStrobe {
		kb.strobe = false
	}
}
