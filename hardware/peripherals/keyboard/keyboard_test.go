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

package keyboard_test

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/hardware/peripherals/keyboard"
	"github.com/gopherapple/gopherapple/test"
)

func TestKeyboard(t *testing.T) {
	mem := memory.NewMemory()
	kb := keyboard.NewKeyboard()
	err := kb.Install(mem)
	test.ExpectSuccess(t, err)

	// no key yet
	test.Equate(t, mem.Read(0xc000), 0x00)

	kb.KeyPress('A')
	test.Equate(t, mem.Read(0xc000), uint8(0x80|'A'))

	// the latch holds until the strobe is cleared
	test.Equate(t, mem.Read(0xc000), uint8(0x80|'A'))

	mem.Read(0xc010)
	test.Equate(t, mem.Read(0xc000), uint8('A'))

	// a new key overwrites an unacknowledged one
	kb.KeyPress('B')
	kb.KeyPress('C')
	test.Equate(t, mem.Read(0xc000), uint8(0x80|'C'))

	// writing the strobe address clears it too
	mem.Write(0xc010, 0x00)
	test.Equate(t, mem.Read(0xc000), uint8('C'))

	// the soft switches are mirrored across sixteen addresses
	kb.KeyPress('D')
	test.Equate(t, mem.Read(0xc00f), uint8(0x80|'D'))
	mem.Read(0xc01f)
	test.Equate(t, mem.Read(0xc000), uint8('D'))
}
