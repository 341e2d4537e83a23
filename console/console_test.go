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

package console

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware"
	"github.com/gopherapple/gopherapple/hardware/cpu/instructions"
	"github.com/gopherapple/gopherapple/test"
)

func TestScreenChar(t *testing.T) {
	// normal video characters have the high bit set
	test.Equate(t, int(screenChar(0xc1)), int('A'))
	test.Equate(t, int(screenChar(0xa0)), int(' '))
	test.Equate(t, int(screenChar(0xb0)), int('0'))
	test.Equate(t, int(screenChar(0xbf)), int('?'))

	// inverse and flashing video map to the same characters
	test.Equate(t, int(screenChar(0x01)), int('A'))
	test.Equate(t, int(screenChar(0x00)), int('@'))
	test.Equate(t, int(screenChar(0x60)), int(' '))
}

func TestDispatch(t *testing.T) {
	ap, err := hardware.NewApple2(instructions.NMOS, nil)
	test.ExpectSuccess(t, err)
	cn := &Console{ap: ap}

	// keystrokes land in the keyboard latch, upper cased, with the strobe set
	test.Equate(t, cn.dispatch([]byte{'a'}), true)
	test.Equate(t, ap.Mem.Read(0xc000), 0xc1)

	// the left arrow is the machine's backspace
	test.Equate(t, cn.dispatch([]byte{0x1b, '[', 'D'}), true)
	test.Equate(t, ap.Mem.Read(0xc000), 0x88)

	// F10 rolls the tape; a second press stops it
	test.Equate(t, ap.Cassette.IsPlaying(), false)
	test.Equate(t, cn.dispatch([]byte{0x1b, '[', '2', '1', '~'}), true)
	test.Equate(t, ap.Cassette.IsPlaying(), true)
	test.Equate(t, cn.dispatch([]byte{0x1b, '[', '2', '1', '~'}), true)
	test.Equate(t, ap.Cassette.IsPlaying(), false)

	// ctrl+] ends the session
	test.Equate(t, cn.dispatch([]byte{quitKey}), false)
}
