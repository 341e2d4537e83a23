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

package display_test

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware/display"
	"github.com/gopherapple/gopherapple/hardware/memory"
	"github.com/gopherapple/gopherapple/test"
)

type mockRenderer struct {
	frames []*display.Frame
}

func (r *mockRenderer) RenderFrame(frame *display.Frame) {
	r.frames = append(r.frames, frame)
}

func (r *mockRenderer) last() *display.Frame {
	return r.frames[len(r.frames)-1]
}

func newDisplay(t *testing.T) (*display.Display, *memory.Memory, *mockRenderer) {
	t.Helper()
	mem := memory.NewMemory()
	ds := display.NewDisplay()
	err := ds.Install(mem)
	test.ExpectSuccess(t, err)
	r := &mockRenderer{}
	ds.Attach(r)
	return ds, mem, r
}

func TestTextFrame(t *testing.T) {
	ds, mem, r := newDisplay(t)

	// text rows are interleaved in memory in three groups of eight
	mem.Write(0x0400, 'H') // row 0, column 0
	mem.Write(0x0480, 'I') // row 1, column 0
	mem.Write(0x0428, 'J') // row 8, column 0
	mem.Write(0x0450, 'K') // row 16, column 0
	mem.Write(0x07d0, 'L') // row 23, column 0

	ds.Frame()
	frame := r.last()

	test.Equate(t, frame.Graphics, false)
	test.Equate(t, frame.Text[0][0], uint8('H'))
	test.Equate(t, frame.Text[1][0], uint8('I'))
	test.Equate(t, frame.Text[8][0], uint8('J'))
	test.Equate(t, frame.Text[16][0], uint8('K'))
	test.Equate(t, frame.Text[23][0], uint8('L'))
}

func TestPageSelect(t *testing.T) {
	ds, mem, r := newDisplay(t)

	mem.Write(0x0400, 'A')
	mem.Write(0x0800, 'B')

	ds.Frame()
	test.Equate(t, r.last().Text[0][0], uint8('A'))

	mem.Read(0xc055) // page two
	ds.Frame()
	test.Equate(t, r.last().Text[0][0], uint8('B'))

	mem.Read(0xc054) // back to page one
	ds.Frame()
	test.Equate(t, r.last().Text[0][0], uint8('A'))
}

func TestHiresFrame(t *testing.T) {
	ds, mem, r := newDisplay(t)

	// graphics, hires, full screen
	mem.Read(0xc050)
	mem.Read(0xc057)
	mem.Read(0xc052)

	// line 0 starts at $2000. set pixels 0 and 6 of the first byte
	mem.Write(0x2000, 0x41)
	// line 1 is $400 bytes on
	mem.Write(0x2400, 0x01)
	// line 8 is $80 bytes on
	mem.Write(0x2080, 0x01)
	// line 64 starts the second group
	mem.Write(0x2028, 0x01)

	ds.Frame()
	frame := r.last()

	test.Equate(t, frame.Graphics, true)
	test.Equate(t, len(frame.Pixels), display.PixelWidth*display.PixelHeight)

	test.Equate(t, frame.Pixels[0], 1)
	test.Equate(t, frame.Pixels[1], 0)
	test.Equate(t, frame.Pixels[6], 1)
	test.Equate(t, frame.Pixels[1*display.PixelWidth], 1)
	test.Equate(t, frame.Pixels[8*display.PixelWidth], 1)
	test.Equate(t, frame.Pixels[64*display.PixelWidth], 1)
}

func TestMixedMode(t *testing.T) {
	ds, mem, r := newDisplay(t)

	mem.Read(0xc050) // graphics
	mem.Read(0xc053) // mixed

	ds.Frame()
	test.Equate(t, r.last().Graphics, true)
	test.Equate(t, r.last().Mixed, true)

	mem.Read(0xc051) // text overrides
	ds.Frame()
	test.Equate(t, r.last().Graphics, false)
}
