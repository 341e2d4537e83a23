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

// Package display generates video frames from the memory mapped screen
// pages. The video circuitry has no registers of its own, only soft
// switches that select what is on screen: text or graphics, which page,
// and whether the bottom of a graphics screen shows four lines of text.
//
// Rendering is monochrome. The NTSC colour fringing of the real machine
// is an artefact of the bit stream hitting a television and reproducing
// it is out of scope; every lit pixel is simply lit.
package display

import (
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory"
)

// Screen geometry.
const (
	PixelWidth  = 280
	PixelHeight = 192

	TextColumns = 40
	TextRows    = 24
)

// the video mode soft switches.
const (
	switchGraphics = uint16(0xc050)
	switchText     = uint16(0xc051)
	switchFull     = uint16(0xc052)
	switchMixed    = uint16(0xc053)
	switchPage1    = uint16(0xc054)
	switchPage2    = uint16(0xc055)
	switchLores    = uint16(0xc056)
	switchHires    = uint16(0xc057)
)

// Frame is one rendered video frame. Pixels is row major, one byte per
// pixel, non-zero meaning lit. Text is the character memory as the screen
// shows it, useful for renderers that work in characters rather than
// pixels.
type Frame struct {
	Pixels []uint8
	Text   [TextRows][TextColumns]uint8

	// true if Pixels holds graphics. false means a pure text frame and
	// only Text is meaningful
	Graphics bool

	// the bottom four text rows are live even when Graphics is true
	Mixed bool
}

// Renderer consumes frames.
type Renderer interface {
	RenderFrame(frame *Frame)
}

// Display is the video circuitry.
type Display struct {
	mem *memory.Memory

	text  bool
	mixed bool
	page2 bool
	hires bool

	renderers []Renderer
}

// NewDisplay is the preferred method of initialisation for the Display
// type. The machine powers up showing text page one.
func NewDisplay() *Display {
	return &Display{
		text: true,
	}
}

// Install the video mode soft switches.
func (ds *Display) Install(mem *memory.Memory) error {
	if err := mem.IO.Register(switchGraphics, switchHires, ds); err != nil {
		return curated.Errorf("display: %v", err)
	}
	ds.mem = mem
	return nil
}

// Attach a renderer to receive frames.
func (ds *Display) Attach(renderer Renderer) {
	ds.renderers = append(ds.renderers, renderer)
}

func (ds *Display) access(address uint16) {
	switch address {
	case switchGraphics:
		ds.text = false
	case switchText:
		ds.text = true
	case switchFull:
		ds.mixed = false
	case switchMixed:
		ds.mixed = true
	case switchPage1:
		ds.page2 = false
	case switchPage2:
		ds.page2 = true
	case switchLores:
		ds.hires = false
	case switchHires:
		ds.hires = true
	}
}

// Read a video soft switch. Touching the switch is what matters; the
// returned value is the floating bus.
func (ds *Display) Read(address uint16) uint8 {
	ds.access(address)
	return memory.FloatingBus
}

// Write a video soft switch.
func (ds *Display) Write(address uint16, data uint8) {
	ds.access(address)
}

// textRowAddress returns the base address of a text row. The rows are
// interleaved in memory in three groups of eight.
func (ds *Display) textRowAddress(row int) uint16 {
	base := uint16(0x0400)
	if ds.page2 {
		base = 0x0800
	}
	return base + uint16(row%8)*0x80 + uint16(row/8)*0x28
}

// hiresRowAddress returns the base address of a hires scan line. The
// interleave has three levels: eight lines per text row, eight text rows
// per group, three groups.
func (ds *Display) hiresRowAddress(row int) uint16 {
	base := uint16(0x2000)
	if ds.page2 {
		base = 0x4000
	}
	return base + uint16(row%8)*0x400 + uint16((row%64)/8)*0x80 + uint16(row/64)*0x28
}

// Frame renders the current screen contents and hands the frame to the
// attached renderers. Called once per video frame by the machine loop.
func (ds *Display) Frame() {
	if ds.mem == nil {
		return
	}

	frame := &Frame{
		Graphics: !ds.text,
		Mixed:    ds.mixed,
	}

	for row := 0; row < TextRows; row++ {
		addr := ds.textRowAddress(row)
		for col := 0; col < TextColumns; col++ {
			frame.Text[row][col] = ds.mem.Peek(addr + uint16(col))
		}
	}

	if frame.Graphics && ds.hires {
		frame.Pixels = make([]uint8, PixelWidth*PixelHeight)
		for row := 0; row < PixelHeight; row++ {
			addr := ds.hiresRowAddress(row)
			for col := 0; col < TextColumns; col++ {
				v := ds.mem.Peek(addr + uint16(col))
				for bit := 0; bit < 7; bit++ {
					if v&(1<<bit) != 0 {
						frame.Pixels[row*PixelWidth+col*7+bit] = 1
					}
				}
			}
		}
	}

	for _, r := range ds.renderers {
		r.RenderFrame(frame)
	}
}
