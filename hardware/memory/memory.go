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

package memory

import (
	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
)

// FloatingBus is the value a read of an unconnected address returns.
const FloatingBus = uint8(0xee)

// PageType classifies what a page of the address space is backed by.
type PageType int

// List of page types.
const (
	RAM PageType = iota
	ROM
	IO
)

func (p PageType) String() string {
	switch p {
	case RAM:
		return "RAM"
	case ROM:
		return "ROM"
	case IO:
		return "IO"
	}
	return "unknown page type"
}

// the 0xc0 page is dispatched to the IOWindow.
const ioPage = uint8(addresses.IOBase >> 8)

type page struct {
	pageType PageType

	// read and write backing are independent. a nil read slice floats and a
	// nil write slice swallows writes
	read  []uint8
	write []uint8
}

// Memory is the 64K address space. It implements the bus interface expected
// by the CPU.
type Memory struct {
	pages [256]page

	// IO dispatches accesses to the soft switch page. peripherals register
	// their handlers here
	IO *IOWindow
}

// NewMemory is the preferred method of initialisation for the Memory type.
// The address space starts out as 48K of RAM up to the soft switch page,
// with everything above unmapped.
func NewMemory() *Memory {
	mem := &Memory{
		IO: NewIOWindow(),
	}

	ram := make([]uint8, 0xc000)
	for p := 0; p < int(ioPage); p++ {
		mem.pages[p].pageType = RAM
		mem.pages[p].read = ram[p*256 : (p+1)*256]
		mem.pages[p].write = mem.pages[p].read
	}

	mem.pages[ioPage].pageType = IO

	return mem
}

// MapROM maps data into the address space as read-only memory. The origin
// must be page aligned and the data a whole number of pages.
func (mem *Memory) MapROM(origin uint16, data []uint8) error {
	return mem.mapPages(origin, data, nil, ROM)
}

// MapRAM maps data into the address space as read/write memory. The origin
// must be page aligned and the data a whole number of pages.
func (mem *Memory) MapRAM(origin uint16, data []uint8) error {
	return mem.mapPages(origin, data, data, RAM)
}

func (mem *Memory) mapPages(origin uint16, read []uint8, write []uint8, pageType PageType) error {
	if origin&0x00ff != 0 {
		return curated.Errorf("memory: map origin not page aligned (%#04x)", origin)
	}
	if len(read)%256 != 0 || len(read) == 0 {
		return curated.Errorf("memory: map data not a whole number of pages (%d bytes)", len(read))
	}
	if int(origin)+len(read) > 0x10000 {
		return curated.Errorf("memory: map overflows the address space (%#04x + %d bytes)", origin, len(read))
	}

	start := int(origin >> 8)
	for i := 0; i < len(read)/256; i++ {
		p := start + i
		if uint8(p) == ioPage {
			return curated.Errorf("memory: cannot map over the soft switch page")
		}
		mem.pages[p].pageType = pageType
		mem.pages[p].read = read[i*256 : (i+1)*256]
		if write != nil {
			mem.pages[p].write = write[i*256 : (i+1)*256]
		} else {
			mem.pages[p].write = nil
		}
	}

	return nil
}

// SetPageRead redirects reads of a page to the supplied backing. A nil
// backing causes reads of the page to float. Used by bank switching
// hardware; the page type is left alone.
func (mem *Memory) SetPageRead(pageNum uint8, backing []uint8) {
	if pageNum == ioPage {
		return
	}
	mem.pages[pageNum].read = backing
}

// SetPageWrite redirects writes of a page to the supplied backing. A nil
// backing causes writes to the page to be dropped.
func (mem *Memory) SetPageWrite(pageNum uint8, backing []uint8) {
	if pageNum == ioPage {
		return
	}
	mem.pages[pageNum].write = backing
}

// PageType returns the classification of a page.
func (mem *Memory) PageType(pageNum uint8) PageType {
	return mem.pages[pageNum].pageType
}

// Read an address, dispatching to a peripheral if the address is in the
// soft switch page.
func (mem *Memory) Read(address uint16) uint8 {
	p := &mem.pages[address>>8]

	if p.pageType == IO {
		return mem.IO.Read(address)
	}
	if p.read == nil {
		return FloatingBus
	}

	return p.read[address&0x00ff]
}

// Write an address, dispatching to a peripheral if the address is in the
// soft switch page. Writes to addresses with no write backing are dropped.
func (mem *Memory) Write(address uint16, data uint8) {
	p := &mem.pages[address>>8]

	if p.pageType == IO {
		mem.IO.Write(address, data)
		return
	}
	if p.write == nil {
		return
	}

	p.write[address&0x00ff] = data
}

// Peek reads an address without disturbing any peripheral. Reads of the
// soft switch page and unmapped pages return the floating bus value.
func (mem *Memory) Peek(address uint16) uint8 {
	p := &mem.pages[address>>8]
	if p.pageType == IO || p.read == nil {
		return FloatingBus
	}
	return p.read[address&0x00ff]
}

// Poke writes an address regardless of write protection. Useful for
// loading programs into memory that the CPU sees as read-only. Pokes of
// the soft switch page and unmapped pages are dropped.
func (mem *Memory) Poke(address uint16, data uint8) {
	p := &mem.pages[address>>8]
	if p.pageType == IO || p.read == nil {
		return
	}
	p.read[address&0x00ff] = data
}
