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

// Handler is a peripheral presence in the soft switch page. A handler never
// returns an error; a device with nothing to say returns the floating bus
// value.
type Handler interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// IOWindow dispatches accesses of the soft switch page to the peripheral
// handlers registered with it.
type IOWindow struct {
	handlers [256]Handler
}

// NewIOWindow is the preferred method of initialisation for the IOWindow
// type.
func NewIOWindow() *IOWindow {
	return &IOWindow{}
}

// Register a handler for an inclusive range of soft switch addresses. The
// range must lie inside the soft switch page and must not overlap a
// previous registration.
func (io *IOWindow) Register(start uint16, end uint16, handler Handler) error {
	if start < addresses.IOBase || end > addresses.IOTop || start > end {
		return curated.Errorf("iowindow: bad handler range (%#04x to %#04x)", start, end)
	}

	for a := start; a <= end; a++ {
		if io.handlers[a&0x00ff] != nil {
			return curated.Errorf("iowindow: handler already registered (%#04x)", a)
		}
	}
	for a := start; a <= end; a++ {
		io.handlers[a&0x00ff] = handler
	}

	return nil
}

// Read the soft switch address. Addresses with no handler float.
func (io *IOWindow) Read(address uint16) uint8 {
	h := io.handlers[address&0x00ff]
	if h == nil {
		return FloatingBus
	}
	return h.Read(address)
}

// Write the soft switch address. Addresses with no handler drop the write.
func (io *IOWindow) Write(address uint16, data uint8) {
	h := io.handlers[address&0x00ff]
	if h == nil {
		return
	}
	h.Write(address, data)
}
