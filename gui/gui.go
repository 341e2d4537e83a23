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

// Package gui defines the interface between the machine loop and a user
// interface surface (the SDL window, the raw terminal).
package gui

import (
	"github.com/gopherapple/gopherapple/hardware/display"
)

// GUI is a user interface surface. It receives video frames as a
// display.Renderer and is serviced once per housekeeping pass of the
// machine loop.
type GUI interface {
	display.Renderer

	// Service the user interface: pump input events into the machine and
	// present any pending frame. Returns false when the user has asked to
	// quit.
	//
	// MUST ONLY be called from the main thread.
	Service() (bool, error)

	// End releases the surface's resources.
	End() error
}
