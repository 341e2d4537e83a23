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

package sdlplay

import (
	"github.com/veandco/go-sdl2/sdl"
)

func setupService() {
	// MOUSEMOTION events fill up the event queue pretty quickly. the
	// machine has no mouse so they are of no use at all
	sdl.EventState(sdl.MOUSEMOTION, sdl.IGNORE)

	// printable keys arrive as text input events, which hands the shift
	// key handling to SDL
	sdl.StartTextInput()
}

// Service implements the gui.GUI interface. Called between instruction
// bursts by the machine loop.
//
// MUST ONLY be called from the main thread.
func (scr *SdlPlay) Service() (bool, error) {
	// loop until there are no more events to retrieve, timing out straight
	// away if there is nothing
	for {
		ev := sdl.WaitEventTimeout(1)

		switch ev := ev.(type) {
		case *sdl.QuitEvent:
			return false, nil

		case *sdl.TextInputEvent:
			if ev.Text[0] != 0 && ev.Text[0] < 0x80 {
				scr.ap.Keyboard.KeyPress(asciiUpper(ev.Text[0]))
			}

		case *sdl.KeyboardEvent:
			if ev.Type != sdl.KEYDOWN || ev.Repeat != 0 {
				break
			}

			ctrl := sdl.GetModState()&sdl.KMOD_CTRL != 0

			switch ev.Keysym.Sym {
			case sdl.K_RETURN:
				scr.ap.Keyboard.KeyPress(0x0d)
			case sdl.K_ESCAPE:
				scr.ap.Keyboard.KeyPress(0x1b)
			case sdl.K_BACKSPACE, sdl.K_LEFT:
				// the left arrow is the machine's backspace
				scr.ap.Keyboard.KeyPress(0x08)
			case sdl.K_RIGHT:
				scr.ap.Keyboard.KeyPress(0x15)
			case sdl.K_F10:
				// the tape deck's play/stop button
				if scr.ap.Cassette.IsPlaying() {
					scr.ap.Cassette.Stop()
				} else {
					scr.ap.Cassette.Play()
				}
			case sdl.K_F12:
				// stands in for the reset key
				scr.ap.Reset()
			default:
				// control letters. printable keys arrive as text input
				if ctrl && ev.Keysym.Sym >= sdl.K_a && ev.Keysym.Sym <= sdl.K_z {
					scr.ap.Keyboard.KeyPress(uint8(ev.Keysym.Sym-sdl.K_a) + 1)
				}
			}

		case nil:
			// the wait has timed out so the event queue is empty
			return true, nil
		}
	}
}

// the machine's keyboard has no lower case.
func asciiUpper(c uint8) uint8 {
	if c >= 'a' && c <= 'z' {
		return c - 0x20
	}
	return c
}
