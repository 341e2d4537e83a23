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

// Package console implements the gui.GUI interface on a POSIX terminal.
// The terminal is put into cbreak mode so keystrokes reach the keyboard
// latch without line buffering, and the machine's text page is drawn with
// ANSI sequences. Graphics pages are not rendered; the text page is always
// shown.
//
// Ctrl+] quits. The left arrow key is the machine's backspace and F10 is
// the tape deck's play/stop button.
package console

import (
	"os"

	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware"
	"github.com/gopherapple/gopherapple/hardware/display"
)

// the keypress that ends the session. ctrl+]
const quitKey = 0x1d

// Console implements the gui.GUI interface.
type Console struct {
	ap *hardware.Apple2

	input  *os.File
	output *os.File

	canAttr    unix.Termios
	cbreakAttr unix.Termios

	quit bool

	// accumulates a whole frame before a single write. the terminal is the
	// slowest part of this mode by a distance
	draw []byte
}

// NewConsole is the preferred method of initialisation for the Console
// type. The terminal is switched to cbreak mode immediately.
func NewConsole(ap *hardware.Apple2) (*Console, error) {
	cn := &Console{
		ap:     ap,
		input:  os.Stdin,
		output: os.Stdout,
		draw:   make([]byte, 0, 4096),
	}

	if err := termios.Tcgetattr(cn.input.Fd(), &cn.canAttr); err != nil {
		return nil, curated.Errorf("console: %v", err)
	}
	cn.cbreakAttr = cn.canAttr
	termios.Cfmakecbreak(&cn.cbreakAttr)

	// a read of the keyboard must never block the machine loop
	cn.cbreakAttr.Cc[unix.VMIN] = 0
	cn.cbreakAttr.Cc[unix.VTIME] = 0

	if err := termios.Tcsetattr(cn.input.Fd(), termios.TCIFLUSH, &cn.cbreakAttr); err != nil {
		return nil, curated.Errorf("console: %v", err)
	}

	// clear screen and hide the cursor
	cn.output.WriteString("\x1b[2J\x1b[?25l")

	ap.Display.Attach(cn)

	return cn, nil
}

// RenderFrame implements the display.Renderer interface.
func (cn *Console) RenderFrame(frame *display.Frame) {
	cn.draw = cn.draw[:0]
	cn.draw = append(cn.draw, "\x1b[H"...)

	for row := 0; row < display.TextRows; row++ {
		for col := 0; col < display.TextColumns; col++ {
			cn.draw = append(cn.draw, screenChar(frame.Text[row][col]))
		}
		cn.draw = append(cn.draw, '\r', '\n')
	}

	cn.output.Write(cn.draw)
}

// screenChar converts a screen code to ASCII. The top two bits select
// inverse, flashing or normal video; the terminal shows them all the same.
func screenChar(c uint8) byte {
	c &= 0x3f
	if c < 0x20 {
		return c + 0x40
	}
	return c
}

// Service implements the gui.GUI interface.
func (cn *Console) Service() (bool, error) {
	if cn.quit {
		return false, nil
	}

	buf := make([]byte, 8)
	n, err := cn.input.Read(buf)
	if err != nil || n == 0 {
		return true, nil
	}

	return cn.dispatch(buf[:n]), nil
}

// dispatch the keystrokes in buf to the machine. returns false when the
// quit key has been pressed.
func (cn *Console) dispatch(buf []byte) bool {
	for i := 0; i < len(buf); i++ {
		c := buf[i]

		switch {
		case c == quitKey:
			return false

		case c == 0x1b && i+2 < len(buf) && buf[i+1] == '[':
			// arrow keys arrive as three byte escape sequences
			switch buf[i+2] {
			case 'D':
				cn.ap.Keyboard.KeyPress(0x08)
			case 'C':
				cn.ap.Keyboard.KeyPress(0x15)
			case '2':
				// F10 arrives as a five byte sequence. play or stop the tape
				if i+4 < len(buf) && buf[i+3] == '1' && buf[i+4] == '~' {
					if cn.ap.Cassette.IsPlaying() {
						cn.ap.Cassette.Stop()
					} else {
						cn.ap.Cassette.Play()
					}
					i += 2
				}
			}
			i += 2

		case c == 0x7f:
			// the terminal's delete is the machine's backspace
			cn.ap.Keyboard.KeyPress(0x08)

		case c == '\n':
			cn.ap.Keyboard.KeyPress(0x0d)

		case c < 0x80:
			cn.ap.Keyboard.KeyPress(asciiUpper(c))
		}
	}

	return true
}

// Quit makes the next Service() call return false. Used by the signal
// handler so an interrupt restores the terminal cleanly.
func (cn *Console) Quit() {
	cn.quit = true
}

// End implements the gui.GUI interface. The terminal is restored to the
// mode it was in before NewConsole().
func (cn *Console) End() error {
	cn.output.WriteString("\x1b[?25h\r\n")
	if err := termios.Tcsetattr(cn.input.Fd(), termios.TCIFLUSH, &cn.canAttr); err != nil {
		return curated.Errorf("console: %v", err)
	}
	return nil
}

// the machine's keyboard has no lower case.
func asciiUpper(c uint8) uint8 {
	if c >= 'a' && c <= 'z' {
		return c - 0x20
	}
	return c
}
