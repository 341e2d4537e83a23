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

package modalflag_test

import (
	"os"
	"testing"

	"github.com/gopherapple/gopherapple/modalflag"
	"github.com/gopherapple/gopherapple/test"
)

func TestNoModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{})

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "")
	test.Equate(t, len(md.RemainingArgs()), 0)
}

func TestSubModes(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"term", "image.dsk"})
	md.NewMode()
	md.AddSubModes("RUN", "TERM", "PERFORMANCE")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.Mode(), "TERM")

	md.NewMode()
	p, err = md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, md.GetArg(0), "image.dsk")
}

func TestDefaultSubMode(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"image.dsk"})
	md.NewMode()
	md.AddSubModes("RUN", "TERM")

	_, err := md.Parse()
	test.ExpectSuccess(t, err)

	// no sub-mode specified so the default applies and the argument remains
	test.Equate(t, md.Mode(), "RUN")
	test.Equate(t, md.GetArg(0), "image.dsk")
}

func TestFlags(t *testing.T) {
	md := modalflag.Modes{Output: os.Stdout}
	md.NewArgs([]string{"-log", "image.dsk"})
	md.NewMode()
	log := md.AddBool("log", false, "echo log to stdout")

	p, err := md.Parse()
	test.ExpectSuccess(t, err)
	test.Equate(t, p == modalflag.ParseContinue, true)
	test.Equate(t, *log, true)
	test.Equate(t, md.GetArg(0), "image.dsk")
}
