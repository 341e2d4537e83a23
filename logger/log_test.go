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

package logger_test

import (
	"strings"
	"testing"

	"github.com/gopherapple/gopherapple/logger"
	"github.com/gopherapple/gopherapple/test"
)

func TestLogger(t *testing.T) {
	logger.Clear()

	s := &strings.Builder{}

	logger.Log("test", "this is a test")
	logger.Write(s)
	test.Equate(t, s.String(), "test: this is a test\n")

	// add the same entry a second time. the entry should be collapsed into
	// the first with a repeat count
	logger.Log("test", "this is a test")
	s.Reset()
	logger.Write(s)
	test.Equate(t, s.String(), "test: this is a test (repeat x2)\n")
}

func TestTail(t *testing.T) {
	logger.Clear()

	logger.Log("test", "a")
	logger.Log("test", "b")
	logger.Log("test", "c")

	s := &strings.Builder{}
	logger.Tail(s, 2)
	test.Equate(t, s.String(), "test: b\ntest: c\n")
}
