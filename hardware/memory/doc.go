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

// Package memory implements the 64K address space seen by the CPU. The
// space is divided into 256 pages of 256 bytes. Each page carries separate
// read and write backing so that the same address range can read from ROM
// while writing to RAM underneath it, which is how the language card works.
//
// Page $c0 is special. Reads and writes there are dispatched to peripheral
// handlers registered with the IOWindow. Addresses with no handler behave
// like the real unterminated bus: reads return a floating value and writes
// disappear.
package memory
