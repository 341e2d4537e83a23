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

// Package cpu emulates the 6502 family at instruction level. Each call to
// ExecuteInstruction() executes one complete instruction and accumulates the
// number of colour clock cycles the real processor would have spent on it,
// including the page crossing and branch penalties. Cycle accuracy within an
// instruction is not modelled; memory accesses happen in their natural order
// but not at their true cycle positions.
//
// The CPU stops executing when it meets a BRK instruction or, depending on
// policy, an opcode that does not decode. The halt condition is latched and
// readable so the machine loop can distinguish a deliberate stop from a
// crashed program.
package cpu
