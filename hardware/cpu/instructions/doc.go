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

// Package instructions defines the instruction sets of the 6502 family.
// The GetDefinitions() function returns a single table for the requested
// variant, with entries indexed by opcode. Undecoded opcodes are nil.
//
// The NMOS table contains the 151 documented instructions of the original
// 6502. The CMOS table extends it with the 65C02 additions (new mnemonics,
// the zero page indirect addressing mode, the corrected JMP indirect) and
// fills the remaining opcodes with explicit NOPs, which is how the CMOS
// part treats them.
package instructions
