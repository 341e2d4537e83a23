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

package instructions

// the 65C02 additions to the NMOS instruction set.
//
// note that the 0x6c entry replaces the NMOS JMP indirect. the CMOS part
// fixes the page boundary bug and takes an extra cycle doing it.
var tableCMOS = []Definition{
	// unconditional branch
	{0x80, "BRA", 2, 2, Relative, true, Flow},

	// index register stack operations
	{0xda, "PHX", 1, 3, Implied, false, Read},
	{0x5a, "PHY", 1, 3, Implied, false, Read},
	{0xfa, "PLX", 1, 4, Implied, false, Read},
	{0x7a, "PLY", 1, 4, Implied, false, Read},

	// STZ
	{0x64, "STZ", 2, 3, ZeroPage, false, Write},
	{0x74, "STZ", 2, 4, ZeroPageIndexedX, false, Write},
	{0x9c, "STZ", 3, 4, Absolute, false, Write},
	{0x9e, "STZ", 3, 5, AbsoluteIndexedX, false, Write},

	// bit testing and setting
	{0x14, "TRB", 2, 5, ZeroPage, false, RMW},
	{0x1c, "TRB", 3, 6, Absolute, false, RMW},
	{0x04, "TSB", 2, 5, ZeroPage, false, RMW},
	{0x0c, "TSB", 3, 6, Absolute, false, RMW},

	// accumulator increment/decrement
	{0x1a, "INC", 1, 2, Implied, false, RMW},
	{0x3a, "DEC", 1, 2, Implied, false, RMW},

	// zero page indirect addressing for the group one instructions
	{0x72, "ADC", 2, 5, ZeroPageIndirect, false, Read},
	{0x32, "AND", 2, 5, ZeroPageIndirect, false, Read},
	{0xd2, "CMP", 2, 5, ZeroPageIndirect, false, Read},
	{0x52, "EOR", 2, 5, ZeroPageIndirect, false, Read},
	{0xb2, "LDA", 2, 5, ZeroPageIndirect, false, Read},
	{0x12, "ORA", 2, 5, ZeroPageIndirect, false, Read},
	{0xf2, "SBC", 2, 5, ZeroPageIndirect, false, Read},
	{0x92, "STA", 2, 5, ZeroPageIndirect, false, Write},

	// additional BIT addressing modes
	{0x89, "BIT", 2, 2, Immediate, false, Read},
	{0x34, "BIT", 2, 4, ZeroPageIndexedX, false, Read},
	{0x3c, "BIT", 3, 4, AbsoluteIndexedX, true, Read},

	// JMP fixes and additions
	{0x6c, "JMP", 3, 6, Indirect, false, Flow},
	{0x7c, "JMP", 3, 6, AbsoluteIndexedIndirect, false, Flow},
}

func definitionsCMOS() []*Definition {
	table := definitionsNMOS()
	for i := range tableCMOS {
		table[tableCMOS[i].OpCode] = &tableCMOS[i]
	}

	// every remaining opcode is a defined NOP on the CMOS part. one byte and
	// two cycles is not accurate for all of them but is close enough for the
	// software that relies on them, which is almost none.
	for op := 0; op < 256; op++ {
		if table[op] == nil {
			table[op] = &Definition{OpCode: uint8(op), Mnemonic: "NOP", Bytes: 1, Cycles: 2, AddressingMode: Implied, Effect: Read}
		}
	}

	return table
}
