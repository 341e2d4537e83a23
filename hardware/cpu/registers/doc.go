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

// Package registers implements the registers of the 6502 family: the 8 bit
// general purpose registers (A, X, Y), the 16 bit program counter, the stack
// pointer (8 bits of a fixed page one address) and the status register.
//
// Arithmetic on the Register type returns carry and overflow information in
// the way the 6502 ALU produces it; in particular the signed-overflow rule
// (carry out of bit 6 XOR carry out of bit 7) and the inverted-borrow
// convention for subtraction.
package registers
