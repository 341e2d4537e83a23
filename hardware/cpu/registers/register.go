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

package registers

import "fmt"

// Register is an 8 bit register. It is used for the accumulator and the two
// index registers.
type Register struct {
	label string
	value uint8
}

// NewRegister is the preferred method of initialisation for the Register
// type.
func NewRegister(val uint8, label string) Register {
	return Register{
		label: label,
		value: val,
	}
}

// Label returns the name of the register.
func (r Register) Label() string {
	return r.label
}

func (r Register) String() string {
	return fmt.Sprintf("%#02x", r.value)
}

// Value returns the current value of the register.
func (r Register) Value() uint8 {
	return r.value
}

// Address returns the current value of the register as a uint16. Useful when
// the register value is being used in an address context.
func (r Register) Address() uint16 {
	return uint16(r.value)
}

// IsNegative checks the sign bit of the register.
func (r Register) IsNegative() bool {
	return r.value&0x80 == 0x80
}

// IsZero checks if register is zero.
func (r Register) IsZero() bool {
	return r.value == 0
}

// IsBitV returns the state of the second MSB. Used by the BIT instruction.
func (r Register) IsBitV() bool {
	return r.value&0x40 == 0x40
}

// Load value into register.
func (r *Register) Load(val uint8) {
	r.value = val
}

// Add value to register. Returns carry and overflow states.
func (r *Register) Add(val uint8, carry bool) (rcarry bool, overflow bool) {
	// note value of register before we change it
	v := r.value

	r.value += val
	if carry {
		r.value++
	}

	// overflow is set when the sign of both operands matches and differs
	// from the sign of the result. equivalent to carry-out of bit 6 XOR
	// carry-out of bit 7
	overflow = ((v ^ r.value) & (val ^ r.value) & 0x80) != 0

	// carry detection
	if v == r.value {
		rcarry = carry
	} else {
		rcarry = r.value < v
	}

	return rcarry, overflow
}

// Subtract value from register. Returns carry and overflow states.
//
// Note that the carry flag is the opposite of what you might expect when
// subtracting on the 6502 (it is a "not borrow" flag).
func (r *Register) Subtract(val uint8, carry bool) (bool, bool) {
	return r.Add(^val, carry)
}

// AddDecimal adds value to register with BCD interpretation of both
// operands. Returns all four arithmetic flags: unlike binary addition the
// zero and sign flags are not derivable from the register value alone -- on
// the NMOS 6502 the zero flag reflects the binary sum and the sign and
// overflow flags reflect the intermediate result before the high nibble is
// corrected.
func (r *Register) AddDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	var c uint16
	if carry {
		c = 1
	}

	a := uint16(r.value)
	v := uint16(val)

	bin := a + v + c
	zero = bin&0xff == 0

	lo := (a & 0x0f) + (v & 0x0f) + c
	hi := (a >> 4) + (v >> 4)
	if lo > 0x09 {
		lo += 0x06
	}
	if lo > 0x0f {
		hi++
	}

	t := (hi << 4) | (lo & 0x0f)
	sign = t&0x80 == 0x80
	overflow = (a^t)&(v^t)&0x80 != 0

	if hi > 0x09 {
		hi += 0x06
	}
	rcarry = hi > 0x0f

	r.value = uint8((hi << 4) | (lo & 0x0f))

	return rcarry, zero, overflow, sign
}

// SubtractDecimal subtracts value from register with BCD interpretation of
// both operands. Returns all four arithmetic flags; on the NMOS 6502 the
// flags of a decimal subtraction are those of the equivalent binary
// subtraction.
func (r *Register) SubtractDecimal(val uint8, carry bool) (rcarry, zero, overflow, sign bool) {
	var borrow int16
	if !carry {
		borrow = 1
	}

	a := int16(r.value)
	v := int16(val)

	bin := a - v - borrow
	rcarry = bin&0x100 == 0
	zero = bin&0xff == 0
	sign = bin&0x80 == 0x80
	overflow = (a^v)&(a^bin)&0x80 != 0

	lo := (a & 0x0f) - (v & 0x0f) - borrow
	hi := (a >> 4) - (v >> 4)
	if lo&0x10 != 0 {
		lo -= 0x06
		hi--
	}
	if hi&0x10 != 0 {
		hi -= 0x06
	}

	r.value = uint8((hi&0x0f)<<4) | uint8(lo&0x0f)

	return rcarry, zero, overflow, sign
}

// AND value with register.
func (r *Register) AND(val uint8) {
	r.value &= val
}

// EOR (exclusive or) value with register.
func (r *Register) EOR(val uint8) {
	r.value ^= val
}

// ORA (non-exclusive or) value with register.
func (r *Register) ORA(val uint8) {
	r.value |= val
}

// ASL (arithmetic shift left) shifts register one bit to the left. Returns
// the most significant bit as it was before the shift. If we think of the
// ASL operation as a multiply by two then the return value is the carry bit.
func (r *Register) ASL() bool {
	carry := r.IsNegative()
	r.value <<= 1
	return carry
}

// LSR (logical shift right) shifts register one bit to the right. Returns
// the least significant bit as it was before the shift.
func (r *Register) LSR() bool {
	carry := r.value&1 == 1
	r.value >>= 1
	return carry
}

// ROL rotates register 1 bit to the left. Returns new carry status.
func (r *Register) ROL(carry bool) bool {
	rcarry := r.IsNegative()
	r.value <<= 1
	if carry {
		r.value |= 1
	}
	return rcarry
}

// ROR rotates register 1 bit to the right. Returns new carry status.
func (r *Register) ROR(carry bool) bool {
	rcarry := r.value&1 == 1
	r.value >>= 1
	if carry {
		r.value |= 0x80
	}
	return rcarry
}
