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

package cpu

import (
	"fmt"

	"github.com/gopherapple/gopherapple/curated"
	"github.com/gopherapple/gopherapple/hardware/cpu/instructions"
	"github.com/gopherapple/gopherapple/hardware/cpu/registers"
	"github.com/gopherapple/gopherapple/hardware/memory/addresses"
	"github.com/gopherapple/gopherapple/logger"
)

// sentinel error returned by ExecuteInstruction() when the CPU is halted.
const Halted = "cpu: execution attempted while halted (%v)"

// Bus is the memory seen by the CPU. Implementations never return errors;
// addresses that do not map to anything return whatever the open bus would.
type Bus interface {
	Read(address uint16) uint8
	Write(address uint16, data uint8)
}

// HaltCondition records why the CPU has stopped executing.
type HaltCondition int

// List of halt conditions. NotHalted is the zero value.
const (
	NotHalted HaltCondition = iota
	HaltBreak
	HaltBadOpcode
)

func (h HaltCondition) String() string {
	switch h {
	case NotHalted:
		return "running"
	case HaltBreak:
		return "break"
	case HaltBadOpcode:
		return "bad opcode"
	}
	return "unknown halt condition"
}

// BadOpcodePolicy decides what happens when an opcode does not decode. Only
// meaningful for the NMOS variant; every opcode decodes on the CMOS part.
type BadOpcodePolicy int

// List of bad opcode policies.
const (
	BadOpcodeHalt BadOpcodePolicy = iota
	BadOpcodeContinue
)

// CPU implements the 6502 found in the Apple II. Register logic is
// implemented by the Register type in the registers sub-package.
type CPU struct {
	PC     registers.ProgramCounter
	A      registers.Register
	X      registers.Register
	Y      registers.Register
	SP     registers.StackPointer
	Status registers.StatusRegister

	mem          Bus
	variant      instructions.Variant
	instructions []*instructions.Definition

	// total cycles consumed since the last Reset()
	Cycles uint64

	// non-zero when the CPU has stopped. cleared by Reset()
	Halt HaltCondition

	BadOpcodePolicy BadOpcodePolicy
}

// NewCPU is the preferred method of initialisation for the CPU structure.
func NewCPU(variant instructions.Variant, mem Bus) (*CPU, error) {
	defns, err := instructions.GetDefinitions(variant)
	if err != nil {
		return nil, curated.Errorf("cpu: %v", err)
	}

	return &CPU{
		mem:          mem,
		variant:      variant,
		instructions: defns,
		PC:           registers.NewProgramCounter(0),
		A:            registers.NewRegister(0, "A"),
		X:            registers.NewRegister(0, "X"),
		Y:            registers.NewRegister(0, "Y"),
		SP:           registers.NewStackPointer(0),
		Status:       registers.NewStatusRegister(),
	}, nil
}

// Plumb a new Bus into the CPU.
func (mc *CPU) Plumb(mem Bus) {
	mc.mem = mem
}

func (mc *CPU) String() string {
	return fmt.Sprintf("%s=%s %s=%s %s=%s %s=%s %s=%s %s=%s",
		mc.PC.Label(), mc.PC, mc.A.Label(), mc.A,
		mc.X.Label(), mc.X, mc.Y.Label(), mc.Y,
		mc.SP.Label(), mc.SP, mc.Status.Label(), mc.Status)
}

// Variant returns the 6502 variant the CPU was created with.
func (mc *CPU) Variant() instructions.Variant {
	return mc.variant
}

// IsHalted returns true if the CPU has stopped executing. The Halt field
// says why.
func (mc *CPU) IsHalted() bool {
	return mc.Halt != NotHalted
}

// Reset the CPU. Registers are cleared, the stack pointer is put at the top
// of page one and the PC is loaded from the reset vector.
func (mc *CPU) Reset() {
	mc.A.Load(0)
	mc.X.Load(0)
	mc.Y.Load(0)
	mc.SP.Load(0xfd)
	mc.Status.Reset()
	mc.Status.InterruptDisable = true
	mc.Status.Zero = true
	mc.Cycles = 0
	mc.Halt = NotHalted
	mc.PC.Load(mc.read16(addresses.Reset))
}

func (mc *CPU) read16(address uint16) uint16 {
	lo := mc.mem.Read(address)
	hi := mc.mem.Read(address + 1)
	return (uint16(hi) << 8) | uint16(lo)
}

// 16 bit read that never leaves the zero page. the pointer high byte for
// the indirect addressing modes wraps at 0xff.
func (mc *CPU) read16ZeroPage(address uint8) uint16 {
	lo := mc.mem.Read(uint16(address))
	hi := mc.mem.Read(uint16(address + 1))
	return (uint16(hi) << 8) | uint16(lo)
}

func (mc *CPU) read8PC() uint8 {
	v := mc.mem.Read(mc.PC.Address())
	mc.PC.Add(1)
	return v
}

func (mc *CPU) read16PC() uint16 {
	lo := mc.read8PC()
	hi := mc.read8PC()
	return (uint16(hi) << 8) | uint16(lo)
}

func (mc *CPU) push(data uint8) {
	mc.mem.Write(mc.SP.Address(), data)
	mc.SP.Load(mc.SP.Value() - 1)
}

func (mc *CPU) pop() uint8 {
	mc.SP.Load(mc.SP.Value() + 1)
	return mc.mem.Read(mc.SP.Address())
}

func (mc *CPU) setNZ(value uint8) {
	mc.Status.Sign = value&0x80 == 0x80
	mc.Status.Zero = value == 0
}

// compare a register value with a memory value. flags are those of the
// subtraction but the register is left alone.
func (mc *CPU) compare(regValue uint8, value uint8) {
	scratch := registers.NewRegister(regValue, "cmp")
	carry, _ := scratch.Subtract(value, true)
	mc.Status.Carry = carry
	mc.setNZ(scratch.Value())
}

// perform the branch if flag is true. returns penalty cycles.
func (mc *CPU) branch(flag bool, offset uint8) int {
	if !flag {
		return 0
	}

	penalty := 1

	target := mc.PC.Address() + uint16(int16(int8(offset)))
	if target&0xff00 != mc.PC.Address()&0xff00 {
		penalty++
	}
	mc.PC.Load(target)

	return penalty
}

// ExecuteInstruction executes one complete instruction and adds its cost to
// the cycle counter. An error is returned if the CPU is halted; a BRK or a
// bad opcode met during the call is not an error, it latches the halt
// condition for the caller to inspect.
func (mc *CPU) ExecuteInstruction() error {
	if mc.IsHalted() {
		return curated.Errorf(Halted, mc.Halt)
	}

	opcode := mc.mem.Read(mc.PC.Address())
	defn := mc.instructions[opcode]

	if defn == nil {
		logger.Log("cpu", fmt.Sprintf("bad opcode %#02x at %s", opcode, mc.PC))
		if mc.BadOpcodePolicy == BadOpcodeHalt {
			mc.Halt = HaltBadOpcode
			return nil
		}

		// treat the undecodable byte as a one byte NOP and move on
		mc.PC.Add(1)
		mc.Cycles += 2
		return nil
	}

	mc.PC.Add(1)

	cycles := defn.Cycles

	// effective address resolution. value is only fetched for the
	// addressing/effect combinations that consume one.
	var address uint16
	var value uint8
	var pageCross bool

	switch defn.AddressingMode {
	case instructions.Implied:
		// nothing to resolve

	case instructions.Immediate, instructions.Relative:
		value = mc.read8PC()

	case instructions.Absolute:
		address = mc.read16PC()

	case instructions.ZeroPage:
		address = uint16(mc.read8PC())

	case instructions.Indirect:
		ptr := mc.read16PC()
		if mc.variant == instructions.NMOS && ptr&0x00ff == 0x00ff {
			// the infamous page boundary bug. the high byte of the target
			// is fetched from the start of the pointer's page
			lo := mc.mem.Read(ptr)
			hi := mc.mem.Read(ptr & 0xff00)
			address = (uint16(hi) << 8) | uint16(lo)
		} else {
			address = mc.read16(ptr)
		}

	case instructions.IndexedIndirect:
		zp := mc.read8PC() + mc.X.Value()
		address = mc.read16ZeroPage(zp)

	case instructions.IndirectIndexed:
		base := mc.read16ZeroPage(mc.read8PC())
		address = base + mc.Y.Address()
		pageCross = address&0xff00 != base&0xff00

	case instructions.AbsoluteIndexedX:
		base := mc.read16PC()
		address = base + mc.X.Address()
		pageCross = address&0xff00 != base&0xff00

	case instructions.AbsoluteIndexedY:
		base := mc.read16PC()
		address = base + mc.Y.Address()
		pageCross = address&0xff00 != base&0xff00

	case instructions.ZeroPageIndexedX:
		address = uint16(mc.read8PC() + mc.X.Value())

	case instructions.ZeroPageIndexedY:
		address = uint16(mc.read8PC() + mc.Y.Value())

	case instructions.ZeroPageIndirect:
		address = mc.read16ZeroPage(mc.read8PC())

	case instructions.AbsoluteIndexedIndirect:
		address = mc.read16(mc.read16PC() + mc.X.Address())
	}

	if pageCross && defn.PageSensitive {
		cycles++
	}

	// fetch the value for instructions that read memory
	switch defn.Effect {
	case instructions.Read:
		if defn.AddressingMode != instructions.Implied && defn.AddressingMode != instructions.Immediate {
			value = mc.mem.Read(address)
		}
	case instructions.RMW:
		if defn.AddressingMode != instructions.Implied {
			value = mc.mem.Read(address)
		}
	}

	switch defn.Mnemonic {
	case "NOP":
		// does nothing

	case "LDA":
		mc.A.Load(value)
		mc.setNZ(mc.A.Value())
	case "LDX":
		mc.X.Load(value)
		mc.setNZ(mc.X.Value())
	case "LDY":
		mc.Y.Load(value)
		mc.setNZ(mc.Y.Value())

	case "STA":
		mc.mem.Write(address, mc.A.Value())
	case "STX":
		mc.mem.Write(address, mc.X.Value())
	case "STY":
		mc.mem.Write(address, mc.Y.Value())
	case "STZ":
		mc.mem.Write(address, 0)

	case "ADC":
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.AddDecimal(value, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Zero = zero
			mc.Status.Overflow = overflow
			mc.Status.Sign = sign
		} else {
			carry, overflow := mc.A.Add(value, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}
	case "SBC":
		if mc.Status.DecimalMode {
			carry, zero, overflow, sign := mc.A.SubtractDecimal(value, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Zero = zero
			mc.Status.Overflow = overflow
			mc.Status.Sign = sign
		} else {
			carry, overflow := mc.A.Subtract(value, mc.Status.Carry)
			mc.Status.Carry = carry
			mc.Status.Overflow = overflow
			mc.setNZ(mc.A.Value())
		}

	case "CMP":
		mc.compare(mc.A.Value(), value)
	case "CPX":
		mc.compare(mc.X.Value(), value)
	case "CPY":
		mc.compare(mc.Y.Value(), value)

	case "AND":
		mc.A.AND(value)
		mc.setNZ(mc.A.Value())
	case "EOR":
		mc.A.EOR(value)
		mc.setNZ(mc.A.Value())
	case "ORA":
		mc.A.ORA(value)
		mc.setNZ(mc.A.Value())

	case "BIT":
		mc.Status.Zero = mc.A.Value()&value == 0
		if defn.AddressingMode != instructions.Immediate {
			// the immediate form on the CMOS part only affects the zero flag
			mc.Status.Sign = value&0x80 == 0x80
			mc.Status.Overflow = value&0x40 == 0x40
		}

	case "ASL":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A.ASL()
			mc.setNZ(mc.A.Value())
		} else {
			scratch := registers.NewRegister(value, "rmw")
			mc.Status.Carry = scratch.ASL()
			mc.mem.Write(address, scratch.Value())
			mc.setNZ(scratch.Value())
		}
	case "LSR":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A.LSR()
			mc.setNZ(mc.A.Value())
		} else {
			scratch := registers.NewRegister(value, "rmw")
			mc.Status.Carry = scratch.LSR()
			mc.mem.Write(address, scratch.Value())
			mc.setNZ(scratch.Value())
		}
	case "ROL":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A.ROL(mc.Status.Carry)
			mc.setNZ(mc.A.Value())
		} else {
			scratch := registers.NewRegister(value, "rmw")
			mc.Status.Carry = scratch.ROL(mc.Status.Carry)
			mc.mem.Write(address, scratch.Value())
			mc.setNZ(scratch.Value())
		}
	case "ROR":
		if defn.AddressingMode == instructions.Implied {
			mc.Status.Carry = mc.A.ROR(mc.Status.Carry)
			mc.setNZ(mc.A.Value())
		} else {
			scratch := registers.NewRegister(value, "rmw")
			mc.Status.Carry = scratch.ROR(mc.Status.Carry)
			mc.mem.Write(address, scratch.Value())
			mc.setNZ(scratch.Value())
		}

	case "INC":
		if defn.AddressingMode == instructions.Implied {
			mc.A.Load(mc.A.Value() + 1)
			mc.setNZ(mc.A.Value())
		} else {
			value++
			mc.mem.Write(address, value)
			mc.setNZ(value)
		}
	case "DEC":
		if defn.AddressingMode == instructions.Implied {
			mc.A.Load(mc.A.Value() - 1)
			mc.setNZ(mc.A.Value())
		} else {
			value--
			mc.mem.Write(address, value)
			mc.setNZ(value)
		}

	case "TSB":
		mc.Status.Zero = mc.A.Value()&value == 0
		mc.mem.Write(address, value|mc.A.Value())
	case "TRB":
		mc.Status.Zero = mc.A.Value()&value == 0
		mc.mem.Write(address, value&^mc.A.Value())

	case "INX":
		mc.X.Load(mc.X.Value() + 1)
		mc.setNZ(mc.X.Value())
	case "INY":
		mc.Y.Load(mc.Y.Value() + 1)
		mc.setNZ(mc.Y.Value())
	case "DEX":
		mc.X.Load(mc.X.Value() - 1)
		mc.setNZ(mc.X.Value())
	case "DEY":
		mc.Y.Load(mc.Y.Value() - 1)
		mc.setNZ(mc.Y.Value())

	case "TAX":
		mc.X.Load(mc.A.Value())
		mc.setNZ(mc.X.Value())
	case "TAY":
		mc.Y.Load(mc.A.Value())
		mc.setNZ(mc.Y.Value())
	case "TXA":
		mc.A.Load(mc.X.Value())
		mc.setNZ(mc.A.Value())
	case "TYA":
		mc.A.Load(mc.Y.Value())
		mc.setNZ(mc.A.Value())
	case "TSX":
		mc.X.Load(mc.SP.Value())
		mc.setNZ(mc.X.Value())
	case "TXS":
		// the only transfer that does not affect flags
		mc.SP.Load(mc.X.Value())

	case "CLC":
		mc.Status.Carry = false
	case "SEC":
		mc.Status.Carry = true
	case "CLD":
		mc.Status.DecimalMode = false
	case "SED":
		mc.Status.DecimalMode = true
	case "CLI":
		mc.Status.InterruptDisable = false
	case "SEI":
		mc.Status.InterruptDisable = true
	case "CLV":
		mc.Status.Overflow = false

	case "PHA":
		mc.push(mc.A.Value())
	case "PHX":
		mc.push(mc.X.Value())
	case "PHY":
		mc.push(mc.Y.Value())
	case "PHP":
		// the break bit is always set in the pushed value
		mc.push(mc.Status.Value() | 0x10)
	case "PLA":
		mc.A.Load(mc.pop())
		mc.setNZ(mc.A.Value())
	case "PLX":
		mc.X.Load(mc.pop())
		mc.setNZ(mc.X.Value())
	case "PLY":
		mc.Y.Load(mc.pop())
		mc.setNZ(mc.Y.Value())
	case "PLP":
		mc.Status.FromValue(mc.pop())

	case "JMP":
		mc.PC.Load(address)

	case "JSR":
		// the address pushed is one less than the address of the next
		// instruction. RTS compensates
		ret := mc.PC.Address() - 1
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret))
		mc.PC.Load(address)
	case "RTS":
		lo := mc.pop()
		hi := mc.pop()
		mc.PC.Load((uint16(hi)<<8 | uint16(lo)) + 1)
	case "RTI":
		mc.Status.FromValue(mc.pop())
		lo := mc.pop()
		hi := mc.pop()
		mc.PC.Load(uint16(hi)<<8 | uint16(lo))

	case "BRK":
		// push the address of the byte after the signature byte and vector
		// through the break vector, as the silicon does. the halt condition
		// is then latched for the machine loop
		ret := mc.PC.Address() + 1
		mc.push(uint8(ret >> 8))
		mc.push(uint8(ret))
		mc.push(mc.Status.Value() | 0x10)
		mc.Status.InterruptDisable = true
		mc.PC.Load(mc.read16(addresses.Break))
		mc.Halt = HaltBreak

	case "BCC":
		cycles += mc.branch(!mc.Status.Carry, value)
	case "BCS":
		cycles += mc.branch(mc.Status.Carry, value)
	case "BEQ":
		cycles += mc.branch(mc.Status.Zero, value)
	case "BNE":
		cycles += mc.branch(!mc.Status.Zero, value)
	case "BMI":
		cycles += mc.branch(mc.Status.Sign, value)
	case "BPL":
		cycles += mc.branch(!mc.Status.Sign, value)
	case "BVS":
		cycles += mc.branch(mc.Status.Overflow, value)
	case "BVC":
		cycles += mc.branch(!mc.Status.Overflow, value)
	case "BRA":
		cycles += mc.branch(true, value)

	default:
		return curated.Errorf("cpu: unimplemented mnemonic (%s)", defn.Mnemonic)
	}

	mc.Cycles += uint64(cycles)

	return nil
}
