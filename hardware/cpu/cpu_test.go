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

package cpu_test

import (
	"testing"

	"github.com/gopherapple/gopherapple/hardware/cpu"
	"github.com/gopherapple/gopherapple/hardware/cpu/instructions"
	"github.com/gopherapple/gopherapple/test"
)

type mockMem struct {
	internal []uint8
}

func newMockMem() *mockMem {
	mem := new(mockMem)
	mem.internal = make([]uint8, 0x10000)
	return mem
}

func (mem *mockMem) putInstructions(origin uint16, bytes ...uint8) uint16 {
	for i, b := range bytes {
		mem.Write(uint16(i)+origin, b)
	}
	return origin + uint16(len(bytes))
}

func (mem *mockMem) Clear() {
	for i := 0; i < len(mem.internal); i++ {
		mem.internal[i] = 0
	}
}

func (mem *mockMem) Read(address uint16) uint8 {
	return mem.internal[address]
}

func (mem *mockMem) Write(address uint16, data uint8) {
	mem.internal[address] = data
}

// setResetVector points the reset vector at origin and resets the CPU.
func setResetVector(mem *mockMem, origin uint16) {
	mem.Write(0xfffc, uint8(origin))
	mem.Write(0xfffd, uint8(origin>>8))
}

func step(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	if err := mc.ExecuteInstruction(); err != nil {
		t.Fatal(err)
	}
}

func run(t *testing.T, mc *cpu.CPU) {
	t.Helper()
	for !mc.IsHalted() {
		step(t, mc)
	}
}

func newTestCPU(t *testing.T, variant instructions.Variant, mem *mockMem) *cpu.CPU {
	t.Helper()
	mc, err := cpu.NewCPU(variant, mem)
	test.ExpectSuccess(t, err)
	return mc
}

func TestReset(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	test.Equate(t, mc.PC.Address(), 0x0200)
	test.Equate(t, mc.SP.Address(), 0x01fd)
	test.Equate(t, mc.Status.InterruptDisable, true)
	test.Equate(t, mc.IsHalted(), false)
	test.Equate(t, mc.Cycles, 0)
}

func TestLoadsAndStores(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// LDA #$80; STA $1234; LDX $1234; STX $12
	mem.putInstructions(0x0200, 0xa9, 0x80, 0x8d, 0x34, 0x12, 0xae, 0x34, 0x12, 0x86, 0x12)

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	step(t, mc) // LDA #$80
	test.Equate(t, mc.A.Value(), 0x80)
	test.Equate(t, mc.Status.Sign, true)
	test.Equate(t, mc.Status.Zero, false)
	test.Equate(t, mc.Cycles, 2)

	step(t, mc) // STA $1234
	test.Equate(t, mem.Read(0x1234), 0x80)
	test.Equate(t, mc.Cycles, 6)

	step(t, mc) // LDX $1234
	test.Equate(t, mc.X.Value(), 0x80)

	step(t, mc) // STX $12
	test.Equate(t, mem.Read(0x0012), 0x80)
}

func TestAddressingModes(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	mc := newTestCPU(t, instructions.NMOS, mem)

	// zero page indexed wraps within the zero page
	mem.Clear()
	setResetVector(mem, 0x0200)
	mem.putInstructions(0x0200, 0xa2, 0x10, 0xb5, 0xf8) // LDX #$10; LDA $f8,X
	mem.Write(0x0008, 0x42)
	mc.Reset()
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x42)

	// indexed indirect pointer wraps within the zero page
	mem.Clear()
	setResetVector(mem, 0x0200)
	mem.putInstructions(0x0200, 0xa2, 0x05, 0xa1, 0xfa) // LDX #$05; LDA ($fa,X)
	mem.Write(0x00ff, 0x00)
	mem.Write(0x0000, 0x13) // pointer high byte comes from $00, not $100
	mem.Write(0x1300, 0x99)
	mc.Reset()
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x99)

	// indirect indexed with page crossing penalty
	mem.Clear()
	setResetVector(mem, 0x0200)
	mem.putInstructions(0x0200, 0xa0, 0x80, 0xb1, 0x40) // LDY #$80; LDA ($40),Y
	mem.Write(0x0040, 0x90)
	mem.Write(0x0041, 0x12) // base $1290 + $80 crosses into $13xx
	mem.Write(0x1310, 0x77)
	mc.Reset()
	step(t, mc)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x77)
	test.Equate(t, mc.Cycles, 8) // 2 + 5 + 1 penalty
}

func TestJMPIndirectBug(t *testing.T) {
	mem := newMockMem()

	prepare := func() {
		mem.Clear()
		setResetVector(mem, 0x0200)
		mem.putInstructions(0x0200, 0x6c, 0xff, 0x12) // JMP ($12ff)
		mem.Write(0x12ff, 0x34)
		mem.Write(0x1300, 0x56) // correct high byte
		mem.Write(0x1200, 0x78) // buggy high byte
	}

	// the NMOS part fetches the high byte from the wrong address
	prepare()
	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x7834)
	test.Equate(t, mc.Cycles, 5)

	// the CMOS part behaves and takes an extra cycle doing it
	prepare()
	mc = newTestCPU(t, instructions.CMOS, mem)
	mc.Reset()
	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x5634)
	test.Equate(t, mc.Cycles, 6)
}

func TestBranches(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// SEC; BCC +2 (not taken); BCS +2 (taken); skipped: LDA #$01; LDA #$02
	mem.putInstructions(0x0200, 0x38, 0x90, 0x02, 0xb0, 0x02, 0xa9, 0x01, 0xa9, 0x02)

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	step(t, mc) // SEC
	step(t, mc) // BCC, not taken
	test.Equate(t, mc.PC.Address(), 0x0203)
	test.Equate(t, mc.Cycles, 4) // 2 + 2

	step(t, mc) // BCS, taken
	test.Equate(t, mc.PC.Address(), 0x0207)
	test.Equate(t, mc.Cycles, 7) // +3

	step(t, mc) // LDA #$02
	test.Equate(t, mc.A.Value(), 0x02)
}

func TestBranchPageCross(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// a taken branch within the page costs 3 cycles. a taken branch that
	// crosses a page boundary costs 4
	mem.putInstructions(0x0200, 0xd0, 0x10) // BNE +16 -> $0212
	mem.putInstructions(0x0212, 0xd0, 0xe0) // BNE -32 -> $01f4

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()
	mc.Status.Zero = false

	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x0212)
	test.Equate(t, mc.Cycles, 3)

	step(t, mc)
	test.Equate(t, mc.PC.Address(), 0x01f4)
	test.Equate(t, mc.Cycles, 7)
}

func TestSubroutines(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	mem.putInstructions(0x0200, 0x20, 0x00, 0x03, 0xa9, 0x55) // JSR $0300; LDA #$55
	mem.putInstructions(0x0300, 0xa2, 0x11, 0x60)             // LDX #$11; RTS

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	step(t, mc) // JSR
	test.Equate(t, mc.PC.Address(), 0x0300)
	test.Equate(t, mc.SP.Address(), 0x01fb)
	test.Equate(t, mc.Cycles, 6)

	step(t, mc) // LDX #$11
	step(t, mc) // RTS
	test.Equate(t, mc.PC.Address(), 0x0203)
	test.Equate(t, mc.SP.Address(), 0x01fd)

	step(t, mc) // LDA #$55
	test.Equate(t, mc.A.Value(), 0x55)
}

func TestBreak(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// break vector
	mem.Write(0xfffe, 0x00)
	mem.Write(0xffff, 0x80)

	mem.putInstructions(0x0200, 0x00) // BRK

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	step(t, mc)
	test.Equate(t, mc.IsHalted(), true)
	test.Equate(t, mc.Halt == cpu.HaltBreak, true)
	test.Equate(t, mc.Cycles, 7)

	// the CPU vectored through $fffe before halting
	test.Equate(t, mc.PC.Address(), 0x8000)

	// pushed return address is the byte after the signature byte
	test.Equate(t, mem.Read(0x01fd), 0x02)
	test.Equate(t, mem.Read(0x01fc), 0x02)

	// break bit is set in the pushed status
	test.Equate(t, mem.Read(0x01fb)&0x10, 0x10)

	// executing a halted CPU is an error
	err := mc.ExecuteInstruction()
	test.ExpectFailure(t, err)
}

func TestBadOpcodePolicy(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)
	mem.putInstructions(0x0200, 0x02, 0xa9, 0x77) // JAM; LDA #$77

	// default policy halts
	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()
	step(t, mc)
	test.Equate(t, mc.IsHalted(), true)
	test.Equate(t, mc.Halt == cpu.HaltBadOpcode, true)
	test.Equate(t, mc.PC.Address(), 0x0200)

	// the continue policy steps over the bad byte
	mc = newTestCPU(t, instructions.NMOS, mem)
	mc.BadOpcodePolicy = cpu.BadOpcodeContinue
	mc.Reset()
	step(t, mc)
	test.Equate(t, mc.IsHalted(), false)
	test.Equate(t, mc.PC.Address(), 0x0201)
	test.Equate(t, mc.Cycles, 2)
	step(t, mc)
	test.Equate(t, mc.A.Value(), 0x77)

	// the CMOS part treats the same byte as a NOP
	mc = newTestCPU(t, instructions.CMOS, mem)
	mc.Reset()
	step(t, mc)
	test.Equate(t, mc.IsHalted(), false)
	test.Equate(t, mc.PC.Address(), 0x0201)
}

func TestCMOSAdditions(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// STZ $40; LDA #$0f; TSB $41; TRB $41; BRA +2; LDA #$01; PHX
	mem.putInstructions(0x0200,
		0x64, 0x40, // STZ $40
		0xa9, 0x0f, // LDA #$0f
		0x04, 0x41, // TSB $41
		0x14, 0x41, // TRB $41
		0x80, 0x02, // BRA +2
		0xa9, 0x01, // skipped
		0xda, // PHX
	)
	mem.Write(0x0040, 0xff)
	mem.Write(0x0041, 0xf0)

	mc := newTestCPU(t, instructions.CMOS, mem)
	mc.Reset()

	step(t, mc) // STZ
	test.Equate(t, mem.Read(0x0040), 0x00)

	step(t, mc) // LDA #$0f

	step(t, mc) // TSB
	test.Equate(t, mem.Read(0x0041), 0xff)
	test.Equate(t, mc.Status.Zero, true) // $f0 & $0f == 0

	step(t, mc) // TRB
	test.Equate(t, mem.Read(0x0041), 0xf0)
	test.Equate(t, mc.Status.Zero, false) // $ff & $0f != 0

	step(t, mc) // BRA
	test.Equate(t, mc.PC.Address(), 0x020c)

	step(t, mc) // PHX
	test.Equate(t, mem.Read(0x01fd), 0x00)
}

func TestZeroPageIndirect(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	mem.putInstructions(0x0200, 0xb2, 0x40, 0x92, 0x42) // LDA ($40); STA ($42)
	mem.Write(0x0040, 0x00)
	mem.Write(0x0041, 0x30)
	mem.Write(0x0042, 0x00)
	mem.Write(0x0043, 0x31)
	mem.Write(0x3000, 0xab)

	mc := newTestCPU(t, instructions.CMOS, mem)
	mc.Reset()

	step(t, mc)
	test.Equate(t, mc.A.Value(), 0xab)
	test.Equate(t, mc.Cycles, 5)

	step(t, mc)
	test.Equate(t, mem.Read(0x3100), 0xab)
}

func TestDecimalMode(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// SED; CLC; LDA #$19; ADC #$01; SEC; SBC #$20; BRK
	mem.putInstructions(0x0200, 0xf8, 0x18, 0xa9, 0x19, 0x69, 0x01, 0x38, 0xe9, 0x20, 0x00)

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()

	step(t, mc) // SED
	step(t, mc) // CLC
	step(t, mc) // LDA #$19
	step(t, mc) // ADC #$01
	test.Equate(t, mc.A.Value(), 0x20)
	test.Equate(t, mc.Status.Carry, false)

	step(t, mc) // SEC
	step(t, mc) // SBC #$20
	test.Equate(t, mc.A.Value(), 0x00)
	test.Equate(t, mc.Status.Carry, true)
}

// a long program exercising one of every addressing mode and the arithmetic
// flag quadrants, with a known total cycle count. a change to any cycle
// accounting rule shows up here.
func TestCycleAccounting(t *testing.T) {
	mem := newMockMem()
	setResetVector(mem, 0x0200)

	// data for the addressing mode section
	mem.Write(0x00d0, 0x11)
	mem.Write(0x0040, 0x10)
	mem.Write(0x0041, 0x12)
	mem.Write(0x3412, 0x22)
	mem.Write(0x1299, 0x33)

	origin := mem.putInstructions(0x0200,
		0xa2, 0xd0, // LDX #$d0            2
		0xb5, 0x00, // LDA $00,X           4
		0xb5, 0x40, // LDA $40,X           4 (zero page wrap)
		0xad, 0x12, 0x34, // LDA $3412     4
		0xbd, 0x12, 0x34, // LDA $3412,X   4 no cross
		0xa0, 0x67, // LDY #$67            2
		0xbe, 0x12, 0x34, // LDX $3412,Y   4 no cross
		0xa2, 0x56, // LDX #$56            2
		0xbc, 0x12, 0x34, // LDY $3412,X   4 no cross
		0xa1, 0x40, // LDA ($40,X)         6
		0xa0, 0x89, // LDY #$89            2
		0xb1, 0x40, // LDA ($40),Y         5 no cross
		0xb6, 0x50, // LDX $50,Y           4
		0xb4, 0x50, // LDY $50,X           4
		0xca, // DEX                       2
		0x88, // DEY                       2
	)
	// 55 cycles so far

	origin = mem.putInstructions(origin,
		0xa6, 0x00, // LDX $00             3
		0xa4, 0x01, // LDY $01             3
		0xad, 0x12, 0x34, // LDA $3412     4
		0xb1, 0x40, // LDA ($40),Y         5 no cross (Y now 0)
	)
	// 70 cycles so far

	origin = mem.putInstructions(origin,
		0xa9, 0xaa, // LDA #$aa            2
		0x09, 0x55, // ORA #$55            2
		0x49, 0x55, // EOR #$55            2
		0x85, 0xff, // STA $ff             3
	)

	// the four signed addition quadrants, both operand signs. each
	// iteration is CLC; LDA #; ADC # for 6 cycles
	for _, pair := range [][2]uint8{
		{0x50, 0x10}, {0x50, 0x50}, {0x50, 0x90}, {0x50, 0xd0},
		{0xd0, 0x10}, {0xd0, 0x50}, {0xd0, 0x90}, {0xd0, 0xd0},
	} {
		origin = mem.putInstructions(origin, 0x18, 0xa9, pair[0], 0x69, pair[1])
	}
	// 127 cycles so far. the last ADC (d0+d0) leaves carry set

	mem.putInstructions(origin,
		0xa9, 0xaa, // LDA #$aa            2
		0x85, 0x00, // STA $00             3
		0xa5, 0x00, // LDA $00             3
		0x8d, 0x34, 0x12, // STA $1234     4
		0x69, 0x03, // ADC #$03            2 (carry in: $aa+$03+1 = $ae)
		0xb0, 0x02, // BCS +2              2 not taken
		0x00, // BRK                       7
	)
	// 150 cycles total

	mc := newTestCPU(t, instructions.NMOS, mem)
	mc.Reset()
	run(t, mc)

	test.Equate(t, mc.Halt == cpu.HaltBreak, true)
	test.Equate(t, mc.Cycles, 150)
	test.Equate(t, mc.A.Value(), 0xae)
	test.Equate(t, mc.Status.Carry, false)
	test.Equate(t, mem.Read(0x0000), 0xaa)
	test.Equate(t, mem.Read(0x1234), 0xaa)
}
