package cpu

// opEntry is one row of the opcode table: the closure that performs
// the whole instruction, returning cycles consumed. Mnemonic text
// lives only in package disasm, which keeps its own table precisely so
// it never has to reach into this one.
type opEntry struct {
	exec func(c *Chip) int
}

// opcodeTable is indexed directly by opcode byte and built once at
// package init. Only the documented 6502 instruction set is populated;
// every other entry is the zero value (exec == nil), which Step()
// treats as an unknown opcode per spec.md §4.3.8. This is the
// table-dispatch mechanism spec.md §9 calls out as preferred over a
// per-opcode switch.
var opcodeTable [256]opEntry

func reg(op uint8, exec func(c *Chip) int) {
	opcodeTable[op] = opEntry{exec: exec}
}

func init() {
	registerLoadStore()
	registerTransfers()
	registerStack()
	registerALU()
	registerShifts()
	registerIncDec()
	registerJumps()
	registerBranches()
	registerFlags()
	registerSystem()
}

// --- ALU / flag primitives, shared by several instruction families ---

func (c *Chip) aluORA(v uint8) { c.A |= v; c.setZN(c.A) }
func (c *Chip) aluAND(v uint8) { c.A &= v; c.setZN(c.A) }
func (c *Chip) aluEOR(v uint8) { c.A ^= v; c.setZN(c.A) }

func (c *Chip) aluBIT(v uint8) {
	c.P &^= FlagZero | FlagOverflow | FlagNegative
	if c.A&v == 0 {
		c.P |= FlagZero
	}
	if v&0x40 != 0 {
		c.P |= FlagOverflow
	}
	if v&0x80 != 0 {
		c.P |= FlagNegative
	}
}

// aluADC implements addition with carry, including BCD adjustment per
// spec.md §4.3.2: overflow is derived from the binary (pre-adjustment)
// sum; the decimal adjustment happens afterward and determines the
// final A and carry. The high-nibble check reads off the 16-bit binary
// sum rather than off separately-adjusted nibbles, so a sum that
// already carried into bit 8 (e.g. 0x99+0x99+1) folds that carry into
// what looks like the high nibble and pulls in the +0x60 adjustment a
// nibble-wise implementation would apply differently - pinned by
// TestADCDecimalCarryIntoHighNibble rather than left incidental.
func (c *Chip) aluADC(v uint8) {
	carryIn := uint16(0)
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	binSum := uint16(c.A) + uint16(v) + carryIn

	overflow := (uint8(c.A)^uint8(binSum))&(v^uint8(binSum))&0x80 != 0

	result := binSum
	carryOut := binSum > 0xFF
	if c.P&FlagDecimal != 0 {
		if result&0x0F > 9 {
			result += 6
		}
		if (result&0xFFF0)>>4 > 9 {
			result += 0x60
		}
		carryOut = result > 0x99
	}

	c.A = uint8(result)
	c.P &^= FlagCarry | FlagOverflow
	if carryOut {
		c.P |= FlagCarry
	}
	if overflow {
		c.P |= FlagOverflow
	}
	c.setZN(c.A)
}

// aluSBC is specified as ADC against the bitwise complement of the
// operand, per spec.md §4.3.2 - this keeps the decimal-mode arithmetic
// uniform with ADC rather than implementing a second, independent
// decimal-subtraction ladder.
func (c *Chip) aluSBC(v uint8) {
	c.aluADC(^v)
}

func (c *Chip) aluCompare(reg, v uint8) {
	diff := reg - v
	c.P &^= FlagCarry | FlagZero | FlagNegative
	if reg >= v {
		c.P |= FlagCarry
	}
	if reg == v {
		c.P |= FlagZero
	}
	if diff&0x80 != 0 {
		c.P |= FlagNegative
	}
}

func (c *Chip) aluASL(v uint8) uint8 {
	c.P &^= FlagCarry
	if v&0x80 != 0 {
		c.P |= FlagCarry
	}
	r := v << 1
	c.setZN(r)
	return r
}

func (c *Chip) aluLSR(v uint8) uint8 {
	c.P &^= FlagCarry
	if v&0x01 != 0 {
		c.P |= FlagCarry
	}
	r := v >> 1
	c.setZN(r)
	return r
}

func (c *Chip) aluROL(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 1
	}
	c.P &^= FlagCarry
	if v&0x80 != 0 {
		c.P |= FlagCarry
	}
	r := (v << 1) | carryIn
	c.setZN(r)
	return r
}

func (c *Chip) aluROR(v uint8) uint8 {
	carryIn := uint8(0)
	if c.P&FlagCarry != 0 {
		carryIn = 0x80
	}
	c.P &^= FlagCarry
	if v&0x01 != 0 {
		c.P |= FlagCarry
	}
	r := (v >> 1) | carryIn
	c.setZN(r)
	return r
}

// --- Load / store family ---

func registerLoadStore() {
	reg(0xA9, func(c *Chip) int { c.A = c.amImmediate(); c.setZN(c.A); return 2 })
	reg(0xA5, func(c *Chip) int { c.A = c.bus.ReadByte(uint32(c.amZeroPage())); c.setZN(c.A); return 3 })
	reg(0xB5, func(c *Chip) int { c.A = c.bus.ReadByte(uint32(c.amZeroPageX())); c.setZN(c.A); return 4 })
	reg(0xAD, func(c *Chip) int { c.A = c.bus.ReadByte(uint32(c.amAbsolute())); c.setZN(c.A); return 4 })
	reg(0xBD, func(c *Chip) int {
		a, cross := c.amAbsoluteIndexed(c.X)
		c.A = c.bus.ReadByte(uint32(a))
		c.setZN(c.A)
		return 4 + extra(cross)
	})
	reg(0xB9, func(c *Chip) int {
		a, cross := c.amAbsoluteIndexed(c.Y)
		c.A = c.bus.ReadByte(uint32(a))
		c.setZN(c.A)
		return 4 + extra(cross)
	})
	reg(0xA1, func(c *Chip) int { c.A = c.bus.ReadByte(uint32(c.amIndirectX())); c.setZN(c.A); return 6 })
	reg(0xB1, func(c *Chip) int {
		a, cross := c.amIndirectY()
		c.A = c.bus.ReadByte(uint32(a))
		c.setZN(c.A)
		return 5 + extra(cross)
	})

	reg(0xA2, func(c *Chip) int { c.X = c.amImmediate(); c.setZN(c.X); return 2 })
	reg(0xA6, func(c *Chip) int { c.X = c.bus.ReadByte(uint32(c.amZeroPage())); c.setZN(c.X); return 3 })
	reg(0xB6, func(c *Chip) int { c.X = c.bus.ReadByte(uint32(c.amZeroPageY())); c.setZN(c.X); return 4 })
	reg(0xAE, func(c *Chip) int { c.X = c.bus.ReadByte(uint32(c.amAbsolute())); c.setZN(c.X); return 4 })
	reg(0xBE, func(c *Chip) int {
		a, cross := c.amAbsoluteIndexed(c.Y)
		c.X = c.bus.ReadByte(uint32(a))
		c.setZN(c.X)
		return 4 + extra(cross)
	})

	reg(0xA0, func(c *Chip) int { c.Y = c.amImmediate(); c.setZN(c.Y); return 2 })
	reg(0xA4, func(c *Chip) int { c.Y = c.bus.ReadByte(uint32(c.amZeroPage())); c.setZN(c.Y); return 3 })
	reg(0xB4, func(c *Chip) int { c.Y = c.bus.ReadByte(uint32(c.amZeroPageX())); c.setZN(c.Y); return 4 })
	reg(0xAC, func(c *Chip) int { c.Y = c.bus.ReadByte(uint32(c.amAbsolute())); c.setZN(c.Y); return 4 })
	reg(0xBC, func(c *Chip) int {
		a, cross := c.amAbsoluteIndexed(c.X)
		c.Y = c.bus.ReadByte(uint32(a))
		c.setZN(c.Y)
		return 4 + extra(cross)
	})

	reg(0x85, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPage()), c.A); return 3 })
	reg(0x95, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPageX()), c.A); return 4 })
	reg(0x8D, func(c *Chip) int { c.bus.WriteByte(uint32(c.amAbsolute()), c.A); return 4 })
	reg(0x9D, func(c *Chip) int { a, _ := c.amAbsoluteIndexed(c.X); c.bus.WriteByte(uint32(a), c.A); return 5 })
	reg(0x99, func(c *Chip) int { a, _ := c.amAbsoluteIndexed(c.Y); c.bus.WriteByte(uint32(a), c.A); return 5 })
	reg(0x81, func(c *Chip) int { c.bus.WriteByte(uint32(c.amIndirectX()), c.A); return 6 })
	reg(0x91, func(c *Chip) int { a, _ := c.amIndirectY(); c.bus.WriteByte(uint32(a), c.A); return 6 })

	reg(0x86, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPage()), c.X); return 3 })
	reg(0x96, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPageY()), c.X); return 4 })
	reg(0x8E, func(c *Chip) int { c.bus.WriteByte(uint32(c.amAbsolute()), c.X); return 4 })

	reg(0x84, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPage()), c.Y); return 3 })
	reg(0x94, func(c *Chip) int { c.bus.WriteByte(uint32(c.amZeroPageX()), c.Y); return 4 })
	reg(0x8C, func(c *Chip) int { c.bus.WriteByte(uint32(c.amAbsolute()), c.Y); return 4 })
}

func extra(cross bool) int {
	if cross {
		return 1
	}
	return 0
}

// --- Register transfers ---

func registerTransfers() {
	reg(0xAA, func(c *Chip) int { c.X = c.A; c.setZN(c.X); return 2 })
	reg(0xA8, func(c *Chip) int { c.Y = c.A; c.setZN(c.Y); return 2 })
	reg(0x8A, func(c *Chip) int { c.A = c.X; c.setZN(c.A); return 2 })
	reg(0x98, func(c *Chip) int { c.A = c.Y; c.setZN(c.A); return 2 })
	reg(0xBA, func(c *Chip) int { c.X = c.S; c.setZN(c.X); return 2 })
	reg(0x9A, func(c *Chip) int { c.S = c.X; return 2 })
}

// --- Stack ---

func registerStack() {
	reg(0x48, func(c *Chip) int { c.push(c.A); return 3 })
	reg(0x68, func(c *Chip) int { c.A = c.pop(); c.setZN(c.A); return 4 })
	reg(0x08, func(c *Chip) int { c.pushStatus(true); return 3 })
	reg(0x28, func(c *Chip) int { c.pullStatus(); return 4 })
}

// --- ALU / logic family ---

func registerALU() {
	type entry struct {
		imm, zp, zpx, abs, absx, absy, indx, indy uint8
		apply                                     func(c *Chip, v uint8)
	}
	families := []entry{
		{0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11, func(c *Chip, v uint8) { c.aluORA(v) }},
		{0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31, func(c *Chip, v uint8) { c.aluAND(v) }},
		{0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51, func(c *Chip, v uint8) { c.aluEOR(v) }},
		{0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71, func(c *Chip, v uint8) { c.aluADC(v) }},
		{0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1, func(c *Chip, v uint8) { c.aluCompare(c.A, v) }},
		{0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1, func(c *Chip, v uint8) { c.aluSBC(v) }},
	}
	for _, f := range families {
		apply := f.apply
		reg(f.imm, func(c *Chip) int { apply(c, c.amImmediate()); return 2 })
		reg(f.zp, func(c *Chip) int { apply(c, c.bus.ReadByte(uint32(c.amZeroPage()))); return 3 })
		reg(f.zpx, func(c *Chip) int { apply(c, c.bus.ReadByte(uint32(c.amZeroPageX()))); return 4 })
		reg(f.abs, func(c *Chip) int { apply(c, c.bus.ReadByte(uint32(c.amAbsolute()))); return 4 })
		reg(f.absx, func(c *Chip) int {
			a, cross := c.amAbsoluteIndexed(c.X)
			apply(c, c.bus.ReadByte(uint32(a)))
			return 4 + extra(cross)
		})
		reg(f.absy, func(c *Chip) int {
			a, cross := c.amAbsoluteIndexed(c.Y)
			apply(c, c.bus.ReadByte(uint32(a)))
			return 4 + extra(cross)
		})
		reg(f.indx, func(c *Chip) int { apply(c, c.bus.ReadByte(uint32(c.amIndirectX()))); return 6 })
		reg(f.indy, func(c *Chip) int {
			a, cross := c.amIndirectY()
			apply(c, c.bus.ReadByte(uint32(a)))
			return 5 + extra(cross)
		})
	}

	reg(0x24, func(c *Chip) int { c.aluBIT(c.bus.ReadByte(uint32(c.amZeroPage()))); return 3 })
	reg(0x2C, func(c *Chip) int { c.aluBIT(c.bus.ReadByte(uint32(c.amAbsolute()))); return 4 })

	reg(0xE0, func(c *Chip) int { c.aluCompare(c.X, c.amImmediate()); return 2 })
	reg(0xE4, func(c *Chip) int { c.aluCompare(c.X, c.bus.ReadByte(uint32(c.amZeroPage()))); return 3 })
	reg(0xEC, func(c *Chip) int { c.aluCompare(c.X, c.bus.ReadByte(uint32(c.amAbsolute()))); return 4 })

	reg(0xC0, func(c *Chip) int { c.aluCompare(c.Y, c.amImmediate()); return 2 })
	reg(0xC4, func(c *Chip) int { c.aluCompare(c.Y, c.bus.ReadByte(uint32(c.amZeroPage()))); return 3 })
	reg(0xCC, func(c *Chip) int { c.aluCompare(c.Y, c.bus.ReadByte(uint32(c.amAbsolute()))); return 4 })
}

// --- Shifts / rotates (read-modify-write) ---

func registerShifts() {
	type entry struct {
		acc, zp, zpx, abs, absx uint8
		apply                   func(c *Chip, v uint8) uint8
	}
	families := []entry{
		{0x0A, 0x06, 0x16, 0x0E, 0x1E, (*Chip).aluASL},
		{0x4A, 0x46, 0x56, 0x4E, 0x5E, (*Chip).aluLSR},
		{0x2A, 0x26, 0x36, 0x2E, 0x3E, (*Chip).aluROL},
		{0x6A, 0x66, 0x76, 0x6E, 0x7E, (*Chip).aluROR},
	}
	for _, f := range families {
		apply := f.apply
		reg(f.acc, func(c *Chip) int { c.A = apply(c, c.A); return 2 })
		reg(f.zp, func(c *Chip) int {
			a := c.amZeroPage()
			c.bus.WriteByte(uint32(a), apply(c, c.bus.ReadByte(uint32(a))))
			return 5
		})
		reg(f.zpx, func(c *Chip) int {
			a := c.amZeroPageX()
			c.bus.WriteByte(uint32(a), apply(c, c.bus.ReadByte(uint32(a))))
			return 6
		})
		reg(f.abs, func(c *Chip) int {
			a := c.amAbsolute()
			c.bus.WriteByte(uint32(a), apply(c, c.bus.ReadByte(uint32(a))))
			return 6
		})
		reg(f.absx, func(c *Chip) int {
			a, _ := c.amAbsoluteIndexed(c.X)
			c.bus.WriteByte(uint32(a), apply(c, c.bus.ReadByte(uint32(a))))
			return 7
		})
	}
}

// --- Increment / decrement ---

func registerIncDec() {
	reg(0xE8, func(c *Chip) int { c.X++; c.setZN(c.X); return 2 })
	reg(0xC8, func(c *Chip) int { c.Y++; c.setZN(c.Y); return 2 })
	reg(0xCA, func(c *Chip) int { c.X--; c.setZN(c.X); return 2 })
	reg(0x88, func(c *Chip) int { c.Y--; c.setZN(c.Y); return 2 })

	type entry struct {
		zp, zpx, abs, absx uint8
		delta              uint8
	}
	families := []entry{
		{0xE6, 0xF6, 0xEE, 0xFE, 1},
		{0xC6, 0xD6, 0xCE, 0xDE, 0xFF},
	}
	for _, f := range families {
		delta := f.delta
		reg(f.zp, func(c *Chip) int {
			a := c.amZeroPage()
			v := c.bus.ReadByte(uint32(a)) + delta
			c.bus.WriteByte(uint32(a), v)
			c.setZN(v)
			return 5
		})
		reg(f.zpx, func(c *Chip) int {
			a := c.amZeroPageX()
			v := c.bus.ReadByte(uint32(a)) + delta
			c.bus.WriteByte(uint32(a), v)
			c.setZN(v)
			return 6
		})
		reg(f.abs, func(c *Chip) int {
			a := c.amAbsolute()
			v := c.bus.ReadByte(uint32(a)) + delta
			c.bus.WriteByte(uint32(a), v)
			c.setZN(v)
			return 6
		})
		reg(f.absx, func(c *Chip) int {
			a, _ := c.amAbsoluteIndexed(c.X)
			v := c.bus.ReadByte(uint32(a)) + delta
			c.bus.WriteByte(uint32(a), v)
			c.setZN(v)
			return 7
		})
	}
}

// --- Jumps / subroutines / interrupt returns ---

func registerJumps() {
	reg(0x4C, func(c *Chip) int { c.PC = c.amAbsolute(); return 3 })
	reg(0x6C, func(c *Chip) int { c.PC = c.amIndirect(); return 5 })
	reg(0x20, func(c *Chip) int {
		target := c.amAbsolute()
		c.pushWord(c.PC - 1)
		c.PC = target
		return 6
	})
	reg(0x60, func(c *Chip) int { c.PC = c.popWord() + 1; return 6 })
	reg(0x40, func(c *Chip) int {
		c.pullStatus()
		c.PC = c.popWord()
		return 6
	})
}

// --- Branches ---

func registerBranches() {
	type entry struct {
		op   uint8
		flag uint8
		when bool
	}
	entries := []entry{
		{0x10, FlagNegative, false}, // BPL
		{0x30, FlagNegative, true},  // BMI
		{0x50, FlagOverflow, false}, // BVC
		{0x70, FlagOverflow, true},  // BVS
		{0x90, FlagCarry, false},    // BCC
		{0xB0, FlagCarry, true},     // BCS
		{0xD0, FlagZero, false},     // BNE
		{0xF0, FlagZero, true},      // BEQ
	}
	for _, e := range entries {
		flag, when := e.flag, e.when
		reg(e.op, func(c *Chip) int {
			disp := c.amRelative()
			taken := (c.P&flag != 0) == when
			if !taken {
				return 2
			}
			oldPC := c.PC
			c.PC = uint16(int32(c.PC) + int32(disp))
			if oldPC&0xFF00 != c.PC&0xFF00 {
				return 4
			}
			return 3
		})
	}
}

// --- Flag instructions ---

func registerFlags() {
	reg(0x18, func(c *Chip) int { c.P &^= FlagCarry; return 2 })
	reg(0x38, func(c *Chip) int { c.P |= FlagCarry; return 2 })
	reg(0x58, func(c *Chip) int { c.P &^= FlagInterrupt; return 2 })
	reg(0x78, func(c *Chip) int { c.P |= FlagInterrupt; return 2 })
	reg(0xB8, func(c *Chip) int { c.P &^= FlagOverflow; return 2 })
	reg(0xD8, func(c *Chip) int { c.P &^= FlagDecimal; return 2 })
	reg(0xF8, func(c *Chip) int { c.P |= FlagDecimal; return 2 })
}

// --- System ---

func registerSystem() {
	reg(0xEA, func(c *Chip) int { return 2 })
	reg(0x00, func(c *Chip) int {
		c.PC++
		c.enterInterrupt(IRQVector, true)
		return 7
	})
}
