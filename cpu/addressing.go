package cpu

// This file implements the addressing-mode helpers from spec.md
// §4.3.1. Each helper consumes operand bytes directly from the bus at
// the current PC, advances PC past them, and returns the effective
// address or value plus (where relevant) whether the computation
// crossed a page boundary. There is no per-tick state machine here —
// spec.md's Non-goals explicitly rule out sub-instruction cycle
// modeling, so a single call does all the work for one operand.

// fetchOperandByte reads mem[PC] and advances PC by one.
func (c *Chip) fetchOperandByte() uint8 {
	v := c.bus.ReadByte(uint32(c.PC))
	c.PC++
	return v
}

// amImmediate implements #i - the operand is the value itself.
func (c *Chip) amImmediate() uint8 {
	return c.fetchOperandByte()
}

// amZeroPage implements d.
func (c *Chip) amZeroPage() uint16 {
	return uint16(c.fetchOperandByte())
}

// amZeroPageX implements d,X. The addition wraps within the zero page.
func (c *Chip) amZeroPageX() uint16 {
	nn := c.fetchOperandByte()
	return uint16(nn + c.X)
}

// amZeroPageY implements d,Y. The addition wraps within the zero page.
func (c *Chip) amZeroPageY() uint16 {
	nn := c.fetchOperandByte()
	return uint16(nn + c.Y)
}

// amAbsolute implements a.
func (c *Chip) amAbsolute() uint16 {
	lo := c.fetchOperandByte()
	hi := c.fetchOperandByte()
	return uint16(hi)<<8 | uint16(lo)
}

// amAbsoluteIndexed implements a,X / a,Y for reads: the page-crossed
// bool reports whether the base and effective address disagree on the
// high byte, which callers use to add the conditional read penalty.
func (c *Chip) amAbsoluteIndexed(reg uint8) (addr uint16, pageCrossed bool) {
	base := c.amAbsolute()
	addr = base + uint16(reg)
	pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
	return addr, pageCrossed
}

// amIndirectX implements (d,X). Both the pointer's low and high byte
// fetches wrap within the zero page: this is the spec.md §9 open
// question ("zero-page wrap in indexed indirect") resolved in favor of
// faithful NMOS behaviour - ptr and ptr+1 are both uint8 arithmetic.
func (c *Chip) amIndirectX() uint16 {
	nn := c.fetchOperandByte()
	ptr := nn + c.X
	lo := c.bus.ReadByte(uint32(ptr))
	hi := c.bus.ReadByte(uint32(ptr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// amIndirectY implements (d),Y.
func (c *Chip) amIndirectY() (addr uint16, pageCrossed bool) {
	nn := c.fetchOperandByte()
	lo := c.bus.ReadByte(uint32(nn))
	hi := c.bus.ReadByte(uint32(nn + 1))
	base := uint16(hi)<<8 | uint16(lo)
	addr = base + uint16(c.Y)
	pageCrossed = (base & 0xFF00) != (addr & 0xFF00)
	return addr, pageCrossed
}

// amIndirect implements JMP (a). Real NMOS hardware fails to carry
// into the high byte of the pointer when its low byte is 0xFF - the
// classic "JMP ($xxFF) bug". Faithful emulation of real cartridge
// software depends on reproducing it.
func (c *Chip) amIndirect() uint16 {
	ptr := c.amAbsolute()
	lo := c.bus.ReadByte(uint32(ptr))
	hiAddr := (ptr & 0xFF00) | uint16(uint8(ptr)+1)
	hi := c.bus.ReadByte(uint32(hiAddr))
	return uint16(hi)<<8 | uint16(lo)
}

// amRelative implements the *+r branch operand: a signed displacement
// relative to the address of the instruction following the branch.
func (c *Chip) amRelative() int8 {
	return int8(c.fetchOperandByte())
}
