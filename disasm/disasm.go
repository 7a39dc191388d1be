// Package disasm implements a pure 6502 disassembler: given a program
// counter and a bus to read from, it produces one textual line plus
// the instruction's byte length, per spec.md §4.2. It never advances
// PC, never writes to the bus, and never touches CPU register state -
// callers that want to print a running trace call it alongside, not
// instead of, cpu.Chip.Step().
package disasm

import (
	"fmt"

	"github.com/kpeters/arcade6502/debugsymbols"
	"github.com/kpeters/arcade6502/membus"
)

// Step decodes the instruction at pc and returns its textual form plus
// byte length (1, 2, or 3). sym may be nil, in which case absolute
// operands are never annotated.
func Step(pc uint16, bus membus.Bus, sym *debugsymbols.Table) (string, int) {
	op := bus.ReadByte(uint32(pc))
	e := opcodeTable[op]
	if e.mnemonic == "" {
		return fmt.Sprintf("unknown opcode: 0x%02X", op), 1
	}

	switch e.mode {
	case modeImplied:
		return e.mnemonic, 1
	case modeAccumulator:
		return e.mnemonic + " A", 1
	case modeImmediate:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s #%02X", e.mnemonic, nn), 2
	case modeZeroPage:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s $%02X", e.mnemonic, nn), 2
	case modeZeroPageX:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s $%02X, X", e.mnemonic, nn), 2
	case modeZeroPageY:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s $%02X, Y", e.mnemonic, nn), 2
	case modeAbsolute:
		hhll := readWord(bus, pc+1)
		line := fmt.Sprintf("%s $%04X", e.mnemonic, hhll)
		return annotate(line, uint32(hhll), e.writes, sym), 3
	case modeAbsoluteX:
		hhll := readWord(bus, pc+1)
		line := fmt.Sprintf("%s $%04X, X", e.mnemonic, hhll)
		return annotate(line, uint32(hhll), e.writes, sym), 3
	case modeAbsoluteY:
		hhll := readWord(bus, pc+1)
		line := fmt.Sprintf("%s $%04X, Y", e.mnemonic, hhll)
		return annotate(line, uint32(hhll), e.writes, sym), 3
	case modeIndirectX:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s ($%02X, X)", e.mnemonic, nn), 2
	case modeIndirectY:
		nn := bus.ReadByte(uint32(pc + 1))
		return fmt.Sprintf("%s ($%02X), Y", e.mnemonic, nn), 2
	case modeIndirect:
		hhll := readWord(bus, pc+1)
		return fmt.Sprintf("%s ($%04X)", e.mnemonic, hhll), 3
	case modeRelative:
		nn := bus.ReadByte(uint32(pc + 1))
		offset := int8(nn)
		target := pc + 2 + uint16(int16(offset))
		return fmt.Sprintf("%s *%+d   -> 0x%X", e.mnemonic, offset, target), 2
	}
	return fmt.Sprintf("unknown opcode: 0x%02X", op), 1
}

func readWord(bus membus.Bus, addr uint16) uint16 {
	lo := bus.ReadByte(uint32(addr))
	hi := bus.ReadByte(uint32(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

// annotate appends function label, comment, and port-name tokens for
// an absolute-family operand, per spec.md §4.2: function label first,
// then its comment if any, then read-port or write-port name (chosen
// by the opcode's direction), each separated from what precedes it by
// two spaces.
func annotate(line string, addr uint32, writes bool, sym *debugsymbols.Table) string {
	if sym == nil {
		return line
	}
	if name, ok := sym.FunctionName(addr); ok {
		line += "  " + name
		if comment, ok := sym.Comment(addr); ok {
			line += "  " + comment
		}
	}
	if writes {
		if name, ok := sym.WritePort(addr); ok {
			line += "  " + name
		}
	} else {
		if name, ok := sym.ReadPort(addr); ok {
			line += "  " + name
		}
	}
	return line
}
