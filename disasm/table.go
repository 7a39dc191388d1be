package disasm

// mode identifies which textual form and byte length an opcode uses,
// per spec.md §4.2's mode table. It mirrors (but is independent of)
// the addressing-mode helpers in package cpu: the disassembler must
// never touch CPU state, so it keeps its own small, pure table.
type mode int

const (
	modeImplied mode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeIndirect
	modeRelative
)

type entry struct {
	mnemonic string
	mode     mode
	// writes marks an opcode whose final action on the effective
	// address is a write, used to pick read-port vs write-port
	// annotation for absolute operands.
	writes bool
}

var opcodeTable [256]entry

func set(op uint8, mnemonic string, m mode, writes bool) {
	opcodeTable[op] = entry{mnemonic: mnemonic, mode: m, writes: writes}
}

func init() {
	set(0xA9, "LDA", modeImmediate, false)
	set(0xA5, "LDA", modeZeroPage, false)
	set(0xB5, "LDA", modeZeroPageX, false)
	set(0xAD, "LDA", modeAbsolute, false)
	set(0xBD, "LDA", modeAbsoluteX, false)
	set(0xB9, "LDA", modeAbsoluteY, false)
	set(0xA1, "LDA", modeIndirectX, false)
	set(0xB1, "LDA", modeIndirectY, false)

	set(0xA2, "LDX", modeImmediate, false)
	set(0xA6, "LDX", modeZeroPage, false)
	set(0xB6, "LDX", modeZeroPageY, false)
	set(0xAE, "LDX", modeAbsolute, false)
	set(0xBE, "LDX", modeAbsoluteY, false)

	set(0xA0, "LDY", modeImmediate, false)
	set(0xA4, "LDY", modeZeroPage, false)
	set(0xB4, "LDY", modeZeroPageX, false)
	set(0xAC, "LDY", modeAbsolute, false)
	set(0xBC, "LDY", modeAbsoluteX, false)

	set(0x85, "STA", modeZeroPage, true)
	set(0x95, "STA", modeZeroPageX, true)
	set(0x8D, "STA", modeAbsolute, true)
	set(0x9D, "STA", modeAbsoluteX, true)
	set(0x99, "STA", modeAbsoluteY, true)
	set(0x81, "STA", modeIndirectX, true)
	set(0x91, "STA", modeIndirectY, true)

	set(0x86, "STX", modeZeroPage, true)
	set(0x96, "STX", modeZeroPageY, true)
	set(0x8E, "STX", modeAbsolute, true)

	set(0x84, "STY", modeZeroPage, true)
	set(0x94, "STY", modeZeroPageX, true)
	set(0x8C, "STY", modeAbsolute, true)

	set(0xAA, "TAX", modeImplied, false)
	set(0xA8, "TAY", modeImplied, false)
	set(0x8A, "TXA", modeImplied, false)
	set(0x98, "TYA", modeImplied, false)
	set(0xBA, "TSX", modeImplied, false)
	set(0x9A, "TXS", modeImplied, false)

	set(0x48, "PHA", modeImplied, false)
	set(0x68, "PLA", modeImplied, false)
	set(0x08, "PHP", modeImplied, false)
	set(0x28, "PLP", modeImplied, false)

	logic := []struct {
		mnem                                       string
		imm, zp, zpx, abs, absx, absy, indx, indy  uint8
	}{
		{"ORA", 0x09, 0x05, 0x15, 0x0D, 0x1D, 0x19, 0x01, 0x11},
		{"AND", 0x29, 0x25, 0x35, 0x2D, 0x3D, 0x39, 0x21, 0x31},
		{"EOR", 0x49, 0x45, 0x55, 0x4D, 0x5D, 0x59, 0x41, 0x51},
		{"ADC", 0x69, 0x65, 0x75, 0x6D, 0x7D, 0x79, 0x61, 0x71},
		{"CMP", 0xC9, 0xC5, 0xD5, 0xCD, 0xDD, 0xD9, 0xC1, 0xD1},
		{"SBC", 0xE9, 0xE5, 0xF5, 0xED, 0xFD, 0xF9, 0xE1, 0xF1},
	}
	for _, f := range logic {
		set(f.imm, f.mnem, modeImmediate, false)
		set(f.zp, f.mnem, modeZeroPage, false)
		set(f.zpx, f.mnem, modeZeroPageX, false)
		set(f.abs, f.mnem, modeAbsolute, false)
		set(f.absx, f.mnem, modeAbsoluteX, false)
		set(f.absy, f.mnem, modeAbsoluteY, false)
		set(f.indx, f.mnem, modeIndirectX, false)
		set(f.indy, f.mnem, modeIndirectY, false)
	}

	set(0x24, "BIT", modeZeroPage, false)
	set(0x2C, "BIT", modeAbsolute, false)

	set(0xE0, "CPX", modeImmediate, false)
	set(0xE4, "CPX", modeZeroPage, false)
	set(0xEC, "CPX", modeAbsolute, false)

	set(0xC0, "CPY", modeImmediate, false)
	set(0xC4, "CPY", modeZeroPage, false)
	set(0xCC, "CPY", modeAbsolute, false)

	shifts := []struct {
		mnem                    string
		acc, zp, zpx, abs, absx uint8
	}{
		{"ASL", 0x0A, 0x06, 0x16, 0x0E, 0x1E},
		{"LSR", 0x4A, 0x46, 0x56, 0x4E, 0x5E},
		{"ROL", 0x2A, 0x26, 0x36, 0x2E, 0x3E},
		{"ROR", 0x6A, 0x66, 0x76, 0x6E, 0x7E},
	}
	for _, f := range shifts {
		set(f.acc, f.mnem, modeAccumulator, false)
		set(f.zp, f.mnem, modeZeroPage, true)
		set(f.zpx, f.mnem, modeZeroPageX, true)
		set(f.abs, f.mnem, modeAbsolute, true)
		set(f.absx, f.mnem, modeAbsoluteX, true)
	}

	set(0xE8, "INX", modeImplied, false)
	set(0xC8, "INY", modeImplied, false)
	set(0xCA, "DEX", modeImplied, false)
	set(0x88, "DEY", modeImplied, false)

	incdec := []struct {
		mnem               string
		zp, zpx, abs, absx uint8
	}{
		{"INC", 0xE6, 0xF6, 0xEE, 0xFE},
		{"DEC", 0xC6, 0xD6, 0xCE, 0xDE},
	}
	for _, f := range incdec {
		set(f.zp, f.mnem, modeZeroPage, true)
		set(f.zpx, f.mnem, modeZeroPageX, true)
		set(f.abs, f.mnem, modeAbsolute, true)
		set(f.absx, f.mnem, modeAbsoluteX, true)
	}

	set(0x4C, "JMP", modeAbsolute, false)
	set(0x6C, "JMP", modeIndirect, false)
	set(0x20, "JSR", modeAbsolute, false)
	set(0x60, "RTS", modeImplied, false)
	set(0x40, "RTI", modeImplied, false)

	branches := []struct {
		mnem string
		op   uint8
	}{
		{"BPL", 0x10}, {"BMI", 0x30}, {"BVC", 0x50}, {"BVS", 0x70},
		{"BCC", 0x90}, {"BCS", 0xB0}, {"BNE", 0xD0}, {"BEQ", 0xF0},
	}
	for _, b := range branches {
		set(b.op, b.mnem, modeRelative, false)
	}

	set(0x18, "CLC", modeImplied, false)
	set(0x38, "SEC", modeImplied, false)
	set(0x58, "CLI", modeImplied, false)
	set(0x78, "SEI", modeImplied, false)
	set(0xB8, "CLV", modeImplied, false)
	set(0xD8, "CLD", modeImplied, false)
	set(0xF8, "SED", modeImplied, false)

	set(0xEA, "NOP", modeImplied, false)
	set(0x00, "BRK", modeImplied, false)
}
