// Package cpu implements the MOS 6502 instruction interpreter: register
// and flag state, reset/interrupt sequencing, and a whole-instruction
// Step() that executes exactly one opcode (or one interrupt entry) per
// call and reports the cycles it consumed. There is no sub-instruction
// clocking; that is a deliberate simplification relative to hardware,
// matching this module's scope.
package cpu

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/kpeters/arcade6502/irq"
	"github.com/kpeters/arcade6502/membus"
)

// Status byte bit masks. Bit 5 is wired high and never otherwise used;
// bit 4 (B) only has meaning in the byte pushed to the stack, never in
// the live P register.
const (
	FlagCarry     uint8 = 0x01
	FlagZero      uint8 = 0x02
	FlagInterrupt uint8 = 0x04
	FlagDecimal   uint8 = 0x08
	FlagBreak     uint8 = 0x10
	FlagUnused    uint8 = 0x20
	FlagOverflow  uint8 = 0x40
	FlagNegative  uint8 = 0x80
)

// Vectors read at reset and on interrupt entry.
const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

const stackBase uint16 = 0x0100

// InvalidCPUState reports a precondition failure that is not a normal
// emulation outcome (a Chip with no bus, such as one not built by
// Init). It is
// distinct from an unknown opcode, which spec treats as a harmless NOP
// rather than an error.
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("cpu: invalid state: %s", e.Reason)
}

// Config supplies Init's collaborators. IRQ and NMI are optional: when
// left nil, Chip creates its own irq.Line and SetIRQ/SetNMI drive it
// directly. Supplying an external irq.Sender (a driver peripheral that
// already implements Raised()) lets that peripheral own the line
// instead; in that case SetIRQ/SetNMI are no-ops and log a warning.
type Config struct {
	Bus membus.Bus
	IRQ irq.Sender
	NMI irq.Sender
}

// Chip holds the full architectural state of one 6502 core.
type Chip struct {
	A, X, Y uint8
	S       uint8
	P       uint8
	PC      uint16

	Cycles uint64

	bus membus.Bus
	irq irq.Sender
	nmi irq.Sender

	// ownIRQ/ownNMI are the lines Init created because Config left
	// IRQ/NMI nil; they stay nil when an external sender owns the line.
	ownIRQ *irq.Line
	ownNMI *irq.Line

	nmiPrev bool
}

// Init constructs a Chip wired to cfg.Bus. It does not reset the
// architectural registers; call PowerOn or Reset for that.
func Init(cfg Config) (*Chip, error) {
	if cfg.Bus == nil {
		return nil, InvalidCPUState{Reason: "Config.Bus must not be nil"}
	}
	c := &Chip{bus: cfg.Bus}
	if cfg.IRQ != nil {
		c.irq = cfg.IRQ
	} else {
		c.ownIRQ = &irq.Line{}
		c.irq = c.ownIRQ
	}
	if cfg.NMI != nil {
		c.nmi = cfg.NMI
	} else {
		c.ownNMI = &irq.Line{}
		c.nmi = c.ownNMI
	}
	return c, nil
}

// SetIRQ raises or lowers the CPU's own IRQ line. It only has an effect
// when Config.IRQ was left nil at Init time; otherwise the external
// sender owns the line and this call is diagnosed and ignored.
func (c *Chip) SetIRQ(level bool) {
	l := c.ownIRQ
	if l == nil {
		log.Printf("cpu: SetIRQ ignored: IRQ line is owned by an external irq.Sender")
		return
	}
	if level {
		l.Set()
	} else {
		l.Clear()
	}
}

// SetNMI raises or lowers the CPU's own NMI line. Same caveat as SetIRQ.
func (c *Chip) SetNMI(level bool) {
	l := c.ownNMI
	if l == nil {
		log.Printf("cpu: SetNMI ignored: NMI line is owned by an external irq.Sender")
		return
	}
	if level {
		l.Set()
	} else {
		l.Clear()
	}
}

// PowerOn randomizes the architectural registers, matching real
// silicon powering on to indeterminate state, then performs Reset.
// Grounded on the teacher's Chip.PowerOn, which does the same with
// math/rand.
func (c *Chip) PowerOn() error {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	c.A = uint8(rnd.Intn(256))
	c.X = uint8(rnd.Intn(256))
	c.Y = uint8(rnd.Intn(256))
	c.S = uint8(rnd.Intn(256))
	c.P = uint8(rnd.Intn(256))&(FlagNegative|FlagOverflow|FlagDecimal|FlagZero|FlagCarry) | FlagUnused
	return c.Reset()
}

// Reset loads PC from the reset vector, sets the interrupt-disable
// flag and bit 5, and decrements S by three (the stack pushes the
// hardware performs with writes suppressed); A, X, Y and the other
// flags are left untouched. Unlike the teacher's multi-tick reset sequence
// this happens in one call, consistent with Step()'s whole-instruction
// model.
func (c *Chip) Reset() error {
	if c.bus == nil {
		return InvalidCPUState{Reason: "Reset called with no bus configured"}
	}
	c.PC = c.readVector(ResetVector)
	c.P |= FlagInterrupt
	c.P |= FlagUnused
	c.S -= 3
	return nil
}

func (c *Chip) readVector(addr uint16) uint16 {
	lo := c.bus.ReadByte(uint32(addr))
	hi := c.bus.ReadByte(uint32(addr + 1))
	return uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) push(v uint8) {
	c.bus.WriteByte(uint32(stackBase+uint16(c.S)), v)
	c.S--
}

func (c *Chip) pop() uint8 {
	c.S++
	return c.bus.ReadByte(uint32(stackBase + uint16(c.S)))
}

func (c *Chip) pushWord(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *Chip) popWord() uint16 {
	lo := c.pop()
	hi := c.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// setZN sets Z and N from v, clearing any prior value of either.
func (c *Chip) setZN(v uint8) {
	c.P &^= FlagZero | FlagNegative
	if v == 0 {
		c.P |= FlagZero
	}
	if v&0x80 != 0 {
		c.P |= FlagNegative
	}
}

// pushStatus packs P onto the stack. b reports whether bit 4 (B)
// should read as 1 in the pushed byte - true for PHP/BRK, false for a
// hardware IRQ/NMI entry.
func (c *Chip) pushStatus(b bool) {
	v := c.P | FlagUnused
	if b {
		v |= FlagBreak
	} else {
		v &^= FlagBreak
	}
	c.push(v)
}

// pullStatus restores P from the stack. Bits 4 and 5 of the popped
// byte are discarded; bit 5 is always forced back on.
func (c *Chip) pullStatus() {
	v := c.pop()
	c.P = (v &^ (FlagBreak | FlagUnused)) | FlagUnused
}

// enterInterrupt pushes PC and status, sets I, and loads PC from
// vector. b matches pushStatus's b: false for hardware IRQ/NMI, true
// for BRK.
func (c *Chip) enterInterrupt(vector uint16, b bool) {
	c.pushWord(c.PC)
	c.pushStatus(b)
	c.P |= FlagInterrupt
	c.PC = c.readVector(vector)
}

// Step executes exactly one instruction, or - if an interrupt is
// pending and unmasked - one interrupt entry sequence, and returns the
// number of cycles consumed. Unknown opcodes are diagnosed and treated
// as a 2 cycle NOP rather than halting the CPU (spec.md §4.3.8 /§7).
func (c *Chip) Step() (int, error) {
	if c.bus == nil {
		return 0, InvalidCPUState{Reason: "Step called with no bus configured"}
	}

	nmiNow := c.nmi.Raised()
	if nmiNow && !c.nmiPrev {
		c.nmiPrev = nmiNow
		c.enterInterrupt(NMIVector, false)
		c.Cycles += 7
		return 7, nil
	}
	c.nmiPrev = nmiNow

	if c.irq.Raised() && c.P&FlagInterrupt == 0 {
		c.enterInterrupt(IRQVector, false)
		c.Cycles += 7
		return 7, nil
	}

	opcodePC := c.PC
	op := c.fetchOperandByte()
	entry := opcodeTable[op]
	if entry.exec == nil {
		log.Printf("cpu: unknown opcode 0x%02X at 0x%04X, treating as NOP", op, opcodePC)
		c.Cycles += 2
		return 2, nil
	}
	cycles := entry.exec(c)
	c.Cycles += uint64(cycles)
	return cycles, nil
}
