// Package driver wires a cpu.Chip to a membus.DirectBus the way a
// specific arcade board's main() would: reset, then run frames,
// asserting IRQ at the end of each one. It does not set up mirror
// regions or load ROM images; the caller prepares the DirectBus before
// NewMachine. It is the "driver glue" component spec.md §2 describes.
package driver

import (
	"fmt"

	"github.com/kpeters/arcade6502/cpu"
	"github.com/kpeters/arcade6502/irq"
	"github.com/kpeters/arcade6502/membus"
)

// SidetracFrameCycles is the per-frame CPU cycle budget for the
// Sidetrack arcade board's 60 Hz vertical blank, carried verbatim from
// spec.md §5.
const SidetracFrameCycles = 11760

// Machine couples one CPU to one bus and drives it frame by frame.
type Machine struct {
	CPU  *cpu.Chip
	Bus  *membus.DirectBus
	vblank *irq.Line
}

// NewMachine constructs a Machine. It creates the vblank IRQ line the
// CPU samples and keeps it to itself: Machine raises it at the end of
// every RunFrame call to model "asserts IRQ at vertical blank"
// (spec.md §2), and AckVBlank lowers it.
func NewMachine(bus *membus.DirectBus) (*Machine, error) {
	vblank := &irq.Line{}
	c, err := cpu.Init(cpu.Config{Bus: bus, IRQ: vblank})
	if err != nil {
		return nil, fmt.Errorf("driver: %w", err)
	}
	return &Machine{CPU: c, Bus: bus, vblank: vblank}, nil
}

// Reset resets the CPU.
func (m *Machine) Reset() error {
	return m.CPU.Reset()
}

// RunFrame steps the CPU until budget cycles have been consumed, then
// raises the vertical-blank IRQ line (spec.md §2 "asserts IRQ at
// vertical blank"). The line stays high - level-triggered, per
// irq.Line's contract - until AckVBlank lowers it, which a driver
// typically does from its IRQ service routine's own memory-mapped
// acknowledgement register.
func (m *Machine) RunFrame(budget int) (int, error) {
	consumed := 0
	for consumed < budget {
		n, err := m.CPU.Step()
		if err != nil {
			return consumed, fmt.Errorf("driver: frame aborted: %w", err)
		}
		consumed += n
	}
	m.vblank.Set()
	return consumed, nil
}

// AckVBlank lowers the vertical-blank IRQ line.
func (m *Machine) AckVBlank() {
	m.vblank.Clear()
}
