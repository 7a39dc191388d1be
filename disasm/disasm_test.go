package disasm_test

import (
	"os"
	"testing"

	"github.com/kpeters/arcade6502/debugsymbols"
	"github.com/kpeters/arcade6502/disasm"
)

type flatBus struct {
	mem [65536]uint8
}

func (f *flatBus) ReadByte(addr uint32) uint8       { return f.mem[addr&0xFFFF] }
func (f *flatBus) WriteByte(addr uint32, val uint8) { f.mem[addr&0xFFFF] = val }

func TestStepModes(t *testing.T) {
	cases := []struct {
		name   string
		setup  func(b *flatBus)
		pc     uint16
		want   string
		length int
	}{
		{
			name:   "implicit",
			setup:  func(b *flatBus) { b.mem[0x1000] = 0x18 }, // CLC
			pc:     0x1000,
			want:   "CLC",
			length: 1,
		},
		{
			name:   "accumulator",
			setup:  func(b *flatBus) { b.mem[0x1000] = 0x0A }, // ASL A
			pc:     0x1000,
			want:   "ASL A",
			length: 1,
		},
		{
			name: "immediate",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0xA9
				b.mem[0x1001] = 0x15
			},
			pc:     0x1000,
			want:   "LDA #15",
			length: 2,
		},
		{
			name: "zero page",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0xA5
				b.mem[0x1001] = 0x10
			},
			pc:     0x1000,
			want:   "LDA $10",
			length: 2,
		},
		{
			name: "zero page,X",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0x95
				b.mem[0x1001] = 0x34
			},
			pc:     0x1000,
			want:   "STA $34, X",
			length: 2,
		},
		{
			name: "absolute",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0x4C
				b.mem[0x1001] = 0x01
				b.mem[0x1002] = 0x02
			},
			pc:     0x1000,
			want:   "JMP $0201",
			length: 3,
		},
		{
			name: "absolute,X",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0xBD
				b.mem[0x1001] = 0x34
				b.mem[0x1002] = 0x12
			},
			pc:     0x1000,
			want:   "LDA $1234, X",
			length: 3,
		},
		{
			name: "indexed indirect",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0x81
				b.mem[0x1001] = 0x10
			},
			pc:     0x1000,
			want:   "STA ($10, X)",
			length: 2,
		},
		{
			name: "indirect indexed",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0xB1
				b.mem[0x1001] = 0x34
			},
			pc:     0x1000,
			want:   "LDA ($34), Y",
			length: 2,
		},
		{
			name: "relative",
			setup: func(b *flatBus) {
				b.mem[0x1000] = 0x10 // BPL
				b.mem[0x1001] = 0xFC // -4
			},
			pc:     0x1000,
			want:   "BPL *-4   -> 0xFFE",
			length: 2,
		},
		{
			name:   "unknown opcode",
			setup:  func(b *flatBus) { b.mem[0x1000] = 0x02 },
			pc:     0x1000,
			want:   "unknown opcode: 0x02",
			length: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &flatBus{}
			tc.setup(b)
			got, n := disasm.Step(tc.pc, b, nil)
			if got != tc.want {
				t.Errorf("line = %q, want %q", got, tc.want)
			}
			if n != tc.length {
				t.Errorf("length = %d, want %d", n, tc.length)
			}
		})
	}
}

func TestStepDoesNotMutateBus(t *testing.T) {
	b := &flatBus{}
	b.mem[0x1000] = 0x8D // STA abs
	b.mem[0x1001] = 0x00
	b.mem[0x1002] = 0xD4
	before := b.mem
	disasm.Step(0x1000, b, nil)
	if before != b.mem {
		t.Fatalf("Step mutated the bus")
	}
}

func TestStepAnnotatesAbsoluteOperand(t *testing.T) {
	b := &flatBus{}
	b.mem[0x1000] = 0x8D // STA abs
	b.mem[0x1001] = 0x00
	b.mem[0x1002] = 0xD4
	sym := mustLoadInline(t, `{
		"functions": {},
		"ports": {"write": {"0xd400": "sound_reg"}}
	}`)
	got, _ := disasm.Step(0x1000, b, sym)
	want := "STA $D400  sound_reg"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func TestStepAnnotatesFunctionCommentBetweenLabelAndPort(t *testing.T) {
	b := &flatBus{}
	b.mem[0x1000] = 0x8D // STA abs
	b.mem[0x1001] = 0x00
	b.mem[0x1002] = 0xD4
	sym := mustLoadInline(t, `{
		"functions": {"0xd400": {"name": "sound_init", "comment": "cold entry"}},
		"ports": {"write": {"0xd400": "sound_reg"}}
	}`)
	got, _ := disasm.Step(0x1000, b, sym)
	want := "STA $D400  sound_init  cold entry  sound_reg"
	if got != want {
		t.Fatalf("line = %q, want %q", got, want)
	}
}

func mustLoadInline(t *testing.T, content string) *debugsymbols.Table {
	t.Helper()
	path := writeTempFile(t, content)
	tbl, err := debugsymbols.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return tbl
}

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "symbols-*.json")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return f.Name()
}
