// Command disassemble decodes a flat binary file starting at a given
// PC and prints one line per instruction, the same role the teacher's
// disassembler tool served.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/kpeters/arcade6502/debugsymbols"
	"github.com/kpeters/arcade6502/disasm"
	"github.com/kpeters/arcade6502/membus"
)

var (
	startPC = flag.Int("start_pc", 0x0000, "PC to start disassembling from")
	offset  = flag.Int("offset", 0x0000, "bus address the input file loads at")
	symbols = flag.String("symbols", "", "optional debug-symbol JSON file")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: %s <input file>", os.Args[0])
	}

	data, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		log.Fatalf("disassemble: %v", err)
	}

	ram, err := membus.NewRAM(1 << 16)
	if err != nil {
		log.Fatalf("disassemble: %v", err)
	}
	for i, b := range data {
		ram.WriteByte(uint32(*offset+i), b)
	}

	var sym *debugsymbols.Table
	if *symbols != "" {
		sym, err = debugsymbols.Load(*symbols)
		if err != nil {
			log.Fatalf("disassemble: %v", err)
		}
	}

	pc := uint16(*startPC)
	end := uint16(*offset + len(data))
	for pc < end {
		line, n := disasm.Step(pc, ram, sym)
		fmt.Printf("%04X  %s\n", pc, line)
		pc += uint16(n)
	}
}
