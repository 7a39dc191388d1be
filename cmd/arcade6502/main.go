// Command arcade6502 is the thin driver CLI spec.md §6 describes: it
// loads a ROM image and an optional debug-symbol file, then either
// dumps a disassembly from the reset vector or runs the machine frame
// by frame. Its flag surface is built with gopkg.in/urfave/cli.v2, the
// same CLI framework the pack's master-g-childhood/go/chr2png tool
// uses for an equivalently small surface.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	cli "gopkg.in/urfave/cli.v2"

	"github.com/kpeters/arcade6502/debugsymbols"
	"github.com/kpeters/arcade6502/disasm"
	"github.com/kpeters/arcade6502/driver"
	"github.com/kpeters/arcade6502/membus"
	"github.com/kpeters/arcade6502/romloader"
)

func main() {
	app := &cli.App{
		Name:  "arcade6502",
		Usage: "run or disassemble a 6502 arcade ROM image",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "rombase", Aliases: []string{"r"}, Usage: "path to the ROM image", Required: true},
			&cli.Uint64Flag{Name: "romstart", Usage: "bus address the ROM image loads at", Value: 0x8000},
			&cli.StringFlag{Name: "configbase", Aliases: []string{"c"}, Usage: "path to an optional debug-symbol JSON file"},
			&cli.BoolFlag{Name: "dump", Usage: "disassemble from the reset vector instead of running"},
			&cli.IntFlag{Name: "dump-count", Usage: "number of instructions to print with --dump", Value: 64},
			&cli.IntFlag{Name: "frame-budget", Usage: "CPU cycles per frame", Value: driver.SidetracFrameCycles},
			&cli.IntFlag{Name: "frames", Usage: "number of frames to run", Value: 1},
		},
		Action: run,
	}
	sort.Sort(cli.FlagsByName(app.Flags))
	app.ExitErrHandler = func(c *cli.Context, err error) {
		if err == nil {
			return
		}
		log.Printf("ERROR: %v", err)
		cli.OsExiter(-1)
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("arcade6502: %v", err)
	}
}

func run(c *cli.Context) error {
	ram, err := membus.NewRAM(1 << 16)
	if err != nil {
		return fmt.Errorf("arcade6502: %w", err)
	}
	bus := membus.NewDirectBus(ram)

	start := uint32(c.Uint64("romstart"))
	romPath := c.String("rombase")
	info, err := os.Stat(romPath)
	if err != nil {
		return fmt.Errorf("arcade6502: %w", err)
	}
	if err := romloader.Load(romPath, bus, start, uint32(info.Size())); err != nil {
		return fmt.Errorf("arcade6502: %w", err)
	}

	var sym *debugsymbols.Table
	if path := c.String("configbase"); path != "" {
		sym, err = debugsymbols.Load(path)
		if err != nil {
			return fmt.Errorf("arcade6502: %w", err)
		}
	}

	m, err := driver.NewMachine(bus)
	if err != nil {
		return fmt.Errorf("arcade6502: %w", err)
	}
	if err := m.Reset(); err != nil {
		return fmt.Errorf("arcade6502: %w", err)
	}

	if c.Bool("dump") {
		pc := m.CPU.PC
		for i := 0; i < c.Int("dump-count"); i++ {
			line, n := disasm.Step(pc, bus, sym)
			fmt.Printf("%04X  %s\n", pc, line)
			pc += uint16(n)
		}
		return nil
	}

	for f := 0; f < c.Int("frames"); f++ {
		if _, err := m.RunFrame(c.Int("frame-budget")); err != nil {
			return fmt.Errorf("arcade6502: %w", err)
		}
	}
	return nil
}
