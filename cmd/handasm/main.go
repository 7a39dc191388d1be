// Command handasm turns a hand-assembled listing (see package asmtext
// for the format) into a raw binary file, the same role the teacher's
// hand_asm tool served.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/kpeters/arcade6502/asmtext"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		log.Fatalf("usage: %s <input listing> <output.bin>", os.Args[0])
	}
	in, out := flag.Arg(0), flag.Arg(1)

	text, err := os.ReadFile(in)
	if err != nil {
		log.Fatalf("handasm: reading %q: %v", in, err)
	}
	bin, err := asmtext.Assemble(string(text))
	if err != nil {
		log.Fatalf("handasm: %v", err)
	}
	if err := os.WriteFile(out, bin, 0o644); err != nil {
		log.Fatalf("handasm: writing %q: %v", out, err)
	}
}
