// Package asmtext parses a hand-assembled listing of the form
//
//	XXXX OP A1 A2 ...
//
// (a hex address column followed by hex byte tokens) into a flat byte
// slice. It is the same listing format the teacher's hand_asm tool
// reads, reimplemented as a native parser instead of shelling out to
// egrep/sed/cut: a library a test package imports has no business
// spawning subprocesses for text munging bufio/strings already do.
package asmtext

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// Assemble parses text and returns the byte stream it describes.
// Lines are read in order; each line's address must be >= the current
// write position, and any gap between the current position and a
// line's address is zero-filled. Everything from a ';' to the end of a
// line is a comment; blank and comment-only lines are ignored.
func Assemble(text string) ([]byte, error) {
	var out []byte
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, ';'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		toks := strings.Fields(line)
		addr, err := strconv.ParseUint(toks[0], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("asmtext: line %d: bad address %q: %w", lineNo, toks[0], err)
		}
		if uint64(len(out)) > addr {
			return nil, fmt.Errorf("asmtext: line %d: address 0x%04X goes backward from 0x%04X", lineNo, addr, len(out))
		}
		for uint64(len(out)) < addr {
			out = append(out, 0x00)
		}
		for _, tok := range toks[1:] {
			b, err := strconv.ParseUint(tok, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("asmtext: line %d: bad byte %q: %w", lineNo, tok, err)
			}
			out = append(out, byte(b))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("asmtext: %w", err)
	}
	return out, nil
}
