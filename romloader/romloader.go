// Package romloader copies ROM image files into a membus.Bus backing
// store at a fixed address and length. It is grounded on the original
// RomLoader::load (bigianb/sam's main_1942.cpp / main_sidetrac.cpp):
// read the whole file, fail if it doesn't have exactly the bytes
// requested, then copy it in starting at start.
package romloader

import (
	"fmt"
	"os"

	"github.com/kpeters/arcade6502/membus"
)

// Load reads length bytes from path and writes them into bus starting
// at start. It returns an error, never panics or exits, so the caller
// (spec.md §7's "driver decides fatality" policy) chooses what to do
// with a bad ROM image.
func Load(path string, bus membus.Bus, start, length uint32) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("romloader: opening %s: %w", path, err)
	}
	if uint32(len(data)) < length {
		return fmt.Errorf("romloader: %s is too short: have %d bytes, need %d", path, len(data), length)
	}
	if uint32(len(data)) > length {
		return fmt.Errorf("romloader: %s has too many bytes: have %d, want exactly %d", path, len(data), length)
	}
	for i := uint32(0); i < length; i++ {
		bus.WriteByte(start+i, data[i])
	}
	return nil
}
