// Command ayyboy is a headless front end for the emulator core: it
// loads a cartridge, runs it for a fixed number of frames, and can
// dump the last frame to a PNG. A
// windowed UI is out of scope for this module (see SPEC_FULL.md §1).
package main

import (
	"os"

	"github.com/ioncodes/ayyboy/cmd/ayyboy/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
