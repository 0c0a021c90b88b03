package cmd

import (
	"fmt"
	"image/png"
	"os"

	"github.com/ioncodes/ayyboy/internal/gameboy"
	"github.com/ioncodes/ayyboy/internal/types"
	"github.com/ioncodes/ayyboy/pkg/display"
	"github.com/ioncodes/ayyboy/pkg/romload"
	"github.com/spf13/cobra"
)

var (
	bootROMPath string
	forceCGB    bool
	frameCount  uint
	saveRAMPath string
	dumpFrame   string
	upscale     int
)

// runCmd runs a cartridge headlessly for a fixed number of frames,
// optionally persisting battery-backed RAM and dumping the last
// rendered frame to a PNG. There is no windowed UI to wait on, so the
// command exits once frameCount frames have been produced.
var runCmd = &cobra.Command{
	Use:   "run `path/to/rom`",
	Short: "run a cartridge headlessly",
	Args:  cobra.ExactArgs(1),
	RunE:  runAyyboy,
}

func init() {
	runCmd.Flags().StringVar(&bootROMPath, "boot", "", "path to a boot ROM image")
	runCmd.Flags().BoolVar(&forceCGB, "cgb", false, "force Game Boy Color mode")
	runCmd.Flags().UintVar(&frameCount, "frames", 60, "number of frames to run before exiting")
	runCmd.Flags().StringVar(&saveRAMPath, "save-ram", "", "path to load/persist battery-backed cartridge RAM")
	runCmd.Flags().StringVar(&dumpFrame, "dump-frame", "", "write the last rendered frame to this PNG path")
	runCmd.Flags().IntVar(&upscale, "upscale", 1, "integer upscale factor applied to --dump-frame output")
}

func runAyyboy(cmd *cobra.Command, args []string) error {
	romImage, err := romload.Load(args[0])
	if err != nil {
		return fmt.Errorf("ayyboy: %w", err)
	}

	var bootImage []byte
	if bootROMPath != "" {
		bootImage, err = romload.Load(bootROMPath)
		if err != nil {
			return fmt.Errorf("ayyboy: %w", err)
		}
	}

	gb, err := gameboy.New(romImage, bootImage, forceCGB)
	if err != nil {
		return fmt.Errorf("ayyboy: %w", err)
	}
	log.WithField("fingerprint", gb.Fingerprint()).Info("cartridge loaded")

	if saveRAMPath != "" {
		if data, err := os.ReadFile(saveRAMPath); err == nil {
			if !gb.LoadRAM(data) {
				log.Warn("cartridge has no battery-backed RAM, ignoring --save-ram")
			}
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("ayyboy: %w", err)
		}
	}

	for i := uint(0); i < frameCount; i++ {
		gb.RunFrame()
	}
	frame := gb.PullFrame()

	if saveRAMPath != "" {
		if data, ok := gb.DumpRAM(); ok {
			if err := os.WriteFile(saveRAMPath, data, 0o644); err != nil {
				return fmt.Errorf("ayyboy: %w", err)
			}
		}
	}

	if dumpFrame != "" {
		img := display.Upscale(display.FrameToImage(frame), upscale)
		f, err := os.Create(dumpFrame)
		if err != nil {
			return fmt.Errorf("ayyboy: %w", err)
		}
		defer f.Close()
		if err := png.Encode(f, img); err != nil {
			return fmt.Errorf("ayyboy: %w", err)
		}
		log.WithField("path", dumpFrame).Info("frame dumped")
	}

	st := types.NewState()
	gb.Save(st)
	log.WithField("bytes", len(st.Bytes())).Debug("final state snapshot size")

	return nil
}
