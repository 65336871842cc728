// Command gones-trace loads an iNES ROM, resets it, and streams a
// Nintendulator-style conformance trace line per instruction until the CPU
// hits a BRK (is-resetting) or the instruction cap is reached. It exists so
// a developer can drive the nestest conformance scenario from a shell and
// diff the output against an accepted reference log.
package main

import (
	"flag"
	"fmt"
	"os"

	"nescore"
	"nescore/internal/cartridge"
)

func main() {
	var (
		romPath  = flag.String("rom", "", "path to an iNES (.nes) ROM file")
		startPC  = flag.Int("pc", -1, "start execution at this address instead of the reset vector (e.g. 0xC000 for nestest)")
		maxSteps = flag.Int("max-instructions", 10000, "stop after this many instructions even if the CPU never hits BRK")
		outPath  = flag.String("o", "", "write the trace to this file instead of stdout")
	)
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "gones-trace: -rom is required")
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gones-trace: %v\n", err)
		os.Exit(1)
	}

	cart, err := cartridge.ParseINES(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gones-trace: %v\n", err)
		os.Exit(1)
	}

	out := os.Stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gones-trace: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	dev := gones.New()
	dev.InsertCartridge(cart)
	if *startPC >= 0 {
		dev.ResetWithProgramCounter(uint16(*startPC))
	} else {
		dev.Reset()
	}
	dev.SetTraceWriter(out)

	for i := 0; i < *maxSteps; i++ {
		dev.Tick()
		for dev.CPU.CyclesLeft() > 0 && !dev.CPU.IsJammed() {
			dev.Tick()
		}
		if dev.IsResetting() {
			break
		}
	}
}
