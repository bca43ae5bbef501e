// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/compsim/cpu"
	"github.com/ezrec/compsim/emulator"
	"github.com/ezrec/compsim/menu"
)

func main() {
	var file string
	var assembly string
	var demo bool
	var run bool
	var dump bool
	var size uint
	var width int
	var limit int
	var verbose bool

	flag.StringVar(&file, "f", "", "program file, one instruction word per line")
	flag.StringVar(&assembly, "a", "", ".asm file to assemble")
	flag.BoolVar(&demo, "demo", false, "Load the demo program")
	flag.BoolVar(&run, "run", false, "Run the program and exit, do not show the menu")
	flag.BoolVar(&dump, "dump", false, "Dump memory after running")
	flag.UintVar(&size, "m", cpu.MEMORY_SIZE, "Memory size in cells")
	flag.IntVar(&width, "w", emulator.CELLS_PER_ROW, "Memory dump cells per row")
	flag.IntVar(&limit, "limit", 0, "Maximum instructions per run, 0 for no limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	name := filepath.Base(os.Args[0])

	if flag.NArg() != 0 {
		logrus.Fatalf("%v: Unknown arguments: %v", name, flag.Args())
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	emu := emulator.NewEmulator(size)
	emu.Verbose = verbose
	emu.CellsPerRow = width
	emu.TickLimit = limit
	emu.Terminal.Input = os.Stdin
	emu.Terminal.Output = os.Stdout

	var err error
	switch {
	case len(assembly) != 0:
		err = emu.LoadAssembly(assembly)
		if err != nil {
			logrus.Fatalf("%v: %v", assembly, err)
		}
	case len(file) != 0:
		err = emu.LoadFile(file)
		if err != nil {
			logrus.Fatalf("%v: %v", file, err)
		}
		for _, warn := range emu.Program.Warnings {
			logrus.Warnf("%v: %v", file, warn)
		}
	case demo:
		err = emu.LoadDemo()
		if err != nil {
			logrus.Fatalf("%v: demo: %v", name, err)
		}
	}

	if !run {
		m := &menu.Menu{Emu: emu}
		err = m.Launch()
		if err != nil {
			logrus.Fatal(err)
		}
		return
	}

	err = emu.Run()
	if dump {
		if derr := emu.Dump(os.Stdout); derr != nil {
			logrus.Fatal(derr)
		}
	}
	if err != nil {
		logrus.Fatal(err)
	}
}
