// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	stdio "io"
	"iter"
	"maps"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/compsim/cpu"
	"github.com/ezrec/compsim/internal"
	"github.com/ezrec/compsim/io"
)

const (
	// CELLS_PER_ROW is the memory dump row width. The reference machine
	// prints rows of 11, but its row logic drops a cell from each; 10
	// shows every cell.
	CELLS_PER_ROW = 10
)

// Emulator state. CPU + terminal + program listing.
type Emulator struct {
	Verbose     bool         // If set, enables instruction tracing.
	*cpu.Cpu                 // Reference to the CPU simulation.
	Program     *cpu.Program // Reference to the loaded program listing.
	CellsPerRow int          // Memory dump cells per row.

	Terminal io.Terminal // Console for READ, WRITE and program entry.
}

// NewEmulator creates a new emulator with size cells of memory.
func NewEmulator(size uint) (emu *Emulator) {
	emu = &Emulator{
		Cpu:         cpu.NewCpu(size),
		Program:     &cpu.Program{},
		CellsPerRow: CELLS_PER_ROW,
	}

	emu.Cpu.SetConsole(&emu.Terminal)

	return
}

// Defines returns an iterator over all of the assembler predefines.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	size := emu.Cpu.Memory.Size()
	defines := map[string]string{
		"MEMORY_SIZE":  strconv.Itoa(size),
		"LAST_ADDRESS": strconv.Itoa(size - 1),
	}
	return internal.Concat2(maps.All(defines), emu.Cpu.Defines())
}

// Load clears memory and the accumulator, and stores the program.
// On failure, or during a run, the previous program is left in place.
func (emu *Emulator) Load(prog *cpu.Program) (err error) {
	err = emu.Cpu.Load(prog)
	if err != nil {
		return
	}

	emu.Program = prog

	if emu.Verbose {
		logrus.WithFields(logrus.Fields{
			"cells":    len(prog.Lines),
			"warnings": len(prog.Warnings),
		}).Debug("emulator: load")
	}

	return
}

// LoadFile loads a program of one instruction word per line.
func (emu *Emulator) LoadFile(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err := io.LoadProgram(inf)
	if err != nil {
		return
	}

	return emu.Load(prog)
}

// LoadAssembly assembles and loads a mnemonic program.
func (emu *Emulator) LoadAssembly(path string) (err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: emu.Verbose}
	for equ, value := range emu.Defines() {
		asm.Predefine(equ, value)
	}

	prog, err := asm.Parse(inf)
	if err != nil {
		return
	}

	return emu.Load(prog)
}

// LoadDemo loads the demo program.
func (emu *Emulator) LoadDemo() (err error) {
	return emu.Load(DemoProgram())
}

// EnterProgram reads a program from the terminal, one word per line.
func (emu *Emulator) EnterProgram() (err error) {
	prog, err := io.EnterProgram(&emu.Terminal, emu.Cpu.Memory.Size())
	if err != nil {
		return
	}

	return emu.Load(prog)
}

// LineNo returns the source line number of the current instruction.
func (emu *Emulator) LineNo() int {
	line := emu.Program.Debug(emu.Cpu.Current)
	if line == nil {
		return 0
	}
	return line.LineNo
}

// fault locates a run error.
func (emu *Emulator) fault(err error) error {
	return &ErrRuntime{Address: emu.Cpu.Current, LineNo: emu.LineNo(), Err: err}
}

// Start prepares a fresh run for Tick.
func (emu *Emulator) Start() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	return emu.Cpu.Start()
}

// Tick performs a single instruction of the emulator.
// Returns cpu.ErrBusy, unwrapped, while a Run is in progress.
func (emu *Emulator) Tick() (done bool, err error) {
	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrBusy) {
		return
	}
	if err != nil {
		err = emu.fault(err)
	}

	done = !emu.Cpu.Running
	return
}

// Run executes the loaded program from address 0 until it halts.
func (emu *Emulator) Run() (err error) {
	emu.Cpu.Verbose = emu.Verbose

	err = emu.Cpu.Run()
	if err != nil {
		err = emu.fault(err)
	}

	return
}

// Dump writes memory as rows of CellsPerRow cells, each row led by the
// address of its first cell.
func (emu *Emulator) Dump(w stdio.Writer) (err error) {
	for first, row := range internal.Rows(emu.Cpu.Memory.Cells(), emu.CellsPerRow) {
		_, err = fmt.Fprintf(w, "%02d:", first)
		if err != nil {
			return
		}
		for _, value := range row {
			_, err = fmt.Fprintf(w, " %5s", io.FormatValue(value))
			if err != nil {
				return
			}
		}
		_, err = fmt.Fprintln(w)
		if err != nil {
			return
		}
	}

	return
}
