// Package menu is the interactive front panel of the accumulator computer.
package menu

import (
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/ezrec/compsim/emulator"
	"github.com/ezrec/compsim/translate"
)

var f = translate.From

// Menu choices.
const (
	CHOICE_LOAD_FILE = '1'
	CHOICE_KEYBOARD  = '2'
	CHOICE_DEMO      = '3'
	CHOICE_RUN       = '4'
	CHOICE_DUMP      = '5'
	CHOICE_QUIT      = '6'
)

// Menu drives an emulator from its terminal.
type Menu struct {
	Emu *emulator.Emulator
}

// Display writes the menu.
func (m *Menu) Display() {
	tm := &m.Emu.Terminal
	tm.Printf("\n\n\n")
	tm.Printf("\t\t Computer Simulator Menu\n")
	tm.Printf("\n\n")
	tm.Printf("\t1. Load program from file\n")
	tm.Printf("\t2. Enter program from keyboard\n")
	tm.Printf("\t3. Load demo program\n")
	tm.Printf("\t4. Run program\n")
	tm.Printf("\t5. Dump memory\n")
	tm.Printf("\t6. Quit\n")
	tm.Printf("\n")
}

// Process reads and executes one menu choice. Failures of a choice are
// reported to the terminal; err is only set when the terminal fails.
func (m *Menu) Process() (quit bool, err error) {
	tm := &m.Emu.Terminal

	choice, err := tm.ReadLine(f("Enter menu choice... "))
	if errors.Is(err, io.EOF) {
		err = nil
		quit = true
		return
	}
	if err != nil {
		return
	}
	tm.Printf("You entered... %v\n", choice)

	if len(choice) == 0 {
		choice = "0"
	}

	switch choice[0] {
	case CHOICE_LOAD_FILE:
		err = m.loadFile()
	case CHOICE_KEYBOARD:
		err = m.Emu.EnterProgram()
		if err != nil {
			tm.Printf("Problem loading program into memory... %v\n", err)
			err = nil
		}
	case CHOICE_DEMO:
		tm.Printf("Loading demo program...\n")
		err = m.Emu.LoadDemo()
		if err != nil {
			tm.Printf("Problem loading program into memory... %v\n", err)
			err = nil
		}
	case CHOICE_RUN:
		tm.Printf("Running program...\n")
		err = m.Emu.Run()
		if err != nil {
			tm.Printf("Program stopped... %v\n", err)
			err = nil
		}
	case CHOICE_DUMP:
		err = m.Emu.Dump(tm.Writer())
	case CHOICE_QUIT:
		quit = true
	default:
		tm.Printf("Invalid menu choice... %v\n", string(choice[0]))
	}

	// Input ended part way through a choice.
	if errors.Is(err, io.EOF) {
		err = nil
		quit = true
	}

	return
}

// loadFile prompts for a file name and loads it. Files ending in .asm are
// assembled, others hold one instruction word per line.
func (m *Menu) loadFile() (err error) {
	tm := &m.Emu.Terminal

	name, err := tm.ReadLine(f("Enter the name of the file you would like to open... "))
	if err != nil {
		return
	}
	name = strings.TrimSpace(name)

	if strings.EqualFold(filepath.Ext(name), ".asm") {
		err = m.Emu.LoadAssembly(name)
	} else {
		err = m.Emu.LoadFile(name)
	}
	if err != nil {
		tm.Printf("Problem loading program into memory... %v\n", err)
		err = nil
		return
	}

	for _, warn := range m.Emu.Program.Warnings {
		tm.Printf("WARNING: %v\n", warn)
	}

	return
}

// Launch displays the menu and processes choices until quit.
func (m *Menu) Launch() (err error) {
	for {
		m.Display()

		var quit bool
		quit, err = m.Process()
		if quit || err != nil {
			return
		}
	}
}
