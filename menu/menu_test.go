package menu

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/compsim/cpu"
	"github.com/ezrec/compsim/emulator"
)

func newMenu(input ...string) (m *Menu, out *bytes.Buffer) {
	emu := emulator.NewEmulator(cpu.MEMORY_SIZE)
	out = &bytes.Buffer{}
	emu.Terminal.Input = strings.NewReader(strings.Join(input, "\n") + "\n")
	emu.Terminal.Output = out

	m = &Menu{Emu: emu}
	return
}

func TestMenu_Display(t *testing.T) {
	assert := assert.New(t)

	m, out := newMenu()
	m.Display()

	text := out.String()
	assert.Contains(text, "Computer Simulator Menu")
	for _, item := range []string{
		"\t1. Load program from file\n",
		"\t2. Enter program from keyboard\n",
		"\t3. Load demo program\n",
		"\t4. Run program\n",
		"\t5. Dump memory\n",
		"\t6. Quit\n",
	} {
		assert.Contains(text, item)
	}
}

func TestMenu_DemoRun(t *testing.T) {
	assert := assert.New(t)

	m, out := newMenu("3", "4", "5", "3", "6", "4")

	assert.NoError(m.Launch())

	text := out.String()
	assert.Contains(text, "You entered... 3\n")
	assert.Contains(text, "Loading demo program...\n")
	assert.Contains(text, "Running program...\n")
	assert.Contains(text, "Enter numeric value... Enter numeric value... 15\n")

	// Quit leaves the rest of the input unread.
	line, err := m.Emu.Terminal.ReadLine("")
	assert.NoError(err)
	assert.Equal("4", line)
}

func TestMenu_Invalid(t *testing.T) {
	assert := assert.New(t)

	m, out := newMenu("", "9", "4x", "6")

	quit, err := m.Process()
	assert.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "Invalid menu choice... 0\n")

	quit, err = m.Process()
	assert.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "Invalid menu choice... 9\n")

	// Only the first character counts; an empty memory halts at once.
	quit, err = m.Process()
	assert.NoError(err)
	assert.False(quit)
	assert.Contains(out.String(), "Running program...\n")

	quit, err = m.Process()
	assert.NoError(err)
	assert.True(quit)
}

func TestMenu_EOF(t *testing.T) {
	assert := assert.New(t)

	m, _ := newMenu()
	m.Emu.Terminal.Input = strings.NewReader("")

	quit, err := m.Process()
	assert.NoError(err)
	assert.True(quit)

	// End of input in the middle of a choice also quits.
	m.Emu.Terminal.Input = strings.NewReader("1\n")
	quit, err = m.Process()
	assert.NoError(err)
	assert.True(quit)
}

func TestMenu_LoadFile(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	words := filepath.Join(dir, "prog.txt")
	require.NoError(t, os.WriteFile(words, []byte("2005\n3305\nBAD\n4300\n"), 0o644))
	asm := filepath.Join(dir, "prog.ASM")
	require.NoError(t, os.WriteFile(asm, []byte("WRITE 05\nHALT\n.org 5\n.data 1.5\n"), 0o644))

	m, out := newMenu(
		"1", words,
		"4",
		"1", asm,
		"4",
		"1", filepath.Join(dir, "missing.txt"),
		"6",
	)

	assert.NoError(m.Launch())

	text := out.String()
	assert.Contains(text, "Enter the name of the file you would like to open... ")
	assert.Contains(text, "WARNING: line 3 'BAD'")
	assert.Contains(text, "Program stopped... ")
	assert.Contains(text, cpu.ErrDivideByZero.Error())
	assert.Contains(text, "1.5\n")
	assert.Contains(text, "Problem loading program into memory... ")
}

func TestMenu_Keyboard(t *testing.T) {
	assert := assert.New(t)

	m, out := newMenu("2", "1150", "4300", "exit", "5", "6")

	assert.NoError(m.Launch())

	text := out.String()
	assert.Contains(text, "Enter 'exit' when you would like to return to the main menu.")
	assert.Contains(text, "00:  1150  4300     0")
	assert.Contains(text, "90:     0")
}
