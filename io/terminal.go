package io

import (
	"bufio"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/compsim/cpu"
	"github.com/ezrec/compsim/translate"
)

// Terminal is a line based console. It wraps an io.Reader for input and an
// io.Writer for output; every reader of lines shares one buffer, so the
// menu and the running program consume the same stream.
type Terminal struct {
	Input  io.Reader
	Output io.Writer

	reader *bufio.Reader
	source io.Reader
}

var _ cpu.Console = (*Terminal)(nil)
var _ cpu.Warner = (*Terminal)(nil)

// FormatValue formats a cell value with the fewest digits that read back
// exactly: 8, 2.5, -0.125.
func FormatValue(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

// Writer returns the output, or io.Discard if there is none.
func (tm *Terminal) Writer() io.Writer {
	if tm.Output == nil {
		return io.Discard
	}
	return tm.Output
}

// Printf writes translated text to the output.
func (tm *Terminal) Printf(format string, args ...any) {
	translate.Fprintf(tm.Writer(), format, args...)
}

// ReadLine writes the prompt, and returns the next line of input without
// its line ending. A final line without a line ending is still returned.
func (tm *Terminal) ReadLine(prompt string) (line string, err error) {
	if tm.Input == nil {
		err = io.EOF
		return
	}

	if tm.reader == nil || tm.source != tm.Input {
		tm.reader = bufio.NewReader(tm.Input)
		tm.source = tm.Input
	}

	if len(prompt) != 0 {
		tm.Printf("%v", prompt)
	}

	line, err = tm.reader.ReadString('\n')
	if errors.Is(err, io.EOF) && len(line) != 0 {
		err = nil
	}
	line = strings.TrimRight(line, "\r\n")

	return
}

// Read prompts for, and returns, a numeric value.
func (tm *Terminal) Read() (text string, err error) {
	return tm.ReadLine(f("Enter numeric value... "))
}

// Write emits a value as a line of text.
func (tm *Terminal) Write(value float64) (err error) {
	_, err = io.WriteString(tm.Writer(), FormatValue(value)+"\n")
	return
}

// Warn reports malformed input that was read as 0.
func (tm *Terminal) Warn() {
	tm.Printf("%v\n", f("ERROR: Invalid numeric value entered. Setting value to 0."))
}
