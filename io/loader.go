package io

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/compsim/cpu"
)

// parseWord parses an instruction word.
func parseWord(text string) (word float64, err error) {
	v64, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		err = cpu.ErrParseNumber(text)
		return
	}

	word = float64(v64)
	return
}

// LoadProgram reads a program of one instruction word per line, stored at
// addresses 0, 1, 2, ... Blank lines are skipped. A line that is not a
// number is stored as 0, and reported in the Program's Warnings.
func LoadProgram(input io.Reader) (prog *cpu.Program, err error) {
	scanner := bufio.NewScanner(input)

	prog = &cpu.Program{}

	var lineno int
	var address int
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if len(line) == 0 {
			continue
		}

		word, perr := parseWord(line)
		if perr != nil {
			warn := cpu.ErrSyntax{LineNo: lineno, Line: line, Err: perr}
			prog.Warnings = append(prog.Warnings, warn)
			logrus.WithFields(logrus.Fields{
				"line":    lineno,
				"address": address,
			}).Warn(warn.Error())
		}

		prog.Lines = append(prog.Lines, cpu.Line{
			LineNo:  lineno,
			Address: address,
			Words:   []string{line},
			Value:   word,
		})
		address++
	}

	err = scanner.Err()
	if err != nil {
		prog = nil
	}

	return
}

// EnterProgram prompts for instruction words until "exit", end of input,
// or size words have been entered. Invalid entries are retried at the same
// address.
func EnterProgram(tm *Terminal, size int) (prog *cpu.Program, err error) {
	prog = &cpu.Program{}

	tm.Printf("%v\n", f("Enter 'exit' when you would like to return to the main menu."))

	var lineno int
	for address := 0; ; {
		if address >= size {
			tm.Printf("%v\n", ErrMemoryFull)
			return
		}

		var line string
		line, err = tm.ReadLine(f("Please enter an instruction: "))
		if err == io.EOF {
			err = nil
			return
		}
		if err != nil {
			return
		}
		lineno++

		line = strings.TrimSpace(line)
		if strings.EqualFold(line, "exit") {
			return
		}

		word, perr := parseWord(line)
		if perr != nil {
			tm.Printf("%v %v\n", f("Invalid instruction. Please try again."), perr)
			continue
		}

		prog.Lines = append(prog.Lines, cpu.Line{
			LineNo:  lineno,
			Address: address,
			Words:   []string{line},
			Value:   word,
		})
		address++
	}
}
