// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"fmt"
	"io"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":        "0",
	"OPERAND_LIMIT": strconv.Itoa(OPERAND_LIMIT),
}

var (
	reLabel = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
	reParen = regexp.MustCompile(`\$\([^\$]*\)`)
)

// Assembler is a single pass assembler for the accumulator machine.
//
//	; comment
//	.equ COUNT 3          ; equate
//	.org 10               ; set the address of the next cell
//	loop: LOAD count      ; label, mnemonic and operand
//	      BRANCHZERO done
//	      WRITE $(COUNT*2)
//	done: HALT
//	count: .data 2.5      ; data cell
//	       1007           ; raw instruction word
type Assembler struct {
	Verbose bool   // If set, verbosely logs the assembler actions.
	Lines   []Line // List of generated cells.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to addresses.
	Equate    map[string]string // Map of equates.

	address int // Address of the next cell.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the integer value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	// Leading zeros are decimal, as in "READ 07".
	base := 10
	digits := strings.ToLower(strings.TrimLeft(word, "+-"))
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0b") || strings.HasPrefix(digits, "0o") {
		base = 0
	}
	v64, err := strconv.ParseInt(word, base, 32)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// numberOf returns the numeric value of a data word.
func (asm *Assembler) numberOf(word string) (value float64, err error) {
	iv, err := asm.valueOf(word)
	if err == nil {
		value = float64(iv)
		return
	}

	value, err = strconv.ParseFloat(word, 64)
	if err != nil {
		err = ErrParseNumber(word)
	}
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (text string, err error) {
	thread := starlark.Thread{Name: "asm"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		number, _err := asm.numberOf(str)
		if _err != nil {
			// Ignore non-numeric equates.
			continue
		}
		if number == float64(int(number)) {
			pred[key] = starlark.MakeInt(int(number))
		} else {
			pred[key] = starlark.Float(number)
		}
	}
	for key, address := range asm.Label {
		pred[key] = starlark.MakeInt(address)
	}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}

	switch rc := dict["rc"].(type) {
	case starlark.Int:
		v64, ok := rc.Int64()
		if !ok {
			err = ErrParseExpression(expr)
			return
		}
		text = strconv.FormatInt(v64, 10)
	case starlark.Float:
		text = strconv.FormatFloat(float64(rc), 'g', -1, 64)
	default:
		err = ErrParseExpression(expr)
	}

	return
}

// parseLine expands a single line into words.
func (asm *Assembler) parseLine(line string, lineno int) (words []string, err error) {
	// Set line number.
	asm.Equate["LINENO"] = strconv.Itoa(lineno)

	// Do $() evaluations
	line = reParen.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return value
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)
	if len(words) == 0 {
		return
	}

	// .equ CONST VALUE
	if words[0] == ".equ" {
		if len(words) != 3 || !reLabel.MatchString(words[1]) {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		words = nil
		return
	}

	for n, word := range words {
		equate, ok := asm.Equate[word]
		if ok {
			words[n] = equate
		}
	}

	for len(words) > 0 && strings.HasSuffix(words[0], ":") {
		label := strings.TrimSuffix(words[0], ":")
		if !reLabel.MatchString(label) {
			err = ErrLabelInvalid
			return
		}
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.address
		words = words[1:]
	}

	return
}

// Parse parses an input stream into a Program.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Lines = asm.Lines[:0]
	asm.Label = make(map[string]int)
	asm.Equate = maps.Clone(sysEquate)
	maps.Copy(asm.Equate, asm.predefine)
	asm.address = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			logrus.WithField("line", lineno).Debug(text)
		}

		line = strings.TrimSpace(strings.SplitN(text, ";", 2)[0])

		var words []string
		words, err = asm.parseLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Final linking of labels.
	for n := range asm.Lines {
		cell := &asm.Lines[n]
		if len(cell.LinkLabel) == 0 {
			continue
		}
		lineno = cell.LineNo
		line = strings.Join(cell.Words, " ")
		address, ok := asm.Label[cell.LinkLabel]
		if !ok {
			err = ErrLabelMissing(cell.LinkLabel)
			return
		}
		if address < 0 || address >= OPERAND_LIMIT {
			err = ErrOperandRange
			return
		}
		cell.Value += float64(address)
	}

	prog = &Program{
		Lines: slices.Clone(asm.Lines),
	}

	return
}

// emit appends a cell at the current address.
func (asm *Assembler) emit(lineno int, words []string, value float64, label string) {
	asm.Lines = append(asm.Lines, Line{
		LineNo:    lineno,
		Address:   asm.address,
		Words:     words,
		Value:     value,
		LinkLabel: label,
	})
	asm.address++
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var address int
		address, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if address < 0 {
			err = ErrAddress(address)
			return
		}
		asm.address = address
		return
	case ".data":
		if len(words) != 2 {
			err = ErrDataSyntax
			return
		}
		var value float64
		value, err = asm.numberOf(words[1])
		if err != nil {
			return
		}
		asm.emit(lineno, words, value, "")
		return
	}

	op, ok := LookupOpcode(words[0])
	if !ok {
		// A bare number is a raw cell.
		value, _err := asm.numberOf(words[0])
		if _err != nil {
			err = ErrMnemonicInvalid
			return
		}
		if len(words) > 1 {
			err = ErrOperandExtra
			return
		}
		asm.emit(lineno, words, value, "")
		return
	}

	args := words[1:]
	if len(args) > 1 {
		err = ErrOperandExtra
		return
	}
	if len(args) == 0 {
		if op != OP_HALT {
			err = ErrOperandMissing
			return
		}
		asm.emit(lineno, words, Encode(op, 0), "")
		return
	}

	operand, _err := asm.valueOf(args[0])
	if _err != nil {
		if !reLabel.MatchString(args[0]) {
			err = _err
			return
		}
		asm.emit(lineno, words, Encode(op, 0), args[0])
		return
	}

	if operand < 0 || operand >= OPERAND_LIMIT {
		err = fmt.Errorf("%w: %d", ErrOperandRange, operand)
		return
	}

	asm.emit(lineno, words, Encode(op, operand), "")

	return
}
