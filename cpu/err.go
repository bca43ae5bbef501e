package cpu

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/ezrec/compsim/translate"
)

var f = translate.From

var (
	// Run faults
	ErrDivideByZero = errors.New(f("divide by zero"))
	ErrBusy         = errors.New(f("cpu busy"))
	ErrTickLimit    = errors.New(f("tick limit exceeded"))
	ErrConsole      = errors.New(f("console"))
	ErrNoConsole    = errors.New(f("no console attached"))

	// Recovered faults
	ErrInputMalformed = errors.New(f("invalid numeric value"))

	// Assembler errors
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrOrgSyntax       = errors.New(f(".org syntax"))
	ErrDataSyntax      = errors.New(f(".data syntax"))
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrMnemonicInvalid = errors.New(f("mnemonic invalid"))
	ErrOperandMissing  = errors.New(f("operand missing"))
	ErrOperandExtra    = errors.New(f("excessive operands"))
	ErrOperandRange    = errors.New(f("operand out of range"))
)

// ErrAddress is an access outside of memory.
type ErrAddress int

func (ea ErrAddress) Error() string {
	return f("address %v out of range", strconv.Itoa(int(ea)))
}

func (ea ErrAddress) Is(err error) (ok bool) {
	_, ok = err.(ErrAddress)
	return
}

// ErrWord is a memory cell that can not be decoded as an instruction.
type ErrWord float64

func (ew ErrWord) Error() string {
	return f("malformed instruction word %v", strconv.FormatFloat(float64(ew), 'f', -1, 64))
}

func (ew ErrWord) Is(err error) (ok bool) {
	_, ok = err.(ErrWord)
	return
}

// ErrInstruction locates the instruction that faulted.
type ErrInstruction struct {
	Address int
	Opcode  Opcode
	Operand int
}

func (ei ErrInstruction) Error() string {
	word := strconv.FormatFloat(Encode(ei.Opcode, ei.Operand), 'f', -1, 64)
	address := fmt.Sprintf("%02d", ei.Address)
	return f("instruction %v at %v: %v", word, address, Instruction{ei.Opcode, ei.Operand}.String())
}

func (ei ErrInstruction) Is(err error) (ok bool) {
	_, ok = err.(ErrInstruction)
	return
}

type ErrLabelMissing string

func (el ErrLabelMissing) Error() string {
	return f("label %v missing", string(el))
}

type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %v '%v' %v", strconv.Itoa(err.LineNo), err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}
