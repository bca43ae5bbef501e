package cpu

import (
	"fmt"
	"iter"
	"math"
	"strings"
)

// Opcode is an instruction operation code.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_READ       = Opcode(10) // READ
	OP_WRITE      = Opcode(11) // WRITE
	OP_LOAD       = Opcode(20) // LOAD
	OP_STORE      = Opcode(21) // STORE
	OP_ADD        = Opcode(30) // ADD
	OP_SUB        = Opcode(31) // SUB
	OP_MUL        = Opcode(32) // MUL
	OP_DIV        = Opcode(33) // DIV
	OP_BRANCH     = Opcode(40) // BRANCH
	OP_BRANCHNEG  = Opcode(41) // BRANCHNEG
	OP_BRANCHZERO = Opcode(42) // BRANCHZERO
	OP_HALT       = Opcode(43) // HALT
)

// OPERAND_LIMIT is the number of distinct operands in an instruction word.
const OPERAND_LIMIT = 100

// opcodes is the recognized instruction set, in numeric order.
var opcodes = []Opcode{
	OP_READ, OP_WRITE,
	OP_LOAD, OP_STORE,
	OP_ADD, OP_SUB, OP_MUL, OP_DIV,
	OP_BRANCH, OP_BRANCHNEG, OP_BRANCHZERO,
	OP_HALT,
}

// Opcodes iterates over the recognized instruction set.
func Opcodes() iter.Seq[Opcode] {
	return func(yield func(Opcode) bool) {
		for _, op := range opcodes {
			if !yield(op) {
				return
			}
		}
	}
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() bool {
	switch op {
	case OP_READ, OP_WRITE,
		OP_LOAD, OP_STORE,
		OP_ADD, OP_SUB, OP_MUL, OP_DIV,
		OP_BRANCH, OP_BRANCHNEG, OP_BRANCHZERO,
		OP_HALT:
		return true
	}
	return false
}

// LookupOpcode finds the opcode for a mnemonic, ignoring case.
func LookupOpcode(mnemonic string) (op Opcode, ok bool) {
	for _, op = range opcodes {
		if strings.EqualFold(op.String(), mnemonic) {
			ok = true
			return
		}
	}

	op = 0
	return
}

// Decode splits an instruction word into its opcode and operand.
//
// The opcode is the word divided by 100, truncated toward zero. The operand
// is the word modulo 100, always in [0, 99]. Words that are not whole
// numbers can not be decoded.
func Decode(word float64) (op Opcode, operand int, err error) {
	if math.IsNaN(word) || math.IsInf(word, 0) || word != math.Trunc(word) ||
		word >= math.MaxInt64 || word <= math.MinInt64 {
		err = ErrWord(word)
		return
	}

	w := int64(word)
	op = Opcode(w / OPERAND_LIMIT)
	operand = int(w % OPERAND_LIMIT)
	if operand < 0 {
		operand += OPERAND_LIMIT
	}

	return
}

// Encode builds an instruction word.
func Encode(op Opcode, operand int) float64 {
	return float64(int(op)*OPERAND_LIMIT + operand)
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode  Opcode
	Operand int
}

// String returns the mnemonic form of the instruction.
func (in Instruction) String() string {
	return fmt.Sprintf("%v %02d", in.Opcode, in.Operand)
}
