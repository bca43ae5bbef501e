package emulator

import (
	"strings"

	"github.com/ezrec/compsim/cpu"
)

// DemoProgram reads two numbers, and writes their product.
func DemoProgram() (prog *cpu.Program) {
	listing := []struct {
		address int
		op      cpu.Opcode
		operand int
	}{
		{0, cpu.OP_READ, 7},
		{1, cpu.OP_READ, 8},
		{2, cpu.OP_LOAD, 7},
		{3, cpu.OP_MUL, 8},
		{4, cpu.OP_STORE, 9},
		{5, cpu.OP_WRITE, 9},
		{6, cpu.OP_BRANCH, 10},
		{10, cpu.OP_HALT, 0},
	}

	prog = &cpu.Program{}
	for n, entry := range listing {
		in := cpu.Instruction{Opcode: entry.op, Operand: entry.operand}
		prog.Lines = append(prog.Lines, cpu.Line{
			LineNo:  n + 1,
			Address: entry.address,
			Words:   strings.Fields(in.String()),
			Value:   cpu.Encode(entry.op, entry.operand),
		})
	}

	return
}
