// Package cpu implements the execution engine and assembler for the
// accumulator computer.
//
// The machine has a fixed number of memory cells, each holding a signed
// number that may carry a fraction, an accumulator, and a program counter.
// An instruction word is a memory cell viewed as opcode*100 + operand, where
// the operand is the address of the cell the instruction works on.
//
// Every run starts at address 0 and proceeds fetch, advance, decode, execute
// until a HALT instruction, an unrecognized opcode, or a fault.
//
// The assembler accepts a mnemonic form of the instruction set, with labels,
// equates, and compile-time expression evaluation.
package cpu
