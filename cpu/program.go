package cpu

import (
	"iter"
)

// Line is a single source line of a program, and the cell it produced.
type Line struct {
	LineNo    int      // Source line number.
	Address   int      // Memory address of the cell.
	Words     []string // Source words.
	Value     float64  // Cell value.
	LinkLabel string   // Label to resolve into the operand.
}

// Program is a listing of memory cells and the source that produced them.
type Program struct {
	Lines    []Line
	Warnings []error // Recovered problems found while loading.
}

// Debug finds the source line for an address.
func (prog *Program) Debug(address int) (line *Line) {
	for n := range prog.Lines {
		if prog.Lines[n].Address == address {
			line = &prog.Lines[n]
		}
	}

	return
}

// Cells iterates over (address, value) of every line.
// A later line for the same address replaces an earlier one.
func (prog *Program) Cells() iter.Seq2[int, float64] {
	return func(yield func(address int, value float64) bool) {
		for _, line := range prog.Lines {
			if !yield(line.Address, line.Value) {
				return
			}
		}
	}
}

// Image returns a memory image of size cells.
func (prog *Program) Image(size int) (image []float64, err error) {
	image = make([]float64, size)
	for address, value := range prog.Cells() {
		if address < 0 || address >= size {
			err = ErrAddress(address)
			image = nil
			return
		}
		image[address] = value
	}

	return
}

// Load stores the program into memory, after zeroing it.
func (prog *Program) Load(mem *Memory) (err error) {
	image, err := prog.Image(mem.Size())
	if err != nil {
		return
	}

	mem.Clear()
	for address, value := range image {
		err = mem.Write(address, value)
		if err != nil {
			return
		}
	}

	return
}
