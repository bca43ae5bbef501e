package cpu

import (
	"iter"
	"slices"
)

// Memory is a fixed size store of numeric cells.
type Memory struct {
	cell []float64
}

// NewMemory creates a zero filled memory of size cells.
func NewMemory(size uint) (mem *Memory) {
	mem = &Memory{
		cell: make([]float64, size),
	}
	return
}

// Size returns the number of cells.
func (mem *Memory) Size() int {
	return len(mem.cell)
}

// Valid returns true if address is inside of memory.
func (mem *Memory) Valid(address int) bool {
	return address >= 0 && address < len(mem.cell)
}

// Read returns the value at address.
func (mem *Memory) Read(address int) (value float64, err error) {
	if !mem.Valid(address) {
		err = ErrAddress(address)
		return
	}

	value = mem.cell[address]
	return
}

// Write sets the value at address.
func (mem *Memory) Write(address int, value float64) (err error) {
	if !mem.Valid(address) {
		err = ErrAddress(address)
		return
	}

	mem.cell[address] = value
	return
}

// Clear zeros all cells.
func (mem *Memory) Clear() {
	clear(mem.cell)
}

// Cells iterates over all (address, value) pairs.
func (mem *Memory) Cells() iter.Seq2[int, float64] {
	return slices.All(mem.cell)
}

// Snapshot returns a copy of all cells.
func (mem *Memory) Snapshot() []float64 {
	return slices.Clone(mem.cell)
}
