package cpu

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		word    float64
		opcode  Opcode
		operand int
	}){
		{"read", 1007, OP_READ, 7},
		{"halt", 4300, OP_HALT, 0},
		{"branch", 4010, OP_BRANCH, 10},
		{"zero", 0, Opcode(0), 0},
		{"data", 99, Opcode(0), 99},
		{"wide", 12345, Opcode(123), 45},
		{"negative", -1, Opcode(0), 99},
		{"negative_op", -2107, Opcode(-21), 93},
		{"negative_zero", math.Copysign(0, -1), Opcode(0), 0},
	}

	for _, entry := range table {
		op, operand, err := Decode(entry.word)
		assert.NoError(err, entry.name)
		assert.Equal(entry.opcode, op, entry.name)
		assert.Equal(entry.operand, operand, entry.name)
	}
}

func TestDecode_Malformed(t *testing.T) {
	assert := assert.New(t)

	for _, word := range []float64{
		10.5,
		-0.25,
		math.NaN(),
		math.Inf(1),
		math.Inf(-1),
		1e300,
	} {
		_, _, err := Decode(word)
		assert.ErrorIs(err, ErrWord(0), "%v", word)
	}
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(float64(1007), Encode(OP_READ, 7))
	assert.Equal(float64(4300), Encode(OP_HALT, 0))

	for op := range Opcodes() {
		for operand := range OPERAND_LIMIT {
			dop, doperand, err := Decode(Encode(op, operand))
			assert.NoError(err)
			assert.Equal(op, dop)
			assert.Equal(operand, doperand)
		}
	}
}

func TestOpcode_String(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("READ", OP_READ.String())
	assert.Equal("WRITE", OP_WRITE.String())
	assert.Equal("STORE", OP_STORE.String())
	assert.Equal("DIV", OP_DIV.String())
	assert.Equal("BRANCHNEG", OP_BRANCHNEG.String())
	assert.Equal("BRANCHZERO", OP_BRANCHZERO.String())
	assert.Equal("HALT", OP_HALT.String())
	assert.Equal("Opcode(12)", Opcode(12).String())

	assert.Equal("ADD 09", Instruction{OP_ADD, 9}.String())
}

func TestOpcode_Valid(t *testing.T) {
	assert := assert.New(t)

	count := 0
	for op := range Opcodes() {
		assert.True(op.Valid(), op.String())
		count++
	}
	assert.Equal(12, count)

	for _, op := range []Opcode{0, 1, 12, 22, 34, 44, 99, -10} {
		assert.False(op.Valid(), op.String())
	}
}

func TestLookupOpcode(t *testing.T) {
	assert := assert.New(t)

	op, ok := LookupOpcode("branchzero")
	assert.True(ok)
	assert.Equal(OP_BRANCHZERO, op)

	op, ok = LookupOpcode("Read")
	assert.True(ok)
	assert.Equal(OP_READ, op)

	_, ok = LookupOpcode("jump")
	assert.False(ok)
}
