package io

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezrec/compsim/cpu"
)

func TestLoadProgram(t *testing.T) {
	assert := assert.New(t)

	prog, err := LoadProgram(strings.NewReader("1007\n 1008 \n\n2007\n+4300\n"))
	require.NoError(t, err)

	assert.Empty(prog.Warnings)

	image, err := prog.Image(cpu.MEMORY_SIZE)
	assert.NoError(err)
	assert.Equal([]float64{1007, 1008, 2007, 4300, 0}, image[:5])

	assert.Equal(4, prog.Lines[2].LineNo)
	assert.Equal(2, prog.Lines[2].Address)
}

func TestLoadProgram_Malformed(t *testing.T) {
	assert := assert.New(t)

	prog, err := LoadProgram(strings.NewReader("1007\nten\n10.5\n4300"))
	require.NoError(t, err)

	assert.Len(prog.Warnings, 2)

	var syntax cpu.ErrSyntax
	if assert.True(errors.As(prog.Warnings[0], &syntax)) {
		assert.Equal(2, syntax.LineNo)
		assert.Equal("ten", syntax.Line)
		assert.Equal(cpu.ErrParseNumber("ten"), syntax.Err)
	}

	image, err := prog.Image(cpu.MEMORY_SIZE)
	assert.NoError(err)
	assert.Equal([]float64{1007, 0, 0, 4300}, image[:4])
}

func TestLoadProgram_Capacity(t *testing.T) {
	assert := assert.New(t)

	prog, err := LoadProgram(strings.NewReader(strings.Repeat("4300\n", 11)))
	require.NoError(t, err)

	mem := cpu.NewMemory(10)
	assert.ErrorIs(prog.Load(mem), cpu.ErrAddress(0))
}

func TestEnterProgram(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tm := &Terminal{
		Input:  strings.NewReader("1007\nbogus\n4300\nEXIT\n1100\n"),
		Output: output,
	}

	prog, err := EnterProgram(tm, cpu.MEMORY_SIZE)
	require.NoError(t, err)

	assert.Len(prog.Lines, 2)
	assert.Equal(0, prog.Lines[0].Address)
	assert.Equal(float64(1007), prog.Lines[0].Value)
	assert.Equal(1, prog.Lines[1].Address)
	assert.Equal(float64(4300), prog.Lines[1].Value)

	assert.Contains(output.String(), "Invalid instruction. Please try again.")

	// The rest of the input is left for the next reader.
	line, err := tm.ReadLine("")
	assert.NoError(err)
	assert.Equal("1100", line)
}

func TestEnterProgram_EOF(t *testing.T) {
	assert := assert.New(t)

	tm := &Terminal{Input: strings.NewReader("2007\n4300")}

	prog, err := EnterProgram(tm, cpu.MEMORY_SIZE)
	assert.NoError(err)
	assert.Len(prog.Lines, 2)
}

func TestEnterProgram_Full(t *testing.T) {
	assert := assert.New(t)

	output := &bytes.Buffer{}
	tm := &Terminal{
		Input:  strings.NewReader("1\n2\n3\n"),
		Output: output,
	}

	prog, err := EnterProgram(tm, 2)
	assert.NoError(err)
	assert.Len(prog.Lines, 2)
	assert.Contains(output.String(), ErrMemoryFull.Error())
}
