package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"math"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// MEMORY_SIZE is the memory size of the reference machine.
const MEMORY_SIZE = 100

// Console is the line based I/O channel used by READ and WRITE.
type Console interface {
	// Read returns the next line of input.
	Read() (text string, err error)
	// Write emits a value as a line of output.
	Write(value float64) error
}

// Warner is implemented by consoles that tell the user when malformed
// input was read as 0.
type Warner interface {
	Warn()
}

// Cpu is the execution engine: memory, registers, and run state.
type Cpu struct {
	Verbose bool               // Set to enable instruction tracing.
	Log     logrus.FieldLogger // Logger for tracing and warnings.

	Memory      *Memory // Program and data memory.
	Accumulator float64 // Implicit operand of arithmetic.
	Pc          int     // Address of the next instruction to fetch.
	Running     bool    // Cleared by HALT or a fault.

	Current   int // Address of the most recently fetched instruction.
	Ticks     int // Instructions executed in the current run.
	TickLimit int // If non-zero, maximum instructions per run.

	console Console
	busy    atomic.Bool
}

// NewCpu creates a halted CPU with size cells of zeroed memory.
func NewCpu(size uint) (cpu *Cpu) {
	cpu = &Cpu{
		Memory: NewMemory(size),
	}

	return
}

// Defines for the cpu, as mnemonic to opcode number.
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := map[string]string{}
	for op := range Opcodes() {
		defines["OP_"+op.String()] = strconv.Itoa(int(op))
	}
	return maps.All(defines)
}

// SetConsole attaches the console used by READ and WRITE.
func (cpu *Cpu) SetConsole(console Console) {
	cpu.console = console
}

// Console returns the attached console.
func (cpu *Cpu) Console() Console {
	return cpu.console
}

func (cpu *Cpu) log() logrus.FieldLogger {
	if cpu.Log == nil {
		return logrus.StandardLogger()
	}
	return cpu.Log
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{"pc", "acc", "run", "ticks"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "pc":
			strval = fmt.Sprintf("%02d", cpu.Pc)
		case "acc":
			strval = strconv.FormatFloat(cpu.Accumulator, 'f', -1, 64)
		case "run":
			strval = strconv.FormatBool(cpu.Running)
		case "ticks":
			strval = strconv.Itoa(cpu.Ticks)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

// Reset the CPU state.
// - Zeros memory and the accumulator.
// - Clears the program counter and statistics.
// - Leaves the CPU halted.
// Returns ErrBusy during a run.
func (cpu *Cpu) Reset() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	cpu.reset()

	return
}

func (cpu *Cpu) reset() {
	cpu.Memory.Clear()
	cpu.Accumulator = 0
	cpu.Pc = 0
	cpu.Current = 0
	cpu.Ticks = 0
	cpu.Running = false
}

// Load resets the CPU, and stores the program image in memory.
// An image that does not fit leaves the CPU untouched.
func (cpu *Cpu) Load(prog *Program) (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	_, err = prog.Image(cpu.Memory.Size())
	if err != nil {
		return
	}

	cpu.reset()
	err = prog.Load(cpu.Memory)

	return
}

// Start prepares a fresh run from address 0, to be stepped with Tick.
// Memory and the accumulator are left as they are.
func (cpu *Cpu) Start() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	cpu.start()

	return
}

func (cpu *Cpu) start() {
	cpu.Pc = 0
	cpu.Current = 0
	cpu.Ticks = 0
	cpu.Running = true
}

// Run starts a fresh run, and ticks until halted or faulted.
// Returns ErrBusy if a run is already in progress.
func (cpu *Cpu) Run() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	cpu.start()
	for cpu.Running {
		err = cpu.tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single fetch, advance, decode, execute cycle.
// A fault stops the run. Returns ErrBusy, and changes nothing, while Run
// or another Tick is in progress.
func (cpu *Cpu) Tick() (err error) {
	if !cpu.busy.CompareAndSwap(false, true) {
		err = ErrBusy
		return
	}
	defer cpu.busy.Store(false)

	err = cpu.tick()

	return
}

func (cpu *Cpu) tick() (err error) {
	if !cpu.Running {
		return
	}

	defer func() {
		if err != nil {
			cpu.Running = false
		}
	}()

	if cpu.TickLimit > 0 && cpu.Ticks >= cpu.TickLimit {
		err = ErrTickLimit
		return
	}

	cpu.Current = cpu.Pc
	word, err := cpu.Memory.Read(cpu.Pc)
	if err != nil {
		return
	}
	cpu.Pc++

	op, operand, err := Decode(word)
	if err != nil {
		return
	}

	if cpu.Verbose {
		cpu.log().WithFields(logrus.Fields{
			"address":     cpu.Current,
			"opcode":      op,
			"operand":     operand,
			"accumulator": cpu.Accumulator,
		}).Debug("cpu: tick")
	}

	cpu.Ticks++

	err = cpu.Execute(op, operand)
	if err != nil {
		err = errors.Join(ErrInstruction{Address: cpu.Current, Opcode: op, Operand: operand}, err)
		return
	}

	return
}

// Execute applies a single decoded instruction to memory and registers.
// A faulting instruction leaves memory and the accumulator untouched.
func (cpu *Cpu) Execute(op Opcode, operand int) (err error) {
	mem := cpu.Memory

	// Fetch the operand cell for instructions that reference memory.
	var value float64
	switch op {
	case OP_READ, OP_STORE:
		if !mem.Valid(operand) {
			err = ErrAddress(operand)
			return
		}
	case OP_WRITE, OP_LOAD, OP_ADD, OP_SUB, OP_MUL, OP_DIV:
		value, err = mem.Read(operand)
		if err != nil {
			return
		}
	}

	switch op {
	case OP_READ:
		value, err = cpu.read()
		if err != nil {
			return
		}
		err = mem.Write(operand, value)
	case OP_WRITE:
		if cpu.console == nil {
			err = ErrNoConsole
			return
		}
		err = cpu.console.Write(value)
		if err != nil {
			err = errors.Join(ErrConsole, err)
		}
	case OP_LOAD:
		cpu.Accumulator = value
	case OP_STORE:
		err = mem.Write(operand, cpu.Accumulator)
	case OP_ADD:
		cpu.Accumulator += value
	case OP_SUB:
		cpu.Accumulator -= value
	case OP_MUL:
		cpu.Accumulator *= value
	case OP_DIV:
		if value == 0 {
			err = ErrDivideByZero
			return
		}
		cpu.Accumulator /= value
	case OP_BRANCH:
		cpu.Pc = operand
	case OP_BRANCHNEG:
		if cpu.Accumulator < 0 {
			cpu.Pc = operand
		}
	case OP_BRANCHZERO:
		if cpu.Accumulator == 0 {
			cpu.Pc = operand
		}
	case OP_HALT:
		cpu.Running = false
	default:
		// An unrecognized opcode is an implicit HALT, not a fault.
		if cpu.Verbose {
			cpu.log().WithField("opcode", op).Debug("cpu: unrecognized opcode, halting")
		}
		cpu.Running = false
	}

	return
}

// ParseValue parses a console value. Decimal and exponent forms are
// accepted, as are inf and nan. Hex floats are rejected. Values too large
// to represent become signed infinity.
func ParseValue(text string) (value float64, err error) {
	digits := strings.TrimLeft(text, "+-")
	if len(digits) > 1 && digits[0] == '0' && (digits[1] == 'x' || digits[1] == 'X') {
		err = fmt.Errorf("%w: %q", ErrInputMalformed, text)
		return
	}

	value, err = strconv.ParseFloat(text, 64)
	if errors.Is(err, strconv.ErrRange) && math.IsInf(value, 0) {
		err = nil
	}
	if err != nil {
		value = 0
		err = fmt.Errorf("%w: %q", ErrInputMalformed, text)
	}

	return
}

// read gets a number from the console. Input that is not a number is
// reported, and read as 0.
func (cpu *Cpu) read() (value float64, err error) {
	if cpu.console == nil {
		err = ErrNoConsole
		return
	}

	text, err := cpu.console.Read()
	if err != nil {
		err = errors.Join(ErrConsole, err)
		return
	}

	text = strings.TrimSpace(text)
	value, perr := ParseValue(text)
	if perr != nil {
		value = 0
		if w, ok := cpu.console.(Warner); ok {
			w.Warn()
		}
		cpu.log().WithField("input", text).Warn(perr.Error())
	}

	return
}
