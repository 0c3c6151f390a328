package intcode

import (
	"errors"
	"io"

	"github.com/tliron/commonlog"
)

// State is the run state of a Program.
type State uint8

const (
	Running State = iota
	Halted
	Failed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// ProgramOpts configures a Program. The zero value gives the plain intcode
// semantics: no step budget and an implicit halt at the end of memory.
type ProgramOpts struct {
	// MaxSteps bounds the number of instructions executed. 0 is unlimited.
	MaxSteps uint64

	// RequireHalt makes running off the end of memory an error instead of a
	// successful termination.
	RequireHalt bool

	// Logger, if set, receives a debug trace of every instruction.
	Logger commonlog.Logger
}

// Program is a single intcode run. It owns a private copy of its memory and
// cannot be resumed once it halts or fails.
type Program struct {
	memory []int64
	ip     int

	state State
	err   error
	ran   bool

	meter *StepMeter
	opts  ProgramOpts

	// Bound for the duration of RunWithIO.
	input  InputFunc
	output OutputFunc
}

// New creates a program from a memory snapshot. The snapshot is copied.
func New(memory []int64, opts ...ProgramOpts) *Program {
	var o ProgramOpts
	if len(opts) > 0 {
		o = opts[0]
	}

	mem := make([]int64, len(memory))
	copy(mem, memory)

	p := &Program{
		memory: mem,
		meter:  NewStepMeter(o.MaxSteps),
		opts:   o,
	}
	if len(mem) == 0 {
		p.state = Halted
	}
	return p
}

// Run executes the program using text I/O: each store reads one decimal
// integer per line from in, each print writes one decimal integer to out
// with no separator.
func (p *Program) Run(in io.Reader, out io.Writer) error {
	return p.RunWithIO(ReaderInput(in), WriterOutput(out, ""))
}

// RunWithIO executes the program until it halts or fails. input is called
// once per store instruction and output once per print instruction. Memory
// written before a failure is left in place.
func (p *Program) RunWithIO(input InputFunc, output OutputFunc) error {
	if p.ran {
		return ErrNotRunnable
	}
	p.ran = true

	p.input, p.output = input, output
	defer func() {
		p.input, p.output = nil, nil
	}()

	for p.state == Running {
		if err := p.step(); err != nil {
			p.state = Failed
			p.err = err
		}
	}
	return p.err
}

// step executes the instruction at the instruction pointer.
func (p *Program) step() error {
	ip := p.ip

	opcode, err := Parse(p.memory[ip])
	if err != nil {
		return withAddress(err, ip)
	}
	if err := p.meter.Consume(); err != nil {
		return withAddress(err, ip)
	}
	if p.opts.Logger != nil {
		p.opts.Logger.Debugf("ip=%d cell=%d op=%s", ip, p.memory[ip], opcode)
	}

	if opcode.Op == OpHalt {
		p.state = Halted
		return nil
	}

	next, err := p.execute(opcode)
	if err != nil {
		return withAddress(err, ip)
	}

	p.ip = next
	if next == len(p.memory) {
		if p.opts.RequireHalt {
			return withAddress(newError(KindMissingHalt), next)
		}
		p.state = Halted
	}
	return nil
}

// execute dispatches a decoded opcode to its executor.
func (p *Program) execute(o Opcode) (int, error) {
	switch o.Op {
	case OpAdd:
		return add(p, o.ReadModes())
	case OpMultiply:
		return multiply(p, o.ReadModes())
	case OpStore:
		return storeInput(p)
	case OpPrint:
		return printOutput(p, o.Modes[0])
	case OpJumpIfTrue:
		return jumpIf(p, true, o.ReadModes())
	case OpJumpIfFalse:
		return jumpIf(p, false, o.ReadModes())
	case OpLessThan:
		return lessThan(p, o.ReadModes())
	default:
		// Parse only produces the families above.
		return 0, newError(KindInvalidOpcode)
	}
}

// State returns the run state.
func (p *Program) State() State {
	return p.state
}

// Err returns the error the program failed with, or nil.
func (p *Program) Err() error {
	return p.err
}

// Memory returns a copy of the memory tape.
func (p *Program) Memory() []int64 {
	mem := make([]int64, len(p.memory))
	copy(mem, p.memory)
	return mem
}

// Steps returns the number of instructions executed, halt included.
func (p *Program) Steps() uint64 {
	return p.meter.Used()
}

// StepBudget returns the MaxSteps limit and the steps left under it. Both are
// 0 when the program runs unbounded.
func (p *Program) StepBudget() (limit, remaining uint64) {
	return p.meter.Limit(), p.meter.Remaining()
}

// System interface implementation

func (p *Program) MemoryLen() int {
	return len(p.memory)
}

func (p *Program) ReadMemory(addr int) int64 {
	return p.memory[addr]
}

func (p *Program) WriteMemory(addr int, v int64) {
	p.memory[addr] = v
}

func (p *Program) InstructionPointer() int {
	return p.ip
}

func (p *Program) SetInstructionPointer(ip int) {
	p.ip = ip
}

func (p *Program) ReadInput() (int64, error) {
	if p.input == nil {
		return 0, errNoInput
	}
	return p.input()
}

func (p *Program) WriteOutput(v int64) error {
	if p.output == nil {
		return errNoOutput
	}
	return p.output(v)
}

var (
	errNoInput  = errors.New("no input source")
	errNoOutput = errors.New("no output sink")
)
