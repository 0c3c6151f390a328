package intcode

// System is the capability set instruction executors run against. Program
// implements it; tests substitute lightweight fakes.
type System interface {
	// Memory access. Callers bounds-check addresses against MemoryLen.
	MemoryLen() int
	ReadMemory(addr int) int64
	WriteMemory(addr int, v int64)

	// Instruction pointer
	InstructionPointer() int
	SetInstructionPointer(ip int)

	// I/O
	ReadInput() (int64, error)
	WriteOutput(v int64) error
}

// InputFunc supplies one value per store instruction.
type InputFunc func() (int64, error)

// OutputFunc consumes one value per print instruction.
type OutputFunc func(v int64) error
