package intcode

// ParameterType says whether an instruction operand is read or written.
type ParameterType uint8

const (
	Read ParameterType = iota
	Write
)

// Parameter layouts shared by the executors.
var (
	layoutBinaryOp = []ParameterType{Read, Read, Write}
	layoutJump     = []ParameterType{Read, Read}
	layoutStore    = []ParameterType{Write}
	layoutPrint    = []ParameterType{Read}
)

// resolveParameters validates the instruction at the current instruction
// pointer and resolves its operands. Read operands come back as values in
// order; write operands come back as validated addresses and are never
// dereferenced.
func resolveParameters(sys System, types []ParameterType, modes []ParameterMode) ([]int64, []int, error) {
	reads := 0
	for _, t := range types {
		if t == Read {
			reads++
		}
	}
	if len(modes) != reads {
		return nil, nil, readModeMismatch(reads, len(modes))
	}

	size := sys.MemoryLen()
	ip := sys.InstructionPointer()
	if ip+1+len(types) > size {
		err := newError(KindNotEnoughParameters)
		err.Address = size - 1
		err.HasAddress = true
		return nil, nil, err
	}

	values := make([]int64, 0, reads)
	var addrs []int
	next := 0
	for i, t := range types {
		operand := sys.ReadMemory(ip + 1 + i)
		switch t {
		case Read:
			mode := modes[next]
			next++
			if mode == Immediate {
				values = append(values, operand)
				continue
			}
			addr, err := checkAddress(operand, size)
			if err != nil {
				return nil, nil, err
			}
			values = append(values, sys.ReadMemory(addr))
		case Write:
			addr, err := checkAddress(operand, size)
			if err != nil {
				return nil, nil, err
			}
			addrs = append(addrs, addr)
		}
	}

	return values, addrs, nil
}

// checkAddress converts a raw operand to an address inside [0, size).
func checkAddress(operand int64, size int) (int, error) {
	if operand < 0 || operand >= int64(size) {
		return 0, addressOutOfRange(operand)
	}
	return int(operand), nil
}
