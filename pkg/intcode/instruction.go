package intcode

// Instruction executors. Each resolves its operands, applies its effect and
// returns the next instruction pointer, which is always within [0, len(memory)].

// add implements opcode 1.
func add(sys System, modes []ParameterMode) (int, error) {
	return binaryOp(sys, OpAdd, modes, func(a, b int64) int64 { return a + b })
}

// multiply implements opcode 2.
func multiply(sys System, modes []ParameterMode) (int, error) {
	return binaryOp(sys, OpMultiply, modes, func(a, b int64) int64 { return a * b })
}

// lessThan implements opcode 7.
func lessThan(sys System, modes []ParameterMode) (int, error) {
	return binaryOp(sys, OpLessThan, modes, func(a, b int64) int64 {
		if a < b {
			return 1
		}
		return 0
	})
}

func binaryOp(sys System, op Op, modes []ParameterMode, fn func(a, b int64) int64) (int, error) {
	values, addrs, err := resolveParameters(sys, layoutBinaryOp, modes)
	if err != nil {
		return 0, err
	}
	sys.WriteMemory(addrs[0], fn(values[0], values[1]))
	return sys.InstructionPointer() + op.Size(), nil
}

// storeInput implements opcode 3. Input is requested only once the write target
// has been validated.
func storeInput(sys System) (int, error) {
	_, addrs, err := resolveParameters(sys, layoutStore, nil)
	if err != nil {
		return 0, err
	}
	v, err := sys.ReadInput()
	if err != nil {
		return 0, &Error{Kind: KindInput, Err: err}
	}
	sys.WriteMemory(addrs[0], v)
	return sys.InstructionPointer() + OpStore.Size(), nil
}

// printOutput implements opcode 4.
func printOutput(sys System, mode ParameterMode) (int, error) {
	values, _, err := resolveParameters(sys, layoutPrint, []ParameterMode{mode})
	if err != nil {
		return 0, err
	}
	if err := sys.WriteOutput(values[0]); err != nil {
		return 0, &Error{Kind: KindOutput, Err: err}
	}
	return sys.InstructionPointer() + OpPrint.Size(), nil
}

// jumpIf implements opcodes 5 (cmp true) and 6 (cmp false). The target is
// not dereferenced; a target equal to len(memory) ends the run like falling
// off the tape. A taken jump outside [0, len(memory)] fails here with
// AddressOutOfRange(target), and the run loop attributes it to the jump's own
// address, not the target's.
func jumpIf(sys System, cmp bool, modes []ParameterMode) (int, error) {
	values, _, err := resolveParameters(sys, layoutJump, modes)
	if err != nil {
		return 0, err
	}
	if (values[0] != 0) != cmp {
		return sys.InstructionPointer() + OpJumpIfTrue.Size(), nil
	}
	target := values[1]
	if target < 0 || target > int64(sys.MemoryLen()) {
		return 0, addressOutOfRange(target)
	}
	return int(target), nil
}
