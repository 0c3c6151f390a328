// Package intcode implements the intcode virtual machine.
//
// An intcode program is a flat sequence of signed 64-bit integers. Opcodes and
// data share one address space: the low two decimal digits of the cell at the
// instruction pointer select the operation and the higher digits select a
// parameter mode for each operand the instruction reads.
//
// Opcodes:
//   - 1  add            [r0 r1 w]  w = r0 + r1
//   - 2  multiply       [r0 r1 w]  w = r0 * r1
//   - 3  store          [w]        w = input
//   - 4  print          [r0]       output r0
//   - 5  jump-if-true   [r0 r1]    if r0 != 0 jump to r1
//   - 6  jump-if-false  [r0 r1]    if r0 == 0 jump to r1
//   - 7  less-than      [r0 r1 w]  w = r0 < r1 ? 1 : 0
//   - 99 halt
package intcode

import "fmt"

// Op is an opcode family, the low two decimal digits of an instruction cell.
type Op uint8

// Opcode families.
const (
	OpAdd         Op = 1
	OpMultiply    Op = 2
	OpStore       Op = 3
	OpPrint       Op = 4
	OpJumpIfTrue  Op = 5
	OpJumpIfFalse Op = 6
	OpLessThan    Op = 7
	OpHalt        Op = 99
)

// MaxReadParams is the largest number of read parameters any opcode takes.
const MaxReadParams = 2

var opNames = map[Op]string{
	OpAdd:         "add",
	OpMultiply:    "mul",
	OpStore:       "store",
	OpPrint:       "print",
	OpJumpIfTrue:  "jit",
	OpJumpIfFalse: "jif",
	OpLessThan:    "lt",
	OpHalt:        "halt",
}

// String returns the opcode mnemonic.
func (op Op) String() string {
	if name, ok := opNames[op]; ok {
		return name
	}
	return fmt.Sprintf("op(%d)", uint8(op))
}

// Reads returns the number of read parameters for the family.
func (op Op) Reads() int {
	switch op {
	case OpAdd, OpMultiply, OpJumpIfTrue, OpJumpIfFalse, OpLessThan:
		return 2
	case OpPrint:
		return 1
	default:
		return 0
	}
}

// Size returns the instruction length in cells, opcode cell included.
func (op Op) Size() int {
	switch op {
	case OpAdd, OpMultiply, OpLessThan:
		return 4
	case OpJumpIfTrue, OpJumpIfFalse:
		return 3
	case OpStore, OpPrint:
		return 2
	default:
		return 1
	}
}

// ParameterMode selects how a read operand is interpreted.
type ParameterMode uint8

const (
	// Position mode: the operand is an address to dereference.
	Position ParameterMode = 0
	// Immediate mode: the operand is the value.
	Immediate ParameterMode = 1
)

// String returns the mode name.
func (m ParameterMode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Opcode is a decoded instruction cell. Only the first Op.Reads() entries of
// Modes are meaningful; the rest are Position.
type Opcode struct {
	Op    Op
	Modes [MaxReadParams]ParameterMode
}

// ReadModes returns the modes of the read parameters in order.
func (o Opcode) ReadModes() []ParameterMode {
	return o.Modes[:o.Op.Reads()]
}

// String returns a debug representation, e.g. "add(immediate,position)".
func (o Opcode) String() string {
	modes := o.ReadModes()
	if len(modes) == 0 {
		return o.Op.String()
	}
	s := o.Op.String() + "("
	for i, m := range modes {
		if i > 0 {
			s += ","
		}
		s += m.String()
	}
	return s + ")"
}

// Parse decodes a raw instruction cell. It is total: every int64 yields either
// an Opcode or an *Error of kind KindInvalidOpcode or KindInvalidParameterMode.
func Parse(raw int64) (Opcode, error) {
	var op Op
	switch raw % 100 {
	case 1:
		op = OpAdd
	case 2:
		op = OpMultiply
	case 3:
		op = OpStore
	case 4:
		op = OpPrint
	case 5:
		op = OpJumpIfTrue
	case 6:
		op = OpJumpIfFalse
	case 7:
		op = OpLessThan
	case 99:
		op = OpHalt
	default:
		return Opcode{}, newError(KindInvalidOpcode)
	}

	o := Opcode{Op: op}
	place := int64(100)
	for k := 0; k < op.Reads(); k++ {
		mode, err := parseMode(raw, place, k)
		if err != nil {
			return Opcode{}, err
		}
		o.Modes[k] = mode
		place *= 10
	}
	return o, nil
}

// parseMode reads the mode digit of parameter k at the given decimal place.
// raw is non-negative here since negative cells never decode to an opcode.
func parseMode(raw, place int64, k int) (ParameterMode, error) {
	switch (raw / place) % 10 {
	case 0:
		return Position, nil
	case 1:
		return Immediate, nil
	default:
		return 0, invalidParameterMode(k)
	}
}
