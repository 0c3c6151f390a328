package intcode

import (
	"errors"
	"fmt"
)

// Package errors. Every *Error matches exactly one of these via errors.Is.
var (
	// ErrInvalidOpcode is returned when the low two digits of a cell name no opcode.
	ErrInvalidOpcode = errors.New("invalid opcode")

	// ErrInvalidParameterMode is returned when a mode digit is neither 0 nor 1.
	ErrInvalidParameterMode = errors.New("invalid parameter mode")

	// ErrNotEnoughParameters is returned when an instruction runs past the end of memory.
	ErrNotEnoughParameters = errors.New("not enough parameters")

	// ErrAddressOutOfRange is returned when a dereference, write or jump target is out of bounds.
	ErrAddressOutOfRange = errors.New("address out of range")

	// ErrReadModeMismatch signals an executor passed the wrong number of modes to the resolver.
	ErrReadModeMismatch = errors.New("read mode mismatch")

	// ErrInput is returned when the input adapter fails to produce a value.
	ErrInput = errors.New("input failed")

	// ErrOutput is returned when the output adapter fails to accept a value.
	ErrOutput = errors.New("output failed")

	// ErrStepLimitExceeded is returned when ProgramOpts.MaxSteps is exhausted.
	ErrStepLimitExceeded = errors.New("step limit exceeded")

	// ErrMissingHalt is returned when ProgramOpts.RequireHalt is set and the
	// program runs off the end of memory.
	ErrMissingHalt = errors.New("missing halt")

	// ErrNotRunnable is returned when Run is called on a program that already
	// halted or failed.
	ErrNotRunnable = errors.New("program is not runnable")
)

// ErrorKind classifies an Error.
type ErrorKind uint8

const (
	KindInvalidOpcode ErrorKind = iota + 1
	KindInvalidParameterMode
	KindNotEnoughParameters
	KindAddressOutOfRange
	KindReadModeMismatch
	KindInput
	KindOutput
	KindStepLimitExceeded
	KindMissingHalt
)

var kindSentinels = map[ErrorKind]error{
	KindInvalidOpcode:        ErrInvalidOpcode,
	KindInvalidParameterMode: ErrInvalidParameterMode,
	KindNotEnoughParameters:  ErrNotEnoughParameters,
	KindAddressOutOfRange:    ErrAddressOutOfRange,
	KindReadModeMismatch:     ErrReadModeMismatch,
	KindInput:                ErrInput,
	KindOutput:               ErrOutput,
	KindStepLimitExceeded:    ErrStepLimitExceeded,
	KindMissingHalt:          ErrMissingHalt,
}

// Sentinel returns the package-level error value for the kind.
func (k ErrorKind) Sentinel() error {
	if err, ok := kindSentinels[k]; ok {
		return err
	}
	return nil
}

// String returns the kind's description.
func (k ErrorKind) String() string {
	if err := k.Sentinel(); err != nil {
		return err.Error()
	}
	return fmt.Sprintf("unknown error kind %d", uint8(k))
}

// Error is a VM failure. Decode and resolve leave the address unset, except
// KindNotEnoughParameters which reports the last memory index; the run loop
// overwrites it with the address of the failing instruction.
type Error struct {
	Kind ErrorKind

	// Address is the absolute address of the instruction executing at failure
	// time. Only meaningful when HasAddress is set.
	Address    int
	HasAddress bool

	// Offset is the 0-indexed parameter whose mode digit was invalid
	// (KindInvalidParameterMode).
	Offset int

	// Operand is the out-of-range address (KindAddressOutOfRange).
	Operand int64

	// Expected and Got are the read parameter count and the number of modes
	// supplied (KindReadModeMismatch).
	Expected int
	Got      int

	// Err is the adapter failure behind KindInput and KindOutput.
	Err error
}

func newError(kind ErrorKind) *Error {
	return &Error{Kind: kind}
}

func invalidParameterMode(offset int) *Error {
	return &Error{Kind: KindInvalidParameterMode, Offset: offset}
}

func addressOutOfRange(operand int64) *Error {
	return &Error{Kind: KindAddressOutOfRange, Operand: operand}
}

func readModeMismatch(expected, got int) *Error {
	return &Error{Kind: KindReadModeMismatch, Expected: expected, Got: got}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var msg string
	switch e.Kind {
	case KindInvalidParameterMode:
		msg = fmt.Sprintf("%s for parameter at offset %d", e.Kind, e.Offset)
	case KindAddressOutOfRange:
		msg = fmt.Sprintf("%s: %d", e.Kind, e.Operand)
	case KindReadModeMismatch:
		msg = fmt.Sprintf("%s: instruction has %d read parameters, got %d modes", e.Kind, e.Expected, e.Got)
	case KindInput, KindOutput:
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Kind, e.Err)
		} else {
			msg = e.Kind.String()
		}
	default:
		msg = e.Kind.String()
	}
	if e.HasAddress {
		return fmt.Sprintf("%s at address %d", msg, e.Address)
	}
	return msg
}

// Is reports whether target is the sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target != nil && target == e.Kind.Sentinel()
}

// Unwrap returns the adapter failure, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// withAddress attaches the instruction address to err. Errors that are not
// *Error pass through unchanged.
func withAddress(err error, address int) error {
	var vmErr *Error
	if !errors.As(err, &vmErr) {
		return err
	}
	vmErr.Address = address
	vmErr.HasAddress = true
	return vmErr
}

// KindOf returns the kind of err, or 0 if err is not a VM error.
func KindOf(err error) ErrorKind {
	var vmErr *Error
	if errors.As(err, &vmErr) {
		return vmErr.Kind
	}
	return 0
}

// AddressOf returns the instruction address attached to err.
func AddressOf(err error) (int, bool) {
	var vmErr *Error
	if errors.As(err, &vmErr) && vmErr.HasAddress {
		return vmErr.Address, true
	}
	return 0, false
}

// IsAdapterError returns true if err came from the caller's input or output
// function rather than from the program itself.
func IsAdapterError(err error) bool {
	switch KindOf(err) {
	case KindInput, KindOutput:
		return true
	}
	return false
}
