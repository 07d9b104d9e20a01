package vm

import (
	"errors"
	"fmt"
)

// Error kinds raised by the stack, the opcode handlers and the registry.
// Match them with errors.Is; handlers wrap them with detail.
var (
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrDivisionByZero  = errors.New("division by zero")
	ErrBadArgument     = errors.New("bad opcode argument")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrDuplicateOpcode = errors.New("duplicate opcode")
)

// UnderflowError reports a stack that was shallower than an opcode needs.
type UnderflowError struct {
	Need int
	Have int
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("stack underflow: need %d values, have %d", e.Need, e.Have)
}

// Is lets errors.Is(err, ErrStackUnderflow) match.
func (e *UnderflowError) Is(target error) bool {
	return target == ErrStackUnderflow
}

// TypeMismatchError reports a value whose kind an opcode cannot accept.
type TypeMismatchError struct {
	Want Kind
	Got  Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("type mismatch: want %s, got %s", e.Want, e.Got)
}

// Is lets errors.Is(err, ErrTypeMismatch) match.
func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

// OpError is returned by Registry.Call when a handler fails. It records
// the opcode and the pointer it was invoked at so a driver can report the
// fault position.
type OpError struct {
	Op      string
	Pointer int
	Err     error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s at %d: %v", e.Op, e.Pointer, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func badArgument(op, arg string, err error) error {
	if err != nil {
		return fmt.Errorf("%w: %s %q: %v", ErrBadArgument, op, arg, err)
	}
	return fmt.Errorf("%w: %s %q", ErrBadArgument, op, arg)
}
