package vm

import "strings"

// Stack is the LIFO operand stack. It exclusively owns its elements: Push
// moves a value in, Pop hands it back to the caller.
//
// The zero Stack is empty and ready to use.
type Stack struct {
	values []Value
}

// NewStack returns a stack holding vs, bottom first.
func NewStack(vs ...Value) Stack {
	values := make([]Value, len(vs))
	copy(values, vs)
	return Stack{values: values}
}

// Push appends v to the top of the stack.
func (s *Stack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop removes and returns the top value. On an empty stack it returns
// ErrStackUnderflow and leaves the stack unchanged.
func (s *Stack) Pop() (Value, error) {
	n := len(s.values)
	if n == 0 {
		return Value{}, ErrStackUnderflow
	}
	v := s.values[n-1]
	s.values[n-1] = Value{}
	s.values = s.values[:n-1]
	return v, nil
}

// Peek returns the value depth positions below the top (0 = top) without
// removing it.
func (s *Stack) Peek(depth int) (Value, error) {
	if depth < 0 || depth >= len(s.values) {
		return Value{}, &UnderflowError{Need: depth + 1, Have: len(s.values)}
	}
	return s.values[len(s.values)-1-depth], nil
}

// Require fails with an UnderflowError if fewer than n values are present.
func (s *Stack) Require(n int) error {
	if len(s.values) < n {
		return &UnderflowError{Need: n, Have: len(s.values)}
	}
	return nil
}

// Len returns the number of values on the stack.
func (s *Stack) Len() int {
	return len(s.values)
}

// Values returns a copy of the stack contents, bottom first.
func (s *Stack) Values() []Value {
	out := make([]Value, len(s.values))
	copy(out, s.values)
	return out
}

// top returns the top n values, bottom first, sharing the backing array.
// Callers must not retain the slice across a mutation.
func (s *Stack) top(n int) []Value {
	return s.values[len(s.values)-n:]
}

// String renders the stack as [a, b, c], bottom first.
func (s *Stack) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}
