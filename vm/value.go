package vm

import (
	"fmt"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind uint8

const (
	// KindInteger is a signed whole number of the host's native int width.
	KindInteger Kind = iota
	// KindText is a sequence of characters.
	KindText
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"
	case KindText:
		return "Text"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is the tagged datum stored on the operand stack.
//
// The zero Value is Integer 0, which is also the value LOAD produces for an
// unbound variable.
type Value struct {
	kind Kind
	i    int
	s    string
}

// ---------------------------------------------------------------------------
// Constructors
// ---------------------------------------------------------------------------

// FromInteger returns an Integer value.
func FromInteger(n int) Value {
	return Value{kind: KindInteger, i: n}
}

// FromText returns a Text value.
func FromText(s string) Value {
	return Value{kind: KindText, s: s}
}

// FromBool returns Integer 1 for true and Integer 0 for false.
func FromBool(b bool) Value {
	if b {
		return FromInteger(1)
	}
	return FromInteger(0)
}

// ---------------------------------------------------------------------------
// Type checking and extraction
// ---------------------------------------------------------------------------

// Kind returns the variant held by v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsInteger returns true if v holds an Integer.
func (v Value) IsInteger() bool {
	return v.kind == KindInteger
}

// IsText returns true if v holds Text.
func (v Value) IsText() bool {
	return v.kind == KindText
}

// Integer returns the integer payload. Only meaningful if IsInteger.
func (v Value) Integer() int {
	return v.i
}

// Text returns the text payload. Only meaningful if IsText.
func (v Value) Text() string {
	return v.s
}

// AsInteger returns the integer payload or a TypeMismatchError.
func (v Value) AsInteger() (int, error) {
	if v.kind != KindInteger {
		return 0, &TypeMismatchError{Want: KindInteger, Got: v.kind}
	}
	return v.i, nil
}

// Equal reports whether v and other hold the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	if v.kind == KindText {
		return v.s == other.s
	}
	return v.i == other.i
}

// Truthy returns false for Integer 0 and empty Text, true otherwise.
func (v Value) Truthy() bool {
	if v.kind == KindText {
		return v.s != ""
	}
	return v.i != 0
}

// String renders integers bare and text quoted, e.g. 7 or "x".
func (v Value) String() string {
	if v.kind == KindText {
		return strconv.Quote(v.s)
	}
	return strconv.Itoa(v.i)
}
