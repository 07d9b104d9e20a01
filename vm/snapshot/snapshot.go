// Package snapshot persists interpreter states between single-step
// invocations. A snapshot is the CBOR encoding of one vm.State plus the
// identifier of the program run it belongs to.
package snapshot

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/chazu/dbn/vm"
)

// Version is the current snapshot format version.
// Increment when making incompatible changes to the format.
const Version uint8 = 1

var (
	ErrVersionMismatch = errors.New("snapshot version mismatch")
	ErrCorruptSnapshot = errors.New("corrupt snapshot")
)

// Value is the wire form of a vm.Value.
type Value struct {
	Kind vm.Kind `cbor:"1,keyasint"`
	Int  int64   `cbor:"2,keyasint,omitempty"`
	Text string  `cbor:"3,keyasint,omitempty"`
}

// Binding is one variable of the state's environment.
type Binding struct {
	Name  string `cbor:"1,keyasint"`
	Value Value  `cbor:"2,keyasint"`
}

// Snapshot is the wire form of a vm.State. Env is sorted by name so equal
// states encode to equal bytes.
type Snapshot struct {
	Version    uint8     `cbor:"1,keyasint"`
	RunID      uuid.UUID `cbor:"2,keyasint"`
	Pointer    int64     `cbor:"3,keyasint"`
	Terminated bool      `cbor:"4,keyasint"`
	LineNo     int64     `cbor:"5,keyasint,omitempty"`
	Stack      []Value   `cbor:"6,keyasint"`
	Env        []Binding `cbor:"7,keyasint,omitempty"`
}

// New returns a snapshot of the zero State under a fresh run identifier.
func New() *Snapshot {
	return FromState(uuid.New(), &vm.State{})
}

// FromState captures st under runID.
func FromState(runID uuid.UUID, st *vm.State) *Snapshot {
	s := &Snapshot{
		Version:    Version,
		RunID:      runID,
		Pointer:    int64(st.Pointer),
		Terminated: st.Terminated,
		LineNo:     int64(st.LineNo),
		Stack:      make([]Value, 0, st.Stack.Len()),
	}
	for _, v := range st.Stack.Values() {
		s.Stack = append(s.Stack, encodeValue(v))
	}

	names := make([]string, 0, len(st.Env))
	for name := range st.Env {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		s.Env = append(s.Env, Binding{Name: name, Value: encodeValue(st.Env[name])})
	}
	return s
}

// State rebuilds the interpreter state held by s.
func (s *Snapshot) State() (*vm.State, error) {
	if s.Version != Version {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, s.Version, Version)
	}
	if s.Pointer < 0 {
		return nil, fmt.Errorf("%w: negative pointer %d", ErrCorruptSnapshot, s.Pointer)
	}

	values := make([]vm.Value, 0, len(s.Stack))
	for i, w := range s.Stack {
		v, err := decodeValue(w)
		if err != nil {
			return nil, fmt.Errorf("stack[%d]: %w", i, err)
		}
		values = append(values, v)
	}

	st := &vm.State{
		Stack:      vm.NewStack(values...),
		Pointer:    int(s.Pointer),
		Terminated: s.Terminated,
		LineNo:     int(s.LineNo),
	}
	for _, b := range s.Env {
		v, err := decodeValue(b.Value)
		if err != nil {
			return nil, fmt.Errorf("env %q: %w", b.Name, err)
		}
		st.Bind(b.Name, v)
	}
	return st, nil
}

func encodeValue(v vm.Value) Value {
	if v.IsText() {
		return Value{Kind: vm.KindText, Text: v.Text()}
	}
	return Value{Kind: vm.KindInteger, Int: int64(v.Integer())}
}

func decodeValue(w Value) (vm.Value, error) {
	switch w.Kind {
	case vm.KindInteger:
		return vm.FromInteger(int(w.Int)), nil
	case vm.KindText:
		return vm.FromText(w.Text), nil
	default:
		return vm.Value{}, fmt.Errorf("%w: unknown value kind %d", ErrCorruptSnapshot, w.Kind)
	}
}
