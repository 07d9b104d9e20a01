package vm

import (
	"fmt"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("dbn.vm")

// Registry maps opcode names to handlers. It is immutable once built and
// safe for concurrent readers.
type Registry struct {
	ops   map[string]Opcode
	names []string
}

// NewRegistry builds a registry from ops. Registration order is preserved
// in Names. Duplicate or empty names and nil handlers are rejected.
func NewRegistry(ops ...Opcode) (*Registry, error) {
	r := &Registry{
		ops:   make(map[string]Opcode, len(ops)),
		names: make([]string, 0, len(ops)),
	}
	for i, op := range ops {
		if op.Name == "" {
			return nil, fmt.Errorf("opcode %d: empty name", i)
		}
		if op.Handler == nil {
			return nil, fmt.Errorf("opcode %s: nil handler", op.Name)
		}
		if _, dup := r.ops[op.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateOpcode, op.Name)
		}
		r.ops[op.Name] = op
		r.names = append(r.names, op.Name)
	}
	return r, nil
}

// MustNewRegistry is like NewRegistry but panics on error. It is meant for
// package-level tables that are fixed at compile time.
func MustNewRegistry(ops ...Opcode) *Registry {
	r, err := NewRegistry(ops...)
	if err != nil {
		panic(fmt.Sprintf("vm: invalid opcode table: %v", err))
	}
	return r
}

// Names returns the registered opcode names in registration order. The
// slice is a copy.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered opcodes.
func (r *Registry) Len() int {
	return len(r.names)
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	op, ok := r.ops[name]
	if !ok {
		return nil, false
	}
	return op.Handler, true
}

// Info returns the metadata registered under name.
func (r *Registry) Info(name string) (OpcodeInfo, bool) {
	op, ok := r.ops[name]
	return op.OpcodeInfo, ok
}

// Call invokes the opcode name on st with arg. Unknown names fail with
// ErrUnknownOpcode; handler failures are wrapped in an *OpError carrying
// the pointer the opcode was invoked at.
func (r *Registry) Call(name string, st *State, arg string) error {
	op, ok := r.ops[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownOpcode, name)
	}

	pointer := st.Pointer
	if log.AllowLevel(commonlog.Debug) {
		log.Debugf("[%04d] %-18s %-8q depth=%d", pointer, name, arg, st.Stack.Len())
	}

	if err := op.Handler(st, arg); err != nil {
		log.Debugf("[%04d] %s failed: %v", pointer, name, err)
		return &OpError{Op: name, Pointer: pointer, Err: err}
	}
	return nil
}

// ---------------------------------------------------------------------------
// Default registry
// ---------------------------------------------------------------------------

var defaultRegistry = MustNewRegistry(builtinOpcodes...)

// DefaultRegistry returns the process-wide registry of built-in opcodes.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// PublicOpcodes returns the built-in opcode names in registration order.
func PublicOpcodes() []string {
	return defaultRegistry.Names()
}

// Lookup returns the built-in handler registered under name.
func Lookup(name string) (Handler, bool) {
	return defaultRegistry.Lookup(name)
}

// Info returns the metadata of the built-in opcode name.
func Info(name string) (OpcodeInfo, bool) {
	return defaultRegistry.Info(name)
}

// Call invokes a built-in opcode. See Registry.Call.
func Call(name string, st *State, arg string) error {
	return defaultRegistry.Call(name, st, arg)
}
