package vm

import (
	"fmt"
	"sort"
	"strings"
)

// State is the mutable record threaded through every opcode call.
//
// The driver owns construction and teardown. The zero State is valid: an
// empty stack, pointer 0, not terminated and no variables bound.
type State struct {
	Stack      Stack
	Pointer    int  // index of the next instruction to execute
	Terminated bool // once true the driver must stop

	// Env holds STORE/LOAD bindings. A nil map reads as empty.
	Env map[string]Value

	// LineNo is the source line last announced by SET_LINE_NO.
	LineNo int
}

// Advance moves the pointer to the next instruction.
func (st *State) Advance() {
	st.Pointer++
}

// Jump moves the pointer to target. Targets must be non-negative.
func (st *State) Jump(target int) error {
	if target < 0 {
		return fmt.Errorf("%w: negative jump target %d", ErrBadArgument, target)
	}
	st.Pointer = target
	return nil
}

// Terminate marks the state as finished.
func (st *State) Terminate() {
	st.Terminated = true
}

// Lookup returns the value bound to name, or Integer 0 if unbound.
func (st *State) Lookup(name string) Value {
	if v, ok := st.Env[name]; ok {
		return v
	}
	return Value{}
}

// Bind sets name to v, allocating the environment on first use.
func (st *State) Bind(name string, v Value) {
	if st.Env == nil {
		st.Env = make(map[string]Value)
	}
	st.Env[name] = v
}

// String returns a one-line summary, e.g.
//
//	pointer=1 terminated=false stack=[7] env={a: 3}
func (st *State) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "pointer=%d terminated=%t stack=%s", st.Pointer, st.Terminated, st.Stack.String())
	if len(st.Env) > 0 {
		names := make([]string, 0, len(st.Env))
		for name := range st.Env {
			names = append(names, name)
		}
		sort.Strings(names)
		b.WriteString(" env={")
		for i, name := range names {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s: %s", name, st.Env[name])
		}
		b.WriteByte('}')
	}
	if st.LineNo > 0 {
		fmt.Fprintf(&b, " line=%d", st.LineNo)
	}
	return b.String()
}
