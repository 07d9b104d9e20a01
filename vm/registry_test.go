package vm

import (
	"errors"
	"strings"
	"testing"
)

func noop(st *State, _ string) error {
	st.Advance()
	return nil
}

func TestRegistryPreservesOrder(t *testing.T) {
	r, err := NewRegistry(
		Opcode{OpcodeInfo{Name: OpEnd}, opEnd},
		Opcode{OpcodeInfo{Name: OpBinaryAdd}, opBinaryAdd},
	)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	got := r.Names()
	want := []string{"END", "BINARY_ADD"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d, want 2", r.Len())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	_, err := NewRegistry(
		Opcode{OpcodeInfo{Name: "A"}, noop},
		Opcode{OpcodeInfo{Name: "B"}, noop},
		Opcode{OpcodeInfo{Name: "A"}, noop},
	)
	if !errors.Is(err, ErrDuplicateOpcode) {
		t.Fatalf("err = %v, want ErrDuplicateOpcode", err)
	}
}

func TestRegistryRejectsIncompleteEntries(t *testing.T) {
	if _, err := NewRegistry(Opcode{OpcodeInfo{Name: ""}, noop}); err == nil {
		t.Error("empty name accepted")
	}
	if _, err := NewRegistry(Opcode{OpcodeInfo{Name: "X"}, nil}); err == nil {
		t.Error("nil handler accepted")
	}
}

func TestMustNewRegistryPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNewRegistry did not panic on duplicate")
		}
	}()
	MustNewRegistry(Opcode{OpcodeInfo{Name: "A"}, noop}, Opcode{OpcodeInfo{Name: "A"}, noop})
}

func TestRegistryNamesIsCopy(t *testing.T) {
	names := PublicOpcodes()
	names[0] = "CLOBBERED"
	if PublicOpcodes()[0] != OpEnd {
		t.Errorf("PublicOpcodes()[0] = %q after caller mutation, want END", PublicOpcodes()[0])
	}
}

func TestRegistryCustomCall(t *testing.T) {
	r := MustNewRegistry(Opcode{OpcodeInfo{Name: "NOP"}, noop})
	var st State
	if err := r.Call("NOP", &st, ""); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if st.Pointer != 1 {
		t.Errorf("Pointer = %d, want 1", st.Pointer)
	}
	if err := r.Call(OpEnd, &st, ""); !errors.Is(err, ErrUnknownOpcode) {
		t.Errorf("END on custom registry: err = %v, want ErrUnknownOpcode", err)
	}
}

// ---------------------------------------------------------------------------
// Default registry
// ---------------------------------------------------------------------------

func TestPublicOpcodesMatchTable(t *testing.T) {
	names := PublicOpcodes()
	if len(names) != len(builtinOpcodes) {
		t.Fatalf("PublicOpcodes() has %d names, table has %d", len(names), len(builtinOpcodes))
	}

	seen := make(map[string]bool)
	for i, name := range names {
		if name != builtinOpcodes[i].Name {
			t.Errorf("PublicOpcodes()[%d] = %q, want %q", i, name, builtinOpcodes[i].Name)
		}
		if seen[name] {
			t.Errorf("duplicate name %q", name)
		}
		seen[name] = true

		if _, ok := Lookup(name); !ok {
			t.Errorf("Lookup(%q) failed for a public opcode", name)
		}
	}
}

func TestPublicOpcodesStartWithEndAndAdd(t *testing.T) {
	names := PublicOpcodes()
	idx := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		return -1
	}
	if idx(OpEnd) != 0 {
		t.Errorf("END at %d, want 0", idx(OpEnd))
	}
	if idx(OpBinaryAdd) < 0 {
		t.Error("BINARY_ADD not registered")
	}
	if idx(OpEnd) > idx(OpBinaryAdd) {
		t.Error("END should be registered before BINARY_ADD")
	}
}

func TestAllOpcodesHaveMetadata(t *testing.T) {
	for _, name := range PublicOpcodes() {
		info, ok := Info(name)
		if !ok {
			t.Errorf("Info(%q) missing", name)
			continue
		}
		if info.Name != name {
			t.Errorf("Info(%q).Name = %q", name, info.Name)
		}
		if info.Doc == "" {
			t.Errorf("%s has no doc", name)
		}
		if name != strings.ToUpper(name) {
			t.Errorf("%s is not upper case", name)
		}
	}
}

func TestLookupUnknown(t *testing.T) {
	if _, ok := Lookup("NOPE"); ok {
		t.Error("Lookup(NOPE) succeeded")
	}
	var st State
	err := Call("NOPE", &st, "")
	if !errors.Is(err, ErrUnknownOpcode) {
		t.Fatalf("err = %v, want ErrUnknownOpcode", err)
	}
	var opErr *OpError
	if errors.As(err, &opErr) {
		t.Error("unknown opcode should not be reported as a handler failure")
	}
}

func TestLookupHandlerDirect(t *testing.T) {
	h, ok := Lookup(OpBinaryAdd)
	if !ok {
		t.Fatal("BINARY_ADD not found")
	}
	st := stateWith(0, ints(3, 4)...)
	if err := h(st, ""); err != nil {
		t.Fatalf("handler: %v", err)
	}
	assertStack(t, st, FromInteger(7))
	if st.Pointer != 1 || st.Terminated {
		t.Errorf("state = %s, want pointer 1 not terminated", st)
	}
}
