package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/chazu/dbn/vm"
	"github.com/chazu/dbn/vm/snapshot"
)

func TestWriteListText(t *testing.T) {
	var buf bytes.Buffer
	if err := writeList(&buf, vm.DefaultRegistry(), "text"); err != nil {
		t.Fatalf("writeList: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if got, want := len(lines), vm.DefaultRegistry().Len()+1; got != want {
		t.Fatalf("listing has %d lines, want %d", got, want)
	}
	if !strings.HasPrefix(lines[0], "NAME") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], vm.OpEnd) {
		t.Errorf("first entry = %q, want END", lines[1])
	}
}

func TestWriteListYAML(t *testing.T) {
	var buf bytes.Buffer
	if err := writeList(&buf, vm.DefaultRegistry(), "yaml"); err != nil {
		t.Fatalf("writeList: %v", err)
	}

	var entries []opcodeEntry
	if err := yaml.Unmarshal(buf.Bytes(), &entries); err != nil {
		t.Fatalf("yaml.Unmarshal: %v", err)
	}
	names := vm.PublicOpcodes()
	if len(entries) != len(names) {
		t.Fatalf("yaml has %d entries, want %d", len(entries), len(names))
	}
	for i, e := range entries {
		if e.Name != names[i] {
			t.Errorf("entries[%d].Name = %q, want %q", i, e.Name, names[i])
		}
	}
	if entries[0].Doc == "" {
		t.Error("END has no doc in yaml listing")
	}
}

func TestWriteListUnknownFormat(t *testing.T) {
	if err := writeList(&bytes.Buffer{}, vm.DefaultRegistry(), "xml"); err == nil {
		t.Error("writeList accepted format xml")
	}
}

func TestApplyOpcodeSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dbns")
	snap, err := createSnapshot(path)
	if err != nil {
		t.Fatalf("createSnapshot: %v", err)
	}

	steps := []struct{ op, arg string }{
		{vm.OpLoadInteger, "3"},
		{vm.OpLoadInteger, "4"},
		{vm.OpBinaryAdd, ""},
		{vm.OpStore, "x"},
	}
	for _, s := range steps {
		if _, err := applyOpcode(path, vm.DefaultRegistry(), s.op, s.arg); err != nil {
			t.Fatalf("%s %s: %v", s.op, s.arg, err)
		}
	}

	st, err := loadState(path)
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	if st.Pointer != 4 || st.Stack.Len() != 0 {
		t.Errorf("state = %s, want pointer 4 and empty stack", st)
	}
	if x := st.Lookup("x"); !x.Equal(vm.FromInteger(7)) {
		t.Errorf("x = %v, want 7", x)
	}

	saved, err := snapshot.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if saved.RunID != snap.RunID {
		t.Errorf("RunID changed from %s to %s", snap.RunID, saved.RunID)
	}
}

func TestApplyOpcodeFailureKeepsSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dbns")
	if _, err := createSnapshot(path); err != nil {
		t.Fatalf("createSnapshot: %v", err)
	}
	if _, err := applyOpcode(path, vm.DefaultRegistry(), vm.OpLoadInteger, "5"); err != nil {
		t.Fatalf("LOAD_INTEGER: %v", err)
	}

	_, err := applyOpcode(path, vm.DefaultRegistry(), vm.OpBinaryAdd, "")
	if !errors.Is(err, vm.ErrStackUnderflow) {
		t.Fatalf("BINARY_ADD on one value: err = %v, want ErrStackUnderflow", err)
	}
	if _, err := applyOpcode(path, vm.DefaultRegistry(), "NOPE", ""); !errors.Is(err, vm.ErrUnknownOpcode) {
		t.Errorf("NOPE: err = %v, want ErrUnknownOpcode", err)
	}

	st, err := loadState(path)
	if err != nil {
		t.Fatalf("loadState: %v", err)
	}
	if st.Pointer != 1 || st.Stack.Len() != 1 {
		t.Errorf("state = %s after failed steps, want pointer 1 with one value", st)
	}
}

func TestApplyOpcodeAfterEnd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.dbns")
	if _, err := createSnapshot(path); err != nil {
		t.Fatalf("createSnapshot: %v", err)
	}
	st, err := applyOpcode(path, vm.DefaultRegistry(), vm.OpEnd, "")
	if err != nil {
		t.Fatalf("END: %v", err)
	}
	if !st.Terminated {
		t.Fatalf("state = %s, want terminated", st)
	}
	if _, err := applyOpcode(path, vm.DefaultRegistry(), vm.OpLoadInteger, "1"); !errors.Is(err, errTerminated) {
		t.Errorf("step after END: err = %v, want errTerminated", err)
	}
}

func TestApplyOpcodeMissingSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.dbns")
	if _, err := applyOpcode(path, vm.DefaultRegistry(), vm.OpEnd, ""); err == nil {
		t.Error("applyOpcode on a missing snapshot succeeded")
	}
}
