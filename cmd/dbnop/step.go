package main

import (
	"errors"
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/chazu/dbn/vm"
	"github.com/chazu/dbn/vm/snapshot"
)

var log = commonlog.GetLogger("dbn.dbnop")

var errTerminated = errors.New("state is terminated")

// createSnapshot writes the zero state under a new run ID to path.
func createSnapshot(path string) (*snapshot.Snapshot, error) {
	snap := snapshot.New()
	if err := snapshot.WriteFile(path, snap); err != nil {
		return nil, err
	}
	log.Infof("new run %s at %s", snap.RunID, path)
	return snap, nil
}

func loadState(path string) (*vm.State, error) {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return snap.State()
}

// applyOpcode runs exactly one opcode against the snapshot at path. The
// snapshot is rewritten only when the handler succeeds.
func applyOpcode(path string, r *vm.Registry, name, arg string) (*vm.State, error) {
	snap, err := snapshot.ReadFile(path)
	if err != nil {
		return nil, err
	}
	st, err := snap.State()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if st.Terminated {
		return nil, fmt.Errorf("%s: %w", path, errTerminated)
	}

	if err := r.Call(name, st, arg); err != nil {
		return nil, err
	}

	if err := snapshot.WriteFile(path, snapshot.FromState(snap.RunID, st)); err != nil {
		return nil, err
	}
	log.Debugf("run %s: %s applied, %s", snap.RunID, name, st)
	return st, nil
}
