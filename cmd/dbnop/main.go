// dbnop inspects the opcode registry and applies single opcodes to a saved
// interpreter state.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/dbn/config"
	"github.com/chazu/dbn/server"
	"github.com/chazu/dbn/vm"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	list := flag.Bool("list", false, "List the registered opcodes")
	format := flag.String("format", "text", "Output format for -list: text or yaml")
	newState := flag.Bool("new", false, "Write a fresh state snapshot")
	statePath := flag.String("state", "", "Snapshot file (default from dbn.toml, else state.dbns)")
	op := flag.String("op", "", "Apply one opcode to the snapshot")
	arg := flag.String("arg", "", "Argument text for -op")
	lspMode := flag.Bool("lsp", false, "Run the opcode language server on stdio")
	configDir := flag.String("config", ".", "Directory to search upward for dbn.toml")
	verbosity := flag.Int("v", -1, "Log verbosity (overrides dbn.toml)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dbnop [options]\n\n")
		fmt.Fprintf(os.Stderr, "Lists opcodes and steps a saved interpreter state one opcode at a time.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  dbnop -list                       # Print the opcode table\n")
		fmt.Fprintf(os.Stderr, "  dbnop -list -format yaml          # Same, as YAML\n")
		fmt.Fprintf(os.Stderr, "  dbnop -new                        # Start a new run in state.dbns\n")
		fmt.Fprintf(os.Stderr, "  dbnop -op LOAD_INTEGER -arg 3     # Push 3 onto the saved stack\n")
		fmt.Fprintf(os.Stderr, "  dbnop -op BINARY_ADD              # Add the top two values\n")
		fmt.Fprintf(os.Stderr, "  dbnop -state                      # Print the saved state\n")
		fmt.Fprintf(os.Stderr, "  dbnop -lsp                        # Serve completion and hover\n")
	}
	flag.Parse()

	cfg, err := config.FindAndLoad(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg == nil {
		cfg = config.Default()
	}

	level := cfg.Log.Verbosity
	if *verbosity >= 0 {
		level = *verbosity
	}
	commonlog.Configure(level, cfg.LogFile())

	path := *statePath
	if path == "" {
		path = cfg.SnapshotPath()
	}

	switch {
	case *lspMode:
		if err := server.NewLSP(vm.DefaultRegistry(), cfg.Lsp.Name).Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}

	case *list:
		if err := writeList(os.Stdout, vm.DefaultRegistry(), *format); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

	case *newState:
		snap, err := createSnapshot(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("run %s -> %s\n", snap.RunID, path)

	case *op != "":
		st, err := applyOpcode(path, vm.DefaultRegistry(), *op, *arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(st)

	default:
		st, err := loadState(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(st)
	}
}
