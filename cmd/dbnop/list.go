package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/chazu/dbn/vm"
)

// opcodeEntry is the listing form of one registry entry.
type opcodeEntry struct {
	Name   string `yaml:"name"`
	Pops   int    `yaml:"pops"`
	Pushes int    `yaml:"pushes"`
	Arg    string `yaml:"arg,omitempty"`
	Doc    string `yaml:"doc"`
}

func listEntries(r *vm.Registry) []opcodeEntry {
	names := r.Names()
	entries := make([]opcodeEntry, 0, len(names))
	for _, name := range names {
		info, _ := r.Info(name)
		entries = append(entries, opcodeEntry{
			Name:   info.Name,
			Pops:   info.StackPop,
			Pushes: info.StackPush,
			Arg:    info.Arg,
			Doc:    info.Doc,
		})
	}
	return entries
}

// writeList prints the registry in registration order. A stack effect of -1
// means it depends on the argument.
func writeList(w io.Writer, r *vm.Registry, format string) error {
	entries := listEntries(r)

	switch format {
	case "", "text":
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tPOP\tPUSH\tARG\tDOC")
		for _, e := range entries {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.Name, effect(e.Pops), effect(e.Pushes), e.Arg, e.Doc)
		}
		return tw.Flush()

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return fmt.Errorf("list: marshal yaml: %w", err)
		}
		return enc.Close()

	default:
		return fmt.Errorf("unknown list format %q (want text or yaml)", format)
	}
}

func effect(n int) string {
	if n < 0 {
		return "n"
	}
	return fmt.Sprint(n)
}
