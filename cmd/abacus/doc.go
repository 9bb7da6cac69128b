package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/abacus"
)

func newDocCmd(opts *options) *cobra.Command {
	var asYAML bool
	cmd := &cobra.Command{
		Use:   "doc [name ...]",
		Short: "show documentation for functions, operators, and number types",
		Long: `doc shows documentation for the named functions, operators, and number
types, or for everything that is loaded if no names are given.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := newSession(cmd, opts)
			if err != nil {
				return err
			}
			return writeDocs(cmd.OutOrStdout(), s.eng.Registry(), args, asYAML)
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "print documentation as YAML")
	return cmd
}

// writeDocs writes the documentation for names, or all documentation if
// names is empty.
func writeDocs(w io.Writer, reg *abacus.Registry, names []string, asYAML bool) error {
	var docs []abacus.Documentation
	if len(names) == 0 {
		docs = reg.Docs()
	}
	for _, name := range names {
		d := reg.Doc(name)
		if len(d) == 0 {
			return fmt.Errorf("no documentation for %q", name)
		}
		docs = append(docs, d...)
	}
	if asYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(docs); err != nil {
			return err
		}
		return enc.Close()
	}
	for _, d := range docs {
		fmt.Fprintf(w, "%s\t(%s, %s)\n", d.Syntax, d.Kind, d.Plugin)
		for _, line := range strings.Split(d.Description, "\n") {
			fmt.Fprintf(w, "\t%s\n", line)
		}
	}
	return nil
}
