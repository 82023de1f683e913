package app

import (
	"fmt"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/internal/selection"
	"github.com/vipcxj/relrange/internal/shell"
	"github.com/vipcxj/relrange/relative"
)

// FieldsOptions configure the fields command.
type FieldsOptions struct {
	Sep    string
	Select selection.Filter
	// Export turns the selected fields into variable assignments named
	// EnvPrefix + Export + "_" + field index, upper-cased.
	Export    string
	EnvPrefix string
	Persist   bool
	Shell     shell.Type
}

// Fields splits each input on the separator and prints the selected fields,
// one per line, or the shell lines exporting them.
func Fields(cmd *cobra.Command, opts *Options, fopts *FieldsOptions, inputs []string) error {
	sep, size := utf8.DecodeRuneInString(fopts.Sep)
	if size == 0 || size != len(fopts.Sep) || sep == utf8.RuneError {
		return fmt.Errorf("separator must be a single character, got %q", fopts.Sep)
	}
	if fopts.Export != "" {
		return exportFields(cmd, opts, fopts, sep, inputs)
	}
	for _, in := range inputs {
		for i, field := range relative.SplitString(in, sep) {
			if fopts.Select.Test(i) {
				fmt.Fprintln(cmd.OutOrStdout(), field)
			}
		}
	}
	return nil
}

func exportFields(cmd *cobra.Command, opts *Options, fopts *FieldsOptions, sep rune, inputs []string) error {
	if len(inputs) != 1 {
		return fmt.Errorf("--export needs exactly one input, got %d", len(inputs))
	}
	typ, err := shell.Decide(fopts.Shell)
	if err != nil {
		return err
	}
	tracef(cmd, opts, "exporting for %s", typ)
	for i, field := range relative.SplitString(inputs[0], sep) {
		if !fopts.Select.Test(i) {
			continue
		}
		name := shell.EnvName(fmt.Sprintf("%s-%d", fopts.Export, i), "", fopts.EnvPrefix)
		line, err := shell.Export(typ, name, field, fopts.Persist)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
	return nil
}
