/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/internal/app"
	"github.com/vipcxj/relrange/internal/selection"
	"github.com/vipcxj/relrange/internal/shell"
)

func newFieldsCmd(opts *app.Options) *cobra.Command {
	fopts := &app.FieldsOptions{Select: selection.All()}
	// Malformed environment defaults are reported when the command runs.
	var envErr error
	if v := envDefault("shell", ""); v != "" {
		if err := fopts.Shell.Set(v); err != nil {
			envErr = fmt.Errorf("%sSHELL: %w", EnvPrefix, err)
		}
	}

	fieldsCmd := &cobra.Command{
		Use:   "fields [INPUT...]",
		Short: "Split each input on a separator and print or export the selected fields",
		Example: `  relrange fields --sep , --select 0_2- 123,234,555,100
  eval "$(relrange fields --export part --select 0-1 a:b:c --sep :)"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if envErr != nil {
				return envErr
			}
			inputs, err := app.Inputs(cmd, args)
			if err != nil {
				return err
			}
			return app.Fields(cmd, opts, fopts, inputs)
		},
	}

	flags := fieldsCmd.Flags()
	flags.StringVarP(&fopts.Sep, "sep", "s", envDefault("sep", ","), "Field separator, a single character")
	flags.VarP(&fopts.Select, "select", "f", "Fields to keep by index: all, N, N-M, N-, -M joined by _")
	flags.StringVarP(&fopts.Export, "export", "e", "", "Print shell assignments NAME_<index> instead of the fields")
	flags.StringVar(&fopts.EnvPrefix, "env-prefix", envDefault("env-prefix", ""), "Prefix of exported variable names")
	flags.BoolVar(&fopts.Persist, "persist", false, "Export variables beyond the current session")
	flags.Var(&fopts.Shell, "shell", "Shell dialect of exported lines: "+strings.Join(shell.TypeStrings(), ", "))

	fieldsCmd.RegisterFlagCompletionFunc("shell", func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		var completions []cobra.Completion
		for _, choice := range shell.TypeStrings() {
			if strings.HasPrefix(choice, toComplete) {
				completions = append(completions, choice)
			}
		}
		return completions, cobra.ShellCompDirectiveNoFileComp
	})
	return fieldsCmd
}
