/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/internal/app"
	"github.com/vipcxj/relrange/internal/shell"
)

// EnvPrefix prefixes the environment variables flag defaults are read from.
const EnvPrefix = "RELRANGE_"

// NewRootCmd builds the relrange command tree. A fresh tree is built for
// every run so flag values never leak from one execution to the next.
func NewRootCmd() *cobra.Command {
	opts := &app.Options{}
	rootCmd := &cobra.Command{
		Use:           "relrange",
		Short:         app.ShortDesc,
		Long:          app.LongDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().BoolVar(&opts.AllowMissing, "allow-missing", false, "Skip inputs the recipe does not resolve against instead of failing")
	rootCmd.PersistentFlags().BoolVar(&opts.Debug, "debug", false, "Trace every resolution to stderr")

	rootCmd.AddCommand(
		newSliceCmd(opts),
		newAtCmd(opts),
		newSpanCmd(opts),
		newReplaceCmd(opts),
		newRemoveCmd(opts),
		newFieldsCmd(opts),
	)
	return rootCmd
}

// Execute runs relrange with os.Args and returns the process exit code.
func Execute() int {
	rootCmd := NewRootCmd()
	rootCmd.SetArgs(os.Args[1:])
	if c, err := rootCmd.ExecuteC(); err != nil {
		c.PrintErrln(c.ErrPrefix(), err)
		return 1
	}
	return 0
}

// envDefault returns the value of the environment variable backing the flag
// key, or fallback when it is unset.
func envDefault(key, fallback string) string {
	if v, ok := os.LookupEnv(shell.EnvName(key, "", EnvPrefix)); ok {
		return v
	}
	return fallback
}
