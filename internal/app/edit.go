package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/relative"
)

// Replace prints each input with the region selected by the recipe replaced
// by with. An input the recipe does not resolve against is an error, or is
// printed unchanged with AllowMissing. A region starting at the end of the
// input also leaves it unchanged.
func Replace(cmd *cobra.Command, opts *Options, text, with string, inputs []string) error {
	rs, err := newResolver(cmd, opts, text)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if _, ok, err := rs.span(in); err != nil {
			return err
		} else if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), in)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), relative.ReplaceString(in, rs.expr, with))
	}
	return nil
}

// Remove prints each input with the region selected by the recipe removed,
// under the same rules as Replace.
func Remove(cmd *cobra.Command, opts *Options, text string, inputs []string) error {
	rs, err := newResolver(cmd, opts, text)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		if _, ok, err := rs.span(in); err != nil {
			return err
		} else if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), in)
			continue
		}
		fmt.Fprintln(cmd.OutOrStdout(), relative.RemoveString(in, rs.expr))
	}
	return nil
}
