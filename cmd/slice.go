/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/internal/app"
)

// recipeRunner is the signature shared by the commands taking one recipe.
type recipeRunner func(cmd *cobra.Command, opts *app.Options, text string, inputs []string) error

func recipeCmd(opts *app.Options, use, short string, run recipeRunner) *cobra.Command {
	return &cobra.Command{
		Use:   use + " RECIPE [INPUT...]",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := app.Inputs(cmd, args[1:])
			if err != nil {
				return err
			}
			return run(cmd, opts, args[0], inputs)
		},
	}
}

func newSliceCmd(opts *app.Options) *cobra.Command {
	return recipeCmd(opts, "slice", "Print the part of each input selected by RECIPE", app.Slice)
}

func newAtCmd(opts *app.Options) *cobra.Command {
	return recipeCmd(opts, "at", "Print the character a single bound points at", app.At)
}

func newSpanCmd(opts *app.Options) *cobra.Command {
	return recipeCmd(opts, "span", "Print the byte span RECIPE selects as lo..hi", app.Span)
}

func newRemoveCmd(opts *app.Options) *cobra.Command {
	return recipeCmd(opts, "remove", "Print each input with the part selected by RECIPE removed", app.Remove)
}

func newReplaceCmd(opts *app.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "replace RECIPE WITH [INPUT...]",
		Short: "Print each input with the part selected by RECIPE replaced by WITH",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := app.Inputs(cmd, args[2:])
			if err != nil {
				return err
			}
			return app.Replace(cmd, opts, args[0], args[1], inputs)
		},
	}
}
