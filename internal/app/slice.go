package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/relative"
)

// Slice prints the part of each input selected by the recipe.
func Slice(cmd *cobra.Command, opts *Options, text string, inputs []string) error {
	rs, err := newResolver(cmd, opts, text)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		span, ok, err := rs.span(in)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), in[span.Lower:span.Upper])
		}
	}
	return nil
}

// Span prints the absolute byte span selected by the recipe in each input.
func Span(cmd *cobra.Command, opts *Options, text string, inputs []string) error {
	rs, err := newResolver(cmd, opts, text)
	if err != nil {
		return err
	}
	for _, in := range inputs {
		span, ok, err := rs.span(in)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintln(cmd.OutOrStdout(), span.String())
		}
	}
	return nil
}

// At prints the character a single-bound recipe points at in each input.
// The end of an input holds no character and counts as a miss.
func At(cmd *cobra.Command, opts *Options, text string, inputs []string) error {
	rs, err := newResolver(cmd, opts, text)
	if err != nil {
		return err
	}
	if !rs.r.IsBound() {
		return fmt.Errorf("%s is a range, at needs a single bound", rs.r)
	}
	b := rs.r.Bound()
	for _, in := range inputs {
		c, ok := relative.Get[rune](relative.OfString(in), b)
		if !ok {
			tracef(cmd, opts, "%s in %q: no character", rs.r, in)
			if opts.AllowMissing {
				continue
			}
			return fmt.Errorf("%w for %s in %q", ErrNoMatch, rs.r, in)
		}
		tracef(cmd, opts, "%s in %q: %q", rs.r, in, c)
		fmt.Fprintln(cmd.OutOrStdout(), string(c))
	}
	return nil
}
