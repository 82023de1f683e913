// Package app holds the logic behind the relrange commands.
package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vipcxj/relrange/internal/recipe"
	"github.com/vipcxj/relrange/relative"
)

// Options are shared by every command.
type Options struct {
	// AllowMissing skips inputs the recipe does not resolve against instead
	// of failing.
	AllowMissing bool
	// Debug traces every resolution to stderr.
	Debug bool
}

const ShortDesc = "Cut, inspect and rewrite strings with positions relative to anchors"

const LongDesc = `relrange resolves a recipe such as '='+1..';' or ^+2..<$-1 against each
INPUT (or each line of stdin) and prints the result.

A recipe is a bound or a range of bounds. A bound is an anchor followed by
+N / -N offsets: ^ or start, $ or end, a byte index (moved back to the
start of the character it falls in), 'c' for the first
occurrence of a character or "text" for the position just past the first
occurrence of a string. Add ! to a search anchor to fail when nothing
matches, or ? to fall back to the end.

Ranges: a..<b (or a..b) is half-open, a...b (or a..=b) is closed, ..<b, ...b
and a... are open on one side, and a<|n takes n characters from a. The upper
bound of a range is searched from the lower bound onwards.`

func tracef(cmd *cobra.Command, opts *Options, format string, args ...any) {
	if !opts.Debug {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "debug: "+format+"\n", args...)
}

// resolver applies one parsed recipe to many inputs.
type resolver struct {
	cmd  *cobra.Command
	opts *Options
	r    recipe.Recipe
	expr relative.Expr[rune]
}

func newResolver(cmd *cobra.Command, opts *Options, text string) (*resolver, error) {
	r, err := recipe.Parse(text)
	if err != nil {
		return nil, err
	}
	tracef(cmd, opts, "recipe %s parsed as %s", r, r.Expr())
	return &resolver{cmd: cmd, opts: opts, r: r, expr: r.Expr()}, nil
}

// span resolves the recipe against input. It returns false without an error
// when the input is skipped because of AllowMissing.
func (rs *resolver) span(input string) (relative.Span, bool, error) {
	span, ok := rs.expr.Resolve(relative.OfString(input))
	if !ok {
		tracef(rs.cmd, rs.opts, "%s in %q: no match", rs.r, input)
		if rs.opts.AllowMissing {
			return relative.Span{}, false, nil
		}
		return relative.Span{}, false, fmt.Errorf("%w for %s in %q", ErrNoMatch, rs.r, input)
	}
	tracef(rs.cmd, rs.opts, "%s in %q: %s", rs.r, input, span)
	return span, true, nil
}
