package recipe

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcxj/relrange/relative"
)

func TestParse(t *testing.T) {
	tests := []struct {
		Name     string
		Input    string
		Expected Recipe
	}{
		{
			Name:     "start bound",
			Input:    "^",
			Expected: Recipe{Form: FormBound, Lower: BoundSpec{Anchor: AnchorStart}},
		},
		{
			Name:     "keyword anchors with offsets",
			Input:    "start+2..<end-1",
			Expected: Recipe{Form: FormHalfOpen, Lower: BoundSpec{Anchor: AnchorStart, Offset: 2}, Upper: BoundSpec{Anchor: AnchorEnd, Offset: -1}},
		},
		{
			Name:     "offsets are summed",
			Input:    "$-2+1-3",
			Expected: Recipe{Form: FormBound, Lower: BoundSpec{Anchor: AnchorEnd, Offset: -4}},
		},
		{
			Name:     "short half-open",
			Input:    "1..$",
			Expected: Recipe{Form: FormHalfOpen, Lower: BoundSpec{Anchor: AnchorIndex, Index: 1}, Upper: BoundSpec{Anchor: AnchorEnd}},
		},
		{
			Name:     "closed",
			Input:    "'=' ... ';'",
			Expected: Recipe{Form: FormClosed, Lower: BoundSpec{Anchor: AnchorFind, Char: '='}, Upper: BoundSpec{Anchor: AnchorFind, Char: ';'}},
		},
		{
			Name:     "closed with equals",
			Input:    "^..=3",
			Expected: Recipe{Form: FormClosed, Lower: BoundSpec{Anchor: AnchorStart}, Upper: BoundSpec{Anchor: AnchorIndex, Index: 3}},
		},
		{
			Name:     "up to",
			Input:    "..<$-1",
			Expected: Recipe{Form: FormUpTo, Upper: BoundSpec{Anchor: AnchorEnd, Offset: -1}},
		},
		{
			Name:     "short up to",
			Input:    "..'x'",
			Expected: Recipe{Form: FormUpTo, Upper: BoundSpec{Anchor: AnchorFind, Char: 'x'}},
		},
		{
			Name:     "through",
			Input:    "...\"ab\"",
			Expected: Recipe{Form: FormThrough, Upper: BoundSpec{Anchor: AnchorFindText, Text: "ab"}},
		},
		{
			Name:     "suffix",
			Input:    "'='+1...",
			Expected: Recipe{Form: FormSuffix, Lower: BoundSpec{Anchor: AnchorFind, Char: '=', Offset: 1}},
		},
		{
			Name:     "short suffix",
			Input:    "2..",
			Expected: Recipe{Form: FormSuffix, Lower: BoundSpec{Anchor: AnchorIndex, Index: 2}},
		},
		{
			Name:     "whole",
			Input:    "..",
			Expected: Recipe{Form: FormSuffix},
		},
		{
			Name:     "take",
			Input:    "'2'<|3",
			Expected: Recipe{Form: FormTake, Lower: BoundSpec{Anchor: AnchorFind, Char: '2'}, Count: 3},
		},
		{
			Name:     "dots inside quotes",
			Input:    "'.'..\"..\"",
			Expected: Recipe{Form: FormHalfOpen, Lower: BoundSpec{Anchor: AnchorFind, Char: '.'}, Upper: BoundSpec{Anchor: AnchorFindText, Text: ".."}},
		},
		{
			Name:     "escaped quote",
			Input:    `"a\"b"`,
			Expected: Recipe{Form: FormBound, Lower: BoundSpec{Anchor: AnchorFindText, Text: `a"b`}},
		},
		{
			Name:     "policies",
			Input:    "'#'!..\"zz\"?",
			Expected: Recipe{Form: FormHalfOpen, Lower: BoundSpec{Anchor: AnchorFind, Char: '#', Policy: PolicyRequired}, Upper: BoundSpec{Anchor: AnchorFindText, Text: "zz", Policy: PolicyOrEnd}},
		},
		{
			Name:     "multibyte character",
			Input:    "'é'",
			Expected: Recipe{Form: FormBound, Lower: BoundSpec{Anchor: AnchorFind, Char: 'é'}},
		},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			r, err := Parse(test.Input)
			require.NoError(t, err)
			assert.Equal(t, test.Expected, r)
		})
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		Name  string
		Input string
		Err   error
	}{
		{"empty", "   ", ErrEmpty},
		{"unknown anchor", "x..$", ErrSyntax},
		{"negative index", "-1", ErrSyntax},
		{"dangling sign", "^+", ErrSyntax},
		{"unterminated char", "'a", ErrSyntax},
		{"two chars", "'ab'", ErrSyntax},
		{"unterminated string", `"abc`, ErrSyntax},
		{"half-open without upper", "^..<", ErrSyntax},
		{"bare half-open", "..<", ErrSyntax},
		{"bare closed equals", "..=", ErrSyntax},
		{"closed equals without upper", "'='..=", ErrSyntax},
		{"offset too large", "^+9223372036854775808", ErrSyntax},
		{"take without bound", "<|3", ErrSyntax},
		{"take without count", "^<|", ErrSyntax},
		{"negative take", "^<|-1", ErrSyntax},
		{"policy on position", "^!", ErrSyntax},
		{"trailing garbage", "^..$x", ErrSyntax},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			_, err := Parse(test.Input)
			require.Error(t, err)
			assert.ErrorIs(t, err, test.Err)
		})
	}
}

func TestStringRoundTrip(t *testing.T) {
	inputs := []string{
		"^", "$-1", "7+2", "'\\n'", "\"a b\"",
		"start+2..<end-1", "^..$", "'='...';'", "..<3", "...'x'?",
		"\"k=\"!...", "'2'<|3", "..", "$-2-2...",
	}
	for _, in := range inputs {
		r, err := Parse(in)
		require.NoError(t, err, in)
		again, err := Parse(r.String())
		require.NoError(t, err, r.String())
		assert.Equal(t, r, again, "%q formatted as %q", in, r.String())
	}
}

func TestString(t *testing.T) {
	assert.Equal(t, "^+2..<$-1", MustParse("start + 2 ..< end - 1").String())
	assert.Equal(t, "^...", MustParse("..").String())
	assert.Equal(t, "'='...';'", MustParse("'='..=';'").String())
	assert.Equal(t, "\"ab\"!<|2", MustParse("\"ab\"!<|2").String())
}

func TestExpr(t *testing.T) {
	tests := []struct {
		Name   string
		Recipe string
		Input  string
		Want   string
		Found  bool
	}{
		{"trim both ends", "^+2..<$-1", "12345", "34", true},
		{"find to find", "'='..';'", "value=55;", "=55", true},
		{"value only", "'='+1..';'", "value=55;", "55", true},
		{"find to end", "'2'..$-1", "12345", "234", true},
		{"take", "'2'<|3", "12345", "234", true},
		{"missing find collapses", "'9'+1..$-1", "12345", "", true},
		{"required find fails", "'9'!..$", "12345", "", false},
		{"closed", "'4'...'3'", "12341234", "4123", true},
		{"single character", "$-1", "abc", "c", true},
		{"single character at end", "$", "abc", "", true},
		{"up to", "..<'='", "key=value", "key", true},
		{"up to past text", "..<\"=\"", "key=value", "key=", true},
		{"through text", "...\"=\"", "key=value", "key=v", true},
		{"suffix after text", "\"=\"...", "key=value", "value", true},
		{"missing text fails", "\"#\"...", "key=value", "", false},
		{"missing text or end", "\"#\"?...", "key=value", "", true},
		{"lower after upper", "4..2", "12345", "", false},
		{"multibyte", "^+1<|2", "héllo", "él", true},
		{"index inside a rune", "2...", "héllo", "éllo", true},
		{"huge offset clamps to end", "^+2..<^+9223372036854775807+1", "abcdef", "cdef", true},
		{"huge negative offset clamps to start", "$-9223372036854775807-5...", "abc", "abc", true},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			r, err := Parse(test.Recipe)
			require.NoError(t, err)
			got, ok := relative.Substring(test.Input, r.Expr())
			assert.Equal(t, test.Found, ok)
			assert.Equal(t, test.Want, got)
		})
	}
}

func TestBound(t *testing.T) {
	r := MustParse("'n'-2")
	require.True(t, r.IsBound())
	c, ok := relative.RuneAt("abcdefghijklmnopqrstuvwxyz", r.Bound())
	require.True(t, ok)
	assert.Equal(t, 'l', c)

	r = MustParse("..<$-3")
	assert.False(t, r.IsBound())
	assert.Equal(t, relative.AnchorEnd, r.Bound().Anchor())
	assert.Equal(t, -3, r.Bound().Offset())
}

func TestParse_OffsetSaturates(t *testing.T) {
	r := MustParse("^+9223372036854775807+1")
	assert.Equal(t, math.MaxInt, r.Lower.Offset)

	r = MustParse("$-9223372036854775807-9223372036854775807")
	assert.Equal(t, -math.MaxInt, r.Lower.Offset)

	again, err := Parse(r.String())
	require.NoError(t, err)
	assert.Equal(t, r, again)
}
