package app

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vipcxj/relrange/internal/recipe"
	"github.com/vipcxj/relrange/internal/selection"
	"github.com/vipcxj/relrange/internal/shell"
)

func newTestCmd(stdin string) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errb bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errb)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, &out, &errb
}

func TestInputs(t *testing.T) {
	cmd, _, _ := newTestCmd("a\r\nb\n\nc")
	got, err := Inputs(cmd, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "", "c"}, got)

	got, err = Inputs(cmd, []string{"x"})
	require.NoError(t, err)
	assert.Equal(t, []string{"x"}, got)

	cmd, _, _ = newTestCmd("")
	got, err = Inputs(cmd, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSlice(t *testing.T) {
	tests := []struct {
		Name   string
		Recipe string
		Inputs []string
		Out    string
	}{
		{"inner", "^+2..<$-1", []string{"12345"}, "34\n"},
		{"value", "'='+1..';'", []string{"value=55;", "k=v;"}, "55\nv\n"},
		{"single character", "$-1", []string{"abc"}, "c\n"},
		{"collapsed find", "'9'+1..$-1", []string{"12345"}, "\n"},
		{"index inside a rune", "2..", []string{"héllo"}, "éllo\n"},
	}

	for _, test := range tests {
		t.Run(test.Name, func(t *testing.T) {
			cmd, out, _ := newTestCmd("")
			require.NoError(t, Slice(cmd, &Options{}, test.Recipe, test.Inputs))
			assert.Equal(t, test.Out, out.String())
		})
	}
}

func TestSlice_NoMatch(t *testing.T) {
	cmd, out, _ := newTestCmd("")
	err := Slice(cmd, &Options{}, "\"#\"...", []string{"a#b", "ab"})
	require.ErrorIs(t, err, ErrNoMatch)
	assert.EqualError(t, err, `no match for "#"... in "ab"`)
	assert.Equal(t, "b\n", out.String())

	cmd, out, _ = newTestCmd("")
	require.NoError(t, Slice(cmd, &Options{AllowMissing: true}, "\"#\"...", []string{"ab", "a#b"}))
	assert.Equal(t, "b\n", out.String())
}

func TestSlice_BadRecipe(t *testing.T) {
	cmd, _, _ := newTestCmd("")
	err := Slice(cmd, &Options{}, "^..<", []string{"x"})
	assert.ErrorIs(t, err, recipe.ErrSyntax)
}

func TestSlice_Debug(t *testing.T) {
	cmd, out, errb := newTestCmd("")
	require.NoError(t, Slice(cmd, &Options{Debug: true}, "^+1..", []string{"abc"}))
	assert.Equal(t, "bc\n", out.String())
	assert.Contains(t, errb.String(), "debug: recipe ^+1... parsed as start+1...")
	assert.Contains(t, errb.String(), `debug: ^+1... in "abc": 1..3`)
}

func TestSpan(t *testing.T) {
	cmd, out, _ := newTestCmd("")
	require.NoError(t, Span(cmd, &Options{}, "'é'<|2", []string{"héllo"}))
	assert.Equal(t, "1..4\n", out.String())
}

func TestAt(t *testing.T) {
	cmd, out, _ := newTestCmd("")
	require.NoError(t, At(cmd, &Options{}, "'n'-2", []string{"abcdefghijklmnopqrstuvwxyz"}))
	assert.Equal(t, "l\n", out.String())

	cmd, _, _ = newTestCmd("")
	assert.ErrorIs(t, At(cmd, &Options{}, "$", []string{"abc"}), ErrNoMatch)

	cmd, out, _ = newTestCmd("")
	require.NoError(t, At(cmd, &Options{AllowMissing: true}, "^+3", []string{"abc", "abcd"}))
	assert.Equal(t, "d\n", out.String())

	cmd, _, _ = newTestCmd("")
	assert.ErrorContains(t, At(cmd, &Options{}, "^..$", []string{"abc"}), "at needs a single bound")

	cmd, out, _ = newTestCmd("")
	require.NoError(t, At(cmd, &Options{}, "2", []string{"héllo"}))
	assert.Equal(t, "é\n", out.String())
}

func TestReplaceRemove(t *testing.T) {
	cmd, out, _ := newTestCmd("")
	require.NoError(t, Replace(cmd, &Options{}, "^+1..<$-1", "X", []string{"12345", "12"}))
	assert.Equal(t, "1X5\n1X2\n", out.String())

	cmd, out, _ = newTestCmd("")
	require.NoError(t, Replace(cmd, &Options{}, "^+20..<$-2", "INSERT", []string{"12345"}))
	assert.Equal(t, "12345\n", out.String())

	cmd, out, _ = newTestCmd("")
	require.NoError(t, Remove(cmd, &Options{}, "'='+1...", []string{"value=55;"}))
	assert.Equal(t, "value=\n", out.String())

	cmd, _, _ = newTestCmd("")
	assert.ErrorIs(t, Remove(cmd, &Options{}, "\"#\"...", []string{"abc"}), ErrNoMatch)

	cmd, out, _ = newTestCmd("")
	require.NoError(t, Remove(cmd, &Options{AllowMissing: true}, "\"#\"...", []string{"abc"}))
	assert.Equal(t, "abc\n", out.String())
}

func TestFields(t *testing.T) {
	cmd, out, _ := newTestCmd("")
	fopts := &FieldsOptions{Sep: ",", Select: selection.All()}
	require.NoError(t, Fields(cmd, &Options{}, fopts, []string{"123,234,555,100,999"}))
	assert.Equal(t, "123\n234\n555\n100\n999\n", out.String())

	sel, err := selection.ParseFilter("0_3-")
	require.NoError(t, err)
	cmd, out, _ = newTestCmd("")
	fopts = &FieldsOptions{Sep: "→", Select: sel}
	require.NoError(t, Fields(cmd, &Options{}, fopts, []string{"a→b→c→d→", "x"}))
	assert.Equal(t, "a\nd\n\nx\n", out.String())
}

func TestFields_BadSeparator(t *testing.T) {
	for _, sep := range []string{"", ",,", "\xff"} {
		cmd, _, _ := newTestCmd("")
		err := Fields(cmd, &Options{}, &FieldsOptions{Sep: sep, Select: selection.All()}, []string{"a"})
		assert.ErrorContains(t, err, "separator must be a single character", "sep %q", sep)
	}
}

func TestFields_Export(t *testing.T) {
	sel, err := selection.ParseFilter("0_2")
	require.NoError(t, err)
	fopts := &FieldsOptions{Sep: ",", Select: sel, Export: "field", EnvPrefix: "RR_", Shell: shell.TypeSh}

	cmd, out, _ := newTestCmd("")
	require.NoError(t, Fields(cmd, &Options{}, fopts, []string{"a,it's,c"}))
	assert.Equal(t, "RR_FIELD_0='a'\nRR_FIELD_2='c'\n", out.String())

	fopts.Persist = true
	fopts.Shell = shell.TypePowershell
	fopts.Select = selection.All()
	cmd, out, _ = newTestCmd("")
	require.NoError(t, Fields(cmd, &Options{}, fopts, []string{"it's"}))
	assert.Equal(t, "[System.Environment]::SetEnvironmentVariable('RR_FIELD_0','it''s','User')\n", out.String())

	cmd, _, _ = newTestCmd("")
	assert.ErrorContains(t, Fields(cmd, &Options{}, fopts, []string{"a", "b"}), "exactly one input")
}
