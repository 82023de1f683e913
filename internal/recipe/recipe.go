package recipe

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/vipcxj/relrange/relative"
)

var (
	ErrEmpty  = errors.New("empty recipe")
	ErrSyntax = errors.New("invalid recipe")
)

// Form is the shape of a recipe.
type Form uint8

const (
	FormBound Form = iota
	FormHalfOpen
	FormClosed
	FormUpTo
	FormThrough
	FormSuffix
	FormTake
)

// AnchorKind is what a BoundSpec is anchored to.
type AnchorKind uint8

const (
	AnchorStart AnchorKind = iota
	AnchorEnd
	AnchorIndex
	AnchorFind
	AnchorFindText
)

// Policy overrides the not-found behaviour of a search bound.
type Policy uint8

const (
	PolicyDefault Policy = iota
	// PolicyOrEnd is written with a trailing '?'.
	PolicyOrEnd
	// PolicyRequired is written with a trailing '!'.
	PolicyRequired
)

// BoundSpec is the parsed form of one bound.
type BoundSpec struct {
	Anchor AnchorKind
	Index  int
	Char   rune
	Text   string
	Policy Policy
	Offset int
}

// Recipe is the parsed form of a bound or range expression.
//
// Lower is unused by FormUpTo and FormThrough, Upper is only used by
// FormHalfOpen, FormClosed, FormUpTo and FormThrough, and Count only by
// FormTake.
type Recipe struct {
	Form  Form
	Lower BoundSpec
	Upper BoundSpec
	Count int
}

// Parse parses s.
//
// Supported formats:
//   - b            a single bound, selecting the one character at b
//   - a..<b, a..b  half-open range
//   - a...b, a..=b closed range
//   - ..<b, ..b    from the start up to b
//   - ...b, ..=b   from the start through b
//   - a..., a..    from a to the end (a..= needs an upper bound)
//   - a<|n         n characters from a
//
// A bound is an anchor followed by any number of +N / -N offsets. The
// anchor is one of ^ or start, $ or end, a byte index, a quoted character
// 'c' (first occurrence) or a quoted string "text" (just past the first
// occurrence). A search anchor may be followed by ? to fall back to the end
// when nothing matches, or by ! to fail.
func Parse(s string) (Recipe, error) {
	src := strings.TrimSpace(s)
	if src == "" {
		return Recipe{}, ErrEmpty
	}
	at, op, err := findOperator(src)
	if err != nil {
		return Recipe{}, err
	}
	if op == "" {
		b, err := parseBound(src)
		if err != nil {
			return Recipe{}, err
		}
		return Recipe{Form: FormBound, Lower: b}, nil
	}

	left := strings.TrimSpace(src[:at])
	right := strings.TrimSpace(src[at+len(op):])

	if op == "<|" {
		if left == "" {
			return Recipe{}, syntaxError(src, "missing bound before <|")
		}
		lo, err := parseBound(left)
		if err != nil {
			return Recipe{}, err
		}
		n, err := strconv.Atoi(right)
		if err != nil || n < 0 {
			return Recipe{}, syntaxError(src, fmt.Sprintf("count %q is not a natural number", right))
		}
		return Recipe{Form: FormTake, Lower: lo, Count: n}, nil
	}

	closed := op == "..." || op == "..="
	switch {
	case left == "" && right == "":
		if op == "..<" || op == "..=" {
			return Recipe{}, syntaxError(src, "missing upper bound after "+op)
		}
		return Recipe{Form: FormSuffix}, nil
	case left == "":
		hi, err := parseBound(right)
		if err != nil {
			return Recipe{}, err
		}
		if closed {
			return Recipe{Form: FormThrough, Upper: hi}, nil
		}
		return Recipe{Form: FormUpTo, Upper: hi}, nil
	case right == "":
		if op == "..<" || op == "..=" {
			return Recipe{}, syntaxError(src, "missing upper bound after "+op)
		}
		lo, err := parseBound(left)
		if err != nil {
			return Recipe{}, err
		}
		return Recipe{Form: FormSuffix, Lower: lo}, nil
	}

	lo, err := parseBound(left)
	if err != nil {
		return Recipe{}, err
	}
	hi, err := parseBound(right)
	if err != nil {
		return Recipe{}, err
	}
	form := FormHalfOpen
	if closed {
		form = FormClosed
	}
	return Recipe{Form: form, Lower: lo, Upper: hi}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Recipe {
	r, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return r
}

// findOperator returns the position of the first range operator outside
// quoted text.
func findOperator(s string) (int, string, error) {
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'' || s[i] == '"':
			q, err := strconv.QuotedPrefix(s[i:])
			if err != nil {
				return 0, "", syntaxError(s, fmt.Sprintf("unterminated quote at %d", i))
			}
			i += len(q)
			continue
		case strings.HasPrefix(s[i:], "<|"):
			return i, "<|", nil
		case strings.HasPrefix(s[i:], ".."):
			for _, op := range []string{"...", "..<", "..="} {
				if strings.HasPrefix(s[i:], op) {
					return i, op, nil
				}
			}
			return i, "..", nil
		}
		i++
	}
	return 0, "", nil
}

func parseBound(s string) (BoundSpec, error) {
	var b BoundSpec
	rest := s
	switch {
	case strings.HasPrefix(rest, "^"):
		b.Anchor = AnchorStart
		rest = rest[1:]
	case strings.HasPrefix(rest, "start"):
		b.Anchor = AnchorStart
		rest = rest[len("start"):]
	case strings.HasPrefix(rest, "$"):
		b.Anchor = AnchorEnd
		rest = rest[1:]
	case strings.HasPrefix(rest, "end"):
		b.Anchor = AnchorEnd
		rest = rest[len("end"):]
	case strings.HasPrefix(rest, "'"):
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return BoundSpec{}, syntaxError(s, "unterminated character")
		}
		v, err := strconv.Unquote(q)
		if err != nil || utf8.RuneCountInString(v) != 1 {
			return BoundSpec{}, syntaxError(s, fmt.Sprintf("invalid character %s", q))
		}
		b.Anchor = AnchorFind
		b.Char, _ = utf8.DecodeRuneInString(v)
		rest = rest[len(q):]
	case strings.HasPrefix(rest, `"`):
		q, err := strconv.QuotedPrefix(rest)
		if err != nil {
			return BoundSpec{}, syntaxError(s, "unterminated string")
		}
		v, err := strconv.Unquote(q)
		if err != nil {
			return BoundSpec{}, syntaxError(s, fmt.Sprintf("invalid string %s", q))
		}
		b.Anchor = AnchorFindText
		b.Text = v
		rest = rest[len(q):]
	case rest != "" && isDigit(rest[0]):
		digits := leadingDigits(rest)
		n, err := strconv.Atoi(digits)
		if err != nil {
			return BoundSpec{}, syntaxError(s, fmt.Sprintf("invalid index %q", digits))
		}
		b.Anchor = AnchorIndex
		b.Index = n
		rest = rest[len(digits):]
	default:
		return BoundSpec{}, syntaxError(s, "unknown anchor")
	}

	if b.Anchor == AnchorFind || b.Anchor == AnchorFindText {
		switch {
		case strings.HasPrefix(rest, "?"):
			b.Policy = PolicyOrEnd
			rest = rest[1:]
		case strings.HasPrefix(rest, "!"):
			b.Policy = PolicyRequired
			rest = rest[1:]
		}
	}

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			return b, nil
		}
		sign := 1
		switch rest[0] {
		case '+':
		case '-':
			sign = -1
		default:
			return BoundSpec{}, syntaxError(s, fmt.Sprintf("unexpected %q", rest))
		}
		rest = strings.TrimLeft(rest[1:], " \t")
		digits := leadingDigits(rest)
		if digits == "" {
			return BoundSpec{}, syntaxError(s, "missing offset")
		}
		n, err := strconv.Atoi(digits)
		if err != nil {
			return BoundSpec{}, syntaxError(s, fmt.Sprintf("invalid offset %q", digits))
		}
		b.Offset = addOffset(b.Offset, sign*n)
		rest = rest[len(digits):]
	}
}

// addOffset sums two offsets, saturating at ±math.MaxInt so that the sum
// can always be formatted back into a recipe.
func addOffset(a, b int) int {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return math.MaxInt
	case b < 0 && a < -math.MaxInt-b:
		return -math.MaxInt
	}
	return a + b
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingDigits(s string) string {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i]
}

func syntaxError(s, msg string) error {
	return fmt.Errorf("%w %q: %s", ErrSyntax, s, msg)
}

// String formats the bound so that parsing it yields b again.
func (b BoundSpec) String() string {
	var sb strings.Builder
	switch b.Anchor {
	case AnchorStart:
		sb.WriteString("^")
	case AnchorEnd:
		sb.WriteString("$")
	case AnchorIndex:
		sb.WriteString(strconv.Itoa(b.Index))
	case AnchorFind:
		sb.WriteString(strconv.QuoteRune(b.Char))
	case AnchorFindText:
		sb.WriteString(strconv.Quote(b.Text))
	}
	switch b.Policy {
	case PolicyOrEnd:
		sb.WriteString("?")
	case PolicyRequired:
		sb.WriteString("!")
	}
	if b.Offset != 0 {
		fmt.Fprintf(&sb, "%+d", b.Offset)
	}
	return sb.String()
}

// Bound builds the relative bound over the runes of a string.
func (b BoundSpec) Bound() relative.Bound[rune] {
	var out relative.Bound[rune]
	switch b.Anchor {
	case AnchorStart:
		out = relative.FromStart[rune](0)
	case AnchorEnd:
		out = relative.FromEnd[rune](0)
	case AnchorIndex:
		out = relative.Exactly[rune](b.Index)
	case AnchorFind:
		out = relative.Find(b.Char)
	case AnchorFindText:
		out = relative.FindString(b.Text)
	}
	switch b.Policy {
	case PolicyOrEnd:
		out = out.OrEnd()
	case PolicyRequired:
		out = out.Required()
	}
	return out.Plus(b.Offset)
}

func (r Recipe) String() string {
	switch r.Form {
	case FormHalfOpen:
		return r.Lower.String() + "..<" + r.Upper.String()
	case FormClosed:
		return r.Lower.String() + "..." + r.Upper.String()
	case FormUpTo:
		return "..<" + r.Upper.String()
	case FormThrough:
		return "..." + r.Upper.String()
	case FormSuffix:
		return r.Lower.String() + "..."
	case FormTake:
		return r.Lower.String() + "<|" + strconv.Itoa(r.Count)
	default:
		return r.Lower.String()
	}
}

// IsBound reports whether r names a single position.
func (r Recipe) IsBound() bool {
	return r.Form == FormBound
}

// Bound returns the single bound of a FormBound recipe, or the lower bound
// of a range recipe. Prefix recipes return their upper bound.
func (r Recipe) Bound() relative.Bound[rune] {
	if r.Form == FormUpTo || r.Form == FormThrough {
		return r.Upper.Bound()
	}
	return r.Lower.Bound()
}

// Expr builds the range expression over the runes of a string. A single
// bound selects the one character at that position.
func (r Recipe) Expr() relative.Expr[rune] {
	switch r.Form {
	case FormHalfOpen:
		return r.Lower.Bound().To(r.Upper.Bound())
	case FormClosed:
		return r.Lower.Bound().Through(r.Upper.Bound())
	case FormUpTo:
		return relative.Prefix(r.Upper.Bound())
	case FormThrough:
		return relative.PrefixThrough(r.Upper.Bound())
	case FormSuffix:
		return relative.SuffixFrom(r.Lower.Bound())
	case FormTake:
		return r.Lower.Bound().Take(r.Count)
	default:
		return r.Lower.Bound().Take(1)
	}
}
