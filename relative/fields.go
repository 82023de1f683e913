package relative

// FieldIter walks the separator-delimited fields of a sequence.
//
// Each step resolves Exactly(marker).To(Find(sep)) against the sequence and
// moves the marker one position past the separator. The last field is the
// one whose upper index is the end of the sequence, so a trailing separator
// yields a final empty field.
type FieldIter[E comparable] struct {
	seq    Sequence[E]
	sep    E
	marker Marker
	span   Span
	done   bool
	closed bool
}

// Fields returns an iterator over the fields of seq separated by sep.
func Fields[E comparable](seq Sequence[E], sep E) *FieldIter[E] {
	it := &FieldIter[E]{seq: seq, sep: sep}
	it.marker.Set(seq.StartIndex())
	return it
}

func (it *FieldIter[E]) Next() bool {
	if it.done || it.closed {
		return false
	}
	at, ok := it.marker.Index()
	if !ok {
		it.done = true
		return false
	}
	span, ok := ResolveInto[E](it.seq, Exactly[E](at).To(Find(it.sep)), &it.marker)
	if !ok {
		it.done = true
		return false
	}
	it.span = span
	end := it.seq.EndIndex()
	if span.Upper >= end {
		it.done = true
	} else {
		it.marker.Set(it.seq.Index(span.Upper, 1, end))
	}
	return true
}

// Value returns the span of the current field.
func (it *FieldIter[E]) Value() Span {
	return it.span
}

// Err always returns nil; resolution failures end the iteration.
func (it *FieldIter[E]) Err() error {
	return nil
}

func (it *FieldIter[E]) Close() error {
	it.closed = true
	return nil
}

// SplitString returns the fields of s separated by sep.
func SplitString(s string, sep rune) []string {
	var fields []string
	it := Fields[rune](OfString(s), sep)
	defer it.Close()
	for it.Next() {
		span := it.Value()
		fields = append(fields, s[span.Lower:span.Upper])
	}
	return fields
}
