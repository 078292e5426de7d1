package value

import "strings"

// SequenceType is the type tag for Sequence values.
var SequenceType = NewType("sequence")

// Sequence is an ordered list of values. Cloning a Sequence deep-clones every element, matching the
// original dwgrep value_seq::clone semantics.
type Sequence struct {
	pos   int
	items []Value
}

// NewSequence constructs a Sequence owning the given items directly (no
// copy); callers that need independence should Clone the result.
func NewSequence(items []Value) *Sequence {
	return &Sequence{items: items}
}

func (s *Sequence) Type() Type     { return SequenceType }
func (s *Sequence) Pos() int       { return s.pos }
func (s *Sequence) SetPos(pos int) { s.pos = pos }

// Items returns the underlying slice; callers must not mutate it.
func (s *Sequence) Items() []Value { return s.items }

// Len returns the number of elements.
func (s *Sequence) Len() int { return len(s.items) }

func (s *Sequence) Clone() Value {
	items := make([]Value, len(s.items))
	for i, v := range s.items {
		items[i] = v.Clone()
	}
	return &Sequence{pos: s.pos, items: items}
}

// Cmp compares sequences by length first, then element-wise; it reports
// Incomparable as soon as a single element pair is incomparable, mirroring
// value_seq::cmp in the original implementation.
func (s *Sequence) Cmp(other Value) CmpResult {
	o, ok := other.(*Sequence)
	if !ok {
		return Incomparable
	}
	if len(s.items) != len(o.items) {
		if len(s.items) < len(o.items) {
			return Less
		}
		return Greater
	}
	for i := range s.items {
		r := s.items[i].Cmp(o.items[i])
		if r == Incomparable {
			return Incomparable
		}
		if r != Equal {
			return r
		}
	}
	return Equal
}

func (s *Sequence) Show(b Brevity) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, v := range s.items {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.Show(Brief))
	}
	sb.WriteByte(']')
	return sb.String()
}
