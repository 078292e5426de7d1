package builtin

import (
	"debug/dwarf"
	"testing"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// seqOp is a fake ops.Op that replays a fixed stack sequence, mirroring
// the package-private helper in ops' own test suite.
type seqOp struct {
	stacks []*value.Stack
	i      int
}

func newSeqOp(stacks ...*value.Stack) *seqOp { return &seqOp{stacks: stacks} }

func (s *seqOp) Next() (*value.Stack, bool) {
	if s.i >= len(s.stacks) {
		return nil, false
	}
	st := s.stacks[s.i]
	s.i++
	return st, true
}
func (s *seqOp) Reset()       { s.i = 0 }
func (s *seqOp) Name() string { return "seq" }
func (s *seqOp) Err() error   { return nil }

func dieStackForTest() *value.Stack {
	g := &dwarfgraph.Graph{}
	e := &dwarf.Entry{Offset: 0x10, Tag: dwarf.TagBaseType}
	st := value.NewStack()
	st.Push(dwarfgraph.NewDie(g, e))
	return st
}

func valueStringStack() *value.Stack {
	st := value.NewStack()
	st.Push(value.NewString("nope"))
	return st
}

func drain(t *testing.T, op interface {
	Next() (*value.Stack, bool)
	Err() error
	Name() string
}) []*value.Stack {
	t.Helper()
	var out []*value.Stack
	for {
		s, ok := op.Next()
		if !ok {
			break
		}
		out = append(out, s)
	}
	if err := op.Err(); err != nil {
		t.Fatalf("%s.Err() = %v, want nil", op.Name(), err)
	}
	return out
}
