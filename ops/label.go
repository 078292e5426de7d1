package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// Label implements the `label` value-shape operator: Die yields its tag,
// Attribute yields its attribute code, LoclistOp yields its opcode atom —
// each as the matching Constant domain.
type Label struct{ f *fanout }

// NewLabel returns a label operator fed by upstream.
func NewLabel(upstream Op) *Label {
	l := &Label{}
	l.f = newFanout(upstream, l.open)
	return l
}

func (l *Label) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		return once(dwconst.Tag(int64(v.Tag()))), true, nil
	case *dwarfgraph.Attribute:
		return once(dwconst.Attr(int64(v.Attr()))), true, nil
	case *dwarfgraph.LoclistOp:
		return once(dwconst.Op(v.Opcode())), true, nil
	default:
		reportTypeMismatch("label", []string{"Die", "Attribute", "LoclistOp"}, top)
		return skip()
	}
}

func (l *Label) Next() (*value.Stack, bool) { return l.f.next() }
func (l *Label) Reset()                     { l.f.reset() }
func (l *Label) Name() string               { return "label" }
func (l *Label) Err() error                 { return l.f.Err() }
