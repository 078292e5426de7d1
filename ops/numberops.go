package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Number implements the `@number`/`@number2` location-opcode accessors:
// given a LoclistOp, projects its i'th integer operand as a lazy sequence
// of at most one Constant{decimal}, dropping the frame if the opcode does
// not carry that many operands.
type Number struct {
	f   *fanout
	idx int
}

// NewNumber returns a @number (idx==0) or @number2 (idx==1) operator fed
// by upstream.
func NewNumber(upstream Op, idx int) *Number {
	n := &Number{idx: idx}
	n.f = newFanout(upstream, n.open)
	return n
}

func (n *Number) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	op, ok := top.(*dwarfgraph.LoclistOp)
	if !ok {
		reportTypeMismatch("number", []string{"LoclistOp"}, top)
		return skip()
	}
	operand, ok := op.Operand(n.idx)
	if !ok {
		return skip()
	}
	return once(value.NewConstant(operand, value.DecimalDomain)), true, nil
}

func (n *Number) Next() (*value.Stack, bool) { return n.f.next() }
func (n *Number) Reset()                     { n.f.reset() }
func (n *Number) Name() string {
	if n.idx == 0 {
		return "number"
	}
	return "number2"
}
func (n *Number) Err() error { return n.f.Err() }
