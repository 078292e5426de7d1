package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// ValueOp implements the `value` operator: given an Attribute, fans out
// over the lazy sequence of values its form decodes to (one Constant for
// integer/address-class forms, one String for string forms, one Die per
// reference, one LoclistOp per decoded opcode for location expressions).
//
// Named ValueOp rather than Value to avoid colliding with value.Value.
type ValueOp struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewValueOp returns a value operator fed by upstream.
func NewValueOp(upstream Op, graph *dwarfgraph.Graph) *ValueOp {
	v := &ValueOp{graph: graph}
	v.f = newFanout(upstream, v.open)
	return v
}

func (v *ValueOp) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	a, ok := top.(*dwarfgraph.Attribute)
	if !ok {
		reportTypeMismatch("value", []string{"Attribute"}, top)
		return skip()
	}
	decoded := dwarfgraph.DecodeAttributeValue(v.graph, a)
	if len(decoded) == 0 {
		return skip()
	}
	i := 0
	return func() (value.Value, bool, error) {
		if i >= len(decoded) {
			return nil, false, nil
		}
		val := decoded[i]
		i++
		return val, true, nil
	}, true, nil
}

func (v *ValueOp) Next() (*value.Stack, bool) { return v.f.next() }
func (v *ValueOp) Reset()                     { v.f.reset() }
func (v *ValueOp) Name() string               { return "value" }
func (v *ValueOp) Err() error                 { return v.f.Err() }
