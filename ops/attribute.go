package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Attribute fans out from a Die on top of the upstream stack to its
// attributes, in their stored order.
type Attribute struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewAttribute returns an attribute operator fed by upstream.
func NewAttribute(upstream Op, graph *dwarfgraph.Graph) *Attribute {
	a := &Attribute{graph: graph}
	a.f = newFanout(upstream, a.open)
	return a
}

func (a *Attribute) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return nil, false, nil
	}
	die, ok := top.(*dwarfgraph.Die)
	if !ok {
		reportTypeMismatch("attribute", []string{"Die"}, top)
		return nil, false, nil
	}
	fields := die.Entry().Field
	i := 0
	return func() (value.Value, bool, error) {
		if i >= len(fields) {
			return nil, false, nil
		}
		f := fields[i]
		i++
		return dwarfgraph.NewAttribute(a.graph, die.Entry(), f), true, nil
	}, true, nil
}

func (a *Attribute) Next() (*value.Stack, bool) { return a.f.next() }
func (a *Attribute) Reset()                     { a.f.reset() }
func (a *Attribute) Name() string               { return "attribute" }
func (a *Attribute) Err() error                 { return a.f.Err() }
