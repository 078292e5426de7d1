package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Child fans out from a Die on top of the upstream stack to its immediate
// children, in source order. A Die without children (or any other value
// type) simply drops the frame.
type Child struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewChild returns a child operator fed by upstream.
func NewChild(upstream Op, graph *dwarfgraph.Graph) *Child {
	c := &Child{graph: graph}
	c.f = newFanout(upstream, c.open)
	return c
}

func (c *Child) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return nil, false, nil
	}
	die, ok := top.(*dwarfgraph.Die)
	if !ok {
		reportTypeMismatch("child", []string{"Die"}, top)
		return nil, false, nil
	}
	cur, err := c.graph.ChildrenCursor(die.Offset())
	if err != nil {
		return nil, false, err
	}
	return func() (value.Value, bool, error) {
		e, err := cur.Next()
		if err != nil {
			return nil, false, err
		}
		if e == nil {
			return nil, false, nil
		}
		return dwarfgraph.NewDie(c.graph, e), true, nil
	}, true, nil
}

func (c *Child) Next() (*value.Stack, bool) { return c.f.next() }
func (c *Child) Reset()                     { c.f.reset() }
func (c *Child) Name() string               { return "child" }
func (c *Child) Err() error                 { return c.f.Err() }
