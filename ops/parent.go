package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Parent implements the `parent` value-shape operator: Die yields its
// parent Die (dropping the frame if the Die is a root), Attribute yields
// its owning Die.
type Parent struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewParent returns a parent operator fed by upstream.
func NewParent(upstream Op, graph *dwarfgraph.Graph) *Parent {
	p := &Parent{graph: graph}
	p.f = newFanout(upstream, p.open)
	return p
}

func (p *Parent) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		parentOff, ok, err := p.graph.FindParent(v.Offset())
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return skip()
		}
		e, err := p.graph.EntryAt(parentOff)
		if err != nil {
			return nil, false, err
		}
		return once(dwarfgraph.NewDie(p.graph, e)), true, nil
	case *dwarfgraph.Attribute:
		return once(dwarfgraph.NewDie(p.graph, v.Die())), true, nil
	default:
		reportTypeMismatch("parent", []string{"Die", "Attribute"}, top)
		return skip()
	}
}

func (p *Parent) Next() (*value.Stack, bool) { return p.f.next() }
func (p *Parent) Reset()                     { p.f.reset() }
func (p *Parent) Name() string               { return "parent" }
func (p *Parent) Err() error                  { return p.f.Err() }
