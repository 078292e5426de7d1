package ops

import (
	"debug/dwarf"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Unit fans out from a Die or Attribute on top of the upstream stack to
// every DIE belonging to the same compilation unit.
type Unit struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewUnit returns a unit operator fed by upstream.
func NewUnit(upstream Op, graph *dwarfgraph.Graph) *Unit {
	u := &Unit{graph: graph}
	u.f = newFanout(upstream, u.open)
	return u
}

func (u *Unit) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	off, ok := u.ownerOffset(base)
	if !ok {
		return nil, false, nil
	}
	cur, err := u.graph.UnitDiesCursor(off)
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
		return dwarfgraph.NewDie(u.graph, e), true, nil
	}, true, nil
}

func (u *Unit) ownerOffset(base *value.Stack) (dwarf.Offset, bool) {
	top, ok := base.Top()
	if !ok {
		return 0, false
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		return v.Offset(), true
	case *dwarfgraph.Attribute:
		return v.Die().Offset, true
	default:
		reportTypeMismatch("unit", []string{"Die", "Attribute"}, top)
		return 0, false
	}
}

func (u *Unit) Next() (*value.Stack, bool) { return u.f.next() }
func (u *Unit) Reset()                     { u.f.reset() }
func (u *Unit) Name() string               { return "unit" }
func (u *Unit) Err() error                 { return u.f.Err() }
