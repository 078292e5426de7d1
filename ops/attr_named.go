package ops

import (
	"debug/dwarf"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// AttrNamed implements `attr_named(X)`, the Die→Attribute half of the
// `@AT_X` sugar (§4.2): given a Die, emits its attribute named code if
// present, else drops the frame.
type AttrNamed struct {
	f     *fanout
	graph *dwarfgraph.Graph
	code  dwarf.Attr
}

// NewAttrNamed returns an attr_named(code) operator fed by upstream.
func NewAttrNamed(upstream Op, graph *dwarfgraph.Graph, code dwarf.Attr) *AttrNamed {
	a := &AttrNamed{graph: graph, code: code}
	a.f = newFanout(upstream, a.open)
	return a
}

func (a *AttrNamed) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	die, ok := top.(*dwarfgraph.Die)
	if !ok {
		reportTypeMismatch("attr_named", []string{"Die"}, top)
		return skip()
	}
	for _, f := range die.Entry().Field {
		if f.Attr == a.code {
			return once(dwarfgraph.NewAttribute(a.graph, die.Entry(), f)), true, nil
		}
	}
	return skip()
}

func (a *AttrNamed) Next() (*value.Stack, bool) { return a.f.next() }
func (a *AttrNamed) Reset()                     { a.f.reset() }
func (a *AttrNamed) Name() string               { return "attr_named" }
func (a *AttrNamed) Err() error                 { return a.f.Err() }
