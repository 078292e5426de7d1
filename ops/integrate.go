package ops

import (
	"debug/dwarf"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Integrate implements the `integrate` value-shape operator: given a Die,
// follows DW_AT_abstract_origin if present, else DW_AT_specification,
// resolving exactly one hop to the referenced Die. A Die with neither
// attribute drops the frame. Transitive integration (following a chain of
// abstract origins) is deliberately not performed — see DESIGN.md's Open
// Question resolution.
type Integrate struct {
	f     *fanout
	graph *dwarfgraph.Graph
}

// NewIntegrate returns an integrate operator fed by upstream.
func NewIntegrate(upstream Op, graph *dwarfgraph.Graph) *Integrate {
	i := &Integrate{graph: graph}
	i.f = newFanout(upstream, i.open)
	return i
}

func (i *Integrate) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	die, ok := top.(*dwarfgraph.Die)
	if !ok {
		reportTypeMismatch("integrate", []string{"Die"}, top)
		return skip()
	}

	off, ok := referenceAttr(die.Entry(), dwarf.AttrAbstractOrigin)
	if !ok {
		off, ok = referenceAttr(die.Entry(), dwarf.AttrSpecification)
	}
	if !ok {
		return skip()
	}
	e, err := i.graph.EntryAt(off)
	if err != nil {
		return nil, false, err
	}
	return once(dwarfgraph.NewDie(i.graph, e)), true, nil
}

func referenceAttr(e *dwarf.Entry, attr dwarf.Attr) (dwarf.Offset, bool) {
	for _, f := range e.Field {
		if f.Attr != attr {
			continue
		}
		off, ok := f.Val.(dwarf.Offset)
		if !ok {
			return 0, false
		}
		return off, true
	}
	return 0, false
}

func (i *Integrate) Next() (*value.Stack, bool) { return i.f.next() }
func (i *Integrate) Reset()                     { i.f.reset() }
func (i *Integrate) Name() string               { return "integrate" }
func (i *Integrate) Err() error                 { return i.f.Err() }
