package dwarfgraph

import (
	"debug/dwarf"
	"fmt"

	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// DieType is the type tag for Die values.
var DieType = value.NewType("die")

// Die wraps a single DWARF debugging information entry together with the
// graph it came from, corresponding to value_die in the original
// implementation.
type Die struct {
	pos   int
	graph *Graph
	entry *dwarf.Entry
}

// NewDie wraps entry as a Die value belonging to graph.
func NewDie(graph *Graph, entry *dwarf.Entry) *Die {
	return &Die{graph: graph, entry: entry}
}

func (d *Die) Type() value.Type     { return DieType }
func (d *Die) Pos() int             { return d.pos }
func (d *Die) SetPos(pos int)       { d.pos = pos }
func (d *Die) Graph() *Graph        { return d.graph }
func (d *Die) Entry() *dwarf.Entry  { return d.entry }
func (d *Die) Offset() dwarf.Offset { return d.entry.Offset }
func (d *Die) Tag() dwarf.Tag       { return d.entry.Tag }

func (d *Die) Clone() value.Value {
	return &Die{pos: d.pos, graph: d.graph, entry: d.entry}
}

// Cmp compares two Die values by offset; dies from different graphs are
// incomparable, mirroring the original implementation's refusal to compare
// values rooted in different dwgrep_graph instances.
func (d *Die) Cmp(other value.Value) value.CmpResult {
	o, ok := other.(*Die)
	if !ok || o.graph != d.graph {
		return value.Incomparable
	}
	switch {
	case d.entry.Offset < o.entry.Offset:
		return value.Less
	case d.entry.Offset > o.entry.Offset:
		return value.Greater
	default:
		return value.Equal
	}
}

func (d *Die) Show(b value.Brevity) string {
	name, _ := dwconst.TagDomain.Namer(int64(d.entry.Tag))
	if name == "" {
		name = fmt.Sprintf("DW_TAG_unknown_%#x", uint32(d.entry.Tag))
	}
	if b == value.Brief {
		return fmt.Sprintf("[%#x]\t%s", d.entry.Offset, name)
	}
	out := fmt.Sprintf("[%#x]\t%s", d.entry.Offset, name)
	for _, f := range d.entry.Field {
		attrName, _ := dwconst.AttrDomain.Namer(int64(f.Attr))
		if attrName == "" {
			attrName = fmt.Sprintf("DW_AT_unknown_%#x", uint32(f.Attr))
		}
		out += fmt.Sprintf("\n\t\t%s (%v)", attrName, f.Val)
	}
	return out
}
