package dwarfgraph

import (
	"debug/dwarf"
	"fmt"

	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// AttributeType is the type tag for Attribute values.
var AttributeType = value.NewType("attribute")

// Attribute wraps a single DWARF attribute field together with the DIE it
// was read from, corresponding to value_attr in the original
// implementation.
type Attribute struct {
	pos   int
	graph *Graph
	die   *dwarf.Entry
	field dwarf.Field
}

// NewAttribute wraps field as an Attribute value belonging to the given DIE.
func NewAttribute(graph *Graph, die *dwarf.Entry, field dwarf.Field) *Attribute {
	return &Attribute{graph: graph, die: die, field: field}
}

func (a *Attribute) Type() value.Type       { return AttributeType }
func (a *Attribute) Pos() int               { return a.pos }
func (a *Attribute) SetPos(pos int)         { a.pos = pos }
func (a *Attribute) Graph() *Graph          { return a.graph }
func (a *Attribute) Die() *dwarf.Entry      { return a.die }
func (a *Attribute) Field() dwarf.Field     { return a.field }
func (a *Attribute) Attr() dwarf.Attr       { return a.field.Attr }
func (a *Attribute) Form() dwarf.Class      { return a.field.Class }

func (a *Attribute) Clone() value.Value {
	return &Attribute{pos: a.pos, graph: a.graph, die: a.die, field: a.field}
}

// Cmp compares two Attribute values by owning DIE offset, then by
// attribute code; attributes from different graphs are incomparable.
func (a *Attribute) Cmp(other value.Value) value.CmpResult {
	o, ok := other.(*Attribute)
	if !ok || o.graph != a.graph {
		return value.Incomparable
	}
	if a.die.Offset != o.die.Offset {
		if a.die.Offset < o.die.Offset {
			return value.Less
		}
		return value.Greater
	}
	switch {
	case a.field.Attr < o.field.Attr:
		return value.Less
	case a.field.Attr > o.field.Attr:
		return value.Greater
	default:
		return value.Equal
	}
}

func (a *Attribute) Show(b value.Brevity) string {
	name, _ := dwconst.AttrDomain.Namer(int64(a.field.Attr))
	if name == "" {
		name = fmt.Sprintf("DW_AT_unknown_%#x", uint32(a.field.Attr))
	}
	return fmt.Sprintf("%s (%v)", name, a.field.Val)
}
