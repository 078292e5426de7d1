package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// Offset implements the `offset` value-shape operator: Die and LoclistOp
// each produce their position within the file/expression as a
// Constant{hex}; any other type is a type mismatch.
type Offset struct{ f *fanout }

// NewOffset returns an offset operator fed by upstream.
func NewOffset(upstream Op) *Offset {
	o := &Offset{}
	o.f = newFanout(upstream, o.open)
	return o
}

func (o *Offset) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		return once(value.NewConstant(int64(v.Offset()), value.HexDomain)), true, nil
	case *dwarfgraph.LoclistOp:
		return once(value.NewConstant(v.ByteOffset(), value.HexDomain)), true, nil
	default:
		reportTypeMismatch("offset", []string{"Die", "LoclistOp"}, top)
		return skip()
	}
}

func (o *Offset) Next() (*value.Stack, bool) { return o.f.next() }
func (o *Offset) Reset()                     { o.f.reset() }
func (o *Offset) Name() string               { return "offset" }
func (o *Offset) Err() error                 { return o.f.Err() }
