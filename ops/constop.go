package ops

import "github.com/bkin/dwgrep/value"

// Const wraps upstream, pushing a clone of a fixed value onto every frame.
// It backs every DWARF domain constant builtin (DW_TAG_subprogram and
// friends): unlike the value-shape operators, it never inspects the top of
// stack and never skips a frame.
type Const struct {
	upstream Op
	v        value.Value
}

// NewConst returns a constant producer fed by upstream, pushing a clone of
// v onto every frame it passes through.
func NewConst(upstream Op, v value.Value) *Const {
	return &Const{upstream: upstream, v: v}
}

func (c *Const) Next() (*value.Stack, bool) {
	s, ok := c.upstream.Next()
	if !ok {
		return nil, false
	}
	v := c.v.Clone()
	v.SetPos(0)
	ret := s.Clone()
	ret.Push(v)
	return ret, true
}

func (c *Const) Reset()       { c.upstream.Reset() }
func (c *Const) Name() string { return "const" }
func (c *Const) Err() error   { return c.upstream.Err() }
