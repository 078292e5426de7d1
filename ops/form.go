package ops

import (
	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// Form implements the `form` value-shape operator: Attribute yields its
// form class (see dwconst.ClassDomain for why this is the form *class*
// rather than the exact DW_FORM_* code).
type Form struct{ f *fanout }

// NewForm returns a form operator fed by upstream.
func NewForm(upstream Op) *Form {
	fo := &Form{}
	fo.f = newFanout(upstream, fo.open)
	return fo
}

func (fo *Form) open(base *value.Stack) (func() (value.Value, bool, error), bool, error) {
	top, ok := base.Top()
	if !ok {
		return skip()
	}
	a, ok := top.(*dwarfgraph.Attribute)
	if !ok {
		reportTypeMismatch("form", []string{"Attribute"}, top)
		return skip()
	}
	return once(dwconst.Class(int64(a.Form()))), true, nil
}

func (fo *Form) Next() (*value.Stack, bool) { return fo.f.next() }
func (fo *Form) Reset()                     { fo.f.reset() }
func (fo *Form) Name() string               { return "form" }
func (fo *Form) Err() error                  { return fo.f.Err() }
