package ops

import (
	"debug/dwarf"
	"strings"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/internal/dbg"
	"github.com/bkin/dwgrep/value"
)

// PredResult is the three-valued outcome of testing a predicate (§4.5):
// Fail is reserved for a type mismatch against the predicate's accepted
// types, distinct from an ordinary negative match.
type PredResult int

const (
	Yes PredResult = iota
	No
	Fail
)

// Pred is a stateless test against the top of a stack. Predicates never
// mutate the stack they are given.
type Pred interface {
	Test(s *value.Stack) PredResult
	Name() string
}

// negated wraps a predicate, flipping Yes/No while preserving Fail.
type negated struct{ p Pred }

// Negate returns the logical negation of p, implementing the `!X`
// counterpart of every `?X` predicate (§4.5).
func Negate(p Pred) Pred { return &negated{p} }

func (n *negated) Test(s *value.Stack) PredResult {
	switch n.p.Test(s) {
	case Yes:
		return No
	case No:
		return Yes
	default:
		return Fail
	}
}
func (n *negated) Name() string { return "!" + n.p.Name() }

// RootPred implements `?root`: Die tests IsRoot; Attribute is always No
// (attributes are never roots); any other type is Fail.
type RootPred struct{ graph *dwarfgraph.Graph }

// NewRootPred returns the ?root predicate over graph.
func NewRootPred(graph *dwarfgraph.Graph) *RootPred { return &RootPred{graph: graph} }

func (r *RootPred) Test(s *value.Stack) PredResult {
	top, ok := s.Top()
	if !ok {
		return Fail
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		isRoot, err := r.graph.IsRoot(v.Offset())
		if err != nil {
			dbg.Verbosef("?root: %v", err)
			return Fail
		}
		if isRoot {
			return Yes
		}
		return No
	case *dwarfgraph.Attribute:
		return No
	default:
		return Fail
	}
}
func (r *RootPred) Name() string { return "root" }

// AttrPred implements `?AT_X`/`?X` for an attribute code: Die tests
// whether it carries attribute code; Attribute tests its own name;
// Constant tests comparable-equality against Constant{code, DW_AT_dom}.
type AttrPred struct{ code dwarf.Attr }

// NewAttrPred returns the ?AT_X predicate for the given attribute code.
func NewAttrPred(code dwarf.Attr) *AttrPred { return &AttrPred{code: code} }

func (p *AttrPred) Test(s *value.Stack) PredResult {
	top, ok := s.Top()
	if !ok {
		return Fail
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		for _, f := range v.Entry().Field {
			if f.Attr == p.code {
				return Yes
			}
		}
		return No
	case *dwarfgraph.Attribute:
		if v.Attr() == p.code {
			return Yes
		}
		return No
	case *value.Constant:
		return constantEquals(v, int64(p.code), dwconst.AttrDomain)
	default:
		return Fail
	}
}
func (p *AttrPred) Name() string { return "AT_" + attrName(p.code) }

// TagPred implements `?TAG_X`/`?X` for a tag code: Die tests its own tag;
// Constant tests comparable-equality against Constant{code, DW_TAG_dom}.
type TagPred struct{ code dwarf.Tag }

// NewTagPred returns the ?TAG_X predicate for the given tag code.
func NewTagPred(code dwarf.Tag) *TagPred { return &TagPred{code: code} }

func (p *TagPred) Test(s *value.Stack) PredResult {
	top, ok := s.Top()
	if !ok {
		return Fail
	}
	switch v := top.(type) {
	case *dwarfgraph.Die:
		if v.Tag() == p.code {
			return Yes
		}
		return No
	case *value.Constant:
		return constantEquals(v, int64(p.code), dwconst.TagDomain)
	default:
		return Fail
	}
}
func (p *TagPred) Name() string { return "TAG_" + tagName(p.code) }

// FormPred implements `?FORM_X`/`?X` for a form-class code: Attribute
// tests its own form class; Constant tests comparable-equality against
// Constant{code, DW_FORM_CLASS_dom}.
type FormPred struct{ code int64 }

// NewFormPred returns the ?FORM_X predicate for the given form class code.
func NewFormPred(code int64) *FormPred { return &FormPred{code: code} }

func (p *FormPred) Test(s *value.Stack) PredResult {
	top, ok := s.Top()
	if !ok {
		return Fail
	}
	switch v := top.(type) {
	case *dwarfgraph.Attribute:
		if int64(v.Form()) == p.code {
			return Yes
		}
		return No
	case *value.Constant:
		return constantEquals(v, p.code, dwconst.ClassDomain)
	default:
		return Fail
	}
}
func (p *FormPred) Name() string { return "FORM_" + className(p.code) }

func constantEquals(v *value.Constant, code int64, domain value.Domain) PredResult {
	other := value.NewConstant(code, domain)
	switch v.Cmp(other) {
	case value.Equal:
		return Yes
	case value.Incomparable:
		return Fail
	default:
		return No
	}
}

func attrName(code dwarf.Attr) string {
	name, ok := dwconst.AttrDomain.Namer(int64(code))
	if !ok {
		return "unknown"
	}
	return strings.TrimPrefix(name, "DW_AT_")
}

func tagName(code dwarf.Tag) string {
	name, ok := dwconst.TagDomain.Namer(int64(code))
	if !ok {
		return "unknown"
	}
	return strings.TrimPrefix(name, "DW_TAG_")
}

func className(code int64) string {
	name, ok := dwconst.ClassDomain.Namer(code)
	if !ok {
		return "unknown"
	}
	return strings.TrimPrefix(name, "DW_FORM_CLASS_")
}

// Filter applies a predicate to every upstream frame, dropping frames
// where the result is No or Fail (Fail is additionally reported through
// dbg, per §7's "reported identically to operator type mismatch" rule for
// predicate failures).
type Filter struct {
	upstream Op
	pred     Pred
}

// NewFilter returns a filter operator applying pred to upstream's output.
func NewFilter(upstream Op, pred Pred) *Filter {
	return &Filter{upstream: upstream, pred: pred}
}

func (f *Filter) Next() (*value.Stack, bool) {
	for {
		s, ok := f.upstream.Next()
		if !ok {
			return nil, false
		}
		switch f.pred.Test(s) {
		case Yes:
			return s, true
		case Fail:
			top, _ := s.Top()
			if top != nil {
				reportTypeMismatch("?"+f.pred.Name(), nil, top)
			}
		}
	}
}

func (f *Filter) Reset()       { f.upstream.Reset() }
func (f *Filter) Name() string { return "?" + f.pred.Name() }
func (f *Filter) Err() error   { return f.upstream.Err() }
