package builtin

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/internal/dbg"
	"github.com/bkin/dwgrep/ops"
	"github.com/bkin/dwgrep/value"
)

// exprEnv is the environment an `expr` expression runs against: the shape
// of the current top-of-stack value flattened to the handful of fields
// §4.7 names. A field not meaningful for the current value's kind keeps
// its zero value.
type exprEnv struct {
	Tag    string
	Name   string
	Offset int64
	Form   string
}

func buildExprEnv(v value.Value) exprEnv {
	var env exprEnv
	switch t := v.(type) {
	case *dwarfgraph.Die:
		env.Offset = int64(t.Offset())
		if name, ok := dwconst.TagDomain.Namer(int64(t.Tag())); ok {
			env.Tag = name
		}
	case *dwarfgraph.Attribute:
		if name, ok := dwconst.AttrDomain.Namer(int64(t.Attr())); ok {
			env.Name = name
		}
		if name, ok := dwconst.ClassDomain.Namer(int64(t.Form())); ok {
			env.Form = name
		}
	case *dwarfgraph.LoclistOp:
		env.Offset = t.ByteOffset()
		if name, ok := dwconst.OpDomain.Namer(t.Opcode()); ok {
			env.Tag = name
		}
	}
	return env
}

// toValue converts an expr result to the pipeline's value algebra. Only
// the scalar kinds expr naturally produces from arithmetic/string
// expressions are supported; anything else is not representable and the
// caller treats it as a type mismatch.
func toValue(res any) (value.Value, bool) {
	switch v := res.(type) {
	case bool:
		if v {
			return value.NewConstant(1, value.DecimalDomain), true
		}
		return value.NewConstant(0, value.DecimalDomain), true
	case int:
		return value.NewConstant(int64(v), value.DecimalDomain), true
	case int64:
		return value.NewConstant(v, value.DecimalDomain), true
	case float64:
		return value.NewConstant(int64(v), value.DecimalDomain), true
	case string:
		return value.NewString(v), true
	default:
		return nil, false
	}
}

// exprExec implements the `@expr("...")` producer: it compiles source once
// at construction and evaluates it against every upstream frame's
// top-of-stack shape, pushing the converted result.
type exprExec struct {
	upstream ops.Op
	source   string
	prg      *vm.Program
	err      error
}

func newExprExec(source string, upstream ops.Op) (*exprExec, error) {
	prg, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("expr(%q): %w", source, err)
	}
	return &exprExec{upstream: upstream, source: source, prg: prg}, nil
}

func (e *exprExec) Next() (*value.Stack, bool) {
	if e.err != nil {
		return nil, false
	}
	for {
		s, ok := e.upstream.Next()
		if !ok {
			e.err = e.upstream.Err()
			return nil, false
		}
		top, ok := s.Top()
		if !ok {
			continue
		}
		res, err := expr.Run(e.prg, buildExprEnv(top))
		if err != nil {
			dbg.Verbosef("expr(%q): %v", e.source, err)
			continue
		}
		v, ok := toValue(res)
		if !ok {
			dbg.Verbosef("expr(%q): unsupported result type %T", e.source, res)
			continue
		}
		v.SetPos(0)
		ret := s.Clone()
		ret.Push(v)
		return ret, true
	}
}

func (e *exprExec) Reset()       { e.err = nil; e.upstream.Reset() }
func (e *exprExec) Name() string { return fmt.Sprintf("expr(%q)", e.source) }
func (e *exprExec) Err() error   { return e.err }

// exprPred implements the `?expr("...")` predicate: Fail covers both an
// evaluation error and a non-boolean result. Compile errors are returned by
// newExprPred when the predicate is built.
type exprPred struct {
	source string
	prg    *vm.Program
}

func newExprPred(source string) (*exprPred, error) {
	prg, err := expr.Compile(source)
	if err != nil {
		return nil, fmt.Errorf("expr(%q): %w", source, err)
	}
	return &exprPred{source: source, prg: prg}, nil
}

func (p *exprPred) Test(s *value.Stack) ops.PredResult {
	top, ok := s.Top()
	if !ok {
		return ops.Fail
	}
	res, err := expr.Run(p.prg, buildExprEnv(top))
	if err != nil {
		dbg.Verbosef("?expr(%q): %v", p.source, err)
		return ops.Fail
	}
	b, ok := res.(bool)
	if !ok {
		dbg.Verbosef("?expr(%q): expected bool result, got %T", p.source, res)
		return ops.Fail
	}
	if b {
		return ops.Yes
	}
	return ops.No
}

func (p *exprPred) Name() string { return fmt.Sprintf("expr(%q)", p.source) }

// RegisterExpr binds the `expr` builtin (§4.7's "Domain-stack addition").
func RegisterExpr(dict *Dictionary) error {
	return dict.Register(&Builtin{
		Name: "expr",
		ExecArg: func(arg string, upstream ops.Op, _ *dwarfgraph.Graph, _ Scope) (ops.Op, error) {
			return newExprExec(arg, upstream)
		},
		PredArg: func(arg string, _ *dwarfgraph.Graph, _ Scope) (ops.Pred, error) {
			return newExprPred(arg)
		},
	})
}
