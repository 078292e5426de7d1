// Package builtin implements the query engine's name registry: the
// DWARF domain constants, the value-shape and traversal operators bound to
// plain names, and the per-attribute/tag/form sugar bindings described in
// SPEC_FULL.md §4.6-4.7, modelled on the teacher's sync.RWMutex-guarded
// symbol table (tony/mergeop/register.go).
package builtin

import (
	"fmt"
	"sync"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/ops"
	"github.com/bkin/dwgrep/value"
)

// Scope is an opaque handle to a front-end lexical symbol table. No front
// end is implemented here; Scope exists so a BuildExec/BuildPred can be
// handed one once a parser is attached, without builtin needing to know
// its shape.
type Scope any

// ExecBuilder constructs a producer operator fed by upstream.
type ExecBuilder func(upstream ops.Op, graph *dwarfgraph.Graph, scope Scope) (ops.Op, error)

// PredBuilder constructs a predicate.
type PredBuilder func(graph *dwarfgraph.Graph, scope Scope) (ops.Pred, error)

// ExecArgBuilder constructs a producer operator that additionally takes a
// front-end-supplied literal argument, e.g. the quoted source text of
// `@expr("...")`. Most builtins take no argument; this is reserved for
// the handful (currently only `expr`) that are parametrized per call site.
type ExecArgBuilder func(arg string, upstream ops.Op, graph *dwarfgraph.Graph, scope Scope) (ops.Op, error)

// PredArgBuilder is ExecArgBuilder's predicate counterpart.
type PredArgBuilder func(arg string, graph *dwarfgraph.Graph, scope Scope) (ops.Pred, error)

// Selector is the value-type tag an overload specialization is keyed by.
// Every builtin in this registry dispatches on exactly the type at the top
// of stack, so a Selector is a single value.Type rather than a tuple.
type Selector struct{ Top value.Type }

// Builtin is one named entry in a Dictionary. Exactly one of (Exec, Pred,
// Overload) is populated: a plain producer, a plain predicate, or an
// overload table of further Builtins keyed by Selector.
type Builtin struct {
	Name string

	Exec ExecBuilder
	Pred PredBuilder

	ExecArg ExecArgBuilder
	PredArg PredArgBuilder

	Overload map[Selector]*Builtin
}

func (b *Builtin) isOverload() bool { return b.Overload != nil }

// Dictionary is a registry of builtins. Modelled on mergeop's package
// level symbol table, but made an instance type: a query engine builds one
// Dictionary per opened DWARF graph (domain constant names are
// graph-independent, but the traversal/value-shape builtins close over the
// graph they were built for) and may Merge independently built
// dictionaries together.
type Dictionary struct {
	mu sync.RWMutex
	d  map[string]*Builtin
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{d: map[string]*Builtin{}}
}

// ErrBuiltinExists is returned by Register when name is already bound.
var ErrBuiltinExists = fmt.Errorf("builtin already registered")

// Register adds b under its own name.
func (dict *Dictionary) Register(b *Builtin) error {
	dict.mu.Lock()
	defer dict.mu.Unlock()
	if _, exists := dict.d[b.Name]; exists {
		return fmt.Errorf("%s: %w", b.Name, ErrBuiltinExists)
	}
	dict.d[b.Name] = b
	return nil
}

// Lookup returns the builtin registered under name, or nil if none is.
func (dict *Dictionary) Lookup(name string) *Builtin {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	return dict.d[name]
}

// Symbols returns every registered name.
func (dict *Dictionary) Symbols() []string {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	out := make([]string, 0, len(dict.d))
	for name := range dict.d {
		out = append(out, name)
	}
	return out
}

// Merge combines dict and other into a new Dictionary (§4.6). A name
// present in only one side carries over unchanged. A name present in both
// must be an overload table on both sides; the result holds the union of
// their selector maps, and a selector present on both sides is a
// configuration error.
func (dict *Dictionary) Merge(other *Dictionary) (*Dictionary, error) {
	dict.mu.RLock()
	defer dict.mu.RUnlock()
	other.mu.RLock()
	defer other.mu.RUnlock()

	out := NewDictionary()
	for name, b := range dict.d {
		out.d[name] = b
	}
	for name, ob := range other.d {
		existing, present := out.d[name]
		if !present {
			out.d[name] = ob
			continue
		}
		if !existing.isOverload() || !ob.isOverload() {
			return nil, fmt.Errorf("builtin %q: cannot merge a non-overload binding", name)
		}
		merged := &Builtin{Name: name, Overload: make(map[Selector]*Builtin, len(existing.Overload)+len(ob.Overload))}
		for sel, spec := range existing.Overload {
			merged.Overload[sel] = spec
		}
		for sel, spec := range ob.Overload {
			if _, collide := merged.Overload[sel]; collide {
				return nil, fmt.Errorf("builtin %q: selector %v registered by both dictionaries", name, sel.Top)
			}
			merged.Overload[sel] = spec
		}
		out.d[name] = merged
	}
	return out, nil
}

// Dispatch resolves b against the type on top of s: for a plain builtin it
// is a no-op; for an overload table it picks the specialization whose
// selector matches, returning the standard type-error diagnostic naming
// every registered selector if none match.
func (b *Builtin) Dispatch(s *value.Stack) (*Builtin, error) {
	if !b.isOverload() {
		return b, nil
	}
	top, ok := s.Top()
	if !ok {
		return nil, fmt.Errorf("%s: empty stack", b.Name)
	}
	if spec, ok := b.Overload[Selector{Top: top.Type()}]; ok {
		return spec, nil
	}
	accepted := make([]string, 0, len(b.Overload))
	for sel := range b.Overload {
		accepted = append(accepted, sel.Top.String())
	}
	return nil, &ops.TypeMismatchError{Op: b.Name, Accepted: accepted, Got: top.Type().String()}
}

// BuildExec resolves and builds a producer for b against upstream's
// current top of stack is not possible ahead of time for an overload
// table (the selector is only known per-frame); callers that need
// per-frame dispatch should build a dispatching Op themselves using
// Dispatch. Plain (non-overload) builtins build directly.
func (b *Builtin) BuildExec(upstream ops.Op, graph *dwarfgraph.Graph, scope Scope) (ops.Op, error) {
	if b.isOverload() {
		return nil, fmt.Errorf("%s: is an overload table, not a plain producer", b.Name)
	}
	if b.Exec == nil {
		return nil, fmt.Errorf("%s: not a producer", b.Name)
	}
	return b.Exec(upstream, graph, scope)
}

// BuildPred resolves and builds a predicate for b.
func (b *Builtin) BuildPred(graph *dwarfgraph.Graph, scope Scope) (ops.Pred, error) {
	if b.isOverload() {
		return nil, fmt.Errorf("%s: is an overload table, not a plain predicate", b.Name)
	}
	if b.Pred == nil {
		return nil, fmt.Errorf("%s: not a predicate", b.Name)
	}
	return b.Pred(graph, scope)
}

// BuildExecArg builds a producer for a parametrized builtin (currently
// only `expr`), given the front end's literal argument text.
func (b *Builtin) BuildExecArg(arg string, upstream ops.Op, graph *dwarfgraph.Graph, scope Scope) (ops.Op, error) {
	if b.ExecArg == nil {
		return nil, fmt.Errorf("%s: not a parametrized producer", b.Name)
	}
	return b.ExecArg(arg, upstream, graph, scope)
}

// BuildPredArg builds a predicate for a parametrized builtin.
func (b *Builtin) BuildPredArg(arg string, graph *dwarfgraph.Graph, scope Scope) (ops.Pred, error) {
	if b.PredArg == nil {
		return nil, fmt.Errorf("%s: not a parametrized predicate", b.Name)
	}
	return b.PredArg(arg, graph, scope)
}
