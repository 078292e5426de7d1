package builtin

import (
	"errors"
	"testing"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/ops"
)

func constBuiltin(name string) *Builtin {
	return &Builtin{
		Name: name,
		Exec: func(upstream ops.Op, _ *dwarfgraph.Graph, _ Scope) (ops.Op, error) { return upstream, nil },
	}
}

func TestDictionaryRegisterLookupSymbols(t *testing.T) {
	dict := NewDictionary()
	if err := dict.Register(constBuiltin("offset")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if got := dict.Lookup("offset"); got == nil || got.Name != "offset" {
		t.Fatalf("Lookup(offset) = %#v, want a builtin named offset", got)
	}
	if got := dict.Lookup("nope"); got != nil {
		t.Fatalf("Lookup(nope) = %#v, want nil", got)
	}
	syms := dict.Symbols()
	if len(syms) != 1 || syms[0] != "offset" {
		t.Fatalf("Symbols() = %v, want [offset]", syms)
	}
}

func TestDictionaryRegisterDuplicateErrors(t *testing.T) {
	dict := NewDictionary()
	if err := dict.Register(constBuiltin("offset")); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	err := dict.Register(constBuiltin("offset"))
	if !errors.Is(err, ErrBuiltinExists) {
		t.Fatalf("second Register err = %v, want ErrBuiltinExists", err)
	}
}

func TestDictionaryMergeUnionsOverloadTables(t *testing.T) {
	sel1 := Selector{Top: dwarfgraph.DieType}
	sel2 := Selector{Top: dwarfgraph.AttributeType}

	a := NewDictionary()
	if err := a.Register(&Builtin{Name: "x", Overload: map[Selector]*Builtin{sel1: constBuiltin("x/die")}}); err != nil {
		t.Fatal(err)
	}
	b := NewDictionary()
	if err := b.Register(&Builtin{Name: "x", Overload: map[Selector]*Builtin{sel2: constBuiltin("x/attr")}}); err != nil {
		t.Fatal(err)
	}

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	x := merged.Lookup("x")
	if x == nil || len(x.Overload) != 2 {
		t.Fatalf("merged x = %#v, want overload table with 2 entries", x)
	}
}

func TestDictionaryMergeRejectsNonOverloadCollision(t *testing.T) {
	a := NewDictionary()
	a.Register(constBuiltin("offset"))
	b := NewDictionary()
	b.Register(constBuiltin("offset"))

	if _, err := a.Merge(b); err == nil {
		t.Fatal("Merge of two plain bindings for the same name: want error, got nil")
	}
}

func TestDictionaryMergeCarriesUniqueNames(t *testing.T) {
	a := NewDictionary()
	a.Register(constBuiltin("offset"))
	b := NewDictionary()
	b.Register(constBuiltin("label"))

	merged, err := a.Merge(b)
	if err != nil {
		t.Fatalf("Merge: %v", err)
	}
	if merged.Lookup("offset") == nil || merged.Lookup("label") == nil {
		t.Fatalf("merged dictionary missing a name: symbols=%v", merged.Symbols())
	}
}

func TestBuiltinDispatchOverloadAndMismatch(t *testing.T) {
	die := constBuiltin("offset/die")
	b := &Builtin{Name: "offset", Overload: map[Selector]*Builtin{
		{Top: dwarfgraph.DieType}: die,
	}}

	st := dieStackForTest()
	spec, err := b.Dispatch(st)
	if err != nil {
		t.Fatalf("Dispatch(Die): %v", err)
	}
	if spec != die {
		t.Fatalf("Dispatch(Die) = %#v, want the Die specialization", spec)
	}

	mismatch := valueStringStack()
	if _, err := b.Dispatch(mismatch); err == nil {
		t.Fatal("Dispatch(String) against a Die-only overload: want error, got nil")
	}
}
