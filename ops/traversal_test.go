package ops

import (
	"debug/dwarf"
	"os"
	"testing"

	"github.com/bkin/dwgrep/dwarfgraph"
	"github.com/bkin/dwgrep/value"
)

// openSelfGraph opens the running test binary's own DWARF data, the way
// dwarfgraph's own tests do: go test binaries carry debug/dwarf sections by
// default, giving these tests a real object file to walk without
// hand-encoding .debug_info/.debug_abbrev bytes. Skipped when unavailable.
func openSelfGraph(t *testing.T) *dwarfgraph.Graph {
	t.Helper()
	g, err := dwarfgraph.Open(os.Args[0])
	if err != nil {
		t.Skipf("dwarfgraph.Open(self): %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

// TestWinfoOffset covers spec.md §8 scenario 1 ("winfo offset"): the walk
// yields at least one frame, and every frame's top is a Constant offset.
func TestWinfoOffset(t *testing.T) {
	g := openSelfGraph(t)
	op := NewOffset(NewWinfo(Start(), g))
	got := drain(t, op)
	if len(got) == 0 {
		t.Fatal("winfo offset produced no results")
	}
	for _, s := range got {
		if _, ok := value.TopAs[*value.Constant](s); !ok {
			t.Fatalf("winfo offset frame = %#v, want Constant", s)
		}
	}
}

// TestWinfoTagSubprogram covers spec.md §8 scenario 2 ("winfo
// ?TAG_subprogram"): the filtered sequence contains only subprogram DIEs.
func TestWinfoTagSubprogram(t *testing.T) {
	g := openSelfGraph(t)
	op := NewFilter(NewWinfo(Start(), g), NewTagPred(dwarf.TagSubprogram))
	got := drain(t, op)
	if len(got) == 0 {
		t.Skip("self DWARF has no DW_TAG_subprogram entries")
	}
	for _, s := range got {
		d, ok := value.TopAs[*dwarfgraph.Die](s)
		if !ok || d.Tag() != dwarf.TagSubprogram {
			t.Fatalf("filtered frame = %#v, want Die(Tag=DW_TAG_subprogram)", s)
		}
	}
}

// TestWinfoTagSubprogramName covers spec.md §8 scenario 3 ("winfo
// ?TAG_subprogram @AT_name"): every surviving subprogram projects a
// non-empty name string.
func TestWinfoTagSubprogramName(t *testing.T) {
	g := openSelfGraph(t)
	filtered := NewFilter(NewWinfo(Start(), g), NewTagPred(dwarf.TagSubprogram))
	op := NewValueOp(NewAttrNamed(filtered, g, dwarf.AttrName), g)
	got := drain(t, op)
	if len(got) == 0 {
		t.Skip("self DWARF has no named subprograms")
	}
	for _, s := range got {
		str, ok := value.TopAs[*value.String](s)
		if !ok || str.Text() == "" {
			t.Fatalf("@AT_name frame = %#v, want a non-empty String", s)
		}
	}
}

// TestWinfoTagVariableParentLabel covers spec.md §8 scenario 4 ("winfo
// ?TAG_variable parent label"): every surviving variable's parent resolves
// to a Die and labels as a DW_TAG_* constant.
func TestWinfoTagVariableParentLabel(t *testing.T) {
	g := openSelfGraph(t)
	filtered := NewFilter(NewWinfo(Start(), g), NewTagPred(dwarf.TagVariable))
	op := NewLabel(NewParent(filtered, g))
	got := drain(t, op)
	if len(got) == 0 {
		t.Skip("self DWARF has no DW_TAG_variable entries")
	}
	for _, s := range got {
		c, ok := value.TopAs[*value.Constant](s)
		if !ok {
			t.Fatalf("parent label frame = %#v, want Constant", s)
		}
		if c.Show(value.Brief)[:6] != "DW_TAG" {
			t.Fatalf("parent label = %q, want a DW_TAG_* name", c.Show(value.Brief))
		}
	}
}

// TestWinfoRootPartition covers spec.md §8 scenario 5 ("winfo ?root" /
// "winfo !root"): the two predicates partition every DIE in the file with
// no overlap, and ?root's survivors are exactly the compilation units.
func TestWinfoRootPartition(t *testing.T) {
	g := openSelfGraph(t)

	roots := drain(t, NewFilter(NewWinfo(Start(), g), NewRootPred(g)))
	nonRoots := drain(t, NewFilter(NewWinfo(Start(), g), Negate(NewRootPred(g))))
	all := drain(t, NewWinfo(Start(), g))

	if len(roots)+len(nonRoots) != len(all) {
		t.Fatalf("len(roots)+len(nonRoots) = %d, want len(all) = %d", len(roots)+len(nonRoots), len(all))
	}

	cus := 0
	cur := g.CUDiesCursor()
	for {
		e, err := cur.Next()
		if err != nil {
			t.Fatalf("CUDiesCursor.Next: %v", err)
		}
		if e == nil {
			break
		}
		cus++
	}
	if len(roots) != cus {
		t.Fatalf("winfo ?root produced %d results, want %d (compile unit count)", len(roots), cus)
	}

	for _, s := range roots {
		d, ok := value.TopAs[*dwarfgraph.Die](s)
		if !ok || d.Tag() != dwarf.TagCompileUnit {
			t.Fatalf("?root survivor = %#v, want a compile unit Die", s)
		}
	}
}

// TestWinfoChildChild covers spec.md §8 scenario 6 ("winfo child child"):
// two hops of child expansion run to completion without a fatal error.
func TestWinfoChildChild(t *testing.T) {
	g := openSelfGraph(t)
	op := NewChild(NewChild(NewWinfo(Start(), g), g), g)
	got := drain(t, op)
	t.Logf("winfo child child produced %d grandchildren", len(got))
	for _, s := range got {
		if _, ok := value.TopAs[*dwarfgraph.Die](s); !ok {
			t.Fatalf("winfo child child frame = %#v, want Die", s)
		}
	}
}
