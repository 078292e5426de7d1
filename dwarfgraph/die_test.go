package dwarfgraph

import (
	"debug/dwarf"
	"strings"
	"testing"

	"github.com/bkin/dwgrep/value"
)

func TestDieShowBrief(t *testing.T) {
	g := &Graph{}
	entry := &dwarf.Entry{Offset: 0x11, Tag: dwarf.TagCompileUnit}
	d := NewDie(g, entry)
	if got, want := d.Show(value.Brief), "[0x11]\tDW_TAG_compile_unit"; got != want {
		t.Fatalf("Show(Brief) = %q, want %q", got, want)
	}
}

func TestDieCmpAcrossGraphsIncomparable(t *testing.T) {
	g1, g2 := &Graph{}, &Graph{}
	e := &dwarf.Entry{Offset: 5, Tag: dwarf.TagBaseType}
	a := NewDie(g1, e)
	b := NewDie(g2, e)
	if a.Cmp(b) != value.Incomparable {
		t.Fatalf("Cmp across distinct graphs should be Incomparable")
	}
}

func TestDieCmpByOffset(t *testing.T) {
	g := &Graph{}
	a := NewDie(g, &dwarf.Entry{Offset: 1})
	b := NewDie(g, &dwarf.Entry{Offset: 2})
	if a.Cmp(b) != value.Less {
		t.Fatalf("Cmp() = %v, want Less", a.Cmp(b))
	}
	if b.Cmp(a) != value.Greater {
		t.Fatalf("Cmp() = %v, want Greater", b.Cmp(a))
	}
	if a.Cmp(a.Clone()) != value.Equal {
		t.Fatalf("Cmp(clone) = %v, want Equal", a.Cmp(a.Clone()))
	}
}

func TestAttributeShowAndCmp(t *testing.T) {
	g := &Graph{}
	die := &dwarf.Entry{Offset: 0x20, Tag: dwarf.TagSubprogram}
	a := NewAttribute(g, die, dwarf.Field{Attr: dwarf.AttrName, Val: "main", Class: dwarf.ClassString})
	if !strings.HasPrefix(a.Show(value.Brief), "DW_AT_name") {
		t.Fatalf("Show() = %q, want prefix DW_AT_name", a.Show(value.Brief))
	}
	b := NewAttribute(g, die, dwarf.Field{Attr: dwarf.AttrByteSize, Val: "4", Class: dwarf.ClassConstant})
	if a.Cmp(b) != value.Less {
		t.Fatalf("AttrName should sort before AttrByteSize")
	}
}

func TestDecodeAttributeValueString(t *testing.T) {
	g := &Graph{}
	die := &dwarf.Entry{Offset: 0x20}
	a := NewAttribute(g, die, dwarf.Field{Attr: dwarf.AttrName, Val: "main", Class: dwarf.ClassString})
	vals := DecodeAttributeValue(g, a)
	if len(vals) != 1 {
		t.Fatalf("DecodeAttributeValue returned %d values, want 1", len(vals))
	}
	s, ok := vals[0].(*value.String)
	if !ok || s.Text() != "main" {
		t.Fatalf("value = %#v, want String(main)", vals[0])
	}
}

func TestDecodeAttributeValueLanguageUsesLangDomain(t *testing.T) {
	g := &Graph{}
	die := &dwarf.Entry{Offset: 0x20}
	a := NewAttribute(g, die, dwarf.Field{Attr: dwarf.AttrLanguage, Val: int64(0x16), Class: dwarf.ClassConstant})
	vals := DecodeAttributeValue(g, a)
	c, ok := vals[0].(*value.Constant)
	if !ok {
		t.Fatalf("value = %#v, want *value.Constant", vals[0])
	}
	if got, want := c.Show(value.Brief), "DW_LANG_Go"; got != want {
		t.Fatalf("Show() = %q, want %q", got, want)
	}
}

func TestDecodeAttributeValueBlockIsLocationExpression(t *testing.T) {
	g := &Graph{}
	die := &dwarf.Entry{Offset: 0x20}
	a := NewAttribute(g, die, dwarf.Field{
		Attr: dwarf.AttrLocation, Val: []byte{0x03, 0, 0, 0, 0, 0, 0, 0, 0}, Class: dwarf.ClassExprLoc,
	})
	vals := DecodeAttributeValue(g, a)
	if len(vals) != 1 {
		t.Fatalf("DecodeAttributeValue returned %d values, want 1", len(vals))
	}
	op, ok := vals[0].(*LoclistOp)
	if !ok || op.Opcode() != 0x03 {
		t.Fatalf("value = %#v, want LoclistOp(DW_OP_addr)", vals[0])
	}
}
