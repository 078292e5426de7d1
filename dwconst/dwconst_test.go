package dwconst

import "testing"

func TestTagDomainNamer(t *testing.T) {
	name, ok := TagDomain.Namer(0x11)
	if !ok {
		t.Fatalf("TagDomain.Namer(0x11) not ok")
	}
	if name != "DW_TAG_compile_unit" {
		t.Fatalf("TagDomain.Namer(0x11) = %q, want DW_TAG_compile_unit", name)
	}
}

func TestTagCodeRoundTrip(t *testing.T) {
	code, err := TagCode("compile_unit")
	if err != nil {
		t.Fatalf("TagCode: %v", err)
	}
	if code != 0x11 {
		t.Fatalf("TagCode(compile_unit) = %#x, want 0x11", code)
	}
}

func TestAttrDomainNamer(t *testing.T) {
	name, ok := AttrDomain.Namer(0x03)
	if !ok {
		t.Fatalf("AttrDomain.Namer(0x03) not ok")
	}
	if name != "DW_AT_name" {
		t.Fatalf("AttrDomain.Namer(0x03) = %q, want DW_AT_name", name)
	}
}

func TestAttrCodeRoundTrip(t *testing.T) {
	code, err := AttrCode("name")
	if err != nil {
		t.Fatalf("AttrCode: %v", err)
	}
	if code != 0x03 {
		t.Fatalf("AttrCode(name) = %#x, want 0x03", code)
	}
}

func TestFormDomainAndCode(t *testing.T) {
	name, ok := FormDomain.Namer(0x08)
	if !ok || name != "DW_FORM_string" {
		t.Fatalf("FormDomain.Namer(0x08) = %q, %v, want DW_FORM_string, true", name, ok)
	}
	code, err := FormCode("string")
	if err != nil || code != 0x08 {
		t.Fatalf("FormCode(string) = %#x, %v, want 0x08, nil", code, err)
	}
}

func TestOpNameFamilies(t *testing.T) {
	tests := []struct {
		code int64
		want string
	}{
		{0x30, "lit0"},
		{0x3f, "lit15"},
		{0x50, "reg0"},
		{0x70, "breg0"},
		{0x9c, "call_frame_cfa"},
	}
	for _, tt := range tests {
		got, ok := OpName(tt.code)
		if !ok || got != tt.want {
			t.Fatalf("OpName(%#x) = %q, %v, want %q, true", tt.code, got, ok, tt.want)
		}
	}
}

func TestOpCodeFamilies(t *testing.T) {
	tests := []struct {
		name string
		want int64
	}{
		{"lit0", 0x30},
		{"lit31", 0x4f},
		{"reg5", 0x55},
		{"breg10", 0x7a},
		{"call_frame_cfa", 0x9c},
	}
	for _, tt := range tests {
		got, err := OpCode(tt.name)
		if err != nil || got != tt.want {
			t.Fatalf("OpCode(%q) = %#x, %v, want %#x, nil", tt.name, got, err, tt.want)
		}
	}
}

func TestOpCodeUnknown(t *testing.T) {
	if _, err := OpCode("not_a_real_op"); err == nil {
		t.Fatalf("OpCode(not_a_real_op) succeeded, want error")
	}
}

func TestLangAndAteDomains(t *testing.T) {
	name, ok := LangDomain.Namer(0x16)
	if !ok || name != "DW_LANG_Go" {
		t.Fatalf("LangDomain.Namer(0x16) = %q, %v, want DW_LANG_Go, true", name, ok)
	}
	name, ok = AteDomain.Namer(0x04)
	if !ok || name != "DW_ATE_float" {
		t.Fatalf("AteDomain.Namer(0x04) = %q, %v, want DW_ATE_float, true", name, ok)
	}
}

func TestDomainsAreNotComparableWithEachOther(t *testing.T) {
	if TagDomain.ComparableWith(FormDomain) {
		t.Fatalf("TagDomain and FormDomain should not be comparable")
	}
}
