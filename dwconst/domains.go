// Package dwconst holds the DWARF constant domains the query engine reasons
// about: tags, attributes, forms, location-expression opcodes, languages,
// base-type encodings, member accessibilities and address classes.
//
// Tag, Attr and Class reuse the numeric space and names already known to
// debug/dwarf; the remaining domains are not exposed by the standard
// library and are tabulated here from the DWARF specification.
package dwconst

import (
	"debug/dwarf"
	"fmt"
	"strconv"
	"strings"

	"github.com/bkin/dwgrep/value"
)

// TagDomain covers DW_TAG_* codes. debug/dwarf names its Tag constants in
// CamelCase (TagCompileUnit); snakeCase restores the DW_TAG_compile_unit
// spelling used throughout DWARF documentation and query text.
var TagDomain = value.Domain{
	Name: "DW_TAG",
	Namer: func(magnitude int64) (string, bool) {
		name := dwarf.Tag(magnitude).String()
		if name == "" || strings.HasPrefix(name, "Tag(") {
			return "", false
		}
		return "DW_TAG_" + snakeCase(name), true
	},
}

// AttrDomain covers DW_AT_* codes.
var AttrDomain = value.Domain{
	Name: "DW_AT",
	Namer: func(magnitude int64) (string, bool) {
		name := dwarf.Attr(magnitude).String()
		if name == "" || strings.HasPrefix(name, "Attr(") {
			return "", false
		}
		return "DW_AT_" + snakeCase(name), true
	},
}

// snakeCase lowercases a CamelCase identifier and inserts underscores at
// case transitions, e.g. "CompileUnit" -> "compile_unit".
func snakeCase(s string) string {
	var sb strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			sb.WriteByte('_')
		}
		sb.WriteRune(r)
	}
	return strings.ToLower(sb.String())
}

// FormDomain covers DW_FORM_* codes.
var FormDomain = value.Domain{Name: "DW_FORM", Namer: tableNamer(formNames, "DW_FORM_")}

// ClassDomain covers debug/dwarf's Class enumeration, the semantic grouping
// (address, block, string, constant, ...) the standard library resolves an
// attribute's form to while decoding it. The `form` operator reports a
// Class rather than an exact DW_FORM_* code: debug/dwarf discards the
// precise form once it has classified and decoded the value, so e.g.
// DW_FORM_string and DW_FORM_strp are no longer distinguishable once
// parsed. See dwarfgraph.Attribute.Form.
var ClassDomain = value.Domain{
	Name: "DW_FORM_CLASS",
	Namer: func(magnitude int64) (string, bool) {
		name := dwarf.Class(magnitude).String()
		if name == "" || strings.HasPrefix(name, "Class(") {
			return "", false
		}
		return "DW_FORM_CLASS_" + snakeCase(strings.TrimPrefix(name, "Class")), true
	},
}

// OpDomain covers DW_OP_* location-expression opcodes.
var OpDomain = value.Domain{Name: "DW_OP", Namer: func(magnitude int64) (string, bool) {
	name, ok := OpName(magnitude)
	if !ok {
		return "", false
	}
	return "DW_OP_" + name, true
}}

// LangDomain covers DW_LANG_* codes.
var LangDomain = value.Domain{Name: "DW_LANG", Namer: tableNamer(langNames, "DW_LANG_")}

// AteDomain covers DW_ATE_* base type encodings.
var AteDomain = value.Domain{Name: "DW_ATE", Namer: tableNamer(ateNames, "DW_ATE_")}

// AccessDomain covers DW_ACCESS_* member accessibilities.
var AccessDomain = value.Domain{Name: "DW_ACCESS", Namer: tableNamer(accessNames, "DW_ACCESS_")}

// AddressClassDomain covers DW_ADDR_* address classes.
var AddressClassDomain = value.Domain{Name: "DW_ADDR", Namer: tableNamer(addressClassNames, "DW_ADDR_")}

func tableNamer(table map[int64]string, prefix string) func(int64) (string, bool) {
	return func(magnitude int64) (string, bool) {
		name, ok := table[magnitude]
		if !ok {
			return "", false
		}
		return prefix + name, true
	}
}

// codeByName looks up the numeric code for a bare constant name (without the
// domain prefix) within a table, returning an error naming the domain for
// use in `@NAME`-style lookups that fail to resolve.
func codeByName(domain string, table map[int64]string, name string) (int64, error) {
	for code, n := range table {
		if n == name {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%s: unknown %s constant", name, domain)
}

// FormCode resolves a bare DW_FORM_* name to its numeric code.
func FormCode(name string) (int64, error) { return codeByName("DW_FORM", formNames, name) }

// OpCode resolves a bare DW_OP_* name to its numeric code, including the
// generated register/literal families (litN, regN, bregN).
func OpCode(name string) (int64, error) {
	if code, ok := opFamilyCode(name); ok {
		return code, nil
	}
	return codeByName("DW_OP", opNames, name)
}

func opFamilyCode(name string) (int64, bool) {
	for _, fam := range []struct {
		prefix string
		base   int64
	}{{"lit", opLitBase}, {"breg", opBregBase}, {"reg", opRegBase}} {
		if !strings.HasPrefix(name, fam.prefix) {
			continue
		}
		n, err := strconv.Atoi(name[len(fam.prefix):])
		if err != nil || n < 0 || n >= 32 {
			continue
		}
		return fam.base + int64(n), true
	}
	return 0, false
}

// LangCode resolves a bare DW_LANG_* name to its numeric code.
func LangCode(name string) (int64, error) { return codeByName("DW_LANG", langNames, name) }

// AteCode resolves a bare DW_ATE_* name to its numeric code.
func AteCode(name string) (int64, error) { return codeByName("DW_ATE", ateNames, name) }
