package dwconst

import (
	"debug/dwarf"
	"fmt"
	"strings"
	"sync"
)

// tagByName and attrByName are built lazily by scanning the code space
// debug/dwarf recognizes, since the standard library exposes Tag/Attr ->
// name but not the reverse direction.
var (
	tagByNameOnce sync.Once
	tagByName     map[string]int64

	attrByNameOnce sync.Once
	attrByName     map[string]int64
)

// codeSpaceLimit bounds the scan used to build the reverse name tables;
// DWARF tag and attribute codes are small single or double-byte ULEB128
// values in practice, and vendor extensions above this range are not
// resolved by name.
const codeSpaceLimit = 0x1000

func buildTagByName() map[string]int64 {
	m := make(map[string]int64)
	for code := int64(0); code < codeSpaceLimit; code++ {
		name := dwarf.Tag(code).String()
		if name == "" || strings.HasPrefix(name, "Tag(") {
			continue
		}
		m[snakeCase(name)] = code
	}
	return m
}

func buildAttrByName() map[string]int64 {
	m := make(map[string]int64)
	for code := int64(0); code < codeSpaceLimit; code++ {
		name := dwarf.Attr(code).String()
		if name == "" || strings.HasPrefix(name, "Attr(") {
			continue
		}
		m[snakeCase(name)] = code
	}
	return m
}

// TagCode resolves a bare DW_TAG_* name (e.g. "compile_unit") to its code.
func TagCode(name string) (int64, error) {
	tagByNameOnce.Do(func() { tagByName = buildTagByName() })
	code, ok := tagByName[name]
	if !ok {
		return 0, fmt.Errorf("%s: unknown DW_TAG constant", name)
	}
	return code, nil
}

// AttrCode resolves a bare DW_AT_* name (e.g. "name") to its code.
func AttrCode(name string) (int64, error) {
	attrByNameOnce.Do(func() { attrByName = buildAttrByName() })
	code, ok := attrByName[name]
	if !ok {
		return 0, fmt.Errorf("%s: unknown DW_AT constant", name)
	}
	return code, nil
}

// TagCodes returns every DW_TAG_* code known to debug/dwarf, for callers
// (the builtin registry) that need to bind a name per code rather than
// resolve a single one.
func TagCodes() []int64 {
	tagByNameOnce.Do(func() { tagByName = buildTagByName() })
	return codesOf(tagByName)
}

// AttrCodes returns every DW_AT_* code known to debug/dwarf.
func AttrCodes() []int64 {
	attrByNameOnce.Do(func() { attrByName = buildAttrByName() })
	return codesOf(attrByName)
}

// ClassCodes returns every debug/dwarf.Class code the standard library
// names, i.e. the form-class space the `form` operator reports.
func ClassCodes() []int64 {
	var out []int64
	for code := int64(0); code < codeSpaceLimit; code++ {
		name := dwarf.Class(code).String()
		if name == "" || strings.HasPrefix(name, "Class(") {
			continue
		}
		out = append(out, code)
	}
	return out
}

func codesOf(m map[string]int64) []int64 {
	out := make([]int64, 0, len(m))
	for _, code := range m {
		out = append(out, code)
	}
	return out
}
