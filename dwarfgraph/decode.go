package dwarfgraph

import (
	"debug/dwarf"

	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// defaultAddressSize is used to size DW_OP_addr operands when the owning
// compilation unit's address size cannot be recovered from the already-
// decoded attribute alone. Every target this engine is expected to run
// against in practice is 64-bit.
const defaultAddressSize = 8

// attrDomains maps attributes whose integer value is drawn from a specific
// DWARF enumeration to that enumeration's Domain, so e.g. DW_AT_language
// decodes to a DW_LANG_* constant rather than a bare hex number.
var attrDomains = map[dwarf.Attr]value.Domain{
	dwarf.AttrLanguage:     dwconst.LangDomain,
	dwarf.AttrEncoding:     dwconst.AteDomain,
	dwarf.AttrAccessibility: dwconst.AccessDomain,
	dwarf.AttrAddrClass:    dwconst.AddressClassDomain,
	dwarf.AttrCalling: value.DecimalDomain,
}

// DecodeAttributeValue produces the lazy sequence of values a `value`
// operator fans an attribute out into: one Constant, String or Die for
// scalar forms, and one LoclistOp per opcode for location expressions.
func DecodeAttributeValue(graph *Graph, attr *Attribute) []value.Value {
	field := attr.field
	switch v := field.Val.(type) {
	case string:
		return []value.Value{value.NewString(v)}

	case []byte:
		ops := decodeLocationExpression(graph, attr, v, defaultAddressSize)
		out := make([]value.Value, len(ops))
		for i, op := range ops {
			out[i] = op
		}
		return out

	case bool:
		magnitude := int64(0)
		if v {
			magnitude = 1
		}
		return []value.Value{value.NewConstant(magnitude, value.DecimalDomain)}

	case dwarf.Offset:
		entry, err := graph.EntryAt(v)
		if err != nil {
			return nil
		}
		return []value.Value{NewDie(graph, entry)}

	case int64:
		return []value.Value{value.NewConstant(v, domainFor(field.Attr))}

	case uint64:
		return []value.Value{value.NewConstant(int64(v), domainFor(field.Attr))}

	default:
		return nil
	}
}

func domainFor(attr dwarf.Attr) value.Domain {
	if d, ok := attrDomains[attr]; ok {
		return d
	}
	return value.HexDomain
}
