package value

import "errors"

// ErrIncomparable is the fatal error the engine layer surfaces when a
// component asks two constants in unrelated domains to be ordered or
// tested for equality (§7's "incomparable constants" category). Cmp itself
// never returns an error — it reports Incomparable and lets the caller
// decide whether that is a per-frame Fail or this fatal condition; the
// per-attribute/tag/form predicates in package ops choose Fail, and no
// component in this engine currently returns ErrIncomparable.
var ErrIncomparable = errors.New("value: incomparable constant domains")

// Domain describes the enumeration space and presentation of a Constant:
// its comparability with other constants, and (optionally) a symbolic
// naming function used when showing the value. Domains for DWARF-specific
// enumerations (DW_TAG, DW_AT, DW_FORM, ...) are constructed by package
// dwconst; the two generic numeric domains live here because they are not
// DWARF-specific.
type Domain struct {
	// Name identifies the domain family, e.g. "hex", "decimal", "DW_TAG".
	Name string

	// Generic domains (plain hex/decimal numbers) are comparable with
	// every other domain; non-generic domains are comparable only with
	// each other when their Name matches, or with a generic domain.
	Generic bool

	// Namer looks up the symbolic name for a magnitude, e.g. 0x11 in the
	// DW_TAG domain names "DW_TAG_compile_unit". A nil Namer, or one
	// returning ok == false, falls back to numeric rendering.
	Namer func(magnitude int64) (name string, ok bool)
}

// ComparableWith reports whether constants in these two domains may be
// compared for equality/order.
func (d Domain) ComparableWith(o Domain) bool {
	if d.Generic || o.Generic {
		return true
	}
	return d.Name == o.Name
}

// HexDomain and DecimalDomain are the two presentation-only generic
// numeric domains: any constant in either is comparable with a constant in
// any other domain.
var (
	HexDomain     = Domain{Name: "hex", Generic: true}
	DecimalDomain = Domain{Name: "decimal", Generic: true}
)
