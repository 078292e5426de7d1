package dwconst

import "fmt"

// formNames maps DW_FORM_* codes to their bare names. debug/dwarf consumes
// forms internally while decoding attributes but does not export the code
// table, so it is reproduced here.
var formNames = map[int64]string{
	0x01: "addr",
	0x03: "block2",
	0x04: "block4",
	0x05: "data2",
	0x06: "data4",
	0x07: "data8",
	0x08: "string",
	0x09: "block",
	0x0a: "block1",
	0x0b: "data1",
	0x0c: "flag",
	0x0d: "sdata",
	0x0e: "strp",
	0x0f: "udata",
	0x10: "ref_addr",
	0x11: "ref1",
	0x12: "ref2",
	0x13: "ref4",
	0x14: "ref8",
	0x15: "ref_udata",
	0x16: "indirect",
	0x17: "sec_offset",
	0x18: "exprloc",
	0x19: "flag_present",
	0x1a: "strx",
	0x1b: "addrx",
	0x1c: "ref_sup4",
	0x1d: "strp_sup",
	0x1e: "data16",
	0x1f: "line_strp",
	0x20: "ref_sig8",
	0x21: "implicit_const",
	0x22: "loclistx",
	0x23: "rnglistx",
	0x24: "ref_sup8",
	0x25: "strx1",
	0x26: "strx2",
	0x27: "strx3",
	0x28: "strx4",
	0x29: "addrx1",
	0x2a: "addrx2",
	0x2b: "addrx3",
	0x2c: "addrx4",
}

// opNames maps DW_OP_* opcodes used in location expressions. Covers the
// stack-machine opcodes commonly seen in practice; register/literal
// families that differ only by an embedded index (DW_OP_regN, DW_OP_bregN,
// DW_OP_litN) are named by OpName, which is the intended entry point for
// callers instead of this table directly.
var opNames = map[int64]string{
	0x03: "addr",
	0x06: "deref",
	0x08: "const1u",
	0x09: "const1s",
	0x0a: "const2u",
	0x0b: "const2s",
	0x0c: "const4u",
	0x0d: "const4s",
	0x0e: "const8u",
	0x0f: "const8s",
	0x10: "constu",
	0x11: "consts",
	0x12: "dup",
	0x13: "drop",
	0x14: "over",
	0x15: "pick",
	0x16: "swap",
	0x17: "rot",
	0x18: "xderef",
	0x19: "abs",
	0x1a: "and",
	0x1b: "div",
	0x1c: "minus",
	0x1d: "mod",
	0x1e: "mul",
	0x1f: "neg",
	0x20: "not",
	0x21: "or",
	0x22: "plus",
	0x23: "plus_uconst",
	0x24: "shl",
	0x25: "shr",
	0x26: "shra",
	0x27: "xor",
	0x28: "bra",
	0x29: "eq",
	0x2a: "ge",
	0x2b: "gt",
	0x2c: "le",
	0x2d: "lt",
	0x2e: "ne",
	0x2f: "skip",
	0x90: "regx",
	0x91: "fbreg",
	0x92: "bregx",
	0x93: "piece",
	0x94: "deref_size",
	0x95: "xderef_size",
	0x96: "nop",
	0x97: "push_object_address",
	0x98: "call2",
	0x99: "call4",
	0x9a: "call_ref",
	0x9b: "form_tls_address",
	0x9c: "call_frame_cfa",
	0x9d: "bit_piece",
	0x9e: "implicit_value",
	0x9f: "stack_value",
	0xa0: "implicit_pointer",
	0xa1: "addrx",
	0xa2: "constx",
	0xa3: "entry_value",
	0xa4: "const_type",
	0xa5: "regval_type",
	0xa6: "deref_type",
	0xa7: "xderef_type",
	0xa8: "convert",
	0xa9: "reinterpret",
}

// opRegBase and opBregBase are the first codes of the DW_OP_regN and
// DW_OP_bregN families (0x50-0x6f and 0x70-0x8f respectively), and
// opLitBase is the first code of the DW_OP_litN family (0x30-0x4f).
const (
	opLitBase  = 0x30
	opRegBase  = 0x50
	opBregBase = 0x70
)

// OpName resolves a DW_OP_* opcode to its bare name, including the
// register/literal families that are generated rather than tabulated.
func OpName(code int64) (string, bool) {
	switch {
	case code >= opLitBase && code < opLitBase+32:
		return fmt.Sprintf("lit%d", code-opLitBase), true
	case code >= opRegBase && code < opRegBase+32:
		return fmt.Sprintf("reg%d", code-opRegBase), true
	case code >= opBregBase && code < opBregBase+32:
		return fmt.Sprintf("breg%d", code-opBregBase), true
	}
	name, ok := opNames[code]
	return name, ok
}

// langNames maps DW_LANG_* codes.
var langNames = map[int64]string{
	0x0001: "C89",
	0x0002: "C",
	0x0003: "Ada83",
	0x0004: "C_plus_plus",
	0x0005: "Cobol74",
	0x0006: "Cobol85",
	0x0007: "Fortran77",
	0x0008: "Fortran90",
	0x0009: "Pascal83",
	0x000a: "Modula2",
	0x000b: "Java",
	0x000c: "C99",
	0x000d: "Ada95",
	0x000e: "Fortran95",
	0x000f: "PLI",
	0x0010: "ObjC",
	0x0011: "ObjC_plus_plus",
	0x0012: "UPC",
	0x0013: "D",
	0x0014: "Python",
	0x0015: "OpenCL",
	0x0016: "Go",
	0x0017: "Modula3",
	0x0018: "Haskell",
	0x0019: "C_plus_plus_03",
	0x001a: "C_plus_plus_11",
	0x001b: "OCaml",
	0x001c: "Rust",
	0x001d: "C11",
	0x001e: "Swift",
	0x001f: "Julia",
	0x0020: "Dylan",
	0x0021: "C_plus_plus_14",
	0x0022: "Fortran03",
	0x0023: "Fortran08",
	0x0024: "RenderScript",
	0x0025: "BLISS",
}

// ateNames maps DW_ATE_* base type encodings.
var ateNames = map[int64]string{
	0x01: "address",
	0x02: "boolean",
	0x03: "complex_float",
	0x04: "float",
	0x05: "signed",
	0x06: "signed_char",
	0x07: "unsigned",
	0x08: "unsigned_char",
	0x09: "imaginary_float",
	0x0a: "packed_decimal",
	0x0b: "numeric_string",
	0x0c: "edited",
	0x0d: "signed_fixed",
	0x0e: "unsigned_fixed",
	0x0f: "decimal_float",
	0x10: "UTF",
	0x11: "UCS",
	0x12: "ASCII",
}

// accessNames maps DW_ACCESS_* member accessibilities.
var accessNames = map[int64]string{
	0x01: "public",
	0x02: "protected",
	0x03: "private",
}

// addressClassNames maps DW_ADDR_* address classes.
var addressClassNames = map[int64]string{
	0x00: "none",
}
