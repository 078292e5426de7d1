package dwarfgraph

import "testing"

func uleb(v uint64) []byte {
	var out []byte
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		out = append(out, b)
		if v == 0 {
			break
		}
	}
	return out
}

func TestDecodeLocationExpressionLiteralsAndRegs(t *testing.T) {
	// DW_OP_lit3, DW_OP_reg0, DW_OP_breg1 <sleb -2>, DW_OP_plus_uconst <uleb 5>
	expr := []byte{0x33, 0x50, 0x71, 0x7e, 0x23}
	expr = append(expr, uleb(5)...)

	ops := decodeLocationExpression(nil, &Attribute{}, expr, 8)
	if len(ops) != 4 {
		t.Fatalf("decoded %d ops, want 4", len(ops))
	}

	if ops[0].opcode != 0x33 {
		t.Fatalf("op0 opcode = %#x, want 0x33 (lit3)", ops[0].opcode)
	}
	if len(ops[0].operands) != 0 {
		t.Fatalf("lit3 should carry no operands, got %v", ops[0].operands)
	}

	if ops[1].opcode != 0x50 {
		t.Fatalf("op1 opcode = %#x, want 0x50 (reg0)", ops[1].opcode)
	}

	if ops[2].opcode != 0x71 {
		t.Fatalf("op2 opcode = %#x, want 0x71 (breg1)", ops[2].opcode)
	}
	off, ok := ops[2].Operand(0)
	if !ok || off != -2 {
		t.Fatalf("breg1 operand = %v, %v, want -2, true", off, ok)
	}

	if ops[3].opcode != 0x23 {
		t.Fatalf("op3 opcode = %#x, want 0x23 (plus_uconst)", ops[3].opcode)
	}
	n, ok := ops[3].Operand(0)
	if !ok || n != 5 {
		t.Fatalf("plus_uconst operand = %v, %v, want 5, true", n, ok)
	}
}

func TestDecodeLocationExpressionConstAndCFA(t *testing.T) {
	// DW_OP_const1u 0x42, DW_OP_call_frame_cfa, DW_OP_nop
	expr := []byte{0x08, 0x42, 0x9c, 0x96}
	ops := decodeLocationExpression(nil, &Attribute{}, expr, 8)
	if len(ops) != 3 {
		t.Fatalf("decoded %d ops, want 3", len(ops))
	}
	v, ok := ops[0].Operand(0)
	if !ok || v != 0x42 {
		t.Fatalf("const1u operand = %v, %v, want 0x42, true", v, ok)
	}
	if len(ops[1].operands) != 0 {
		t.Fatalf("call_frame_cfa should carry no operands")
	}
	if ops[2].opcode != 0x96 {
		t.Fatalf("op2 opcode = %#x, want 0x96 (nop)", ops[2].opcode)
	}
}

func TestReadULEB128AndSLEB128(t *testing.T) {
	buf := append(uleb(624485), 0) // 0xE5 0x8E 0x26 per the DWARF spec example
	v, pos, ok := readULEB128(buf, 0)
	if !ok || v != 624485 {
		t.Fatalf("readULEB128 = %v, %v, want 624485, true", v, ok)
	}
	if pos != 3 {
		t.Fatalf("readULEB128 consumed %d bytes, want 3", pos)
	}

	sbuf := []byte{0x9b, 0xf1, 0x59} // -624485 SLEB128-encoded
	sv, spos, sok := readSLEB128(sbuf, 0)
	if !sok || sv != -624485 {
		t.Fatalf("readSLEB128 = %v, %v, want -624485, true", sv, sok)
	}
	if spos != 3 {
		t.Fatalf("readSLEB128 consumed %d bytes, want 3", spos)
	}
}

func TestOpShowNamesOpcodeAndOperands(t *testing.T) {
	op := newLoclistOp(nil, &Attribute{}, 0, 0x23, []int64{5})
	if got, want := op.Show(0), "DW_OP_plus_uconst[5]"; got != want {
		t.Fatalf("Show() = %q, want %q", got, want)
	}
	lit := newLoclistOp(nil, &Attribute{}, 0, 0x30, nil)
	if got, want := lit.Show(0), "DW_OP_lit0"; got != want {
		t.Fatalf("Show() = %q, want %q", got, want)
	}
}
