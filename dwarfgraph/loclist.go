package dwarfgraph

import (
	"fmt"

	"github.com/bkin/dwgrep/dwconst"
	"github.com/bkin/dwgrep/value"
)

// LoclistOpType is the type tag for LoclistOp values.
var LoclistOpType = value.NewType("loclist_op")

// LoclistOp is a single decoded DWARF location-expression opcode plus the
// attribute it came from, corresponding to value_loclist_op in the original
// implementation.
type LoclistOp struct {
	pos   int
	graph *Graph
	attr  *Attribute

	byteOffset int64
	opcode     int64
	operands   []int64 // 0, 1 or 2 numeric operands, per opcode
}

func newLoclistOp(graph *Graph, attr *Attribute, byteOffset, opcode int64, operands []int64) *LoclistOp {
	return &LoclistOp{graph: graph, attr: attr, byteOffset: byteOffset, opcode: opcode, operands: operands}
}

func (l *LoclistOp) Type() value.Type  { return LoclistOpType }
func (l *LoclistOp) Pos() int          { return l.pos }
func (l *LoclistOp) SetPos(pos int)    { l.pos = pos }
func (l *LoclistOp) Graph() *Graph     { return l.graph }
func (l *LoclistOp) Attribute() *Attribute { return l.attr }
func (l *LoclistOp) Opcode() int64     { return l.opcode }
func (l *LoclistOp) ByteOffset() int64 { return l.byteOffset }

// Operand returns the i'th operand (0 or 1) of the opcode, and false if the
// opcode does not carry that many operands.
func (l *LoclistOp) Operand(i int) (int64, bool) {
	if i < 0 || i >= len(l.operands) {
		return 0, false
	}
	return l.operands[i], true
}

func (l *LoclistOp) Clone() value.Value {
	operands := make([]int64, len(l.operands))
	copy(operands, l.operands)
	return &LoclistOp{
		pos: l.pos, graph: l.graph, attr: l.attr,
		byteOffset: l.byteOffset, opcode: l.opcode, operands: operands,
	}
}

func (l *LoclistOp) Cmp(other value.Value) value.CmpResult {
	o, ok := other.(*LoclistOp)
	if !ok || o.graph != l.graph {
		return value.Incomparable
	}
	if l.attr.die.Offset != o.attr.die.Offset || l.attr.field.Attr != o.attr.field.Attr {
		return value.Incomparable
	}
	switch {
	case l.byteOffset < o.byteOffset:
		return value.Less
	case l.byteOffset > o.byteOffset:
		return value.Greater
	default:
		return value.Equal
	}
}

func (l *LoclistOp) Show(b value.Brevity) string {
	name, ok := dwconst.OpName(l.opcode)
	if !ok {
		name = fmt.Sprintf("unknown_%#x", l.opcode)
	}
	if len(l.operands) == 0 {
		return "DW_OP_" + name
	}
	return fmt.Sprintf("DW_OP_%s%v", name, l.operands)
}

// decodeLocationExpression parses a raw DWARF location expression
// (exprloc) into the sequence of LoclistOp values it encodes. Unknown
// opcodes are decoded with zero operands rather than aborting the whole
// expression, since debug/dwarf has already validated the attribute's form
// and a single unrecognized extension opcode should not hide the rest of
// the evaluation.
func decodeLocationExpression(graph *Graph, attr *Attribute, expr []byte, addrSize int) []*LoclistOp {
	var ops []*LoclistOp
	pos := 0
	for pos < len(expr) {
		start := int64(pos)
		opcode := int64(expr[pos])
		pos++

		var operands []int64
		switch {
		case opcode >= 0x30 && opcode < 0x50: // DW_OP_litN
		case opcode >= 0x50 && opcode < 0x70: // DW_OP_regN
		case opcode >= 0x70 && opcode < 0x90: // DW_OP_bregN
			n, next, ok := readSLEB128(expr, pos)
			if !ok {
				ops = append(ops, newLoclistOp(graph, attr, start, opcode, nil))
				return ops
			}
			operands = []int64{n}
			pos = next
		default:
			var ok bool
			operands, pos, ok = decodeOperands(opcode, expr, pos, addrSize)
			if !ok {
				ops = append(ops, newLoclistOp(graph, attr, start, opcode, nil))
				return ops
			}
		}
		ops = append(ops, newLoclistOp(graph, attr, start, opcode, operands))
	}
	return ops
}

// decodeOperands decodes the fixed-shape operand list for opcodes outside
// the generated litN/regN/bregN families.
func decodeOperands(opcode int64, expr []byte, pos, addrSize int) ([]int64, int, bool) {
	readFixed := func(n int, signed bool) (int64, int, bool) {
		if pos+n > len(expr) {
			return 0, pos, false
		}
		var v uint64
		for i := 0; i < n; i++ {
			v |= uint64(expr[pos+i]) << (8 * i)
		}
		pos += n
		if signed {
			shift := uint(64 - 8*n)
			return int64(v<<shift) >> shift, pos, true
		}
		return int64(v), pos, true
	}

	switch opcode {
	case 0x03: // DW_OP_addr
		v, p, ok := readFixed(addrSize, false)
		return []int64{v}, p, ok
	case 0x08: // const1u
		v, p, ok := readFixed(1, false)
		return []int64{v}, p, ok
	case 0x09: // const1s
		v, p, ok := readFixed(1, true)
		return []int64{v}, p, ok
	case 0x0a: // const2u
		v, p, ok := readFixed(2, false)
		return []int64{v}, p, ok
	case 0x0b: // const2s
		v, p, ok := readFixed(2, true)
		return []int64{v}, p, ok
	case 0x0c: // const4u
		v, p, ok := readFixed(4, false)
		return []int64{v}, p, ok
	case 0x0d: // const4s
		v, p, ok := readFixed(4, true)
		return []int64{v}, p, ok
	case 0x0e: // const8u
		v, p, ok := readFixed(8, false)
		return []int64{v}, p, ok
	case 0x0f: // const8s
		v, p, ok := readFixed(8, true)
		return []int64{v}, p, ok
	case 0x10, 0x23: // constu, plus_uconst
		v, p, ok := readULEB128(expr, pos)
		return []int64{v}, p, ok
	case 0x11: // consts
		v, p, ok := readSLEB128(expr, pos)
		return []int64{v}, p, ok
	case 0x90: // regx
		v, p, ok := readULEB128(expr, pos)
		return []int64{v}, p, ok
	case 0x91: // fbreg
		v, p, ok := readSLEB128(expr, pos)
		return []int64{v}, p, ok
	case 0x92: // bregx
		reg, p1, ok := readULEB128(expr, pos)
		if !ok {
			return nil, pos, false
		}
		off, p2, ok := readSLEB128(expr, p1)
		if !ok {
			return nil, p1, false
		}
		return []int64{reg, off}, p2, true
	case 0x93, 0x9d: // piece, bit_piece (bit_piece has a second ULEB128 operand)
		size, p, ok := readULEB128(expr, pos)
		if !ok {
			return nil, pos, false
		}
		if opcode == 0x93 {
			return []int64{size}, p, true
		}
		off, p2, ok := readULEB128(expr, p)
		if !ok {
			return []int64{size}, p, true
		}
		return []int64{size, off}, p2, true
	case 0x94, 0x95: // deref_size, xderef_size
		v, p, ok := readFixed(1, false)
		return []int64{v}, p, ok
	case 0x98, 0x99: // call2, call4
		n := 2
		if opcode == 0x99 {
			n = 4
		}
		v, p, ok := readFixed(n, false)
		return []int64{v}, p, ok
	case 0x9c: // call_frame_cfa
		return nil, pos, true
	case 0x28: // bra
		v, p, ok := readFixed(2, true)
		return []int64{v}, p, ok
	case 0x29, 0x2a, 0x2b, 0x2c, 0x2d, 0x2e: // eq, ge, gt, le, lt, ne
		return nil, pos, true
	case 0x2f: // skip
		v, p, ok := readFixed(2, true)
		return []int64{v}, p, ok
	default:
		// No operand, or an operand shape this decoder does not model
		// (e.g. the DWARF5 typed-operand opcodes). The opcode itself
		// is still reported with zero operands.
		return nil, pos, true
	}
}

func readULEB128(b []byte, pos int) (int64, int, bool) {
	var result uint64
	var shift uint
	for {
		if pos >= len(b) {
			return 0, pos, false
		}
		by := b[pos]
		pos++
		result |= uint64(by&0x7f) << shift
		if by&0x80 == 0 {
			return int64(result), pos, true
		}
		shift += 7
		if shift >= 64 {
			return 0, pos, false
		}
	}
}

func readSLEB128(b []byte, pos int) (int64, int, bool) {
	var result int64
	var shift uint
	var byteVal byte
	for {
		if pos >= len(b) {
			return 0, pos, false
		}
		byteVal = b[pos]
		pos++
		result |= int64(byteVal&0x7f) << shift
		shift += 7
		if byteVal&0x80 == 0 {
			break
		}
		if shift >= 64 {
			return 0, pos, false
		}
	}
	if shift < 64 && byteVal&0x40 != 0 {
		result |= -1 << shift
	}
	return result, pos, true
}
