// Package emu provides functional models of the RISC-V execute unit and of the
// register file and memory the core talks to.
package emu

import "github.com/sarchlab/scholar/insts"

// ALU implements the RV32I/RV64I arithmetic, logic and compare operations.
// It has no state besides the machine word width.
type ALU struct {
	xlen insts.XLEN
}

// NewALU creates a new ALU for the given machine word width.
func NewALU(xlen insts.XLEN) *ALU {
	return &ALU{xlen: xlen}
}

// XLEN returns the machine word width.
func (a *ALU) XLEN() insts.XLEN {
	return a.xlen
}

// Compute applies op to the two operands. Results are truncated to the
// machine word. Comparators return 1 or 0. Unrecognized operations return 0.
func (a *ALU) Compute(op insts.ALUOp, op1, op2 uint64) uint64 {
	x := a.xlen
	op1 = x.Trunc(op1)
	op2 = x.Trunc(op2)
	shamt := op2 & x.ShiftMask()

	if op.IsWord() {
		return x.Trunc(computeWord(op, uint32(op1), uint32(op2)))
	}

	switch op {
	case insts.ALUAdd:
		return x.Trunc(op1 + op2)
	case insts.ALUSub:
		return x.Trunc(op1 - op2)
	case insts.ALUSll:
		return x.Trunc(op1 << shamt)
	case insts.ALUSrl:
		return op1 >> shamt
	case insts.ALUSra:
		return x.Trunc(uint64(x.Signed(op1) >> shamt))
	case insts.ALUXor:
		return op1 ^ op2
	case insts.ALUOr:
		return op1 | op2
	case insts.ALUAnd:
		return op1 & op2

	case insts.ALUSlt:
		return boolToWord(x.Signed(op1) < x.Signed(op2))
	case insts.ALUSltu:
		return boolToWord(op1 < op2)
	case insts.ALUEq:
		return boolToWord(op1 == op2)
	case insts.ALUNe:
		return boolToWord(op1 != op2)
	case insts.ALUGe:
		return boolToWord(x.Signed(op1) >= x.Signed(op2))
	case insts.ALUGeu:
		return boolToWord(op1 >= op2)

	default:
		return 0
	}
}

// computeWord evaluates a word operation on the low 32 bits of the operands
// and sign-extends the 32-bit result to 64 bits.
func computeWord(op insts.ALUOp, a, b uint32) uint64 {
	shamt := b & 0x1F

	var r uint32
	switch op {
	case insts.ALUAddW:
		r = a + b
	case insts.ALUSubW:
		r = a - b
	case insts.ALUSllW:
		r = a << shamt
	case insts.ALUSrlW:
		r = a >> shamt
	case insts.ALUSraW:
		r = uint32(int32(a) >> shamt)
	}

	return uint64(int64(int32(r)))
}

// BranchTaken interprets a comparator result.
func BranchTaken(result uint64) bool {
	return result&1 == 1
}

func boolToWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
