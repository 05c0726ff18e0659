package pipeline

import "github.com/sarchlab/scholar/insts"

// operands builds the three operand buses for an instruction. Register
// values and immediates are truncated to the machine word.
func operands(
	inst *insts.Instruction,
	in DecodeInput,
	xlen insts.XLEN,
) (op1, op2, op3 uint64) {
	word := inst.Word
	rs1 := in.Rs1Value
	rs2 := in.Rs2Value

	switch inst.Class {
	case insts.ClassLoad:
		op1, op2 = rs1, insts.ImmI(word)
	case insts.ClassStore:
		op1, op2, op3 = rs1, insts.ImmS(word), rs2
	case insts.ClassImm, insts.ClassImmW:
		op1 = rs1
		if inst.IsShiftImm() {
			op2 = insts.ImmIUnsigned(word)
		} else {
			op2 = insts.ImmI(word)
		}
	case insts.ClassReg, insts.ClassRegW:
		op1, op2 = rs1, rs2
	case insts.ClassAUIPC:
		op1, op2 = in.PC, insts.ImmU(word)
	case insts.ClassLUI:
		op2 = insts.ImmU(word)
	case insts.ClassBranch:
		op1, op2, op3 = rs1, rs2, insts.ImmB(word)
	case insts.ClassJALR:
		op1, op2, op3 = rs1, insts.ImmI(word), in.PC
	case insts.ClassJAL:
		op2, op3 = insts.ImmJ(word), in.PC
	case insts.ClassCSR:
		op3 = in.CSRValue
	}

	return xlen.Trunc(op1), xlen.Trunc(op2), xlen.Trunc(op3)
}
