package pipeline

import "github.com/sarchlab/scholar/insts"

// aluControl selects the ALU operation for an instruction.
func aluControl(inst *insts.Instruction) insts.ALUOp {
	switch inst.Class {
	case insts.ClassReg:
		return arithOp(inst.Funct3, inst.Alt(), true)
	case insts.ClassImm:
		return arithOp(inst.Funct3, inst.Alt(), false)
	case insts.ClassRegW:
		return wordOp(inst.Funct3, inst.Alt(), true)
	case insts.ClassImmW:
		return wordOp(inst.Funct3, inst.Alt(), false)
	case insts.ClassBranch:
		return branchOp(inst.Funct3)
	default:
		return insts.ALUAdd
	}
}

// arithOp decodes funct3 for the REG and IMM classes. funct7 bit 5 picks SUB
// over ADD only in the register form; it picks SRA over SRL in both.
func arithOp(funct3 uint8, alt, register bool) insts.ALUOp {
	switch funct3 {
	case 0b000:
		if register && alt {
			return insts.ALUSub
		}
		return insts.ALUAdd
	case 0b001:
		return insts.ALUSll
	case 0b010:
		return insts.ALUSlt
	case 0b011:
		return insts.ALUSltu
	case 0b100:
		return insts.ALUXor
	case 0b101:
		if alt {
			return insts.ALUSra
		}
		return insts.ALUSrl
	case 0b110:
		return insts.ALUOr
	default:
		return insts.ALUAnd
	}
}

func wordOp(funct3 uint8, alt, register bool) insts.ALUOp {
	switch funct3 {
	case 0b000:
		if register && alt {
			return insts.ALUSubW
		}
		return insts.ALUAddW
	case 0b001:
		return insts.ALUSllW
	case 0b101:
		if alt {
			return insts.ALUSraW
		}
		return insts.ALUSrlW
	default:
		return insts.ALUAdd
	}
}

// branchOp maps a branch funct3 to its comparator. The two encodings the base
// ISA leaves unallocated get ALUNone, which evaluates to 0 (never taken).
func branchOp(funct3 uint8) insts.ALUOp {
	switch funct3 {
	case 0b000:
		return insts.ALUEq
	case 0b001:
		return insts.ALUNe
	case 0b100:
		return insts.ALUSlt
	case 0b101:
		return insts.ALUGe
	case 0b110:
		return insts.ALUSltu
	case 0b111:
		return insts.ALUGeu
	default:
		return insts.ALUNone
	}
}

func pcControl(class insts.Class) insts.PCCtrl {
	switch class {
	case insts.ClassJALR:
		return insts.PCSet
	case insts.ClassJAL:
		return insts.PCAdd
	case insts.ClassBranch:
		return insts.PCCond
	default:
		return insts.PCIncrement
	}
}

// memControl selects the memory access. Anything other than LOAD and STORE
// stays idle.
func memControl(inst *insts.Instruction, xlen insts.XLEN) insts.MemOp {
	rv64 := xlen == insts.XLEN64

	switch inst.Class {
	case insts.ClassLoad:
		switch inst.Funct3 {
		case 0b000:
			return insts.MemReadByte
		case 0b001:
			return insts.MemReadHalf
		case 0b100:
			return insts.MemReadByteU
		case 0b101:
			return insts.MemReadHalfU
		}

		if rv64 {
			switch inst.Funct3 {
			case 0b010:
				return insts.MemReadWord
			case 0b110:
				return insts.MemReadWordU
			}
			return insts.MemReadDouble
		}
		return insts.MemReadWord

	case insts.ClassStore:
		switch inst.Funct3 {
		case 0b000:
			return insts.MemWriteByte
		case 0b001:
			return insts.MemWriteHalf
		}

		if rv64 && inst.Funct3 != 0b010 {
			return insts.MemWriteDouble
		}
		return insts.MemWriteWord
	}

	return insts.MemIdle
}

func wbSource(class insts.Class) insts.WBSource {
	switch class {
	case insts.ClassLoad:
		return insts.WBMemory
	case insts.ClassImm, insts.ClassImmW,
		insts.ClassReg, insts.ClassRegW,
		insts.ClassAUIPC, insts.ClassLUI:
		return insts.WBALU
	case insts.ClassJAL, insts.ClassJALR:
		return insts.WBReturnAddr
	case insts.ClassCSR:
		return insts.WBOperand3
	default:
		return insts.WBNone
	}
}
