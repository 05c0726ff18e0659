package insts

// Instruction encoding helpers. They pack fields without range checks: an
// out-of-range immediate is silently truncated to its field width.

// EncodeR encodes an R-type instruction.
func EncodeR(opcode uint32, rd uint8, funct3 uint8, rs1, rs2 uint8, funct7 uint8) uint32 {
	var inst uint32
	inst |= uint32(funct7&0x7F) << 25
	inst |= uint32(rs2&0x1F) << 20
	inst |= uint32(rs1&0x1F) << 15
	inst |= uint32(funct3&0x7) << 12
	inst |= uint32(rd&0x1F) << 7
	inst |= opcode & 0x7F
	return inst
}

// EncodeI encodes an I-type instruction with a 12-bit immediate.
func EncodeI(opcode uint32, rd uint8, funct3 uint8, rs1 uint8, imm int64) uint32 {
	var inst uint32
	inst |= (uint32(imm) & 0xFFF) << 20
	inst |= uint32(rs1&0x1F) << 15
	inst |= uint32(funct3&0x7) << 12
	inst |= uint32(rd&0x1F) << 7
	inst |= opcode & 0x7F
	return inst
}

// EncodeS encodes an S-type instruction with a 12-bit immediate.
func EncodeS(opcode uint32, funct3 uint8, rs1, rs2 uint8, imm int64) uint32 {
	u := uint32(imm) & 0xFFF
	var inst uint32
	inst |= (u >> 5) << 25
	inst |= uint32(rs2&0x1F) << 20
	inst |= uint32(rs1&0x1F) << 15
	inst |= uint32(funct3&0x7) << 12
	inst |= (u & 0x1F) << 7
	inst |= opcode & 0x7F
	return inst
}

// EncodeB encodes a branch with a 13-bit byte offset (bit 0 dropped).
func EncodeB(funct3 uint8, rs1, rs2 uint8, offset int64) uint32 {
	u := uint32(offset) & 0x1FFE
	var inst uint32
	inst |= ((u >> 12) & 0x1) << 31
	inst |= ((u >> 5) & 0x3F) << 25
	inst |= uint32(rs2&0x1F) << 20
	inst |= uint32(rs1&0x1F) << 15
	inst |= uint32(funct3&0x7) << 12
	inst |= ((u >> 1) & 0xF) << 8
	inst |= ((u >> 11) & 0x1) << 7
	inst |= OpcodeBranch
	return inst
}

// EncodeU encodes LUI/AUIPC. imm is the full value; its low 12 bits are
// dropped.
func EncodeU(opcode uint32, rd uint8, imm int64) uint32 {
	return uint32(imm)&0xFFFF_F000 | uint32(rd&0x1F)<<7 | opcode&0x7F
}

// EncodeJ encodes JAL with a 21-bit byte offset (bit 0 dropped).
func EncodeJ(rd uint8, offset int64) uint32 {
	u := uint32(offset) & 0x1F_FFFE
	var inst uint32
	inst |= ((u >> 20) & 0x1) << 31
	inst |= ((u >> 1) & 0x3FF) << 21
	inst |= ((u >> 11) & 0x1) << 20
	inst |= ((u >> 12) & 0xFF) << 12
	inst |= uint32(rd&0x1F) << 7
	inst |= OpcodeJAL
	return inst
}

// Mnemonic helpers for the common RV32I/RV64I forms.

// ADD encodes add rd, rs1, rs2.
func ADD(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeReg, rd, 0b000, rs1, rs2, 0) }

// SUB encodes sub rd, rs1, rs2.
func SUB(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeReg, rd, 0b000, rs1, rs2, 0x20) }

// SLT encodes slt rd, rs1, rs2.
func SLT(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeReg, rd, 0b010, rs1, rs2, 0) }

// XOR encodes xor rd, rs1, rs2.
func XOR(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeReg, rd, 0b100, rs1, rs2, 0) }

// SRA encodes sra rd, rs1, rs2.
func SRA(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeReg, rd, 0b101, rs1, rs2, 0x20) }

// ADDW encodes addw rd, rs1, rs2 (RV64).
func ADDW(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeRegW, rd, 0b000, rs1, rs2, 0) }

// SUBW encodes subw rd, rs1, rs2 (RV64).
func SUBW(rd, rs1, rs2 uint8) uint32 { return EncodeR(OpcodeRegW, rd, 0b000, rs1, rs2, 0x20) }

// ADDI encodes addi rd, rs1, imm.
func ADDI(rd, rs1 uint8, imm int64) uint32 { return EncodeI(OpcodeImm, rd, 0b000, rs1, imm) }

// ADDIW encodes addiw rd, rs1, imm (RV64).
func ADDIW(rd, rs1 uint8, imm int64) uint32 { return EncodeI(OpcodeImmW, rd, 0b000, rs1, imm) }

// ANDI encodes andi rd, rs1, imm.
func ANDI(rd, rs1 uint8, imm int64) uint32 { return EncodeI(OpcodeImm, rd, 0b111, rs1, imm) }

// SLLI encodes slli rd, rs1, shamt.
func SLLI(rd, rs1 uint8, shamt uint8) uint32 {
	return EncodeI(OpcodeImm, rd, 0b001, rs1, int64(shamt&0x3F))
}

// SRLI encodes srli rd, rs1, shamt.
func SRLI(rd, rs1 uint8, shamt uint8) uint32 {
	return EncodeI(OpcodeImm, rd, 0b101, rs1, int64(shamt&0x3F))
}

// SRAI encodes srai rd, rs1, shamt.
func SRAI(rd, rs1 uint8, shamt uint8) uint32 {
	return EncodeI(OpcodeImm, rd, 0b101, rs1, int64(0x400|uint32(shamt&0x3F)))
}

// LUI encodes lui rd, imm (imm is the full value, low 12 bits ignored).
func LUI(rd uint8, imm int64) uint32 { return EncodeU(OpcodeLUI, rd, imm) }

// AUIPC encodes auipc rd, imm (imm is the full value, low 12 bits ignored).
func AUIPC(rd uint8, imm int64) uint32 { return EncodeU(OpcodeAUIPC, rd, imm) }

// JAL encodes jal rd, offset.
func JAL(rd uint8, offset int64) uint32 { return EncodeJ(rd, offset) }

// JALR encodes jalr rd, offset(rs1).
func JALR(rd, rs1 uint8, offset int64) uint32 { return EncodeI(OpcodeJALR, rd, 0b000, rs1, offset) }

// BEQ encodes beq rs1, rs2, offset.
func BEQ(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b000, rs1, rs2, offset) }

// BNE encodes bne rs1, rs2, offset.
func BNE(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b001, rs1, rs2, offset) }

// BLT encodes blt rs1, rs2, offset.
func BLT(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b100, rs1, rs2, offset) }

// BGE encodes bge rs1, rs2, offset.
func BGE(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b101, rs1, rs2, offset) }

// BLTU encodes bltu rs1, rs2, offset.
func BLTU(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b110, rs1, rs2, offset) }

// BGEU encodes bgeu rs1, rs2, offset.
func BGEU(rs1, rs2 uint8, offset int64) uint32 { return EncodeB(0b111, rs1, rs2, offset) }

// LB encodes lb rd, offset(rs1).
func LB(rd, rs1 uint8, offset int64) uint32 { return EncodeI(OpcodeLoad, rd, 0b000, rs1, offset) }

// LBU encodes lbu rd, offset(rs1).
func LBU(rd, rs1 uint8, offset int64) uint32 { return EncodeI(OpcodeLoad, rd, 0b100, rs1, offset) }

// LW encodes lw rd, offset(rs1).
func LW(rd, rs1 uint8, offset int64) uint32 { return EncodeI(OpcodeLoad, rd, 0b010, rs1, offset) }

// LD encodes ld rd, offset(rs1) (RV64).
func LD(rd, rs1 uint8, offset int64) uint32 { return EncodeI(OpcodeLoad, rd, 0b011, rs1, offset) }

// SB encodes sb rs2, offset(rs1).
func SB(rs2, rs1 uint8, offset int64) uint32 { return EncodeS(OpcodeStore, 0b000, rs1, rs2, offset) }

// SW encodes sw rs2, offset(rs1).
func SW(rs2, rs1 uint8, offset int64) uint32 { return EncodeS(OpcodeStore, 0b010, rs1, rs2, offset) }

// SD encodes sd rs2, offset(rs1) (RV64).
func SD(rs2, rs1 uint8, offset int64) uint32 { return EncodeS(OpcodeStore, 0b011, rs1, rs2, offset) }

// CSRR encodes csrr rd, csr (csrrs rd, csr, x0).
func CSRR(rd uint8, csr uint16) uint32 {
	return EncodeI(OpcodeSystem, rd, 0b010, 0, int64(csr&0xFFF))
}

// ECALL encodes ecall.
func ECALL() uint32 { return OpcodeSystem }

// EBREAK encodes ebreak.
func EBREAK() uint32 { return 1<<20 | OpcodeSystem }

// NOP encodes addi x0, x0, 0.
func NOP() uint32 { return ADDI(0, 0, 0) }
