package insts

// Immediate extraction. Each helper returns the immediate sign-extended to
// 64 bits; callers truncate to the machine word with XLEN.Trunc.

// ImmI returns the 12-bit I-type immediate (bits [31:20]).
func ImmI(word uint32) uint64 {
	return SignExtend(uint64(word>>20), 12)
}

// ImmIUnsigned returns the I-type immediate zero-extended. Shift-by-immediate
// instructions use this form.
func ImmIUnsigned(word uint32) uint64 {
	return uint64(word >> 20)
}

// ImmS returns the 12-bit S-type immediate (bits [31:25] ∥ [11:7]).
func ImmS(word uint32) uint64 {
	imm := (word>>25)<<5 | (word>>7)&0x1F
	return SignExtend(uint64(imm), 12)
}

// ImmB returns the 13-bit B-type immediate
// (bits 31 ∥ 7 ∥ [30:25] ∥ [11:8] ∥ 0).
func ImmB(word uint32) uint64 {
	imm := (word>>31)<<12 |
		((word>>7)&0x1)<<11 |
		((word>>25)&0x3F)<<5 |
		((word>>8)&0xF)<<1
	return SignExtend(uint64(imm), 13)
}

// ImmU returns the U-type immediate: bits [31:12] shifted left by 12 and
// sign-extended from bit 31.
func ImmU(word uint32) uint64 {
	return SignExtend(uint64(word&0xFFFF_F000), 32)
}

// ImmJ returns the 21-bit J-type immediate
// (bits 31 ∥ [19:12] ∥ 20 ∥ [30:21] ∥ 0).
func ImmJ(word uint32) uint64 {
	imm := (word>>31)<<20 |
		((word>>12)&0xFF)<<12 |
		((word>>20)&0x1)<<11 |
		((word>>21)&0x3FF)<<1
	return SignExtend(uint64(imm), 21)
}
