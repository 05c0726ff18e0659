// Package insts provides RISC-V RV32I/RV64I instruction definitions and decoding.
//
// This package implements decoding of RISC-V machine code into structured
// instruction records. It supports the base integer opcode classes:
//   - Loads and stores (LB/LH/LW/LD/LBU/LHU/LWU, SB/SH/SW/SD)
//   - Register-immediate and register-register arithmetic, including the
//     RV64-only 32-bit word variants
//   - LUI, AUIPC, JAL, JALR and conditional branches
//   - CSR reads (SYSTEM opcode)
//
// Every value that is one machine word wide travels as a uint64. On RV32 the
// upper 32 bits are always zero.
//
// Usage:
//
//	decoder := insts.NewDecoder(insts.XLEN32)
//	inst := decoder.Decode(0x00A58533) // ADD x10, x11, x10
//	fmt.Printf("Class: %v, Rd: %d, Rs1: %d, Rs2: %d\n", inst.Class, inst.Rd, inst.Rs1, inst.Rs2)
package insts
