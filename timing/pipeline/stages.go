// Package pipeline provides the decode and execute stages of a single-issue
// in-order RISC-V core, together with the fetch, memory and write-back stages
// the timing core drives around them.
package pipeline

import (
	"github.com/sarchlab/scholar/emu"
	"github.com/sarchlab/scholar/insts"
)

// FetchStage handles instruction fetch from memory.
type FetchStage struct {
	memory *emu.Memory
}

// NewFetchStage creates a new fetch stage.
func NewFetchStage(memory *emu.Memory) *FetchStage {
	return &FetchStage{
		memory: memory,
	}
}

// Fetch reads the instruction word at the given PC.
func (s *FetchStage) Fetch(pc uint64) uint32 {
	return s.memory.Read32(pc)
}

// DecodeInput holds everything decode samples in one cycle.
type DecodeInput struct {
	Reset bool

	Word uint32
	PC   uint64

	Rs1Value uint64
	Rs2Value uint64
	Rs1Dirty bool
	Rs2Dirty bool

	CSRValue uint64

	DownstreamReady bool
}

// DecodeResult holds the result of the decode stage.
type DecodeResult struct {
	Inst *insts.Instruction

	// Read ports.
	Rs1Addr uint8
	Rs2Addr uint8
	CSRAddr uint16

	// Destination register.
	Rd uint8

	// Control signals.
	ALUOp    insts.ALUOp
	MemOp    insts.MemOp
	WBSource insts.WBSource
	PCCtrl   insts.PCCtrl
	CSRCtrl  insts.CSRCtrl

	// Operand buses.
	Op1 uint64
	Op2 uint64
	Op3 uint64

	PC uint64

	Ready bool
	Valid bool
}

// DecodeStage handles instruction decode, operand selection and the
// ready/valid handshake.
type DecodeStage struct {
	xlen    insts.XLEN
	decoder *insts.Decoder
	hazard  *HazardUnit
}

// NewDecodeStage creates a new decode stage.
func NewDecodeStage(xlen insts.XLEN) *DecodeStage {
	return &DecodeStage{
		xlen:    xlen,
		decoder: insts.NewDecoder(xlen),
		hazard:  NewHazardUnit(),
	}
}

// XLEN returns the machine word width.
func (s *DecodeStage) XLEN() insts.XLEN {
	return s.xlen
}

// ReadPorts returns the register and CSR addresses an instruction reads.
// Addresses the instruction does not use are 0.
func (s *DecodeStage) ReadPorts(word uint32) (rs1, rs2 uint8, csr uint16) {
	inst := s.decoder.Decode(word)
	return inst.Rs1, inst.Rs2, inst.CSR
}

// Gather samples the register file and the CSR unit at the addresses the
// instruction reads. Reset and DownstreamReady are left to the caller.
func (s *DecodeStage) Gather(
	word uint32,
	pc uint64,
	regs RegisterReader,
	csrs CSRReader,
) DecodeInput {
	rs1, rs2, csr := s.ReadPorts(word)

	return DecodeInput{
		Word:     word,
		PC:       pc,
		Rs1Value: regs.ReadReg(rs1),
		Rs2Value: regs.ReadReg(rs2),
		Rs1Dirty: regs.Dirty(rs1),
		Rs2Dirty: regs.Dirty(rs2),
		CSRValue: csrs.Read(csr),
	}
}

// Decode decodes the instruction word. The result depends only on in, so a
// stalled instruction decodes identically every cycle it is re-presented.
func (s *DecodeStage) Decode(in DecodeInput) DecodeResult {
	inst := s.decoder.Decode(in.Word)
	ready, valid := s.hazard.Handshake(
		in.Reset, inst.Supported(),
		in.Rs1Dirty, in.Rs2Dirty,
		in.DownstreamReady,
	)

	result := DecodeResult{
		Inst:     inst,
		Rs1Addr:  inst.Rs1,
		Rs2Addr:  inst.Rs2,
		CSRAddr:  inst.CSR,
		Rd:       inst.Rd,
		ALUOp:    insts.ALUAdd,
		MemOp:    insts.MemIdle,
		WBSource: insts.WBNone,
		PCCtrl:   insts.PCIncrement,
		CSRCtrl:  insts.CSRNoWrite,
		PC:       s.xlen.Trunc(in.PC),
		Ready:    ready,
		Valid:    valid,
	}

	if !inst.Supported() {
		return result
	}

	result.ALUOp = aluControl(inst)
	result.MemOp = memControl(inst, s.xlen)
	result.WBSource = wbSource(inst.Class)
	result.PCCtrl = pcControl(inst.Class)
	result.Op1, result.Op2, result.Op3 = operands(inst, in, s.xlen)

	return result
}

// ExecuteStage applies the ALU to decode's first two operands.
type ExecuteStage struct {
	alu *emu.ALU
}

// NewExecuteStage creates a new execute stage.
func NewExecuteStage(xlen insts.XLEN) *ExecuteStage {
	return &ExecuteStage{
		alu: emu.NewALU(xlen),
	}
}

// Execute computes the result of a decoded instruction.
func (s *ExecuteStage) Execute(d DecodeResult) uint64 {
	return s.alu.Compute(d.ALUOp, d.Op1, d.Op2)
}

// NextPC resolves the program counter that follows d given its execute
// result. taken reports whether control flow left the sequential path.
func (s *ExecuteStage) NextPC(d DecodeResult, result uint64) (pc uint64, taken bool) {
	x := s.alu.XLEN()

	switch d.PCCtrl {
	case insts.PCSet:
		return x.Trunc(result &^ 1), true
	case insts.PCAdd:
		return x.Trunc(d.PC + result), true
	case insts.PCCond:
		if emu.BranchTaken(result) {
			return x.Trunc(d.PC + d.Op3), true
		}
	}

	return x.Trunc(d.PC + 4), false
}

// MemoryStage handles memory load/store operations.
type MemoryStage struct {
	lsu *emu.LoadStoreUnit
}

// NewMemoryStage creates a new memory stage.
func NewMemoryStage(lsu *emu.LoadStoreUnit) *MemoryStage {
	return &MemoryStage{
		lsu: lsu,
	}
}

// Access performs the memory operation of d. The execute result is the
// address and operand 3 is the store data.
func (s *MemoryStage) Access(d DecodeResult, result uint64) uint64 {
	return s.lsu.Access(d.MemOp, result, d.Op3)
}

// WritebackStage selects the value written to the destination register.
type WritebackStage struct {
	xlen insts.XLEN
}

// NewWritebackStage creates a new write-back stage.
func NewWritebackStage(xlen insts.XLEN) *WritebackStage {
	return &WritebackStage{
		xlen: xlen,
	}
}

// Value returns the write-back value of d. ok is false when the instruction
// writes no register.
func (s *WritebackStage) Value(d DecodeResult, result, memData uint64) (value uint64, ok bool) {
	if d.Rd == 0 {
		return 0, false
	}

	switch d.WBSource {
	case insts.WBALU:
		return result, true
	case insts.WBMemory:
		return memData, true
	case insts.WBReturnAddr:
		return s.xlen.Trunc(d.Op3 + 4), true
	case insts.WBOperand3:
		return d.Op3, true
	default:
		return 0, false
	}
}
