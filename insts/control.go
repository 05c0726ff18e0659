package insts

// ALUOp selects the operation performed by the execute stage.
type ALUOp uint8

// ALU operations. ALUNone evaluates to zero.
const (
	ALUNone ALUOp = iota
	ALUAdd
	ALUSub
	ALUSll
	ALUSlt
	ALUSltu
	ALUXor
	ALUSrl
	ALUSra
	ALUOr
	ALUAnd

	// Branch comparators. SLT and SLTU double as BLT and BLTU.
	ALUEq
	ALUNe
	ALUGe
	ALUGeu

	// RV64-only word operations.
	ALUAddW
	ALUSubW
	ALUSllW
	ALUSrlW
	ALUSraW
)

var aluOpNames = [...]string{
	ALUNone: "none",
	ALUAdd:  "add",
	ALUSub:  "sub",
	ALUSll:  "sll",
	ALUSlt:  "slt",
	ALUSltu: "sltu",
	ALUXor:  "xor",
	ALUSrl:  "srl",
	ALUSra:  "sra",
	ALUOr:   "or",
	ALUAnd:  "and",
	ALUEq:   "eq",
	ALUNe:   "ne",
	ALUGe:   "ge",
	ALUGeu:  "geu",
	ALUAddW: "addw",
	ALUSubW: "subw",
	ALUSllW: "sllw",
	ALUSrlW: "srlw",
	ALUSraW: "sraw",
}

func (op ALUOp) String() string {
	if int(op) < len(aluOpNames) {
		return aluOpNames[op]
	}
	return "unknown"
}

// IsWord reports whether op is one of the 32-bit word operations.
func (op ALUOp) IsWord() bool {
	return op >= ALUAddW && op <= ALUSraW
}

// MemOp is the memory access requested from the memory stage.
type MemOp uint8

// Memory operations.
const (
	MemIdle MemOp = iota
	MemReadByte
	MemReadHalf
	MemReadWord
	MemReadDouble
	MemReadByteU
	MemReadHalfU
	MemReadWordU
	MemWriteByte
	MemWriteHalf
	MemWriteWord
	MemWriteDouble
)

var memOpNames = [...]string{
	MemIdle:        "idle",
	MemReadByte:    "rd.b",
	MemReadHalf:    "rd.h",
	MemReadWord:    "rd.w",
	MemReadDouble:  "rd.d",
	MemReadByteU:   "rd.bu",
	MemReadHalfU:   "rd.hu",
	MemReadWordU:   "rd.wu",
	MemWriteByte:   "wr.b",
	MemWriteHalf:   "wr.h",
	MemWriteWord:   "wr.w",
	MemWriteDouble: "wr.d",
}

func (m MemOp) String() string {
	if int(m) < len(memOpNames) {
		return memOpNames[m]
	}
	return "unknown"
}

// IsRead reports whether m loads from memory.
func (m MemOp) IsRead() bool {
	return m >= MemReadByte && m <= MemReadWordU
}

// IsWrite reports whether m stores to memory.
func (m MemOp) IsWrite() bool {
	return m >= MemWriteByte && m <= MemWriteDouble
}

// Size returns the access width in bytes, or 0 for MemIdle.
func (m MemOp) Size() int {
	switch m {
	case MemReadByte, MemReadByteU, MemWriteByte:
		return 1
	case MemReadHalf, MemReadHalfU, MemWriteHalf:
		return 2
	case MemReadWord, MemReadWordU, MemWriteWord:
		return 4
	case MemReadDouble, MemWriteDouble:
		return 8
	default:
		return 0
	}
}

// Signed reports whether a read sign-extends its result.
func (m MemOp) Signed() bool {
	switch m {
	case MemReadByte, MemReadHalf, MemReadWord, MemReadDouble:
		return true
	default:
		return false
	}
}

// WBSource selects the value written back to the destination register.
type WBSource uint8

// Write-back sources.
const (
	WBNone       WBSource = iota
	WBMemory              // Load result
	WBALU                 // Execute result
	WBReturnAddr          // Operand 3 + 4
	WBOperand3            // CSR value captured by decode
)

var wbSourceNames = [...]string{
	WBNone:       "none",
	WBMemory:     "mem",
	WBALU:        "alu",
	WBReturnAddr: "pc+4",
	WBOperand3:   "op3",
}

func (w WBSource) String() string {
	if int(w) < len(wbSourceNames) {
		return wbSourceNames[w]
	}
	return "unknown"
}

// PCCtrl selects how the program counter is updated.
type PCCtrl uint8

// Program counter update modes.
const (
	PCIncrement PCCtrl = iota // PC + 4
	PCSet                     // Execute result
	PCAdd                     // PC + execute result
	PCCond                    // PC + operand 3 when the comparator is true
)

var pcCtrlNames = [...]string{
	PCIncrement: "inc",
	PCSet:       "set",
	PCAdd:       "add",
	PCCond:      "cond",
}

func (p PCCtrl) String() string {
	if int(p) < len(pcCtrlNames) {
		return pcCtrlNames[p]
	}
	return "unknown"
}

// CSRCtrl is the CSR write-back control. Counters are read-only, so the only
// value is CSRNoWrite.
type CSRCtrl uint8

// CSR controls.
const (
	CSRNoWrite CSRCtrl = iota
)

func (c CSRCtrl) String() string {
	if c == CSRNoWrite {
		return "nowr"
	}
	return "unknown"
}
