// Package insts provides RISC-V instruction definitions and decoding.
package insts

// Base opcodes (instruction bits [6:0]).
const (
	OpcodeLoad   = 0b000_0011
	OpcodeImm    = 0b001_0011
	OpcodeAUIPC  = 0b001_0111
	OpcodeImmW   = 0b001_1011
	OpcodeStore  = 0b010_0011
	OpcodeReg    = 0b011_0011
	OpcodeLUI    = 0b011_0111
	OpcodeRegW   = 0b011_1011
	OpcodeBranch = 0b110_0011
	OpcodeJALR   = 0b110_0111
	OpcodeJAL    = 0b110_1111
	OpcodeSystem = 0b111_0011
)

// Class is the opcode class of an instruction. Each class has its own field
// validity rules.
type Class uint8

// Opcode classes.
const (
	ClassUnsupported Class = iota
	ClassLoad
	ClassStore
	ClassImm
	ClassImmW // RV64 only
	ClassReg
	ClassRegW // RV64 only
	ClassAUIPC
	ClassLUI
	ClassBranch
	ClassJALR
	ClassJAL
	ClassCSR
)

var classNames = [...]string{
	ClassUnsupported: "UNSUPPORTED",
	ClassLoad:        "LOAD",
	ClassStore:       "STORE",
	ClassImm:         "IMM",
	ClassImmW:        "IMMW",
	ClassReg:         "REG",
	ClassRegW:        "REGW",
	ClassAUIPC:       "AUIPC",
	ClassLUI:         "LUI",
	ClassBranch:      "BRANCH",
	ClassJALR:        "JALR",
	ClassJAL:         "JAL",
	ClassCSR:         "CSR",
}

func (c Class) String() string {
	if int(c) < len(classNames) {
		return classNames[c]
	}
	return "UNSUPPORTED"
}

// Classify maps an opcode to its class. The word classes only exist on RV64.
func Classify(opcode uint32, xlen XLEN) Class {
	switch opcode & 0x7F {
	case OpcodeLoad:
		return ClassLoad
	case OpcodeStore:
		return ClassStore
	case OpcodeImm:
		return ClassImm
	case OpcodeReg:
		return ClassReg
	case OpcodeAUIPC:
		return ClassAUIPC
	case OpcodeLUI:
		return ClassLUI
	case OpcodeBranch:
		return ClassBranch
	case OpcodeJALR:
		return ClassJALR
	case OpcodeJAL:
		return ClassJAL
	case OpcodeSystem:
		return ClassCSR
	case OpcodeImmW:
		if xlen == XLEN64 {
			return ClassImmW
		}
	case OpcodeRegW:
		if xlen == XLEN64 {
			return ClassRegW
		}
	}
	return ClassUnsupported
}

// IsValid reports whether the opcode belongs to a supported class.
func IsValid(opcode uint32, xlen XLEN) bool {
	return Classify(opcode, xlen) != ClassUnsupported
}

// Instruction is a decoded RISC-V instruction. Fields that are not
// meaningful for the instruction's class are zero.
type Instruction struct {
	Word  uint32 // Raw instruction word
	Class Class  // Opcode class

	Funct3 uint8
	Funct7 uint8 // Bits [31:25]; only bit 5 (word bit 30) selects an operation

	Rd  uint8  // Destination register
	Rs1 uint8  // First source register
	Rs2 uint8  // Second source register
	CSR uint16 // CSR address (bits [31:20])
}

// Opcode returns bits [6:0] of the instruction word.
func (i *Instruction) Opcode() uint8 {
	return uint8(i.Word & 0x7F)
}

// Alt reports whether funct7 bit 5 is set (SUB, SRA and friends).
func (i *Instruction) Alt() bool {
	return i.Funct7&0x20 != 0
}

// Supported reports whether the instruction belongs to a supported class.
func (i *Instruction) Supported() bool {
	return i.Class != ClassUnsupported
}

// IsShiftImm reports whether an IMM/IMMW instruction is a shift by immediate.
func (i *Instruction) IsShiftImm() bool {
	if i.Class != ClassImm && i.Class != ClassImmW {
		return false
	}
	return i.Funct3 == 0b001 || i.Funct3 == 0b101
}

// Raw field extractors.

func opcodeOf(word uint32) uint32 { return word & 0x7F }
func rdOf(word uint32) uint8      { return uint8((word >> 7) & 0x1F) }
func funct3Of(word uint32) uint8  { return uint8((word >> 12) & 0x7) }
func rs1Of(word uint32) uint8     { return uint8((word >> 15) & 0x1F) }
func rs2Of(word uint32) uint8     { return uint8((word >> 20) & 0x1F) }
func funct7Of(word uint32) uint8  { return uint8(word >> 25) }
func csrOf(word uint32) uint16    { return uint16(word >> 20) }

// fieldSet marks which fields are meaningful for a class.
type fieldSet uint8

const (
	hasFunct3 fieldSet = 1 << iota
	hasFunct7
	hasRs1
	hasRs2
	hasRd
	hasCSR
)

// classFields is the field validity table. Classes not listed (unsupported)
// keep no field at all.
var classFields = [...]fieldSet{
	ClassLoad:   hasFunct3 | hasRs1 | hasRd,
	ClassStore:  hasFunct3 | hasFunct7 | hasRs1 | hasRs2,
	ClassImm:    hasFunct3 | hasFunct7 | hasRs1 | hasRd,
	ClassImmW:   hasFunct3 | hasFunct7 | hasRs1 | hasRd,
	ClassReg:    hasFunct3 | hasFunct7 | hasRs1 | hasRs2 | hasRd,
	ClassRegW:   hasFunct3 | hasFunct7 | hasRs1 | hasRs2 | hasRd,
	ClassAUIPC:  hasRd,
	ClassLUI:    hasRd,
	ClassBranch: hasFunct3 | hasFunct7 | hasRs1 | hasRs2,
	ClassJALR:   hasFunct3 | hasRs1 | hasRd,
	ClassJAL:    hasRd,
	ClassCSR:    hasFunct3 | hasRs1 | hasRd | hasCSR,
}

// Decoder decodes RISC-V machine code into instructions.
type Decoder struct {
	xlen XLEN
}

// NewDecoder creates a new decoder for the given machine word width.
func NewDecoder(xlen XLEN) *Decoder {
	return &Decoder{xlen: xlen}
}

// XLEN returns the machine word width the decoder was built for.
func (d *Decoder) XLEN() XLEN {
	return d.xlen
}

// Decode decodes a 32-bit instruction word. The returned record is built from
// scratch for each call; fields outside the class's validity set are zero.
func (d *Decoder) Decode(word uint32) *Instruction {
	class := Classify(opcodeOf(word), d.xlen)
	inst := &Instruction{Word: word, Class: class}
	if class == ClassUnsupported {
		return inst
	}

	fields := classFields[class]

	// CSR immediate forms (funct3[2] set) carry a 5-bit immediate in the rs1
	// slot, not a register index.
	if class == ClassCSR && funct3Of(word)&0b100 != 0 {
		fields &^= hasRs1
	}

	if fields&hasFunct3 != 0 {
		inst.Funct3 = funct3Of(word)
	}
	if fields&hasFunct7 != 0 {
		inst.Funct7 = funct7Of(word)
	}
	if fields&hasRs1 != 0 {
		inst.Rs1 = rs1Of(word)
	}
	if fields&hasRs2 != 0 {
		inst.Rs2 = rs2Of(word)
	}
	if fields&hasRd != 0 {
		inst.Rd = rdOf(word)
	}
	if fields&hasCSR != 0 {
		inst.CSR = csrOf(word)
	}

	return inst
}
