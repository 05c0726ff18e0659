package insts

import "fmt"

var (
	loadNames   = [8]string{"lb", "lh", "lw", "ld", "lbu", "lhu", "lwu", ""}
	storeNames  = [8]string{"sb", "sh", "sw", "sd", "", "", "", ""}
	branchNames = [8]string{"beq", "bne", "", "", "blt", "bge", "bltu", "bgeu"}
	regNames    = [8]string{"add", "sll", "slt", "sltu", "xor", "srl", "or", "and"}
	immNames    = [8]string{"addi", "slli", "slti", "sltiu", "xori", "srli", "ori", "andi"}
	csrNames    = [8]string{"", "csrrw", "csrrs", "csrrc", "", "csrrwi", "csrrsi", "csrrci"}
)

// Mnemonic returns the assembler mnemonic, or "unknown" when the encoding
// does not name an RV32I/RV64I instruction.
func (i *Instruction) Mnemonic() string {
	name := ""

	switch i.Class {
	case ClassLoad:
		name = loadNames[i.Funct3]
	case ClassStore:
		name = storeNames[i.Funct3]
	case ClassBranch:
		name = branchNames[i.Funct3]
	case ClassReg:
		name = regNames[i.Funct3]
		if i.Alt() {
			switch i.Funct3 {
			case 0b000:
				name = "sub"
			case 0b101:
				name = "sra"
			}
		}
	case ClassImm:
		name = immNames[i.Funct3]
		if i.Funct3 == 0b101 && i.Alt() {
			name = "srai"
		}
	case ClassRegW:
		switch i.Funct3 {
		case 0b000:
			name = "addw"
			if i.Alt() {
				name = "subw"
			}
		case 0b001:
			name = "sllw"
		case 0b101:
			name = "srlw"
			if i.Alt() {
				name = "sraw"
			}
		}
	case ClassImmW:
		switch i.Funct3 {
		case 0b000:
			name = "addiw"
		case 0b001:
			name = "slliw"
		case 0b101:
			name = "srliw"
			if i.Alt() {
				name = "sraiw"
			}
		}
	case ClassLUI:
		name = "lui"
	case ClassAUIPC:
		name = "auipc"
	case ClassJAL:
		name = "jal"
	case ClassJALR:
		name = "jalr"
	case ClassCSR:
		name = csrNames[i.Funct3]
		if i.Funct3 == 0 {
			switch i.Word {
			case ECALL():
				name = "ecall"
			case EBREAK():
				name = "ebreak"
			}
		}
	}

	if name == "" {
		return "unknown"
	}
	return name
}

// String returns a disassembly of the instruction.
func (i *Instruction) String() string {
	m := i.Mnemonic()
	if m == "unknown" {
		return fmt.Sprintf("unknown 0x%08x", i.Word)
	}

	switch i.Class {
	case ClassLoad, ClassJALR:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, i.Rd, int64(ImmI(i.Word)), i.Rs1)
	case ClassStore:
		return fmt.Sprintf("%s x%d, %d(x%d)", m, i.Rs2, int64(ImmS(i.Word)), i.Rs1)
	case ClassBranch:
		return fmt.Sprintf("%s x%d, x%d, %d", m, i.Rs1, i.Rs2, int64(ImmB(i.Word)))
	case ClassReg, ClassRegW:
		return fmt.Sprintf("%s x%d, x%d, x%d", m, i.Rd, i.Rs1, i.Rs2)
	case ClassImm, ClassImmW:
		if i.IsShiftImm() {
			return fmt.Sprintf("%s x%d, x%d, %d", m, i.Rd, i.Rs1, ImmIUnsigned(i.Word)&0x3F)
		}
		return fmt.Sprintf("%s x%d, x%d, %d", m, i.Rd, i.Rs1, int64(ImmI(i.Word)))
	case ClassLUI, ClassAUIPC:
		return fmt.Sprintf("%s x%d, 0x%x", m, i.Rd, (i.Word>>12)&0xFFFFF)
	case ClassJAL:
		return fmt.Sprintf("%s x%d, %d", m, i.Rd, int64(ImmJ(i.Word)))
	case ClassCSR:
		if m == "ecall" || m == "ebreak" {
			return m
		}
		if i.Funct3&0b100 != 0 {
			return fmt.Sprintf("%s x%d, 0x%03x, %d", m, i.Rd, i.CSR, (i.Word>>15)&0x1F)
		}
		return fmt.Sprintf("%s x%d, 0x%03x, x%d", m, i.Rd, i.CSR, i.Rs1)
	}
	return m
}
