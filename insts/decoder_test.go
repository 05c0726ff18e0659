package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scholar/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder(insts.XLEN32)
	})

	Describe("Classification", func() {
		DescribeTable("should classify base opcodes",
			func(opcode uint32, xlen insts.XLEN, expected insts.Class) {
				Expect(insts.Classify(opcode, xlen)).To(Equal(expected))
				Expect(insts.IsValid(opcode, xlen)).To(Equal(expected != insts.ClassUnsupported))
			},
			Entry("LOAD", uint32(0x03), insts.XLEN32, insts.ClassLoad),
			Entry("STORE", uint32(0x23), insts.XLEN32, insts.ClassStore),
			Entry("IMM", uint32(0x13), insts.XLEN32, insts.ClassImm),
			Entry("REG", uint32(0x33), insts.XLEN32, insts.ClassReg),
			Entry("AUIPC", uint32(0x17), insts.XLEN32, insts.ClassAUIPC),
			Entry("LUI", uint32(0x37), insts.XLEN32, insts.ClassLUI),
			Entry("BRANCH", uint32(0x63), insts.XLEN32, insts.ClassBranch),
			Entry("JALR", uint32(0x67), insts.XLEN32, insts.ClassJALR),
			Entry("JAL", uint32(0x6F), insts.XLEN32, insts.ClassJAL),
			Entry("SYSTEM", uint32(0x73), insts.XLEN32, insts.ClassCSR),
			Entry("IMMW on RV64", uint32(0x1B), insts.XLEN64, insts.ClassImmW),
			Entry("REGW on RV64", uint32(0x3B), insts.XLEN64, insts.ClassRegW),
			Entry("IMMW on RV32", uint32(0x1B), insts.XLEN32, insts.ClassUnsupported),
			Entry("REGW on RV32", uint32(0x3B), insts.XLEN32, insts.ClassUnsupported),
			Entry("MISC-MEM (fence)", uint32(0x0F), insts.XLEN32, insts.ClassUnsupported),
			Entry("AMO", uint32(0x2F), insts.XLEN64, insts.ClassUnsupported),
			Entry("all ones", uint32(0x7F), insts.XLEN64, insts.ClassUnsupported),
		)

		It("should only look at bits [6:0]", func() {
			Expect(insts.Classify(0xFFFF_FF13, insts.XLEN32)).To(Equal(insts.ClassImm))
		})
	})

	Describe("Register-register", func() {
		// ADD x10, x11, x10 -> 0x00A58533
		It("should decode ADD x10, x11, x10", func() {
			inst := decoder.Decode(0x00A58533)

			Expect(inst.Class).To(Equal(insts.ClassReg))
			Expect(inst.Funct3).To(Equal(uint8(0)))
			Expect(inst.Alt()).To(BeFalse())
			Expect(inst.Rd).To(Equal(uint8(10)))
			Expect(inst.Rs1).To(Equal(uint8(11)))
			Expect(inst.Rs2).To(Equal(uint8(10)))
			Expect(inst.CSR).To(Equal(uint16(0)))
		})

		It("should decode SUB with funct7 bit 5 set", func() {
			inst := decoder.Decode(insts.SUB(1, 2, 3))

			Expect(inst.Class).To(Equal(insts.ClassReg))
			Expect(inst.Funct7).To(Equal(uint8(0x20)))
			Expect(inst.Alt()).To(BeTrue())
		})
	})

	Describe("Field forcing", func() {
		It("should force rd to zero for stores", func() {
			inst := decoder.Decode(insts.SW(7, 2, 0x7C)) // rd slot holds imm[4:0]

			Expect(inst.Class).To(Equal(insts.ClassStore))
			Expect(inst.Funct3).To(Equal(uint8(0b010)))
			Expect(inst.Rd).To(Equal(uint8(0)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(7)))
		})

		It("should force rd to zero for branches", func() {
			inst := decoder.Decode(insts.BEQ(4, 5, 0x1E))

			Expect(inst.Class).To(Equal(insts.ClassBranch))
			Expect(inst.Rd).To(Equal(uint8(0)))
			Expect(inst.Rs1).To(Equal(uint8(4)))
			Expect(inst.Rs2).To(Equal(uint8(5)))
		})

		DescribeTable("should keep only rd for U/J formats",
			func(word uint32) {
				inst := decoder.Decode(word | 0xFFFF_F000)

				Expect(inst.Rd).To(Equal(uint8(9)))
				Expect(inst.Rs1).To(Equal(uint8(0)))
				Expect(inst.Rs2).To(Equal(uint8(0)))
				Expect(inst.Funct3).To(Equal(uint8(0)))
				Expect(inst.Funct7).To(Equal(uint8(0)))
				Expect(inst.CSR).To(Equal(uint16(0)))
			},
			Entry("AUIPC", insts.AUIPC(9, 0)),
			Entry("LUI", insts.LUI(9, 0)),
			Entry("JAL", insts.JAL(9, 0)),
		)

		DescribeTable("should force funct7 and rs2 for I-type classes",
			func(word uint32, expected insts.Class) {
				inst := decoder.Decode(word)

				Expect(inst.Class).To(Equal(expected))
				Expect(inst.Funct7).To(Equal(uint8(0)))
				Expect(inst.Rs2).To(Equal(uint8(0)))
				Expect(inst.Rs1).To(Equal(uint8(3)))
				Expect(inst.Rd).To(Equal(uint8(4)))
			},
			Entry("LOAD", insts.LW(4, 3, -1), insts.ClassLoad),
			Entry("JALR", insts.JALR(4, 3, -1), insts.ClassJALR),
			Entry("CSR", insts.EncodeI(insts.OpcodeSystem, 4, 0b010, 3, -1), insts.ClassCSR),
		)

		It("should never expose immediate bits as rs2 for IMM", func() {
			inst := decoder.Decode(insts.ADDI(1, 2, -1)) // imm bits fill rs2 slot

			Expect(inst.Rs2).To(Equal(uint8(0)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
		})

		It("should keep funct7 for shift-immediate disambiguation", func() {
			inst := decoder.Decode(insts.SRAI(1, 2, 3))

			Expect(inst.Alt()).To(BeTrue())
			Expect(inst.IsShiftImm()).To(BeTrue())
		})

		It("should extract the CSR address only for CSR instructions", func() {
			inst := decoder.Decode(insts.CSRR(5, 0xB03))

			Expect(inst.Class).To(Equal(insts.ClassCSR))
			Expect(inst.CSR).To(Equal(uint16(0xB03)))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(0)))

			Expect(decoder.Decode(insts.LW(5, 1, -1)).CSR).To(Equal(uint16(0)))
		})

		It("should not report the uimm of CSR immediate forms as rs1", func() {
			// csrrsi x5, 0xb00, 17
			inst := decoder.Decode(insts.EncodeI(insts.OpcodeSystem, 5, 0b110, 17, 0xB00))

			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.CSR).To(Equal(uint16(0xB00)))
		})

		It("should force every field to zero for unsupported opcodes", func() {
			inst := decoder.Decode(0xFFFFFFFF)

			Expect(inst.Class).To(Equal(insts.ClassUnsupported))
			Expect(inst.Supported()).To(BeFalse())
			Expect(inst.Word).To(Equal(uint32(0xFFFFFFFF)))
			Expect(inst.Funct3).To(BeZero())
			Expect(inst.Funct7).To(BeZero())
			Expect(inst.Rd).To(BeZero())
			Expect(inst.Rs1).To(BeZero())
			Expect(inst.Rs2).To(BeZero())
			Expect(inst.CSR).To(BeZero())
		})
	})

	Describe("RV64 word classes", func() {
		BeforeEach(func() {
			decoder = insts.NewDecoder(insts.XLEN64)
		})

		It("should decode ADDW", func() {
			inst := decoder.Decode(insts.ADDW(1, 2, 3))

			Expect(inst.Class).To(Equal(insts.ClassRegW))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
		})

		It("should decode ADDIW with rs2 forced", func() {
			inst := decoder.Decode(insts.ADDIW(1, 2, -1))

			Expect(inst.Class).To(Equal(insts.ClassImmW))
			Expect(inst.Rs2).To(Equal(uint8(0)))
		})

		It("should treat word opcodes as unsupported on RV32", func() {
			inst := insts.NewDecoder(insts.XLEN32).Decode(insts.ADDW(1, 2, 3))

			Expect(inst.Class).To(Equal(insts.ClassUnsupported))
			Expect(inst.Rd).To(BeZero())
		})
	})

	Describe("Immediates", func() {
		It("should extract the I immediate", func() {
			Expect(insts.ImmI(insts.ADDI(1, 1, -2048))).To(Equal(uint64(0xFFFF_FFFF_FFFF_F800)))
			Expect(insts.ImmI(insts.ADDI(1, 1, 2047))).To(Equal(uint64(2047)))
		})

		It("should zero-extend the shift immediate", func() {
			Expect(insts.ImmIUnsigned(insts.SRAI(1, 1, 5))).To(Equal(uint64(0x405)))
		})

		It("should extract the S immediate", func() {
			Expect(int64(insts.ImmS(insts.SW(1, 2, -4)))).To(Equal(int64(-4)))
			Expect(int64(insts.ImmS(insts.SW(1, 2, 0x7FF)))).To(Equal(int64(0x7FF)))
		})

		It("should extract the B immediate", func() {
			Expect(int64(insts.ImmB(insts.BEQ(1, 2, -4)))).To(Equal(int64(-4)))
			Expect(int64(insts.ImmB(insts.BEQ(1, 2, 4094)))).To(Equal(int64(4094)))
			Expect(int64(insts.ImmB(insts.BEQ(1, 2, -4096)))).To(Equal(int64(-4096)))
		})

		It("should extract the U immediate sign-extended from bit 31", func() {
			Expect(insts.ImmU(insts.LUI(1, 0x12345000))).To(Equal(uint64(0x12345000)))
			Expect(insts.ImmU(0x8000_0037)).To(Equal(uint64(0xFFFF_FFFF_8000_0000)))
		})

		It("should extract the J immediate", func() {
			Expect(int64(insts.ImmJ(insts.JAL(0, 2048)))).To(Equal(int64(2048)))
			Expect(int64(insts.ImmJ(insts.JAL(0, -1048576)))).To(Equal(int64(-1048576)))
			Expect(int64(insts.ImmJ(insts.JAL(0, 1048574)))).To(Equal(int64(1048574)))
		})
	})

	It("should be idempotent", func() {
		word := insts.BGEU(3, 4, -20)

		Expect(decoder.Decode(word)).To(Equal(decoder.Decode(word)))
	})
})
