package pipeline_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/scholar/insts"
	"github.com/sarchlab/scholar/timing/pipeline"
)

var _ = Describe("HazardUnit", func() {
	var hazardUnit *pipeline.HazardUnit

	BeforeEach(func() {
		hazardUnit = pipeline.NewHazardUnit()
	})

	DescribeTable("Handshake",
		func(reset, supported, rs1Dirty, rs2Dirty, downstream, expReady, expValid bool) {
			ready, valid := hazardUnit.Handshake(reset, supported, rs1Dirty, rs2Dirty, downstream)
			Expect(ready).To(Equal(expReady))
			Expect(valid).To(Equal(expValid))
		},
		Entry("reset", true, true, false, false, true, false, false),
		Entry("unsupported", false, false, true, true, false, true, false),
		Entry("clean and accepted", false, true, false, false, true, true, true),
		Entry("rs1 dirty", false, true, true, false, true, false, false),
		Entry("rs2 dirty", false, true, false, true, true, false, false),
		Entry("backpressure", false, true, false, false, false, false, true),
	)

	It("should never report a supported dirty instruction valid", func() {
		for _, rs1 := range []bool{false, true} {
			for _, rs2 := range []bool{false, true} {
				for _, down := range []bool{false, true} {
					_, valid := hazardUnit.Handshake(false, true, rs1, rs2, down)
					Expect(valid).To(Equal(!rs1 && !rs2))
				}
			}
		}
	})

	Describe("Stalled", func() {
		var decodeStage *pipeline.DecodeStage

		BeforeEach(func() {
			decodeStage = pipeline.NewDecodeStage(insts.XLEN32)
		})

		It("should count a held instruction as a stall", func() {
			in := decodeInput(insts.ADD(1, 2, 3))
			in.Rs2Dirty = true

			Expect(hazardUnit.Stalled(false, decodeStage.Decode(in))).To(BeTrue())
		})

		It("should count backpressure as a stall", func() {
			in := decodeInput(insts.ADD(1, 2, 3))
			in.DownstreamReady = false

			Expect(hazardUnit.Stalled(false, decodeStage.Decode(in))).To(BeTrue())
		})

		It("should not count accepted, unsupported or reset cycles", func() {
			Expect(hazardUnit.Stalled(false, decodeStage.Decode(decodeInput(insts.ADD(1, 2, 3))))).To(BeFalse())
			Expect(hazardUnit.Stalled(false, decodeStage.Decode(decodeInput(0xFFFF_FFFF)))).To(BeFalse())

			in := decodeInput(insts.ADD(1, 2, 3))
			in.Reset = true
			Expect(hazardUnit.Stalled(true, decodeStage.Decode(in))).To(BeFalse())
		})
	})
})
