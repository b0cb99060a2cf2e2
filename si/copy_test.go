package si_test

import (
	"errors"

	gomock "github.com/golang/mock/gomock"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
	"github.com/sarchlab/sigen/si"
	"github.com/sarchlab/sigen/verify"
)

var _ = Describe("CopyPhysReg", func() {
	var (
		mockCtrl *gomock.Controller
		ri       *MockInfo
		ii       *si.InstrInfo
		block    *instr.Block
		loc      instr.DebugLoc
		dst, src regs.Reg
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		ri = NewMockInfo(mockCtrl)
		ii = si.NewBuilder().WithRegisterInfo(ri).Build("si")

		loc = instr.DebugLoc{File: "copy.il", Line: 3}
		dst, src = regs.Reg(10), regs.Reg(20)
		ri.EXPECT().Name(gomock.Any()).Return("r").AnyTimes()

		block = instr.NewBlock("entry",
			instr.New(isa.SNop, instr.DebugLoc{}, nil, instr.FieldOp(0)),
			instr.New(isa.SEndpgm, instr.DebugLoc{}, nil),
		)
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	describeRegs := func(dc, sc regs.Class, dw, sw int) {
		ri.EXPECT().Class(dst).Return(dc).AnyTimes()
		ri.EXPECT().Class(src).Return(sc).AnyTimes()
		ri.EXPECT().Width(dst).Return(dw).AnyTimes()
		ri.EXPECT().Width(src).Return(sw).AnyTimes()
	}

	DescribeTable("same-class copies",
		func(class regs.Class, width int, kill bool, want isa.Opcode) {
			describeRegs(class, class, width, width)

			Expect(ii.CopyPhysReg(block, 1, loc, dst, src, kill)).To(Succeed())

			Expect(block.Insts).To(HaveLen(3))
			Expect(block.Insts[0].Opcode).To(Equal(isa.SNop))
			Expect(block.Insts[2].Opcode).To(Equal(isa.SEndpgm))

			mov := block.Insts[1]
			Expect(mov.Opcode).To(Equal(want))
			Expect(mov.DstOperands).To(Equal(instr.Dst(dst)))
			Expect(mov.SrcOperands).To(HaveLen(1))
			Expect(mov.SrcOperands[0].Reg).To(Equal(src))
			Expect(mov.SrcOperands[0].Kill).To(Equal(kill))
			Expect(mov.Loc).To(Equal(loc))
		},
		Entry("vector", regs.ClassVector, 1, false, isa.VMovB32E32),
		Entry("vector, kill", regs.ClassVector, 1, true, isa.VMovB32E32),
		Entry("scalar", regs.ClassScalar, 1, true, isa.SMovB32),
		Entry("scalar pair", regs.ClassScalar, 2, false, isa.SMovB64),
		Entry("special", regs.ClassSpecial, 1, false, isa.SMovB32),
		Entry("special pair", regs.ClassSpecial, 2, true, isa.SMovB64),
	)

	DescribeTable("rejected copies",
		func(dc, sc regs.Class, dw, sw int) {
			describeRegs(dc, sc, dw, sw)

			err := ii.CopyPhysReg(block, 1, loc, dst, src, true)

			Expect(errors.Is(err, si.ErrCrossClassCopy)).To(BeTrue())
			Expect(errors.Is(err, isa.ErrInternal)).To(BeTrue())
			Expect(err.Error()).To(HavePrefix("copy.il:3:0: "))
			Expect(block.Insts).To(HaveLen(2))
		},
		Entry("vector from scalar", regs.ClassVector, regs.ClassScalar, 1, 1),
		Entry("scalar from vector", regs.ClassScalar, regs.ClassVector, 1, 1),
		Entry("scalar from special", regs.ClassScalar, regs.ClassSpecial, 2, 2),
		Entry("pair from single", regs.ClassScalar, regs.ClassScalar, 2, 1),
		Entry("unknown registers", regs.ClassNone, regs.ClassNone, 1, 1),
	)

	It("should fail hard on a width without a move", func() {
		describeRegs(regs.ClassVector, regs.ClassVector, 2, 2)

		err := ii.CopyPhysReg(block, 0, loc, dst, src, false)

		Expect(errors.Is(err, isa.ErrInternal)).To(BeTrue())
		Expect(errors.Is(err, si.ErrCrossClassCopy)).To(BeFalse())
		Expect(block.Insts).To(HaveLen(2))
	})
})

var _ = Describe("CopyPhysReg on the SI register file", func() {
	It("should copy values the simulator can observe", func() {
		hook := si.NewTraceHook()
		ii := si.NewBuilder().WithHook(hook).Build("si")

		fn := instr.NewFunction("main", ii.RegisterInfo(),
			instr.NewBlock("entry",
				instr.New(isa.SEndpgm, instr.DebugLoc{}, nil),
			),
		)
		b := fn.Blocks[0]

		Expect(ii.CopyPhysReg(b, 0, instr.DebugLoc{}, regs.VGPR(2), regs.VGPR(1), true)).To(Succeed())
		Expect(ii.CopyPhysReg(b, 1, instr.DebugLoc{}, regs.SGPRPair(6), regs.SGPRPair(4), false)).To(Succeed())
		Expect(ii.CopyPhysReg(b, 2, instr.DebugLoc{}, regs.VCC, regs.EXEC, false)).To(Succeed())

		Expect(b.Format(fn.Regs)).To(Equal("entry:\n" +
			"  V_MOV_B32_e32 v2, v1<kill>\n" +
			"  S_MOV_B64 s[6:7], s[4:5]\n" +
			"  S_MOV_B64 vcc, exec\n" +
			"  S_ENDPGM\n"))
		Expect(hook.Copies()).To(Equal(3))
		Expect(verify.RunLint(fn, nil)).To(BeEmpty())

		fs := verify.NewFunctionalSimulator(fn.Regs)
		fs.SetF32(regs.VGPR(1), 2.5)
		fs.SetReg(regs.SGPRPair(4), 0x1234567800000001)
		fs.SetReg(regs.EXEC, 0xf)
		Expect(fs.Run(fn)).To(Succeed())

		Expect(fs.F32(regs.VGPR(2))).To(Equal(float32(2.5)))
		Expect(fs.Reg(regs.SGPRPair(6))).To(Equal(uint64(0x1234567800000001)))
		Expect(fs.Reg(regs.VCC)).To(Equal(uint64(0xf)))
	})

	It("should reject a copy between register files", func() {
		ii := si.NewBuilder().Build("si")
		b := instr.NewBlock("entry")

		err := ii.CopyPhysReg(b, 0, instr.DebugLoc{}, regs.VGPR(0), regs.SGPR(0), false)

		Expect(errors.Is(err, si.ErrCrossClassCopy)).To(BeTrue())
		Expect(err.Error()).To(ContainSubstring("v0 (vector, 1 dwords) <- s0 (scalar, 1 dwords)"))
		Expect(b.Len()).To(BeZero())
	})
})
