package isa_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sigen/isa"
)

var _ = Describe("Encoding classifier", func() {
	It("should classify every native opcode into the family set", func() {
		for _, op := range isa.Natives() {
			f, err := isa.Classify(op)
			Expect(err).NotTo(HaveOccurred())
			Expect(int(f)).To(BeNumerically("<", isa.NumFamilies))
		}
	})

	It("should be stable across calls", func() {
		for _, op := range isa.Natives() {
			first, _ := isa.Classify(op)
			second, _ := isa.Classify(op)
			Expect(first).To(Equal(second))
		}
	})

	DescribeTable("families",
		func(op isa.Opcode, family isa.Family) {
			Expect(isa.Classify(op)).To(Equal(family))
		},
		Entry("export", isa.Exp, isa.EXP),
		Entry("lds", isa.DsReadB32, isa.LDS),
		Entry("image", isa.ImageSample, isa.MIMG),
		Entry("typed buffer", isa.TBufferLoadFormatXYZW, isa.MTBUF),
		Entry("untyped buffer", isa.BufferStoreDword, isa.MUBUF),
		Entry("scalar memory", isa.SBufferLoadDwordImm, isa.SMRD),
		Entry("salu 1op", isa.SMovB64, isa.SOP1),
		Entry("salu 2op", isa.SAddI32, isa.SOP2),
		Entry("salu compare", isa.SCmpEqI32, isa.SOPC),
		Entry("salu immediate", isa.SMovkI32, isa.SOPK),
		Entry("program", isa.SEndpgm, isa.SOPP),
		Entry("interpolation", isa.VInterpP1F32, isa.VINTRP),
		Entry("valu 1op", isa.VMovB32E32, isa.VOP1),
		Entry("valu 2op", isa.VMaxF32E32, isa.VOP2),
		Entry("valu 3op", isa.VMadF32, isa.VOP3),
		Entry("valu compare", isa.VCmpLtF32E32, isa.VOPC),
	)

	It("should reject generic opcodes", func() {
		_, err := isa.Classify(isa.ILAddF32)
		Expect(errors.Is(err, isa.ErrNotNative)).To(BeTrue())
		Expect(errors.Is(err, isa.ErrInternal)).To(BeTrue())
	})

	Context("encoded size", func() {
		It("should add the literal width to the base width", func() {
			for _, op := range isa.Natives() {
				f, _ := isa.Classify(op)

				without, err := isa.EncodedSize(op, false)
				Expect(err).NotTo(HaveOccurred())
				Expect(without).To(Equal(f.BaseBytes()))

				with, err := isa.EncodedSize(op, true)
				Expect(err).NotTo(HaveOccurred())
				Expect(with).To(Equal(f.BaseBytes() + isa.LiteralBytes))
			}
		})

		It("should use 64-bit encodings for memory, export and VOP3", func() {
			for _, f := range []isa.Family{isa.EXP, isa.LDS, isa.MIMG,
				isa.MTBUF, isa.MUBUF, isa.VOP3} {
				Expect(f.BaseBytes()).To(Equal(8), f.String())
			}
			for _, f := range []isa.Family{isa.SMRD, isa.SOP1, isa.SOP2,
				isa.SOPC, isa.SOPK, isa.SOPP, isa.VINTRP, isa.VOP1,
				isa.VOP2, isa.VOPC} {
				Expect(f.BaseBytes()).To(Equal(4), f.String())
			}
		})

		It("should size a VOP2 literal form as 8 bytes", func() {
			Expect(isa.EncodedSize(isa.VAddF32E32, true)).To(Equal(8))
			Expect(isa.EncodedSize(isa.VAddF32E32, false)).To(Equal(4))
		})
	})

	Context("wait-required", func() {
		It("should be set for memory and export families only", func() {
			for _, op := range isa.Natives() {
				d, err := isa.Describe(op, false)
				Expect(err).NotTo(HaveOccurred())

				switch d.Family {
				case isa.EXP, isa.LDS, isa.MIMG, isa.MTBUF, isa.MUBUF, isa.SMRD:
					Expect(d.WaitRequired).To(BeTrue(), op.String())
				default:
					Expect(d.WaitRequired).To(BeFalse(), op.String())
				}

				wait, err := isa.WaitRequired(op)
				Expect(err).NotTo(HaveOccurred())
				Expect(wait).To(Equal(d.WaitRequired))
			}
		})
	})

	Context("packed flags", func() {
		It("should keep the family in the low bits and wait in bit 4", func() {
			d, err := isa.Describe(isa.BufferLoadDword, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(d.Pack()).To(Equal(uint32(isa.MUBUF) | 1<<4))

			f, wait := isa.UnpackFlags(d.Pack())
			Expect(f).To(Equal(isa.MUBUF))
			Expect(wait).To(BeTrue())

			d, _ = isa.Describe(isa.VMadF32, false)
			Expect(d.Pack()).To(Equal(uint32(isa.VOP3)))
		})
	})

	Context("modifier capabilities", func() {
		It("should promote VOP1, VOP2 and VOPC to their VOP3 twin", func() {
			pairs := map[isa.Opcode]isa.Opcode{
				isa.VMovB32E32:   isa.VMovB32E64,
				isa.VAddF32E32:   isa.VAddF32E64,
				isa.VCmpLtF32E32: isa.VCmpLtF32E64,
				isa.VMadF32:      isa.VMadF32,
			}
			for from, to := range pairs {
				got, ok := isa.Promote(from)
				Expect(ok).To(BeTrue(), from.String())
				Expect(got).To(Equal(to))
			}

			_, ok := isa.Promote(isa.VAndB32E32)
			Expect(ok).To(BeFalse())
			_, ok = isa.Promote(isa.SMovB32)
			Expect(ok).To(BeFalse())
		})

		It("should only grant modifiers to VOP3 encodings", func() {
			for _, op := range isa.Natives() {
				f, _ := isa.Classify(op)
				if isa.HasSourceMods(op) || isa.HasClamp(op) {
					Expect(f).To(Equal(isa.VOP3), op.String())
				}
			}
			Expect(isa.HasSourceMods(isa.VMovB32E64)).To(BeTrue())
			Expect(isa.HasClamp(isa.VMovB32E64)).To(BeTrue())
			Expect(isa.HasClamp(isa.VCmpLtF32E64)).To(BeFalse())
		})
	})
})
