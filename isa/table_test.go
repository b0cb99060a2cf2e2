package isa_test

import (
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/sigen/isa"
)

var _ = Describe("Opcode mapping table", func() {
	It("should pass the completeness check", func() {
		Expect(isa.Validate()).To(Succeed())
	})

	It("should give every generic opcode exactly one entry", func() {
		for _, op := range isa.Generics() {
			m, err := isa.Lookup(op)
			Expect(err).NotTo(HaveOccurred(), op.String())

			hasNative := m.Native != isa.OpInvalid
			hasLegalizer := m.Legalizer != isa.LegalizeNone
			Expect(hasNative).NotTo(Equal(hasLegalizer), op.String())
		}
	})

	It("should map deterministically", func() {
		for _, op := range isa.Generics() {
			first, err1 := isa.ISAOpcode(op)
			second, err2 := isa.ISAOpcode(op)
			Expect(first).To(Equal(second))
			Expect(err1 == nil).To(Equal(err2 == nil))
		}
	})

	It("should substitute direct mappings", func() {
		Expect(isa.ISAOpcode(isa.ILAddF32)).To(Equal(isa.VAddF32E32))
		Expect(isa.ISAOpcode(isa.ILMadF32)).To(Equal(isa.VMadF32))
		Expect(isa.ISAOpcode(isa.ILReturn)).To(Equal(isa.SEndpgm))
		Expect(isa.ISAOpcode(isa.ILExport)).To(Equal(isa.Exp))
	})

	It("should map native opcodes to themselves", func() {
		for _, op := range isa.Natives() {
			Expect(isa.ISAOpcode(op)).To(Equal(op))
		}
	})

	It("should point pseudo-ops at their legalizer", func() {
		m, err := isa.Lookup(isa.ILAbsF32)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Legalizer).To(Equal(isa.LegalizeAbs))

		m, err = isa.Lookup(isa.ILClampF32)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Legalizer).To(Equal(isa.LegalizeClamp))

		_, err = isa.ISAOpcode(isa.ILAbsF32)
		Expect(errors.Is(err, isa.ErrUnmapped)).To(BeTrue())
	})

	It("should fail hard on opcodes outside the table", func() {
		_, err := isa.Lookup(isa.OpInvalid)
		Expect(errors.Is(err, isa.ErrUnmapped)).To(BeTrue())
		Expect(errors.Is(err, isa.ErrInternal)).To(BeTrue())

		_, err = isa.ISAOpcode(isa.Opcode(0xffff))
		Expect(errors.Is(err, isa.ErrInternal)).To(BeTrue())
	})
})

var _ = Describe("IsInlineConstant", func() {
	DescribeTable("immediates",
		func(bits uint32, inline bool) {
			Expect(isa.IsInlineConstant(bits)).To(Equal(inline))
		},
		Entry("zero", uint32(0), true),
		Entry("64", uint32(64), true),
		Entry("65", uint32(65), false),
		Entry("-16", uint32(0xfffffff0), true),
		Entry("-17", uint32(0xffffffef), false),
		Entry("1.0", uint32(0x3f800000), true),
		Entry("-4.0", uint32(0xc0800000), true),
		Entry("3.7", uint32(0x406ccccd), false),
		Entry("-0.0", uint32(0x80000000), false),
		Entry("abs mask", uint32(0x7fffffff), false),
	)
})
