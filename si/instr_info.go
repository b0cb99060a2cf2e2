// Package si implements the Southern Islands target hooks: converting generic
// pseudo-ops to native instructions, emitting register copies, and answering
// encoding queries.
package si

import (
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sigen/api"
	"github.com/sarchlab/sigen/config"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

var _ api.Target = (*InstrInfo)(nil)

type legalizeFunc func(
	ii *InstrInfo,
	in *instr.Inst,
	fn *instr.Function,
	loc instr.DebugLoc,
) ([]*instr.Inst, error)

// InstrInfo is the SI instruction info. It is read-only after Build and can be
// shared by goroutines lowering different functions.
type InstrInfo struct {
	*sim.HookableBase

	name       string
	ri         regs.Info
	cfg        config.Config
	legalizers map[isa.Legalizer]legalizeFunc
}

// Name returns the name given at build time.
func (ii *InstrInfo) Name() string {
	return ii.name
}

// RegisterInfo returns the register description.
func (ii *InstrInfo) RegisterInfo() regs.Info {
	return ii.ri
}

// Config returns the configuration the instruction info was built with.
func (ii *InstrInfo) Config() config.Config {
	return ii.cfg
}

// ISAOpcode returns the native opcode replacing a generic one.
func (ii *InstrInfo) ISAOpcode(op isa.Opcode) (isa.Opcode, error) {
	return isa.ISAOpcode(op)
}

// EncodingType returns the encoding family of a native instruction.
func (ii *InstrInfo) EncodingType(in *instr.Inst) (isa.Family, error) {
	return isa.Classify(in.Opcode)
}

// EncodingBytes returns the encoded size of a native instruction.
func (ii *InstrInfo) EncodingBytes(in *instr.Inst) (int, error) {
	return isa.EncodedSize(in.Opcode, in.HasLiteral())
}

// Describe returns the encoding descriptor of a native instruction.
func (ii *InstrInfo) Describe(in *instr.Inst) (isa.Descriptor, error) {
	return isa.Describe(in.Opcode, in.HasLiteral())
}

func (ii *InstrInfo) isVector(op instr.Operand) bool {
	return op.IsReg() && ii.ri.Class(op.Reg) == regs.ClassVector
}
