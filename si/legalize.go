package si

import (
	"fmt"

	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
)

const (
	signMask = uint32(0x80000000)
	absMask  = ^signMask
)

type signOp struct {
	mod     func(m *instr.Mods)
	bitOp   isa.Opcode
	bitMask uint32
	fold    func(bits uint32) uint32
}

var (
	signAbs = signOp{
		mod:     func(m *instr.Mods) { m.Abs |= 1 },
		bitOp:   isa.VAndB32E32,
		bitMask: absMask,
		fold:    func(bits uint32) uint32 { return bits & absMask },
	}
	signNeg = signOp{
		mod:     func(m *instr.Mods) { m.Neg |= 1 },
		bitOp:   isa.VXorB32E32,
		bitMask: signMask,
		fold:    func(bits uint32) uint32 { return bits ^ signMask },
	}
)

func legalizeAbs(
	ii *InstrInfo,
	in *instr.Inst,
	_ *instr.Function,
	loc instr.DebugLoc,
) ([]*instr.Inst, error) {
	return ii.legalizeSign(in, loc, signAbs)
}

func legalizeNeg(
	ii *InstrInfo,
	in *instr.Inst,
	_ *instr.Function,
	loc instr.DebugLoc,
) ([]*instr.Inst, error) {
	return ii.legalizeSign(in, loc, signNeg)
}

// legalizeSign applies a sign-bit operation to the only source. The source
// modifier form rewrites the pseudo-op itself; otherwise the sign bit is
// masked with an explicit ALU instruction.
func (ii *InstrInfo) legalizeSign(
	in *instr.Inst,
	loc instr.DebugLoc,
	op signOp,
) ([]*instr.Inst, error) {
	dst, src, err := unaryOperands(in)
	if err != nil {
		return nil, err
	}

	if ii.cfg.SourceModifiers && !src.IsLiteral() {
		in.Opcode = isa.VMovB32E64
		in.Loc = loc
		op.mod(&in.Mods)
		return []*instr.Inst{in}, nil
	}

	if src.Kind == instr.KindImmediate {
		folded := src
		folded.Imm = op.fold(src.Imm)
		return []*instr.Inst{
			instr.New(isa.VMovB32E32, loc, []instr.Operand{dst}, folded),
		}, nil
	}

	var chain []*instr.Inst
	vsrc := src
	if !ii.isVector(src) {
		chain = append(chain,
			instr.New(isa.VMovB32E32, loc, []instr.Operand{dst}, src))
		vsrc = instr.KillOp(dst.Reg)
	}
	chain = append(chain,
		instr.New(op.bitOp, loc, []instr.Operand{dst},
			instr.BitsOp(op.bitMask), vsrc))

	return chain, nil
}

func legalizeClamp(
	ii *InstrInfo,
	in *instr.Inst,
	fn *instr.Function,
	loc instr.DebugLoc,
) ([]*instr.Inst, error) {
	dst, src, err := unaryOperands(in)
	if err != nil {
		return nil, err
	}

	if ii.cfg.FoldClamp && ii.foldClamp(in, fn) {
		return nil, nil
	}

	if ii.cfg.SourceModifiers && !src.IsLiteral() {
		in.Opcode = isa.VMovB32E64
		in.Loc = loc
		in.Mods.Clamp = true
		return []*instr.Inst{in}, nil
	}

	var chain []*instr.Inst
	vsrc := src
	if !ii.isVector(src) {
		chain = append(chain,
			instr.New(isa.VMovB32E32, loc, []instr.Operand{dst}, src))
		vsrc = instr.KillOp(dst.Reg)
	}
	chain = append(chain,
		instr.New(isa.VMaxF32E32, loc, []instr.Operand{dst},
			instr.FloatOp(0), vsrc),
		instr.New(isa.VMinF32E32, loc, []instr.Operand{dst},
			instr.FloatOp(1), instr.KillOp(dst.Reg)),
	)

	return chain, nil
}

// foldClamp sets the clamp bit on the instruction right before the clamp when
// that instruction produces the clamped value and nothing else reads it.
func (ii *InstrInfo) foldClamp(in *instr.Inst, fn *instr.Function) bool {
	if fn == nil {
		return false
	}

	src := in.SrcOperands[0]
	if !src.IsReg() || !src.Kill {
		return false
	}

	b, at, ok := fn.Locate(in)
	if !ok || at == 0 {
		return false
	}

	prod := b.Insts[at-1]
	if !prod.Opcode.IsNative() ||
		len(prod.DstOperands) != 1 ||
		!prod.DstOperands[0].IsReg() ||
		prod.DstOperands[0].Reg != src.Reg {
		return false
	}

	vop3, ok := isa.Promote(prod.Opcode)
	if !ok || !isa.HasClamp(vop3) || prod.HasLiteral() {
		return false
	}

	prod.Opcode = vop3
	prod.Mods.Clamp = true
	prod.DstOperands[0] = in.DstOperands[0]

	return true
}

func unaryOperands(in *instr.Inst) (dst, src instr.Operand, err error) {
	if len(in.DstOperands) != 1 || len(in.SrcOperands) != 1 ||
		!in.DstOperands[0].IsReg() {
		return dst, src, fmt.Errorf("%w: %s expects one register destination and one source, got %d and %d",
			isa.ErrInternal, in.Opcode, len(in.DstOperands), len(in.SrcOperands))
	}
	return in.DstOperands[0], in.SrcOperands[0], nil
}
