package si

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// ErrCrossClassCopy is returned for a copy between registers of different
// classes or widths. Such conversions must be explicit before this point.
var ErrCrossClassCopy = fmt.Errorf("%w: cross-class register copy", isa.ErrInternal)

// CopyPhysReg inserts one move from src to dst before position at of b. The
// source operand carries the kill flag when killSrc is set.
func (ii *InstrInfo) CopyPhysReg(
	b *instr.Block,
	at int,
	loc instr.DebugLoc,
	dst, src regs.Reg,
	killSrc bool,
) error {
	op, err := ii.copyOpcode(dst, src)
	if err != nil {
		return fmt.Errorf("%s: %w", loc, err)
	}

	srcOp := instr.RegOp(src)
	srcOp.Kill = killSrc
	b.Insert(at, instr.New(op, loc, instr.Dst(dst), srcOp))

	hookCtx := sim.HookCtx{
		Domain: ii,
		Pos:    HookPosCopy,
		Item:   b.Insts[at],
		Detail: CopyDetail{Dst: dst, Src: src, Kill: killSrc, Loc: loc},
	}
	ii.InvokeHook(hookCtx)

	return nil
}

func (ii *InstrInfo) copyOpcode(dst, src regs.Reg) (isa.Opcode, error) {
	dc, sc := ii.ri.Class(dst), ii.ri.Class(src)
	dw, sw := ii.ri.Width(dst), ii.ri.Width(src)

	if dc != sc || dw != sw || dc == regs.ClassNone {
		return isa.OpInvalid, fmt.Errorf("%w: %s (%s, %d dwords) <- %s (%s, %d dwords)",
			ErrCrossClassCopy,
			ii.ri.Name(dst), dc, dw,
			ii.ri.Name(src), sc, sw)
	}

	switch {
	case dc == regs.ClassVector && dw == 1:
		return isa.VMovB32E32, nil
	case dc != regs.ClassVector && dw == 1:
		return isa.SMovB32, nil
	case dc != regs.ClassVector && dw == 2:
		return isa.SMovB64, nil
	}

	return isa.OpInvalid, fmt.Errorf("%w: no %d-dword %s move for %s <- %s",
		isa.ErrInternal, dw, dc, ii.ri.Name(dst), ii.ri.Name(src))
}
