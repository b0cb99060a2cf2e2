package si

import (
	"fmt"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
)

// ConvertToISA rewrites a generic instruction into the chain of native
// instructions replacing it. Every instruction of the chain is tagged with
// loc. Native instructions come back unchanged. The chain may be empty when a
// legalizer folds the instruction into its neighbour.
func (ii *InstrInfo) ConvertToISA(
	in *instr.Inst,
	fn *instr.Function,
	loc instr.DebugLoc,
) ([]*instr.Inst, error) {
	if in.Opcode.IsNative() {
		return []*instr.Inst{in}, nil
	}

	from := in.Opcode
	m, err := isa.Lookup(from)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", loc, err)
	}

	var chain []*instr.Inst
	if m.Legalizer != isa.LegalizeNone {
		legalize, ok := ii.legalizers[m.Legalizer]
		if !ok {
			return nil, fmt.Errorf("%s: %w: no %s legalizer for %s",
				loc, isa.ErrInternal, m.Legalizer, from)
		}

		chain, err = legalize(ii, in, fn, loc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", loc, err)
		}
	} else {
		in.Opcode = m.Native
		in.Loc = loc
		chain = []*instr.Inst{in}
	}

	for _, out := range chain {
		if _, err := isa.Classify(out.Opcode); err != nil {
			return nil, fmt.Errorf("%s: converting %s: %w", loc, from, err)
		}
	}

	hookCtx := sim.HookCtx{
		Domain: ii,
		Pos:    HookPosConvert,
		Item:   in,
		Detail: ConvertDetail{
			From:      from,
			Legalizer: m.Legalizer,
			Chain:     chain,
			Loc:       loc,
		},
	}
	ii.InvokeHook(hookCtx)

	return chain, nil
}

// LowerFunction converts every instruction of fn in place, block by block.
// The first failure aborts the pass.
func (ii *InstrInfo) LowerFunction(fn *instr.Function) error {
	for _, b := range fn.Blocks {
		for i := 0; i < len(b.Insts); {
			in := b.Insts[i]

			chain, err := ii.ConvertToISA(in, fn, in.Loc)
			if err != nil {
				return fmt.Errorf("lowering %s, block %s, position %d: %w",
					fn.Name, b.Name, i, err)
			}

			b.Replace(i, chain)
			i += len(chain)
		}
	}

	return nil
}
