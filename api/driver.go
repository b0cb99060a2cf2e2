// Package api defines the interface a target backend plugs into and the driver
// that lowers whole shader programs through it.
package api

import (
	"context"
	"fmt"

	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
	"golang.org/x/sync/errgroup"
)

// Target is implemented by exactly one backend per GPU generation.
type Target interface {
	// Name returns the name of the target.
	Name() string

	// RegisterInfo describes the physical register file.
	RegisterInfo() regs.Info

	// ISAOpcode returns the native opcode directly replacing a generic one.
	ISAOpcode(op isa.Opcode) (isa.Opcode, error)

	// ConvertToISA rewrites one instruction into its native chain.
	ConvertToISA(
		in *instr.Inst,
		fn *instr.Function,
		loc instr.DebugLoc,
	) ([]*instr.Inst, error)

	// LowerFunction converts a whole function in place.
	LowerFunction(fn *instr.Function) error

	// Describe returns the encoding family, size, and wait requirement of a
	// native instruction.
	Describe(in *instr.Inst) (isa.Descriptor, error)

	// CopyPhysReg inserts a register-to-register move.
	CopyPhysReg(
		b *instr.Block,
		at int,
		loc instr.DebugLoc,
		dst, src regs.Reg,
		killSrc bool,
	) error
}

// Driver lowers programs made of many functions.
type Driver interface {
	// Lower converts every function to native form. Functions are lowered
	// in parallel; the first failure stops the rest and is returned.
	Lower(ctx context.Context, fns []*instr.Function) error

	// Target returns the backend the driver lowers with.
	Target() Target
}

type driverImpl struct {
	target  Target
	workers int
}

func (d *driverImpl) Target() Target {
	return d.target
}

func (d *driverImpl) Lower(ctx context.Context, fns []*instr.Function) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.workers)

	for _, fn := range fns {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			if err := d.target.LowerFunction(fn); err != nil {
				return fmt.Errorf("%s: %w", d.target.Name(), err)
			}

			return nil
		})
	}

	return g.Wait()
}
