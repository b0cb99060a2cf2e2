package verify

import (
	"errors"
	"fmt"
	"math"

	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// ErrUnsupported is returned for an instruction the simulator cannot execute.
var ErrUnsupported = errors.New("unsupported instruction")

const signBit = uint32(0x80000000)

// FunctionalSimulator executes native instructions on a single lane without
// timing.
type FunctionalSimulator struct {
	ri   regs.Info
	file map[regs.Reg]uint64
	scc  bool

	Executed    int
	TraceOpPre  func(b *instr.Block, i int, in *instr.Inst)
	TraceOpPost func(b *instr.Block, i int, in *instr.Inst)
}

// NewFunctionalSimulator creates a new functional simulator. A nil ri selects
// the SI register file.
func NewFunctionalSimulator(ri regs.Info) *FunctionalSimulator {
	if ri == nil {
		ri = regs.NewSIRegisterInfo()
	}

	return &FunctionalSimulator{
		ri:   ri,
		file: make(map[regs.Reg]uint64),
	}
}

// SetReg preloads a register.
func (fs *FunctionalSimulator) SetReg(r regs.Reg, v uint64) {
	fs.write(r, v)
}

// SetF32 preloads a register with an f32.
func (fs *FunctionalSimulator) SetF32(r regs.Reg, f float32) {
	fs.write(r, uint64(math.Float32bits(f)))
}

// Reg returns the value of a register. Unwritten registers read as zero.
func (fs *FunctionalSimulator) Reg(r regs.Reg) uint64 {
	return fs.file[r]
}

// F32 returns the value of a register as an f32.
func (fs *FunctionalSimulator) F32(r regs.Reg) float32 {
	return math.Float32frombits(uint32(fs.file[r]))
}

// SCC returns the scalar condition code.
func (fs *FunctionalSimulator) SCC() bool {
	return fs.scc
}

// Run executes the blocks of fn in order until the end or an S_ENDPGM.
func (fs *FunctionalSimulator) Run(fn *instr.Function) error {
	for _, b := range fn.Blocks {
		for i, in := range b.Insts {
			if fs.TraceOpPre != nil {
				fs.TraceOpPre(b, i, in)
			}

			if in.Opcode == isa.SEndpgm {
				fs.Executed++
				return nil
			}

			if err := fs.Exec(in); err != nil {
				return fmt.Errorf("%s, block %s, position %d: %w",
					fn.Name, b.Name, i, err)
			}

			if fs.TraceOpPost != nil {
				fs.TraceOpPost(b, i, in)
			}
		}
	}

	return nil
}

// Exec executes one instruction.
func (fs *FunctionalSimulator) Exec(in *instr.Inst) error {
	var err error

	switch in.Opcode {
	case isa.SNop, isa.SWaitcnt, isa.SBarrier, isa.SEndpgm:
	case isa.VMovB32E32, isa.VMovB32E64:
		err = fs.runVALU(in, 1, func(s []uint32) uint32 { return s[0] })
	case isa.VAndB32E32:
		err = fs.runVALU(in, 2, func(s []uint32) uint32 { return s[0] & s[1] })
	case isa.VOrB32E32:
		err = fs.runVALU(in, 2, func(s []uint32) uint32 { return s[0] | s[1] })
	case isa.VXorB32E32:
		err = fs.runVALU(in, 2, func(s []uint32) uint32 { return s[0] ^ s[1] })
	case isa.VAddF32E32, isa.VAddF32E64:
		err = fs.runF32(in, 2, func(f []float32) float32 { return f[0] + f[1] })
	case isa.VMulF32E32, isa.VMulF32E64:
		err = fs.runF32(in, 2, func(f []float32) float32 { return f[0] * f[1] })
	case isa.VMaxF32E32, isa.VMaxF32E64:
		err = fs.runF32(in, 2, func(f []float32) float32 { return maxF32(f[0], f[1]) })
	case isa.VMinF32E32, isa.VMinF32E64:
		err = fs.runF32(in, 2, func(f []float32) float32 { return minF32(f[0], f[1]) })
	case isa.VMadF32:
		err = fs.runF32(in, 3, func(f []float32) float32 { return f[0]*f[1] + f[2] })
	case isa.VCvtF32I32E32, isa.VCvtF32I32E64:
		err = fs.runVALU(in, 1, func(s []uint32) uint32 {
			return math.Float32bits(float32(int32(s[0])))
		})
	case isa.VCmpLtF32E32, isa.VCmpLtF32E64:
		err = fs.runCompare(in)
	case isa.SMovB32, isa.SMovkI32, isa.SMovB64:
		err = fs.runSALU(in, 1, func(s []uint64) uint64 { return s[0] })
	case isa.SAndB64:
		err = fs.runSALU(in, 2, func(s []uint64) uint64 {
			fs.scc = s[0]&s[1] != 0
			return s[0] & s[1]
		})
	case isa.SAddI32:
		err = fs.runSALU(in, 2, func(s []uint64) uint64 {
			a, b := int32(s[0]), int32(s[1])
			sum := a + b
			fs.scc = (a >= 0) == (b >= 0) && (sum >= 0) != (a >= 0)
			return uint64(uint32(sum))
		})
	case isa.SCmpEqI32:
		err = fs.runSCmp(in)
	default:
		err = ErrUnsupported
	}

	if err != nil {
		return fmt.Errorf("%s: %w", in.Opcode, err)
	}

	fs.Executed++
	return nil
}

func (fs *FunctionalSimulator) runVALU(
	in *instr.Inst,
	nsrc int,
	op func(s []uint32) uint32,
) error {
	src, err := fs.sources(in, nsrc)
	if err != nil {
		return err
	}

	return fs.writeResult(in, op(src))
}

func (fs *FunctionalSimulator) runF32(
	in *instr.Inst,
	nsrc int,
	op func(f []float32) float32,
) error {
	src, err := fs.sources(in, nsrc)
	if err != nil {
		return err
	}

	f := make([]float32, nsrc)
	for i, bits := range src {
		f[i] = math.Float32frombits(bits)
	}

	return fs.writeResult(in, math.Float32bits(op(f)))
}

func (fs *FunctionalSimulator) runCompare(in *instr.Inst) error {
	src, err := fs.sources(in, 2)
	if err != nil {
		return err
	}

	var mask uint64
	if math.Float32frombits(src[0]) < math.Float32frombits(src[1]) {
		mask = 1
	}

	dst := regs.VCC
	if in.Opcode == isa.VCmpLtF32E64 {
		if len(in.DstOperands) != 1 || !in.DstOperands[0].IsReg() {
			return fmt.Errorf("%w: missing mask destination", ErrUnsupported)
		}
		dst = in.DstOperands[0].Reg
	}
	fs.write(dst, mask)

	return nil
}

func (fs *FunctionalSimulator) runSALU(
	in *instr.Inst,
	nsrc int,
	op func(s []uint64) uint64,
) error {
	if len(in.SrcOperands) < nsrc || len(in.DstOperands) != 1 ||
		!in.DstOperands[0].IsReg() {
		return fmt.Errorf("%w: malformed operands", ErrUnsupported)
	}

	src := make([]uint64, nsrc)
	for i := range src {
		src[i] = fs.read64(in.SrcOperands[i])
	}
	fs.write(in.DstOperands[0].Reg, op(src))

	return nil
}

func (fs *FunctionalSimulator) runSCmp(in *instr.Inst) error {
	if len(in.SrcOperands) < 2 {
		return fmt.Errorf("%w: malformed operands", ErrUnsupported)
	}

	fs.scc = uint32(fs.read64(in.SrcOperands[0])) == uint32(fs.read64(in.SrcOperands[1]))
	return nil
}

// sources reads the first n source operands and applies the abs and neg
// source modifiers.
func (fs *FunctionalSimulator) sources(in *instr.Inst, n int) ([]uint32, error) {
	if len(in.SrcOperands) < n {
		return nil, fmt.Errorf("%w: %d sources, need %d",
			ErrUnsupported, len(in.SrcOperands), n)
	}

	out := make([]uint32, n)
	for i := range out {
		v := uint32(fs.read64(in.SrcOperands[i]))
		if in.Mods.HasAbs(i) {
			v &^= signBit
		}
		if in.Mods.HasNeg(i) {
			v ^= signBit
		}
		out[i] = v
	}

	return out, nil
}

// writeResult applies the output modifier and clamp, then writes the only
// destination.
func (fs *FunctionalSimulator) writeResult(in *instr.Inst, v uint32) error {
	if len(in.DstOperands) != 1 || !in.DstOperands[0].IsReg() {
		return fmt.Errorf("%w: malformed destination", ErrUnsupported)
	}

	if in.Mods.Omod != 0 || in.Mods.Clamp {
		f := math.Float32frombits(v)
		switch in.Mods.Omod {
		case 1:
			f *= 2
		case 2:
			f *= 4
		case 3:
			f /= 2
		}
		if in.Mods.Clamp {
			f = clampF32(f)
		}
		v = math.Float32bits(f)
	}

	fs.write(in.DstOperands[0].Reg, uint64(v))
	return nil
}

func (fs *FunctionalSimulator) read64(o instr.Operand) uint64 {
	switch o.Kind {
	case instr.KindRegister:
		return fs.file[o.Reg]
	default:
		// Immediates are sign-extended to 64 bits.
		return uint64(int64(int32(o.Imm)))
	}
}

func (fs *FunctionalSimulator) write(r regs.Reg, v uint64) {
	if fs.ri.Width(r) < 2 {
		v = uint64(uint32(v))
	}
	fs.file[r] = v
}

func clampF32(f float32) float32 {
	switch {
	case f != f, f <= 0:
		return 0
	case f > 1:
		return 1
	default:
		return f
	}
}

// maxF32 returns the other operand when one is NaN.
func maxF32(a, b float32) float32 {
	switch {
	case a != a:
		return b
	case b != b:
		return a
	case a > b:
		return a
	default:
		return b
	}
}

func minF32(a, b float32) float32 {
	switch {
	case a != a:
		return b
	case b != b:
		return a
	case a < b:
		return a
	default:
		return b
	}
}
