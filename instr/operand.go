package instr

import (
	"fmt"
	"math"

	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// Kind is the operand kind.
type Kind uint8

const (
	// KindRegister is a physical register.
	KindRegister Kind = iota
	// KindImmediate is a constant in a source slot. It is either an inline
	// constant or a literal that costs an extra dword.
	KindImmediate
	// KindOther is a value encoded in a dedicated instruction field, such as
	// an offset, an export target, or a 16-bit immediate.
	KindOther
)

// Operand is one instruction operand.
type Operand struct {
	Kind  Kind
	Reg   regs.Reg
	Imm   uint32 // raw bits for KindImmediate and KindOther
	Float bool   // Imm holds an f32, only used for printing
	Kill  bool   // last use of Reg
}

// RegOp creates a register operand.
func RegOp(r regs.Reg) Operand {
	return Operand{Kind: KindRegister, Reg: r}
}

// KillOp creates a register operand that is the last use of r.
func KillOp(r regs.Reg) Operand {
	return Operand{Kind: KindRegister, Reg: r, Kill: true}
}

// ImmOp creates an integer immediate operand.
func ImmOp(v int32) Operand {
	return Operand{Kind: KindImmediate, Imm: uint32(v)}
}

// FloatOp creates an f32 immediate operand.
func FloatOp(f float32) Operand {
	return Operand{Kind: KindImmediate, Imm: math.Float32bits(f), Float: true}
}

// BitsOp creates an immediate operand from raw bits.
func BitsOp(bits uint32) Operand {
	return Operand{Kind: KindImmediate, Imm: bits}
}

// FieldOp creates an encoded-field operand.
func FieldOp(v uint32) Operand {
	return Operand{Kind: KindOther, Imm: v}
}

// IsReg reports whether the operand is a register.
func (o Operand) IsReg() bool {
	return o.Kind == KindRegister
}

// IsLiteral reports whether the operand needs a trailing literal dword.
func (o Operand) IsLiteral() bool {
	return o.Kind == KindImmediate && !isa.IsInlineConstant(o.Imm)
}

// Format renders the operand with register names from ri.
func (o Operand) Format(ri regs.Info) string {
	switch o.Kind {
	case KindRegister:
		name := fmt.Sprintf("reg%d", uint16(o.Reg))
		if ri != nil {
			name = ri.Name(o.Reg)
		}
		if o.Kill {
			return name + "<kill>"
		}
		return name
	case KindImmediate:
		if o.Float {
			return fmt.Sprintf("%g", math.Float32frombits(o.Imm))
		}
		if o.IsLiteral() {
			return fmt.Sprintf("0x%08x", o.Imm)
		}
		return fmt.Sprintf("%d", int32(o.Imm))
	default:
		return fmt.Sprintf("field(%d)", o.Imm)
	}
}

func (o Operand) String() string {
	return o.Format(nil)
}
