// Package instr holds the machine instruction records the backend rewrites:
// instructions, their operands and modifiers, and the blocks and functions
// that order them.
package instr

import (
	"fmt"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// DebugLoc tags an instruction with the source position it came from.
type DebugLoc struct {
	File string
	Line int
	Col  int
}

// IsZero reports whether the location is unknown.
func (l DebugLoc) IsZero() bool {
	return l == DebugLoc{}
}

func (l DebugLoc) String() string {
	if l.IsZero() {
		return "<unknown>"
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

// Mods holds the VOP3 modifier bits. Abs and Neg are indexed by source
// operand.
type Mods struct {
	Abs   uint8
	Neg   uint8
	Clamp bool
	Omod  uint8 // 0: none, 1: *2, 2: *4, 3: /2
}

// IsZero reports whether no modifier is set.
func (m Mods) IsZero() bool {
	return m == Mods{}
}

// HasAbs reports whether the abs bit of source i is set.
func (m Mods) HasAbs(i int) bool {
	return m.Abs&(1<<i) != 0
}

// HasNeg reports whether the neg bit of source i is set.
func (m Mods) HasNeg(i int) bool {
	return m.Neg&(1<<i) != 0
}

// Inst is a machine instruction, either generic or native.
type Inst struct {
	Opcode      isa.Opcode
	DstOperands []Operand
	SrcOperands []Operand
	Mods        Mods
	Loc         DebugLoc
}

// New creates an instruction.
func New(op isa.Opcode, loc DebugLoc, dst []Operand, src ...Operand) *Inst {
	return &Inst{
		Opcode:      op,
		DstOperands: dst,
		SrcOperands: src,
		Loc:         loc,
	}
}

// Dst is shorthand for a single register destination list.
func Dst(r regs.Reg) []Operand {
	return []Operand{RegOp(r)}
}

// HasLiteral reports whether any source operand is a literal constant.
func (i *Inst) HasLiteral() bool {
	return i.NumLiterals() > 0
}

// NumLiterals counts the literal constant source operands.
func (i *Inst) NumLiterals() int {
	n := 0
	for _, src := range i.SrcOperands {
		if src.IsLiteral() {
			n++
		}
	}
	return n
}

// DefinesReg reports whether r is one of the destinations.
func (i *Inst) DefinesReg(r regs.Reg) bool {
	for _, dst := range i.DstOperands {
		if dst.IsReg() && dst.Reg == r {
			return true
		}
	}
	return false
}

// ReadsReg reports whether r is one of the sources.
func (i *Inst) ReadsReg(r regs.Reg) bool {
	for _, src := range i.SrcOperands {
		if src.IsReg() && src.Reg == r {
			return true
		}
	}
	return false
}

// Clone returns a deep copy.
func (i *Inst) Clone() *Inst {
	c := *i
	c.DstOperands = append([]Operand(nil), i.DstOperands...)
	c.SrcOperands = append([]Operand(nil), i.SrcOperands...)
	return &c
}

// Format renders the instruction in assembly-like form.
func (i *Inst) Format(ri regs.Info) string {
	var sb strings.Builder
	sb.WriteString(i.Opcode.String())

	ops := make([]string, 0, len(i.DstOperands)+len(i.SrcOperands))
	for _, dst := range i.DstOperands {
		ops = append(ops, dst.Format(ri))
	}
	for n, src := range i.SrcOperands {
		s := src.Format(ri)
		if i.Mods.HasAbs(n) {
			s = "|" + s + "|"
		}
		if i.Mods.HasNeg(n) {
			s = "-" + s
		}
		ops = append(ops, s)
	}
	if len(ops) > 0 {
		sb.WriteString(" ")
		sb.WriteString(strings.Join(ops, ", "))
	}

	if i.Mods.Clamp {
		sb.WriteString(" clamp")
	}
	switch i.Mods.Omod {
	case 1:
		sb.WriteString(" mul:2")
	case 2:
		sb.WriteString(" mul:4")
	case 3:
		sb.WriteString(" div:2")
	}

	return sb.String()
}

func (i *Inst) String() string {
	return i.Format(nil)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisableMethods:          true,
	DisablePointerAddresses: true,
}

// Dump returns a verbose structural dump for debugging.
func (i *Inst) Dump() string {
	return dumpConfig.Sdump(i)
}
