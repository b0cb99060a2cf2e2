package verify

import (
	"fmt"

	"github.com/sarchlab/sigen/instr"
	"github.com/sarchlab/sigen/isa"
	"github.com/sarchlab/sigen/regs"
)

// RunLint performs static checks on a lowered function. ri may be nil, in
// which case the function's own register info is used.
// Returns a list of issues found, or empty list if no issues.
func RunLint(fn *instr.Function, ri regs.Info) []Issue {
	if ri == nil {
		ri = fn.Regs
	}
	if ri == nil {
		ri = regs.NewSIRegisterInfo()
	}

	var issues []Issue
	for _, b := range fn.Blocks {
		for i, in := range b.Insts {
			report := func(t IssueType, format string, args ...any) {
				issues = append(issues, Issue{
					Type:    t,
					Block:   b.Name,
					Index:   i,
					Opcode:  in.Opcode,
					Message: fmt.Sprintf(format, args...),
				})
			}

			if in.Opcode.IsGeneric() {
				report(IssueStruct, "generic opcode left after lowering")
				continue
			}

			family, err := isa.Classify(in.Opcode)
			if err != nil {
				report(IssueStruct, "cannot classify: %v", err)
				continue
			}

			lintLiterals(in, family, report)
			lintModifiers(in, report)
			lintClass(in, family, ri, report)
		}
	}

	return issues
}

type reportFunc func(t IssueType, format string, args ...any)

func lintLiterals(in *instr.Inst, family isa.Family, report reportFunc) {
	n := in.NumLiterals()
	if n == 0 {
		return
	}

	// 64-bit encodings have no room for a trailing literal.
	if family.BaseBytes() == 8 {
		report(IssueStruct, "literal constant on a %s instruction", family)
	}
	if n > 1 {
		report(IssueStruct, "%d literal constants, at most one is encodable", n)
	}
}

func lintModifiers(in *instr.Inst, report reportFunc) {
	m := in.Mods
	if (m.Abs != 0 || m.Neg != 0) && !isa.HasSourceMods(in.Opcode) {
		report(IssueStruct, "source modifiers without a VOP3 form")
	}
	if m.Clamp && !isa.HasClamp(in.Opcode) {
		report(IssueStruct, "clamp without a VOP3 form")
	}
	if m.Omod != 0 && !isa.HasClamp(in.Opcode) {
		report(IssueStruct, "output modifier without a VOP3 form")
	}
}

func lintClass(in *instr.Inst, family isa.Family, ri regs.Info, report reportFunc) {
	if !family.IsVALU() || isCompare(in.Opcode) {
		return
	}

	for _, dst := range in.DstOperands {
		if !dst.IsReg() {
			continue
		}
		if c := ri.Class(dst.Reg); c != regs.ClassVector {
			report(IssueClass, "vector ALU result written to %s register %s",
				c, ri.Name(dst.Reg))
		}
	}
}

// Compares write a lane mask to VCC or a scalar pair.
func isCompare(op isa.Opcode) bool {
	return op == isa.VCmpLtF32E32 || op == isa.VCmpLtF32E64
}
