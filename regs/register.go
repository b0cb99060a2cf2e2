// Package regs describes the physical register file of a Southern Islands
// compute unit.
package regs

import "fmt"

// Reg is a physical register id.
type Reg uint16

// Class is the register file a register lives in.
type Class uint8

const (
	ClassNone Class = iota
	ClassScalar
	ClassVector
	ClassSpecial
)

func (c Class) String() string {
	switch c {
	case ClassScalar:
		return "scalar"
	case ClassVector:
		return "vector"
	case ClassSpecial:
		return "special"
	default:
		return "none"
	}
}

// Register file sizes.
const (
	NumSGPRs     = 104
	NumSGPRPairs = NumSGPRs / 2
	NumVGPRs     = 256
)

const (
	NoReg Reg = 0

	sgprBase   Reg = 1
	sgpr64Base     = sgprBase + NumSGPRs
	vgprBase       = sgpr64Base + NumSGPRPairs

	VCC  = vgprBase + NumVGPRs
	EXEC = VCC + 1
	M0   = VCC + 2

	numRegs = M0 + 1
)

// SGPR returns the 32-bit scalar register s<n>.
func SGPR(n int) Reg {
	if n < 0 || n >= NumSGPRs {
		panic(fmt.Sprintf("sgpr index %d out of range", n))
	}
	return sgprBase + Reg(n)
}

// SGPRPair returns the 64-bit scalar register s[n:n+1]. n must be even.
func SGPRPair(n int) Reg {
	if n < 0 || n >= NumSGPRs || n%2 != 0 {
		panic(fmt.Sprintf("invalid sgpr pair s[%d:%d]", n, n+1))
	}
	return sgpr64Base + Reg(n/2)
}

// VGPR returns the vector register v<n>.
func VGPR(n int) Reg {
	if n < 0 || n >= NumVGPRs {
		panic(fmt.Sprintf("vgpr index %d out of range", n))
	}
	return vgprBase + Reg(n)
}

// Info is the register description the backend consumes.
type Info interface {
	// Class returns the register file of r, or ClassNone for an unknown id.
	Class(r Reg) Class

	// Width returns the size of r in dwords.
	Width(r Reg) int

	// Name returns the assembly name of r.
	Name(r Reg) string
}

// SIRegisterInfo is the register description of the SI compute unit.
type SIRegisterInfo struct {
	names *NameBinding
}

// NewSIRegisterInfo builds the SI register description.
func NewSIRegisterInfo() *SIRegisterInfo {
	ri := &SIRegisterInfo{names: NewNameBinding()}

	for i := 0; i < NumSGPRs; i++ {
		ri.names.Bind(fmt.Sprintf("s%d", i), SGPR(i))
	}
	for i := 0; i < NumSGPRs; i += 2 {
		ri.names.Bind(fmt.Sprintf("s[%d:%d]", i, i+1), SGPRPair(i))
	}
	for i := 0; i < NumVGPRs; i++ {
		ri.names.Bind(fmt.Sprintf("v%d", i), VGPR(i))
	}
	ri.names.Bind("vcc", VCC)
	ri.names.Bind("exec", EXEC)
	ri.names.Bind("m0", M0)

	return ri
}

// Class implements Info.
func (ri *SIRegisterInfo) Class(r Reg) Class {
	switch {
	case r >= sgprBase && r < vgprBase:
		return ClassScalar
	case r >= vgprBase && r < VCC:
		return ClassVector
	case r >= VCC && r < numRegs:
		return ClassSpecial
	default:
		return ClassNone
	}
}

// Width implements Info.
func (ri *SIRegisterInfo) Width(r Reg) int {
	switch {
	case r >= sgpr64Base && r < vgprBase, r == VCC, r == EXEC:
		return 2
	case r == NoReg, r >= numRegs:
		return 0
	default:
		return 1
	}
}

// Name implements Info.
func (ri *SIRegisterInfo) Name(r Reg) string {
	if name, ok := ri.names.Name(r); ok {
		return name
	}
	return fmt.Sprintf("reg%d", uint16(r))
}

// Lookup resolves an assembly register name.
func (ri *SIRegisterInfo) Lookup(name string) (Reg, bool) {
	return ri.names.Lookup(name)
}
