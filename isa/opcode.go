// Package isa describes the Southern Islands opcode space: the generic
// pseudo-ops produced by instruction selection, the native SI instructions,
// the table mapping one onto the other, and the encoding family of every
// native instruction.
package isa

import "fmt"

// Opcode identifies either a generic pseudo-op or a native SI instruction.
type Opcode uint16

// Generic pseudo-ops. These are what instruction selection hands to the
// backend; none of them can be encoded.
const (
	OpInvalid Opcode = iota

	ILAddF32
	ILMulF32
	ILMadF32
	ILMovB32
	ILMaxF32
	ILMinF32
	ILAndB32
	ILOrB32
	ILXorB32
	ILCvtF32I32
	ILCmpLtF32
	ILAbsF32
	ILNegF32
	ILClampF32
	ILSMovB32
	ILSMovB64
	ILSAddI32
	ILSAndB64
	ILSCmpEqI32
	ILSMovkI32
	ILLoadConst
	ILLoadPtr
	ILInterpP1
	ILInterpP2
	ILExport
	ILLdsRead
	ILLdsWrite
	ILSample
	ILTBufferLoad
	ILBufferLoad
	ILBufferStore
	ILBarrier
	ILReturn

	genericEnd
)

// Native SI instructions.
const (
	Exp Opcode = iota + genericEnd

	DsReadB32
	DsWriteB32

	ImageSample

	TBufferLoadFormatXYZW

	BufferLoadDword
	BufferStoreDword

	SLoadDwordImm
	SLoadDwordx4Imm
	SBufferLoadDwordImm

	SMovB32
	SMovB64

	SAddI32
	SAndB64

	SCmpEqI32

	SMovkI32

	SNop
	SEndpgm
	SBranch
	SWaitcnt
	SBarrier

	VInterpP1F32
	VInterpP2F32

	VMovB32E32
	VCvtF32I32E32

	VAddF32E32
	VMulF32E32
	VMaxF32E32
	VMinF32E32
	VAndB32E32
	VOrB32E32
	VXorB32E32

	VMovB32E64
	VCvtF32I32E64
	VAddF32E64
	VMulF32E64
	VMaxF32E64
	VMinF32E64
	VMadF32
	VCmpLtF32E64

	VCmpLtF32E32

	nativeEnd
)

const (
	firstGeneric = ILAddF32
	firstNative  = Exp
)

// NumGeneric is the number of generic pseudo-ops.
const NumGeneric = int(genericEnd - firstGeneric)

// NumNative is the number of native instructions.
const NumNative = int(nativeEnd - firstNative)

// IsGeneric reports whether the opcode is a generic pseudo-op.
func (o Opcode) IsGeneric() bool {
	return o >= firstGeneric && o < genericEnd
}

// IsNative reports whether the opcode is a native SI instruction.
func (o Opcode) IsNative() bool {
	return o >= firstNative && o < nativeEnd
}

func (o Opcode) String() string {
	switch {
	case o.IsGeneric():
		return genericNames[o-firstGeneric]
	case o.IsNative():
		return nativeInfo[o-firstNative].name
	case o == OpInvalid:
		return "INVALID"
	default:
		return fmt.Sprintf("Opcode(%d)", uint16(o))
	}
}

var genericNames = [NumGeneric]string{
	ILAddF32 - firstGeneric:      "IL_ADD_F32",
	ILMulF32 - firstGeneric:      "IL_MUL_F32",
	ILMadF32 - firstGeneric:      "IL_MAD_F32",
	ILMovB32 - firstGeneric:      "IL_MOV_B32",
	ILMaxF32 - firstGeneric:      "IL_MAX_F32",
	ILMinF32 - firstGeneric:      "IL_MIN_F32",
	ILAndB32 - firstGeneric:      "IL_AND_B32",
	ILOrB32 - firstGeneric:       "IL_OR_B32",
	ILXorB32 - firstGeneric:      "IL_XOR_B32",
	ILCvtF32I32 - firstGeneric:   "IL_CVT_F32_I32",
	ILCmpLtF32 - firstGeneric:    "IL_CMP_LT_F32",
	ILAbsF32 - firstGeneric:      "IL_ABS_F32",
	ILNegF32 - firstGeneric:      "IL_NEG_F32",
	ILClampF32 - firstGeneric:    "IL_CLAMP_F32",
	ILSMovB32 - firstGeneric:     "IL_S_MOV_B32",
	ILSMovB64 - firstGeneric:     "IL_S_MOV_B64",
	ILSAddI32 - firstGeneric:     "IL_S_ADD_I32",
	ILSAndB64 - firstGeneric:     "IL_S_AND_B64",
	ILSCmpEqI32 - firstGeneric:   "IL_S_CMP_EQ_I32",
	ILSMovkI32 - firstGeneric:    "IL_S_MOVK_I32",
	ILLoadConst - firstGeneric:   "IL_LOAD_CONST",
	ILLoadPtr - firstGeneric:     "IL_LOAD_PTR",
	ILInterpP1 - firstGeneric:    "IL_INTERP_P1",
	ILInterpP2 - firstGeneric:    "IL_INTERP_P2",
	ILExport - firstGeneric:      "IL_EXPORT",
	ILLdsRead - firstGeneric:     "IL_LDS_READ",
	ILLdsWrite - firstGeneric:    "IL_LDS_WRITE",
	ILSample - firstGeneric:      "IL_SAMPLE",
	ILTBufferLoad - firstGeneric: "IL_TBUFFER_LOAD",
	ILBufferLoad - firstGeneric:  "IL_BUFFER_LOAD",
	ILBufferStore - firstGeneric: "IL_BUFFER_STORE",
	ILBarrier - firstGeneric:     "IL_BARRIER",
	ILReturn - firstGeneric:      "IL_RETURN",
}

// Natives returns every native opcode in numeric order.
func Natives() []Opcode {
	ops := make([]Opcode, 0, NumNative)
	for o := firstNative; o < nativeEnd; o++ {
		ops = append(ops, o)
	}
	return ops
}

// Generics returns every generic opcode in numeric order.
func Generics() []Opcode {
	ops := make([]Opcode, 0, NumGeneric)
	for o := firstGeneric; o < genericEnd; o++ {
		ops = append(ops, o)
	}
	return ops
}
