package isa

import (
	"errors"
	"fmt"
	"math"
)

// ErrInternal is the root of every backend consistency failure. Such a failure
// means the backend is incomplete, never that the input program is wrong.
var ErrInternal = errors.New("backend internal consistency failure")

var (
	// ErrUnmapped is returned for an opcode without a mapping table entry.
	ErrUnmapped = fmt.Errorf("%w: no opcode mapping", ErrInternal)

	// ErrNotNative is returned when an encoding is requested for an opcode
	// that is not a native instruction.
	ErrNotNative = fmt.Errorf("%w: opcode is not native", ErrInternal)
)

// Legalizer names a rewrite rule for a generic opcode without a one-to-one
// native form.
type Legalizer uint8

const (
	LegalizeNone Legalizer = iota
	LegalizeAbs
	LegalizeNeg
	LegalizeClamp

	numLegalizers
)

func (l Legalizer) String() string {
	switch l {
	case LegalizeNone:
		return "none"
	case LegalizeAbs:
		return "abs"
	case LegalizeNeg:
		return "neg"
	case LegalizeClamp:
		return "clamp"
	default:
		return fmt.Sprintf("Legalizer(%d)", uint8(l))
	}
}

// Mapping is one entry of the opcode mapping table. Exactly one of Native and
// Legalizer is set.
type Mapping struct {
	Native    Opcode
	Legalizer Legalizer
}

var mappingTable = [NumGeneric]Mapping{
	ILAddF32 - firstGeneric:    {Native: VAddF32E32},
	ILMulF32 - firstGeneric:    {Native: VMulF32E32},
	ILMadF32 - firstGeneric:    {Native: VMadF32},
	ILMovB32 - firstGeneric:    {Native: VMovB32E32},
	ILMaxF32 - firstGeneric:    {Native: VMaxF32E32},
	ILMinF32 - firstGeneric:    {Native: VMinF32E32},
	ILAndB32 - firstGeneric:    {Native: VAndB32E32},
	ILOrB32 - firstGeneric:     {Native: VOrB32E32},
	ILXorB32 - firstGeneric:    {Native: VXorB32E32},
	ILCvtF32I32 - firstGeneric: {Native: VCvtF32I32E32},
	ILCmpLtF32 - firstGeneric:  {Native: VCmpLtF32E32},

	ILAbsF32 - firstGeneric:   {Legalizer: LegalizeAbs},
	ILNegF32 - firstGeneric:   {Legalizer: LegalizeNeg},
	ILClampF32 - firstGeneric: {Legalizer: LegalizeClamp},

	ILSMovB32 - firstGeneric:   {Native: SMovB32},
	ILSMovB64 - firstGeneric:   {Native: SMovB64},
	ILSAddI32 - firstGeneric:   {Native: SAddI32},
	ILSAndB64 - firstGeneric:   {Native: SAndB64},
	ILSCmpEqI32 - firstGeneric: {Native: SCmpEqI32},
	ILSMovkI32 - firstGeneric:  {Native: SMovkI32},

	ILLoadConst - firstGeneric: {Native: SBufferLoadDwordImm},
	ILLoadPtr - firstGeneric:   {Native: SLoadDwordx4Imm},

	ILInterpP1 - firstGeneric: {Native: VInterpP1F32},
	ILInterpP2 - firstGeneric: {Native: VInterpP2F32},
	ILExport - firstGeneric:   {Native: Exp},

	ILLdsRead - firstGeneric:     {Native: DsReadB32},
	ILLdsWrite - firstGeneric:    {Native: DsWriteB32},
	ILSample - firstGeneric:      {Native: ImageSample},
	ILTBufferLoad - firstGeneric: {Native: TBufferLoadFormatXYZW},
	ILBufferLoad - firstGeneric:  {Native: BufferLoadDword},
	ILBufferStore - firstGeneric: {Native: BufferStoreDword},

	ILBarrier - firstGeneric: {Native: SBarrier},
	ILReturn - firstGeneric:  {Native: SEndpgm},
}

func init() {
	if err := Validate(); err != nil {
		panic(err)
	}
}

// Lookup returns the mapping table entry of a generic opcode.
func Lookup(op Opcode) (Mapping, error) {
	if !op.IsGeneric() {
		return Mapping{}, fmt.Errorf("%w: %s", ErrUnmapped, op)
	}

	m := mappingTable[op-firstGeneric]
	if m.Native == OpInvalid && m.Legalizer == LegalizeNone {
		return Mapping{}, fmt.Errorf("%w: %s", ErrUnmapped, op)
	}
	return m, nil
}

// ISAOpcode returns the native opcode that directly replaces op. Native
// opcodes map to themselves. Generic opcodes served by a legalizer have no
// direct replacement and are reported as unmapped.
func ISAOpcode(op Opcode) (Opcode, error) {
	if op.IsNative() {
		return op, nil
	}

	m, err := Lookup(op)
	if err != nil {
		return OpInvalid, err
	}
	if m.Native == OpInvalid {
		return OpInvalid, fmt.Errorf("%w: %s needs the %s legalizer",
			ErrUnmapped, op, m.Legalizer)
	}
	return m.Native, nil
}

// Validate checks that the mapping and encoding tables cover the whole opcode
// space.
func Validate() error {
	for _, op := range Generics() {
		if genericNames[op-firstGeneric] == "" {
			return fmt.Errorf("%w: generic opcode %d has no name", ErrInternal, op)
		}

		m := mappingTable[op-firstGeneric]
		switch {
		case m.Native == OpInvalid && m.Legalizer == LegalizeNone:
			return fmt.Errorf("%w: %s", ErrUnmapped, op)
		case m.Native != OpInvalid && m.Legalizer != LegalizeNone:
			return fmt.Errorf("%w: %s maps to both %s and the %s legalizer",
				ErrInternal, op, m.Native, m.Legalizer)
		case m.Native != OpInvalid && !m.Native.IsNative():
			return fmt.Errorf("%w: %s maps to non-native %s",
				ErrInternal, op, m.Native)
		case m.Legalizer >= numLegalizers:
			return fmt.Errorf("%w: %s uses unknown legalizer %d",
				ErrInternal, op, m.Legalizer)
		}
	}

	for _, op := range Natives() {
		info := nativeInfo[op-firstNative]
		if info.name == "" {
			return fmt.Errorf("%w: native opcode %d has no encoding", ErrInternal, op)
		}
		if info.family >= numFamilies {
			return fmt.Errorf("%w: %s has family %d", ErrInternal, op, info.family)
		}
		if info.vop3 != OpInvalid {
			if !info.vop3.IsNative() {
				return fmt.Errorf("%w: %s promotes to non-native %s",
					ErrInternal, op, info.vop3)
			}
			if twin := nativeInfo[info.vop3-firstNative]; twin.family != VOP3 {
				return fmt.Errorf("%w: %s promotes to %s, which is %s",
					ErrInternal, op, info.vop3, twin.family)
			}
		}
	}

	return nil
}

var inlineFloats = [...]uint32{
	math.Float32bits(0.5), math.Float32bits(-0.5),
	math.Float32bits(1.0), math.Float32bits(-1.0),
	math.Float32bits(2.0), math.Float32bits(-2.0),
	math.Float32bits(4.0), math.Float32bits(-4.0),
}

// IsInlineConstant reports whether an immediate fits in a source operand field
// without a trailing literal dword.
func IsInlineConstant(bits uint32) bool {
	if v := int32(bits); v >= -16 && v <= 64 {
		return true
	}
	for _, f := range inlineFloats {
		if bits == f {
			return true
		}
	}
	return false
}
