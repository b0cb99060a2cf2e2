package isa

import "fmt"

// Family is the binary encoding format of a native instruction.
type Family uint8

// The values match the encoding field the hardware documentation uses, so they
// also fit in the low four bits of the packed flags.
const (
	EXP Family = iota
	LDS
	MIMG
	MTBUF
	MUBUF
	SMRD
	SOP1
	SOP2
	SOPC
	SOPK
	SOPP
	VINTRP
	VOP1
	VOP2
	VOP3
	VOPC

	numFamilies
)

// NumFamilies is the size of the encoding family set.
const NumFamilies = int(numFamilies)

// LiteralBytes is the width of the trailing literal constant dword.
const LiteralBytes = 4

var familyNames = [numFamilies]string{
	"EXP", "LDS", "MIMG", "MTBUF", "MUBUF", "SMRD", "SOP1", "SOP2",
	"SOPC", "SOPK", "SOPP", "VINTRP", "VOP1", "VOP2", "VOP3", "VOPC",
}

var familyBytes = [numFamilies]int{
	EXP:    8,
	LDS:    8,
	MIMG:   8,
	MTBUF:  8,
	MUBUF:  8,
	SMRD:   4,
	SOP1:   4,
	SOP2:   4,
	SOPC:   4,
	SOPK:   4,
	SOPP:   4,
	VINTRP: 4,
	VOP1:   4,
	VOP2:   4,
	VOP3:   8,
	VOPC:   4,
}

// Memory and export traffic completes out of order with respect to the
// instruction stream.
var familyWait = [numFamilies]bool{
	EXP:   true,
	LDS:   true,
	MIMG:  true,
	MTBUF: true,
	MUBUF: true,
	SMRD:  true,
}

func (f Family) String() string {
	if f >= numFamilies {
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
	return familyNames[f]
}

// BaseBytes returns the encoded width of the family without a literal.
func (f Family) BaseBytes() int {
	return familyBytes[f]
}

// IsVALU reports whether the family executes on the vector ALU.
func (f Family) IsVALU() bool {
	switch f {
	case VOP1, VOP2, VOP3, VOPC, VINTRP:
		return true
	default:
		return false
	}
}

// Descriptor is the encoding summary of a native instruction.
type Descriptor struct {
	Family       Family
	Bytes        int
	WaitRequired bool
}

const (
	flagsEncodingMask = 0xf
	flagsNeedWait     = 1 << 4
)

// Pack returns the descriptor in the legacy TSFlags layout: family in the low
// four bits, wait-required in bit 4. The byte size is not part of it.
func (d Descriptor) Pack() uint32 {
	flags := uint32(d.Family) & flagsEncodingMask
	if d.WaitRequired {
		flags |= flagsNeedWait
	}
	return flags
}

// UnpackFlags decodes the legacy packed layout.
func UnpackFlags(flags uint32) (Family, bool) {
	return Family(flags & flagsEncodingMask), flags&flagsNeedWait != 0
}

type modCaps uint8

const (
	capSourceMods modCaps = 1 << iota
	capClamp
)

type opInfo struct {
	name   string
	family Family
	caps   modCaps
	vop3   Opcode
}

var nativeInfo = [NumNative]opInfo{
	Exp - firstNative: {name: "EXP", family: EXP},

	DsReadB32 - firstNative:  {name: "DS_READ_B32", family: LDS},
	DsWriteB32 - firstNative: {name: "DS_WRITE_B32", family: LDS},

	ImageSample - firstNative: {name: "IMAGE_SAMPLE", family: MIMG},

	TBufferLoadFormatXYZW - firstNative: {name: "TBUFFER_LOAD_FORMAT_XYZW", family: MTBUF},

	BufferLoadDword - firstNative:  {name: "BUFFER_LOAD_DWORD", family: MUBUF},
	BufferStoreDword - firstNative: {name: "BUFFER_STORE_DWORD", family: MUBUF},

	SLoadDwordImm - firstNative:       {name: "S_LOAD_DWORD_IMM", family: SMRD},
	SLoadDwordx4Imm - firstNative:     {name: "S_LOAD_DWORDX4_IMM", family: SMRD},
	SBufferLoadDwordImm - firstNative: {name: "S_BUFFER_LOAD_DWORD_IMM", family: SMRD},

	SMovB32 - firstNative: {name: "S_MOV_B32", family: SOP1},
	SMovB64 - firstNative: {name: "S_MOV_B64", family: SOP1},

	SAddI32 - firstNative: {name: "S_ADD_I32", family: SOP2},
	SAndB64 - firstNative: {name: "S_AND_B64", family: SOP2},

	SCmpEqI32 - firstNative: {name: "S_CMP_EQ_I32", family: SOPC},

	SMovkI32 - firstNative: {name: "S_MOVK_I32", family: SOPK},

	SNop - firstNative:     {name: "S_NOP", family: SOPP},
	SEndpgm - firstNative:  {name: "S_ENDPGM", family: SOPP},
	SBranch - firstNative:  {name: "S_BRANCH", family: SOPP},
	SWaitcnt - firstNative: {name: "S_WAITCNT", family: SOPP},
	SBarrier - firstNative: {name: "S_BARRIER", family: SOPP},

	VInterpP1F32 - firstNative: {name: "V_INTERP_P1_F32", family: VINTRP},
	VInterpP2F32 - firstNative: {name: "V_INTERP_P2_F32", family: VINTRP},

	VMovB32E32 - firstNative:    {name: "V_MOV_B32_e32", family: VOP1, vop3: VMovB32E64},
	VCvtF32I32E32 - firstNative: {name: "V_CVT_F32_I32_e32", family: VOP1, vop3: VCvtF32I32E64},

	VAddF32E32 - firstNative: {name: "V_ADD_F32_e32", family: VOP2, vop3: VAddF32E64},
	VMulF32E32 - firstNative: {name: "V_MUL_F32_e32", family: VOP2, vop3: VMulF32E64},
	VMaxF32E32 - firstNative: {name: "V_MAX_F32_e32", family: VOP2, vop3: VMaxF32E64},
	VMinF32E32 - firstNative: {name: "V_MIN_F32_e32", family: VOP2, vop3: VMinF32E64},
	VAndB32E32 - firstNative: {name: "V_AND_B32_e32", family: VOP2},
	VOrB32E32 - firstNative:  {name: "V_OR_B32_e32", family: VOP2},
	VXorB32E32 - firstNative: {name: "V_XOR_B32_e32", family: VOP2},

	VMovB32E64 - firstNative:    {name: "V_MOV_B32_e64", family: VOP3, caps: capSourceMods | capClamp},
	VCvtF32I32E64 - firstNative: {name: "V_CVT_F32_I32_e64", family: VOP3, caps: capClamp},
	VAddF32E64 - firstNative:    {name: "V_ADD_F32_e64", family: VOP3, caps: capSourceMods | capClamp},
	VMulF32E64 - firstNative:    {name: "V_MUL_F32_e64", family: VOP3, caps: capSourceMods | capClamp},
	VMaxF32E64 - firstNative:    {name: "V_MAX_F32_e64", family: VOP3, caps: capSourceMods | capClamp},
	VMinF32E64 - firstNative:    {name: "V_MIN_F32_e64", family: VOP3, caps: capSourceMods | capClamp},
	VMadF32 - firstNative:       {name: "V_MAD_F32", family: VOP3, caps: capSourceMods | capClamp},
	VCmpLtF32E64 - firstNative:  {name: "V_CMP_LT_F32_e64", family: VOP3, caps: capSourceMods},

	VCmpLtF32E32 - firstNative: {name: "V_CMP_LT_F32_e32", family: VOPC, vop3: VCmpLtF32E64},
}

func native(op Opcode) (*opInfo, error) {
	if !op.IsNative() {
		return nil, fmt.Errorf("%w: %s", ErrNotNative, op)
	}
	return &nativeInfo[op-firstNative], nil
}

// Classify returns the encoding family of a native opcode.
func Classify(op Opcode) (Family, error) {
	info, err := native(op)
	if err != nil {
		return 0, err
	}
	return info.family, nil
}

// Describe returns the full encoding descriptor of a native opcode. The byte
// size grows by LiteralBytes when the instruction carries a literal constant.
func Describe(op Opcode, hasLiteral bool) (Descriptor, error) {
	info, err := native(op)
	if err != nil {
		return Descriptor{}, err
	}

	d := Descriptor{
		Family:       info.family,
		Bytes:        familyBytes[info.family],
		WaitRequired: familyWait[info.family],
	}
	if hasLiteral {
		d.Bytes += LiteralBytes
	}
	return d, nil
}

// EncodedSize returns the number of bytes the instruction occupies. Inline
// constants live in the source field and never count as a literal.
func EncodedSize(op Opcode, hasLiteral bool) (int, error) {
	d, err := Describe(op, hasLiteral)
	if err != nil {
		return 0, err
	}
	return d.Bytes, nil
}

// WaitRequired reports whether a wait must follow the instruction before its
// results are consumed.
func WaitRequired(op Opcode) (bool, error) {
	info, err := native(op)
	if err != nil {
		return false, err
	}
	return familyWait[info.family], nil
}

// HasSourceMods reports whether the instruction encodes per-source abs and
// neg bits.
func HasSourceMods(op Opcode) bool {
	info, err := native(op)
	return err == nil && info.caps&capSourceMods != 0
}

// HasClamp reports whether the instruction encodes the clamp bit.
func HasClamp(op Opcode) bool {
	info, err := native(op)
	return err == nil && info.caps&capClamp != 0
}

// Promote returns the VOP3 form of an instruction. VOP3 instructions promote
// to themselves.
func Promote(op Opcode) (Opcode, bool) {
	info, err := native(op)
	if err != nil {
		return OpInvalid, false
	}
	if info.family == VOP3 {
		return op, true
	}
	if info.vop3 == OpInvalid {
		return OpInvalid, false
	}
	return info.vop3, true
}
