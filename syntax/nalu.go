package syntax

// NALUnitType enumerates the 64 values of Table 7-1.
type NALUnitType uint32

const (
	NALTrailN       NALUnitType = 0
	NALTrailR       NALUnitType = 1
	NALTSAN         NALUnitType = 2
	NALTSAR         NALUnitType = 3
	NALSTSAN        NALUnitType = 4
	NALSTSAR        NALUnitType = 5
	NALRADLN        NALUnitType = 6
	NALRADLR        NALUnitType = 7
	NALRASLN        NALUnitType = 8
	NALRASLR        NALUnitType = 9
	NALRSVVCLN10    NALUnitType = 10
	NALRSVVCLR11    NALUnitType = 11
	NALRSVVCLN12    NALUnitType = 12
	NALRSVVCLR13    NALUnitType = 13
	NALRSVVCLN14    NALUnitType = 14
	NALRSVVCLR15    NALUnitType = 15
	NALBLAWLP       NALUnitType = 16
	NALBLAWRADL     NALUnitType = 17
	NALBLANLP       NALUnitType = 18
	NALIDRWRADL     NALUnitType = 19
	NALIDRNLP       NALUnitType = 20
	NALCRANUT       NALUnitType = 21
	NALRSVIRAPVCL22 NALUnitType = 22
	NALRSVIRAPVCL23 NALUnitType = 23
	NALVPS          NALUnitType = 32
	NALSPS          NALUnitType = 33
	NALPPS          NALUnitType = 34
	NALAUD          NALUnitType = 35
	NALEOS          NALUnitType = 36
	NALEOB          NALUnitType = 37
	NALFD           NALUnitType = 38
	NALPrefixSEI    NALUnitType = 39
	NALSuffixSEI    NALUnitType = 40
)

// String names the NAL unit type, matching the original's
// h265_nalu_type_str.
func (t NALUnitType) String() string {
	switch {
	case t <= NALRASLR:
		names := []string{"TRAIL_N", "TRAIL_R", "TSA_N", "TSA_R", "STSA_N",
			"STSA_R", "RADL_N", "RADL_R", "RASL_N", "RASL_R"}
		return names[t]
	case t >= NALRSVVCLN10 && t <= NALRSVVCLR15:
		return "RSV_VCL"
	case t >= NALBLAWLP && t <= NALCRANUT:
		names := map[NALUnitType]string{
			NALBLAWLP: "BLA_W_LP", NALBLAWRADL: "BLA_W_RADL",
			NALBLANLP: "BLA_N_LP", NALIDRWRADL: "IDR_W_RADL",
			NALIDRNLP: "IDR_N_LP", NALCRANUT: "CRA_NUT",
		}
		return names[t]
	case t == NALRSVIRAPVCL22 || t == NALRSVIRAPVCL23:
		return "RSV_IRAP_VCL"
	case t >= 24 && t <= 31:
		return "RSV_VCL"
	case t == NALVPS:
		return "VPS_NUT"
	case t == NALSPS:
		return "SPS_NUT"
	case t == NALPPS:
		return "PPS_NUT"
	case t == NALAUD:
		return "AUD_NUT"
	case t == NALEOS:
		return "EOS_NUT"
	case t == NALEOB:
		return "EOB_NUT"
	case t == NALFD:
		return "FD_NUT"
	case t == NALPrefixSEI:
		return "PREFIX_SEI_NUT"
	case t == NALSuffixSEI:
		return "SUFFIX_SEI_NUT"
	case t >= 41 && t <= 47:
		return "RSV_NVCL"
	case t >= 48 && t <= 63:
		return "UNSPEC"
	default:
		return "UNKNOWN"
	}
}

// IsVCL reports whether this NAL unit type carries video coding layer
// (slice) data, i.e. nal_unit_type is in [0, 31].
func (t NALUnitType) IsVCL() bool { return t <= 31 }

// IsIRAP reports whether the NAL unit is an intra random access point
// (BLA, IDR or CRA), nal_unit_type in [16, 23].
func (t NALUnitType) IsIRAP() bool { return t >= 16 && t <= 23 }

// CanStartAU reports whether a NAL unit of this type is permitted to
// start a new access unit per clause 7.4.2.4.4: VPS, SPS, PPS, AUD,
// prefix SEI, the reserved types 41..44, the unspecified types 48..55,
// or a VCL NAL unit. It looks at the type only and does not check
// nuh_layer_id; for a VCL type it does not tell whether the unit is
// the first VCL NAL unit of an access unit, which
// ctx.Context.SetNALUnitHeader tracks.
func (t NALUnitType) CanStartAU() bool {
	switch t {
	case NALVPS, NALSPS, NALPPS, NALAUD, NALPrefixSEI:
		return true
	}
	if (t >= 41 && t <= 44) || (t >= 48 && t <= 55) {
		return true
	}
	return t.IsVCL()
}

// NALUnitHeader is the two-byte NAL unit header of clause 7.3.1.
type NALUnitHeader struct {
	ForbiddenZeroBit   uint32
	NALUnitType        NALUnitType
	NUHLayerID         uint32
	NUHTemporalIDPlus1 uint32
}

// ReadNALUnitHeader reads or writes the 2-byte (16-bit) NAL unit header.
func ReadNALUnitHeader(op Op, nh *NALUnitHeader) {
	op.BeginStruct("nal_unit_header")
	op.U(&nh.ForbiddenZeroBit, 1, "forbidden_zero_bit")
	var t uint32
	t = uint32(nh.NALUnitType)
	op.U(&t, 6, "nal_unit_type")
	nh.NALUnitType = NALUnitType(t)
	op.U(&nh.NUHLayerID, 6, "nuh_layer_id")
	op.U(&nh.NUHTemporalIDPlus1, 3, "nuh_temporal_id_plus1")
	op.EndStruct()
}
