package syntax

// CPBsMax bounds cpb_cnt_minus1+1, itself constrained to [1, 32] by
// E.3.2/E.3.3.
const CPBsMax = 32

// SubLayerHRD is sub_layer_hrd_parameters() of clause E.2.3.
type SubLayerHRD struct {
	CPBs [CPBsMax]struct {
		BitRateValueMinus1   uint32
		CPBSizeValueMinus1   uint32
		CPBSizeDUValueMinus1 uint32
		BitRateDUValueMinus1 uint32
		CBRFlag              int
	}
}

// HRDSubLayer carries one sub-layer's worth of hrd_parameters() fields
// (the part of the loop body in E.2.2 indexed by sub-layer).
type HRDSubLayer struct {
	FixedPicRateGeneralFlag    int
	FixedPicRateWithinCVSFlag  int
	ElementalDurationInTCMinus1 uint32
	LowDelayHRDFlag            int
	CPBCntMinus1               uint32
	NALHRD                     SubLayerHRD
	VCLHRD                     SubLayerHRD
}

// HRD is hrd_parameters() of clause E.2.2.
type HRD struct {
	NALHRDParametersPresentFlag int
	VCLHRDParametersPresentFlag int
	SubPicHRDParamsPresentFlag  int

	TickDivisorMinus2                    uint32
	DUCPBRemovalDelayIncrementLengthMinus1 uint32
	SubPicCPBParamsInPicTimingSEIFlag     int
	DPBOutputDelayDULengthMinus1          uint32

	BitRateScale   uint32
	CPBSizeScale   uint32
	CPBSizeDUScale uint32

	InitialCPBRemovalDelayLengthMinus1 uint32
	AUCPBRemovalDelayLengthMinus1      uint32
	DPBOutputDelayLengthMinus1         uint32

	SubLayers [SubLayersMax]HRDSubLayer
}

// setDefaults applies the clause E.2.2 default of 23 to the three
// length fields, which ReadWriteHRD uses when they are not present in
// the bitstream. The fixed_pic_rate_within_cvs_flag default of 1 is
// applied in ReadWriteHRD's sub-layer loop.
func (h *HRD) setDefaults() {
	h.InitialCPBRemovalDelayLengthMinus1 = 23
	h.AUCPBRemovalDelayLengthMinus1 = 23
	h.DPBOutputDelayLengthMinus1 = 23
}

func readWriteSubLayerHRD(op Op, s *SubLayerHRD, cpbCnt int, subPicPresent bool) {
	op.BeginArray("sub_layer_hrd_parameters", cpbCnt)
	for i := 0; i < cpbCnt; i++ {
		cpb := &s.CPBs[i]
		op.UE(&cpb.BitRateValueMinus1, "bit_rate_value_minus1")
		op.UE(&cpb.CPBSizeValueMinus1, "cpb_size_value_minus1")
		if subPicPresent {
			op.UE(&cpb.CPBSizeDUValueMinus1, "cpb_size_du_value_minus1")
			op.UE(&cpb.BitRateDUValueMinus1, "bit_rate_du_value_minus1")
		}
		op.Flag(&cpb.CBRFlag, "cbr_flag")
	}
	op.EndArray()
}

// ReadWriteHRD reads or writes hrd_parameters(commonInfPresentFlag,
// maxNumSubLayersMinus1).
func ReadWriteHRD(op Op, h *HRD, commonInfPresentFlag bool, maxNumSubLayersMinus1 int) {
	op.BeginStruct("hrd_parameters")
	if commonInfPresentFlag {
		op.Flag(&h.NALHRDParametersPresentFlag, "nal_hrd_parameters_present_flag")
		op.Flag(&h.VCLHRDParametersPresentFlag, "vcl_hrd_parameters_present_flag")
		if h.NALHRDParametersPresentFlag != 0 || h.VCLHRDParametersPresentFlag != 0 {
			op.Flag(&h.SubPicHRDParamsPresentFlag, "sub_pic_hrd_params_present_flag")
			if h.SubPicHRDParamsPresentFlag != 0 {
				op.U(&h.TickDivisorMinus2, 8, "tick_divisor_minus2")
				op.U(&h.DUCPBRemovalDelayIncrementLengthMinus1, 5, "du_cpb_removal_delay_increment_length_minus1")
				op.Flag(&h.SubPicCPBParamsInPicTimingSEIFlag, "sub_pic_cpb_params_in_pic_timing_sei_flag")
				op.U(&h.DPBOutputDelayDULengthMinus1, 5, "dpb_output_delay_du_length_minus1")
			}
			op.U(&h.BitRateScale, 4, "bit_rate_scale")
			op.U(&h.CPBSizeScale, 4, "cpb_size_scale")
			if h.SubPicHRDParamsPresentFlag != 0 {
				op.U(&h.CPBSizeDUScale, 4, "cpb_size_du_scale")
			}
			op.U(&h.InitialCPBRemovalDelayLengthMinus1, 5, "initial_cpb_removal_delay_length_minus1")
			op.U(&h.AUCPBRemovalDelayLengthMinus1, 5, "au_cpb_removal_delay_length_minus1")
			op.U(&h.DPBOutputDelayLengthMinus1, 5, "dpb_output_delay_length_minus1")
		}
	}
	if !commonInfPresentFlag || (h.NALHRDParametersPresentFlag == 0 && h.VCLHRDParametersPresentFlag == 0) {
		h.setDefaults()
	}
	for i := 0; i <= maxNumSubLayersMinus1; i++ {
		sl := &h.SubLayers[i]
		op.Flag(&sl.FixedPicRateGeneralFlag, "fixed_pic_rate_general_flag")
		if sl.FixedPicRateGeneralFlag == 0 {
			op.Flag(&sl.FixedPicRateWithinCVSFlag, "fixed_pic_rate_within_cvs_flag")
		} else {
			sl.FixedPicRateWithinCVSFlag = 1
		}
		if sl.FixedPicRateWithinCVSFlag != 0 {
			op.UE(&sl.ElementalDurationInTCMinus1, "elemental_duration_in_tc_minus1")
		} else {
			op.Flag(&sl.LowDelayHRDFlag, "low_delay_hrd_flag")
		}
		if sl.LowDelayHRDFlag == 0 {
			op.UE(&sl.CPBCntMinus1, "cpb_cnt_minus1")
		}
		cpbCnt := int(sl.CPBCntMinus1) + 1
		if h.NALHRDParametersPresentFlag != 0 {
			readWriteSubLayerHRD(op, &sl.NALHRD, cpbCnt, h.SubPicHRDParamsPresentFlag != 0)
		}
		if h.VCLHRDParametersPresentFlag != 0 {
			readWriteSubLayerHRD(op, &sl.VCLHRD, cpbCnt, h.SubPicHRDParamsPresentFlag != 0)
		}
	}
	op.EndStruct()
}
