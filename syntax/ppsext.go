package syntax

import "math/bits"

// ChromaQPOffsetListMax bounds chroma_qp_offset_list_len_minus1+1 (6).
const ChromaQPOffsetListMax = 6

// PPSRangeExt is pps_range_extension() of clause 7.3.2.3.2.
type PPSRangeExt struct {
	Log2MaxTransformSkipBlockSizeMinus2 uint32
	CrossComponentPredictionEnabledFlag int
	ChromaQPOffsetListEnabledFlag       int
	DiffCuChromaQPOffsetDepth           uint32
	ChromaQPOffsetListLenMinus1         uint32
	CbQPOffsetList                      [ChromaQPOffsetListMax]int32
	CrQPOffsetList                      [ChromaQPOffsetListMax]int32
	Log2SaoOffsetScaleLuma              uint32
	Log2SaoOffsetScaleChroma            uint32
}

// ReadWritePPSRangeExt reads or writes pps_range_extension().
// transformSkipEnabledFlag comes from the enclosing PPS.
func ReadWritePPSRangeExt(op Op, e *PPSRangeExt, transformSkipEnabledFlag int) {
	op.BeginStruct("pps_range_extension")
	if transformSkipEnabledFlag != 0 {
		op.UE(&e.Log2MaxTransformSkipBlockSizeMinus2, "log2_max_transform_skip_block_size_minus2")
	}
	op.Flag(&e.CrossComponentPredictionEnabledFlag, "cross_component_prediction_enabled_flag")
	op.Flag(&e.ChromaQPOffsetListEnabledFlag, "chroma_qp_offset_list_enabled_flag")
	if e.ChromaQPOffsetListEnabledFlag != 0 {
		op.UE(&e.DiffCuChromaQPOffsetDepth, "diff_cu_chroma_qp_offset_depth")
		op.UE(&e.ChromaQPOffsetListLenMinus1, "chroma_qp_offset_list_len_minus1")
		op.BeginArray("cb_cr_qp_offset_list", int(e.ChromaQPOffsetListLenMinus1)+1)
		for i := 0; i <= int(e.ChromaQPOffsetListLenMinus1); i++ {
			op.SE(&e.CbQPOffsetList[i], "cb_qp_offset_list")
			op.SE(&e.CrQPOffsetList[i], "cr_qp_offset_list")
		}
		op.EndArray()
	}
	op.UE(&e.Log2SaoOffsetScaleLuma, "log2_sao_offset_scale_luma")
	op.UE(&e.Log2SaoOffsetScaleChroma, "log2_sao_offset_scale_chroma")
	op.EndStruct()
}

// DLTValuesMax bounds num_val_delta_dlt: depth values fit an 8-bit
// sample, so at most 256 distinct entries.
const DLTValuesMax = 256

// ceilLog2 computes Ceil(Log2(v)) for v >= 1 using exact bit counting,
// matching the rest of this package's avoidance of floating point.
func ceilLog2(v uint32) int {
	if v <= 1 {
		return 0
	}
	return bits.Len32(v - 1)
}

// DeltaDLT is delta_dlt(), the per-layer depth lookup table delta
// coding of clause I.7.3.4.1. Every field here is a fixed bitDepth-wide
// field, not Exp-Golomb coded; delta_val is indexed from 1, matching
// the original (index 0 is never coded or used).
type DeltaDLT struct {
	NumValDeltaDLT uint32
	MaxDiff        uint32
	MinDiffMinus1  uint32
	DeltaDLTVal0   uint32
	DeltaVal       [DLTValuesMax]uint32
}

func readWriteDeltaDLT(op Op, d *DeltaDLT, bitDepth int) {
	op.BeginStruct("delta_dlt")
	op.U(&d.NumValDeltaDLT, bitDepth, "num_val_delta_dlt")
	if d.NumValDeltaDLT > 0 {
		if d.NumValDeltaDLT > 1 {
			op.U(&d.MaxDiff, bitDepth, "max_diff")
		}
		if d.NumValDeltaDLT > 2 && d.MaxDiff > 0 {
			op.U(&d.MinDiffMinus1, bitDepth, "min_diff_minus1")
		}
		op.U(&d.DeltaDLTVal0, bitDepth, "delta_dlt_val0")
		if d.MaxDiff > d.MinDiffMinus1+1 {
			numBits := ceilLog2(d.MaxDiff - d.MinDiffMinus1)
			op.BeginArray("delta_val", int(d.NumValDeltaDLT)-1)
			for k := 1; k < int(d.NumValDeltaDLT); k++ {
				op.U(&d.DeltaVal[k], numBits, "delta_val")
			}
			op.EndArray()
		}
	}
	op.EndStruct()
}

// PPS3DExt is pps_3d_extension() of clause I.7.3.2.3.4, one entry per
// depth layer in [0, pps_depth_layers_minus1].
type PPS3DExt struct {
	DLTFlag                []int
	DLTPredFlag            []int
	DLTValFlagsPresentFlag []int
	DLTValueFlag           [][]int
	DeltaDLT               []DeltaDLT
}

// ReadWritePPS3DExt reads or writes pps_3d_extension(). The layer loop
// is inclusive of ppsDepthLayersMinus1 (7.4.3.3.3); bitDepth is
// pps_bit_depth_for_depth_layers_minus8 + 8.
//
// Per layer: dlt_val_flags_present_flag is only read when
// dlt_pred_flag is 0 (when dlt_pred_flag is 1 it's implicitly 0, so
// the per-value flag array is skipped and delta_dlt() is read
// instead, since a predicted layer has no coded values of its own).
func ReadWritePPS3DExt(op Op, e *PPS3DExt, ppsDepthLayersMinus1, bitDepth int) {
	n := ppsDepthLayersMinus1 + 1
	if len(e.DLTFlag) != n {
		e.DLTFlag = make([]int, n)
		e.DLTPredFlag = make([]int, n)
		e.DLTValFlagsPresentFlag = make([]int, n)
		e.DLTValueFlag = make([][]int, n)
		e.DeltaDLT = make([]DeltaDLT, n)
	}
	depthMaxValue := (1 << uint(bitDepth)) - 1
	op.BeginStruct("pps_3d_extension")
	for d := 0; d <= ppsDepthLayersMinus1; d++ {
		op.Flag(&e.DLTFlag[d], "dlt_flag")
		if e.DLTFlag[d] == 0 {
			continue
		}
		op.Flag(&e.DLTPredFlag[d], "dlt_pred_flag")
		if e.DLTPredFlag[d] == 0 {
			op.Flag(&e.DLTValFlagsPresentFlag[d], "dlt_val_flags_present_flag")
		}
		if e.DLTValFlagsPresentFlag[d] != 0 {
			if len(e.DLTValueFlag[d]) != depthMaxValue+1 {
				e.DLTValueFlag[d] = make([]int, depthMaxValue+1)
			}
			op.BeginArray("dlt_value_flag", depthMaxValue+1)
			for j := 0; j <= depthMaxValue; j++ {
				op.Flag(&e.DLTValueFlag[d][j], "dlt_value_flag")
			}
			op.EndArray()
		} else {
			readWriteDeltaDLT(op, &e.DeltaDLT[d], bitDepth)
		}
	}
	op.EndStruct()
}

// PPSSCCExt is pps_scc_extension() of clause 7.3.2.3.3.
type PPSSCCExt struct {
	PPSCurrPicRefEnabledFlag                    int
	ResidualAdaptiveColourTransformEnabledFlag  int
	PPSSliceActQPOffsetsPresentFlag             int
	PPSActYQPOffsetPlus5                        int32
	PPSActCbQPOffsetPlus5                       int32
	PPSActCrQPOffsetPlus3                       int32
	PPSPalettePredictorInitializerPresentFlag   int
	PPSNumPalettePredictorInitializer           uint32
	MonochromePaletteFlag                       int
	LumaBitDepthEntryMinus8                     uint32
	ChromaBitDepthEntryMinus8                   uint32
	PPSPalettePredictorInitializers             [PaletteMaxComps][PalettePredictorMax]uint32
}

// ReadWritePPSSCCExt reads or writes pps_scc_extension().
func ReadWritePPSSCCExt(op Op, e *PPSSCCExt) {
	op.BeginStruct("pps_scc_extension")
	op.Flag(&e.PPSCurrPicRefEnabledFlag, "pps_curr_pic_ref_enabled_flag")
	op.Flag(&e.ResidualAdaptiveColourTransformEnabledFlag, "residual_adaptive_colour_transform_enabled_flag")
	if e.ResidualAdaptiveColourTransformEnabledFlag != 0 {
		op.Flag(&e.PPSSliceActQPOffsetsPresentFlag, "pps_slice_act_qp_offsets_present_flag")
		op.SE(&e.PPSActYQPOffsetPlus5, "pps_act_y_qp_offset_plus5")
		op.SE(&e.PPSActCbQPOffsetPlus5, "pps_act_cb_qp_offset_plus5")
		op.SE(&e.PPSActCrQPOffsetPlus3, "pps_act_cr_qp_offset_plus3")
	}
	op.Flag(&e.PPSPalettePredictorInitializerPresentFlag, "pps_palette_predictor_initializer_present_flag")
	if e.PPSPalettePredictorInitializerPresentFlag != 0 {
		op.UE(&e.PPSNumPalettePredictorInitializer, "pps_num_palette_predictor_initializer")
		if e.PPSNumPalettePredictorInitializer > 0 {
			op.Flag(&e.MonochromePaletteFlag, "monochrome_palette_flag")
			op.UE(&e.LumaBitDepthEntryMinus8, "luma_bit_depth_entry_minus8")
			if e.MonochromePaletteFlag == 0 {
				op.UE(&e.ChromaBitDepthEntryMinus8, "chroma_bit_depth_entry_minus8")
			}
			numComps := 3
			if e.MonochromePaletteFlag != 0 {
				numComps = 1
			}
			bitDepth := func(comp int) int {
				if comp == 0 {
					return int(e.LumaBitDepthEntryMinus8) + 8
				}
				return int(e.ChromaBitDepthEntryMinus8) + 8
			}
			readWriteSCCComps(op, &e.PPSPalettePredictorInitializers, numComps, int(e.PPSNumPalettePredictorInitializer), bitDepth)
		}
	}
	op.EndStruct()
}
