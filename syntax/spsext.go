package syntax

// SPSRangeExt is sps_range_extension() of clause 7.3.2.2.2.
type SPSRangeExt struct {
	TransformSkipRotationEnabledFlag   int
	TransformSkipContextEnabledFlag    int
	ImplicitRDPCMEnabledFlag           int
	ExplicitRDPCMEnabledFlag           int
	ExtendedPrecisionProcessingFlag    int
	IntraSmoothingDisabledFlag         int
	HighPrecisionOffsetsEnabledFlag    int
	PersistentRiceAdaptationEnabledFlag int
	CABACBypassAlignmentEnabledFlag    int
}

func ReadWriteSPSRangeExt(op Op, e *SPSRangeExt) {
	op.BeginStruct("sps_range_extension")
	op.Flag(&e.TransformSkipRotationEnabledFlag, "transform_skip_rotation_enabled_flag")
	op.Flag(&e.TransformSkipContextEnabledFlag, "transform_skip_context_enabled_flag")
	op.Flag(&e.ImplicitRDPCMEnabledFlag, "implicit_rdpcm_enabled_flag")
	op.Flag(&e.ExplicitRDPCMEnabledFlag, "explicit_rdpcm_enabled_flag")
	op.Flag(&e.ExtendedPrecisionProcessingFlag, "extended_precision_processing_flag")
	op.Flag(&e.IntraSmoothingDisabledFlag, "intra_smoothing_disabled_flag")
	op.Flag(&e.HighPrecisionOffsetsEnabledFlag, "high_precision_offsets_enabled_flag")
	op.Flag(&e.PersistentRiceAdaptationEnabledFlag, "persistent_rice_adaptation_enabled_flag")
	op.Flag(&e.CABACBypassAlignmentEnabledFlag, "cabac_bypass_alignment_enabled_flag")
	op.EndStruct()
}

// SPSMultilayerExt is sps_multilayer_extension() of clause F.7.3.2.2.4.
type SPSMultilayerExt struct {
	InterViewMVVertConstraintFlag int
}

func ReadWriteSPSMultilayerExt(op Op, e *SPSMultilayerExt) {
	op.BeginStruct("sps_multilayer_extension")
	op.Flag(&e.InterViewMVVertConstraintFlag, "inter_view_mv_vert_constraint_flag")
	op.EndStruct()
}

// SPS3DExt is sps_3d_extension() of clause I.7.3.2.2.5, indexed by
// depth flag d in [0, 1].
type SPS3DExt struct {
	IvDiMcEnabledFlag          [2]int
	IvMvScalEnabledFlag        [2]int
	Log2IvmcSubPbSizeMinus3    [2]uint32
	IvResPredEnabledFlag       [2]int
	DepthRefEnabledFlag        [2]int
	VspMcEnabledFlag           [2]int
	DbbpEnabledFlag            [2]int
	TexMcEnabledFlag           [2]int
	Log2TexmcSubPbSizeMinus3   [2]uint32
	IntraContourEnabledFlag    [2]int
	IntraDCOnlyWedgeEnabledFlag [2]int
	CqtCuPartPredEnabledFlag   [2]int
	InterDCOnlyEnabledFlag     [2]int
	SkipIntraEnabledFlag       [2]int
}

func ReadWriteSPS3DExt(op Op, e *SPS3DExt) {
	op.BeginStruct("sps_3d_extension")
	for d := 0; d <= 1; d++ {
		op.Flag(&e.IvDiMcEnabledFlag[d], "iv_di_mc_enabled_flag")
		op.Flag(&e.IvMvScalEnabledFlag[d], "iv_mv_scal_enabled_flag")
		if d == 0 {
			op.UE(&e.Log2IvmcSubPbSizeMinus3[d], "log2_ivmc_sub_pb_size_minus3")
			op.Flag(&e.IvResPredEnabledFlag[d], "iv_res_pred_enabled_flag")
			op.Flag(&e.DepthRefEnabledFlag[d], "depth_ref_enabled_flag")
			op.Flag(&e.VspMcEnabledFlag[d], "vsp_mc_enabled_flag")
			op.Flag(&e.DbbpEnabledFlag[d], "dbbp_enabled_flag")
		} else {
			op.Flag(&e.TexMcEnabledFlag[d], "tex_mc_enabled_flag")
			op.UE(&e.Log2TexmcSubPbSizeMinus3[d], "log2_texmc_sub_pb_size_minus3")
			op.Flag(&e.IntraContourEnabledFlag[d], "intra_contour_enabled_flag")
			op.Flag(&e.IntraDCOnlyWedgeEnabledFlag[d], "intra_dc_only_wedge_enabled_flag")
			op.Flag(&e.CqtCuPartPredEnabledFlag[d], "cqt_cu_part_pred_enabled_flag")
			op.Flag(&e.InterDCOnlyEnabledFlag[d], "inter_dc_only_enabled_flag")
			op.Flag(&e.SkipIntraEnabledFlag[d], "skip_intra_enabled_flag")
		}
	}
	op.EndStruct()
}

// PaletteMaxComps and PalettePredictorMax bound the screen-content
// coding palette predictor arrays: numComps is 1 for monochrome, 3
// otherwise; PaletteMaxPredictorSize must be <= 128 (Annex A.3.7).
const PaletteMaxComps = 3
const PalettePredictorMax = 128

// SPSSCCExt is sps_scc_extension() of clause 7.3.2.2.3.
type SPSSCCExt struct {
	SPSCurrPicRefEnabledFlag               int
	PaletteModeEnabledFlag                 int
	PaletteMaxSize                         uint32
	DeltaPaletteMaxPredictorSize           uint32
	SPSPalettePredictorInitializerPresentFlag int
	SPSNumPalettePredictorInitializerMinus1 uint32
	SPSPalettePredictorInitializers        [PaletteMaxComps][PalettePredictorMax]uint32
	MotionVectorResolutionControlIDC       uint32
	IntraBoundaryFilteringDisabledFlag     int
}

// readWriteSCCComps reads or writes the numComps x (count) palette
// predictor initializer grid shared between the SPS and PPS screen
// content coding extensions (scc_comps in the original).
func readWriteSCCComps(op Op, vals *[PaletteMaxComps][PalettePredictorMax]uint32, numComps, count int, bitDepth func(comp int) int) {
	op.BeginArray("palette_predictor_initializers", numComps)
	for comp := 0; comp < numComps; comp++ {
		n := bitDepth(comp)
		for i := 0; i < count; i++ {
			op.U(&vals[comp][i], n, "palette_predictor_initializer")
		}
	}
	op.EndArray()
}

// ReadWriteSPSSCCExt reads or writes sps_scc_extension().
// chromaFormatIDC, bitDepthLumaMinus8 and bitDepthChromaMinus8 come
// from the enclosing SPS.
func ReadWriteSPSSCCExt(op Op, e *SPSSCCExt, chromaFormatIDC uint32, bitDepthLumaMinus8, bitDepthChromaMinus8 uint32) {
	op.BeginStruct("sps_scc_extension")
	op.Flag(&e.SPSCurrPicRefEnabledFlag, "sps_curr_pic_ref_enabled_flag")
	op.Flag(&e.PaletteModeEnabledFlag, "palette_mode_enabled_flag")
	if e.PaletteModeEnabledFlag != 0 {
		op.UE(&e.PaletteMaxSize, "palette_max_size")
		op.UE(&e.DeltaPaletteMaxPredictorSize, "delta_palette_max_predictor_size")
		op.Flag(&e.SPSPalettePredictorInitializerPresentFlag, "sps_palette_predictor_initializer_present_flag")
		if e.SPSPalettePredictorInitializerPresentFlag != 0 {
			op.UE(&e.SPSNumPalettePredictorInitializerMinus1, "sps_num_palette_predictor_initializer_minus1")
			numComps := 3
			if chromaFormatIDC == 0 {
				numComps = 1
			}
			bitDepth := func(comp int) int {
				if comp == 0 {
					return int(bitDepthLumaMinus8) + 8
				}
				return int(bitDepthChromaMinus8) + 8
			}
			readWriteSCCComps(op, &e.SPSPalettePredictorInitializers, numComps, int(e.SPSNumPalettePredictorInitializerMinus1)+1, bitDepth)
		}
	}
	op.U(&e.MotionVectorResolutionControlIDC, 2, "motion_vector_resolution_control_idc")
	op.Flag(&e.IntraBoundaryFilteringDisabledFlag, "intra_boundary_filtering_disabled_flag")
	op.EndStruct()
}
