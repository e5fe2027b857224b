package syntax

// VUI is vui_parameters() of clause E.2.1.
type VUI struct {
	AspectRatioInfoPresentFlag int
	AspectRatioIDC             uint32
	SARWidth                   uint32
	SARHeight                  uint32

	OverscanInfoPresentFlag int
	OverscanAppropriateFlag int

	VideoSignalTypePresentFlag int
	VideoFormat                uint32
	VideoFullRangeFlag         int
	ColourDescriptionPresentFlag int
	ColourPrimaries             uint32
	TransferCharacteristics     uint32
	MatrixCoeffs                uint32

	ChromaLocInfoPresentFlag      int
	ChromaSampleLocTypeTopField    uint32
	ChromaSampleLocTypeBottomField uint32

	NeutralChromaIndicationFlag int
	FieldSeqFlag                int
	FrameFieldInfoPresentFlag   int

	DefaultDisplayWindowFlag int
	DefDispWinLeftOffset     uint32
	DefDispWinRightOffset    uint32
	DefDispWinTopOffset      uint32
	DefDispWinBottomOffset   uint32

	VUITimingInfoPresentFlag       int
	VUINumUnitsInTick              uint32
	VUITimeScale                   uint32
	VUIPOCProportionalToTimingFlag int
	VUINumTicksPOCDiffOneMinus1    uint32
	VUIHRDParametersPresentFlag    int
	HRD                            HRD

	BitstreamRestrictionFlag           int
	TilesFixedStructureFlag            int
	MotionVectorsOverPicBoundariesFlag int
	RestrictedRefPicListsFlag          int
	MinSpatialSegmentationIDC          uint32
	MaxBytesPerPicDenom                uint32
	MaxBitsPerMinCUDenom               uint32
	Log2MaxMVLengthHorizontal          uint32
	Log2MaxMVLengthVertical            uint32
}

// const-valued extended SAR indicator, Table E.1.
const AspectRatioExtendedSAR = 255

// ReadWriteVUI reads or writes vui_parameters(). sps_max_sub_layers_minus1
// is needed to size the nested hrd_parameters() sub-layer loop.
func ReadWriteVUI(op Op, v *VUI, spsMaxSubLayersMinus1 int) {
	op.BeginStruct("vui_parameters")
	op.Flag(&v.AspectRatioInfoPresentFlag, "aspect_ratio_info_present_flag")
	if v.AspectRatioInfoPresentFlag != 0 {
		op.U(&v.AspectRatioIDC, 8, "aspect_ratio_idc")
		if v.AspectRatioIDC == AspectRatioExtendedSAR {
			op.U(&v.SARWidth, 16, "sar_width")
			op.U(&v.SARHeight, 16, "sar_height")
		}
	}
	op.Flag(&v.OverscanInfoPresentFlag, "overscan_info_present_flag")
	if v.OverscanInfoPresentFlag != 0 {
		op.Flag(&v.OverscanAppropriateFlag, "overscan_appropriate_flag")
	}
	op.Flag(&v.VideoSignalTypePresentFlag, "video_signal_type_present_flag")
	if v.VideoSignalTypePresentFlag != 0 {
		op.U(&v.VideoFormat, 3, "video_format")
		op.Flag(&v.VideoFullRangeFlag, "video_full_range_flag")
		op.Flag(&v.ColourDescriptionPresentFlag, "colour_description_present_flag")
		if v.ColourDescriptionPresentFlag != 0 {
			op.U(&v.ColourPrimaries, 8, "colour_primaries")
			op.U(&v.TransferCharacteristics, 8, "transfer_characteristics")
			op.U(&v.MatrixCoeffs, 8, "matrix_coeffs")
		}
	}
	op.Flag(&v.ChromaLocInfoPresentFlag, "chroma_loc_info_present_flag")
	if v.ChromaLocInfoPresentFlag != 0 {
		op.UE(&v.ChromaSampleLocTypeTopField, "chroma_sample_loc_type_top_field")
		op.UE(&v.ChromaSampleLocTypeBottomField, "chroma_sample_loc_type_bottom_field")
	}
	op.Flag(&v.NeutralChromaIndicationFlag, "neutral_chroma_indication_flag")
	op.Flag(&v.FieldSeqFlag, "field_seq_flag")
	op.Flag(&v.FrameFieldInfoPresentFlag, "frame_field_info_present_flag")
	op.Flag(&v.DefaultDisplayWindowFlag, "default_display_window_flag")
	if v.DefaultDisplayWindowFlag != 0 {
		op.UE(&v.DefDispWinLeftOffset, "def_disp_win_left_offset")
		op.UE(&v.DefDispWinRightOffset, "def_disp_win_right_offset")
		op.UE(&v.DefDispWinTopOffset, "def_disp_win_top_offset")
		op.UE(&v.DefDispWinBottomOffset, "def_disp_win_bottom_offset")
	}
	op.Flag(&v.VUITimingInfoPresentFlag, "vui_timing_info_present_flag")
	if v.VUITimingInfoPresentFlag != 0 {
		op.U(&v.VUINumUnitsInTick, 32, "vui_num_units_in_tick")
		op.U(&v.VUITimeScale, 32, "vui_time_scale")
		op.Flag(&v.VUIPOCProportionalToTimingFlag, "vui_poc_proportional_to_timing_flag")
		if v.VUIPOCProportionalToTimingFlag != 0 {
			op.UE(&v.VUINumTicksPOCDiffOneMinus1, "vui_num_ticks_poc_diff_one_minus1")
		}
		op.Flag(&v.VUIHRDParametersPresentFlag, "vui_hrd_parameters_present_flag")
		if v.VUIHRDParametersPresentFlag != 0 {
			ReadWriteHRD(op, &v.HRD, true, spsMaxSubLayersMinus1)
		}
	}
	op.Flag(&v.BitstreamRestrictionFlag, "bitstream_restriction_flag")
	if v.BitstreamRestrictionFlag != 0 {
		op.Flag(&v.TilesFixedStructureFlag, "tiles_fixed_structure_flag")
		op.Flag(&v.MotionVectorsOverPicBoundariesFlag, "motion_vectors_over_pic_boundaries_flag")
		op.Flag(&v.RestrictedRefPicListsFlag, "restricted_ref_pic_lists_flag")
		op.UE(&v.MinSpatialSegmentationIDC, "min_spatial_segmentation_idc")
		op.UE(&v.MaxBytesPerPicDenom, "max_bytes_per_pic_denom")
		op.UE(&v.MaxBitsPerMinCUDenom, "max_bits_per_min_cu_denom")
		op.UE(&v.Log2MaxMVLengthHorizontal, "log2_max_mv_length_horizontal")
		op.UE(&v.Log2MaxMVLengthVertical, "log2_max_mv_length_vertical")
	}
	op.EndStruct()
}
