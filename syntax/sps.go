package syntax

// LongTermRefMax bounds num_long_term_ref_pics_sps (7.4.3.2.1, <= 32).
const LongTermRefMax = 32

// SPS is seq_parameter_set_rbsp() of clause 7.3.2.2.
type SPS struct {
	SPSVideoParameterSetID   uint32
	SPSMaxSubLayersMinus1    uint32
	SPSTemporalIDNestingFlag int

	ProfileTierLevel ProfileTierLevel

	SPSSeqParameterSetID uint32
	ChromaFormatIDC      uint32
	SeparateColourPlaneFlag int

	PicWidthInLumaSamples  uint32
	PicHeightInLumaSamples uint32

	ConformanceWindowFlag  int
	ConfWinLeftOffset      uint32
	ConfWinRightOffset     uint32
	ConfWinTopOffset       uint32
	ConfWinBottomOffset    uint32

	BitDepthLumaMinus8   uint32
	BitDepthChromaMinus8 uint32

	Log2MaxPicOrderCntLsbMinus4 uint32

	SPSSubLayerOrderingInfoPresentFlag int
	SPSMaxDecPicBufferingMinus1        [SubLayersMax]uint32
	SPSMaxNumReorderPics               [SubLayersMax]uint32
	SPSMaxLatencyIncreasePlus1         [SubLayersMax]uint32

	Log2MinLumaCodingBlockSizeMinus3      uint32
	Log2DiffMaxMinLumaCodingBlockSize     uint32
	Log2MinLumaTransformBlockSizeMinus2   uint32
	Log2DiffMaxMinLumaTransformBlockSize  uint32
	MaxTransformHierarchyDepthInter       uint32
	MaxTransformHierarchyDepthIntra       uint32

	ScalingListEnabledFlag          int
	SPSScalingListDataPresentFlag   int
	ScalingListData                ScalingListData

	AMPEnabledFlag                int
	SampleAdaptiveOffsetEnabledFlag int

	PCMEnabledFlag                        int
	PCMSampleBitDepthLumaMinus1           uint32
	PCMSampleBitDepthChromaMinus1         uint32
	Log2MinPCMLumaCodingBlockSizeMinus3   uint32
	Log2DiffMaxMinPCMLumaCodingBlockSize  uint32
	PCMLoopFilterDisabledFlag             int

	NumShortTermRefPicSets uint32
	ShortTermRefPicSets    [STRPSMax]ShortTermRefPicSet

	LongTermRefPicsPresentFlag int
	NumLongTermRefPicsSPS      uint32
	LtRefPicPocLsbSPS          [LongTermRefMax]uint32
	UsedByCurrPicLtSPSFlag     [LongTermRefMax]int

	SPSTemporalMVPEnabledFlag        int
	StrongIntraSmoothingEnabledFlag int

	VUIParametersPresentFlag int
	VUI                      VUI

	SPSExtensionPresentFlag   int
	SPSRangeExtensionFlag     int
	SPSMultilayerExtensionFlag int
	SPS3DExtensionFlag        int
	SPSSCCExtensionFlag       int
	SPSExtension4bits         uint32

	RangeExt      SPSRangeExt
	MultilayerExt SPSMultilayerExt
	Ext3D         SPS3DExt
	SCCExt        SPSSCCExt
}

// ReadWriteSPS reads or writes seq_parameter_set_rbsp().
func ReadWriteSPS(op Op, s *SPS) {
	op.BeginStruct("sps")
	op.U(&s.SPSVideoParameterSetID, 4, "sps_video_parameter_set_id")
	op.U(&s.SPSMaxSubLayersMinus1, 3, "sps_max_sub_layers_minus1")
	op.Flag(&s.SPSTemporalIDNestingFlag, "sps_temporal_id_nesting_flag")

	ReadWriteProfileTierLevel(op, &s.ProfileTierLevel, true, int(s.SPSMaxSubLayersMinus1))

	op.UE(&s.SPSSeqParameterSetID, "sps_seq_parameter_set_id")
	op.UE(&s.ChromaFormatIDC, "chroma_format_idc")
	if s.ChromaFormatIDC == 3 {
		op.Flag(&s.SeparateColourPlaneFlag, "separate_colour_plane_flag")
	}
	op.UE(&s.PicWidthInLumaSamples, "pic_width_in_luma_samples")
	op.UE(&s.PicHeightInLumaSamples, "pic_height_in_luma_samples")
	op.Flag(&s.ConformanceWindowFlag, "conformance_window_flag")
	if s.ConformanceWindowFlag != 0 {
		op.UE(&s.ConfWinLeftOffset, "conf_win_left_offset")
		op.UE(&s.ConfWinRightOffset, "conf_win_right_offset")
		op.UE(&s.ConfWinTopOffset, "conf_win_top_offset")
		op.UE(&s.ConfWinBottomOffset, "conf_win_bottom_offset")
	}
	op.UE(&s.BitDepthLumaMinus8, "bit_depth_luma_minus8")
	op.UE(&s.BitDepthChromaMinus8, "bit_depth_chroma_minus8")
	op.UE(&s.Log2MaxPicOrderCntLsbMinus4, "log2_max_pic_order_cnt_lsb_minus4")

	op.Flag(&s.SPSSubLayerOrderingInfoPresentFlag, "sps_sub_layer_ordering_info_present_flag")
	start := int(s.SPSMaxSubLayersMinus1)
	if s.SPSSubLayerOrderingInfoPresentFlag != 0 {
		start = 0
	}
	for i := start; i <= int(s.SPSMaxSubLayersMinus1); i++ {
		op.UE(&s.SPSMaxDecPicBufferingMinus1[i], "sps_max_dec_pic_buffering_minus1")
		op.UE(&s.SPSMaxNumReorderPics[i], "sps_max_num_reorder_pics")
		op.UE(&s.SPSMaxLatencyIncreasePlus1[i], "sps_max_latency_increase_plus1")
	}

	op.UE(&s.Log2MinLumaCodingBlockSizeMinus3, "log2_min_luma_coding_block_size_minus3")
	op.UE(&s.Log2DiffMaxMinLumaCodingBlockSize, "log2_diff_max_min_luma_coding_block_size")
	op.UE(&s.Log2MinLumaTransformBlockSizeMinus2, "log2_min_luma_transform_block_size_minus2")
	op.UE(&s.Log2DiffMaxMinLumaTransformBlockSize, "log2_diff_max_min_luma_transform_block_size")
	op.UE(&s.MaxTransformHierarchyDepthInter, "max_transform_hierarchy_depth_inter")
	op.UE(&s.MaxTransformHierarchyDepthIntra, "max_transform_hierarchy_depth_intra")

	op.Flag(&s.ScalingListEnabledFlag, "scaling_list_enabled_flag")
	if s.ScalingListEnabledFlag != 0 {
		op.Flag(&s.SPSScalingListDataPresentFlag, "sps_scaling_list_data_present_flag")
		if s.SPSScalingListDataPresentFlag != 0 {
			ReadWriteScalingListData(op, &s.ScalingListData)
		}
	}

	op.Flag(&s.AMPEnabledFlag, "amp_enabled_flag")
	op.Flag(&s.SampleAdaptiveOffsetEnabledFlag, "sample_adaptive_offset_enabled_flag")
	op.Flag(&s.PCMEnabledFlag, "pcm_enabled_flag")
	if s.PCMEnabledFlag != 0 {
		op.U(&s.PCMSampleBitDepthLumaMinus1, 4, "pcm_sample_bit_depth_luma_minus1")
		op.U(&s.PCMSampleBitDepthChromaMinus1, 4, "pcm_sample_bit_depth_chroma_minus1")
		op.UE(&s.Log2MinPCMLumaCodingBlockSizeMinus3, "log2_min_pcm_luma_coding_block_size_minus3")
		op.UE(&s.Log2DiffMaxMinPCMLumaCodingBlockSize, "log2_diff_max_min_pcm_luma_coding_block_size")
		op.Flag(&s.PCMLoopFilterDisabledFlag, "pcm_loop_filter_disabled_flag")
	}

	op.UE(&s.NumShortTermRefPicSets, "num_short_term_ref_pic_sets")
	for i := 0; i < int(s.NumShortTermRefPicSets); i++ {
		ReadWriteShortTermRefPicSet(op, s.ShortTermRefPicSets[:], i, int(s.NumShortTermRefPicSets))
	}

	op.Flag(&s.LongTermRefPicsPresentFlag, "long_term_ref_pics_present_flag")
	if s.LongTermRefPicsPresentFlag != 0 {
		op.UE(&s.NumLongTermRefPicsSPS, "num_long_term_ref_pics_sps")
		pocBits := int(s.Log2MaxPicOrderCntLsbMinus4) + 4
		for i := 0; i < int(s.NumLongTermRefPicsSPS); i++ {
			op.U(&s.LtRefPicPocLsbSPS[i], pocBits, "lt_ref_pic_poc_lsb_sps")
			op.Flag(&s.UsedByCurrPicLtSPSFlag[i], "used_by_curr_pic_lt_sps_flag")
		}
	}

	op.Flag(&s.SPSTemporalMVPEnabledFlag, "sps_temporal_mvp_enabled_flag")
	op.Flag(&s.StrongIntraSmoothingEnabledFlag, "strong_intra_smoothing_enabled_flag")
	op.Flag(&s.VUIParametersPresentFlag, "vui_parameters_present_flag")
	if s.VUIParametersPresentFlag != 0 {
		ReadWriteVUI(op, &s.VUI, int(s.SPSMaxSubLayersMinus1))
	}

	op.Flag(&s.SPSExtensionPresentFlag, "sps_extension_present_flag")
	if s.SPSExtensionPresentFlag != 0 {
		op.Flag(&s.SPSRangeExtensionFlag, "sps_range_extension_flag")
		op.Flag(&s.SPSMultilayerExtensionFlag, "sps_multilayer_extension_flag")
		op.Flag(&s.SPS3DExtensionFlag, "sps_3d_extension_flag")
		op.Flag(&s.SPSSCCExtensionFlag, "sps_scc_extension_flag")
		op.U(&s.SPSExtension4bits, 4, "sps_extension_4bits")
	}
	if s.SPSRangeExtensionFlag != 0 {
		ReadWriteSPSRangeExt(op, &s.RangeExt)
	}
	if s.SPSMultilayerExtensionFlag != 0 {
		ReadWriteSPSMultilayerExt(op, &s.MultilayerExt)
	}
	if s.SPS3DExtensionFlag != 0 {
		ReadWriteSPS3DExt(op, &s.Ext3D)
	}
	if s.SPSSCCExtensionFlag != 0 {
		ReadWriteSPSSCCExt(op, &s.SCCExt, s.ChromaFormatIDC, s.BitDepthLumaMinus8, s.BitDepthChromaMinus8)
	}
	if s.SPSExtension4bits != 0 {
		for op.MoreRBSPData() {
			var discard int
			op.Flag(&discard, "sps_extension_data_flag")
		}
	}
	op.RBSPTrailingBits()
	op.EndStruct()
}
