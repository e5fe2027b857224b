package syntax

// TileColumnsMax and TileRowsMax bound num_tile_columns_minus1 and
// num_tile_rows_minus1 (A.4.1, the level-22 limits).
const TileColumnsMax = 22
const TileRowsMax = 20

// PPS is pic_parameter_set_rbsp() of clause 7.3.2.3.1.
type PPS struct {
	PPSPicParameterSetID uint32
	PPSSeqParameterSetID uint32

	DependentSliceSegmentsEnabledFlag int
	OutputFlagPresentFlag             int
	NumExtraSliceHeaderBits           uint32
	SignDataHidingEnabledFlag         int
	CabacInitPresentFlag              int

	NumRefIdxL0DefaultActiveMinus1 uint32
	NumRefIdxL1DefaultActiveMinus1 uint32
	InitQPMinus26                 int32
	ConstrainedIntraPredFlag      int
	TransformSkipEnabledFlag      int
	CuQPDeltaEnabledFlag          int
	DiffCuQPDeltaDepth            uint32
	PPSCbQPOffset                 int32
	PPSCrQPOffset                 int32
	PPSSliceChromaQPOffsetsPresentFlag int
	WeightedPredFlag              int
	WeightedBipredFlag            int
	TransquantBypassEnabledFlag   int

	TilesEnabledFlag               int
	EntropyCodingSyncEnabledFlag   int
	NumTileColumnsMinus1           uint32
	NumTileRowsMinus1              uint32
	UniformSpacingFlag             int
	ColumnWidthMinus1              [TileColumnsMax]uint32
	RowHeightMinus1                [TileRowsMax]uint32
	LoopFilterAcrossTilesEnabledFlag int

	PPSLoopFilterAcrossSlicesEnabledFlag int
	DeblockingFilterControlPresentFlag  int
	DeblockingFilterOverrideEnabledFlag int
	PPSDeblockingFilterDisabledFlag     int
	PPSBetaOffsetDiv2                   int32
	PPSTcOffsetDiv2                     int32

	PPSScalingListDataPresentFlag int
	ScalingListData               ScalingListData

	ListsModificationPresentFlag             int
	Log2ParallelMergeLevelMinus2             uint32
	SliceSegmentHeaderExtensionPresentFlag   int

	PPSExtensionPresentFlag    int
	PPSRangeExtensionFlag      int
	PPSMultilayerExtensionFlag int
	PPS3DExtensionFlag         int
	PPSSCCExtensionFlag        int
	PPSExtension4bits          uint32

	RangeExt PPSRangeExt
	Ext3D    PPS3DExt
	SCCExt   PPSSCCExt

	// PPSDepthLayersMinus1 sizes the pps_3d_extension() layer loop. It
	// is not itself a PPS syntax element: clause I derives it from the
	// multilayer VPS extension, which this package does not parse, so
	// callers that care about multiview depth layers set it directly
	// before calling ReadWritePPS with PPS3DExtensionFlag set.
	PPSDepthLayersMinus1 int

	// PPSBitDepthForDepthLayersMinus8 sizes the dlt_value_flag array
	// and the delta_dlt() field widths in pps_3d_extension(). Like
	// PPSDepthLayersMinus1, it comes from the multilayer VPS extension
	// rather than from any field this package parses.
	PPSBitDepthForDepthLayersMinus8 int
}

// ReadWritePPS reads or writes pic_parameter_set_rbsp().
func ReadWritePPS(op Op, p *PPS) {
	op.BeginStruct("pps")
	op.UE(&p.PPSPicParameterSetID, "pps_pic_parameter_set_id")
	op.UE(&p.PPSSeqParameterSetID, "pps_seq_parameter_set_id")
	op.Flag(&p.DependentSliceSegmentsEnabledFlag, "dependent_slice_segments_enabled_flag")
	op.Flag(&p.OutputFlagPresentFlag, "output_flag_present_flag")
	op.U(&p.NumExtraSliceHeaderBits, 3, "num_extra_slice_header_bits")
	op.Flag(&p.SignDataHidingEnabledFlag, "sign_data_hiding_enabled_flag")
	op.Flag(&p.CabacInitPresentFlag, "cabac_init_present_flag")
	op.UE(&p.NumRefIdxL0DefaultActiveMinus1, "num_ref_idx_l0_default_active_minus1")
	op.UE(&p.NumRefIdxL1DefaultActiveMinus1, "num_ref_idx_l1_default_active_minus1")
	op.SE(&p.InitQPMinus26, "init_qp_minus26")
	op.Flag(&p.ConstrainedIntraPredFlag, "constrained_intra_pred_flag")
	op.Flag(&p.TransformSkipEnabledFlag, "transform_skip_enabled_flag")
	op.Flag(&p.CuQPDeltaEnabledFlag, "cu_qp_delta_enabled_flag")
	if p.CuQPDeltaEnabledFlag != 0 {
		op.UE(&p.DiffCuQPDeltaDepth, "diff_cu_qp_delta_depth")
	}
	op.SE(&p.PPSCbQPOffset, "pps_cb_qp_offset")
	op.SE(&p.PPSCrQPOffset, "pps_cr_qp_offset")
	op.Flag(&p.PPSSliceChromaQPOffsetsPresentFlag, "pps_slice_chroma_qp_offsets_present_flag")
	op.Flag(&p.WeightedPredFlag, "weighted_pred_flag")
	op.Flag(&p.WeightedBipredFlag, "weighted_bipred_flag")
	op.Flag(&p.TransquantBypassEnabledFlag, "transquant_bypass_enabled_flag")
	op.Flag(&p.TilesEnabledFlag, "tiles_enabled_flag")
	op.Flag(&p.EntropyCodingSyncEnabledFlag, "entropy_coding_sync_enabled_flag")
	if p.TilesEnabledFlag != 0 {
		op.UE(&p.NumTileColumnsMinus1, "num_tile_columns_minus1")
		op.UE(&p.NumTileRowsMinus1, "num_tile_rows_minus1")
		op.Flag(&p.UniformSpacingFlag, "uniform_spacing_flag")
		if p.UniformSpacingFlag == 0 {
			op.BeginArray("column_width_minus1", int(p.NumTileColumnsMinus1))
			for i := 0; i < int(p.NumTileColumnsMinus1); i++ {
				op.UE(&p.ColumnWidthMinus1[i], "column_width_minus1")
			}
			op.EndArray()
			op.BeginArray("row_height_minus1", int(p.NumTileRowsMinus1))
			for i := 0; i < int(p.NumTileRowsMinus1); i++ {
				op.UE(&p.RowHeightMinus1[i], "row_height_minus1")
			}
			op.EndArray()
		}
		op.Flag(&p.LoopFilterAcrossTilesEnabledFlag, "loop_filter_across_tiles_enabled_flag")
	}
	op.Flag(&p.PPSLoopFilterAcrossSlicesEnabledFlag, "pps_loop_filter_across_slices_enabled_flag")
	op.Flag(&p.DeblockingFilterControlPresentFlag, "deblocking_filter_control_present_flag")
	if p.DeblockingFilterControlPresentFlag != 0 {
		op.Flag(&p.DeblockingFilterOverrideEnabledFlag, "deblocking_filter_override_enabled_flag")
		op.Flag(&p.PPSDeblockingFilterDisabledFlag, "pps_deblocking_filter_disabled_flag")
		if p.PPSDeblockingFilterDisabledFlag == 0 {
			op.SE(&p.PPSBetaOffsetDiv2, "pps_beta_offset_div2")
			op.SE(&p.PPSTcOffsetDiv2, "pps_tc_offset_div2")
		}
	}
	op.Flag(&p.PPSScalingListDataPresentFlag, "pps_scaling_list_data_present_flag")
	if p.PPSScalingListDataPresentFlag != 0 {
		ReadWriteScalingListData(op, &p.ScalingListData)
	}
	op.Flag(&p.ListsModificationPresentFlag, "lists_modification_present_flag")
	op.UE(&p.Log2ParallelMergeLevelMinus2, "log2_parallel_merge_level_minus2")
	op.Flag(&p.SliceSegmentHeaderExtensionPresentFlag, "slice_segment_header_extension_present_flag")
	op.Flag(&p.PPSExtensionPresentFlag, "pps_extension_present_flag")
	if p.PPSExtensionPresentFlag != 0 {
		op.Flag(&p.PPSRangeExtensionFlag, "pps_range_extension_flag")
		op.Flag(&p.PPSMultilayerExtensionFlag, "pps_multilayer_extension_flag")
		op.Flag(&p.PPS3DExtensionFlag, "pps_3d_extension_flag")
		op.Flag(&p.PPSSCCExtensionFlag, "pps_scc_extension_flag")
		op.U(&p.PPSExtension4bits, 4, "pps_extension_4bits")
	}
	if p.PPSRangeExtensionFlag != 0 {
		ReadWritePPSRangeExt(op, &p.RangeExt, p.TransformSkipEnabledFlag)
	}
	if p.PPSMultilayerExtensionFlag != 0 {
		// pps_multilayer_extension() is not parsed: multilayer HEVC
		// (Annex F/H) is outside this package's scope. Bits are left
		// for a caller-supplied extension to consume; here they would
		// desynchronize the trailing pps_extension_data_flag scan, so
		// a bitstream that sets this flag is otherwise unsupported.
	}
	if p.PPS3DExtensionFlag != 0 {
		ReadWritePPS3DExt(op, &p.Ext3D, p.PPSDepthLayersMinus1, p.PPSBitDepthForDepthLayersMinus8+8)
	}
	if p.PPSSCCExtensionFlag != 0 {
		ReadWritePPSSCCExt(op, &p.SCCExt)
	}
	if p.PPSExtension4bits != 0 {
		for op.MoreRBSPData() {
			var discard int
			op.Flag(&discard, "pps_extension_data_flag")
		}
	}
	op.RBSPTrailingBits()
	op.EndStruct()
}
