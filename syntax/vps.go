package syntax

// LayersMax bounds vps_max_layers_minus1 (7.4.3.1): 64 is a corner
// case but must be allowed.
const LayersMax = 64

// LayerSetsMax bounds vps_num_layer_sets_minus1 (7.4.3.1, [0, 1023]).
const LayerSetsMax = 1024

// VPSHRDEntry is one entry of the vps_num_hrd_parameters loop.
type VPSHRDEntry struct {
	HRDLayerSetIdx    uint32
	CprmsPresentFlag  int
	HRD               HRD
}

// VPS is video_parameter_set_rbsp() of clause 7.3.2.1.
type VPS struct {
	VPSVideoParameterSetID   uint32
	VPSBaseLayerInternalFlag int
	VPSBaseLayerAvailableFlag int
	VPSMaxLayersMinus1       uint32
	VPSMaxSubLayersMinus1    uint32
	VPSTemporalIDNestingFlag int

	ProfileTierLevel ProfileTierLevel

	VPSSubLayerOrderingInfoPresentFlag int
	VPSMaxDecPicBufferingMinus1        [SubLayersMax]uint32
	VPSMaxNumReorderPics               [SubLayersMax]uint32
	VPSMaxLatencyIncreasePlus1         [SubLayersMax]uint32

	VPSMaxLayerID         uint32
	VPSNumLayerSetsMinus1 uint32

	// LayerIDIncludedFlag is indexed [layerSet][layer]; layerSet 0 is
	// implicit (the base layer alone) and is never stored here, so
	// len(LayerIDIncludedFlag) == VPSNumLayerSetsMinus1.
	LayerIDIncludedFlag [][]int

	VPSTimingInfoPresentFlag       int
	VPSNumUnitsInTick              uint32
	VPSTimeScale                   uint32
	VPSPOCProportionalToTimingFlag int
	VPSNumTicksPOCDiffOneMinus1    uint32

	VPSNumHRDParameters uint32
	HRDEntries          []VPSHRDEntry

	VPSExtensionFlag int
}

// ReadWriteVPS reads or writes video_parameter_set_rbsp().
func ReadWriteVPS(op Op, vps *VPS) {
	op.BeginStruct("vps")
	op.U(&vps.VPSVideoParameterSetID, 4, "vps_video_parameter_set_id")
	op.Flag(&vps.VPSBaseLayerInternalFlag, "vps_base_layer_internal_flag")
	op.Flag(&vps.VPSBaseLayerAvailableFlag, "vps_base_layer_available_flag")
	op.U(&vps.VPSMaxLayersMinus1, 6, "vps_max_layers_minus1")
	op.U(&vps.VPSMaxSubLayersMinus1, 3, "vps_max_sub_layers_minus1")
	op.Flag(&vps.VPSTemporalIDNestingFlag, "vps_temporal_id_nesting_flag")
	ffff := uint32(0xffff)
	op.U(&ffff, 16, "vps_reserved_0xffff_16bits")

	ReadWriteProfileTierLevel(op, &vps.ProfileTierLevel, true, int(vps.VPSMaxSubLayersMinus1))

	op.Flag(&vps.VPSSubLayerOrderingInfoPresentFlag, "vps_sub_layer_ordering_info_present_flag")
	start := int(vps.VPSMaxSubLayersMinus1)
	if vps.VPSSubLayerOrderingInfoPresentFlag != 0 {
		start = 0
	}
	for i := start; i <= int(vps.VPSMaxSubLayersMinus1); i++ {
		op.UE(&vps.VPSMaxDecPicBufferingMinus1[i], "vps_max_dec_pic_buffering_minus1")
		op.UE(&vps.VPSMaxNumReorderPics[i], "vps_max_num_reorder_pics")
		op.UE(&vps.VPSMaxLatencyIncreasePlus1[i], "vps_max_latency_increase_plus1")
	}

	op.U(&vps.VPSMaxLayerID, 6, "vps_max_layer_id")
	op.UE(&vps.VPSNumLayerSetsMinus1, "vps_num_layer_sets_minus1")
	if int(vps.VPSNumLayerSetsMinus1) >= len(vps.LayerIDIncludedFlag) {
		grown := make([][]int, vps.VPSNumLayerSetsMinus1)
		copy(grown, vps.LayerIDIncludedFlag)
		vps.LayerIDIncludedFlag = grown
	}
	for i := 1; i <= int(vps.VPSNumLayerSetsMinus1); i++ {
		row := vps.LayerIDIncludedFlag[i-1]
		if len(row) != int(vps.VPSMaxLayerID)+1 {
			row = make([]int, vps.VPSMaxLayerID+1)
		}
		for j := 0; j <= int(vps.VPSMaxLayerID); j++ {
			op.Flag(&row[j], "layer_id_included_flag")
		}
		vps.LayerIDIncludedFlag[i-1] = row
	}

	op.Flag(&vps.VPSTimingInfoPresentFlag, "vps_timing_info_present_flag")
	if vps.VPSTimingInfoPresentFlag != 0 {
		op.U(&vps.VPSNumUnitsInTick, 32, "vps_num_units_in_tick")
		op.U(&vps.VPSTimeScale, 32, "vps_time_scale")
		op.Flag(&vps.VPSPOCProportionalToTimingFlag, "vps_poc_proportional_to_timing_flag")
		if vps.VPSPOCProportionalToTimingFlag != 0 {
			op.UE(&vps.VPSNumTicksPOCDiffOneMinus1, "vps_num_ticks_poc_diff_one_minus1")
		}
		op.UE(&vps.VPSNumHRDParameters, "vps_num_hrd_parameters")
		if int(vps.VPSNumHRDParameters) != len(vps.HRDEntries) {
			vps.HRDEntries = make([]VPSHRDEntry, vps.VPSNumHRDParameters)
		}
		for i := 0; i < int(vps.VPSNumHRDParameters); i++ {
			e := &vps.HRDEntries[i]
			op.UE(&e.HRDLayerSetIdx, "hrd_layer_set_idx")
			if i > 0 {
				op.Flag(&e.CprmsPresentFlag, "cprms_present_flag")
			} else {
				e.CprmsPresentFlag = 1
			}
			ReadWriteHRD(op, &e.HRD, e.CprmsPresentFlag != 0, int(vps.VPSMaxSubLayersMinus1))
		}
	}
	op.Flag(&vps.VPSExtensionFlag, "vps_extension_flag")
	if vps.VPSExtensionFlag != 0 {
		for op.MoreRBSPData() {
			var discard int
			op.Flag(&discard, "vps_extension_data_flag")
		}
	}
	op.RBSPTrailingBits()
	op.EndStruct()
}
