package syntax

// PTLCore holds the fields common to the general and each sub-layer
// profile_tier_level, factored out the way the original's
// h265_ptl_core is, per the note following reserved_zero_2bits in
// clause 7.4.4.
type PTLCore struct {
	ProfileSpace               uint32
	TierFlag                   int
	ProfileIDC                 uint32
	ProfileCompatibilityFlag   [32]int
	ProgressiveSourceFlag      int
	InterlacedSourceFlag       int
	NonPackedConstraintFlag    int
	FrameOnlyConstraintFlag    int
	Max12bitConstraintFlag     int
	Max10bitConstraintFlag     int
	Max8bitConstraintFlag      int
	Max422ChromaConstraintFlag int
	Max420ChromaConstraintFlag int
	MaxMonochromeConstraintFlag int
	IntraConstraintFlag        int
	OnePictureOnlyConstraintFlag int
	LowerBitRateConstraintFlag int
	Max14bitConstraintFlag     int
	InbldFlag                  int
	LevelIDC                   uint32
}

// hasExtendedConstraintSet reports whether profile_idc or any of the
// listed compatibility flags select the nine-flag extended constraint
// layout of clause 7.3.3.
func (c *PTLCore) hasExtendedConstraintSet() bool {
	for _, idc := range []uint32{4, 5, 6, 7, 8, 9, 10} {
		if c.ProfileIDC == idc || c.ProfileCompatibilityFlag[idc] != 0 {
			return true
		}
	}
	return false
}

func (c *PTLCore) has14BitConstraintSet() bool {
	for _, idc := range []uint32{5, 9, 10} {
		if c.ProfileIDC == idc || c.ProfileCompatibilityFlag[idc] != 0 {
			return true
		}
	}
	return false
}

func (c *PTLCore) hasScreenExtendedProfile() bool {
	return c.ProfileIDC == 9 || c.ProfileCompatibilityFlag[9] != 0
}

func (c *PTLCore) hasInbld() bool {
	if c.ProfileIDC == 9 || c.ProfileCompatibilityFlag[9] != 0 {
		return true
	}
	for idc := uint32(1); idc <= 5; idc++ {
		if c.ProfileIDC == idc || c.ProfileCompatibilityFlag[idc] != 0 {
			return true
		}
	}
	return false
}

// ptlCore reads or writes everything in h265_ptl_core except
// level_idc, which the caller handles because its presence is gated
// by sub_layer_level_present_flag for sub-layers and is unconditional
// for the general layer.
func ptlCore(op Op, c *PTLCore) {
	op.BeginStruct("ptl_core")
	op.U(&c.ProfileSpace, 2, "profile_space")
	op.Flag(&c.TierFlag, "tier_flag")
	op.U(&c.ProfileIDC, 5, "profile_idc")
	op.BeginArray("profile_compatibility_flag", 32)
	for j := 0; j < 32; j++ {
		op.Flag(&c.ProfileCompatibilityFlag[j], "profile_compatibility_flag")
	}
	op.EndArray()
	op.Flag(&c.ProgressiveSourceFlag, "progressive_source_flag")
	op.Flag(&c.InterlacedSourceFlag, "interlaced_source_flag")
	op.Flag(&c.NonPackedConstraintFlag, "non_packed_constraint_flag")
	op.Flag(&c.FrameOnlyConstraintFlag, "frame_only_constraint_flag")

	switch {
	case c.hasExtendedConstraintSet():
		op.Flag(&c.Max12bitConstraintFlag, "max_12bit_constraint_flag")
		op.Flag(&c.Max10bitConstraintFlag, "max_10bit_constraint_flag")
		op.Flag(&c.Max8bitConstraintFlag, "max_8bit_constraint_flag")
		op.Flag(&c.Max422ChromaConstraintFlag, "max_422chroma_constraint_flag")
		op.Flag(&c.Max420ChromaConstraintFlag, "max_420chroma_constraint_flag")
		op.Flag(&c.MaxMonochromeConstraintFlag, "max_monochrome_constraint_flag")
		op.Flag(&c.IntraConstraintFlag, "intra_constraint_flag")
		op.Flag(&c.OnePictureOnlyConstraintFlag, "one_picture_only_constraint_flag")
		op.Flag(&c.LowerBitRateConstraintFlag, "lower_bit_rate_constraint_flag")
		if c.has14BitConstraintSet() {
			op.Flag(&c.Max14bitConstraintFlag, "max_14bit_constraint_flag")
			reservedBits(op, 33, "reserved_zero_33bits")
		} else {
			reservedBits(op, 34, "reserved_zero_34bits")
		}
	case c.hasScreenExtendedProfile():
		reservedBits(op, 7, "reserved_zero_7bits")
		op.Flag(&c.OnePictureOnlyConstraintFlag, "one_picture_only_constraint_flag")
		reservedBits(op, 35, "reserved_zero_35bits")
	default:
		reservedBits(op, 43, "reserved_zero_43bits")
	}

	if c.hasInbld() {
		op.Flag(&c.InbldFlag, "inbld_flag")
	} else {
		reservedBits(op, 1, "reserved_zero_bit")
	}
	op.EndStruct()
}

// reservedBits discards n reserved bits (n may exceed 32, per design
// note 1: read as two fields rather than overflowing a uint32).
func reservedBits(op Op, n int, name string) {
	var discard uint32
	for n > 32 {
		op.U(&discard, 32, name)
		n -= 32
	}
	op.U(&discard, n, name)
}

// ProfileTierLevel is the profile_tier_level() syntax of clause 7.3.3.
type ProfileTierLevel struct {
	General               PTLCore
	SubLayerProfilePresent [SubLayersMax]int
	SubLayerLevelPresent   [SubLayersMax]int
	SubLayers              [SubLayersMax]PTLCore
}

// SubLayersMax bounds vps_max_sub_layers_minus1/sps_max_sub_layers_minus1,
// both constrained to [0, 6] by 7.4.3.1/7.4.3.2.1.
const SubLayersMax = 7

// ReadWriteProfileTierLevel reads or writes profile_tier_level().
func ReadWriteProfileTierLevel(op Op, ptl *ProfileTierLevel, profilePresentFlag bool, maxNumSubLayersMinus1 int) {
	op.BeginStruct("profile_tier_level")
	if profilePresentFlag {
		ptlCore(op, &ptl.General)
	}
	op.U(&ptl.General.LevelIDC, 8, "general_level_idc")

	for i := 0; i < maxNumSubLayersMinus1; i++ {
		op.Flag(&ptl.SubLayerProfilePresent[i], "sub_layer_profile_present_flag")
		op.Flag(&ptl.SubLayerLevelPresent[i], "sub_layer_level_present_flag")
	}
	if maxNumSubLayersMinus1 > 0 {
		for i := maxNumSubLayersMinus1; i < 8; i++ {
			reservedBits(op, 2, "reserved_zero_2bits")
		}
	}
	for i := 0; i < maxNumSubLayersMinus1; i++ {
		if ptl.SubLayerProfilePresent[i] != 0 {
			ptlCore(op, &ptl.SubLayers[i])
		}
		if ptl.SubLayerLevelPresent[i] != 0 {
			op.U(&ptl.SubLayers[i].LevelIDC, 8, "sub_layer_level_idc")
		}
	}
	op.EndStruct()
}
