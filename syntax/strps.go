package syntax

// STRPSMax bounds num_short_term_ref_pic_sets (7.3.2.2, range 0-64)
// and the per-set negative/positive pic counts (16, from the
// NumDeltaPocs/MaxDpbSize derivation documented on h265_st_ref_pic_set).
const STRPSMax = 64
const STRPSPicsMax = 16

// ShortTermRefPicSet is st_ref_pic_set() of clause 7.3.7, plus the
// values numbered negative/positive pic derivation adds per 7.4.8.
type ShortTermRefPicSet struct {
	InterRefPicSetPredictionFlag int
	DeltaIdxMinus1               uint32
	DeltaRPSSign                 int
	AbsDeltaRPSMinus1            uint32

	UsedByCurrPicFlag [STRPSPicsMax]int
	UseDeltaFlag      [STRPSPicsMax]int

	NumNegativePics uint32
	NumPositivePics uint32

	DeltaPocS0Minus1    [STRPSPicsMax]uint32
	UsedByCurrPicS0Flag [STRPSPicsMax]int
	DeltaPocS1Minus1    [STRPSPicsMax]uint32
	UsedByCurrPicS1Flag [STRPSPicsMax]int

	// DerivedDeltaPocS0/S1 are not syntax elements; see 7.4.8. They are
	// computed by deriveSTRPS, not read or written directly.
	DerivedDeltaPocS0 [STRPSPicsMax]int32
	DerivedDeltaPocS1 [STRPSPicsMax]int32
}

func (s *ShortTermRefPicSet) numDeltaPocs() int {
	return int(s.NumNegativePics) + int(s.NumPositivePics)
}

// ReadWriteShortTermRefPicSet reads or writes st_ref_pic_set(stRpsIdx),
// given every set parsed so far (sets[:stRpsIdx] must already be
// populated; sets[stRpsIdx] is the set being processed).
// numShortTermRefPicSets is num_short_term_ref_pic_sets from the
// enclosing SPS: delta_idx_minus1 is only present when stRpsIdx equals
// it, the special case of the set embedded in a slice header (7.3.7).
// Every SPS-resident set has stRpsIdx in [0, numShortTermRefPicSets),
// so delta_idx_minus1 is never read or written there and
// DeltaIdxMinus1 stays implicitly 0, per the note following
// delta_idx_minus1 in 7.4.8.
func ReadWriteShortTermRefPicSet(op Op, sets []ShortTermRefPicSet, stRpsIdx, numShortTermRefPicSets int) {
	s := &sets[stRpsIdx]
	op.BeginStruct("st_ref_pic_set")
	if stRpsIdx != 0 {
		op.Flag(&s.InterRefPicSetPredictionFlag, "inter_ref_pic_set_prediction_flag")
	}
	if s.InterRefPicSetPredictionFlag != 0 {
		if stRpsIdx == numShortTermRefPicSets {
			op.UE(&s.DeltaIdxMinus1, "delta_idx_minus1")
		}
		op.Flag(&s.DeltaRPSSign, "delta_rps_sign")
		op.UE(&s.AbsDeltaRPSMinus1, "abs_delta_rps_minus1")

		refIdx := stRpsIdx - (int(s.DeltaIdxMinus1) + 1)
		numDelta := 0
		if refIdx >= 0 && refIdx < len(sets) {
			numDelta = sets[refIdx].numDeltaPocs()
		}
		op.BeginArray("used_by_curr_pic_flag", numDelta+1)
		for j := 0; j <= numDelta; j++ {
			op.Flag(&s.UsedByCurrPicFlag[j], "used_by_curr_pic_flag")
			if s.UsedByCurrPicFlag[j] == 0 {
				op.Flag(&s.UseDeltaFlag[j], "use_delta_flag")
			} else {
				s.UseDeltaFlag[j] = 1
			}
		}
		op.EndArray()
		if refIdx >= 0 && refIdx < len(sets) {
			deriveSTRPS(s, &sets[refIdx])
		}
	} else {
		op.UE(&s.NumNegativePics, "num_negative_pics")
		op.UE(&s.NumPositivePics, "num_positive_pics")
		op.BeginArray("delta_poc_s0", int(s.NumNegativePics))
		for i := 0; i < int(s.NumNegativePics); i++ {
			op.UE(&s.DeltaPocS0Minus1[i], "delta_poc_s0_minus1")
			op.Flag(&s.UsedByCurrPicS0Flag[i], "used_by_curr_pic_s0_flag")
		}
		op.EndArray()
		op.BeginArray("delta_poc_s1", int(s.NumPositivePics))
		for i := 0; i < int(s.NumPositivePics); i++ {
			op.UE(&s.DeltaPocS1Minus1[i], "delta_poc_s1_minus1")
			op.Flag(&s.UsedByCurrPicS1Flag[i], "used_by_curr_pic_s1_flag")
		}
		op.EndArray()
		var poc int32
		for i := 0; i < int(s.NumNegativePics); i++ {
			poc -= int32(s.DeltaPocS0Minus1[i]) + 1
			s.DerivedDeltaPocS0[i] = poc
		}
		poc = 0
		for i := 0; i < int(s.NumPositivePics); i++ {
			poc += int32(s.DeltaPocS1Minus1[i]) + 1
			s.DerivedDeltaPocS1[i] = poc
		}
	}
	op.EndStruct()
}

// deriveSTRPS implements the inter-RPS prediction derivation of clause
// 7.4.8: negative deltas are derived by walking ref's
// positive-then-current-delta-then-negative entries in reverse, then
// positive deltas by walking ref's negative-then-current-delta-then-
// positive entries in reverse. The derived arrays are not
// delta_poc_sX_minus1 + 1; they come from this walk.
func deriveSTRPS(s, ref *ShortTermRefPicSet) {
	deltaRPS := int32(1-2*s.DeltaRPSSign) * (int32(s.AbsDeltaRPSMinus1) + 1)
	numDelta := ref.numDeltaPocs()

	i := 0
	for j := int(ref.NumPositivePics) - 1; j >= 0; j-- {
		dPoc := ref.DerivedDeltaPocS1[j] + deltaRPS
		if dPoc < 0 && s.UseDeltaFlag[int(ref.NumNegativePics)+j] != 0 {
			s.DerivedDeltaPocS0[i] = dPoc
			s.UsedByCurrPicS0Flag[i] = s.UsedByCurrPicFlag[int(ref.NumNegativePics)+j]
			i++
		}
	}
	if deltaRPS < 0 && s.UseDeltaFlag[numDelta] != 0 {
		s.DerivedDeltaPocS0[i] = deltaRPS
		s.UsedByCurrPicS0Flag[i] = s.UsedByCurrPicFlag[numDelta]
		i++
	}
	for j := 0; j < int(ref.NumNegativePics); j++ {
		dPoc := ref.DerivedDeltaPocS0[j] + deltaRPS
		if dPoc < 0 && s.UseDeltaFlag[j] != 0 {
			s.DerivedDeltaPocS0[i] = dPoc
			s.UsedByCurrPicS0Flag[i] = s.UsedByCurrPicFlag[j]
			i++
		}
	}
	s.NumNegativePics = uint32(i)

	i = 0
	for j := int(ref.NumNegativePics) - 1; j >= 0; j-- {
		dPoc := ref.DerivedDeltaPocS0[j] + deltaRPS
		if dPoc > 0 && s.UseDeltaFlag[j] != 0 {
			s.DerivedDeltaPocS1[i] = dPoc
			s.UsedByCurrPicS1Flag[i] = s.UsedByCurrPicFlag[j]
			i++
		}
	}
	if deltaRPS > 0 && s.UseDeltaFlag[numDelta] != 0 {
		s.DerivedDeltaPocS1[i] = deltaRPS
		s.UsedByCurrPicS1Flag[i] = s.UsedByCurrPicFlag[numDelta]
		i++
	}
	for j := 0; j < int(ref.NumPositivePics); j++ {
		dPoc := ref.DerivedDeltaPocS1[j] + deltaRPS
		if dPoc > 0 && s.UseDeltaFlag[int(ref.NumNegativePics)+j] != 0 {
			s.DerivedDeltaPocS1[i] = dPoc
			s.UsedByCurrPicS1Flag[i] = s.UsedByCurrPicFlag[int(ref.NumNegativePics)+j]
			i++
		}
	}
	s.NumPositivePics = uint32(i)
}
