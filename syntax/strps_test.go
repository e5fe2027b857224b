package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func TestShortTermRefPicSetExplicitRoundTrip(t *testing.T) {
	var in [STRPSMax]ShortTermRefPicSet
	in[0].NumNegativePics = 2
	in[0].DeltaPocS0Minus1[0] = 0 // delta_poc = -1
	in[0].DeltaPocS0Minus1[1] = 1 // delta_poc = -3 (cumulative)
	in[0].UsedByCurrPicS0Flag[0] = 1
	in[0].NumPositivePics = 1
	in[0].DeltaPocS1Minus1[0] = 2 // delta_poc = 3
	in[0].UsedByCurrPicS1Flag[0] = 1

	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteShortTermRefPicSet(wop, in[:], 0, 1)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	var out [STRPSMax]ShortTermRefPicSet
	ReadWriteShortTermRefPicSet(rop, out[:], 0, 1)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	if out[0].DerivedDeltaPocS0[0] != -1 || out[0].DerivedDeltaPocS0[1] != -3 {
		t.Errorf("derived negative deltas = %v, want [-1 -3]", out[0].DerivedDeltaPocS0[:2])
	}
	if out[0].DerivedDeltaPocS1[0] != 3 {
		t.Errorf("derived positive delta = %d, want 3", out[0].DerivedDeltaPocS1[0])
	}
	if diff := cmp.Diff(in[0], out[0]); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestShortTermRefPicSetInterPrediction(t *testing.T) {
	var sets [STRPSMax]ShortTermRefPicSet
	sets[0].NumNegativePics = 1
	sets[0].DeltaPocS0Minus1[0] = 0 // delta_poc = -1
	sets[0].UsedByCurrPicS0Flag[0] = 1

	sets[1].InterRefPicSetPredictionFlag = 1
	// DeltaIdxMinus1 stays 0 (implied): both sets here are SPS-resident
	// (stRpsIdx < numShortTermRefPicSets), so delta_idx_minus1 is never
	// coded and always predicts from the immediately preceding set.
	sets[1].DeltaRPSSign = 1 // delta_rps = -(abs_delta_rps_minus1+1)
	sets[1].AbsDeltaRPSMinus1 = 1
	sets[1].UsedByCurrPicFlag[0] = 1 // implies use_delta_flag[0] = 1
	sets[1].UsedByCurrPicFlag[1] = 0
	sets[1].UseDeltaFlag[1] = 1

	const numShortTermRefPicSets = 2 // both sets are SPS-resident
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteShortTermRefPicSet(wop, sets[:], 0, numShortTermRefPicSets)
	ReadWriteShortTermRefPicSet(wop, sets[:], 1, numShortTermRefPicSets)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	var out [STRPSMax]ShortTermRefPicSet
	ReadWriteShortTermRefPicSet(rop, out[:], 0, numShortTermRefPicSets)
	ReadWriteShortTermRefPicSet(rop, out[:], 1, numShortTermRefPicSets)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	if out[1].NumNegativePics != 2 {
		t.Errorf("derived NumNegativePics = %d, want 2", out[1].NumNegativePics)
	}
	if out[1].NumPositivePics != 0 {
		t.Errorf("derived NumPositivePics = %d, want 0", out[1].NumPositivePics)
	}
	if out[1].DerivedDeltaPocS0[0] != -2 || out[1].DerivedDeltaPocS0[1] != -3 {
		t.Errorf("derived negative deltas = %v, want [-2 -3]", out[1].DerivedDeltaPocS0[:2])
	}
}

// TestShortTermRefPicSetSPSResidentOmitsDeltaIdx decodes a hand-built
// bitstream rather than one produced by this package's own writer, so
// it catches a wrong bit layout that a self-symmetric round trip
// cannot: delta_idx_minus1 must be absent for every SPS-resident set
// (stRpsIdx != numShortTermRefPicSets), per 7.3.7.
//
// Bit layout (numShortTermRefPicSets = 2):
//
//	set[0] (stRpsIdx 0, not inter-predicted, implicit flag 0):
//	  num_negative_pics = ue(0) = "1"
//	  num_positive_pics = ue(0) = "1"
//	set[1] (stRpsIdx 1):
//	  inter_ref_pic_set_prediction_flag = "1"
//	  (delta_idx_minus1 absent: stRpsIdx 1 != numShortTermRefPicSets 2)
//	  delta_rps_sign = "1"
//	  abs_delta_rps_minus1 = ue(0) = "1"
//	  used_by_curr_pic_flag[0] = "1" (use_delta_flag[0] implied 1)
//
// = "111111", zero-padded to the byte 0xFC.
func TestShortTermRefPicSetSPSResidentOmitsDeltaIdx(t *testing.T) {
	buf := []byte{0xFC}
	r := bitstream.NewReader(buf, true)
	rop := NewReadOp(r)
	var out [STRPSMax]ShortTermRefPicSet
	const numShortTermRefPicSets = 2
	ReadWriteShortTermRefPicSet(rop, out[:], 0, numShortTermRefPicSets)
	ReadWriteShortTermRefPicSet(rop, out[:], 1, numShortTermRefPicSets)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	if out[0].NumNegativePics != 0 || out[0].NumPositivePics != 0 {
		t.Fatalf("set[0] = %+v, want zero negative/positive pics", out[0])
	}
	if out[1].DeltaIdxMinus1 != 0 {
		t.Errorf("DeltaIdxMinus1 = %d, want 0 (must not be read for an SPS-resident set)", out[1].DeltaIdxMinus1)
	}
	if out[1].DeltaRPSSign != 1 {
		t.Errorf("DeltaRPSSign = %d, want 1", out[1].DeltaRPSSign)
	}
	if out[1].AbsDeltaRPSMinus1 != 0 {
		t.Errorf("AbsDeltaRPSMinus1 = %d, want 0", out[1].AbsDeltaRPSMinus1)
	}
	if out[1].UsedByCurrPicFlag[0] != 1 || out[1].UseDeltaFlag[0] != 1 {
		t.Errorf("used_by_curr_pic_flag[0]/use_delta_flag[0] = %d/%d, want 1/1", out[1].UsedByCurrPicFlag[0], out[1].UseDeltaFlag[0])
	}
	if out[1].NumNegativePics != 1 || out[1].DerivedDeltaPocS0[0] != -1 {
		t.Errorf("derived set[1] = NumNegativePics %d DerivedDeltaPocS0[0] %d, want 1 -1", out[1].NumNegativePics, out[1].DerivedDeltaPocS0[0])
	}
	if out[1].NumPositivePics != 0 {
		t.Errorf("NumPositivePics = %d, want 0", out[1].NumPositivePics)
	}
}
