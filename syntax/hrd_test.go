package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func roundTripHRD(t *testing.T, in *HRD, commonInfPresentFlag bool, maxNumSubLayersMinus1 int) *HRD {
	t.Helper()
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteHRD(wop, in, commonInfPresentFlag, maxNumSubLayersMinus1)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &HRD{}
	ReadWriteHRD(rop, out, commonInfPresentFlag, maxNumSubLayersMinus1)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestHRDDefaultLengthFields(t *testing.T) {
	in := &HRD{}
	in.SubLayers[0].FixedPicRateGeneralFlag = 1
	in.SubLayers[0].ElementalDurationInTCMinus1 = 3

	out := roundTripHRD(t, in, false, 0)
	if out.InitialCPBRemovalDelayLengthMinus1 != 23 {
		t.Errorf("InitialCPBRemovalDelayLengthMinus1 = %d, want 23", out.InitialCPBRemovalDelayLengthMinus1)
	}
	if out.AUCPBRemovalDelayLengthMinus1 != 23 {
		t.Errorf("AUCPBRemovalDelayLengthMinus1 = %d, want 23", out.AUCPBRemovalDelayLengthMinus1)
	}
	if out.DPBOutputDelayLengthMinus1 != 23 {
		t.Errorf("DPBOutputDelayLengthMinus1 = %d, want 23", out.DPBOutputDelayLengthMinus1)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHRDRoundTripSubPicCPBParams(t *testing.T) {
	in := &HRD{
		NALHRDParametersPresentFlag: 1,
		SubPicHRDParamsPresentFlag:  1,
		TickDivisorMinus2:           8,
		DPBOutputDelayDULengthMinus1: 5,
		BitRateScale:                2,
		CPBSizeScale:                3,
		CPBSizeDUScale:              1,
	}
	in.SubLayers[0].FixedPicRateGeneralFlag = 1
	in.SubLayers[0].ElementalDurationInTCMinus1 = 1
	in.SubLayers[0].NALHRD.CPBs[0].BitRateValueMinus1 = 7
	in.SubLayers[0].NALHRD.CPBs[0].CPBSizeValueMinus1 = 9
	in.SubLayers[0].NALHRD.CPBs[0].CPBSizeDUValueMinus1 = 2
	in.SubLayers[0].NALHRD.CPBs[0].BitRateDUValueMinus1 = 3
	in.SubLayers[0].NALHRD.CPBs[0].CBRFlag = 1

	out := roundTripHRD(t, in, true, 0)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestHRDRoundTripMultipleSubLayersAndCPBs(t *testing.T) {
	in := &HRD{
		NALHRDParametersPresentFlag: 1,
		VCLHRDParametersPresentFlag: 1,
	}
	in.SubLayers[0].FixedPicRateGeneralFlag = 0
	in.SubLayers[0].FixedPicRateWithinCVSFlag = 0
	in.SubLayers[0].LowDelayHRDFlag = 0
	in.SubLayers[0].CPBCntMinus1 = 1
	in.SubLayers[0].NALHRD.CPBs[0].BitRateValueMinus1 = 1
	in.SubLayers[0].NALHRD.CPBs[1].BitRateValueMinus1 = 2
	in.SubLayers[0].VCLHRD.CPBs[0].BitRateValueMinus1 = 3
	in.SubLayers[0].VCLHRD.CPBs[1].BitRateValueMinus1 = 4

	in.SubLayers[1].FixedPicRateGeneralFlag = 1
	in.SubLayers[1].ElementalDurationInTCMinus1 = 2
	in.SubLayers[1].NALHRD.CPBs[0].BitRateValueMinus1 = 5
	in.SubLayers[1].VCLHRD.CPBs[0].BitRateValueMinus1 = 6

	out := roundTripHRD(t, in, true, 1)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
