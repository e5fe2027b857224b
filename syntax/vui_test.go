package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func roundTripVUI(t *testing.T, in *VUI, maxSubLayersMinus1 int) *VUI {
	t.Helper()
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteVUI(wop, in, maxSubLayersMinus1)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &VUI{}
	ReadWriteVUI(rop, out, maxSubLayersMinus1)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestVUIRoundTripMinimal(t *testing.T) {
	in := &VUI{}
	out := roundTripVUI(t, in, 0)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVUIRoundTripAspectRatioExtendedSAR(t *testing.T) {
	in := &VUI{
		AspectRatioInfoPresentFlag: 1,
		AspectRatioIDC:             AspectRatioExtendedSAR,
		SARWidth:                   4,
		SARHeight:                  3,
	}
	out := roundTripVUI(t, in, 0)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVUIRoundTripColourAndTiming(t *testing.T) {
	in := &VUI{
		VideoSignalTypePresentFlag:   1,
		VideoFormat:                  5,
		ColourDescriptionPresentFlag: 1,
		ColourPrimaries:              1,
		TransferCharacteristics:      1,
		MatrixCoeffs:                 1,
		VUITimingInfoPresentFlag:     1,
		VUINumUnitsInTick:            1,
		VUITimeScale:                 60,
	}
	out := roundTripVUI(t, in, 0)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVUIRoundTripHRDPresent(t *testing.T) {
	in := &VUI{
		VUITimingInfoPresentFlag:    1,
		VUINumUnitsInTick:           1,
		VUITimeScale:                25,
		VUIHRDParametersPresentFlag: 1,
	}
	in.HRD.NALHRDParametersPresentFlag = 1
	in.HRD.SubLayers[0].CPBCntMinus1 = 0
	in.HRD.SubLayers[0].FixedPicRateGeneralFlag = 1
	in.HRD.SubLayers[0].ElementalDurationInTCMinus1 = 0
	in.HRD.SubLayers[0].NALHRD.CPBs[0].BitRateValueMinus1 = 10
	in.HRD.SubLayers[0].NALHRD.CPBs[0].CPBSizeValueMinus1 = 20

	out := roundTripVUI(t, in, 0)
	if out.HRD.SubLayers[0].NALHRD.CPBs[0].BitRateValueMinus1 != 10 {
		t.Errorf("BitRateValueMinus1 = %d, want 10", out.HRD.SubLayers[0].NALHRD.CPBs[0].BitRateValueMinus1)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVUIRoundTripBitstreamRestriction(t *testing.T) {
	in := &VUI{
		BitstreamRestrictionFlag:   1,
		MinSpatialSegmentationIDC:  3,
		MaxBytesPerPicDenom:        2,
		MaxBitsPerMinCUDenom:       1,
		Log2MaxMVLengthHorizontal:  15,
		Log2MaxMVLengthVertical:    15,
	}
	out := roundTripVUI(t, in, 0)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
