package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func baseSPS() *SPS {
	s := &SPS{
		SPSMaxSubLayersMinus1: 0,
		ProfileTierLevel: ProfileTierLevel{
			General: PTLCore{ProfileIDC: 1, LevelIDC: 120},
		},
		ChromaFormatIDC:        1,
		PicWidthInLumaSamples:  1920,
		PicHeightInLumaSamples: 1080,
		BitDepthLumaMinus8:     0,
		BitDepthChromaMinus8:   0,
	}
	s.SPSMaxDecPicBufferingMinus1[0] = 4
	s.SPSMaxNumReorderPics[0] = 2
	return s
}

func roundTripSPS(t *testing.T, in *SPS) *SPS {
	t.Helper()
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteSPS(wop, in)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &SPS{}
	ReadWriteSPS(rop, out)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestSPSRoundTripMinimal(t *testing.T) {
	in := baseSPS()
	out := roundTripSPS(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSPSRoundTripConformanceWindow(t *testing.T) {
	in := baseSPS()
	in.ConformanceWindowFlag = 1
	in.ConfWinLeftOffset = 1
	in.ConfWinRightOffset = 2
	in.ConfWinTopOffset = 0
	in.ConfWinBottomOffset = 3
	out := roundTripSPS(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSPSRoundTripLongTermRefPics(t *testing.T) {
	in := baseSPS()
	in.Log2MaxPicOrderCntLsbMinus4 = 4
	in.LongTermRefPicsPresentFlag = 1
	in.NumLongTermRefPicsSPS = 2
	in.LtRefPicPocLsbSPS[0] = 5
	in.LtRefPicPocLsbSPS[1] = 9
	in.UsedByCurrPicLtSPSFlag[1] = 1
	out := roundTripSPS(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSPSRoundTripExtensions(t *testing.T) {
	in := baseSPS()
	in.SPSExtensionPresentFlag = 1
	in.SPSRangeExtensionFlag = 1
	in.RangeExt.TransformSkipRotationEnabledFlag = 1
	in.RangeExt.HighPrecisionOffsetsEnabledFlag = 1
	out := roundTripSPS(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
