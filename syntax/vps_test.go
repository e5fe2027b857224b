package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func TestVPSRoundTrip(t *testing.T) {
	in := &VPS{
		VPSVideoParameterSetID:   1,
		VPSMaxLayersMinus1:       0,
		VPSMaxSubLayersMinus1:    0,
		VPSTemporalIDNestingFlag: 1,
		ProfileTierLevel: ProfileTierLevel{
			General: PTLCore{ProfileIDC: 1, LevelIDC: 120},
		},
		VPSMaxLayerID:         0,
		VPSNumLayerSetsMinus1: 0,
	}
	in.VPSMaxDecPicBufferingMinus1[0] = 3
	in.VPSMaxNumReorderPics[0] = 1
	in.VPSMaxLatencyIncreasePlus1[0] = 0

	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteVPS(wop, in)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	var out VPS
	ReadWriteVPS(rop, &out)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	if diff := cmp.Diff(in, &out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestVPSLayerSets(t *testing.T) {
	in := &VPS{
		VPSMaxLayerID:         2,
		VPSNumLayerSetsMinus1: 2,
	}
	in.LayerIDIncludedFlag = [][]int{
		{1, 0, 1},
		{1, 1, 0},
	}

	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteVPS(wop, in)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	var out VPS
	ReadWriteVPS(rop, &out)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}

	if diff := cmp.Diff(in.LayerIDIncludedFlag, out.LayerIDIncludedFlag); diff != "" {
		t.Errorf("layer_id_included_flag mismatch (-want +got):\n%s", diff)
	}
}
