package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ausocean/h265meta/bitstream"
)

func roundTripSEIMessage(t *testing.T, in *SEIMessage) *SEIMessage {
	t.Helper()
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteSEIMessage(wop, in, true)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &SEIMessage{}
	ReadWriteSEIMessage(rop, out, false)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	return out
}

func TestSEIUserDataUnregisteredRoundTrip(t *testing.T) {
	in := &SEIMessage{PayloadType: SEIUserDataUnregistered, PayloadSize: 18}
	for i := range in.UserDataUnregistered.UUIDIsoIec11578 {
		in.UserDataUnregistered.UUIDIsoIec11578[i] = uint32(i)
	}
	in.UserDataUnregistered.UserDataPayloadByte = []uint32{0xaa, 0xbb}
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEIRecoveryPointRoundTrip(t *testing.T) {
	in := &SEIMessage{PayloadType: SEIRecoveryPoint}
	in.RecoveryPoint = SEIRecoveryPointPayload{
		RecoveryPOCCnt: -3,
		ExactMatchFlag: 1,
		BrokenLinkFlag: 0,
	}
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.RecoveryPoint, out.RecoveryPoint); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEITimeCodeRoundTripFullTimestamp(t *testing.T) {
	in := &SEIMessage{PayloadType: SEITimeCode}
	in.TimeCode.NumClockTS = 1
	in.TimeCode.ClockTimestampFlag[0] = 1
	in.TimeCode.UnitsFieldBasedFlag[0] = 1
	in.TimeCode.CountingType[0] = 4
	in.TimeCode.FullTimestampFlag[0] = 1
	in.TimeCode.NFrames[0] = 24
	in.TimeCode.SecondsValue[0] = 30
	in.TimeCode.MinutesValue[0] = 15
	in.TimeCode.HoursValue[0] = 10
	in.TimeCode.TimeOffsetLength[0] = 5
	in.TimeCode.TimeOffsetValue[0] = -7
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.TimeCode, out.TimeCode); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEITimeCodeRoundTripPartialTimestamp(t *testing.T) {
	in := &SEIMessage{PayloadType: SEITimeCode}
	in.TimeCode.NumClockTS = 1
	in.TimeCode.ClockTimestampFlag[0] = 1
	in.TimeCode.CountingType[0] = 0
	in.TimeCode.NFrames[0] = 5
	in.TimeCode.SecondsFlag[0] = 1
	in.TimeCode.SecondsValue[0] = 12
	in.TimeCode.MinutesFlag[0] = 1
	in.TimeCode.MinutesValue[0] = 34
	in.TimeCode.HoursFlag[0] = 0
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.TimeCode, out.TimeCode); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEIMasteringDisplayColourVolumeRoundTrip(t *testing.T) {
	in := &SEIMessage{PayloadType: SEIMasteringDisplayColourVolume}
	in.MasteringDisplayColourVolume = SEIMasteringDisplayColourVolumePayload{
		DisplayPrimariesX:            [3]uint32{34000, 13250, 7500},
		DisplayPrimariesY:            [3]uint32{16000, 34500, 3000},
		WhitePointX:                  15635,
		WhitePointY:                  16450,
		MaxDisplayMasteringLuminance: 10000000,
		MinDisplayMasteringLuminance: 50,
	}
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.MasteringDisplayColourVolume, out.MasteringDisplayColourVolume); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEIContentLightLevelRoundTrip(t *testing.T) {
	in := &SEIMessage{PayloadType: SEIContentLightLevel}
	in.ContentLightLevel = SEIContentLightLevelPayload{
		MaxContentLightLevel:    1000,
		MaxPicAverageLightLevel: 400,
	}
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.ContentLightLevel, out.ContentLightLevel); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSEIUnknownPayloadRoundTrip(t *testing.T) {
	in := &SEIMessage{PayloadType: 99, PayloadSize: 3, Raw: []uint32{1, 2, 3}}
	out := roundTripSEIMessage(t, in)
	if diff := cmp.Diff(in.Raw, out.Raw); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteSEIPayloadSetsPayloadSize(t *testing.T) {
	m := &SEIMessage{PayloadType: SEIContentLightLevel}
	m.ContentLightLevel = SEIContentLightLevelPayload{MaxContentLightLevel: 1000, MaxPicAverageLightLevel: 400}
	raw, err := WriteSEIPayload(m)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 4 { // two u(16) fields
		t.Errorf("len(raw) = %d, want 4", len(raw))
	}
	if m.PayloadSize != uint32(len(raw)) {
		t.Errorf("PayloadSize = %d, want %d", m.PayloadSize, len(raw))
	}
}

func TestWriteSEIPayloadUserDataSizesFromByteSlice(t *testing.T) {
	m := &SEIMessage{PayloadType: SEIUserDataUnregistered}
	m.UserDataUnregistered.UserDataPayloadByte = []uint32{1, 2, 3}
	raw, err := WriteSEIPayload(m)
	if err != nil {
		t.Fatal(err)
	}
	if m.PayloadSize != 19 { // 16-byte UUID + 3 payload bytes
		t.Errorf("PayloadSize = %d, want 19", m.PayloadSize)
	}
	if len(raw) != 19 {
		t.Errorf("len(raw) = %d, want 19", len(raw))
	}
}

// TestReadWriteSEIMessageReplaysRawPayload confirms that once a
// message carries a RawPayload, writing it emits those bytes verbatim
// rather than re-deriving them from the (possibly now-stale) typed
// fields.
func TestReadWriteSEIMessageReplaysRawPayload(t *testing.T) {
	m := &SEIMessage{PayloadType: SEIContentLightLevel}
	m.ContentLightLevel = SEIContentLightLevelPayload{MaxContentLightLevel: 1000, MaxPicAverageLightLevel: 400}
	raw, err := WriteSEIPayload(m)
	if err != nil {
		t.Fatal(err)
	}
	m.RawPayload = raw
	// Mutate the typed field after canonicalizing: a correct replay
	// must ignore this and still emit the original raw bytes.
	m.ContentLightLevel.MaxContentLightLevel = 1

	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteSEIMessage(wop, m, true)
	if err := wop.Err(); err != nil {
		t.Fatal(err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &SEIMessage{}
	ReadWriteSEIMessage(rop, out, false)
	if err := rop.Err(); err != nil {
		t.Fatal(err)
	}
	if out.ContentLightLevel.MaxContentLightLevel != 1000 {
		t.Errorf("MaxContentLightLevel = %d, want 1000 (from replayed raw payload, not the mutated field)", out.ContentLightLevel.MaxContentLightLevel)
	}
}

func TestReadWriteSEIMultipleMessages(t *testing.T) {
	in := &SEI{Messages: []SEIMessage{
		{PayloadType: SEIContentLightLevel, ContentLightLevel: SEIContentLightLevelPayload{MaxContentLightLevel: 500}},
		{PayloadType: SEIRecoveryPoint, RecoveryPoint: SEIRecoveryPointPayload{RecoveryPOCCnt: 1, ExactMatchFlag: 1}},
	}}
	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteSEI(wop, in, true)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &SEI{}
	ReadWriteSEI(rop, out, false)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if diff := cmp.Diff(in.Messages, out.Messages); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
