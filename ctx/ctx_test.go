package ctx

import (
	"testing"
	"time"

	"github.com/ausocean/h265meta/syntax"
)

func TestSetSPSOutOfRange(t *testing.T) {
	c := New()
	sps := &syntax.SPS{SPSSeqParameterSetID: SPSMax}
	if err := c.SetSPS(sps); err == nil {
		t.Error("expected error for out-of-range sps_seq_parameter_set_id")
	}
}

func TestSetGetVPSSPSPPS(t *testing.T) {
	c := New()
	vps := &syntax.VPS{VPSVideoParameterSetID: 2}
	sps := &syntax.SPS{SPSSeqParameterSetID: 3, SPSVideoParameterSetID: 2}
	pps := &syntax.PPS{PPSPicParameterSetID: 5, PPSSeqParameterSetID: 3}

	if err := c.SetVPS(vps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetSPS(sps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPPS(pps); err != nil {
		t.Fatal(err)
	}

	if got := c.VPS(2); got != vps {
		t.Errorf("VPS(2) = %v, want %v", got, vps)
	}
	if got := c.SPS(3); got != sps {
		t.Errorf("SPS(3) = %v, want %v", got, sps)
	}
	if got := c.PPS(5); got != pps {
		t.Errorf("PPS(5) = %v, want %v", got, pps)
	}
	if got := c.VPS(0); got != nil {
		t.Errorf("VPS(0) = %v, want nil", got)
	}
}

func TestSetActivePPSActivatesSPS(t *testing.T) {
	c := New()
	sps := &syntax.SPS{SPSSeqParameterSetID: 1}
	pps := &syntax.PPS{PPSPicParameterSetID: 0, PPSSeqParameterSetID: 1}
	if err := c.SetSPS(sps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetPPS(pps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetActivePPS(0); err != nil {
		t.Fatal(err)
	}
	if c.ActivePPS() != pps {
		t.Error("ActivePPS did not return the set PPS")
	}
	if c.ActiveSPS() != sps {
		t.Error("SetActivePPS did not activate the referenced SPS")
	}
}

func TestAUBoundaryDetection(t *testing.T) {
	c := New()

	// A VPS always starts an AU.
	if !c.SetNALUnitHeader(syntax.NALUnitHeader{NALUnitType: syntax.NALVPS}) {
		t.Error("VPS should start an access unit")
	}
	// The first VCL NAL unit of the AU starts it too.
	if !c.SetNALUnitHeader(syntax.NALUnitHeader{NALUnitType: syntax.NALTrailR}) {
		t.Error("first VCL NAL unit should start an access unit")
	}
	// A second VCL NAL unit in the same AU does not.
	if c.SetNALUnitHeader(syntax.NALUnitHeader{NALUnitType: syntax.NALTrailR}) {
		t.Error("second VCL NAL unit should not start a new access unit")
	}
	// An AUD resets tracking and starts a new AU.
	if !c.SetNALUnitHeader(syntax.NALUnitHeader{NALUnitType: syntax.NALAUD}) {
		t.Error("AUD should start an access unit")
	}
	if !c.SetNALUnitHeader(syntax.NALUnitHeader{NALUnitType: syntax.NALTrailR}) {
		t.Error("first VCL NAL unit after AUD should start an access unit")
	}
}

func TestClearNALUnitResetsSEIAndUnknown(t *testing.T) {
	c := New()
	if err := c.AddSEI(syntax.SEIMessage{PayloadType: syntax.SEIRecoveryPoint}); err != nil {
		t.Fatal(err)
	}
	c.SetNALUnitUnknown()
	if c.SEICount() != 1 || !c.IsNALUnitUnknown() {
		t.Fatal("setup failed")
	}
	c.ClearNALUnit()
	if c.SEICount() != 0 {
		t.Error("ClearNALUnit did not reset the SEI queue")
	}
	if c.IsNALUnitUnknown() {
		t.Error("ClearNALUnit did not reset the unknown NAL unit flag")
	}
}

// TestAddSEIBuildsCanonicalRawPayload confirms AddSEI runs the SEI
// writer once on add, populating RawPayload from the typed fields at
// that moment.
func TestAddSEIBuildsCanonicalRawPayload(t *testing.T) {
	c := New()
	m := syntax.SEIMessage{PayloadType: syntax.SEIContentLightLevel}
	m.ContentLightLevel = syntax.SEIContentLightLevelPayload{MaxContentLightLevel: 1000, MaxPicAverageLightLevel: 400}
	if err := c.AddSEI(m); err != nil {
		t.Fatal(err)
	}
	queued := c.SEIMessages()
	if len(queued) != 1 {
		t.Fatalf("SEIMessages() has %d entries, want 1", len(queued))
	}
	if len(queued[0].RawPayload) != 4 {
		t.Errorf("RawPayload length = %d, want 4", len(queued[0].RawPayload))
	}
	if queued[0].PayloadSize != 4 {
		t.Errorf("PayloadSize = %d, want 4", queued[0].PayloadSize)
	}
}

func TestSEITimeCodeToMicrosNoActiveSPS(t *testing.T) {
	c := New()
	p := &syntax.SEITimeCodePayload{}
	if _, err := c.SEITimeCodeToTS(p, 0); err == nil {
		t.Error("SEITimeCodeToTS: expected error with no active SPS")
	}
	if _, err := c.SEITimeCodeToMicros(p, 0); err == nil {
		t.Error("SEITimeCodeToMicros: expected error with no active SPS")
	}
}

func TestSEITimeCodeToMicrosNoVUITiming(t *testing.T) {
	c := New()
	sps := &syntax.SPS{SPSSeqParameterSetID: 0}
	if err := c.SetSPS(sps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetActiveSPS(0); err != nil {
		t.Fatal(err)
	}
	p := &syntax.SEITimeCodePayload{}
	if _, err := c.SEITimeCodeToMicros(p, 0); err == nil {
		t.Error("expected error when active SPS has no VUI timing info")
	}
}

func TestSEITimeCodeToTSUsesActiveSPSTiming(t *testing.T) {
	c := New()
	sps := &syntax.SPS{SPSSeqParameterSetID: 0, VUIParametersPresentFlag: 1}
	sps.VUI.VUITimingInfoPresentFlag = 1
	sps.VUI.VUINumUnitsInTick = 1
	sps.VUI.VUITimeScale = 50
	if err := c.SetSPS(sps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetActiveSPS(0); err != nil {
		t.Fatal(err)
	}
	p := &syntax.SEITimeCodePayload{}
	p.HoursValue[0] = 1
	p.MinutesValue[0] = 2
	p.SecondsValue[0] = 3
	p.NFrames[0] = 5
	ts, err := c.SEITimeCodeToTS(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	totalSeconds := uint64((1*60+2)*60 + 3)
	want := totalSeconds*50 + 5*1
	if ts != want {
		t.Errorf("ts = %d, want %d", ts, want)
	}

	d, err := c.SEITimeCodeToMicros(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	wantMicros := (want*1000000 + 25) / 50
	if d != time.Duration(wantMicros)*time.Microsecond {
		t.Errorf("micros = %v, want %v", d, time.Duration(wantMicros)*time.Microsecond)
	}
}

// TestSEITimeCodeToTSNegativeOffsetClampsToZero exercises the
// clamp-to-zero rule: a time_offset_value whose magnitude exceeds the
// running tick total must not drive the result negative.
func TestSEITimeCodeToTSNegativeOffsetClampsToZero(t *testing.T) {
	c := New()
	sps := &syntax.SPS{SPSSeqParameterSetID: 0, VUIParametersPresentFlag: 1}
	sps.VUI.VUITimingInfoPresentFlag = 1
	sps.VUI.VUINumUnitsInTick = 1
	sps.VUI.VUITimeScale = 50
	if err := c.SetSPS(sps); err != nil {
		t.Fatal(err)
	}
	if err := c.SetActiveSPS(0); err != nil {
		t.Fatal(err)
	}
	p := &syntax.SEITimeCodePayload{}
	p.SecondsValue[0] = 1      // clock_timestamp = 50
	p.TimeOffsetValue[0] = -60 // magnitude exceeds 50

	ts, err := c.SEITimeCodeToTS(p, 0)
	if err != nil {
		t.Fatal(err)
	}
	if ts != 0 {
		t.Errorf("ts = %d, want 0 (clamped)", ts)
	}
}
