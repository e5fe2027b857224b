/*
NAME
  ctx.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package ctx holds the parsed-parameter-set state a bitstream parse
// accumulates across NAL units: the VPS/SPS/PPS tables, the active
// SPS/PPS, the pending SEI queue and access-unit boundary tracking.
package ctx

import (
	"time"

	"github.com/pkg/errors"

	"github.com/ausocean/h265meta/syntax"
)

// Table capacities, matching the id field widths of the enclosing
// parameter sets: vps_video_parameter_set_id and
// sps_seq_parameter_set_id are both u(4) (16 values),
// pps_pic_parameter_set_id is ue(v) but conventionally bounded to
// u(6) range (64 values) by every known encoder and by the original's
// own table sizing.
const (
	VPSMax = 16
	SPSMax = 16
	PPSMax = 64
)

// Context accumulates parameter set and SEI state across a sequence
// of NAL units, mirroring h265_ctx in the original.
type Context struct {
	vps [VPSMax]*syntax.VPS
	sps [SPSMax]*syntax.SPS
	pps [PPSMax]*syntax.PPS

	activeSPS *syntax.SPS
	activePPS *syntax.PPS

	sei []syntax.SEIMessage

	firstVCLFound bool
	unknownNALUnit bool
}

// New returns an empty Context.
func New() *Context { return &Context{} }

// SetVPS installs vps at its own vps_video_parameter_set_id slot.
func (c *Context) SetVPS(vps *syntax.VPS) error {
	if vps.VPSVideoParameterSetID >= VPSMax {
		return errors.Errorf("ctx: vps_video_parameter_set_id %d out of range", vps.VPSVideoParameterSetID)
	}
	c.vps[vps.VPSVideoParameterSetID] = vps
	return nil
}

// VPS returns the VPS installed at id, or nil if none has been set.
func (c *Context) VPS(id uint32) *syntax.VPS {
	if id >= VPSMax {
		return nil
	}
	return c.vps[id]
}

// SetSPS installs sps at its own sps_seq_parameter_set_id slot.
func (c *Context) SetSPS(sps *syntax.SPS) error {
	if sps.SPSSeqParameterSetID >= SPSMax {
		return errors.Errorf("ctx: sps_seq_parameter_set_id %d out of range", sps.SPSSeqParameterSetID)
	}
	c.sps[sps.SPSSeqParameterSetID] = sps
	return nil
}

// SPS returns the SPS installed at id, or nil if none has been set.
func (c *Context) SPS(id uint32) *syntax.SPS {
	if id >= SPSMax {
		return nil
	}
	return c.sps[id]
}

// SetPPS installs pps at its own pps_pic_parameter_set_id slot.
func (c *Context) SetPPS(pps *syntax.PPS) error {
	if pps.PPSPicParameterSetID >= PPSMax {
		return errors.Errorf("ctx: pps_pic_parameter_set_id %d out of range", pps.PPSPicParameterSetID)
	}
	c.pps[pps.PPSPicParameterSetID] = pps
	return nil
}

// PPS returns the PPS installed at id, or nil if none has been set.
func (c *Context) PPS(id uint32) *syntax.PPS {
	if id >= PPSMax {
		return nil
	}
	return c.pps[id]
}

// SetActiveSPS marks the SPS at id as active, looking it up in the
// table. The active VPS is not tracked.
func (c *Context) SetActiveSPS(id uint32) error {
	sps := c.SPS(id)
	if sps == nil {
		return errors.Errorf("ctx: no SPS with id %d", id)
	}
	c.activeSPS = sps
	return nil
}

// SetActivePPS marks the PPS at id as active, and activates its
// referenced SPS as a side effect.
func (c *Context) SetActivePPS(id uint32) error {
	pps := c.PPS(id)
	if pps == nil {
		return errors.Errorf("ctx: no PPS with id %d", id)
	}
	c.activePPS = pps
	return c.SetActiveSPS(pps.PPSSeqParameterSetID)
}

// ActiveSPS returns the currently active SPS, or nil.
func (c *Context) ActiveSPS() *syntax.SPS { return c.activeSPS }

// ActivePPS returns the currently active PPS, or nil.
func (c *Context) ActivePPS() *syntax.PPS { return c.activePPS }

// AddSEI appends a copy of m to the pending queue, then runs the SEI
// writer once to build its canonical RawPayload (the bytes every
// subsequent re-serialization replays verbatim, rather than
// re-deriving from the typed fields). If that build fails, the entry
// is popped back off and the error returned, mirroring
// h265_ctx_add_sei's own rollback on failure.
func (c *Context) AddSEI(m syntax.SEIMessage) error {
	c.sei = append(c.sei, m)
	entry := &c.sei[len(c.sei)-1]
	raw, err := syntax.WriteSEIPayload(entry)
	if err != nil {
		c.sei = c.sei[:len(c.sei)-1]
		return err
	}
	entry.RawPayload = raw
	return nil
}

// SEICount returns the number of SEI messages queued since the last
// ClearNALUnit.
func (c *Context) SEICount() int { return len(c.sei) }

// SEIMessages returns the queued SEI messages.
func (c *Context) SEIMessages() []syntax.SEIMessage { return c.sei }

// ClearNALUnit resets per-NAL-unit transient state: the queued SEI
// messages and the unknown-NAL-unit-type flag, the way nalu_begin/
// nalu_end bracket a single unit's parse in the original.
func (c *Context) ClearNALUnit() {
	c.sei = c.sei[:0]
	c.unknownNALUnit = false
}

// SetNALUnitHeader records the NAL unit currently being processed,
// updating access-unit boundary tracking: a VCL NAL unit observed
// after an earlier VCL NAL unit in the same access unit does not
// itself start a new one; any other CanStartAU type, or a VCL NAL
// unit seen before one has been seen this access unit, does. It
// returns whether h starts a new access unit.
func (c *Context) SetNALUnitHeader(h syntax.NALUnitHeader) (startsAU bool) {
	if h.NALUnitType.IsVCL() {
		if c.firstVCLFound {
			return false
		}
		c.firstVCLFound = true
		return true
	}
	if h.NALUnitType.CanStartAU() {
		c.firstVCLFound = false
		return true
	}
	return false
}

// SetNALUnitUnknown marks the NAL unit currently being processed as an
// unrecognized type.
func (c *Context) SetNALUnitUnknown() { c.unknownNALUnit = true }

// IsNALUnitUnknown reports whether the NAL unit currently being
// processed was marked unrecognized.
func (c *Context) IsNALUnitUnknown() bool { return c.unknownNALUnit }

// SEITimeCodeToTS converts one clock_timestamp entry of a
// sei_time_code payload to a tick count in the active SPS's VUI
// vui_time_scale units: the elapsed hours/minutes/seconds scaled by
// vui_time_scale, plus n_frames nominal ticks of
// vui_num_units_in_tick (doubled when units_field_based_flag selects
// field-based timing), plus time_offset_value verbatim in the same
// units. A negative time_offset_value whose magnitude exceeds the
// running total clamps to zero rather than going negative.
//
// It errors if there is no active SPS or its VUI carries no timing
// info, rather than substituting a default tick.
func (c *Context) SEITimeCodeToTS(p *syntax.SEITimeCodePayload, i int) (uint64, error) {
	sps := c.activeSPS
	if sps == nil {
		return 0, errors.New("ctx: no active SPS")
	}
	if sps.VUIParametersPresentFlag == 0 || sps.VUI.VUITimingInfoPresentFlag == 0 {
		return 0, errors.New("ctx: active SPS has no VUI timing info")
	}
	timeScale := uint64(sps.VUI.VUITimeScale)
	numUnitsInTick := uint64(sps.VUI.VUINumUnitsInTick)
	if timeScale == 0 || numUnitsInTick == 0 {
		return 0, errors.New("ctx: active SPS VUI timing info is zero")
	}

	fieldMul := uint64(1)
	if p.UnitsFieldBasedFlag[i] != 0 {
		fieldMul = 2
	}
	totalSeconds := (uint64(p.HoursValue[i])*60+uint64(p.MinutesValue[i]))*60 + uint64(p.SecondsValue[i])
	ts := totalSeconds*timeScale + uint64(p.NFrames[i])*numUnitsInTick*fieldMul

	off := int64(p.TimeOffsetValue[i])
	if off < 0 && uint64(-off) > ts {
		ts = 0
	} else {
		ts = uint64(int64(ts) + off)
	}
	return ts, nil
}

// SEITimeCodeToMicros converts one clock_timestamp entry of a
// sei_time_code payload to a duration since the start of the day, via
// SEITimeCodeToTS and a rounded division of its tick count into
// microseconds. It returns the same error SEITimeCodeToTS would.
func (c *Context) SEITimeCodeToMicros(p *syntax.SEITimeCodePayload, i int) (time.Duration, error) {
	ts, err := c.SEITimeCodeToTS(p, i)
	if err != nil {
		return 0, err
	}
	timeScale := uint64(c.activeSPS.VUI.VUITimeScale)
	us := (ts*1000000 + timeScale/2) / timeScale
	return time.Duration(us) * time.Microsecond, nil
}
