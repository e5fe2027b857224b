/*
NAME
  reader.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package h265meta

import (
	"github.com/pkg/errors"

	"github.com/ausocean/h265meta/bitstream"
	"github.com/ausocean/h265meta/ctx"
	"github.com/ausocean/h265meta/framing"
	"github.com/ausocean/h265meta/syntax"
)

// Callbacks are invoked by Reader as it parses NAL units. Any may be
// left nil; Reader skips a nil callback rather than calling it.
type Callbacks struct {
	NALBegin func(h syntax.NALUnitHeader)
	NALEnd   func(h syntax.NALUnitHeader)
	AUEnd    func()

	VPS func(*syntax.VPS)
	SPS func(*syntax.SPS)
	PPS func(*syntax.PPS)
	AUD func(*syntax.AUD)
	SEI func(*syntax.SEIMessage)
}

// Reader parses a sequence of HEVC NAL units, maintaining a Context
// across calls and firing Callbacks as parameter sets, AUDs, SEI
// messages and access-unit boundaries are recognised.
type Reader struct {
	Context   *ctx.Context
	Callbacks Callbacks

	hasOpenAU bool
}

// NewReader returns a Reader with a fresh Context.
func NewReader() *Reader {
	return &Reader{Context: ctx.New()}
}

// Parse scans buf, an Annex B byte stream, calling ParseNALUnit on
// each NAL unit found. It returns the offset in buf just past the
// last NAL unit parsed without error, which is len(buf) when every NAL
// unit parses, and 0 when buf holds no start code. The last NAL unit
// runs to the end of buf and is parsed as complete.
func (r *Reader) Parse(buf []byte) (consumed int, err error) {
	units, err := framing.AllNALUnits(buf)
	if err != nil {
		return 0, errors.Wrap(err, "reader: framing")
	}
	for _, u := range units {
		if err := r.ParseNALUnit(u); err != nil {
			return consumed, err
		}
		// u aliases buf, so this is the offset just past u in buf.
		consumed = cap(buf) - cap(u) + len(u)
	}
	return consumed, nil
}

// ParseNALUnit parses a single NAL unit's bytes (header plus RBSP, no
// start code or length prefix) and updates r.Context, firing
// Callbacks as appropriate.
func (r *Reader) ParseNALUnit(buf []byte) error {
	br := bitstream.NewReader(buf, true)
	op := syntax.NewReadOp(br)

	var h syntax.NALUnitHeader
	syntax.ReadNALUnitHeader(op, &h)
	if err := op.Err(); err != nil {
		return NewError(KindEndOfInput, "ParseNALUnit", err)
	}

	startsAU := r.Context.SetNALUnitHeader(h)
	if startsAU && r.hasOpenAU {
		r.hasOpenAU = false
		if r.Callbacks.AUEnd != nil {
			r.Callbacks.AUEnd()
		}
	}
	if h.NALUnitType.IsVCL() {
		r.hasOpenAU = true
	}

	r.Context.ClearNALUnit()
	if r.Callbacks.NALBegin != nil {
		r.Callbacks.NALBegin(h)
	}

	switch h.NALUnitType {
	case syntax.NALVPS:
		var vps syntax.VPS
		syntax.ReadWriteVPS(op, &vps)
		if err := op.Err(); err != nil {
			return NewError(KindProtocolError, "VPS", err)
		}
		if err := r.Context.SetVPS(&vps); err != nil {
			return NewError(KindInvalidArgument, "VPS", err)
		}
		if r.Callbacks.VPS != nil {
			r.Callbacks.VPS(&vps)
		}
	case syntax.NALSPS:
		var sps syntax.SPS
		syntax.ReadWriteSPS(op, &sps)
		if err := op.Err(); err != nil {
			return NewError(KindProtocolError, "SPS", err)
		}
		if err := r.Context.SetSPS(&sps); err != nil {
			return NewError(KindInvalidArgument, "SPS", err)
		}
		if r.Callbacks.SPS != nil {
			r.Callbacks.SPS(&sps)
		}
	case syntax.NALPPS:
		var pps syntax.PPS
		syntax.ReadWritePPS(op, &pps)
		if err := op.Err(); err != nil {
			return NewError(KindProtocolError, "PPS", err)
		}
		if err := r.Context.SetPPS(&pps); err != nil {
			return NewError(KindInvalidArgument, "PPS", err)
		}
		if r.Callbacks.PPS != nil {
			r.Callbacks.PPS(&pps)
		}
	case syntax.NALAUD:
		var aud syntax.AUD
		syntax.ReadWriteAUD(op, &aud)
		if err := op.Err(); err != nil {
			return NewError(KindProtocolError, "AUD", err)
		}
		if r.Callbacks.AUD != nil {
			r.Callbacks.AUD(&aud)
		}
	case syntax.NALPrefixSEI, syntax.NALSuffixSEI:
		var sei syntax.SEI
		syntax.ReadWriteSEI(op, &sei, false)
		if err := op.Err(); err != nil {
			return NewError(KindProtocolError, "SEI", err)
		}
		for i := range sei.Messages {
			if err := r.Context.AddSEI(sei.Messages[i]); err != nil {
				return NewError(KindProtocolError, "SEI", err)
			}
			if r.Callbacks.SEI != nil {
				r.Callbacks.SEI(&sei.Messages[i])
			}
		}
	default:
		r.Context.SetNALUnitUnknown()
	}

	if r.Callbacks.NALEnd != nil {
		r.Callbacks.NALEnd(h)
	}
	return nil
}

// ParseNALUnitHeader parses just the 2-byte NAL unit header from buf.
func ParseNALUnitHeader(buf []byte) (syntax.NALUnitHeader, error) {
	br := bitstream.NewReader(buf, true)
	op := syntax.NewReadOp(br)
	var h syntax.NALUnitHeader
	syntax.ReadNALUnitHeader(op, &h)
	if err := op.Err(); err != nil {
		return h, NewError(KindEndOfInput, "ParseNALUnitHeader", err)
	}
	return h, nil
}

// ParseVPS parses rbsp (the NAL unit payload following the 2-byte
// header) as a VPS, without requiring a Context.
func ParseVPS(rbsp []byte) (*syntax.VPS, error) {
	br := bitstream.NewReader(rbsp, true)
	op := syntax.NewReadOp(br)
	var vps syntax.VPS
	syntax.ReadWriteVPS(op, &vps)
	if err := op.Err(); err != nil {
		return nil, NewError(KindProtocolError, "ParseVPS", err)
	}
	return &vps, nil
}

// ParseSPS parses rbsp as an SPS, without requiring a Context.
func ParseSPS(rbsp []byte) (*syntax.SPS, error) {
	br := bitstream.NewReader(rbsp, true)
	op := syntax.NewReadOp(br)
	var sps syntax.SPS
	syntax.ReadWriteSPS(op, &sps)
	if err := op.Err(); err != nil {
		return nil, NewError(KindProtocolError, "ParseSPS", err)
	}
	return &sps, nil
}

// ParsePPS parses rbsp as a PPS, without requiring a Context.
func ParsePPS(rbsp []byte) (*syntax.PPS, error) {
	br := bitstream.NewReader(rbsp, true)
	op := syntax.NewReadOp(br)
	var pps syntax.PPS
	syntax.ReadWritePPS(op, &pps)
	if err := op.Err(); err != nil {
		return nil, NewError(KindProtocolError, "ParsePPS", err)
	}
	return &pps, nil
}
