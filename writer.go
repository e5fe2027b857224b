/*
NAME
  writer.go

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
	"github.com/ausocean/h265meta/bitstream"
	"github.com/ausocean/h265meta/syntax"
)

// startCode is the 4-byte Annex B start code this package's Writer
// always emits (invariant 6: only 4-byte start codes are supported).
var startCode = []byte{0x00, 0x00, 0x00, 0x01}

// Writer serializes parsed parameter sets, AUDs and SEI messages back
// into framed Annex B NAL units.
type Writer struct{}

// buildNALUnit writes a 2-byte NAL unit header of type t (layer 0,
// temporal id 0, the conventional placement for non-VCL parameter
// sets and AUDs) followed by whatever emit writes through op, then
// returns the framed NAL unit (start code included).
func buildNALUnit(t syntax.NALUnitType, emit func(op syntax.Op)) ([]byte, error) {
	w := bitstream.NewWriter(true)
	op := syntax.NewWriteOp(w)
	h := syntax.NALUnitHeader{NALUnitType: t, NUHLayerID: 0, NUHTemporalIDPlus1: 1}
	syntax.ReadNALUnitHeader(op, &h)
	emit(op)
	if err := op.Err(); err != nil {
		return nil, NewError(KindProtocolError, t.String(), err)
	}
	out := make([]byte, 0, len(startCode)+len(w.Bytes()))
	out = append(out, startCode...)
	out = append(out, w.Bytes()...)
	return out, nil
}

// WriteVPS emits vps as a framed VPS_NUT NAL unit.
func (w *Writer) WriteVPS(vps *syntax.VPS) ([]byte, error) {
	return buildNALUnit(syntax.NALVPS, func(op syntax.Op) { syntax.ReadWriteVPS(op, vps) })
}

// WriteSPS emits sps as a framed SPS_NUT NAL unit.
func (w *Writer) WriteSPS(sps *syntax.SPS) ([]byte, error) {
	return buildNALUnit(syntax.NALSPS, func(op syntax.Op) { syntax.ReadWriteSPS(op, sps) })
}

// WritePPS emits pps as a framed PPS_NUT NAL unit.
func (w *Writer) WritePPS(pps *syntax.PPS) ([]byte, error) {
	return buildNALUnit(syntax.NALPPS, func(op syntax.Op) { syntax.ReadWritePPS(op, pps) })
}

// WriteAUD emits aud as a framed AUD_NUT NAL unit.
func (w *Writer) WriteAUD(aud *syntax.AUD) ([]byte, error) {
	return buildNALUnit(syntax.NALAUD, func(op syntax.Op) { syntax.ReadWriteAUD(op, aud) })
}

// WriteSEI emits sei as a framed prefix SEI NAL unit (PREFIX_SEI_NUT).
// Use the NAL unit type constants directly with buildNALUnit for a
// suffix SEI instead.
func (w *Writer) WriteSEI(sei *syntax.SEI) ([]byte, error) {
	return buildNALUnit(syntax.NALPrefixSEI, func(op syntax.Op) { syntax.ReadWriteSEI(op, sei, true) })
}
