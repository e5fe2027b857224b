/*
NAME
  op.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package syntax implements the HEVC non-picture syntax grammar: one
// function per structure (NALUnitHeader, VPS, SPS, PPS, AUD, SEI and
// its five supported payloads, and their nested sub-structures),
// each written once against the Op interface and usable to read,
// write or dump that structure depending on which Op implementation
// is supplied.
package syntax

// Op is implemented three times: by a reader (populates the struct
// fields from a bitstream.Reader), a writer (serializes the struct
// fields to a bitstream.Writer) and a dumper (renders the struct as a
// human-readable tree). Every grammar function in this package is
// written once against Op so the wire layout exists in exactly one
// place.
//
// Every accessor follows the sticky-error convention of the teacher's
// fieldReader: once an Op has failed, every subsequent call becomes a
// no-op and Err returns the first failure. Grammar functions do not
// check Err; their callers check it once after the grammar function
// returns, rather than after every field.
//
// name is the ITU-T syntax element name; it is significant only to
// the dump implementation, which uses it to label tree nodes.
type Op interface {
	// U reads or writes an n-bit unsigned fixed-width field, u(n).
	U(v *uint32, n int, name string)

	// I reads or writes an n-bit signed fixed-width field.
	I(v *int32, n int, name string)

	// UE reads or writes an unsigned Exp-Golomb code, ue(v).
	UE(v *uint32, name string)

	// SE reads or writes a signed Exp-Golomb code, se(v).
	SE(v *int32, name string)

	// FFCoded reads or writes an ff-coded length (Annex D.1).
	FFCoded(v *uint32, name string)

	// Flag reads or writes a 1-bit field stored as a C-style 0/1 int,
	// matching the original's use of plain int for boolean flags.
	Flag(v *int, name string)

	// BeginStruct/EndStruct bracket a nested syntax structure. Only
	// the dump Op uses these to build tree nesting; read/write ops
	// are no-ops.
	BeginStruct(name string)
	EndStruct()

	// BeginArray/EndArray bracket a fixed or variable length array of
	// elements, analogous to BeginStruct/EndStruct.
	BeginArray(name string, n int)
	EndArray()

	// MoreRBSPData reports whether more_rbsp_data() would return true
	// at the current position. Only meaningful for the read Op; write
	// and dump ops return false.
	MoreRBSPData() bool

	// RBSPTrailingBits reads or writes the trailing stop bit and zero
	// padding of clause 7.3.2.11.
	RBSPTrailingBits()

	// Err returns the first error encountered by the Op, or nil.
	Err() error
}
