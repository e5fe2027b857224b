/*
NAME
  errors.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package h265meta parses, derives information from, and re-emits the
// non-picture metadata of an HEVC (ITU-T H.265) bitstream: NAL unit
// framing, VPS/SPS/PPS parameter sets, access unit delimiters and a
// handful of SEI message types. Picture and slice data are out of
// scope; see the subpackages bitstream, syntax, framing, ctx, dump and
// info for the pieces this package assembles.
package h265meta

import "fmt"

// Kind classifies the error conditions a caller needs to distinguish
// in order to react (retry with more data, reject the input, etc).
type Kind int

const (
	// KindInvalidArgument indicates a malformed field value, an
	// out-of-range parameter set id, or a Context table at capacity.
	KindInvalidArgument Kind = iota

	// KindEndOfInput indicates the bitstream was exhausted while a
	// field was being read.
	KindEndOfInput

	// KindOutOfMemory indicates a dynamic buffer failed to grow.
	KindOutOfMemory

	// KindProtocolError indicates the bitstream violates a syntax
	// invariant (RBSP trailing bits, SEI payload size, and so on).
	KindProtocolError

	// KindNotApplicable indicates an operation was requested against
	// a structure it does not apply to.
	KindNotApplicable
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid argument"
	case KindEndOfInput:
		return "end of input"
	case KindOutOfMemory:
		return "out of memory"
	case KindProtocolError:
		return "protocol error"
	case KindNotApplicable:
		return "not applicable"
	default:
		return "unknown"
	}
}

// Error is the error type returned by this module and its
// subpackages. Op names the failing operation or syntax element.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("h265meta: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("h265meta: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// NewError builds an *Error wrapping err, or nil if err is nil.
func NewError(kind Kind, op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Err: err}
}
