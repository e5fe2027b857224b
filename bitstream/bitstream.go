/*
NAME
  bitstream.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package bitstream provides bit-level reading and writing of HEVC RBSP
// data: unsigned/signed fixed-width fields, unsigned/signed Exp-Golomb
// codes (clause 9.1), ff-coded lengths, RBSP trailing bits (7.3.2.11),
// and emulation prevention byte handling (7.3.1.1).
package bitstream

import (
	"io"
	"math/bits"

	"github.com/pkg/errors"
)

// ErrEndOfStream is returned when a read runs past the end of the
// underlying buffer.
var ErrEndOfStream = errors.Wrap(io.ErrUnexpectedEOF, "bitstream: end of stream")

// Reader reads bits from an RBSP buffer, transparently discarding
// emulation prevention bytes (the 0x03 in a 0x00 0x00 0x03 sequence)
// the way h265_bs_fetch does in the original C bitstream.
//
// Strict, when true, makes ReadRBSPTrailingBits reject a trailing
// pattern that isn't exactly a single stop bit followed by zero
// padding to the next byte boundary. The default is tolerant, matching
// the original implementation's behaviour.
type Reader struct {
	buf               []byte
	off               int // byte offset of the next undelivered byte
	cache             uint8
	cachebits         uint8
	emulationPrevent  bool
	Strict            bool
}

// NewReader returns a Reader over buf. When emulationPrevention is
// true, 0x00 0x00 0x03 sequences are detected and the 0x03 escape byte
// is skipped during reads.
func NewReader(buf []byte, emulationPrevention bool) *Reader {
	return &Reader{buf: buf, emulationPrevent: emulationPrevention}
}

// ByteAligned reports whether the current position is on a byte
// boundary.
func (r *Reader) ByteAligned() bool { return r.cachebits%8 == 0 }

// EOS reports whether the end of the stream has been reached.
func (r *Reader) EOS() bool { return r.off >= len(r.buf) && r.cachebits == 0 }

// RemainingBits returns the number of bits left in the stream.
func (r *Reader) RemainingBits() int {
	return (len(r.buf)-r.off)*8 + int(r.cachebits)
}

// fetch loads the next byte into the cache, skipping an emulation
// prevention escape byte if one is detected at the current offset.
func (r *Reader) fetch() error {
	if r.emulationPrevent && r.off >= 2 && r.off < len(r.buf) &&
		r.buf[r.off-2] == 0x00 && r.buf[r.off-1] == 0x00 &&
		r.buf[r.off] == 0x03 {
		if r.off+1 >= len(r.buf) {
			return ErrEndOfStream
		}
		r.cache = r.buf[r.off+1]
		r.cachebits = 8
		r.off += 2
		return nil
	}
	if r.off < len(r.buf) {
		r.cache = r.buf[r.off]
		r.cachebits = 8
		r.off++
		return nil
	}
	return ErrEndOfStream
}

// ReadBits reads n bits (0 <= n <= 32) and returns them right-aligned
// in the returned value.
func (r *Reader) ReadBits(n int) (uint32, error) {
	if n < 0 || n > 32 {
		return 0, errors.Errorf("bitstream: invalid bit count %d", n)
	}
	var v uint32
	for n > 0 {
		if r.cachebits == 0 {
			if err := r.fetch(); err != nil {
				return 0, err
			}
		}
		take := n
		if int(r.cachebits) < take {
			take = int(r.cachebits)
		}
		mask := uint32(1)<<uint(take) - 1
		part := (uint32(r.cache) >> (uint(r.cachebits) - uint(take))) & mask
		v = (v << uint(take)) | part
		n -= take
		r.cachebits -= uint8(take)
	}
	return v, nil
}

// U reads an n-bit unsigned fixed-width field, u(n).
func (r *Reader) U(n int) (uint32, error) { return r.ReadBits(n) }

// I reads an n-bit signed fixed-width field, sign extending the
// result.
func (r *Reader) I(n int) (int32, error) {
	u, err := r.ReadBits(n)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, nil
	}
	if u&(1<<uint(n-1)) != 0 {
		return int32(u | (^uint32(0) << uint(n))), nil
	}
	return int32(u), nil
}

// UE reads an unsigned Exp-Golomb code, ue(v), per clause 9.1.
func (r *Reader) UE() (uint32, error) {
	leadingZeros := 0
	for {
		b, err := r.ReadBits(1)
		if err != nil {
			return 0, err
		}
		if b != 0 {
			break
		}
		leadingZeros++
		if leadingZeros > 31 {
			return 0, errors.Wrap(errors.New("ue(v) code too long"), "bitstream")
		}
	}
	if leadingZeros == 0 {
		return 0, nil
	}
	rem, err := r.ReadBits(leadingZeros)
	if err != nil {
		return 0, err
	}
	return (uint32(1)<<uint(leadingZeros) - 1) + rem, nil
}

// SE reads a signed Exp-Golomb code, se(v), mapped from ue(v) by the
// odd/even rule of clause 9.1, computed with exact integer arithmetic.
func (r *Reader) SE() (int32, error) {
	u, err := r.UE()
	if err != nil {
		return 0, err
	}
	if u&1 != 0 {
		return int32((u + 1) / 2), nil
	}
	return -int32((u + 1) / 2), nil
}

// FFCoded reads a length coded as a run of 0xFF bytes followed by a
// terminating byte less than 0xFF, as used by SEI payloadType and
// payloadSize (Annex D.1). The value is the sum of all bytes read.
func (r *Reader) FFCoded() (uint32, error) {
	var v uint32
	for {
		b, err := r.ReadBits(8)
		if err != nil {
			return 0, err
		}
		v += b
		if b != 0xff {
			break
		}
	}
	return v, nil
}

// MoreRBSPData implements the more_rbsp_data() lookahead of clause
// 7.2: true if there is a 1-valued bit somewhere in the remaining
// stream before the trailing stop-bit-and-padding.
func (r *Reader) MoreRBSPData() bool {
	if r.EOS() {
		return false
	}
	save := *r
	// If only the trailing pattern (a single 1 bit, then zero padding
	// to a byte boundary, then nothing else) remains, there is no more
	// RBSP data.
	first, err := r.ReadBits(1)
	if err != nil {
		*r = save
		return false
	}
	if first != 1 {
		*r = save
		return true
	}
	// first == 1: candidate stop bit. If everything after it, up to
	// the current byte boundary, is zero and nothing follows, this was
	// the trailing pattern rather than data.
	more := false
	for !r.ByteAligned() {
		b, err := r.ReadBits(1)
		if err != nil {
			*r = save
			return false
		}
		if b != 0 {
			more = true
		}
	}
	if !r.EOS() {
		more = true
	}
	*r = save
	return more
}

// ReadRBSPTrailingBits consumes the trailing stop bit and zero padding
// of clause 7.3.2.11. In Strict mode it requires the pattern to be
// exactly one 1-bit followed by zero padding to the byte boundary with
// nothing else remaining.
func (r *Reader) ReadRBSPTrailingBits() error {
	stop, err := r.ReadBits(1)
	if err != nil {
		return err
	}
	if r.Strict && stop != 1 {
		return errors.New("bitstream: rbsp_stop_one_bit not set")
	}
	for !r.ByteAligned() {
		b, err := r.ReadBits(1)
		if err != nil {
			return err
		}
		if r.Strict && b != 0 {
			return errors.New("bitstream: rbsp_alignment_zero_bit not zero")
		}
	}
	if r.Strict && !r.EOS() {
		return errors.New("bitstream: data after rbsp_trailing_bits")
	}
	return nil
}

// ReadRawBytes reads len(buf) byte-aligned bytes into buf.
func (r *Reader) ReadRawBytes(buf []byte) error {
	if !r.ByteAligned() {
		return errors.New("bitstream: ReadRawBytes requires byte alignment")
	}
	for i := range buf {
		v, err := r.ReadBits(8)
		if err != nil {
			return err
		}
		buf[i] = byte(v)
	}
	return nil
}

// Writer writes bits into a growable RBSP buffer, inserting emulation
// prevention escape bytes when a 0x00 0x00 0x0{0,1,2,3} sequence is
// about to be produced.
type Writer struct {
	buf              []byte
	cache            uint8
	cachebits        uint8 // number of bits already placed in cache, MSB-first
	emulationPrevent bool
	acquired         bool
}

// NewWriter returns a Writer. When emulationPrevention is true, escape
// bytes are inserted on Bytes().
func NewWriter(emulationPrevention bool) *Writer {
	return &Writer{emulationPrevent: emulationPrevention}
}

func (w *Writer) WriteBits(v uint32, n int) error {
	if n < 0 || n > 32 {
		return errors.Errorf("bitstream: invalid bit count %d", n)
	}
	for n > 0 {
		free := 8 - int(w.cachebits)
		take := n
		if take > free {
			take = free
		}
		shift := n - take
		part := (v >> uint(shift)) & (uint32(1)<<uint(take) - 1)
		w.cache |= uint8(part) << uint(free-take)
		w.cachebits += uint8(take)
		n -= take
		if w.cachebits == 8 {
			w.buf = append(w.buf, w.cache)
			w.cache = 0
			w.cachebits = 0
		}
	}
	return nil
}

func (w *Writer) U(v uint32, n int) error { return w.WriteBits(v, n) }

func (w *Writer) I(v int32, n int) error {
	return w.WriteBits(uint32(v)&(uint32(1)<<uint(n)-1), n)
}

func (w *Writer) UE(v uint32) error {
	// ue(v) codeword: leadingZeros zero bits, then n = v+1 in binary
	// (leadingZeros+1 bits), where leadingZeros = floor(log2(v+1)).
	n := v + 1
	leadingZeros := bits.Len32(n) - 1
	if err := w.WriteBits(0, leadingZeros); err != nil {
		return err
	}
	return w.WriteBits(n, leadingZeros+1)
}

func (w *Writer) SE(v int32) error {
	if v <= 0 {
		return w.UE(uint32(-2 * int64(v)))
	}
	return w.UE(uint32(2*int64(v) - 1))
}

func (w *Writer) FFCoded(v uint32) error {
	for v >= 0xff {
		if err := w.WriteBits(0xff, 8); err != nil {
			return err
		}
		v -= 0xff
	}
	return w.WriteBits(v, 8)
}

func (w *Writer) WriteRBSPTrailingBits() error {
	if err := w.WriteBits(1, 1); err != nil {
		return err
	}
	for w.cachebits != 0 {
		if err := w.WriteBits(0, 1); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) WriteRawBytes(buf []byte) error {
	if w.cachebits != 0 {
		return errors.New("bitstream: WriteRawBytes requires byte alignment")
	}
	w.buf = append(w.buf, buf...)
	return nil
}

// Bytes returns the bytes written so far. Any partial byte in the
// cache is excluded; call WriteRBSPTrailingBits first to flush it.
// When emulation prevention is enabled, escape bytes are inserted so
// the result never contains a 0x00 0x00 0x0{0,1,2,3} sequence.
func (w *Writer) Bytes() []byte {
	if !w.emulationPrevent {
		return w.buf
	}
	out := make([]byte, 0, len(w.buf)+len(w.buf)/3+1)
	zeros := 0
	for _, b := range w.buf {
		if zeros >= 2 && b <= 0x03 {
			out = append(out, 0x03)
			zeros = 0
		}
		out = append(out, b)
		if b == 0x00 {
			zeros++
		} else {
			zeros = 0
		}
	}
	return out
}

// ByteAligned reports whether the writer is on a byte boundary.
func (w *Writer) ByteAligned() bool { return w.cachebits == 0 }

// AcquireBuffer takes ownership of the writer's buffer, applying
// emulation prevention exactly as Bytes() would, and leaves the
// writer holding no data of its own. It errors if the writer is not
// currently byte-aligned, or if the buffer has already been
// acquired, matching h265_bs_acquire_buf in the original.
func (w *Writer) AcquireBuffer() ([]byte, error) {
	if !w.ByteAligned() {
		return nil, errors.New("bitstream: AcquireBuffer requires byte alignment")
	}
	if w.acquired {
		return nil, errors.New("bitstream: buffer already acquired")
	}
	buf := w.Bytes()
	w.buf = nil
	w.acquired = true
	return buf, nil
}
