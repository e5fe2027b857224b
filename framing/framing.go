/*
NAME
  framing.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package framing

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// DefaultLengthSize is the NALUnitLength field width, in bytes, used
// by hvcC sample entries that do not specify otherwise (ISO/IEC
// 14496-15, HEVCDecoderConfigurationRecord.lengthSizeMinusOne + 1).
const DefaultLengthSize = 4

// FindNALUnit returns the first NAL unit in buf, an Annex B byte
// stream beginning at or before a start code, and the remainder of
// buf starting at the following start code (nil if no further start
// code follows); it returns io.EOF if buf holds no start code at all.
// The returned NAL unit excludes its start code and any start code
// that follows it. buf must use 4-byte (00 00 00 01) start codes;
// 3-byte (00 00 01) start codes are not recognized, matching HEVC
// Annex B production which always emits the leading zero_byte.
// ByteStreamToHVCC finds NAL unit boundaries the same way.
func FindNALUnit(buf []byte) (nalu, rest []byte, err error) {
	_, begin := indexStartCode(buf, 0)
	if begin < 0 {
		return nil, nil, io.EOF
	}
	runStart, _ := indexStartCode(buf, begin)
	if runStart < 0 {
		return buf[begin:], nil, nil
	}
	return buf[begin:runStart], buf[runStart:], nil
}

// indexStartCode finds the next 4-byte Annex B start code (00 00 00
// 01) at or after from, returning runStart (the index of the first of
// its three zero bytes, so a prior NAL unit can be trimmed to exclude
// it) and after (the index of the byte immediately following the
// terminating 0x01, where the next NAL unit begins). A run of more
// than three zero bytes before the 0x01 only has its last three
// treated as the start code; any earlier zero bytes belong to the
// preceding NAL unit's payload. A run of exactly two zero bytes (a
// 3-byte start code) is not a match. Both return values are -1 if no
// start code is found.
func indexStartCode(buf []byte, from int) (runStart, after int) {
	zeros := 0
	for i := from; i < len(buf); i++ {
		switch buf[i] {
		case 0x00:
			zeros++
		case 0x01:
			if zeros >= 3 {
				return i - 3, i + 1
			}
			zeros = 0
		default:
			zeros = 0
		}
	}
	return -1, -1
}

// AllNALUnits splits buf, a complete Annex B byte stream, into its
// constituent NAL units. Each returned slice aliases buf.
func AllNALUnits(buf []byte) ([][]byte, error) {
	var units [][]byte
	for len(buf) > 0 {
		nalu, rest, err := FindNALUnit(buf)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		units = append(units, nalu)
		buf = rest
	}
	return units, nil
}

// NextNALUnit reads the next NAL unit from an Annex B byte stream
// delivered incrementally via r, using buf as scratch read space. It
// is the streaming counterpart to AllNALUnits, for sources (a network
// connection, a growing file) that should not be buffered wholesale.
func NextNALUnit(r io.Reader, buf []byte) (nalu []byte, err error) {
	s := newStartScanner(r, buf)
	// Discard everything up to and including the first start code.
	if _, _, err := s.next(nil); err != nil {
		return nil, err
	}
	nalu, _, err = s.next(nil)
	if err != nil && err != io.EOF {
		return nil, err
	}
	if len(nalu) == 0 && err == io.EOF {
		return nil, io.EOF
	}
	return nalu, nil
}

// ByteStreamToHVCC converts an Annex B byte stream to hvcC format,
// replacing each start code with a big-endian length prefix of
// lengthSize bytes (1, 2 or 4; 0 selects DefaultLengthSize).
func ByteStreamToHVCC(buf []byte, lengthSize int) ([]byte, error) {
	if lengthSize == 0 {
		lengthSize = DefaultLengthSize
	}
	if lengthSize != 1 && lengthSize != 2 && lengthSize != 4 {
		return nil, errors.Errorf("framing: invalid length size %d", lengthSize)
	}
	units, err := AllNALUnits(buf)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(buf))
	lenBuf := make([]byte, 4)
	for _, u := range units {
		if uint64(len(u)) >= uint64(1)<<(8*uint(lengthSize)) {
			return nil, errors.Errorf("framing: NAL unit of %d bytes does not fit a %d-byte length field", len(u), lengthSize)
		}
		binary.BigEndian.PutUint32(lenBuf, uint32(len(u)))
		out = append(out, lenBuf[4-lengthSize:]...)
		out = append(out, u...)
	}
	return out, nil
}

// HVCCToByteStream converts an hvcC-framed buffer, each NAL unit
// prefixed by a big-endian lengthSize-byte length (0 selects
// DefaultLengthSize), to an Annex B byte stream using 4-byte start
// codes.
func HVCCToByteStream(buf []byte, lengthSize int) ([]byte, error) {
	if lengthSize == 0 {
		lengthSize = DefaultLengthSize
	}
	if lengthSize != 1 && lengthSize != 2 && lengthSize != 4 {
		return nil, errors.Errorf("framing: invalid length size %d", lengthSize)
	}
	out := make([]byte, 0, len(buf)+len(buf)/8+4)
	startCode := []byte{0x00, 0x00, 0x00, 0x01}
	for off := 0; off < len(buf); {
		if off+lengthSize > len(buf) {
			return nil, errors.New("framing: truncated NAL unit length")
		}
		var n uint32
		for i := 0; i < lengthSize; i++ {
			n = n<<8 | uint32(buf[off+i])
		}
		off += lengthSize
		if off+int(n) > len(buf) {
			return nil, errors.New("framing: truncated NAL unit payload")
		}
		out = append(out, startCode...)
		out = append(out, buf[off:off+int(n)]...)
		off += int(n)
	}
	return out, nil
}
