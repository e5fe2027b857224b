/*
NAME
  scanner.go

AUTHOR
  Dan Kortschak <dan@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package framing converts HEVC NAL unit streams between Annex B
// byte-stream format (start-code delimited) and hvcC format
// (length-prefixed, as stored in an ISOBMFF sample entry), and finds
// individual NAL units within an Annex B buffer.
package framing

import "io"

// startScanner scans an io.Reader for 4-byte Annex B start codes
// (0x00 0x00 0x00 0x01), yielding each NAL unit's payload in turn. It
// is the streaming counterpart to FindNALUnit, which works on an
// in-memory buffer.
type startScanner struct {
	buf []byte
	off int
	r   io.Reader
}

func newStartScanner(r io.Reader, buf []byte) *startScanner {
	return &startScanner{r: r, buf: buf[:0]}
}

// reload re-fills the scanner's buffer, the way codecutil.ByteScanner
// does for its generic delimiter scan.
func (s *startScanner) reload() error {
	n, err := s.r.Read(s.buf[:cap(s.buf)])
	s.buf = s.buf[:n]
	if err != nil {
		if err != io.EOF {
			return err
		}
		if n == 0 {
			return io.EOF
		}
	}
	s.off = 0
	return nil
}

// next appends bytes to dst until a 4-byte start code is found or the
// underlying reader is exhausted, returning the accumulated bytes
// (excluding the start code itself) and whether a start code
// terminated the scan. A run of more than three zero bytes before the
// terminating 0x01 has its excess leading zeros flushed to dst as
// payload, so only the final three are treated as the start code; a
// run of exactly two (a 3-byte start code) is not a match.
func (s *startScanner) next(dst []byte) (res []byte, found bool, err error) {
	zeros := 0
	for {
		for s.off < len(s.buf) {
			b := s.buf[s.off]
			s.off++
			if b == 0x00 {
				zeros++
				continue
			}
			if b == 0x01 && zeros >= 3 {
				for ; zeros > 3; zeros-- {
					dst = append(dst, 0x00)
				}
				return dst, true, nil
			}
			for ; zeros > 0; zeros-- {
				dst = append(dst, 0x00)
			}
			dst = append(dst, b)
			zeros = 0
		}
		if err := s.reload(); err != nil {
			for ; zeros > 0; zeros-- {
				dst = append(dst, 0x00)
			}
			if err == io.EOF {
				return dst, false, io.EOF
			}
			return dst, false, err
		}
	}
}
