package bitstream

import (
	"strconv"
	"strings"
)

// binToSlice converts a string of binary digits (spaces ignored) into
// a byte slice, zero-padding the final byte if the string length
// isn't a multiple of 8. Ported from h264dec's helpers_test.go style.
func binToSlice(s string) ([]byte, error) {
	s = strings.ReplaceAll(s, " ", "")
	for len(s)%8 != 0 {
		s += "0"
	}
	out := make([]byte, 0, len(s)/8)
	for i := 0; i < len(s); i += 8 {
		v, err := strconv.ParseUint(s[i:i+8], 2, 8)
		if err != nil {
			return nil, err
		}
		out = append(out, byte(v))
	}
	return out, nil
}
