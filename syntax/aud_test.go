package syntax

import (
	"testing"

	"github.com/ausocean/h265meta/bitstream"
)

func TestAUDRoundTrip(t *testing.T) {
	in := &AUD{PicType: 2}

	w := bitstream.NewWriter(true)
	wop := NewWriteOp(w)
	ReadWriteAUD(wop, in)
	if err := wop.Err(); err != nil {
		t.Fatalf("write: %v", err)
	}

	r := bitstream.NewReader(w.Bytes(), true)
	rop := NewReadOp(r)
	out := &AUD{}
	ReadWriteAUD(rop, out)
	if err := rop.Err(); err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.PicType != 2 {
		t.Errorf("PicType = %d, want 2", out.PicType)
	}
}
