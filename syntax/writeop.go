package syntax

import "github.com/ausocean/h265meta/bitstream"

// WriteOp implements Op by serializing the values pointed to by each
// accessor into a bitstream.Writer.
type WriteOp struct {
	w   *bitstream.Writer
	err error
}

// NewWriteOp returns an Op that writes to w.
func NewWriteOp(w *bitstream.Writer) *WriteOp { return &WriteOp{w: w} }

func (o *WriteOp) Err() error { return o.err }

func (o *WriteOp) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

func (o *WriteOp) U(v *uint32, n int, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.U(*v, n); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) I(v *int32, n int, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.I(*v, n); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) UE(v *uint32, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.UE(*v); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) SE(v *int32, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.SE(*v); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) FFCoded(v *uint32, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.FFCoded(*v); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) Flag(v *int, name string) {
	if o.err != nil {
		return
	}
	if err := o.w.U(uint32(*v), 1); err != nil {
		o.fail(err)
	}
}

func (o *WriteOp) BeginStruct(name string)      {}
func (o *WriteOp) EndStruct()                   {}
func (o *WriteOp) BeginArray(name string, n int) {}
func (o *WriteOp) EndArray()                    {}

func (o *WriteOp) MoreRBSPData() bool { return false }

func (o *WriteOp) RBSPTrailingBits() {
	if o.err != nil {
		return
	}
	if err := o.w.WriteRBSPTrailingBits(); err != nil {
		o.fail(err)
	}
}
