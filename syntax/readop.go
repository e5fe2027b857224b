package syntax

import "github.com/ausocean/h265meta/bitstream"

// ReadOp implements Op by pulling fields from a bitstream.Reader into
// the pointers passed to each accessor.
type ReadOp struct {
	r   *bitstream.Reader
	err error
}

// NewReadOp returns an Op that reads from r.
func NewReadOp(r *bitstream.Reader) *ReadOp { return &ReadOp{r: r} }

func (o *ReadOp) Err() error { return o.err }

func (o *ReadOp) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

func (o *ReadOp) U(v *uint32, n int, name string) {
	if o.err != nil {
		return
	}
	u, err := o.r.U(n)
	if err != nil {
		o.fail(err)
		return
	}
	*v = u
}

func (o *ReadOp) I(v *int32, n int, name string) {
	if o.err != nil {
		return
	}
	i, err := o.r.I(n)
	if err != nil {
		o.fail(err)
		return
	}
	*v = i
}

func (o *ReadOp) UE(v *uint32, name string) {
	if o.err != nil {
		return
	}
	u, err := o.r.UE()
	if err != nil {
		o.fail(err)
		return
	}
	*v = u
}

func (o *ReadOp) SE(v *int32, name string) {
	if o.err != nil {
		return
	}
	s, err := o.r.SE()
	if err != nil {
		o.fail(err)
		return
	}
	*v = s
}

func (o *ReadOp) FFCoded(v *uint32, name string) {
	if o.err != nil {
		return
	}
	u, err := o.r.FFCoded()
	if err != nil {
		o.fail(err)
		return
	}
	*v = u
}

func (o *ReadOp) Flag(v *int, name string) {
	if o.err != nil {
		return
	}
	u, err := o.r.U(1)
	if err != nil {
		o.fail(err)
		return
	}
	*v = int(u)
}

func (o *ReadOp) BeginStruct(name string)      {}
func (o *ReadOp) EndStruct()                   {}
func (o *ReadOp) BeginArray(name string, n int) {}
func (o *ReadOp) EndArray()                    {}

func (o *ReadOp) MoreRBSPData() bool {
	if o.err != nil {
		return false
	}
	return o.r.MoreRBSPData()
}

func (o *ReadOp) RBSPTrailingBits() {
	if o.err != nil {
		return
	}
	if err := o.r.ReadRBSPTrailingBits(); err != nil {
		o.fail(err)
	}
}
