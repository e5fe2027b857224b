package syntax

// AUD is the access unit delimiter RBSP of clause 7.3.2.5.
type AUD struct {
	PicType uint32
}

// ReadWriteAUD reads or writes an AUD, depending on op.
func ReadWriteAUD(op Op, a *AUD) {
	op.BeginStruct("aud")
	op.U(&a.PicType, 3, "pic_type")
	op.RBSPTrailingBits()
	op.EndStruct()
}
