package dump

import (
	"strings"
	"testing"
)

func TestDumpTree(t *testing.T) {
	var b strings.Builder
	op := New(&b)
	op.BeginStruct("sps")
	v := uint32(7)
	op.UE(&v, "chroma_format_idc")
	flag := 1
	op.Flag(&flag, "amp_enabled_flag")
	op.BeginArray("foo", 2)
	op.EndArray()
	op.EndStruct()

	if err := op.Err(); err != nil {
		t.Fatal(err)
	}
	got := b.String()
	want := "sps {\n  chroma_format_idc: 7\n  amp_enabled_flag: true\n  foo [2] {\n  }\n}\n"
	if got != want {
		t.Errorf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestDumpMaxDepth(t *testing.T) {
	var b strings.Builder
	op := New(&b)
	for i := 0; i < MaxDepth; i++ {
		op.BeginStruct("nested")
	}
	if err := op.Err(); err != nil {
		t.Fatalf("unexpected error before exceeding max depth: %v", err)
	}
	op.BeginStruct("one_too_many")
	if op.Err() == nil {
		t.Error("expected an error once nesting exceeds MaxDepth")
	}
}
