/*
NAME
  dump.go

AUTHOR
  Saxon A. Nelson-Milton <saxon@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

// Package dump renders a populated syntax struct as an indented,
// human-readable key/value tree, by implementing syntax.Op over a
// populated struct instead of a bitstream. There is no JSON backend;
// text is the only supported rendering.
package dump

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// MaxDepth bounds BeginStruct/BeginArray nesting, guarding against a
// pathological or malformed struct driving unbounded recursion.
const MaxDepth = 64

// Op renders field accesses to w as indented "name: value" lines,
// implementing syntax.Op. Construct with New; it never reads or
// writes bits, so it is driven by calling a grammar function (e.g.
// syntax.ReadWriteSPS) with an already-populated struct.
type Op struct {
	w     io.Writer
	depth int
	err   error
}

// New returns an Op that writes an indented dump to w.
func New(w io.Writer) *Op { return &Op{w: w} }

func (o *Op) Err() error { return o.err }

func (o *Op) fail(err error) {
	if o.err == nil {
		o.err = err
	}
}

func (o *Op) indent() string { return strings.Repeat("  ", o.depth) }

func (o *Op) writeLine(format string, args ...interface{}) {
	if o.err != nil {
		return
	}
	line := fmt.Sprintf(format, args...)
	if _, err := fmt.Fprintf(o.w, "%s%s\n", o.indent(), line); err != nil {
		o.fail(err)
	}
}

func (o *Op) U(v *uint32, n int, name string)  { o.writeLine("%s: %d", name, *v) }
func (o *Op) I(v *int32, n int, name string)   { o.writeLine("%s: %d", name, *v) }
func (o *Op) UE(v *uint32, name string)        { o.writeLine("%s: %d", name, *v) }
func (o *Op) SE(v *int32, name string)         { o.writeLine("%s: %d", name, *v) }
func (o *Op) FFCoded(v *uint32, name string)   { o.writeLine("%s: %d", name, *v) }

func (o *Op) Flag(v *int, name string) {
	val := "false"
	if *v != 0 {
		val = "true"
	}
	o.writeLine("%s: %s", name, val)
}

func (o *Op) BeginStruct(name string) {
	if o.err != nil {
		return
	}
	if o.depth >= MaxDepth {
		o.fail(errors.Errorf("dump: nesting exceeds max depth %d", MaxDepth))
		return
	}
	o.writeLine("%s {", name)
	o.depth++
}

func (o *Op) EndStruct() {
	if o.err != nil {
		return
	}
	o.depth--
	o.writeLine("}")
}

func (o *Op) BeginArray(name string, n int) {
	if o.err != nil {
		return
	}
	if o.depth >= MaxDepth {
		o.fail(errors.Errorf("dump: nesting exceeds max depth %d", MaxDepth))
		return
	}
	o.writeLine("%s [%d] {", name, n)
	o.depth++
}

func (o *Op) EndArray() {
	if o.err != nil {
		return
	}
	o.depth--
	o.writeLine("}")
}

func (o *Op) MoreRBSPData() bool { return false }

func (o *Op) RBSPTrailingBits() {}
