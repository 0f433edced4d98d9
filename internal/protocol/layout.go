// Package protocol implements the ~230-entry packet schema: a
// compile-time descriptor table (see Descriptor) plus typed
// encode/decode pairs for the packets that drive the handshake, asset
// loading, and join sequence, built on the common Null-bits/Fixed/
// Offset-table/Variable layout every non-trivial packet shares.
package protocol

import (
	"fmt"

	"github.com/zytale/zytale-server/internal/wire"
)

// offsetAbsent is the sentinel offset value for an absent optional
// field in a packet's offset table.
const offsetAbsent = -1

// NullBits is the leading presence-bitmap byte: bit i set means the
// i-th optional field (in declaration order) is present.
type NullBits byte

func (n NullBits) Has(bit uint) bool { return n&(1<<bit) != 0 }

func (n *NullBits) Set(bit uint, present bool) {
	if present {
		*n |= 1 << bit
	} else {
		*n &^= 1 << bit
	}
}

// FixedWriter accumulates a packet's fixed block (null-bits + declared
// scalars + an offset table), then a variable block: offsets are
// written relative to the first byte of the
// variable block, not the start of the packet.
type FixedWriter struct {
	null   NullBits
	fixed  []byte
	offs   []int32 // one entry per optional/variable field, in declaration order
	varbuf []byte
}

// NewFixedWriter starts a packet body with nOptional variable/optional
// fields (each gets a slot in the offset table).
func NewFixedWriter(nOptional int) *FixedWriter {
	return &FixedWriter{offs: make([]int32, nOptional)}
}

// PutFixed appends raw bytes to the fixed (non-offset-table) region,
// e.g. a required scalar field.
func (w *FixedWriter) PutFixed(b ...byte) { w.fixed = append(w.fixed, b...) }

// SetBit sets or clears a null-bits flag for a field that has no
// offset-table entry of its own (e.g. a boolean flag field).
func (w *FixedWriter) SetBit(bit uint, present bool) { w.null.Set(bit, present) }

// WriteVariable records offset i as pointing at the current end of the
// variable buffer, marks its null-bit present, and appends data to the
// variable region.
func (w *FixedWriter) WriteVariable(i int, bit uint, data []byte) {
	w.offs[i] = int32(len(w.varbuf))
	w.null.Set(bit, true)
	w.varbuf = append(w.varbuf, data...)
}

// SkipVariable marks offset i and null-bit bit as absent.
func (w *FixedWriter) SkipVariable(i int, bit uint) {
	w.offs[i] = offsetAbsent
	w.null.Set(bit, false)
}

// VariableOrigin returns the byte offset the variable block will start
// at once Bytes is called — needed by recursive codecs (TagPattern)
// whose nested offsets must be relative to the outer packet's variable
// block, not their own.
func (w *FixedWriter) VariableOrigin() int {
	return 1 + len(w.fixed) + 4*len(w.offs)
}

// AppendRawVariable appends pre-encoded bytes directly into the
// variable region without touching the offset table (used by a nested
// codec that has already computed offsets against VariableOrigin).
func (w *FixedWriter) AppendRawVariable(data []byte) {
	w.varbuf = append(w.varbuf, data...)
}

// Bytes assembles the final packet payload.
func (w *FixedWriter) Bytes() []byte {
	out := make([]byte, 0, w.VariableOrigin()+len(w.varbuf))
	out = append(out, byte(w.null))
	out = append(out, w.fixed...)
	for _, o := range w.offs {
		var tmp [4]byte
		wire.PutInt32(tmp[:], o)
		out = append(out, tmp[:]...)
	}
	out = append(out, w.varbuf...)
	return out
}

// FixedReader is the decode-side counterpart of FixedWriter.
type FixedReader struct {
	buf      []byte
	null     NullBits
	fixedOff int // byte offset where the fixed scalar region starts (after null-bits)
	offs     []int32
	varStart int
}

// NewFixedReader parses the null-bits byte and, after the caller has
// consumed nFixedBytes of declared scalars via ReadFixed, the offset
// table of nOptional entries.
func NewFixedReader(buf []byte, nOptional int) (*FixedReader, error) {
	if len(buf) < 1 {
		return nil, fmt.Errorf("packet body empty, need null-bits byte")
	}
	return &FixedReader{buf: buf, null: NullBits(buf[0]), fixedOff: 1, offs: make([]int32, nOptional)}, nil
}

func (r *FixedReader) Has(bit uint) bool { return r.null.Has(bit) }

// ReadFixed consumes and returns the next n bytes of the fixed scalar
// region.
func (r *FixedReader) ReadFixed(n int) ([]byte, error) {
	end := r.fixedOff + n
	if end > len(r.buf) {
		return nil, fmt.Errorf("packet body truncated: need %d fixed bytes at %d, have %d", n, r.fixedOff, len(r.buf))
	}
	b := r.buf[r.fixedOff:end]
	r.fixedOff = end
	return b, nil
}

// ReadOffsetTable consumes the n int32 offsets following the fixed
// scalar region and records where the variable block begins.
func (r *FixedReader) ReadOffsetTable() error {
	n := len(r.offs)
	need := r.fixedOff + 4*n
	if need > len(r.buf) {
		return fmt.Errorf("packet body truncated: offset table needs %d bytes at %d, have %d", 4*n, r.fixedOff, len(r.buf))
	}
	for i := 0; i < n; i++ {
		r.offs[i] = wire.Int32(r.buf[r.fixedOff+4*i:])
	}
	r.varStart = need
	return nil
}

// VariableOrigin returns the start offset of the variable block within
// the packet body (for recursive codecs needing an explicit origin).
func (r *FixedReader) VariableOrigin() int { return r.varStart }

// Offset returns the raw offset table entry i (offsetAbsent if unset).
func (r *FixedReader) Offset(i int) int32 { return r.offs[i] }

// VariableSlice returns the variable-block bytes starting at offset
// table entry i, running to the end of the buffer. Variable fields
// carry their own length (VarString prefix, nested header), so callers
// decode from the slice's front and ignore the tail.
func (r *FixedReader) VariableSlice(i int) ([]byte, bool) {
	off := r.offs[i]
	if off < 0 {
		return nil, false
	}
	start := r.varStart + int(off)
	if start > len(r.buf) {
		return nil, false
	}
	return r.buf[start:], true
}

// Raw exposes the whole packet body, for codecs that need to slice
// relative to VariableOrigin directly (e.g. nested TagPattern offsets).
func (r *FixedReader) Raw() []byte { return r.buf }
