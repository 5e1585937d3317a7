package bitstream

import (
	"bytes"
	"encoding/binary"
	"math"
)

// Writer appends little-endian primitives to a growable output buffer.
// It computes no length fields itself; callers write lengths they have
// computed from content.
type Writer struct {
	buf bytes.Buffer
	cur byte // partially filled byte for bit writes
	bit uint // bits used in cur; 0 means byte-aligned
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the written bytes, flushing any partial bit byte first.
func (w *Writer) Bytes() []byte {
	w.realign()
	return w.buf.Bytes()
}

// Len returns the number of complete bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// realign flushes a partially filled bit byte, zero-padding its high bits.
func (w *Writer) realign() {
	if w.bit != 0 {
		w.buf.WriteByte(w.cur)
		w.cur = 0
		w.bit = 0
	}
}

// WriteBit appends a single bit, LSB first within each byte.
func (w *Writer) WriteBit(set bool) {
	if set {
		w.cur |= 1 << w.bit
	}
	w.bit++
	if w.bit == 8 {
		w.buf.WriteByte(w.cur)
		w.cur = 0
		w.bit = 0
	}
}

// WriteBytes appends raw bytes.
func (w *Writer) WriteBytes(b []byte) {
	w.realign()
	w.buf.Write(b)
}

// WriteU8 appends one byte.
func (w *Writer) WriteU8(v uint8) {
	w.realign()
	w.buf.WriteByte(v)
}

// WriteU16 appends a little-endian uint16.
func (w *Writer) WriteU16(v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.WriteBytes(b[:])
}

// WriteU32 appends a little-endian uint32.
func (w *Writer) WriteU32(v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.WriteBytes(b[:])
}

// WriteU64 appends a little-endian uint64.
func (w *Writer) WriteU64(v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.WriteBytes(b[:])
}

// WriteF32 appends a little-endian IEEE 754 single.
func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteF64 appends a little-endian IEEE 754 double.
func (w *Writer) WriteF64(v float64) {
	w.WriteU64(math.Float64bits(v))
}

// WriteBool appends one byte, 1 for true and 0 for false.
func (w *Writer) WriteBool(v bool) {
	if v {
		w.WriteU8(1)
	} else {
		w.WriteU8(0)
	}
}
