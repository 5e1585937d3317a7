package bitstream

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestReaderPrimitives(t *testing.T) {
	data := []byte{
		0x2A,                   // u8
		0x34, 0x12,             // u16
		0x78, 0x56, 0x34, 0x12, // u32
		0xEF, 0xCD, 0xAB, 0x89, 0x67, 0x45, 0x23, 0x01, // u64
		0x01, // bool
	}
	r := NewReader(data)

	if v, err := r.ReadU8(); err != nil || v != 0x2A {
		t.Fatalf("ReadU8 = %v, %v", v, err)
	}
	if v, err := r.ReadU16(); err != nil || v != 0x1234 {
		t.Fatalf("ReadU16 = %#x, %v", v, err)
	}
	if v, err := r.ReadU32(); err != nil || v != 0x12345678 {
		t.Fatalf("ReadU32 = %#x, %v", v, err)
	}
	if v, err := r.ReadU64(); err != nil || v != 0x0123456789ABCDEF {
		t.Fatalf("ReadU64 = %#x, %v", v, err)
	}
	if v, err := r.ReadBool(); err != nil || v != true {
		t.Fatalf("ReadBool = %v, %v", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d, want 0", r.Remaining())
	}
}

func TestReaderFloats(t *testing.T) {
	w := NewWriter()
	w.WriteF32(1.5)
	w.WriteF64(-2.25)

	r := NewReader(w.Bytes())
	if v, err := r.ReadF32(); err != nil || v != 1.5 {
		t.Fatalf("ReadF32 = %v, %v", v, err)
	}
	if v, err := r.ReadF64(); err != nil || v != -2.25 {
		t.Fatalf("ReadF64 = %v, %v", v, err)
	}
}

func TestReaderEOF(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		read func(r *Reader) error
	}{
		{"u8 empty", nil, func(r *Reader) error { _, err := r.ReadU8(); return err }},
		{"u16 short", []byte{1}, func(r *Reader) error { _, err := r.ReadU16(); return err }},
		{"u32 short", []byte{1, 2, 3}, func(r *Reader) error { _, err := r.ReadU32(); return err }},
		{"u64 short", []byte{1, 2, 3, 4, 5, 6, 7}, func(r *Reader) error { _, err := r.ReadU64(); return err }},
		{"bytes short", []byte{1, 2}, func(r *Reader) error { _, err := r.ReadBytes(3); return err }},
		{"bit empty", nil, func(r *Reader) error { _, err := r.ReadBit(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewReader(tt.data)
			before := r.Position()
			if err := tt.read(r); !errors.Is(err, ErrUnexpectedEOF) {
				t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
			}
			if r.Position() != before {
				t.Errorf("cursor moved on failed read: %d -> %d", before, r.Position())
			}
		})
	}
}

func TestReaderNegativeLength(t *testing.T) {
	r := NewReader([]byte{1, 2, 3})
	if _, err := r.ReadBytes(-1); !errors.Is(err, ErrUnexpectedEOF) {
		t.Fatalf("err = %v, want ErrUnexpectedEOF", err)
	}
}

func TestBitAccess(t *testing.T) {
	// 0b0000_0101: bits 0 and 2 set.
	r := NewReader([]byte{0x05, 0xFF})

	want := []bool{true, false, true, false, false, false, false, false}
	for i, w := range want {
		got, err := r.ReadBit()
		if err != nil {
			t.Fatalf("bit %d: %v", i, err)
		}
		if got != w {
			t.Errorf("bit %d = %v, want %v", i, got, w)
		}
	}

	// Fully consumed first byte; next byte read is aligned.
	if v, err := r.ReadU8(); err != nil || v != 0xFF {
		t.Fatalf("ReadU8 after bits = %#x, %v", v, err)
	}
}

func TestBitRealignOnByteRead(t *testing.T) {
	r := NewReader([]byte{0x01, 0xAB})

	if v, err := r.ReadBit(); err != nil || v != true {
		t.Fatalf("ReadBit = %v, %v", v, err)
	}
	// Byte read mid-byte discards the rest of the current byte.
	if v, err := r.ReadU8(); err != nil || v != 0xAB {
		t.Fatalf("ReadU8 = %#x, %v", v, err)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteU8(7)
	w.WriteU16(0xBEEF)
	w.WriteU32(0xDEADBEEF)
	w.WriteU64(math.MaxUint64)
	w.WriteBool(false)
	w.WriteBytes([]byte{9, 8, 7})

	r := NewReader(w.Bytes())
	if v, _ := r.ReadU8(); v != 7 {
		t.Errorf("u8 = %d", v)
	}
	if v, _ := r.ReadU16(); v != 0xBEEF {
		t.Errorf("u16 = %#x", v)
	}
	if v, _ := r.ReadU32(); v != 0xDEADBEEF {
		t.Errorf("u32 = %#x", v)
	}
	if v, _ := r.ReadU64(); v != math.MaxUint64 {
		t.Errorf("u64 = %#x", v)
	}
	if v, _ := r.ReadBool(); v != false {
		t.Errorf("bool = %v", v)
	}
	b, err := r.ReadBytes(3)
	if err != nil || !bytes.Equal(b, []byte{9, 8, 7}) {
		t.Errorf("bytes = %v, %v", b, err)
	}
}

func TestWriterBits(t *testing.T) {
	w := NewWriter()
	w.WriteBit(true)
	w.WriteBit(false)
	w.WriteBit(true)
	// Bytes() flushes the partial byte with zero padding.
	got := w.Bytes()
	if len(got) != 1 || got[0] != 0x05 {
		t.Fatalf("bits = %v, want [0x05]", got)
	}
}

func TestReadRemaining(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if _, err := r.ReadU16(); err != nil {
		t.Fatal(err)
	}
	rest := r.ReadRemaining()
	if !bytes.Equal(rest, []byte{3, 4}) {
		t.Fatalf("rest = %v", rest)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining = %d", r.Remaining())
	}
}
