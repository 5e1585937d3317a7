package bitstream

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrUnexpectedEOF is returned when a read would pass the end of the buffer.
// Reads never partially consume: on error the cursor is left where it was.
var ErrUnexpectedEOF = errors.New("bitstream: unexpected end of stream")

// Reader is a cursor over an immutable byte buffer with bounded
// little-endian primitive reads and bit-flag access.
type Reader struct {
	data []byte
	pos  int
	bit  uint // bit offset within data[pos]; 0 means byte-aligned
}

// NewReader creates a Reader over data. The buffer is not copied;
// callers must not mutate it while the Reader is live.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Position returns the current byte offset.
func (r *Reader) Position() int {
	return r.pos
}

// Remaining returns the number of unread bytes. A partially consumed
// byte counts as unread until the cursor realigns past it.
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// realign advances the cursor to the next byte boundary. Byte-oriented
// reads after bit reads discard the rest of the current byte.
func (r *Reader) realign() {
	if r.bit != 0 {
		r.bit = 0
		r.pos++
	}
}

// ReadBit reads a single bit, LSB first within each byte.
func (r *Reader) ReadBit() (bool, error) {
	if r.pos >= len(r.data) {
		return false, ErrUnexpectedEOF
	}
	set := r.data[r.pos]&(1<<r.bit) != 0
	r.bit++
	if r.bit == 8 {
		r.bit = 0
		r.pos++
	}
	return set, nil
}

// ReadBytes reads exactly n bytes. The returned slice aliases the
// underlying buffer.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	r.realign()
	if n < 0 || n > len(r.data)-r.pos {
		return nil, ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadRemaining returns all unread bytes and advances to the end.
func (r *Reader) ReadRemaining() []byte {
	r.realign()
	b := r.data[r.pos:]
	r.pos = len(r.data)
	return b
}

// ReadU8 reads one byte.
func (r *Reader) ReadU8() (uint8, error) {
	r.realign()
	if r.pos >= len(r.data) {
		return 0, ErrUnexpectedEOF
	}
	b := r.data[r.pos]
	r.pos++
	return b, nil
}

// ReadU16 reads a little-endian uint16.
func (r *Reader) ReadU16() (uint16, error) {
	b, err := r.ReadBytes(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// ReadU32 reads a little-endian uint32.
func (r *Reader) ReadU32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// ReadU64 reads a little-endian uint64.
func (r *Reader) ReadU64() (uint64, error) {
	b, err := r.ReadBytes(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// ReadF32 reads a little-endian IEEE 754 single.
func (r *Reader) ReadF32() (float32, error) {
	bits, err := r.ReadU32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// ReadF64 reads a little-endian IEEE 754 double.
func (r *Reader) ReadF64() (float64, error) {
	bits, err := r.ReadU64()
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(bits), nil
}

// ReadBool reads one byte; any non-zero value is true.
func (r *Reader) ReadBool() (bool, error) {
	b, err := r.ReadU8()
	if err != nil {
		return false, err
	}
	return b != 0, nil
}
