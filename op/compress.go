package op

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"github.com/veilstone/objectprop/errors"
)

// inflate decompresses a DEFLATE-wrapped body and verifies the result
// against the declared length exactly. The guard on declared runs
// before any allocation.
func inflate(data []byte, declared uint32) ([]byte, error) {
	if declared > MaxInflatedLen {
		return nil, errors.Overflow(errors.PhaseDecode, nil, "inflated body", declared, MaxInflatedLen)
	}

	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Compression("corrupt compressed payload", err)
	}
	defer zr.Close()

	// Read one byte past the declared length so an oversized stream is
	// detected without inflating it fully.
	out, err := io.ReadAll(io.LimitReader(zr, int64(declared)+1))
	if err != nil {
		return nil, errors.Compression("corrupt compressed payload", err)
	}
	if len(out) != int(declared) {
		return nil, errors.Compression(
			fmt.Sprintf("inflated %d byte(s), header declared %d", len(out), declared), nil)
	}
	return out, nil
}

// deflate compresses an encoded body. The caller writes the true
// inflated length ahead of the stream.
func deflate(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindCompression, err, "deflate body")
	}
	if err := zw.Close(); err != nil {
		return nil, errors.Wrap(errors.PhaseEncode, errors.KindCompression, err, "deflate body")
	}
	return buf.Bytes(), nil
}
