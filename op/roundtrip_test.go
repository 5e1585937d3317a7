package op

import (
	"fmt"
	"testing"
)

func TestRoundTripFlagMatrix(t *testing.T) {
	reg := testRegistry(t)
	in := itemValue()

	for _, compressed := range []bool{false, true} {
		for _, hashed := range []bool{false, true} {
			for _, versioned := range []bool{false, true} {
				name := fmt.Sprintf("compressed=%v hashed=%v versioned=%v",
					compressed, hashed, versioned)
				t.Run(name, func(t *testing.T) {
					cfg := DefaultConfig()
					cfg.Compressed = compressed
					cfg.StringPropertyNames = hashed
					cfg.Versioned = versioned
					cfg.Version = 7

					data, err := Encode(in, reg, cfg)
					if err != nil {
						t.Fatalf("Encode: %v", err)
					}

					// Decode with the default config: the wire header alone
					// must carry everything needed to reverse the encode.
					out, hdr, err := DecodeWithHeader(data, reg, DefaultConfig())
					if err != nil {
						t.Fatalf("Decode: %v", err)
					}
					if !out.Equal(in) {
						t.Fatalf("round trip changed the tree\n in %v\nout %v",
							in.Interface(), out.Interface())
					}
					if hdr.Compressed != compressed || hdr.StringPropertyNames != hashed {
						t.Fatalf("header = %+v", hdr)
					}
					if versioned && hdr.Version != 7 {
						t.Fatalf("version = %d, want 7", hdr.Version)
					}
				})
			}
		}
	}
}

func TestRoundTripNullRoot(t *testing.T) {
	reg := testRegistry(t)

	data, err := Encode(Null(), reg, DefaultConfig())
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	v, err := Decode(data, reg, DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !v.IsNull() {
		t.Fatalf("expected null, got %s", v.Kind())
	}
}

// Re-encoding a decoded tree and decoding again must be a fixed point,
// including for blobs carrying deprecated properties.
func TestDecodeEncodeDecodeStable(t *testing.T) {
	reg := testRegistry(t)

	first, err := Decode(itemWire(), reg, DefaultConfig())
	if err != nil {
		t.Fatalf("first decode: %v", err)
	}
	data, err := Encode(first, reg, DefaultConfig())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Decode(data, reg, DefaultConfig())
	if err != nil {
		t.Fatalf("second decode: %v", err)
	}
	if !second.Equal(first) {
		t.Fatalf("trees diverged\nfirst  %v\nsecond %v",
			first.Interface(), second.Interface())
	}
}

func TestRoundTripCompressedLargePayload(t *testing.T) {
	reg := testRegistry(t)

	payload := make([]byte, 64<<10)
	for i := range payload {
		payload[i] = byte(i % 7)
	}
	in := NewObject(itemTypeID,
		Field{Name: "id", Value: U32(1)},
		Field{Name: "name", Value: String("bulk")},
		Field{Name: "title", Value: String("")},
		Field{Name: "rarity", Value: Enum(0, "COMMON")},
		Field{Name: "tags", Value: List(nil)},
		Field{Name: "position", Value: Null()},
		Field{Name: "payload", Value: Bytes(payload)},
		Field{Name: "legacy", Value: Null()},
	)

	cfg := DefaultConfig()
	cfg.Compressed = true

	data, err := Encode(in, reg, cfg)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if len(data) >= len(payload) {
		t.Fatalf("repetitive payload did not compress: %d bytes", len(data))
	}

	out, err := Decode(data, reg, DefaultConfig())
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !out.Equal(in) {
		t.Fatal("round trip changed the tree")
	}
}
