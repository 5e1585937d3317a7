package op

// Leading flags byte of every serialized blob. The wire is
// authoritative: these bits override the caller-supplied WireConfig
// for the call, so the presence of compression and versioning is
// always self-describing.
const (
	flagCompressed          = 1 << 0
	flagStringPropertyNames = 1 << 1
	flagVersioned           = 1 << 2
)

// Allocation guards applied to wire length prefixes before any buffer
// is allocated, so adversarial inputs cannot force huge allocations
// out of a few bytes.
const (
	MaxStringLen   = 16 << 20  // characters per string
	MaxListLen     = 1 << 20   // elements per list
	MaxBlobLen     = 256 << 20 // bytes per raw blob
	MaxInflatedLen = 1 << 30   // bytes per decompressed body
)

// DefaultMaxDepth is the recursion ceiling applied when WireConfig
// leaves MaxDepth zero.
const DefaultMaxDepth = 64

// WireConfig describes per-call wire behavior. It is immutable from
// the codec's point of view: the same config value may drive many
// concurrent calls.
type WireConfig struct {
	// Compressed wraps the body in a DEFLATE stream preceded by the
	// true inflated length (encode side; on decode the header bit wins).
	Compressed bool
	// StringPropertyNames prefixes every property with its 32-bit name
	// hash, trading wire size for resilience to property reordering.
	StringPropertyNames bool
	// Versioned writes an advisory u32 version tag ahead of the root.
	Versioned bool
	// Version is the tag written when Versioned is set.
	Version uint32
	// MaxDepth bounds object nesting; zero means DefaultMaxDepth.
	MaxDepth int
	// StrictTrailing fails the decode when unconsumed bytes remain
	// after the root object instead of ignoring them.
	StrictTrailing bool
	// FillDefaults makes encode synthesize zero values for schema
	// properties missing from the input tree instead of failing with
	// an incomplete-object error.
	FillDefaults bool
}

// DefaultConfig returns the wire behavior used when callers have no
// out-of-band knowledge: plain body, positional properties, strict
// trailing-data handling.
func DefaultConfig() WireConfig {
	return WireConfig{
		MaxDepth:       DefaultMaxDepth,
		StrictTrailing: true,
	}
}

func (c WireConfig) maxDepth() int {
	if c.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return c.MaxDepth
}

// Header reports what the leading flags byte declared for a decoded
// blob, plus the version tag when one was present.
type Header struct {
	Compressed          bool
	StringPropertyNames bool
	Versioned           bool
	Version             uint32
}
