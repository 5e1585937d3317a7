// Package op implements the binary object-property codec: decoding
// serialized object graphs into value trees against a runtime-loaded
// schema registry, and encoding such trees back to the wire.
//
// The wire format is self-describing at the envelope level only. A
// leading flags byte declares compression, property-name hashing and
// the presence of a version tag; everything past the envelope is
// positional and meaningful only relative to the schema, so a decode
// error anywhere aborts the whole call.
//
// All length prefixes are validated against allocation guards before
// buffers are sized from them, and object nesting is bounded by a
// configurable depth ceiling, so untrusted inputs cannot force large
// allocations or unbounded recursion.
package op
