package schema

// HashName computes the 32-bit identifier used for class, property and
// enum names when the type list does not carry precomputed hashes
// (djb2 over the raw bytes of the name). Hashes supplied by the type
// list always take precedence; this exists so hand-written schemas can
// omit them.
func HashName(name string) uint32 {
	h := uint32(5381)
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(name[i])
	}
	return h
}
