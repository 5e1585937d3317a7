// Package schema models the externally supplied type list that drives
// ObjectProperty decoding: class layouts with ordered property lists,
// enum value maps, and the declared-type grammar used by game type
// lists.
//
// The central type is Registry, an immutable index from numeric type
// identifier to class layout. A Registry is constructed once, from a
// parsed schema description or from a JSON/YAML type list file, and may
// then be shared read-only across any number of concurrent decode and
// encode calls:
//
//	reg, err := schema.LoadFile("types.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	class, ok := reg.LookupClass(0x3D5E5EAF)
//
// Declared property types use the C++ spellings found in game type
// lists ("unsigned int", "std::string", "std::vector<class Foo*>");
// ParseTypeName resolves them into TypeSpec values. Property order
// within a class is the wire order and is never reordered.
package schema
