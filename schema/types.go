package schema

import "strings"

// TypeKind identifies the wire encoding rule for a declared property type.
type TypeKind uint8

const (
	KindBool TypeKind = iota
	KindI8
	KindU8
	KindI16
	KindU16
	KindI32
	KindU32
	KindI64
	KindU64
	KindF32
	KindF64
	KindStr    // u16 length prefix, single-byte characters
	KindWStr   // u32 character count, UTF-16LE payload
	KindEnum   // u32 on the wire, sign-extended to i64
	KindList   // u32 element count, homogeneous elements
	KindObject // u32 nested type id, 0 means null
	KindBytes  // u32 length prefix, opaque payload
)

var kindNames = [...]string{
	KindBool:   "bool",
	KindI8:     "i8",
	KindU8:     "u8",
	KindI16:    "i16",
	KindU16:    "u16",
	KindI32:    "i32",
	KindU32:    "u32",
	KindI64:    "i64",
	KindU64:    "u64",
	KindF32:    "f32",
	KindF64:    "f64",
	KindStr:    "string",
	KindWStr:   "wstring",
	KindEnum:   "enum",
	KindList:   "list",
	KindObject: "object",
	KindBytes:  "bytes",
}

func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// TypeSpec is the resolved declared type of a property. For lists Elem
// describes the element type; for enums EnumName/EnumID reference the
// enum definition in the registry.
type TypeSpec struct {
	Elem     *TypeSpec
	EnumName string
	EnumID   uint32
	Kind     TypeKind
}

func (t TypeSpec) String() string {
	switch t.Kind {
	case KindList:
		if t.Elem != nil {
			return "list<" + t.Elem.String() + ">"
		}
		return "list"
	case KindEnum:
		if t.EnumName != "" {
			return "enum " + t.EnumName
		}
		return "enum"
	default:
		return t.Kind.String()
	}
}

// PropertyFlags is the bitset of behavioral markers on a property.
type PropertyFlags uint32

const (
	// FlagDeprecated properties are still read to keep the cursor
	// aligned, but coalesce to null in the decoded tree.
	FlagDeprecated PropertyFlags = 1 << iota
	// FlagTransient properties exist in the schema for documentation
	// only and never appear on the wire.
	FlagTransient
	// FlagDynamic marks variable-count container properties.
	FlagDynamic
)

// Has reports whether all bits in f are set.
func (p PropertyFlags) Has(f PropertyFlags) bool {
	return p&f == f
}

func (p PropertyFlags) String() string {
	var parts []string
	if p.Has(FlagDeprecated) {
		parts = append(parts, "DEPRECATED")
	}
	if p.Has(FlagTransient) {
		parts = append(parts, "TRANSIENT")
	}
	if p.Has(FlagDynamic) {
		parts = append(parts, "DYNAMIC")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, "|")
}

// PropertyDef is one named, typed field within a class layout.
type PropertyDef struct {
	Name  string
	Hash  uint32
	Type  TypeSpec
	Flags PropertyFlags
}

// ClassDef is an ordered property layout for one type id. Property
// order is the wire order and is fixed at schema-load time.
type ClassDef struct {
	Name       string
	TypeID     uint32
	Properties []PropertyDef
}

// EnumOption is a single symbolic value of an enum definition.
type EnumOption struct {
	Name  string
	Value int64
}

// EnumDef maps integer values of one enum to symbolic names, in
// schema order.
type EnumDef struct {
	Name    string
	ID      uint32
	Options []EnumOption
}
