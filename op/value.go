package op

import (
	"bytes"
	"math"
)

// Kind tags the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindI8
	KindI16
	KindI32
	KindI64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindString
	KindBytes
	KindEnum
	KindList
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "bool",
	KindI8:     "i8",
	KindI16:    "i16",
	KindI32:    "i32",
	KindI64:    "i64",
	KindU8:     "u8",
	KindU16:    "u16",
	KindU32:    "u32",
	KindU64:    "u64",
	KindF32:    "f32",
	KindF64:    "f64",
	KindString: "string",
	KindBytes:  "bytes",
	KindEnum:   "enum",
	KindList:   "list",
	KindObject: "object",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Value is the tagged-variant representation of a decoded value. A
// decoded tree is a strict tree: values never share children and carry
// no reference back to the registry or the input stream.
type Value struct {
	obj  *Object
	str  string
	raw  []byte
	list []Value
	num  uint64
	kind Kind
}

// Object is the decoded form of one class instance: its type id and
// its non-skipped properties in schema order.
type Object struct {
	TypeID uint32
	Fields []Field
}

// Field is one named property value within an Object.
type Field struct {
	Name  string
	Value Value
}

// Get returns the field with the given name.
func (o *Object) Get(name string) (Value, bool) {
	for _, f := range o.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Constructors

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool constructs a boolean value.
func Bool(v bool) Value {
	var n uint64
	if v {
		n = 1
	}
	return Value{kind: KindBool, num: n}
}

// I8 constructs a signed 8-bit integer value.
func I8(v int8) Value { return Value{kind: KindI8, num: uint64(int64(v))} }

// I16 constructs a signed 16-bit integer value.
func I16(v int16) Value { return Value{kind: KindI16, num: uint64(int64(v))} }

// I32 constructs a signed 32-bit integer value.
func I32(v int32) Value { return Value{kind: KindI32, num: uint64(int64(v))} }

// I64 constructs a signed 64-bit integer value.
func I64(v int64) Value { return Value{kind: KindI64, num: uint64(v)} }

// U8 constructs an unsigned 8-bit integer value.
func U8(v uint8) Value { return Value{kind: KindU8, num: uint64(v)} }

// U16 constructs an unsigned 16-bit integer value.
func U16(v uint16) Value { return Value{kind: KindU16, num: uint64(v)} }

// U32 constructs an unsigned 32-bit integer value.
func U32(v uint32) Value { return Value{kind: KindU32, num: uint64(v)} }

// U64 constructs an unsigned 64-bit integer value.
func U64(v uint64) Value { return Value{kind: KindU64, num: v} }

// F32 constructs a 32-bit float value.
func F32(v float32) Value {
	return Value{kind: KindF32, num: uint64(math.Float32bits(v))}
}

// F64 constructs a 64-bit float value.
func F64(v float64) Value {
	return Value{kind: KindF64, num: math.Float64bits(v)}
}

// String constructs a text value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Bytes constructs a raw byte blob value. The slice is not copied.
func Bytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// Enum constructs an enum value from its raw integer and an optional
// resolved symbol (empty when the raw value is absent from the schema).
func Enum(raw int64, symbol string) Value {
	return Value{kind: KindEnum, num: uint64(raw), str: symbol}
}

// List constructs an ordered sequence value. The slice is not copied.
func List(elems []Value) Value { return Value{kind: KindList, list: elems} }

// NewObject constructs an object value with fields in schema order.
func NewObject(typeID uint32, fields ...Field) Value {
	return Value{kind: KindObject, obj: &Object{TypeID: typeID, Fields: fields}}
}

// Accessors

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() bool { return v.num != 0 }

// AsInt returns the signed integer payload of I8..I64 and Enum values.
func (v Value) AsInt() int64 { return int64(v.num) }

// AsUint returns the unsigned integer payload of U8..U64 values.
func (v Value) AsUint() uint64 { return v.num }

// AsFloat returns the float payload of F32 and F64 values.
func (v Value) AsFloat() float64 {
	if v.kind == KindF32 {
		return float64(math.Float32frombits(uint32(v.num)))
	}
	return math.Float64frombits(v.num)
}

// AsString returns the text payload.
func (v Value) AsString() string { return v.str }

// AsBytes returns the raw blob payload. Callers must not modify it.
func (v Value) AsBytes() []byte { return v.raw }

// AsEnum returns the raw enum value and its resolved symbol; symbol is
// empty when the raw value did not resolve against the schema.
func (v Value) AsEnum() (raw int64, symbol string) {
	return int64(v.num), v.str
}

// AsList returns the element slice. Callers must not modify it.
func (v Value) AsList() []Value { return v.list }

// AsObject returns the object payload, or nil for non-object values.
func (v Value) AsObject() *Object { return v.obj }

// Equal reports structural equality. Float payloads compare by bit
// pattern, so equal trees round-trip through the codec bit-exactly.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindString:
		return v.str == other.str
	case KindEnum:
		return v.num == other.num && v.str == other.str
	case KindBytes:
		return bytes.Equal(v.raw, other.raw)
	case KindList:
		if len(v.list) != len(other.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		a, b := v.obj, other.obj
		if a.TypeID != b.TypeID || len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
			if !a.Fields[i].Value.Equal(b.Fields[i].Value) {
				return false
			}
		}
		return true
	default:
		return v.num == other.num
	}
}

// Interface converts the value tree into plain Go values (nil, bool,
// int64, uint64, float64, string, []byte, []any, map[string]any) for
// rendering. Enums become their symbol when resolved, their raw value
// otherwise. Object field order is lost in the map representation.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.AsBool()
	case KindI8, KindI16, KindI32, KindI64:
		return v.AsInt()
	case KindU8, KindU16, KindU32, KindU64:
		return v.AsUint()
	case KindF32, KindF64:
		return v.AsFloat()
	case KindString:
		return v.str
	case KindBytes:
		return v.raw
	case KindEnum:
		if v.str != "" {
			return v.str
		}
		return int64(v.num)
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindObject:
		out := make(map[string]any, len(v.obj.Fields))
		for _, f := range v.obj.Fields {
			out[f.Name] = f.Value.Interface()
		}
		return out
	default:
		return nil
	}
}
