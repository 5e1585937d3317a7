package op

import (
	"strconv"
	"unicode/utf16"

	"github.com/veilstone/objectprop/errors"
	"github.com/veilstone/objectprop/schema"
)

// decodeValue reads one value of the declared wire type at the current
// cursor. Length prefixes are checked against the allocation guards
// before any buffer is sized from them.
func (d *decoder) decodeValue(ts schema.TypeSpec) (Value, error) {
	switch ts.Kind {
	case schema.KindBool:
		v, err := d.r.ReadBool()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return Bool(v), nil

	case schema.KindI8:
		v, err := d.r.ReadU8()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return I8(int8(v)), nil

	case schema.KindI16:
		v, err := d.r.ReadU16()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return I16(int16(v)), nil

	case schema.KindI32:
		v, err := d.r.ReadU32()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return I32(int32(v)), nil

	case schema.KindI64:
		v, err := d.r.ReadU64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return I64(int64(v)), nil

	case schema.KindU8:
		v, err := d.r.ReadU8()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return U8(v), nil

	case schema.KindU16:
		v, err := d.r.ReadU16()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return U16(v), nil

	case schema.KindU32:
		v, err := d.r.ReadU32()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return U32(v), nil

	case schema.KindU64:
		v, err := d.r.ReadU64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return U64(v), nil

	case schema.KindF32:
		v, err := d.r.ReadF32()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return F32(v), nil

	case schema.KindF64:
		v, err := d.r.ReadF64()
		if err != nil {
			return Value{}, d.fail(err)
		}
		return F64(v), nil

	case schema.KindStr:
		return d.decodeNarrowString()

	case schema.KindWStr:
		return d.decodeWideString()

	case schema.KindEnum:
		raw, err := d.r.ReadU32()
		if err != nil {
			return Value{}, d.fail(err)
		}
		// Sign-extend through int32: enum options may be negative.
		value := int64(int32(raw))
		symbol, _ := d.reg.EnumSymbol(ts.EnumID, value)
		return Enum(value, symbol), nil

	case schema.KindList:
		return d.decodeList(ts)

	case schema.KindObject:
		return d.decodeNested()

	case schema.KindBytes:
		return d.decodeBlob()

	default:
		return Value{}, errors.InvalidData(errors.PhaseDecode, d.errorPath(),
			"unhandled wire type "+ts.String())
	}
}

func (d *decoder) decodeNarrowString() (Value, error) {
	n, err := d.r.ReadU16()
	if err != nil {
		return Value{}, d.fail(err)
	}
	b, err := d.r.ReadBytes(int(n))
	if err != nil {
		return Value{}, d.fail(err)
	}
	return String(string(b)), nil
}

func (d *decoder) decodeWideString() (Value, error) {
	n, err := d.r.ReadU32()
	if err != nil {
		return Value{}, d.fail(err)
	}
	if n > MaxStringLen {
		return Value{}, errors.Overflow(errors.PhaseDecode, d.errorPath(), "wide string", n, MaxStringLen)
	}
	b, err := d.r.ReadBytes(int(n) * 2)
	if err != nil {
		return Value{}, d.fail(err)
	}
	units := make([]uint16, n)
	for i := range units {
		units[i] = uint16(b[2*i]) | uint16(b[2*i+1])<<8
	}
	return String(string(utf16.Decode(units))), nil
}

func (d *decoder) decodeList(ts schema.TypeSpec) (Value, error) {
	n, err := d.r.ReadU32()
	if err != nil {
		return Value{}, d.fail(err)
	}
	if n > MaxListLen {
		return Value{}, errors.Overflow(errors.PhaseDecode, d.errorPath(), "list", n, MaxListLen)
	}
	if ts.Elem == nil {
		return Value{}, errors.InvalidData(errors.PhaseDecode, d.errorPath(), "list type without element")
	}

	elems := make([]Value, 0, n)
	for i := uint32(0); i < n; i++ {
		d.path = append(d.path, "["+strconv.FormatUint(uint64(i), 10)+"]")
		v, err := d.decodeValue(*ts.Elem)
		if err != nil {
			return Value{}, err
		}
		d.path = d.path[:len(d.path)-1]
		elems = append(elems, v)
	}
	return List(elems), nil
}

// decodeNested reads a nested object reference: a u32 type id followed
// by the object body. A zero id is a null reference and consumes
// nothing past the id itself.
func (d *decoder) decodeNested() (Value, error) {
	id, err := d.r.ReadU32()
	if err != nil {
		return Value{}, d.fail(err)
	}
	if id == 0 {
		return Null(), nil
	}
	class, ok := d.reg.LookupClass(id)
	if !ok {
		return Value{}, errors.UnknownType(errors.PhaseDecode, d.errorPath(), id)
	}
	return d.decodeObjectBody(class)
}

func (d *decoder) decodeBlob() (Value, error) {
	n, err := d.r.ReadU32()
	if err != nil {
		return Value{}, d.fail(err)
	}
	if n > MaxBlobLen {
		return Value{}, errors.Overflow(errors.PhaseDecode, d.errorPath(), "blob", n, MaxBlobLen)
	}
	b, err := d.r.ReadBytes(int(n))
	if err != nil {
		return Value{}, d.fail(err)
	}
	return Bytes(append([]byte(nil), b...)), nil
}

// encodeValue writes one value under the declared wire type. The value
// kind must match the declaration exactly; the codec never coerces
// between widths or signedness.
func (e *encoder) encodeValue(ts schema.TypeSpec, v Value) error {
	if !kindMatches(ts.Kind, v.Kind()) {
		return errors.TypeMismatch(e.errorPath(), ts.String(), v.Kind().String())
	}

	switch ts.Kind {
	case schema.KindBool:
		e.w.WriteBool(v.AsBool())
	case schema.KindI8:
		e.w.WriteU8(uint8(v.AsInt()))
	case schema.KindI16:
		e.w.WriteU16(uint16(v.AsInt()))
	case schema.KindI32:
		e.w.WriteU32(uint32(v.AsInt()))
	case schema.KindI64:
		e.w.WriteU64(uint64(v.AsInt()))
	case schema.KindU8:
		e.w.WriteU8(uint8(v.AsUint()))
	case schema.KindU16:
		e.w.WriteU16(uint16(v.AsUint()))
	case schema.KindU32:
		e.w.WriteU32(uint32(v.AsUint()))
	case schema.KindU64:
		e.w.WriteU64(v.AsUint())
	case schema.KindF32:
		e.w.WriteF32(float32(v.AsFloat()))
	case schema.KindF64:
		e.w.WriteF64(v.AsFloat())

	case schema.KindStr:
		s := v.AsString()
		if len(s) > 0xFFFF {
			return errors.Overflow(errors.PhaseEncode, e.errorPath(), "string", uint32(len(s)), 0xFFFF)
		}
		e.w.WriteU16(uint16(len(s)))
		e.w.WriteBytes([]byte(s))

	case schema.KindWStr:
		units := utf16.Encode([]rune(v.AsString()))
		if len(units) > MaxStringLen {
			return errors.Overflow(errors.PhaseEncode, e.errorPath(), "wide string", uint32(len(units)), MaxStringLen)
		}
		e.w.WriteU32(uint32(len(units)))
		for _, u := range units {
			e.w.WriteU16(u)
		}

	case schema.KindEnum:
		raw, _ := v.AsEnum()
		e.w.WriteU32(uint32(raw))

	case schema.KindList:
		if ts.Elem == nil {
			return errors.InvalidData(errors.PhaseEncode, e.errorPath(), "list type without element")
		}
		elems := v.AsList()
		if len(elems) > MaxListLen {
			return errors.Overflow(errors.PhaseEncode, e.errorPath(), "list", uint32(len(elems)), MaxListLen)
		}
		e.w.WriteU32(uint32(len(elems)))
		for i, elem := range elems {
			e.path = append(e.path, "["+strconv.Itoa(i)+"]")
			if err := e.encodeValue(*ts.Elem, elem); err != nil {
				return err
			}
			e.path = e.path[:len(e.path)-1]
		}

	case schema.KindObject:
		return e.encodeObjectRef(v)

	case schema.KindBytes:
		b := v.AsBytes()
		if len(b) > MaxBlobLen {
			return errors.Overflow(errors.PhaseEncode, e.errorPath(), "blob", uint32(len(b)), MaxBlobLen)
		}
		e.w.WriteU32(uint32(len(b)))
		e.w.WriteBytes(b)

	default:
		return errors.InvalidData(errors.PhaseEncode, e.errorPath(),
			"unhandled wire type "+ts.String())
	}
	return nil
}

// kindMatches maps each wire type to the single value kind it accepts.
// Object declarations additionally accept null references.
func kindMatches(ts schema.TypeKind, k Kind) bool {
	switch ts {
	case schema.KindBool:
		return k == KindBool
	case schema.KindI8:
		return k == KindI8
	case schema.KindI16:
		return k == KindI16
	case schema.KindI32:
		return k == KindI32
	case schema.KindI64:
		return k == KindI64
	case schema.KindU8:
		return k == KindU8
	case schema.KindU16:
		return k == KindU16
	case schema.KindU32:
		return k == KindU32
	case schema.KindU64:
		return k == KindU64
	case schema.KindF32:
		return k == KindF32
	case schema.KindF64:
		return k == KindF64
	case schema.KindStr, schema.KindWStr:
		return k == KindString
	case schema.KindEnum:
		return k == KindEnum
	case schema.KindList:
		return k == KindList
	case schema.KindObject:
		return k == KindObject || k == KindNull
	case schema.KindBytes:
		return k == KindBytes
	default:
		return false
	}
}

// zeroValue builds the wire zero for a declared type. Encode uses it
// for deprecated properties and, under FillDefaults, for properties
// missing from the input tree.
func zeroValue(ts schema.TypeSpec) Value {
	switch ts.Kind {
	case schema.KindBool:
		return Bool(false)
	case schema.KindI8:
		return I8(0)
	case schema.KindI16:
		return I16(0)
	case schema.KindI32:
		return I32(0)
	case schema.KindI64:
		return I64(0)
	case schema.KindU8:
		return U8(0)
	case schema.KindU16:
		return U16(0)
	case schema.KindU32:
		return U32(0)
	case schema.KindU64:
		return U64(0)
	case schema.KindF32:
		return F32(0)
	case schema.KindF64:
		return F64(0)
	case schema.KindStr, schema.KindWStr:
		return String("")
	case schema.KindEnum:
		return Enum(0, "")
	case schema.KindList:
		return List(nil)
	case schema.KindObject:
		return Null()
	case schema.KindBytes:
		return Bytes(nil)
	default:
		return Null()
	}
}
