package schema

import (
	"strings"

	"github.com/veilstone/objectprop/errors"
)

// simpleTypes maps the C++ spellings found in game type lists to wire
// kinds. Multiple spellings of the same width collapse to one kind.
var simpleTypes = map[string]TypeKind{
	"bool": KindBool,

	"char":             KindI8,
	"unsigned char":    KindU8,
	"short":            KindI16,
	"unsigned short":   KindU16,
	"wchar_t":          KindU16,
	"int":              KindI32,
	"long":             KindI32,
	"unsigned int":     KindU32,
	"unsigned long":    KindU32,
	"__int64":          KindI64,
	"unsigned __int64": KindU64,
	"gid":              KindU64,
	"union gid":        KindU64,

	"float":  KindF32,
	"double": KindF64,

	"std::string":  KindStr,
	"char*":        KindStr,
	"std::wstring": KindWStr,
	"wchar_t*":     KindWStr,

	"blob": KindBytes,
}

// ParseTypeName resolves a declared type string from a type list into a
// TypeSpec. Recognized forms:
//
//	bool, int, unsigned int, float, ...   primitives (C++ spellings)
//	std::string, std::wstring             narrow/wide strings
//	blob                                  opaque byte payload
//	enum SomeEnum                         enum reference
//	std::vector<T>                        homogeneous list of T
//	class Foo, class Foo*, struct Foo     nested object reference
//
// Enum references are left unresolved (EnumID zero); the registry binds
// them to enum definitions by name during construction.
func ParseTypeName(s string) (TypeSpec, error) {
	name := strings.TrimSpace(s)
	if name == "" {
		return TypeSpec{}, errors.Schema("empty type name")
	}

	if k, ok := simpleTypes[name]; ok {
		return TypeSpec{Kind: k}, nil
	}

	if inner, ok := vectorArgument(name); ok {
		elem, err := ParseTypeName(inner)
		if err != nil {
			return TypeSpec{}, err
		}
		return TypeSpec{Kind: KindList, Elem: &elem}, nil
	}

	if rest, ok := strings.CutPrefix(name, "enum "); ok {
		enumName := strings.TrimSpace(rest)
		if enumName == "" {
			return TypeSpec{}, errors.Schema("enum type %q missing enum name", s)
		}
		return TypeSpec{Kind: KindEnum, EnumName: enumName}, nil
	}

	// Class and struct references decode as nested objects. A trailing
	// pointer marker is the common spelling; the bare form appears in
	// older type lists.
	if strings.HasPrefix(name, "class ") || strings.HasPrefix(name, "struct ") || strings.HasSuffix(name, "*") {
		return TypeSpec{Kind: KindObject}, nil
	}

	return TypeSpec{}, errors.Schema("unrecognized type name %q", s)
}

// vectorArgument extracts T from std::vector<T> (optionally spelled
// with a leading "class "). Nested templates keep their full argument.
func vectorArgument(name string) (string, bool) {
	name = strings.TrimPrefix(name, "class ")
	if !strings.HasPrefix(name, "std::vector<") {
		return "", false
	}
	inner, ok := strings.CutSuffix(name[len("std::vector<"):], ">")
	if !ok {
		return "", false
	}
	return inner, true
}
