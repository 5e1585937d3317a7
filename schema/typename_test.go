package schema

import (
	"testing"
)

func TestParseTypeName(t *testing.T) {
	tests := []struct {
		in   string
		want string // TypeSpec.String()
	}{
		{"bool", "bool"},
		{"char", "i8"},
		{"unsigned char", "u8"},
		{"short", "i16"},
		{"unsigned short", "u16"},
		{"wchar_t", "u16"},
		{"int", "i32"},
		{"long", "i32"},
		{"unsigned int", "u32"},
		{"unsigned long", "u32"},
		{"__int64", "i64"},
		{"unsigned __int64", "u64"},
		{"gid", "u64"},
		{"union gid", "u64"},
		{"float", "f32"},
		{"double", "f64"},
		{"std::string", "string"},
		{"char*", "string"},
		{"std::wstring", "wstring"},
		{"wchar_t*", "wstring"},
		{"blob", "bytes"},
		{"enum eDuelPhase", "enum eDuelPhase"},
		{"class WizItemTemplate*", "object"},
		{"class WizItemTemplate", "object"},
		{"struct Color", "object"},
		{"std::vector<unsigned int>", "list<u32>"},
		{"class std::vector<class Foo*>", "list<object>"},
		{"std::vector<std::vector<int>>", "list<list<i32>>"},
		{"std::vector<enum eDuelPhase>", "list<enum eDuelPhase>"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			spec, err := ParseTypeName(tt.in)
			if err != nil {
				t.Fatalf("ParseTypeName(%q): %v", tt.in, err)
			}
			if got := spec.String(); got != tt.want {
				t.Errorf("ParseTypeName(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTypeNameRejects(t *testing.T) {
	for _, in := range []string{"", "   ", "std::map<int,int>", "enum ", "madeup"} {
		if _, err := ParseTypeName(in); err == nil {
			t.Errorf("ParseTypeName(%q): expected error", in)
		}
	}
}

func TestHashNameStable(t *testing.T) {
	// djb2 reference values.
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 5381},
		{"a", 5381*33 + 'a'},
	}
	for _, tt := range tests {
		if got := HashName(tt.in); got != tt.want {
			t.Errorf("HashName(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
	if HashName("m_name") == HashName("m_hash") {
		t.Error("distinct names should not trivially collide")
	}
}
