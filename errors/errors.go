package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema Phase = "schema" // type list loading and registry construction
	PhaseDecode Phase = "decode" // wire bytes to value tree
	PhaseEncode Phase = "encode" // value tree to wire bytes
)

// Kind categorizes the error
type Kind string

const (
	KindUnexpectedEOF    Kind = "unexpected_eof"
	KindUnknownType      Kind = "unknown_type"
	KindNameMismatch     Kind = "name_mismatch"
	KindDepthExceeded    Kind = "depth_exceeded"
	KindTrailingData     Kind = "trailing_data"
	KindCompression      Kind = "compression"
	KindIncompleteObject Kind = "incomplete_object"
	KindTypeMismatch     Kind = "type_mismatch"
	KindOverflow         Kind = "overflow"
	KindInvalidData      Kind = "invalid_data"
	KindSchema           Kind = "schema"
)

// Error is the structured error type used throughout the codec.
// Path holds the class/property names leading to the failure point,
// so callers can report exactly where a blob diverged from its schema.
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	TypeID uint32
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.TypeID != 0 {
		fmt.Fprintf(&b, ": type 0x%08X", e.TypeID)
	}

	if e.Detail != "" {
		if e.TypeID != 0 {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the property path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// TypeID sets the offending type identifier
func (b *Builder) TypeID(id uint32) *Builder {
	b.err.TypeID = id
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UnexpectedEOF creates a stream-exhausted error at the given position.
func UnexpectedEOF(phase Phase, path []string, pos int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnexpectedEOF,
		Path:   path,
		Detail: fmt.Sprintf("stream exhausted at offset %d", pos),
		Value:  pos,
	}
}

// UnknownType creates an error for a type id absent from the registry.
func UnknownType(phase Phase, path []string, id uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownType,
		Path:   path,
		TypeID: id,
		Detail: "type id not present in registry",
		Value:  id,
	}
}

// NameMismatch creates a hashed-name integrity failure.
func NameMismatch(path []string, want, got uint32) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindNameMismatch,
		Path:   path,
		Detail: fmt.Sprintf("property name hash 0x%08X on wire, schema expects 0x%08X", got, want),
		Value:  got,
	}
}

// DepthExceeded creates a recursion ceiling error.
func DepthExceeded(phase Phase, path []string, limit int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindDepthExceeded,
		Path:   path,
		Detail: fmt.Sprintf("object nesting exceeds max depth %d", limit),
		Value:  limit,
	}
}

// TrailingData creates an unconsumed-bytes error.
func TrailingData(path []string, remaining int) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindTrailingData,
		Path:   path,
		Detail: fmt.Sprintf("%d unconsumed byte(s) after last property", remaining),
		Value:  remaining,
	}
}

// Compression creates a compression integrity error.
func Compression(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseDecode,
		Kind:   KindCompression,
		Detail: detail,
		Cause:  cause,
	}
}

// IncompleteObject creates an encode-time missing field error.
func IncompleteObject(path []string, field string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindIncompleteObject,
		Path:   path,
		Detail: fmt.Sprintf("schema property %q missing from value tree", field),
	}
}

// TypeMismatch creates an encode-time declared/actual kind conflict.
func TypeMismatch(path []string, declared, actual string) *Error {
	return &Error{
		Phase:  PhaseEncode,
		Kind:   KindTypeMismatch,
		Path:   path,
		Detail: fmt.Sprintf("declared type %s, value is %s", declared, actual),
	}
}

// Overflow creates a length-guard error for oversized prefixes.
func Overflow(phase Phase, path []string, what string, n, max uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOverflow,
		Path:   path,
		Detail: fmt.Sprintf("%s length %d exceeds maximum %d", what, n, max),
		Value:  n,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
		Detail: detail,
	}
}

// Schema creates a registry construction failure.
func Schema(detail string, args ...any) *Error {
	if len(args) > 0 {
		detail = fmt.Sprintf(detail, args...)
	}
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindSchema,
		Detail: detail,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
