// Package errors provides structured error types for the objectprop codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the property path at the point of failure,
// so callers can report exactly where a blob diverged from its schema.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindUnknownType).
//		Path("class WizItemTemplate", "m_behaviors").
//		TypeID(0xDEADBEEF).
//		Detail("nested object references unregistered type").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownType(errors.PhaseDecode, path, 0xDEADBEEF)
//	err := errors.TrailingData(path, 3)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
