// Package objectprop provides a schema-driven codec for the binary
// ObjectProperty serialization format used by game-engine object
// graphs. Type layouts are not compiled in: a registry of class and
// enum definitions is loaded at runtime and drives both decoding and
// encoding.
//
// # Architecture Overview
//
// The module is organized into a few packages with distinct
// responsibilities:
//
//	objectprop/          Root package documentation
//	├── op/              The codec: decode and encode against a registry
//	├── schema/          Type list loading, class layouts, enum tables
//	├── errors/          Structured error types for diagnostics
//	└── cmd/opdump/      CLI for inspecting serialized object files
//
// # Quick Start
//
// Load a type list and decode a serialized blob:
//
//	reg, err := schema.LoadFile("types.json")
//	if err != nil {
//		return err
//	}
//	value, err := op.Decode(data, reg, op.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	fmt.Println(value.Interface())
//
// Encoding reverses the process from a value tree built with the op
// package constructors:
//
//	data, err := op.Encode(value, reg, op.DefaultConfig())
//
// Decoding is safe on untrusted input: length prefixes are bounded
// before allocation and object nesting is capped by a configurable
// depth limit.
package objectprop
