package wasm

import "errors"

var (
	// Decode-time errors. Any of these rejects the whole input; no partial
	// Module is ever produced.
	ErrInvalidMagicNumber = errors.New("invalid magic number")
	ErrInvalidVersion     = errors.New("invalid version header")
	ErrInvalidByte        = errors.New("invalid byte")
	ErrInvalidSectionID   = errors.New("invalid section id")
	ErrUnsupportedSection = errors.New("unsupported section")

	// Construction-time errors. The store is all-or-nothing.
	ErrTypeNotFound = errors.New("function type not found")

	// Execution-time errors. Any of these wipes the engine state; the
	// instance must be re-instantiated before further calls.
	ErrExportNotFound  = errors.New("export not found")
	ErrFuncNotFound    = errors.New("function not found")
	ErrLocalNotFound   = errors.New("local not found")
	ErrStackUnderflow  = errors.New("stack underflow")
	ErrNoReturnValue   = errors.New("no return value")
	ErrRuntimeUnusable = errors.New("runtime is unusable after a failed call")
)
