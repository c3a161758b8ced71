package minwasm

import (
	"github.com/minwasm/minwasm/api"
	"github.com/minwasm/minwasm/internal/wasm"
)

// Sentinel errors embedders can match with errors.Is.
var (
	// ErrInvalidMagicNumber rejects input that does not start with "\0asm".
	ErrInvalidMagicNumber = wasm.ErrInvalidMagicNumber
	// ErrUnsupportedSection rejects sections of the full format this subset
	// does not implement.
	ErrUnsupportedSection = wasm.ErrUnsupportedSection
	// ErrInvalidSectionID rejects section codes outside the format.
	ErrInvalidSectionID = wasm.ErrInvalidSectionID
	// ErrInvalidVersion rejects headers whose version field is malformed.
	ErrInvalidVersion = wasm.ErrInvalidVersion
	// ErrInvalidByte rejects a byte that is invalid where it appears, such as
	// an unknown opcode or export kind.
	ErrInvalidByte = wasm.ErrInvalidByte
	// ErrTypeNotFound means a function declared a type index with no matching
	// type, or had no code body at all.
	ErrTypeNotFound = wasm.ErrTypeNotFound

	// ErrExportNotFound means Call named an export the module does not have.
	ErrExportNotFound = wasm.ErrExportNotFound
	// ErrFuncNotFound means an export referenced a function index outside the
	// function space.
	ErrFuncNotFound = wasm.ErrFuncNotFound
	// ErrStackUnderflow means an instruction needed more operands than the
	// stack held.
	ErrStackUnderflow = wasm.ErrStackUnderflow
	// ErrNoReturnValue means a function with a declared result produced none.
	ErrNoReturnValue = wasm.ErrNoReturnValue
	// ErrLocalNotFound means an instruction referenced a local slot past the
	// end of the frame's locals.
	ErrLocalNotFound = wasm.ErrLocalNotFound
	// ErrTypeMismatch means arithmetic was attempted between mixed value
	// types. Nothing is ever coerced.
	ErrTypeMismatch = api.ErrTypeMismatch
	// ErrRuntimeUnusable means a previous call failed and wiped the runtime
	// state; re-instantiate from the original bytes to continue.
	ErrRuntimeUnusable = wasm.ErrRuntimeUnusable
)
