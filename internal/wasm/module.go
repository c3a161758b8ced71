// Package wasm holds the decoded module model and the runtime store built
// from it. The binary format lives in the nested binary package; execution in
// the nested interpreter package.
package wasm

import (
	"github.com/minwasm/minwasm/api"
)

// Magic is the 4-byte preamble (literally "\0asm") of every binary module.
const Magic = "\x00asm"

// DefaultVersion is the format version emitted by current producers. Decoding
// stores whatever version the input carries without constraining it.
const DefaultVersion uint32 = 1

type (
	// Module is the static decode result. A nil section slice means the
	// section code never appeared in the input, which is distinct from a
	// section that was present but declared zero entries.
	Module struct {
		Magic   string
		Version uint32

		TypeSection     []FunctionType
		FunctionSection []uint32
		CodeSection     []Code
		ExportSection   []Export
	}

	// FunctionType is a function signature: parameter types then result
	// types, in declaration order.
	FunctionType struct {
		Params, Results []api.ValueType
	}

	// LocalRun declares Count consecutive locals of the same Type. It is a
	// compression of the flat local list, not a separate addressing scheme.
	LocalRun struct {
		Count uint32
		Type  api.ValueType
	}

	// Code is one decoded function body: its local declarations and its
	// instruction sequence. Never mutated after decode.
	Code struct {
		Locals []LocalRun
		Body   []Instruction
	}

	// Export names one entity of the module. Only function exports exist in
	// this format subset.
	Export struct {
		Name  string
		Kind  byte
		Index uint32
	}
)

// ExportKindFunc is the only export kind the format subset defines.
const ExportKindFunc byte = 0x00

// EqualsSignature reports whether both parameter and result sequences are
// element-wise equal to the receiver's.
func (t *FunctionType) EqualsSignature(params, results []api.ValueType) bool {
	if len(t.Params) != len(params) || len(t.Results) != len(results) {
		return false
	}
	for i, p := range t.Params {
		if p != params[i] {
			return false
		}
	}
	for i, r := range t.Results {
		if r != results[i] {
			return false
		}
	}
	return true
}
