package wasm

import (
	"fmt"

	"github.com/minwasm/minwasm/api"
)

type (
	// Store is the runtime view of one decoded Module: its function space and
	// its module instance. Built once per module load, read-only afterward,
	// owned exclusively by the engine driving it.
	Store struct {
		Funcs  []FunctionInstance
		Module ModuleInstance
	}

	// FunctionInstance is one resolved function: its signature, its local
	// types flattened out of the declared runs, and its body. Shared by all
	// invocations of the function.
	FunctionInstance struct {
		Type   FunctionType
		Locals []api.ValueType
		Body   []Instruction
	}

	// ModuleInstance maps export names to their descriptors.
	ModuleInstance struct {
		Exports map[string]ExportInstance
	}

	// ExportInstance is one resolved export descriptor.
	ExportInstance struct {
		Name  string
		Kind  byte
		Index uint32
	}
)

// NewStore resolves a decoded Module into a Store. Each code section entry is
// zipped positionally with its function section type index; an index with no
// type section entry, or a code section shorter than the function section, is
// an error. Absent function or code sections yield an empty function space.
func NewStore(m *Module) (*Store, error) {
	funcs := make([]FunctionInstance, 0, len(m.FunctionSection))
	for i, typeIdx := range m.FunctionSection {
		if i >= len(m.CodeSection) {
			return nil, fmt.Errorf("%w: no code for function index %d", ErrTypeNotFound, i)
		}
		if int(typeIdx) >= len(m.TypeSection) {
			return nil, fmt.Errorf("%w: type index %d out of range for function index %d", ErrTypeNotFound, typeIdx, i)
		}
		code := &m.CodeSection[i]
		funcs = append(funcs, FunctionInstance{
			Type:   m.TypeSection[typeIdx],
			Locals: flattenLocals(code.Locals),
			Body:   code.Body,
		})
	}

	// Later exports with the same name overwrite earlier ones.
	exports := make(map[string]ExportInstance, len(m.ExportSection))
	for _, e := range m.ExportSection {
		exports[e.Name] = ExportInstance{Name: e.Name, Kind: e.Kind, Index: e.Index}
	}

	return &Store{Funcs: funcs, Module: ModuleInstance{Exports: exports}}, nil
}

// flattenLocals expands each run (count, type) into count repetitions of
// type, preserving run order.
func flattenLocals(runs []LocalRun) []api.ValueType {
	var n uint32
	for _, run := range runs {
		n += run.Count
	}
	ret := make([]api.ValueType, 0, n)
	for _, run := range runs {
		for i := uint32(0); i < run.Count; i++ {
			ret = append(ret, run.Type)
		}
	}
	return ret
}
