package binary

import (
	"bytes"
	"fmt"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

// SectionID identifies a section in the binary format. All IDs of the full
// format are named so an unsupported-but-known section reads differently
// from a byte outside the format.
type SectionID byte

const (
	SectionIDCustom   SectionID = 0
	SectionIDType     SectionID = 1
	SectionIDImport   SectionID = 2
	SectionIDFunction SectionID = 3
	SectionIDTable    SectionID = 4
	SectionIDMemory   SectionID = 5
	SectionIDGlobal   SectionID = 6
	SectionIDExport   SectionID = 7
	SectionIDStart    SectionID = 8
	SectionIDElement  SectionID = 9
	SectionIDCode     SectionID = 10
	SectionIDData     SectionID = 11
)

func decodeTypeSection(r *bytes.Reader) ([]wasm.FunctionType, error) {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	ret := make([]wasm.FunctionType, count)
	for i := uint32(0); i < count; i++ {
		t, err := decodeFunctionType(r)
		if err != nil {
			return nil, fmt.Errorf("read %d-th type: %w", i, err)
		}
		ret[i] = *t
	}
	return ret, nil
}

func decodeFunctionSection(r *bytes.Reader) ([]uint32, error) {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	ret := make([]uint32, count)
	for i := uint32(0); i < count; i++ {
		if ret[i], _, err = leb128.DecodeUint32(r); err != nil {
			return nil, fmt.Errorf("get type index of %d-th function: %w", i, err)
		}
	}
	return ret, nil
}

func decodeExportSection(r *bytes.Reader) ([]wasm.Export, error) {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	ret := make([]wasm.Export, count)
	for i := uint32(0); i < count; i++ {
		e, err := decodeExport(r)
		if err != nil {
			return nil, fmt.Errorf("read %d-th export: %w", i, err)
		}
		ret[i] = *e
	}
	return ret, nil
}
