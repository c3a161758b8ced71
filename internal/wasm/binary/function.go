package binary

import (
	"bytes"
	"fmt"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

// funcTypeTag prefixes every entry of the type section.
const funcTypeTag = 0x60

func decodeFunctionType(r *bytes.Reader) (*wasm.FunctionType, error) {
	// The tag byte must be present, though its value is not checked: this
	// subset has no other type forms to disambiguate from.
	if _, err := r.ReadByte(); err != nil {
		return nil, fmt.Errorf("read leading byte: %w", err)
	}

	paramCount, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of parameter types: %w", err)
	}
	params, err := decodeValueTypes(r, paramCount)
	if err != nil {
		return nil, fmt.Errorf("read parameter types: %w", err)
	}

	resultCount, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of result types: %w", err)
	}
	results, err := decodeValueTypes(r, resultCount)
	if err != nil {
		return nil, fmt.Errorf("read result types: %w", err)
	}

	return &wasm.FunctionType{Params: params, Results: results}, nil
}

// encodeFunctionType returns t in the binary format: the 0x60 tag followed by
// the parameter and result vectors.
func encodeFunctionType(t *wasm.FunctionType) []byte {
	data := append([]byte{funcTypeTag}, encodeValueTypes(t.Params)...)
	return append(data, encodeValueTypes(t.Results)...)
}
