package binary

import (
	"bytes"
	"fmt"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

func decodeExport(r *bytes.Reader) (*wasm.Export, error) {
	name, err := decodeUTF8(r, "export name")
	if err != nil {
		return nil, err
	}

	kind, err := r.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("read export kind: %w", err)
	}
	if kind != wasm.ExportKindFunc {
		return nil, fmt.Errorf("%w: invalid export kind %#x", wasm.ErrInvalidByte, kind)
	}

	idx, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("read export index: %w", err)
	}

	return &wasm.Export{Name: name, Kind: kind, Index: idx}, nil
}

func encodeExport(e *wasm.Export) []byte {
	data := encodeSizePrefixed([]byte(e.Name))
	data = append(data, e.Kind)
	return append(data, leb128.EncodeUint32(e.Index)...)
}
