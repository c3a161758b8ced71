package binary

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/minwasm/minwasm/api"
	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

func decodeValueTypes(r *bytes.Reader, num uint32) ([]api.ValueType, error) {
	if num == 0 {
		return nil, nil
	}
	buf := make([]byte, num)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}

	ret := make([]api.ValueType, num)
	for i, b := range buf {
		switch vt := api.ValueType(b); vt {
		case api.ValueTypeI32, api.ValueTypeI64:
			ret[i] = vt
		default:
			return nil, fmt.Errorf("%w: invalid value type %#x", wasm.ErrInvalidByte, vt)
		}
	}
	return ret, nil
}

func encodeValueTypes(ts []api.ValueType) []byte {
	ret := leb128.EncodeUint32(uint32(len(ts)))
	return append(ret, ts...)
}

// decodeUTF8 decodes a size-prefixed string, failing on invalid UTF-8.
func decodeUTF8(r *bytes.Reader, context string) (string, error) {
	size, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return "", fmt.Errorf("read %s size: %w", context, err)
	}

	buf := make([]byte, size)
	if _, err = io.ReadFull(r, buf); err != nil {
		return "", fmt.Errorf("read %s: %w", context, err)
	}

	if !utf8.Valid(buf) {
		return "", fmt.Errorf("%s must be valid UTF-8", context)
	}
	return string(buf), nil
}

func encodeSizePrefixed(data []byte) []byte {
	return append(leb128.EncodeUint32(uint32(len(data))), data...)
}
