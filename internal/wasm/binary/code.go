package binary

import (
	"bytes"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/minwasm/minwasm/api"
	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

func decodeCodeSection(r *bytes.Reader, logger *zap.Logger) ([]wasm.Code, error) {
	count, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get size of vector: %w", err)
	}

	ret := make([]wasm.Code, count)
	for i := uint32(0); i < count; i++ {
		size, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return nil, fmt.Errorf("get size of %d-th function body: %w", i, err)
		}
		logger.Debug("decoding function body", zap.Uint32("index", i), zap.Uint32("size", size))

		body := make([]byte, size)
		if _, err = io.ReadFull(r, body); err != nil {
			return nil, fmt.Errorf("read %d-th function body: %w", i, err)
		}

		c, err := decodeFunctionBody(bytes.NewReader(body), logger)
		if err != nil {
			return nil, fmt.Errorf("read %d-th function body: %w", i, err)
		}
		ret[i] = *c
	}
	return ret, nil
}

// decodeFunctionBody reads the local declarations then instructions until the
// body slice is exhausted.
func decodeFunctionBody(r *bytes.Reader, logger *zap.Logger) (*wasm.Code, error) {
	runCount, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return nil, fmt.Errorf("get count of local declarations: %w", err)
	}

	ret := &wasm.Code{}
	for i := uint32(0); i < runCount; i++ {
		n, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return nil, fmt.Errorf("read type count of %d-th local declaration: %w", i, err)
		}
		t, err := r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("read type of %d-th local declaration: %w", i, err)
		}
		switch vt := api.ValueType(t); vt {
		case api.ValueTypeI32, api.ValueTypeI64:
			ret.Locals = append(ret.Locals, wasm.LocalRun{Count: n, Type: vt})
		default:
			return nil, fmt.Errorf("%w: invalid value type %#x in %d-th local declaration", wasm.ErrInvalidByte, vt, i)
		}
	}

	for r.Len() > 0 {
		inst, err := decodeInstruction(r, logger)
		if err != nil {
			return nil, err
		}
		ret.Body = append(ret.Body, inst)
	}
	return ret, nil
}

func encodeCode(c *wasm.Code) []byte {
	data := leb128.EncodeUint32(uint32(len(c.Locals)))
	for _, run := range c.Locals {
		data = append(data, leb128.EncodeUint32(run.Count)...)
		data = append(data, run.Type)
	}
	for _, inst := range c.Body {
		data = append(data, encodeInstruction(inst)...)
	}
	return encodeSizePrefixed(data)
}
