package binary

import (
	"bytes"
	"fmt"

	"go.uber.org/zap"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

// decodeInstruction reads one opcode byte and its immediate, if any. A byte
// outside the closed instruction set is an error.
func decodeInstruction(r *bytes.Reader, logger *zap.Logger) (wasm.Instruction, error) {
	b, err := r.ReadByte()
	if err != nil {
		return wasm.Instruction{}, fmt.Errorf("read opcode: %w", err)
	}

	switch op := wasm.Opcode(b); op {
	case wasm.OpcodeEnd, wasm.OpcodeI32Add, wasm.OpcodeI64Add:
		return wasm.Instruction{Opcode: op}, nil
	case wasm.OpcodeLocalGet:
		idx, _, err := leb128.DecodeUint32(r)
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read local.get index: %w", err)
		}
		return wasm.NewLocalGet(idx), nil
	case wasm.OpcodeI64Const:
		v, _, err := leb128.DecodeInt64(r)
		if err != nil {
			return wasm.Instruction{}, fmt.Errorf("read i64.const value: %w", err)
		}
		logger.Debug("decoded constant", zap.Int64("value", v))
		return wasm.NewI64Const(v), nil
	default:
		return wasm.Instruction{}, fmt.Errorf("%w: invalid opcode %#x", wasm.ErrInvalidByte, b)
	}
}

func encodeInstruction(i wasm.Instruction) []byte {
	switch i.Opcode {
	case wasm.OpcodeLocalGet:
		return append([]byte{byte(i.Opcode)}, leb128.EncodeUint32(i.Index)...)
	case wasm.OpcodeI64Const:
		return append([]byte{byte(i.Opcode)}, leb128.EncodeInt64(i.Const)...)
	default:
		return []byte{byte(i.Opcode)}
	}
}
