package binary

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/minwasm/minwasm/api"
	"github.com/minwasm/minwasm/internal/wasm"
)

// TestDecodeModule relies on EncodeModule producing a known-correct encoding,
// so each case is a round trip: encode the module, decode it back, and
// require equality.
func TestDecodeModule(t *testing.T) {
	i32, i64 := api.ValueTypeI32, api.ValueTypeI64

	tests := []struct {
		name  string
		input *wasm.Module
	}{
		{
			name:  "empty",
			input: &wasm.Module{Magic: wasm.Magic, Version: wasm.DefaultVersion},
		},
		{
			name: "simplest function",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection:     []wasm.FunctionType{{}},
				FunctionSection: []uint32{0},
				CodeSection:     []wasm.Code{{Body: []wasm.Instruction{wasm.NewEnd()}}},
			},
		},
		{
			name: "function with params",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection:     []wasm.FunctionType{{Params: []api.ValueType{i32, i64}}},
				FunctionSection: []uint32{0},
				CodeSection:     []wasm.Code{{Body: []wasm.Instruction{wasm.NewEnd()}}},
			},
		},
		{
			name: "function with locals",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection:     []wasm.FunctionType{{}},
				FunctionSection: []uint32{0},
				CodeSection: []wasm.Code{{
					Locals: []wasm.LocalRun{
						{Count: 1, Type: i32},
						{Count: 2, Type: i64},
					},
					Body: []wasm.Instruction{wasm.NewEnd()},
				}},
			},
		},
		{
			name: "exported add function",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection: []wasm.FunctionType{{
					Params:  []api.ValueType{i64, i64},
					Results: []api.ValueType{i64},
				}},
				FunctionSection: []uint32{0},
				ExportSection:   []wasm.Export{{Name: "_start", Kind: wasm.ExportKindFunc, Index: 0}},
				CodeSection: []wasm.Code{{
					Body: []wasm.Instruction{
						wasm.NewLocalGet(0),
						wasm.NewLocalGet(1),
						wasm.NewI64Add(),
						wasm.NewEnd(),
					},
				}},
			},
		},
		{
			name: "i64 const",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection:     []wasm.FunctionType{{}},
				FunctionSection: []uint32{0},
				CodeSection: []wasm.Code{{
					Body: []wasm.Instruction{wasm.NewI64Const(42), wasm.NewEnd()},
				}},
			},
		},
		{
			name: "negative i64 const",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection:     []wasm.FunctionType{{}},
				FunctionSection: []uint32{0},
				CodeSection: []wasm.Code{{
					Body: []wasm.Instruction{wasm.NewI64Const(-624485), wasm.NewEnd()},
				}},
			},
		},
		{
			name: "i32 add",
			input: &wasm.Module{
				Magic: wasm.Magic, Version: wasm.DefaultVersion,
				TypeSection: []wasm.FunctionType{{
					Params:  []api.ValueType{i32, i32},
					Results: []api.ValueType{i32},
				}},
				FunctionSection: []uint32{0},
				CodeSection: []wasm.Code{{
					Body: []wasm.Instruction{
						wasm.NewLocalGet(0),
						wasm.NewLocalGet(1),
						wasm.NewI32Add(),
						wasm.NewEnd(),
					},
				}},
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m, err := DecodeModule(EncodeModule(tc.input), zap.NewNop())
			require.NoError(t, err)
			require.Equal(t, tc.input, m)
		})
	}
}

func TestDecodeModule_Version(t *testing.T) {
	// The version word is stored, not constrained.
	bin := []byte{0x00, 0x61, 0x73, 0x6d, 0x02, 0x00, 0x00, 0x00}
	m, err := DecodeModule(bin, zap.NewNop())
	require.NoError(t, err)
	require.Equal(t, uint32(2), m.Version)
}

func TestDecodeModule_Errors(t *testing.T) {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}

	tests := []struct {
		name        string
		input       []byte
		expectedErr string
	}{
		{
			name:        "empty input",
			input:       []byte{},
			expectedErr: "invalid magic number",
		},
		{
			name:        "wrong magic",
			input:       []byte{0x00, 0x61, 0x73, 0x6e, 0x01, 0x00, 0x00, 0x00},
			expectedErr: "invalid magic number",
		},
		{
			name:        "truncated version",
			input:       []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00},
			expectedErr: "invalid version header",
		},
		{
			name:        "truncated section payload",
			input:       append(append([]byte{}, header...), byte(SectionIDType), 0x05, 0x01),
			expectedErr: "section 1 size 5 exceeds remaining input",
		},
		{
			name:        "truncated section size",
			input:       append(append([]byte{}, header...), byte(SectionIDType)),
			expectedErr: "read size of section 1",
		},
		{
			name:        "unsupported memory section",
			input:       append(append([]byte{}, header...), byte(SectionIDMemory), 0x00),
			expectedErr: "unsupported section: 5",
		},
		{
			name:        "unsupported custom section",
			input:       append(append([]byte{}, header...), byte(SectionIDCustom), 0x00),
			expectedErr: "unsupported section: 0",
		},
		{
			name:        "section id out of range",
			input:       append(append([]byte{}, header...), 0x0c, 0x00),
			expectedErr: "invalid section id: 12",
		},
		{
			name: "invalid value type in type section",
			// one type: tag 0x60, one param of type 0x7b (f64 is not in the subset)
			input:       append(append([]byte{}, header...), byte(SectionIDType), 0x05, 0x01, 0x60, 0x01, 0x7b, 0x00),
			expectedErr: "invalid value type",
		},
		{
			name: "invalid opcode in function body",
			// code section: one body of size 3: no locals, opcode 0x45, end
			input:       append(append([]byte{}, header...), byte(SectionIDCode), 0x05, 0x01, 0x03, 0x00, 0x45, 0x0b),
			expectedErr: "invalid opcode 0x45",
		},
		{
			name: "invalid value type in local declaration",
			// code section: one body of size 4: one run of two locals of
			// type 0x7b (f64 is not in the subset), end
			input:       append(append([]byte{}, header...), byte(SectionIDCode), 0x06, 0x01, 0x04, 0x01, 0x02, 0x7b, 0x0b),
			expectedErr: "invalid value type 0x7b in 0-th local declaration",
		},
		{
			name: "invalid export kind",
			// export section: one export, name "a", kind 0x01 (table), index 0
			input:       append(append([]byte{}, header...), byte(SectionIDExport), 0x05, 0x01, 0x01, 0x61, 0x01, 0x00),
			expectedErr: "invalid export kind",
		},
		{
			name:        "invalid utf-8 export name",
			input:       append(append([]byte{}, header...), byte(SectionIDExport), 0x05, 0x01, 0x01, 0xff, 0x00, 0x00),
			expectedErr: "export name must be valid UTF-8",
		},
		{
			name: "truncated function body",
			// code section claims one body of size 2 but carries 1 byte
			input:       append(append([]byte{}, header...), byte(SectionIDCode), 0x03, 0x01, 0x02, 0x00),
			expectedErr: "read 0-th function body",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			m, err := DecodeModule(tc.input, zap.NewNop())
			require.Nil(t, m)
			require.ErrorContains(t, err, tc.expectedErr)
		})
	}
}

func TestDecodeModule_PresentButEmptySections(t *testing.T) {
	header := []byte{0x00, 0x61, 0x73, 0x6d, 0x01, 0x00, 0x00, 0x00}
	// A type section declaring zero entries is present, not absent.
	bin := append(append([]byte{}, header...), byte(SectionIDType), 0x01, 0x00)

	m, err := DecodeModule(bin, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, m.TypeSection)
	require.Empty(t, m.TypeSection)
	require.Nil(t, m.FunctionSection)
	require.Nil(t, m.CodeSection)
	require.Nil(t, m.ExportSection)
}
