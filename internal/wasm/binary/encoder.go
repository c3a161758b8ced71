package binary

import (
	"encoding/binary"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

// EncodeModule returns m in the binary format. Only sections present on m
// (non-nil) are emitted, so decoding the result yields m back, including the
// present-vs-absent distinction. A zero Version encodes as DefaultVersion.
func EncodeModule(m *wasm.Module) []byte {
	version := m.Version
	if version == 0 {
		version = wasm.DefaultVersion
	}
	ret := make([]byte, 0, 8)
	ret = append(ret, wasm.Magic...)
	ret = binary.LittleEndian.AppendUint32(ret, version)

	if m.TypeSection != nil {
		var data []byte
		for i := range m.TypeSection {
			data = append(data, encodeFunctionType(&m.TypeSection[i])...)
		}
		ret = append(ret, encodeSection(SectionIDType, uint32(len(m.TypeSection)), data)...)
	}
	if m.FunctionSection != nil {
		var data []byte
		for _, idx := range m.FunctionSection {
			data = append(data, leb128.EncodeUint32(idx)...)
		}
		ret = append(ret, encodeSection(SectionIDFunction, uint32(len(m.FunctionSection)), data)...)
	}
	if m.ExportSection != nil {
		var data []byte
		for i := range m.ExportSection {
			data = append(data, encodeExport(&m.ExportSection[i])...)
		}
		ret = append(ret, encodeSection(SectionIDExport, uint32(len(m.ExportSection)), data)...)
	}
	if m.CodeSection != nil {
		var data []byte
		for i := range m.CodeSection {
			data = append(data, encodeCode(&m.CodeSection[i])...)
		}
		ret = append(ret, encodeSection(SectionIDCode, uint32(len(m.CodeSection)), data)...)
	}
	return ret
}

// encodeSection prefixes the entry-count-prefixed contents with the section
// id and the section size.
func encodeSection(id SectionID, count uint32, contents []byte) []byte {
	data := append(leb128.EncodeUint32(count), contents...)
	return append([]byte{byte(id)}, encodeSizePrefixed(data)...)
}
