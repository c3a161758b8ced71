// Package binary decodes and encodes the module binary format: a 4-byte
// magic tag, a little-endian version word, then a sequence of size-delimited
// sections.
package binary

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/minwasm/minwasm/internal/leb128"
	"github.com/minwasm/minwasm/internal/wasm"
)

// DecodeModule parses bin into a Module, consuming it entirely or failing.
// The input is never mutated and no partial Module is returned on error.
// Decode progress is traced to logger at debug level; pass zap.NewNop() to
// silence it.
func DecodeModule(bin []byte, logger *zap.Logger) (*wasm.Module, error) {
	r := bytes.NewReader(bin)

	buf := make([]byte, 4)
	if _, err := io.ReadFull(r, buf); err != nil || !bytes.Equal(buf, []byte(wasm.Magic)) {
		return nil, wasm.ErrInvalidMagicNumber
	}

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, wasm.ErrInvalidVersion
	}
	version := binary.LittleEndian.Uint32(buf)

	m := &wasm.Module{Magic: wasm.Magic, Version: version}
	for {
		// Only the bare io.EOF from a section boundary is a clean stop; an
		// EOF wrapped by a section decoder is a truncated input.
		if err := decodeSection(m, r, logger); err == io.EOF { //nolint:errorlint
			return m, nil
		} else if err != nil {
			return nil, err
		}
	}
}

func decodeSection(m *wasm.Module, r *bytes.Reader, logger *zap.Logger) error {
	id, err := r.ReadByte()
	if err != nil {
		// A clean end of input between sections surfaces as bare io.EOF.
		return err
	}

	size, _, err := leb128.DecodeUint32(r)
	if err != nil {
		return fmt.Errorf("read size of section %d: %w", id, err)
	}

	logger.Debug("decoding section", zap.Uint8("id", id), zap.Uint32("size", size))

	// Slice exactly the declared size. The outer loop resynchronizes from
	// this length, not from how much the section decoder consumed.
	contents := make([]byte, size)
	if _, err := io.ReadFull(r, contents); err != nil {
		return fmt.Errorf("section %d size %d exceeds remaining input: %w", id, size, err)
	}
	sr := bytes.NewReader(contents)

	switch SectionID(id) {
	case SectionIDType:
		m.TypeSection, err = decodeTypeSection(sr)
	case SectionIDFunction:
		m.FunctionSection, err = decodeFunctionSection(sr)
	case SectionIDCode:
		m.CodeSection, err = decodeCodeSection(sr, logger)
	case SectionIDExport:
		m.ExportSection, err = decodeExportSection(sr)
	case SectionIDCustom, SectionIDImport, SectionIDTable, SectionIDMemory,
		SectionIDGlobal, SectionIDStart, SectionIDElement, SectionIDData:
		return fmt.Errorf("%w: %d", wasm.ErrUnsupportedSection, id)
	default:
		return fmt.Errorf("%w: %d", wasm.ErrInvalidSectionID, id)
	}
	if err != nil {
		return fmt.Errorf("section %d: %w", id, err)
	}
	return nil
}
