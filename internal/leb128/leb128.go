// Package leb128 decodes and encodes the variable-length integers used
// throughout the binary format: 7 payload bits per byte, high bit set while
// more bytes follow. Signed forms sign-extend from the final byte.
package leb128

import (
	"errors"
	"fmt"
	"io"
)

var (
	errOverflow32 = errors.New("overflows a 32-bit integer")
	errOverflow64 = errors.New("overflows a 64-bit integer")
)

// DecodeUint32 reads an unsigned varint from r, returning the value and the
// number of bytes consumed.
func DecodeUint32(r io.Reader) (ret uint32, num uint64, err error) {
	b := make([]byte, 1)
	for shift := 0; shift < 35; shift += 7 {
		if _, err = io.ReadFull(r, b); err != nil {
			return 0, 0, fmt.Errorf("read byte: %w", err)
		}
		num++
		if shift == 28 && b[0]&0xf0 != 0 {
			return 0, 0, errOverflow32
		}
		ret |= uint32(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return
		}
	}
	return 0, 0, errOverflow32
}

// DecodeUint64 reads an unsigned varint from r, returning the value and the
// number of bytes consumed.
func DecodeUint64(r io.Reader) (ret uint64, num uint64, err error) {
	b := make([]byte, 1)
	for shift := 0; shift < 70; shift += 7 {
		if _, err = io.ReadFull(r, b); err != nil {
			return 0, 0, fmt.Errorf("read byte: %w", err)
		}
		num++
		if shift == 63 && b[0]&0xfe != 0 {
			return 0, 0, errOverflow64
		}
		ret |= uint64(b[0]&0x7f) << shift
		if b[0]&0x80 == 0 {
			return
		}
	}
	return 0, 0, errOverflow64
}

// DecodeInt32 reads a signed varint from r, returning the value and the
// number of bytes consumed.
func DecodeInt32(r io.Reader) (ret int32, num uint64, err error) {
	b := make([]byte, 1)
	var shift int
	for shift < 35 {
		if _, err = io.ReadFull(r, b); err != nil {
			return 0, 0, fmt.Errorf("read byte: %w", err)
		}
		num++
		// Only four value bits remain at the fifth byte. Bit 3 becomes the
		// sign, and the bits above it must agree with it.
		if rest := b[0] & 0x78; shift == 28 && rest != 0 && rest != 0x78 {
			return 0, 0, errOverflow32
		}
		ret |= int32(b[0]&0x7f) << shift
		shift += 7
		if b[0]&0x80 == 0 {
			// Sign-extend if the sign bit of the final group is set.
			if shift < 32 && b[0]&0x40 != 0 {
				ret |= ^0 << shift
			}
			return
		}
	}
	return 0, 0, errOverflow32
}

// DecodeInt64 reads a signed varint from r, returning the value and the
// number of bytes consumed.
func DecodeInt64(r io.Reader) (ret int64, num uint64, err error) {
	b := make([]byte, 1)
	var shift int
	for shift < 70 {
		if _, err = io.ReadFull(r, b); err != nil {
			return 0, 0, fmt.Errorf("read byte: %w", err)
		}
		num++
		// Only bit 0 remains at the tenth byte, and it becomes the sign.
		// The bytes 0x00 and 0x7f are the sole consistent final groups.
		if shift == 63 && b[0] != 0 && b[0] != 0x7f {
			return 0, 0, errOverflow64
		}
		ret |= int64(b[0]&0x7f) << shift
		shift += 7
		if b[0]&0x80 == 0 {
			if shift < 64 && b[0]&0x40 != 0 {
				ret |= ^0 << shift
			}
			return
		}
	}
	return 0, 0, errOverflow64
}

// EncodeUint32 returns the minimal unsigned varint encoding of v.
func EncodeUint32(v uint32) []byte {
	return EncodeUint64(uint64(v))
}

// EncodeUint64 returns the minimal unsigned varint encoding of v.
func EncodeUint64(v uint64) (ret []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7
		if v != 0 {
			b |= 0x80
		}
		ret = append(ret, b)
		if v == 0 {
			return
		}
	}
}

// EncodeInt32 returns the minimal signed varint encoding of v.
func EncodeInt32(v int32) []byte {
	return EncodeInt64(int64(v))
}

// EncodeInt64 returns the minimal signed varint encoding of v.
func EncodeInt64(v int64) (ret []byte) {
	for {
		b := byte(v & 0x7f)
		v >>= 7 // arithmetic shift
		if (v == 0 && b&0x40 == 0) || (v == -1 && b&0x40 != 0) {
			return append(ret, b)
		}
		ret = append(ret, b|0x80)
	}
}
