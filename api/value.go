// Package api holds the value types shared between the decoded module model,
// the execution engine, and embedders.
package api

import (
	"errors"
	"fmt"
)

// ValueType describes the shape of a parameter, result, or local slot, using
// the same byte the binary format uses.
type ValueType = byte

const (
	ValueTypeI32 ValueType = 0x7f
	ValueTypeI64 ValueType = 0x7e
)

// ValueTypeName returns the type name in the text format, e.g. "i32".
func ValueTypeName(t ValueType) string {
	switch t {
	case ValueTypeI32:
		return "i32"
	case ValueTypeI64:
		return "i64"
	}
	return "unknown"
}

// ErrTypeMismatch is returned when arithmetic is attempted between values of
// different types. No coercion is ever performed.
var ErrTypeMismatch = errors.New("value type mismatch")

// Value is one operand: a 64-bit payload tagged with its ValueType. The zero
// Value is not valid; construct values with I32 or I64.
type Value struct {
	t    ValueType
	bits uint64
}

// I32 returns a 32-bit integer value.
func I32(v int32) Value {
	return Value{t: ValueTypeI32, bits: uint64(uint32(v))}
}

// I64 returns a 64-bit integer value.
func I64(v int64) Value {
	return Value{t: ValueTypeI64, bits: uint64(v)}
}

// Zero returns the zero value of the given type. Declared locals start out
// this way.
func Zero(t ValueType) Value {
	return Value{t: t}
}

// Type returns the tag of this value.
func (v Value) Type() ValueType {
	return v.t
}

// Int32 returns the payload reinterpreted as a 32-bit integer.
func (v Value) Int32() int32 {
	return int32(uint32(v.bits))
}

// Int64 returns the payload reinterpreted as a 64-bit integer.
func (v Value) Int64() int64 {
	return int64(v.bits)
}

func (v Value) String() string {
	switch v.t {
	case ValueTypeI32:
		return fmt.Sprintf("i32(%d)", v.Int32())
	case ValueTypeI64:
		return fmt.Sprintf("i64(%d)", v.Int64())
	}
	return "invalid"
}

// Add returns the sum of v and rhs, wrapping per the fixed-width arithmetic
// of their shared type. Mixed types return ErrTypeMismatch.
func (v Value) Add(rhs Value) (Value, error) {
	if v.t != rhs.t {
		return Value{}, fmt.Errorf("%w: %s + %s", ErrTypeMismatch, ValueTypeName(v.t), ValueTypeName(rhs.t))
	}
	switch v.t {
	case ValueTypeI32:
		return I32(v.Int32() + rhs.Int32()), nil
	case ValueTypeI64:
		return I64(v.Int64() + rhs.Int64()), nil
	}
	return Value{}, fmt.Errorf("%w: invalid value type %#x", ErrTypeMismatch, v.t)
}
