package wasm

import "fmt"

// Opcode is the single byte that selects an instruction in the binary format.
// The instruction set is deliberately closed: any other byte is a decode
// error, not a skippable unknown.
type Opcode byte

const (
	OpcodeEnd      Opcode = 0x0b
	OpcodeLocalGet Opcode = 0x20
	OpcodeI64Const Opcode = 0x42
	OpcodeI32Add   Opcode = 0x6a
	OpcodeI64Add   Opcode = 0x7c
)

// InstructionName returns the name in the text format, e.g. "local.get".
func InstructionName(op Opcode) string {
	switch op {
	case OpcodeEnd:
		return "end"
	case OpcodeLocalGet:
		return "local.get"
	case OpcodeI64Const:
		return "i64.const"
	case OpcodeI32Add:
		return "i32.add"
	case OpcodeI64Add:
		return "i64.add"
	}
	return "unknown"
}

// Instruction is one decoded instruction: the opcode plus its immediate, if
// any. LocalGet carries Index; I64Const carries Const; the rest carry
// nothing. Immutable once decoded.
type Instruction struct {
	Opcode Opcode
	Index  uint32
	Const  int64
}

// NewEnd, NewLocalGet, NewI64Const, NewI32Add and NewI64Add construct the
// five instruction shapes.
func NewEnd() Instruction              { return Instruction{Opcode: OpcodeEnd} }
func NewLocalGet(i uint32) Instruction { return Instruction{Opcode: OpcodeLocalGet, Index: i} }
func NewI64Const(v int64) Instruction  { return Instruction{Opcode: OpcodeI64Const, Const: v} }
func NewI32Add() Instruction           { return Instruction{Opcode: OpcodeI32Add} }
func NewI64Add() Instruction           { return Instruction{Opcode: OpcodeI64Add} }

func (i Instruction) String() string {
	switch i.Opcode {
	case OpcodeLocalGet:
		return fmt.Sprintf("local.get %d", i.Index)
	case OpcodeI64Const:
		return fmt.Sprintf("i64.const %d", i.Const)
	}
	return InstructionName(i.Opcode)
}
