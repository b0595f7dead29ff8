// Package types implements the colt type arena. Types are interned in a
// TypeBuffer and referred to through TypeToken handles.
package types

import (
	"fmt"
)

// BuiltinID identifies a builtin type
type BuiltinID uint8

const (
	BOOL BuiltinID = iota
	CHAR
	U8
	U16
	U32
	U64
	I8
	I16
	I32
	I64
	F32
	F64
	BYTE
	WORD
	DWORD
	QWORD
)

var builtinNames = [...]string{
	BOOL:  "bool",
	CHAR:  "char",
	U8:    "u8",
	U16:   "u16",
	U32:   "u32",
	U64:   "u64",
	I8:    "i8",
	I16:   "i16",
	I32:   "i32",
	I64:   "i64",
	F32:   "f32",
	F64:   "f64",
	BYTE:  "BYTE",
	WORD:  "WORD",
	DWORD: "DWORD",
	QWORD: "QWORD",
}

// String returns the keyword of the builtin type
func (id BuiltinID) String() string {
	if int(id) < len(builtinNames) {
		return builtinNames[id]
	}
	return fmt.Sprintf("BuiltinID(%d)", int(id))
}

func IsBool(id BuiltinID) bool     { return id == BOOL }
func IsChar(id BuiltinID) bool     { return id == CHAR }
func IsUint(id BuiltinID) bool     { return U8 <= id && id <= U64 }
func IsSint(id BuiltinID) bool     { return I8 <= id && id <= I64 }
func IsIntegral(id BuiltinID) bool { return U8 <= id && id <= I64 }
func IsFP(id BuiltinID) bool       { return id == F32 || id == F64 }
func IsBytes(id BuiltinID) bool    { return BYTE <= id && id <= QWORD }

// SizeOf returns the size in bytes of a builtin type
func SizeOf(id BuiltinID) int {
	switch id {
	case BOOL, CHAR, U8, I8, BYTE:
		return 1
	case U16, I16, WORD:
		return 2
	case U32, I32, F32, DWORD:
		return 4
	default:
		return 8
	}
}
