// Package qword implements checked operations on 64-bit words interpreted
// as a typed value. It is used for constant folding.
//
// Values are stored in the low bits of a uint64: integers are truncated to
// their width, f32 uses the IEEE bits of a float32 and f64 those of a
// float64. Every operation returns the (possibly wrapped) result along with
// an OpError describing what went wrong.
package qword

import (
	"fmt"
	"math"

	"github.com/colt-lang/colt/internal/types"
)

// TypeOp is the type used to interpret a word
type TypeOp uint8

const (
	I8 TypeOp = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F32
	F64
)

var typeOpNames = [...]string{"i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64"}

func (t TypeOp) String() string {
	if int(t) < len(typeOpNames) {
		return typeOpNames[t]
	}
	return fmt.Sprintf("TypeOp(%d)", int(t))
}

func (t TypeOp) IsSint() bool { return I8 <= t && t <= I64 }
func (t TypeOp) IsUint() bool { return U8 <= t && t <= U64 }
func (t TypeOp) IsInt() bool  { return t <= U64 }
func (t TypeOp) IsFP() bool   { return t == F32 || t == F64 }

// Bits returns the width of the type
func (t TypeOp) Bits() uint {
	switch t {
	case I8, U8:
		return 8
	case I16, U16:
		return 16
	case I32, U32, F32:
		return 32
	default:
		return 64
	}
}

// FromBuiltin returns the TypeOp used to fold values of a builtin type.
// bool, char and the bytes types are folded as unsigned integers.
func FromBuiltin(id types.BuiltinID) TypeOp {
	switch id {
	case types.BOOL, types.CHAR, types.U8, types.BYTE:
		return U8
	case types.U16, types.WORD:
		return U16
	case types.U32, types.DWORD:
		return U32
	case types.U64, types.QWORD:
		return U64
	case types.I8:
		return I8
	case types.I16:
		return I16
	case types.I32:
		return I32
	case types.I64:
		return I64
	case types.F32:
		return F32
	default:
		return F64
	}
}

// OpError describes the outcome of an operation
type OpError uint8

const (
	NoError OpError = iota
	InvalidOp
	DivByZero
	ShiftByGreSizeof
	UnsignedOverflow
	UnsignedUnderflow
	SignedOverflow
	SignedUnderflow
	WasNaN
	RetNaN
)

var opErrorNames = [...]string{
	NoError:           "NO_ERROR",
	InvalidOp:         "INVALID_OP",
	DivByZero:         "DIV_BY_ZERO",
	ShiftByGreSizeof:  "SHIFT_BY_GRE_SIZEOF",
	UnsignedOverflow:  "UNSIGNED_OVERFLOW",
	UnsignedUnderflow: "UNSIGNED_UNDERFLOW",
	SignedOverflow:    "SIGNED_OVERFLOW",
	SignedUnderflow:   "SIGNED_UNDERFLOW",
	WasNaN:            "WAS_NAN",
	RetNaN:            "RET_NAN",
}

func (e OpError) String() string {
	if int(e) < len(opErrorNames) {
		return opErrorNames[e]
	}
	return fmt.Sprintf("OpError(%d)", int(e))
}

// Explanation returns a sentence describing the error
func (e OpError) Explanation() string {
	switch e {
	case NoError:
		return "No errors detected!"
	case InvalidOp:
		return "Invalid operand type for operation!"
	case DivByZero:
		return "Integral division by zero!"
	case ShiftByGreSizeof:
		return "Shift by value greater than bits size!"
	case UnsignedOverflow:
		return "Unsigned overflow detected!"
	case UnsignedUnderflow:
		return "Unsigned underflow detected!"
	case SignedOverflow:
		return "Signed overflow detected!"
	case SignedUnderflow:
		return "Signed underflow detected!"
	case WasNaN:
		return "Floating point value was NaN!"
	case RetNaN:
		return "Floating point operation evaluates to NaN!"
	}
	return "Unknown error!"
}

func (e OpError) IsSigned() bool   { return e == SignedOverflow || e == SignedUnderflow }
func (e OpError) IsUnsigned() bool { return e == UnsignedOverflow || e == UnsignedUnderflow }
func (e OpError) IsNaN() bool      { return e == WasNaN || e == RetNaN }

// Mask returns a word with the 'bits' low bits set
func Mask(bits uint) uint64 {
	return math.MaxUint64 >> (64 - bits)
}

// signExtend interprets the 'bits' low bits of v as a signed integer
func signExtend(v uint64, bits uint) int64 {
	shift := 64 - bits
	return int64(v<<shift) >> shift
}

func signedRange(bits uint) (min, max int64) {
	return -1 << (bits - 1), 1<<(bits-1) - 1
}

func fromSigned(v int64, bits uint) uint64 {
	return uint64(v) & Mask(bits)
}

// FromFloat64 returns the word representing f as a value of type t
func FromFloat64(f float64, t TypeOp) uint64 {
	if t == F32 {
		return uint64(math.Float32bits(float32(f)))
	}
	return math.Float64bits(f)
}

// ToFloat64 returns the value of a floating point word
func ToFloat64(v uint64, t TypeOp) float64 {
	if t == F32 {
		return float64(math.Float32frombits(uint32(v)))
	}
	return math.Float64frombits(v)
}

// FromInt64 returns the word representing v as an integer of type t
func FromInt64(v int64, t TypeOp) uint64 {
	return fromSigned(v, t.Bits())
}

// ToInt64 returns the value of a signed integer word
func ToInt64(v uint64, t TypeOp) int64 {
	return signExtend(v, t.Bits())
}
