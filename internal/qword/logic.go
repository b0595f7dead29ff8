package qword

import (
	"math"
)

func boolWord(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// compare returns -1, 0 or 1, and WasNaN if any operand is NaN
func compare(a, b uint64, t TypeOp) (int, OpError) {
	switch {
	case t.IsFP():
		x, y := ToFloat64(a, t), ToFloat64(b, t)
		if math.IsNaN(x) || math.IsNaN(y) {
			return 2, WasNaN
		}
		switch {
		case x < y:
			return -1, NoError
		case x > y:
			return 1, NoError
		}
		return 0, NoError
	case t.IsSint():
		x, y := signExtend(a, t.Bits()), signExtend(b, t.Bits())
		switch {
		case x < y:
			return -1, NoError
		case x > y:
			return 1, NoError
		}
		return 0, NoError
	default:
		a, b = a&Mask(t.Bits()), b&Mask(t.Bits())
		switch {
		case a < b:
			return -1, NoError
		case a > b:
			return 1, NoError
		}
		return 0, NoError
	}
}

// Comparisons involving NaN are false, except '!=' which is true. They
// still report WasNaN.

func Equal(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c == 0), err
}

func NotEqual(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c != 0), err
}

func Less(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c == -1), err
}

func LessEqual(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c == -1 || c == 0), err
}

func Great(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c == 1), err
}

func GreatEqual(a, b uint64, t TypeOp) (uint64, OpError) {
	c, err := compare(a, b, t)
	return boolWord(c == 1 || c == 0), err
}

// Bitwise operations work on the 'bits' low bits of the words.

func BitAnd(a, b uint64, bits uint) (uint64, OpError) {
	return a & b & Mask(bits), NoError
}

func BitOr(a, b uint64, bits uint) (uint64, OpError) {
	return (a | b) & Mask(bits), NoError
}

func BitXor(a, b uint64, bits uint) (uint64, OpError) {
	return (a ^ b) & Mask(bits), NoError
}

func BitNot(a uint64, bits uint) (uint64, OpError) {
	return ^a & Mask(bits), NoError
}

func shiftError(b uint64, bits uint) OpError {
	if b < uint64(bits) {
		return NoError
	}
	return ShiftByGreSizeof
}

// Lsl is a logical shift left
func Lsl(a, b uint64, bits uint) (uint64, OpError) {
	return (a << b) & Mask(bits), shiftError(b, bits)
}

// Lsr is a logical shift right
func Lsr(a, b uint64, bits uint) (uint64, OpError) {
	return (a & Mask(bits)) >> b, shiftError(b, bits)
}

// Asr is an arithmetic shift right: the sign bit is replicated
func Asr(a, b uint64, bits uint) (uint64, OpError) {
	return fromSigned(signExtend(a, bits)>>b, bits), shiftError(b, bits)
}
