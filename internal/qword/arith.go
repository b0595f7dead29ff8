package qword

import (
	"math"
	"math/bits"
)

// floatOp applies fn on two floating point words, checking for NaNs
func floatOp(a, b uint64, t TypeOp, fn func(x, y float64) float64) (uint64, OpError) {
	x, y := ToFloat64(a, t), ToFloat64(b, t)
	if math.IsNaN(x) {
		return a, WasNaN
	}
	if math.IsNaN(y) {
		return b, WasNaN
	}
	r := fn(x, y)
	if t == F32 {
		// round to f32 precision before checking the result
		r = float64(float32(r))
	}
	if math.IsNaN(r) {
		return FromFloat64(r, t), RetNaN
	}
	return FromFloat64(r, t), NoError
}

// Add returns a + b
func Add(a, b uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		return floatOp(a, b, t, func(x, y float64) float64 { return x + y })
	case t.IsSint():
		x, y := signExtend(a, w), signExtend(b, w)
		min, max := signedRange(w)
		r := fromSigned(x+y, w)
		if y > 0 && x > max-y {
			return r, SignedOverflow
		}
		if y < 0 && x < min-y {
			return r, SignedUnderflow
		}
		return r, NoError
	default:
		sum, carry := bits.Add64(a, b, 0)
		if carry != 0 || sum > Mask(w) {
			return sum & Mask(w), UnsignedOverflow
		}
		return sum, NoError
	}
}

// Sub returns a - b
func Sub(a, b uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		return floatOp(a, b, t, func(x, y float64) float64 { return x - y })
	case t.IsSint():
		x, y := signExtend(a, w), signExtend(b, w)
		min, max := signedRange(w)
		r := fromSigned(x-y, w)
		if y < 0 && x > max+y {
			return r, SignedOverflow
		}
		if y > 0 && x < min+y {
			return r, SignedUnderflow
		}
		return r, NoError
	default:
		r := (a - b) & Mask(w)
		if b > a {
			return r, UnsignedUnderflow
		}
		return r, NoError
	}
}

// Mul returns a * b
func Mul(a, b uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		return floatOp(a, b, t, func(x, y float64) float64 { return x * y })
	case t.IsSint():
		x, y := signExtend(a, w), signExtend(b, w)
		min, max := signedRange(w)
		r := fromSigned(x*y, w)
		switch {
		case (x == -1 && y == min) || (y == -1 && x == min):
			return r, SignedOverflow
		case x == 0 || y == 0 || y == -1 || x == -1:
			return r, NoError
		case y > 0 && x > max/y:
			return r, SignedOverflow
		case y > 0 && x < min/y:
			return r, SignedUnderflow
		case y < 0 && x < max/y:
			return r, SignedOverflow
		case y < 0 && x > min/y:
			return r, SignedUnderflow
		}
		return r, NoError
	default:
		hi, lo := bits.Mul64(a, b)
		if hi != 0 || lo > Mask(w) {
			return lo & Mask(w), UnsignedOverflow
		}
		return lo, NoError
	}
}

// Div returns a / b
func Div(a, b uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		return floatOp(a, b, t, func(x, y float64) float64 { return x / y })
	case b&Mask(w) == 0:
		return a, DivByZero
	case t.IsSint():
		x, y := signExtend(a, w), signExtend(b, w)
		if min, _ := signedRange(w); x == min && y == -1 {
			return a, SignedOverflow
		}
		return fromSigned(x/y, w), NoError
	default:
		return a / b, NoError
	}
}

// Mod returns a % b. Floating point remainders are not supported.
func Mod(a, b uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		return a, InvalidOp
	case b&Mask(w) == 0:
		return a, DivByZero
	case t.IsSint():
		x, y := signExtend(a, w), signExtend(b, w)
		if min, _ := signedRange(w); x == min && y == -1 {
			return 0, SignedOverflow
		}
		return fromSigned(x%y, w), NoError
	default:
		return a % b, NoError
	}
}

// Neg returns -a. Unsigned integers cannot be negated.
func Neg(a uint64, t TypeOp) (uint64, OpError) {
	w := t.Bits()
	switch {
	case t.IsFP():
		x := ToFloat64(a, t)
		if math.IsNaN(x) {
			return a, WasNaN
		}
		return FromFloat64(-x, t), NoError
	case t.IsSint():
		x := signExtend(a, w)
		if min, _ := signedRange(w); x == min {
			return a, SignedUnderflow
		}
		return fromSigned(-x, w), NoError
	default:
		return a, InvalidOp
	}
}
