package qword

import (
	"math"
)

// Cnv converts a word of type from to a word of type to. Integral to
// integral conversions truncate or extend without error, floating point to
// integral conversions saturate and report the overflow.
func Cnv(v uint64, from, to TypeOp) (uint64, OpError) {
	if from.IsFP() {
		f := ToFloat64(v, from)
		if math.IsNaN(f) {
			return 0, WasNaN
		}
		if to.IsFP() {
			return FromFloat64(f, to), NoError
		}
		return floatToInt(f, to)
	}

	if to.IsFP() {
		if from.IsSint() {
			return FromFloat64(float64(signExtend(v, from.Bits())), to), NoError
		}
		return FromFloat64(float64(v&Mask(from.Bits())), to), NoError
	}

	if from.IsSint() {
		return fromSigned(signExtend(v, from.Bits()), to.Bits()), NoError
	}
	return v & Mask(from.Bits()) & Mask(to.Bits()), NoError
}

func floatToInt(f float64, to TypeOp) (uint64, OpError) {
	w := to.Bits()
	f = math.Trunc(f)
	if to.IsUint() {
		if f < 0 {
			return 0, UnsignedUnderflow
		}
		// 2^w is exactly representable, Mask(w) is not for w == 64
		if f >= math.Ldexp(1, int(w)) {
			return Mask(w), UnsignedOverflow
		}
		return uint64(f), NoError
	}

	min, max := signedRange(w)
	if f >= math.Ldexp(1, int(w)-1) {
		return fromSigned(max, w), SignedOverflow
	}
	if f < -math.Ldexp(1, int(w)-1) {
		return fromSigned(min, w), SignedUnderflow
	}
	return fromSigned(int64(f), w), NoError
}
