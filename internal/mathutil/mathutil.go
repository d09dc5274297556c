// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Package mathutil contains uint64 helpers for decimal coefficients.
package mathutil

import (
	"math/bits"
	"unsafe"
)

// MaxDigits is the number of decimal digits any uint64 value below 10^19 can hold.
const MaxDigits = 19

// MaxCoefficient is the greatest uint64 with MaxDigits decimal digits.
const MaxCoefficient = 9999999999999999999

var (
	decimalFactorTable = [...]uint64{ // up to 1e19
		1, 10, 100, 1000, 10000,
		100000, 1000000, 10000000, 100000000, 1000000000, 10000000000,
		100000000000, 1000000000000, 10000000000000, 100000000000000,
		1000000000000000, 10000000000000000, 100000000000000000,
		1000000000000000000, 10000000000000000000,
	}

	digitsHelper = [...]int{
		0, 0, 0, 0, 1, 1, 1, 2, 2, 2,
		3, 3, 3, 3, 4, 4, 4, 5, 5, 5,
		6, 6, 6, 6, 7, 7, 7, 8, 8, 8,
		9, 9, 9, 9, 10, 10, 10, 11, 11, 11,
		12, 12, 12, 12, 13, 13, 13, 14, 14, 14,
		15, 15, 15, 15, 16, 16, 16, 17, 17, 17,
		18, 18, 18, 18, 19,
	}
)

// Pow10 returns 10^pow, or 0 if it does not fit a uint64.
func Pow10(pow int) uint64 {
	if pow < 0 || pow >= len(decimalFactorTable) {
		return 0
	}
	return decimalFactorTable[pow]
}

// BinaryDigits returns the number of significant bits in value.
func BinaryDigits(value uint64) int {
	return int(8*unsafe.Sizeof(uint64(0))) - bits.LeadingZeros64(value)
}

// DecimalDigits returns the number of decimal digits in 'value'.
// see https://stackoverflow.com/a/25934909
func DecimalDigits(value uint64) int {
	if value == 0 {
		return 1
	}

	digits := digitsHelper[BinaryDigits(value)]
	if value >= decimalFactorTable[digits] {
		digits++
	}
	return digits
}

// Mul64 performs a multiplication of two 64-bit values.
// If the result exceeds 64 bits, the function returns (a*b)/10^exp,
//	where exp is the minimum possible value, so that the result fits 64 bits.
func Mul64(a, b uint64) (mant uint64, exp int) {
	hi, lo := bits.Mul64(a, b)
	if hi > 0 {
		// the result overflows uint64, so we'll divide it by a factor of 10,
		// so that it fits a uint64 value again, and add that factor to the resulting exponent.
		dd := DecimalDigits(hi)
		lo, _ = bits.Div64(hi, lo, Pow10(dd))
		exp = dd
	}
	return lo, exp
}

// MulExact returns a*b and true, if the product fits a uint64.
func MulExact(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}

// FitDigits drops the least significant digits of m until it has at most MaxDigits digits.
// Returns the result and the number of dropped digits.
func FitDigits(m uint64) (uint64, int) {
	var dropped int
	for m > MaxCoefficient {
		m /= 10
		dropped++
	}
	return m, dropped
}

// TrimZeros removes trailing decimal zeros of m, increasing e for each of them.
func TrimZeros(m uint64, e int) (uint64, int) {
	if m == 0 {
		return 0, e
	}
	for m%10 == 0 {
		m /= 10
		e++
	}
	return m, e
}

// MinInt returns the smaller of a and b.
func MinInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// MaxInt returns the greater of a and b.
func MaxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
