package calculator

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

const (
	// ErrorDisplay is shown in place of a result that cannot be represented
	ErrorDisplay = "Error"

	maxPlainMagnitude = 999999999
	minPlainMagnitude = 0.000001
	mantissaDigits    = 6
	roundingScale     = 1e8
)

// FormatNumber converts a computed result into the string shown on the display.
//
// Infinite and NaN values render as "Error". Magnitudes above 999,999,999 or
// below 0.000001 (but not zero) render in exponential notation with six
// mantissa digits, e.g. "1.000000e+9". Everything else is rounded to eight
// decimal places and rendered as the shortest plain decimal.
func FormatNumber(value float64) string {
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return ErrorDisplay
	}

	abs := math.Abs(value)
	if abs > maxPlainMagnitude || (abs < minPlainMagnitude && value != 0) {
		return formatExponential(value)
	}

	rounded := roundHalfUp(value*roundingScale) / roundingScale
	if rounded == 0 {
		return "0"
	}
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// roundHalfUp rounds x to the nearest integer, ties toward positive infinity.
// Integral inputs are returned unchanged at any magnitude.
func roundHalfUp(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}

// formatExponential renders value as <d>.<6 digits>e<sign><exponent> without
// zero-padding the exponent. A value exactly halfway between two mantissas
// takes the one further from zero.
func formatExponential(value float64) string {
	sign := ""
	if value < 0 {
		sign = "-"
		value = -value
	}

	s := strconv.FormatFloat(value, 'e', mantissaDigits, 64)
	idx := strings.IndexByte(s, 'e')
	if idx < 2 {
		return sign + s
	}
	digits, err := strconv.ParseInt(s[:1]+s[2:idx], 10, 64)
	if err != nil {
		return sign + s
	}
	exponent, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return sign + s
	}

	// strconv breaks exact ties toward an even last digit
	if isHalfway(value, digits, exponent) {
		digits++
		if digits == 10_000_000 {
			digits /= 10
			exponent++
		}
	}

	mantissa := strconv.FormatInt(digits, 10)
	exponentSign := "+"
	if exponent < 0 {
		exponentSign = "-"
		exponent = -exponent
	}
	return sign + mantissa[:1] + "." + mantissa[1:] + "e" + exponentSign + strconv.Itoa(exponent)
}

// isHalfway reports whether value is exactly (digits + 0.5) units of the last
// mantissa place, where digits holds the seven mantissa digits.
func isHalfway(value float64, digits int64, exponent int) bool {
	half := new(big.Rat).SetInt64(10*digits + 5)

	shift := exponent - mantissaDigits - 1
	scale := new(big.Rat).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(max(shift, -shift))), nil))
	if shift >= 0 {
		half.Mul(half, scale)
	} else {
		half.Quo(half, scale)
	}

	return new(big.Rat).SetFloat64(value).Cmp(half) == 0
}
