// Copyright (C) 2025 SAGE-X Project
//
// This file is part of go-httpsig. See LICENSE notice in errors.go.

package sfv

import (
	"fmt"
	"strconv"
	"strings"
)

// Decimal is an RFC 8941 sf-decimal: a fixed-point number with at most
// 12 integer digits and at most 3 fractional digits. It is stored
// internally as the value scaled by 1000, which keeps the full legal
// range (|integer part| < 10^12) comfortably inside an int64.
type Decimal struct {
	// Scaled is value*1000, rounded half-to-even to the third
	// fractional digit.
	Scaled int64
}

const decimalMaxIntegerDigits = 12
const decimalScale = 1000

// maxDecimalScaled is 10^12 * 1000, the exclusive bound on |Scaled|.
const maxDecimalScaled = 1_000_000_000_000 * decimalScale

// NewDecimal builds a Decimal from a value already expressed as
// thousandths (i.e. Scaled = value*1000). It rejects magnitudes whose
// integer part would need more than 12 digits.
func NewDecimal(scaled int64) (Decimal, error) {
	if scaled <= -maxDecimalScaled || scaled >= maxDecimalScaled {
		return Decimal{}, newErr(CodeWrongNumber, "decimal integer part exceeds 12 digits")
	}
	return Decimal{Scaled: scaled}, nil
}

// NewDecimalFromFloat rounds v to 3 fractional digits using
// round-half-to-even and constructs a Decimal.
func NewDecimalFromFloat(v float64) (Decimal, error) {
	scaled := roundHalfToEven(v * decimalScale)
	return NewDecimal(scaled)
}

// roundHalfToEven implements banker's rounding on a float already
// shifted so that the rounding boundary falls on whole numbers.
func roundHalfToEven(x float64) int64 {
	floor := int64(x)
	frac := x - float64(floor)
	switch {
	case frac > 0.5:
		return floor + 1
	case frac < -0.5:
		return floor - 1
	case frac == 0.5 && floor%2 != 0:
		return floor + 1
	case frac == -0.5 && floor%2 != 0:
		return floor - 1
	default:
		return floor
	}
}

// String renders the canonical form: minimal fractional digits, at
// least one digit after the decimal point.
func (d Decimal) String() string {
	neg := d.Scaled < 0
	abs := d.Scaled
	if neg {
		abs = -abs
	}
	intPart := abs / decimalScale
	frac := abs % decimalScale
	fracStr := fmt.Sprintf("%03d", frac)
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s%d.%s", sign, intPart, fracStr)
}

// parseDecimalDigits builds a Decimal from the sign and the raw digit
// string (including exactly one '.') already validated by the
// tokenizer in parser.go.
func parseDecimalDigits(sign int64, digits string) (Decimal, error) {
	dot := strings.IndexByte(digits, '.')
	intPart := digits[:dot]
	fracPart := digits[dot+1:]
	if len(fracPart) == 0 || len(fracPart) > 3 {
		return Decimal{}, newErr(CodeWrongNumber, "decimal %q must have 1-3 fractional digits", digits)
	}
	if len(intPart) > decimalMaxIntegerDigits {
		return Decimal{}, newErr(CodeWrongNumber, "decimal %q integer part exceeds 12 digits", digits)
	}
	intVal, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Decimal{}, wrapErr(CodeWrongNumber, err, "decimal %q integer part invalid", digits)
	}
	for len(fracPart) < 3 {
		fracPart += "0"
	}
	fracVal, err := strconv.ParseInt(fracPart, 10, 64)
	if err != nil {
		return Decimal{}, wrapErr(CodeWrongNumber, err, "decimal %q fractional part invalid", digits)
	}
	scaled := sign * (intVal*decimalScale + fracVal)
	return NewDecimal(scaled)
}
