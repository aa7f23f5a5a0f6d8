// Amount conversion between a network's decimal representation and the
// integer base units all local arithmetic runs on.
// ToBaseUnits and FromBaseUnits are exact inverses for any value with at
// most `precision` fractional digits inside the int64 range.

package assetregistry

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

var (
	ErrAmountMalformed = errors.New("amount is not a valid decimal string")
	// ErrAmountOverflow signals the base-unit result does not fit in an
	// int64. Callers needing larger amounts must switch to big.Int
	// arithmetic end to end; truncating here is never acceptable.
	ErrAmountOverflow  = errors.New("amount exceeds the base-unit integer range")
	ErrAmountPrecision = errors.New("amount carries more fractional digits than the asset precision")
)

var maxBaseUnits = big.NewInt(0).SetInt64(1<<63 - 1)

// ToBaseUnits parses a decimal string and scales it to an integer with
// exactly `precision` fractional digits folded in.
// "1.5" at precision 6 becomes 1500000.
func ToBaseUnits(decimal string, precision uint8) (int64, error) {
	s := strings.TrimSpace(decimal)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	} else if strings.HasPrefix(s, "+") {
		s = s[1:]
	}
	if s == "" {
		return 0, ErrAmountMalformed
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i+1:]
	}
	// At least one digit must be present; a lone dot is not zero.
	if intPart == "" && fracPart == "" {
		return 0, ErrAmountMalformed
	}
	if intPart == "" {
		intPart = "0"
	}
	if !isDigits(intPart) || (fracPart != "" && !isDigits(fracPart)) {
		return 0, ErrAmountMalformed
	}

	if len(fracPart) > int(precision) {
		// Only zero digits may be cut; anything else would silently
		// change the amount.
		if strings.Trim(fracPart[precision:], "0") != "" {
			return 0, fmt.Errorf("%w: %q at precision %d", ErrAmountPrecision, decimal, precision)
		}
		fracPart = fracPart[:precision]
	}
	fracPart += strings.Repeat("0", int(precision)-len(fracPart))

	units, ok := big.NewInt(0).SetString(intPart+fracPart, 10)
	if !ok {
		return 0, ErrAmountMalformed
	}
	if units.CmpAbs(maxBaseUnits) > 0 {
		return 0, fmt.Errorf("%w: %q at precision %d", ErrAmountOverflow, decimal, precision)
	}
	if neg {
		units.Neg(units)
	}
	return units.Int64(), nil
}

// FromBaseUnits renders base units back into a decimal string with
// `precision` fractional digits. Sign is preserved.
func FromBaseUnits(units int64, precision uint8) string {
	u := big.NewInt(units)
	neg := u.Sign() < 0
	u.Abs(u)

	digits := u.String()
	if len(digits) <= int(precision) {
		digits = strings.Repeat("0", int(precision)-len(digits)+1) + digits
	}
	cut := len(digits) - int(precision)
	out := digits[:cut]
	if precision > 0 {
		out += "." + digits[cut:]
	}
	if neg {
		out = "-" + out
	}
	return out
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
