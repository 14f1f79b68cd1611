// =============================================================================
// Record Translator - Amount Normalizer
// =============================================================================
//
// This module turns free-form amount text from the legacy exports into an
// exact decimal amount with two fractional digits.
//
// ACCEPTED SPELLINGS:
//   - Plain decimals and integers        : "54.5", "10000", ".5", "123."
//   - Currency glyphs                    : "$123.45", "£123.45", "€123.45"
//   - Digit-group separators             : "1,234,567.89"
//   - Accounting negatives               : "(123.45)"
//   - Scientific notation                : "1.23e2", "1.000e3"
//   - Labelled or suffixed amounts       : "Subtotal: 123.45", "123.45 USD"
//   - Two-operand expressions            : "123-45", "123+45"
//   - Scaled integers (fixed-width input): "5450" -> 54.50
//
// FAILURE POLICY:
//   Amounts never fail. Anything that cannot be read degrades to 0.00. Dates
//   are the opposite (see date.go).
//
// =============================================================================

package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountPlaces is the number of fractional digits every amount is rounded to.
const AmountPlaces = 2

// maxExponent bounds scientific-notation exponents so the value stays finite.
const maxExponent = 308

var (
	// stripper removes currency glyphs and digit-group separators.
	stripper = strings.NewReplacer("$", "", "£", "", "€", "", ",", "")

	// scientificPattern matches a whole string in scientific notation.
	scientificPattern = regexp.MustCompile(`^[-+]?[0-9]*\.?[0-9]+[eE][-+]?[0-9]+$`)

	// numericToken finds the first number inside arbitrary text.
	numericToken = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+(?:[eE][-+]?[0-9]+)?`)

	// plainNumber matches a complete, standalone number.
	plainNumber = regexp.MustCompile(`^[-+]?(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][-+]?[0-9]+)?$`)

	// startsWithLetter detects labelled amounts such as "Subtotal: 12".
	startsWithLetter = regexp.MustCompile(`^[a-zA-Z]`)
)

// hundred divides scaled integers into units.
var hundred = decimal.NewFromInt(100)

// =============================================================================
// NORMALIZATION
// =============================================================================

// NormalizeAmount converts amount text into a decimal rounded to two places.
//
// PARAMETERS:
//   - text: The raw field value.
//   - scaled: True when the source stores hundredths of a unit without a
//     decimal point (fixed-width exports). The extracted number is divided
//     by 100.
//
// RETURNS:
//   - The normalized amount. Unreadable input yields decimal.Zero.
//
// PROCESSING ORDER:
//   1. Trim; empty text is zero
//   2. Strip accounting parentheses and remember the negative sign
//   3. Strip currency glyphs and group separators
//   4. Two-operand expressions are evaluated and returned directly
//   5. Whole-string scientific notation is returned with the sign applied
//   6. Otherwise the first numeric token is extracted
//   7. A token glued to leading text ("abc123") is refused
//   8. Scale, apply the sign, round half away from zero
func NormalizeAmount(text string, scaled bool) decimal.Decimal {
	working := strings.TrimSpace(text)
	if working == "" {
		return decimal.Zero
	}

	negative := false
	if len(working) >= 2 && strings.HasPrefix(working, "(") && strings.HasSuffix(working, ")") {
		negative = true
		working = working[1 : len(working)-1]
	}

	working = strings.TrimSpace(stripper.Replace(working))

	// NOTE: "123-45" evaluates to 78. Hyphenated identifiers that leak into
	// an amount column are read the same way.
	if result, ok := evaluateExpression(working); ok {
		return result.Round(AmountPlaces)
	}

	if scientificPattern.MatchString(working) {
		if value, ok := parseNumber(working); ok {
			if negative {
				value = value.Neg()
			}
			return value.Round(AmountPlaces)
		}
	}

	loc := numericToken.FindStringIndex(working)
	if loc == nil {
		return decimal.Zero
	}

	if loc[0] > 0 && startsWithLetter.MatchString(working) {
		switch working[loc[0]-1] {
		case ':', ' ', '-':
		default:
			return decimal.Zero
		}
	}

	value, ok := parseNumber(working[loc[0]:loc[1]])
	if !ok {
		return decimal.Zero
	}

	if scaled {
		value = value.Div(hundred)
	}
	if negative {
		value = value.Neg()
	}

	return value.Round(AmountPlaces)
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// evaluateExpression evaluates "a-b" or "a+b" when the operator is not a
// leading sign and both operands are numbers. Subtraction is tried first.
func evaluateExpression(s string) (decimal.Decimal, bool) {
	for _, operator := range []string{"-", "+"} {
		index := strings.Index(s, operator)
		if index <= 0 {
			continue
		}

		parts := strings.Split(s, operator)
		if len(parts) != 2 {
			continue
		}

		left, ok := parseNumber(parts[0])
		if !ok {
			continue
		}
		right, ok := parseNumber(parts[1])
		if !ok {
			continue
		}

		if operator == "-" {
			return left.Sub(right), true
		}
		return left.Add(right), true
	}

	return decimal.Zero, false
}

// parseNumber parses a complete number such as "-12.5", ".5", "5." or
// "1.2e3" into an exact decimal.
func parseNumber(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if !plainNumber.MatchString(s) {
		return decimal.Zero, false
	}

	mantissa, exponent := s, ""
	if i := strings.IndexAny(s, "eE"); i >= 0 {
		mantissa, exponent = s[:i], s[i+1:]
	}

	sign := ""
	switch mantissa[0] {
	case '-':
		sign = "-"
		mantissa = mantissa[1:]
	case '+':
		mantissa = mantissa[1:]
	}

	if strings.HasPrefix(mantissa, ".") {
		mantissa = "0" + mantissa
	}
	mantissa = strings.TrimSuffix(mantissa, ".")

	value, err := decimal.NewFromString(sign + mantissa)
	if err != nil {
		return decimal.Zero, false
	}

	if exponent == "" {
		return value, true
	}

	exp, err := strconv.Atoi(exponent)
	if err != nil || exp > maxExponent || exp < -maxExponent {
		return decimal.Zero, false
	}

	return value.Shift(int32(exp)), true
}
