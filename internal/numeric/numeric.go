// Package numeric normalizes human-entered amounts such as "3m", "10k" or
// "1,250,000" into canonical decimal strings and back into grouped display
// strings.
package numeric

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNotANumber is returned when input has no numeric value.
var ErrNotANumber = errors.New("not a number")

const groupSeparator = ","

// maxExponent bounds scientific notation. Larger exponents would expand to
// arbitrarily long digit strings.
const maxExponent = 30

var (
	// leadingNumber matches the longest numeric prefix a lenient float
	// parser would accept.
	leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

	// groupedShape is an optional signed decimal followed by an optional
	// shorthand letter.
	groupedShape = regexp.MustCompile(`^([+-]?)(\d*)(\.\d*)?([kKmMbB])?$`)

	multipliers = map[byte]decimal.Decimal{
		'k': decimal.NewFromInt(1_000),
		'm': decimal.NewFromInt(1_000_000),
		'b': decimal.NewFromInt(1_000_000_000),
	}
)

// StripGrouping removes grouping separators.
func StripGrouping(input string) string {
	return strings.ReplaceAll(input, groupSeparator, "")
}

// ParseShorthand expands a trailing k, m or b multiplier and returns the
// canonical decimal string. Input without a numeric prefix comes back
// trimmed and lower-cased, which callers treat as unparseable.
func ParseShorthand(input string) string {
	s := strings.ToLower(strings.TrimSpace(StripGrouping(input)))
	if s == "" {
		return ""
	}

	numericPart, multiplier := s, decimal.NewFromInt(1)
	if m, ok := multipliers[s[len(s)-1]]; ok {
		numericPart, multiplier = s[:len(s)-1], m
	}

	value, ok := leadingValue(strings.TrimSpace(numericPart))
	if !ok {
		return s
	}

	return value.Mul(multiplier).String()
}

// FormatGrouped inserts grouping separators into the integer part of input.
// The fraction and any shorthand suffix are kept verbatim. Input of any
// other shape is returned with separators stripped.
func FormatGrouped(input string) string {
	s := StripGrouping(input)

	m := groupedShape.FindStringSubmatch(s)
	if m == nil {
		return s
	}

	sign, integer, fraction, suffix := m[1], m[2], m[3], m[4]
	return sign + group(integer) + fraction + suffix
}

// Parse converts shorthand input into a decimal.
func Parse(input string) (decimal.Decimal, error) {
	s := ParseShorthand(input)
	if s == "" {
		return decimal.Zero, ErrNotANumber
	}

	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrNotANumber
	}
	return v, nil
}

// ParsePercent parses a percentage such as "20", "12.5" or "20%". Shorthand
// multipliers do not apply.
func ParsePercent(input string) (decimal.Decimal, error) {
	s := strings.TrimSpace(input)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))

	v, ok := leadingValue(s)
	if !ok {
		return decimal.Zero, ErrNotANumber
	}
	return v, nil
}

func leadingValue(s string) (decimal.Decimal, bool) {
	m := leadingNumber.FindStringSubmatch(s)
	if m == nil || m[0] == "" {
		return decimal.Zero, false
	}
	prefix := m[0]

	if exp := m[2]; exp != "" {
		n, err := strconv.Atoi(exp[1:])
		if err != nil || n > maxExponent || n < -maxExponent {
			return decimal.Zero, false
		}
	}

	v, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func group(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(groupSeparator)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
