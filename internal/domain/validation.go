package domain

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrInvalidRoundName    = errors.New("invalid round name")
	ErrInvalidRole         = errors.New("invalid role")
	ErrNegativeAmount      = errors.New("amount must not be negative")
	ErrOwnershipOutOfRange = errors.New("percentage must be between 0 and 100")
)

// Validation constants
const (
	MaxRoundNameLength = 120
	DefaultSeedName    = "Initial Round"
)

// NormalizeRoundName trims name and falls back to def when it is blank.
func NormalizeRoundName(name, def string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = def
	}

	if name == "" {
		return "", fmt.Errorf("%w: name cannot be empty", ErrInvalidRoundName)
	}

	if utf8.RuneCountInString(name) > MaxRoundNameLength {
		return "", fmt.Errorf("%w: name exceeds %d characters", ErrInvalidRoundName, MaxRoundNameLength)
	}

	return name, nil
}

// DefaultRoundName is the label given to the n-th round (1-based) when the
// caller leaves the name blank.
func DefaultRoundName(n int) string {
	return fmt.Sprintf("Round %d", n)
}

// ValidateAmount rejects negative investment or valuation amounts.
func ValidateAmount(field string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is %s", ErrNegativeAmount, field, amount.String())
	}
	return nil
}

// ValidatePercentage checks that p lies in [0, 100].
func ValidatePercentage(p decimal.Decimal) error {
	if p.IsNegative() || p.GreaterThan(hundred) {
		return fmt.Errorf("%w: got %s", ErrOwnershipOutOfRange, p.String())
	}
	return nil
}
