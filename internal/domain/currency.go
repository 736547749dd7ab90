package domain

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ErrInvalidCurrency is returned for a currency outside the supported pair.
var ErrInvalidCurrency = errors.New("unsupported currency")

var maxFormatterAmount = decimal.NewFromInt(math.MaxInt64)

// Currency selects the glyph used to render amounts. It never converts them.
type Currency string

const (
	CurrencyUSD Currency = money.USD
	CurrencyEUR Currency = money.EUR
)

// ParseCurrency accepts an ISO code or a glyph.
func ParseCurrency(s string) (Currency, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "USD", "$":
		return CurrencyUSD, nil
	case "EUR", "€":
		return CurrencyEUR, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, s)
	}
}

// Toggle switches between the two supported glyphs.
func (c Currency) Toggle() Currency {
	if c == CurrencyEUR {
		return CurrencyUSD
	}
	return CurrencyEUR
}

// Symbol returns the currency glyph.
func (c Currency) Symbol() string {
	return c.currency().Grapheme
}

// Format renders amount rounded to whole units with the currency glyph and
// thousands grouping, e.g. "$1,500,000".
func (c Currency) Format(amount decimal.Decimal) string {
	cur := c.currency()
	whole := amount.Round(0)
	if whole.Abs().LessThanOrEqual(maxFormatterAmount) {
		f := money.NewFormatter(0, cur.Decimal, cur.Thousand, cur.Grapheme, "$1")
		return f.Format(whole.IntPart())
	}

	// Out of int64 range: same layout as the formatter, grouped by hand.
	out := cur.Grapheme + groupThousands(whole.Abs().String(), cur.Thousand)
	if whole.IsNegative() {
		out = "-" + out
	}
	return out
}

func groupThousands(digits, sep string) string {
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteString(sep)
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (c Currency) currency() *money.Currency {
	if cur := money.GetCurrency(string(c)); cur != nil {
		return cur
	}
	return money.GetCurrency(money.USD)
}
