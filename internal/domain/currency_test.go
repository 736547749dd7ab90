package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	for input, want := range map[string]Currency{
		"USD": CurrencyUSD,
		"usd": CurrencyUSD,
		"$":   CurrencyUSD,
		"EUR": CurrencyEUR,
		"€":   CurrencyEUR,
	} {
		got, err := ParseCurrency(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, err := ParseCurrency("GBP")
	assert.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestCurrency_Toggle(t *testing.T) {
	assert.Equal(t, CurrencyEUR, CurrencyUSD.Toggle())
	assert.Equal(t, CurrencyUSD, CurrencyEUR.Toggle())
}

func TestCurrency_Format(t *testing.T) {
	assert.Equal(t, "$", CurrencyUSD.Symbol())
	assert.Equal(t, "$1,500,000", CurrencyUSD.Format(d("1500000")))
	assert.Equal(t, "$3,200,000", CurrencyUSD.Format(d("3199999.6")))

	eur := CurrencyEUR.Format(d("1500000"))
	assert.True(t, strings.Contains(eur, "€"), "got %q", eur)
	assert.True(t, strings.HasPrefix(strings.TrimPrefix(eur, "€"), "1"), "got %q", eur)
}

func TestCurrency_FormatBeyondInt64(t *testing.T) {
	tests := []struct {
		name     string
		currency Currency
		amount   string
		want     string
	}{
		{name: "int64 max", currency: CurrencyUSD, amount: "9223372036854775807", want: "$9,223,372,036,854,775,807"},
		{name: "one past int64 max", currency: CurrencyUSD, amount: "9223372036854775808", want: "$9,223,372,036,854,775,808"},
		{name: "1e20", currency: CurrencyUSD, amount: "1e20", want: "$100,000,000,000,000,000,000"},
		{name: "negative", currency: CurrencyUSD, amount: "-123456789012345678901.4", want: "-$123,456,789,012,345,678,901"},
		{name: "euro glyph", currency: CurrencyEUR, amount: "1e20", want: "€100,000,000,000,000,000,000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.currency.Format(d(tt.amount)))
		})
	}
}

func TestCurrency_FormatNeverConverts(t *testing.T) {
	amount := d("1234567")
	usd := strings.TrimPrefix(CurrencyUSD.Format(amount), "$")
	eur := strings.Trim(CurrencyEUR.Format(amount), "€ ")

	digits := func(s string) string {
		return strings.Map(func(r rune) rune {
			if r >= '0' && r <= '9' {
				return r
			}
			return -1
		}, s)
	}
	assert.Equal(t, "1234567", digits(usd))
	assert.Equal(t, digits(usd), digits(eur))
}
