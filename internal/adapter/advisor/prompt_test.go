package advisor

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/opencap/internal/domain"
)

func testRounds() []*domain.Round {
	return []*domain.Round{
		{
			ID:                      "r1",
			Name:                    "Seed",
			Date:                    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			InvestmentAmount:        decimal.NewFromInt(1_000_000),
			PreMoneyValuation:       decimal.NewFromInt(4_000_000),
			UserOwnershipPercentage: decimal.NewFromInt(80),
			IsInitial:               true,
		},
		{
			ID:                      "r2",
			Name:                    "Series A",
			Date:                    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
			InvestmentAmount:        decimal.NewFromInt(2_000_000),
			PreMoneyValuation:       decimal.NewFromInt(8_000_000),
			UserOwnershipPercentage: decimal.NewFromInt(64),
		},
	}
}

func TestHistoryLines(t *testing.T) {
	got := HistoryLines(testRounds(), domain.CurrencyUSD)
	want := "- Seed: Valuation $5,000,000, User Ownership 80.00%, Value $4,000,000\n" +
		"- Series A: Valuation $10,000,000, User Ownership 64.00%, Value $6,400,000"

	if got != want {
		t.Errorf("unexpected history:\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildPrompt(t *testing.T) {
	tests := []struct {
		currency domain.Currency
		code     string
		glyph    string
	}{
		{domain.CurrencyUSD, "USD", "$"},
		{domain.CurrencyEUR, "EUR", "€"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			prompt := BuildPrompt(testRounds(), tt.currency)

			if !strings.Contains(prompt, "All values are in "+tt.code+".") {
				t.Errorf("prompt should name %s", tt.code)
			}
			if !strings.Contains(prompt, "Valuation "+tt.glyph+"5,000,000") {
				t.Errorf("prompt should format amounts with %s", tt.glyph)
			}
			if !strings.Contains(prompt, "under 150 words") {
				t.Error("prompt should bound the answer length")
			}
		})
	}
}
