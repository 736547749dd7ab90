package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/numeric"
)

// The Derive functions work on raw field text. They return "" whenever the
// inputs are unparseable or outside the valid range, which callers show as
// a blank field.

// DerivePreMoney returns the pre-money valuation implied by an investment
// buying equity percent, rounded to whole units and grouped.
func DerivePreMoney(investment, equity string) string {
	inv, err := numeric.Parse(investment)
	if err != nil {
		return ""
	}
	eq, err := numeric.ParsePercent(equity)
	if err != nil {
		return ""
	}

	pre, err := domain.ImpliedPreMoney(inv, eq)
	if err != nil {
		return ""
	}
	return formatMoney(pre)
}

// DeriveInvestment returns the investment that buys equity percent at the
// given pre-money valuation, rounded to whole units and grouped.
func DeriveInvestment(preMoney, equity string) string {
	pre, err := numeric.Parse(preMoney)
	if err != nil {
		return ""
	}
	eq, err := numeric.ParsePercent(equity)
	if err != nil {
		return ""
	}

	inv, err := domain.ImpliedInvestment(pre, eq)
	if err != nil {
		return ""
	}
	return formatMoney(inv)
}

// DeriveEquity returns the percentage bought by investment at the given
// pre-money valuation, to two decimals.
func DeriveEquity(investment, preMoney string) string {
	inv, err := numeric.Parse(investment)
	if err != nil {
		return ""
	}
	pre, err := numeric.Parse(preMoney)
	if err != nil {
		return ""
	}

	eq, err := domain.ImpliedEquity(inv, pre)
	if err != nil {
		return ""
	}
	return eq.StringFixed(2)
}

func formatMoney(v decimal.Decimal) string {
	return numeric.FormatGrouped(v.Round(0).String())
}
