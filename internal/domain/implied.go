package domain

import "github.com/shopspring/decimal"

// Given two of {investment, pre-money, equity%} the third is implied.
// Results are unrounded; rounding for display belongs to the caller.

// ImpliedPreMoney returns the pre-money valuation at which investment buys
// equity percent of the company.
func ImpliedPreMoney(investment, equity decimal.Decimal) (decimal.Decimal, error) {
	if err := validateEquity(equity); err != nil {
		return decimal.Zero, err
	}
	postMoney := investment.Div(equity.Div(hundred))
	return postMoney.Sub(investment), nil
}

// ImpliedInvestment returns the investment that buys equity percent at the
// given pre-money valuation.
func ImpliedInvestment(preMoney, equity decimal.Decimal) (decimal.Decimal, error) {
	if err := validateEquity(equity); err != nil {
		return decimal.Zero, err
	}
	fraction := equity.Div(hundred)
	return preMoney.Mul(fraction).Div(decimal.NewFromInt(1).Sub(fraction)), nil
}

// ImpliedEquity returns the percentage of the company bought by investment.
func ImpliedEquity(investment, preMoney decimal.Decimal) (decimal.Decimal, error) {
	postMoney := investment.Add(preMoney)
	if !postMoney.IsPositive() {
		return decimal.Zero, ErrNonPositivePostMoney
	}
	return investment.Div(postMoney).Mul(hundred), nil
}

func validateEquity(equity decimal.Decimal) error {
	if !equity.IsPositive() || !equity.LessThan(hundred) {
		return ErrEquityOutOfRange
	}
	return nil
}
