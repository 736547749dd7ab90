package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ownershipScale is the number of fractional digits kept on a derived
// ownership percentage, so a long chain does not accumulate digits.
const ownershipScale = 16

// Round is one funding event in the chain, seen from the tracked stakeholder.
type Round struct {
	ID                      string
	Name                    string
	Date                    time.Time
	InvestmentAmount        decimal.Decimal
	PreMoneyValuation       decimal.Decimal
	UserOwnershipPercentage decimal.Decimal
	IsInitial               bool
}

// PostMoneyValuation is always pre-money plus investment.
func (r *Round) PostMoneyValuation() decimal.Decimal {
	return r.PreMoneyValuation.Add(r.InvestmentAmount)
}

// UserValue is the stakeholder's ownership applied to post-money valuation.
func (r *Round) UserValue() decimal.Decimal {
	return stakeValue(r.UserOwnershipPercentage, r.PostMoneyValuation())
}

// RoundInput carries the user-supplied fields of a new round.
type RoundInput struct {
	ID         string
	Name       string
	Date       time.Time
	Investment decimal.Decimal
	PreMoney   decimal.Decimal
}

// DilutionFactor returns the fraction of the company existing holders retain
// after a round: preMoney / (preMoney + investment).
func DilutionFactor(investment, preMoney decimal.Decimal) (decimal.Decimal, error) {
	postMoney := preMoney.Add(investment)
	if postMoney.IsZero() {
		return decimal.Zero, ErrZeroPostMoney
	}
	return preMoney.Div(postMoney), nil
}

// NextRound derives the round that follows prev.
func NextRound(prev *Round, in RoundInput) (*Round, error) {
	factor, err := DilutionFactor(in.Investment, in.PreMoney)
	if err != nil {
		return nil, err
	}

	return &Round{
		ID:                      in.ID,
		Name:                    in.Name,
		Date:                    in.Date,
		InvestmentAmount:        in.Investment,
		PreMoneyValuation:       in.PreMoney,
		UserOwnershipPercentage: prev.UserOwnershipPercentage.Mul(factor).Round(ownershipScale),
	}, nil
}

func stakeValue(ownership, postMoney decimal.Decimal) decimal.Decimal {
	return ownership.Div(hundred).Mul(postMoney)
}
