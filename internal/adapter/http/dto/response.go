package dto

import (
	"github.com/shopspring/decimal"

	"github.com/iho/opencap/internal/domain"
)

// DateLayout is the wire format of round dates.
const DateLayout = "2006-01-02"

// RoundResponse represents a round in API responses.
type RoundResponse struct {
	ID                      string          `json:"id,omitempty"`
	Name                    string          `json:"name"`
	Date                    string          `json:"date"`
	InvestmentAmount        decimal.Decimal `json:"investment_amount"`
	PreMoneyValuation       decimal.Decimal `json:"pre_money_valuation"`
	PostMoneyValuation      decimal.Decimal `json:"post_money_valuation"`
	UserOwnershipPercentage decimal.Decimal `json:"user_ownership_percentage"`
	UserValue               decimal.Decimal `json:"user_value"`
	IsInitial               bool            `json:"is_initial"`
}

// RoundFromDomain converts a domain round to response.
func RoundFromDomain(r *domain.Round) *RoundResponse {
	return &RoundResponse{
		ID:                      r.ID,
		Name:                    r.Name,
		Date:                    r.Date.Format(DateLayout),
		InvestmentAmount:        r.InvestmentAmount,
		PreMoneyValuation:       r.PreMoneyValuation,
		PostMoneyValuation:      r.PostMoneyValuation(),
		UserOwnershipPercentage: r.UserOwnershipPercentage,
		UserValue:               r.UserValue(),
		IsInitial:               r.IsInitial,
	}
}

// RoundsFromDomain converts domain rounds to responses.
func RoundsFromDomain(rounds []*domain.Round) []*RoundResponse {
	result := make([]*RoundResponse, len(rounds))
	for i, r := range rounds {
		result[i] = RoundFromDomain(r)
	}
	return result
}

// InitialDataResponse represents the seed state of a chain.
type InitialDataResponse struct {
	CompanyValuation        decimal.Decimal `json:"company_valuation"`
	UserOwnershipPercentage decimal.Decimal `json:"user_ownership_percentage"`
}

// ChainResponse represents the whole chain. Current is the most recent
// round and is omitted for an empty chain.
type ChainResponse struct {
	InitialData *InitialDataResponse `json:"initial_data"`
	Rounds      []*RoundResponse     `json:"rounds"`
	Total       int                  `json:"total"`
	Current     *RoundResponse       `json:"current,omitempty"`
}

// ChainFromDomain converts a domain chain to response.
func ChainFromDomain(c *domain.Chain) *ChainResponse {
	resp := &ChainResponse{
		Rounds: RoundsFromDomain(c.Rounds),
		Total:  len(c.Rounds),
	}
	if c.Initial != nil {
		resp.InitialData = &InitialDataResponse{
			CompanyValuation:        c.Initial.CompanyValuation,
			UserOwnershipPercentage: c.Initial.UserOwnershipPercentage,
		}
	}
	if last := c.Last(); last != nil {
		resp.Current = RoundFromDomain(last)
	}
	return resp
}

// NormalizeResponse shows an amount in canonical and grouped form.
type NormalizeResponse struct {
	Input     string `json:"input"`
	Parsed    string `json:"parsed"`
	Formatted string `json:"formatted"`
}

// SummaryResponse carries the narrative summary.
type SummaryResponse struct {
	Currency string `json:"currency"`
	Symbol   string `json:"symbol"`
	Summary  string `json:"summary"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
