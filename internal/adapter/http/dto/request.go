package dto

import (
	"bytes"
	"encoding/json"

	"github.com/iho/opencap/internal/usecase"
)

// Amount is raw amount text. It accepts a JSON string such as "1.5m" or a
// plain JSON number.
type Amount string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Amount) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = Amount(n.String())
	return nil
}

// StartChainRequest seeds the chain. When Ownership is set the chain starts
// from CompanyValuation and Ownership; otherwise from the seed round fields.
type StartChainRequest struct {
	Name             string  `json:"name"`
	Role             string  `json:"role"`
	Investment       Amount  `json:"investment"`
	Equity           Amount  `json:"equity"`
	PreMoney         Amount  `json:"pre_money"`
	CompanyValuation Amount  `json:"company_valuation,omitempty"`
	Ownership        *Amount `json:"ownership,omitempty"`
}

// FromValuation reports whether the request states ownership directly.
func (r *StartChainRequest) FromValuation() bool {
	return r.Ownership != nil
}

// ToValuationInput converts to use case input.
func (r *StartChainRequest) ToValuationInput() usecase.StartFromValuationInput {
	in := usecase.StartFromValuationInput{
		Name:             r.Name,
		CompanyValuation: string(r.CompanyValuation),
	}
	if r.Ownership != nil {
		in.Ownership = string(*r.Ownership)
	}
	return in
}

// AppendRoundRequest adds a round. Equity is optional and fills in a blank
// investment or pre-money.
type AppendRoundRequest struct {
	Name       string `json:"name"`
	Investment Amount `json:"investment"`
	PreMoney   Amount `json:"pre_money"`
	Equity     Amount `json:"equity,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AppendRoundRequest) ToUseCaseInput() usecase.AppendRoundInput {
	return usecase.AppendRoundInput{
		Name:       r.Name,
		Investment: string(r.Investment),
		PreMoney:   string(r.PreMoney),
		Equity:     string(r.Equity),
	}
}

// RoundForm carries the three linked round fields.
type RoundForm struct {
	Investment string `json:"investment"`
	Equity     string `json:"equity"`
	PreMoney   string `json:"pre_money"`
}

// ToUseCase converts to the use case form.
func (f RoundForm) ToUseCase() usecase.RoundForm {
	return usecase.RoundForm{
		Investment: f.Investment,
		Equity:     f.Equity,
		PreMoney:   f.PreMoney,
	}
}

// RoundFormFromUseCase converts a use case form.
func RoundFormFromUseCase(f usecase.RoundForm) RoundForm {
	return RoundForm{
		Investment: f.Investment,
		Equity:     f.Equity,
		PreMoney:   f.PreMoney,
	}
}

// SyncRequest edits one field of a round form. With Commit set the field is
// finalized instead and Value is ignored.
type SyncRequest struct {
	Form   RoundForm `json:"form"`
	Field  string    `json:"field"`
	Value  string    `json:"value"`
	Commit bool      `json:"commit"`
}
