package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Role is the tracked stakeholder's position in the seed round.
type Role string

const (
	RoleFounder  Role = "founder"
	RoleInvestor Role = "investor"
)

// ParseRole parses a role name, case-insensitively.
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleFounder:
		return RoleFounder, nil
	case RoleInvestor:
		return RoleInvestor, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidRole, s)
	}
}

// InitialData is the seed state of a chain.
type InitialData struct {
	CompanyValuation        decimal.Decimal
	UserOwnershipPercentage decimal.Decimal
}

// SeedInput describes the first round of a chain.
type SeedInput struct {
	ID         string
	Name       string
	Date       time.Time
	Investment decimal.Decimal
	PreMoney   decimal.Decimal
	EquitySold decimal.Decimal
	Role       Role
}

// Ownership returns the stakeholder's starting ownership: the equity bought
// for an investor, or what remains after the sale for a founder.
func (in SeedInput) Ownership() (decimal.Decimal, error) {
	switch in.Role {
	case RoleInvestor:
		return in.EquitySold, nil
	case RoleFounder:
		return hundred.Sub(in.EquitySold), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidRole, in.Role)
	}
}

// StartChain builds the initial data and the seed round.
func StartChain(in SeedInput) (*InitialData, *Round, error) {
	if err := ValidatePercentage(in.EquitySold); err != nil {
		return nil, nil, err
	}

	ownership, err := in.Ownership()
	if err != nil {
		return nil, nil, err
	}

	seed := &Round{
		ID:                      in.ID,
		Name:                    in.Name,
		Date:                    in.Date,
		InvestmentAmount:        in.Investment,
		PreMoneyValuation:       in.PreMoney,
		UserOwnershipPercentage: ownership,
		IsInitial:               true,
	}

	data := &InitialData{
		CompanyValuation:        seed.PostMoneyValuation(),
		UserOwnershipPercentage: ownership,
	}

	return data, seed, nil
}

// InitialRound seeds a chain from a known company valuation and a directly
// stated ownership. No money changes hands in this round.
func InitialRound(data InitialData, id, name string, date time.Time) (*Round, error) {
	if err := ValidatePercentage(data.UserOwnershipPercentage); err != nil {
		return nil, err
	}

	return &Round{
		ID:                      id,
		Name:                    name,
		Date:                    date,
		InvestmentAmount:        decimal.Zero,
		PreMoneyValuation:       data.CompanyValuation,
		UserOwnershipPercentage: data.UserOwnershipPercentage,
		IsInitial:               true,
	}, nil
}
