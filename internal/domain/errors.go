package domain

import "errors"

var (
	// Chain errors
	ErrChainEmpty    = errors.New("chain has no rounds")
	ErrChainExists   = errors.New("chain already started")
	ErrRoundNotFound = errors.New("round not found")

	// Calculation errors
	ErrZeroPostMoney        = errors.New("post-money valuation is zero")
	ErrNonPositivePostMoney = errors.New("investment plus pre-money valuation must be positive")
	ErrEquityOutOfRange     = errors.New("equity percentage must be between 0 and 100 exclusive")
)
