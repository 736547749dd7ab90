package usecase

import "time"

const (
	// DefaultSummaryCacheTTL is how long a generated narrative is reused for
	// an unchanged chain.
	DefaultSummaryCacheTTL = time.Hour

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour
)
