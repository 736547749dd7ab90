package usecase

import (
	"context"
	"time"

	"github.com/iho/opencap/internal/domain"
)

// ChainRepository holds the session's round chain.
type ChainRepository interface {
	// Get returns a snapshot of the chain. It never returns nil.
	Get(ctx context.Context) (*domain.Chain, error)
	// Update calls fn with a copy of the chain and stores the copy only when
	// fn returns nil. Calls are serialized.
	Update(ctx context.Context, fn func(chain *domain.Chain) error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Advisor writes a short narrative about a chain's dilution trend.
type Advisor interface {
	Analyze(ctx context.Context, rounds []*domain.Round, currency domain.Currency) (string, error)
}

// SummaryCache stores generated narratives.
type SummaryCache interface {
	// Get returns (value, found, error).
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request did not succeed.
	Release(ctx context.Context, key string) error
}

// MetricsRecorder receives chain and summary events.
type MetricsRecorder interface {
	ChainStarted()
	RoundAppended()
	RoundRemoved(recalculated int)
	ChainCleared()
	OperationFailed(operation string, err error)
	SummaryServed(outcome SummaryOutcome, elapsed time.Duration)
}

// NopMetrics discards all events.
type NopMetrics struct{}

func (NopMetrics) ChainStarted()                               {}
func (NopMetrics) RoundAppended()                              {}
func (NopMetrics) RoundRemoved(int)                            {}
func (NopMetrics) ChainCleared()                               {}
func (NopMetrics) OperationFailed(string, error)               {}
func (NopMetrics) SummaryServed(SummaryOutcome, time.Duration) {}
