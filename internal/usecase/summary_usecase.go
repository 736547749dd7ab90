package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/iho/opencap/internal/domain"
)

// Fixed texts returned in place of a generated narrative.
const (
	FallbackEmptyChain    = "Add a funding round to get an analysis of your cap table."
	FallbackNotConfigured = "AI Analysis is unavailable: API Key not found in environment."
	FallbackUnavailable   = "The AI is currently unavailable to analyze your cap table."
	FallbackEmptyResponse = "Could not generate analysis."
)

// SummaryOutcome labels how a summary request was answered.
type SummaryOutcome string

const (
	SummaryGenerated     SummaryOutcome = "generated"
	SummaryCached        SummaryOutcome = "cached"
	SummaryEmptyChain    SummaryOutcome = "empty_chain"
	SummaryNotConfigured SummaryOutcome = "not_configured"
	SummaryFailed        SummaryOutcome = "failed"
	SummaryEmptyResponse SummaryOutcome = "empty_response"
)

// SummaryUseCase produces the narrative summary of the chain.
type SummaryUseCase struct {
	repo    ChainRepository
	advisor Advisor
	cache   SummaryCache
	ttl     time.Duration
	metrics MetricsRecorder
	logger  zerolog.Logger
}

// NewSummaryUseCase creates a new SummaryUseCase. advisor and cache may be
// nil; a nil advisor answers every request with FallbackNotConfigured.
func NewSummaryUseCase(
	repo ChainRepository,
	advisor Advisor,
	cache SummaryCache,
	ttl time.Duration,
	metrics MetricsRecorder,
	logger zerolog.Logger,
) *SummaryUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	if ttl <= 0 {
		ttl = DefaultSummaryCacheTTL
	}
	return &SummaryUseCase{
		repo:    repo,
		advisor: advisor,
		cache:   cache,
		ttl:     ttl,
		metrics: metrics,
		logger:  logger,
	}
}

// Summarize returns a narrative for the current chain. It never fails:
// every error degrades to one of the fallback texts.
func (uc *SummaryUseCase) Summarize(ctx context.Context, currency domain.Currency) string {
	start := time.Now()
	text, outcome := uc.summarize(ctx, currency)
	uc.metrics.SummaryServed(outcome, time.Since(start))
	return text
}

func (uc *SummaryUseCase) summarize(ctx context.Context, currency domain.Currency) (string, SummaryOutcome) {
	chain, err := uc.repo.Get(ctx)
	if err != nil {
		uc.logger.Error().Err(err).Msg("failed to load chain for summary")
		return FallbackUnavailable, SummaryFailed
	}
	if chain.IsEmpty() {
		return FallbackEmptyChain, SummaryEmptyChain
	}
	if uc.advisor == nil {
		return FallbackNotConfigured, SummaryNotConfigured
	}

	key := SummaryKey(chain.Rounds, currency)
	if uc.cache != nil {
		cached, found, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.logger.Warn().Err(err).Msg("summary cache read failed")
		} else if found {
			return cached, SummaryCached
		}
	}

	text, err := uc.advisor.Analyze(ctx, chain.Rounds, currency)
	if err != nil {
		uc.logger.Error().Err(err).Int("rounds", len(chain.Rounds)).Msg("summary generation failed")
		return FallbackUnavailable, SummaryFailed
	}
	if strings.TrimSpace(text) == "" {
		return FallbackEmptyResponse, SummaryEmptyResponse
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, text, uc.ttl); err != nil {
			uc.logger.Warn().Err(err).Msg("summary cache write failed")
		}
	}

	uc.logger.Info().Int("rounds", len(chain.Rounds)).Str("currency", string(currency)).Msg("summary generated")
	return text, SummaryGenerated
}

// SummaryKey identifies a chain's history and currency. Round ids and dates
// are excluded so identical histories share a key.
func SummaryKey(rounds []*domain.Round, currency domain.Currency) string {
	h := sha256.New()
	h.Write([]byte(currency))
	for _, r := range rounds {
		h.Write([]byte{'\n'})
		h.Write([]byte(r.Name))
		h.Write([]byte{0})
		h.Write([]byte(r.InvestmentAmount.String()))
		h.Write([]byte{0})
		h.Write([]byte(r.PreMoneyValuation.String()))
		h.Write([]byte{0})
		h.Write([]byte(r.UserOwnershipPercentage.String()))
	}
	return hex.EncodeToString(h.Sum(nil))
}
