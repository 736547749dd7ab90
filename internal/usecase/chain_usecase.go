package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/numeric"
)

// Operation names used in logs and metrics.
const (
	OpStartChain         = "start_chain"
	OpStartFromValuation = "start_from_valuation"
	OpAppendRound        = "append_round"
	OpPreviewRound       = "preview_round"
	OpRemoveRound        = "remove_round"
)

// ChainUseCase manages the round chain.
type ChainUseCase struct {
	repo    ChainRepository
	idGen   IDGenerator
	metrics MetricsRecorder
	logger  zerolog.Logger
	now     func() time.Time
}

// NewChainUseCase creates a new ChainUseCase.
func NewChainUseCase(repo ChainRepository, idGen IDGenerator, metrics MetricsRecorder, logger zerolog.Logger) *ChainUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &ChainUseCase{
		repo:    repo,
		idGen:   idGen,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// StartChainInput represents the seed-round form.
type StartChainInput struct {
	Name       string
	Investment string
	Equity     string
	PreMoney   string
	Role       domain.Role
}

// StartChain seeds an empty chain. Pre-money is required; a blank or
// unparseable investment or equity counts as zero.
func (uc *ChainUseCase) StartChain(ctx context.Context, input StartChainInput) (*domain.Chain, error) {
	pre, err := numeric.Parse(input.PreMoney)
	if err != nil {
		return nil, uc.fail(OpStartChain, fmt.Errorf("pre-money valuation: %w", err))
	}
	investment := parseOrZero(input.Investment)
	equity, err := numeric.ParsePercent(input.Equity)
	if err != nil {
		equity = decimal.Zero
	}

	if err := validateAmounts(investment, pre); err != nil {
		return nil, uc.fail(OpStartChain, err)
	}

	name, err := domain.NormalizeRoundName(input.Name, domain.DefaultSeedName)
	if err != nil {
		return nil, uc.fail(OpStartChain, err)
	}

	var snapshot *domain.Chain
	err = uc.repo.Update(ctx, func(chain *domain.Chain) error {
		if !chain.IsEmpty() {
			return domain.ErrChainExists
		}

		data, seed, err := domain.StartChain(domain.SeedInput{
			ID:         uc.idGen.Generate(),
			Name:       name,
			Date:       uc.today(),
			Investment: investment,
			PreMoney:   pre,
			EquitySold: equity,
			Role:       input.Role,
		})
		if err != nil {
			return err
		}

		if err := chain.Start(data, seed); err != nil {
			return err
		}
		snapshot = chain.Clone()
		return nil
	})
	if err != nil {
		return nil, uc.fail(OpStartChain, err)
	}

	uc.metrics.ChainStarted()
	uc.logger.Info().
		Str("round_id", snapshot.Rounds[0].ID).
		Str("role", string(input.Role)).
		Str("post_money", snapshot.Rounds[0].PostMoneyValuation().String()).
		Str("ownership", snapshot.Initial.UserOwnershipPercentage.String()).
		Msg("chain started")

	return snapshot, nil
}

// StartFromValuationInput seeds a chain from a known valuation and a
// directly stated ownership.
type StartFromValuationInput struct {
	Name             string
	CompanyValuation string
	Ownership        string
}

// StartFromValuation seeds an empty chain with a round in which no money
// changes hands.
func (uc *ChainUseCase) StartFromValuation(ctx context.Context, input StartFromValuationInput) (*domain.Chain, error) {
	valuation, err := numeric.Parse(input.CompanyValuation)
	if err != nil {
		return nil, uc.fail(OpStartFromValuation, fmt.Errorf("company valuation: %w", err))
	}
	ownership, err := numeric.ParsePercent(input.Ownership)
	if err != nil {
		return nil, uc.fail(OpStartFromValuation, fmt.Errorf("ownership: %w", err))
	}
	if err := domain.ValidateAmount("company valuation", valuation); err != nil {
		return nil, uc.fail(OpStartFromValuation, err)
	}

	name, err := domain.NormalizeRoundName(input.Name, domain.DefaultSeedName)
	if err != nil {
		return nil, uc.fail(OpStartFromValuation, err)
	}

	var snapshot *domain.Chain
	err = uc.repo.Update(ctx, func(chain *domain.Chain) error {
		if !chain.IsEmpty() {
			return domain.ErrChainExists
		}

		data := &domain.InitialData{
			CompanyValuation:        valuation,
			UserOwnershipPercentage: ownership,
		}
		seed, err := domain.InitialRound(*data, uc.idGen.Generate(), name, uc.today())
		if err != nil {
			return err
		}

		if err := chain.Start(data, seed); err != nil {
			return err
		}
		snapshot = chain.Clone()
		return nil
	})
	if err != nil {
		return nil, uc.fail(OpStartFromValuation, err)
	}

	uc.metrics.ChainStarted()
	uc.logger.Info().
		Str("round_id", snapshot.Rounds[0].ID).
		Str("valuation", valuation.String()).
		Str("ownership", ownership.String()).
		Msg("chain started from valuation")

	return snapshot, nil
}

// AppendRoundInput represents the new-round form. Equity is optional; when
// given it fills in whichever of investment or pre-money is blank.
type AppendRoundInput struct {
	Name       string
	Investment string
	PreMoney   string
	Equity     string
}

// AppendRound adds a round after the current last round.
func (uc *ChainUseCase) AppendRound(ctx context.Context, input AppendRoundInput) (*domain.Round, error) {
	investment, pre, err := resolveRoundAmounts(input)
	if err != nil {
		return nil, uc.fail(OpAppendRound, err)
	}

	var round domain.Round
	var length int
	err = uc.repo.Update(ctx, func(chain *domain.Chain) error {
		name, err := domain.NormalizeRoundName(input.Name, domain.DefaultRoundName(len(chain.Rounds)+1))
		if err != nil {
			return err
		}

		r, err := chain.Append(domain.RoundInput{
			ID:         uc.idGen.Generate(),
			Name:       name,
			Date:       uc.today(),
			Investment: investment,
			PreMoney:   pre,
		})
		if err != nil {
			return err
		}
		round = *r
		length = len(chain.Rounds)
		return nil
	})
	if err != nil {
		return nil, uc.fail(OpAppendRound, err)
	}

	uc.metrics.RoundAppended()
	uc.logger.Info().
		Str("round_id", round.ID).
		Str("name", round.Name).
		Int("chain_length", length).
		Str("ownership", round.UserOwnershipPercentage.String()).
		Msg("round appended")

	return &round, nil
}

// PreviewRound returns the round AppendRound would create without storing
// it. The preview carries no ID.
func (uc *ChainUseCase) PreviewRound(ctx context.Context, input AppendRoundInput) (*domain.Round, error) {
	investment, pre, err := resolveRoundAmounts(input)
	if err != nil {
		return nil, uc.fail(OpPreviewRound, err)
	}

	chain, err := uc.repo.Get(ctx)
	if err != nil {
		return nil, uc.fail(OpPreviewRound, err)
	}

	name, err := domain.NormalizeRoundName(input.Name, domain.DefaultRoundName(len(chain.Rounds)+1))
	if err != nil {
		return nil, uc.fail(OpPreviewRound, err)
	}

	round, err := chain.Preview(domain.RoundInput{
		Name:       name,
		Date:       uc.today(),
		Investment: investment,
		PreMoney:   pre,
	})
	if err != nil {
		return nil, uc.fail(OpPreviewRound, err)
	}
	return round, nil
}

// RemoveRound deletes a round and returns the rebuilt chain.
func (uc *ChainUseCase) RemoveRound(ctx context.Context, id string) (*domain.Chain, error) {
	var snapshot *domain.Chain
	var recalculated int
	err := uc.repo.Update(ctx, func(chain *domain.Chain) error {
		n, err := chain.Remove(id)
		if err != nil {
			return err
		}
		recalculated = n
		snapshot = chain.Clone()
		return nil
	})
	if err != nil {
		return nil, uc.fail(OpRemoveRound, err)
	}

	uc.metrics.RoundRemoved(recalculated)
	if snapshot.IsEmpty() {
		uc.metrics.ChainCleared()
		uc.logger.Info().Str("round_id", id).Msg("last round removed, chain cleared")
		return snapshot, nil
	}

	uc.logger.Info().
		Str("round_id", id).
		Int("recalculated", recalculated).
		Int("chain_length", len(snapshot.Rounds)).
		Msg("round removed")

	return snapshot, nil
}

// GetChain returns a snapshot of the chain.
func (uc *ChainUseCase) GetChain(ctx context.Context) (*domain.Chain, error) {
	return uc.repo.Get(ctx)
}

func (uc *ChainUseCase) today() time.Time {
	return uc.now().UTC().Truncate(24 * time.Hour)
}

func (uc *ChainUseCase) fail(operation string, err error) error {
	uc.metrics.OperationFailed(operation, err)
	uc.logger.Warn().Err(err).Str("operation", operation).Msg("chain operation rejected")
	return err
}

// resolveRoundAmounts parses investment and pre-money, deriving a blank one
// from equity when possible.
func resolveRoundAmounts(input AppendRoundInput) (decimal.Decimal, decimal.Decimal, error) {
	invText := strings.TrimSpace(input.Investment)
	preText := strings.TrimSpace(input.PreMoney)

	if strings.TrimSpace(input.Equity) != "" {
		switch {
		case invText == "" && preText != "":
			invText = DeriveInvestment(preText, input.Equity)
		case preText == "" && invText != "":
			preText = DerivePreMoney(invText, input.Equity)
		}
	}

	investment, err := numeric.Parse(invText)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("investment: %w", err)
	}
	pre, err := numeric.Parse(preText)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("pre-money valuation: %w", err)
	}

	if err := validateAmounts(investment, pre); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return investment, pre, nil
}

func validateAmounts(investment, pre decimal.Decimal) error {
	if err := domain.ValidateAmount("investment", investment); err != nil {
		return err
	}
	return domain.ValidateAmount("pre-money valuation", pre)
}

func parseOrZero(s string) decimal.Decimal {
	v, err := numeric.Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
