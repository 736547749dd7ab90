package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/mock/gomock"

	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/usecase"
	"github.com/iho/opencap/internal/usecase/mocks"
)

func seededRepo(t *testing.T) *mocks.FakeChainRepository {
	t.Helper()
	repo := mocks.NewFakeChainRepository()
	uc := usecase.NewChainUseCase(repo, mocks.NewSequenceIDGenerator(), nil, zerolog.Nop())
	if _, err := uc.StartChain(context.Background(), usecase.StartChainInput{
		Investment: "1m",
		Equity:     "20",
		PreMoney:   "4m",
		Role:       domain.RoleFounder,
	}); err != nil {
		t.Fatalf("StartChain failed: %v", err)
	}
	return repo
}

func TestSummaryUseCase_Summarize(t *testing.T) {
	tests := []struct {
		name        string
		emptyChain  bool
		setupMocks  func(*mocks.MockAdvisor, *mocks.MockSummaryCache)
		want        string
		wantOutcome usecase.SummaryOutcome
	}{
		{
			name:        "empty chain",
			emptyChain:  true,
			setupMocks:  func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {},
			want:        usecase.FallbackEmptyChain,
			wantOutcome: usecase.SummaryEmptyChain,
		},
		{
			name: "generated and cached",
			setupMocks: func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
				a.EXPECT().Analyze(gomock.Any(), gomock.Len(1), domain.CurrencyUSD).Return("Healthy position.", nil)
				c.EXPECT().Set(gomock.Any(), gomock.Any(), "Healthy position.", time.Minute).Return(nil)
			},
			want:        "Healthy position.",
			wantOutcome: usecase.SummaryGenerated,
		},
		{
			name: "served from cache",
			setupMocks: func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return("Cached text.", true, nil)
			},
			want:        "Cached text.",
			wantOutcome: usecase.SummaryCached,
		},
		{
			name: "cache read error is a miss",
			setupMocks: func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, errors.New("redis down"))
				a.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return("Fresh text.", nil)
				c.EXPECT().Set(gomock.Any(), gomock.Any(), "Fresh text.", gomock.Any()).Return(errors.New("redis down"))
			},
			want:        "Fresh text.",
			wantOutcome: usecase.SummaryGenerated,
		},
		{
			name: "advisor failure",
			setupMocks: func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
				a.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("quota exceeded"))
			},
			want:        usecase.FallbackUnavailable,
			wantOutcome: usecase.SummaryFailed,
		},
		{
			name: "empty model text",
			setupMocks: func(a *mocks.MockAdvisor, c *mocks.MockSummaryCache) {
				c.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, nil)
				a.EXPECT().Analyze(gomock.Any(), gomock.Any(), gomock.Any()).Return("  ", nil)
			},
			want:        usecase.FallbackEmptyResponse,
			wantOutcome: usecase.SummaryEmptyResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			advisor := mocks.NewMockAdvisor(ctrl)
			cache := mocks.NewMockSummaryCache(ctrl)
			tt.setupMocks(advisor, cache)

			var repo usecase.ChainRepository = mocks.NewFakeChainRepository()
			if !tt.emptyChain {
				repo = seededRepo(t)
			}
			metrics := mocks.NewRecordingMetrics()

			uc := usecase.NewSummaryUseCase(repo, advisor, cache, time.Minute, metrics, zerolog.Nop())

			got := uc.Summarize(context.Background(), domain.CurrencyUSD)
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
			if metrics.Summaries[tt.wantOutcome] != 1 {
				t.Errorf("expected outcome %s to be recorded, got %v", tt.wantOutcome, metrics.Summaries)
			}
		})
	}
}

func TestSummaryUseCase_NotConfigured(t *testing.T) {
	uc := usecase.NewSummaryUseCase(seededRepo(t), nil, nil, 0, nil, zerolog.Nop())

	if got := uc.Summarize(context.Background(), domain.CurrencyEUR); got != usecase.FallbackNotConfigured {
		t.Errorf("expected %q, got %q", usecase.FallbackNotConfigured, got)
	}
}

func TestSummaryUseCase_ChainLoadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockChainRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(nil, errors.New("boom"))

	uc := usecase.NewSummaryUseCase(repo, mocks.NewMockAdvisor(ctrl), nil, 0, nil, zerolog.Nop())

	if got := uc.Summarize(context.Background(), domain.CurrencyUSD); got != usecase.FallbackUnavailable {
		t.Errorf("expected %q, got %q", usecase.FallbackUnavailable, got)
	}
}

func TestSummaryKey(t *testing.T) {
	a := seededRepo(t)
	b := seededRepo(t)

	chainA, _ := a.Get(context.Background())
	chainB, _ := b.Get(context.Background())
	chainB.Rounds[0].ID = "other-id"
	chainB.Rounds[0].Date = chainB.Rounds[0].Date.AddDate(0, 0, -3)

	keyA := usecase.SummaryKey(chainA.Rounds, domain.CurrencyUSD)
	if keyA != usecase.SummaryKey(chainB.Rounds, domain.CurrencyUSD) {
		t.Error("identical histories should share a key")
	}
	if keyA == usecase.SummaryKey(chainA.Rounds, domain.CurrencyEUR) {
		t.Error("currency should change the key")
	}

	chainB.Rounds[0].Name = "Renamed"
	if keyA == usecase.SummaryKey(chainB.Rounds, domain.CurrencyUSD) {
		t.Error("round name should change the key")
	}
}
