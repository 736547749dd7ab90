package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/usecase"
)

// FakeChainRepository is an in-memory ChainRepository with overridable
// behavior.
type FakeChainRepository struct {
	mu    sync.Mutex
	chain *domain.Chain

	GetFunc    func(ctx context.Context) (*domain.Chain, error)
	UpdateFunc func(ctx context.Context, fn func(*domain.Chain) error) error
}

func NewFakeChainRepository() *FakeChainRepository {
	return &FakeChainRepository{chain: &domain.Chain{}}
}

func (m *FakeChainRepository) Get(ctx context.Context) (*domain.Chain, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chain.Clone(), nil
}

func (m *FakeChainRepository) Update(ctx context.Context, fn func(*domain.Chain) error) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, fn)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	working := m.chain.Clone()
	if err := fn(working); err != nil {
		return err
	}
	m.chain = working
	return nil
}

// SequenceIDGenerator returns "id-1", "id-2", ...
type SequenceIDGenerator struct {
	mu sync.Mutex
	n  int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (g *SequenceIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}

// RecordingMetrics counts the events it receives.
type RecordingMetrics struct {
	mu sync.Mutex

	Started      int
	Appended     int
	Removed      int
	Recalculated int
	Cleared      int
	Failures     map[string]int
	Summaries    map[usecase.SummaryOutcome]int
}

func NewRecordingMetrics() *RecordingMetrics {
	return &RecordingMetrics{
		Failures:  make(map[string]int),
		Summaries: make(map[usecase.SummaryOutcome]int),
	}
}

func (m *RecordingMetrics) ChainStarted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Started++
}

func (m *RecordingMetrics) RoundAppended() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Appended++
}

func (m *RecordingMetrics) RoundRemoved(recalculated int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Removed++
	m.Recalculated += recalculated
}

func (m *RecordingMetrics) ChainCleared() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Cleared++
}

func (m *RecordingMetrics) OperationFailed(operation string, _ error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures[operation]++
}

func (m *RecordingMetrics) SummaryServed(outcome usecase.SummaryOutcome, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Summaries[outcome]++
}
