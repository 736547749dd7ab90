// Package memory keeps the session's round chain in process memory.
package memory

import (
	"context"
	"sync"

	"github.com/iho/opencap/internal/domain"
)

// ChainRepository implements usecase.ChainRepository for a single session.
type ChainRepository struct {
	mu    sync.RWMutex
	chain *domain.Chain
}

// NewChainRepository creates an empty ChainRepository.
func NewChainRepository() *ChainRepository {
	return &ChainRepository{chain: &domain.Chain{}}
}

// Get returns a copy of the stored chain.
func (r *ChainRepository) Get(ctx context.Context) (*domain.Chain, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.chain.Clone(), nil
}

// Update applies fn to a working copy and commits it only when fn succeeds.
func (r *ChainRepository) Update(ctx context.Context, fn func(chain *domain.Chain) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	working := r.chain.Clone()
	if err := fn(working); err != nil {
		return err
	}
	r.chain = working
	return nil
}
