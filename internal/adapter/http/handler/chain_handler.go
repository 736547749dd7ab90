package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/domain"
	"github.com/iho/opencap/internal/usecase"
)

// ChainService defines the behavior needed by ChainHandler.
type ChainService interface {
	StartChain(ctx context.Context, input usecase.StartChainInput) (*domain.Chain, error)
	StartFromValuation(ctx context.Context, input usecase.StartFromValuationInput) (*domain.Chain, error)
	AppendRound(ctx context.Context, input usecase.AppendRoundInput) (*domain.Round, error)
	PreviewRound(ctx context.Context, input usecase.AppendRoundInput) (*domain.Round, error)
	RemoveRound(ctx context.Context, id string) (*domain.Chain, error)
	GetChain(ctx context.Context) (*domain.Chain, error)
}

// ChainHandler handles round chain HTTP requests.
type ChainHandler struct {
	chainUC ChainService
}

// NewChainHandler creates a new ChainHandler.
func NewChainHandler(chainUC ChainService) *ChainHandler {
	return &ChainHandler{chainUC: chainUC}
}

// Get returns the whole chain.
func (h *ChainHandler) Get(w http.ResponseWriter, r *http.Request) {
	chain, err := h.chainUC.GetChain(r.Context())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get chain", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChainFromDomain(chain))
}

// Start seeds the chain.
func (h *ChainHandler) Start(w http.ResponseWriter, r *http.Request) {
	var req dto.StartChainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var (
		chain *domain.Chain
		err   error
	)
	if req.FromValuation() {
		chain, err = h.chainUC.StartFromValuation(r.Context(), req.ToValuationInput())
	} else {
		role := domain.RoleFounder
		if strings.TrimSpace(req.Role) != "" {
			role, err = domain.ParseRole(req.Role)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid role", err.Error())
				return
			}
		}

		chain, err = h.chainUC.StartChain(r.Context(), usecase.StartChainInput{
			Name:       req.Name,
			Investment: string(req.Investment),
			Equity:     string(req.Equity),
			PreMoney:   string(req.PreMoney),
			Role:       role,
		})
	}
	if err != nil {
		writeError(w, mapDomainError(err), "failed to start chain", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ChainFromDomain(chain))
}

// AddRound appends a round.
func (h *ChainHandler) AddRound(w http.ResponseWriter, r *http.Request) {
	var req dto.AppendRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	round, err := h.chainUC.AppendRound(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to add round", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RoundFromDomain(round))
}

// Preview computes a round without adding it.
func (h *ChainHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.AppendRoundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	round, err := h.chainUC.PreviewRound(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to preview round", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RoundFromDomain(round))
}

// Remove deletes a round and returns the rebuilt chain.
func (h *ChainHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing round ID", "")
		return
	}

	chain, err := h.chainUC.RemoveRound(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to remove round", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ChainFromDomain(chain))
}
