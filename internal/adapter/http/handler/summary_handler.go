package handler

import (
	"context"
	"net/http"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/domain"
)

// SummaryService defines the behavior needed by SummaryHandler.
type SummaryService interface {
	Summarize(ctx context.Context, currency domain.Currency) string
}

// SummaryHandler serves the narrative summary.
type SummaryHandler struct {
	summaryUC       SummaryService
	defaultCurrency domain.Currency
}

// NewSummaryHandler creates a new SummaryHandler.
func NewSummaryHandler(summaryUC SummaryService, defaultCurrency domain.Currency) *SummaryHandler {
	return &SummaryHandler{
		summaryUC:       summaryUC,
		defaultCurrency: defaultCurrency,
	}
}

// Get returns the summary in the requested currency.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	currency := h.defaultCurrency
	if raw := r.URL.Query().Get("currency"); raw != "" {
		c, err := domain.ParseCurrency(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid currency", err.Error())
			return
		}
		currency = c
	}

	writeJSON(w, http.StatusOK, dto.SummaryResponse{
		Currency: string(currency),
		Symbol:   currency.Symbol(),
		Summary:  h.summaryUC.Summarize(r.Context(), currency),
	})
}
