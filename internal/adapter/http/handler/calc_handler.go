package handler

import (
	"encoding/json"
	"net/http"

	"github.com/iho/opencap/internal/adapter/http/dto"
	"github.com/iho/opencap/internal/numeric"
	"github.com/iho/opencap/internal/usecase"
)

// CalcHandler serves the stateless calculator endpoints.
type CalcHandler struct{}

// NewCalcHandler creates a new CalcHandler.
func NewCalcHandler() *CalcHandler {
	return &CalcHandler{}
}

// Sync applies one field edit to a round form and returns the
// resynchronized form.
func (h *CalcHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req dto.SyncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	field, err := usecase.ParseField(req.Field)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid field", err.Error())
		return
	}

	form := req.Form.ToUseCase()
	if req.Commit {
		form = form.Commit(field)
	} else {
		form = form.Edit(field, req.Value)
	}

	writeJSON(w, http.StatusOK, dto.RoundFormFromUseCase(form))
}

// Normalize expands shorthand in the value query parameter.
func (h *CalcHandler) Normalize(w http.ResponseWriter, r *http.Request) {
	value := r.URL.Query().Get("value")
	parsed := numeric.ParseShorthand(value)

	writeJSON(w, http.StatusOK, dto.NormalizeResponse{
		Input:     value,
		Parsed:    parsed,
		Formatted: numeric.FormatGrouped(parsed),
	})
}
