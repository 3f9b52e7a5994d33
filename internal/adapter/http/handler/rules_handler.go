package handler

import (
	"encoding/json"
	"net/http"

	"github.com/pineos/rewardledger/internal/adapter/http/dto"
	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/infrastructure/metrics"
	"github.com/pineos/rewardledger/internal/suggest"
	"github.com/pineos/rewardledger/internal/usecase"
)

// RulesHandler handles rule evaluation and suggestion requests.
type RulesHandler struct {
	flowUC    *usecase.FlowUseCase
	suggester suggest.Suggester
	metrics   *metrics.Metrics
}

// NewRulesHandler creates a new RulesHandler.
func NewRulesHandler(flowUC *usecase.FlowUseCase, suggester suggest.Suggester, m *metrics.Metrics) *RulesHandler {
	return &RulesHandler{flowUC: flowUC, suggester: suggester, metrics: m}
}

// Evaluate runs a set of rules against a context and returns the triggered
// actions. Pure: nothing is posted to the ledger.
func (h *RulesHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	var req dto.EvaluateRulesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actions := h.flowUC.Evaluate(req.Rules, req.Context)
	if actions == nil {
		actions = []domain.RuleAction{}
	}

	if h.metrics != nil {
		h.metrics.RulesEvaluated.Add(float64(len(req.Rules)))
		if len(actions) > 0 {
			h.metrics.RulesTriggered.Inc()
		}
	}

	writeJSON(w, http.StatusOK, dto.ActionsResponse{Actions: actions})
}

// Suggest returns a rule suggestion for a natural-language prompt.
func (h *RulesHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	var req dto.SuggestRuleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "missing prompt", "")
		return
	}

	rule, err := h.suggester.Suggest(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to suggest rule", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rule)
}
