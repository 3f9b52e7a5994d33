package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pineos/rewardledger/internal/adapter/http/dto"
	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/infrastructure/metrics"
	"github.com/pineos/rewardledger/internal/usecase"
)

// maxFlowDocumentSize bounds stored flow documents at 1 MiB.
const maxFlowDocumentSize = 1 << 20

// FlowHandler handles flow persistence and execution requests.
type FlowHandler struct {
	flowUC  *usecase.FlowUseCase
	metrics *metrics.Metrics
}

// NewFlowHandler creates a new FlowHandler.
func NewFlowHandler(flowUC *usecase.FlowUseCase, m *metrics.Metrics) *FlowHandler {
	return &FlowHandler{flowUC: flowUC, metrics: m}
}

// Save stores a flow document under the given id, overwriting any previous
// version.
func (h *FlowHandler) Save(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing flow ID", "")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxFlowDocumentSize))
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read request body", err.Error())
		return
	}

	if !json.Valid(body) {
		writeError(w, http.StatusBadRequest, "invalid flow document", "body must be valid JSON")
		return
	}

	if err := h.flowUC.SaveFlow(r.Context(), id, body); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save flow", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SaveFlowResponse{Status: "saved", ID: id})
}

// Get returns the stored flow document, or an empty document for unknown ids.
func (h *FlowHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing flow ID", "")
		return
	}

	doc, err := h.flowUC.GetFlow(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get flow", err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}

// Execute evaluates a flow and dispatches triggered credit actions to the
// ledger. When the request carries no rules, the stored flow document for
// the id in the URL is used instead.
func (h *FlowHandler) Execute(w http.ResponseWriter, r *http.Request) {
	var req dto.ExecuteFlowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if len(req.Rules) == 0 {
		id := chi.URLParam(r, "id")
		doc, err := h.flowUC.GetFlow(r.Context(), id)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load flow", err.Error())
			return
		}

		var stored struct {
			Rules []domain.Rule `json:"rules"`
		}
		if err := json.Unmarshal(doc, &stored); err != nil {
			writeError(w, http.StatusBadRequest, "invalid stored flow document", err.Error())
			return
		}
		req.Rules = stored.Rules
	}

	result, err := h.flowUC.Execute(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to execute flow", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.FlowsExecuted.Inc()
	}

	actions := result.Actions
	if actions == nil {
		actions = []domain.RuleAction{}
	}

	writeJSON(w, http.StatusOK, dto.FlowExecutionResponse{
		Actions:      actions,
		Transactions: dto.TransactionsFromDomain(result.Transactions),
	})
}
