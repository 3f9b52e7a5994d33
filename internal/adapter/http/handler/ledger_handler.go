package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pineos/rewardledger/internal/adapter/http/dto"
	"github.com/pineos/rewardledger/internal/infrastructure/metrics"
	"github.com/pineos/rewardledger/internal/usecase"
)

// LedgerHandler handles credit, reversal and balance requests.
type LedgerHandler struct {
	ledgerUC *usecase.LedgerUseCase
	metrics  *metrics.Metrics
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC *usecase.LedgerUseCase, m *metrics.Metrics) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC, metrics: m}
}

// Credit posts a reward credit. Replaying a reference id returns the
// original transaction unchanged.
func (h *LedgerHandler) Credit(w http.ResponseWriter, r *http.Request) {
	var req dto.CreditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now().UTC()

	txn, err := h.ledgerUC.Credit(r.Context(), req.ToUseCaseInput())
	if err != nil {
		status := mapDomainError(err)
		h.observeLedgerError("credit")
		writeError(w, status, "failed to credit reward", err.Error())
		return
	}

	if h.metrics != nil {
		if txn.CreatedAt.Before(start) {
			h.metrics.CreditsReplayed.Inc()
		} else {
			h.metrics.CreditsProcessed.Inc()
			amount, _ := req.Amount.Float64()
			h.metrics.CreditAmount.Observe(amount)
		}
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// Reverse posts a compensating reversal for a credited transaction.
// Replaying a reversal returns the original transaction, already REVERSED.
func (h *LedgerHandler) Reverse(w http.ResponseWriter, r *http.Request) {
	var req dto.ReverseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.ReferenceID == "" {
		writeError(w, http.StatusBadRequest, "missing reference ID", "")
		return
	}

	start := time.Now().UTC()

	txn, err := h.ledgerUC.Reverse(r.Context(), req.ReferenceID, req.Reason)
	if err != nil {
		status := mapDomainError(err)
		h.observeLedgerError("reverse")
		writeError(w, status, "failed to reverse transaction", err.Error())
		return
	}

	if h.metrics != nil {
		if txn.CreatedAt.Before(start) {
			h.metrics.ReversalsReplayed.Inc()
		} else {
			h.metrics.ReversalsPosted.Inc()
		}
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// GetBalance returns an account's cached balance. Unknown accounts report
// a zero balance.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	balance, err := h.ledgerUC.GetBalance(r.Context(), accountID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get balance", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: accountID,
		Balance:   balance,
	})
}

// GetTransaction retrieves a transaction by reference id.
func (h *LedgerHandler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	referenceID := chi.URLParam(r, "referenceID")
	if referenceID == "" {
		writeError(w, http.StatusBadRequest, "missing reference ID", "")
		return
	}

	txn, err := h.ledgerUC.GetTransaction(r.Context(), referenceID)
	if err != nil {
		status := mapDomainError(err)
		writeError(w, status, "failed to get transaction", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionFromDomain(txn))
}

// ListEntries lists ledger entries for an account.
func (h *LedgerHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	accountID := chi.URLParam(r, "id")
	if accountID == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	entries, err := h.ledgerUC.ListEntries(r.Context(), usecase.ListEntriesInput{
		AccountID: accountID,
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list entries", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntriesFromDomain(entries))
}

func (h *LedgerHandler) observeLedgerError(op string) {
	if h.metrics == nil {
		return
	}
	h.metrics.LedgerErrors.WithLabelValues(op).Inc()
}
