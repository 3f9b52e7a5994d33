package dto

import (
	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/usecase"
)

// CreditRequest represents a request to credit a reward.
type CreditRequest struct {
	AccountID   string          `json:"account_id"`
	Amount      decimal.Decimal `json:"amount"`
	ReferenceID string          `json:"reference_id"`
	Description string          `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreditRequest) ToUseCaseInput() usecase.CreditInput {
	return usecase.CreditInput{
		AccountID:   r.AccountID,
		Amount:      r.Amount,
		ReferenceID: r.ReferenceID,
		Description: r.Description,
	}
}

// ReverseRequest represents a request to reverse a credited transaction.
type ReverseRequest struct {
	ReferenceID string `json:"reference_id"`
	Reason      string `json:"reason,omitempty"`
}

// EvaluateRulesRequest represents a request to evaluate rules against a
// context.
type EvaluateRulesRequest struct {
	Rules   []domain.Rule  `json:"rules"`
	Context map[string]any `json:"context"`
}

// ExecuteFlowRequest represents a request to execute a flow against the
// ledger.
type ExecuteFlowRequest struct {
	Rules       []domain.Rule  `json:"rules"`
	Context     map[string]any `json:"context"`
	AccountID   string         `json:"account_id,omitempty"`
	ReferenceID string         `json:"reference_id"`
}

// ToUseCaseInput converts to use case input.
func (r *ExecuteFlowRequest) ToUseCaseInput() usecase.ExecuteFlowInput {
	return usecase.ExecuteFlowInput{
		Rules:       r.Rules,
		Context:     r.Context,
		AccountID:   r.AccountID,
		ReferenceID: r.ReferenceID,
	}
}

// SuggestRuleRequest represents a request for a rule suggestion.
type SuggestRuleRequest struct {
	Prompt string `json:"prompt"`
}
