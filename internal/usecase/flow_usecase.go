package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/rules"
)

// CreditService is the slice of LedgerUseCase the flow dispatcher needs.
type CreditService interface {
	Credit(ctx context.Context, input CreditInput) (*domain.Transaction, error)
}

// FlowUseCase evaluates rule flows and dispatches triggered ledger actions.
type FlowUseCase struct {
	ledger    CreditService
	flowStore FlowStore
}

// NewFlowUseCase creates a new FlowUseCase.
func NewFlowUseCase(ledger CreditService, flowStore FlowStore) *FlowUseCase {
	return &FlowUseCase{
		ledger:    ledger,
		flowStore: flowStore,
	}
}

// Evaluate runs the rules against the context and returns the triggered
// actions. Pure: no I/O, deterministic, replayable.
func (uc *FlowUseCase) Evaluate(flowRules []domain.Rule, context map[string]any) []domain.RuleAction {
	return rules.RunFlow(flowRules, context)
}

// ExecuteFlowInput represents input for executing a flow against the ledger.
type ExecuteFlowInput struct {
	Rules   []domain.Rule
	Context map[string]any
	// AccountID is the default recipient for credit_reward actions whose
	// params do not name one.
	AccountID string
	// ReferenceID seeds the derived per-action reference ids, keeping the
	// whole flow execution retryable.
	ReferenceID string
}

// FlowResult holds the triggered actions and the ledger transactions they
// produced.
type FlowResult struct {
	Actions      []domain.RuleAction
	Transactions []*domain.Transaction
}

// Execute evaluates the flow and dispatches credit_reward actions to the
// ledger. Other action types are returned to the caller untouched.
func (uc *FlowUseCase) Execute(ctx context.Context, input ExecuteFlowInput) (*FlowResult, error) {
	if input.ReferenceID == "" {
		return nil, domain.ErrEmptyReferenceID
	}

	actions := rules.RunFlow(input.Rules, input.Context)
	result := &FlowResult{Actions: actions}

	for i, action := range actions {
		if action.Type != domain.ActionCreditReward || action.CreditReward == nil {
			continue
		}

		accountID := action.CreditReward.AccountID
		if accountID == "" {
			accountID = input.AccountID
		}

		txn, err := uc.ledger.Credit(ctx, CreditInput{
			AccountID:   accountID,
			Amount:      action.CreditReward.Amount,
			ReferenceID: fmt.Sprintf("%s_action_%d", input.ReferenceID, i),
			Description: "Flow reward",
		})
		if err != nil {
			return nil, err
		}

		result.Transactions = append(result.Transactions, txn)
	}

	return result, nil
}

// SaveFlow stores a flow document under id.
func (uc *FlowUseCase) SaveFlow(ctx context.Context, id string, doc json.RawMessage) error {
	return uc.flowStore.Save(ctx, id, doc)
}

// GetFlow returns the flow document for id, or an empty document if unknown.
func (uc *FlowUseCase) GetFlow(ctx context.Context, id string) (json.RawMessage, error) {
	return uc.flowStore.Get(ctx, id)
}
