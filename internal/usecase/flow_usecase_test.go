package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/usecase"
	"github.com/pineos/rewardledger/internal/usecase/mocks"
)

type recordingCreditService struct {
	inputs []usecase.CreditInput
	err    error
}

func (s *recordingCreditService) Credit(ctx context.Context, input usecase.CreditInput) (*domain.Transaction, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.inputs = append(s.inputs, input)
	return &domain.Transaction{
		ID:          "tx-" + input.ReferenceID,
		ReferenceID: input.ReferenceID,
		Type:        domain.TypeRewardCredit,
		Status:      domain.StatusCompleted,
	}, nil
}

func creditRule(amount int64, accountID string) domain.Rule {
	return domain.Rule{
		ID:         "rule-1",
		Name:       "high score reward",
		Combinator: domain.CombinatorAnd,
		Conditions: []domain.RuleCondition{
			{Field: "user.score", Operator: domain.OperatorGt, Value: "100"},
		},
		Actions: []domain.RuleAction{
			{
				Type: domain.ActionCreditReward,
				CreditReward: &domain.CreditRewardParams{
					Amount:    decimal.NewFromInt(amount),
					AccountID: accountID,
				},
			},
		},
	}
}

func TestFlowUseCase_Execute_DispatchesCreditActions(t *testing.T) {
	ledger := &recordingCreditService{}
	uc := usecase.NewFlowUseCase(ledger, mocks.NewMockFlowStore())

	result, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:       []domain.Rule{creditRule(500, "")},
		Context:     map[string]any{"user": map[string]any{"score": 150}},
		AccountID:   "user-1",
		ReferenceID: "flow-run-1",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(result.Actions))
	}
	if len(result.Transactions) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(result.Transactions))
	}

	if len(ledger.inputs) != 1 {
		t.Fatalf("expected 1 credit call, got %d", len(ledger.inputs))
	}

	input := ledger.inputs[0]
	if input.AccountID != "user-1" {
		t.Errorf("expected default recipient user-1, got %s", input.AccountID)
	}
	if !input.Amount.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected amount 500, got %s", input.Amount)
	}
	if input.ReferenceID != "flow-run-1_action_0" {
		t.Errorf("unexpected derived reference id %s", input.ReferenceID)
	}
}

func TestFlowUseCase_Execute_ActionAccountOverridesDefault(t *testing.T) {
	ledger := &recordingCreditService{}
	uc := usecase.NewFlowUseCase(ledger, mocks.NewMockFlowStore())

	_, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:       []domain.Rule{creditRule(500, "referrer-9")},
		Context:     map[string]any{"user": map[string]any{"score": 150}},
		AccountID:   "user-1",
		ReferenceID: "flow-run-2",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ledger.inputs[0].AccountID != "referrer-9" {
		t.Errorf("expected action account referrer-9, got %s", ledger.inputs[0].AccountID)
	}
}

func TestFlowUseCase_Execute_UntriggeredRulePostsNothing(t *testing.T) {
	ledger := &recordingCreditService{}
	uc := usecase.NewFlowUseCase(ledger, mocks.NewMockFlowStore())

	result, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:       []domain.Rule{creditRule(500, "")},
		Context:     map[string]any{"user": map[string]any{"score": 10}},
		AccountID:   "user-1",
		ReferenceID: "flow-run-3",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Actions) != 0 {
		t.Errorf("expected no actions, got %d", len(result.Actions))
	}
	if len(ledger.inputs) != 0 {
		t.Errorf("expected no credit calls, got %d", len(ledger.inputs))
	}
}

func TestFlowUseCase_Execute_NonCreditActionsPassThrough(t *testing.T) {
	ledger := &recordingCreditService{}
	uc := usecase.NewFlowUseCase(ledger, mocks.NewMockFlowStore())

	rule := domain.Rule{
		Combinator: domain.CombinatorAnd,
		Conditions: []domain.RuleCondition{
			{Field: "user.score", Operator: domain.OperatorGt, Value: "100"},
		},
		Actions: []domain.RuleAction{
			{Type: domain.ActionSendEmail, SendEmail: &domain.SendEmailParams{Template: "congrats"}},
		},
	}

	result, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:       []domain.Rule{rule},
		Context:     map[string]any{"user": map[string]any{"score": 150}},
		ReferenceID: "flow-run-4",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Actions) != 1 {
		t.Fatalf("expected the send_email action to pass through, got %d actions", len(result.Actions))
	}
	if len(ledger.inputs) != 0 {
		t.Errorf("send_email must not reach the ledger, got %d credit calls", len(ledger.inputs))
	}
}

func TestFlowUseCase_Execute_RequiresReferenceID(t *testing.T) {
	uc := usecase.NewFlowUseCase(&recordingCreditService{}, mocks.NewMockFlowStore())

	_, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:   []domain.Rule{creditRule(500, "")},
		Context: map[string]any{"user": map[string]any{"score": 150}},
	})
	if !errors.Is(err, domain.ErrEmptyReferenceID) {
		t.Errorf("expected ErrEmptyReferenceID, got %v", err)
	}
}

func TestFlowUseCase_Execute_LedgerErrorPropagates(t *testing.T) {
	wantErr := errors.New("ledger unavailable")
	uc := usecase.NewFlowUseCase(&recordingCreditService{err: wantErr}, mocks.NewMockFlowStore())

	_, err := uc.Execute(context.Background(), usecase.ExecuteFlowInput{
		Rules:       []domain.Rule{creditRule(500, "")},
		Context:     map[string]any{"user": map[string]any{"score": 150}},
		AccountID:   "user-1",
		ReferenceID: "flow-run-5",
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("expected ledger error to propagate, got %v", err)
	}
}

func TestFlowUseCase_SaveAndGetFlow(t *testing.T) {
	store := mocks.NewMockFlowStore()
	uc := usecase.NewFlowUseCase(&recordingCreditService{}, store)
	ctx := context.Background()

	doc := json.RawMessage(`{"rules":[],"name":"my flow"}`)
	if err := uc.SaveFlow(ctx, "flow-1", doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := uc.GetFlow(ctx, "flow-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != string(doc) {
		t.Errorf("expected %s, got %s", doc, got)
	}

	// Unknown flows resolve to an empty document.
	missing, err := uc.GetFlow(ctx, "no-such-flow")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(missing) != "{}" {
		t.Errorf("expected empty document, got %s", missing)
	}
}
