package dto

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/usecase"
)

func TestCreditRequest_ToUseCaseInput(t *testing.T) {
	req := &CreditRequest{
		AccountID:   "user-1",
		Amount:      decimal.RequireFromString("100.50"),
		ReferenceID: "order-1",
		Description: "welcome bonus",
	}

	got := req.ToUseCaseInput()
	want := usecase.CreditInput{
		AccountID:   "user-1",
		Amount:      decimal.RequireFromString("100.50"),
		ReferenceID: "order-1",
		Description: "welcome bonus",
	}

	require.Equal(t, want.AccountID, got.AccountID)
	require.True(t, got.Amount.Equal(want.Amount))
	require.Equal(t, want.ReferenceID, got.ReferenceID)
	require.Equal(t, want.Description, got.Description)
}

func TestCreditRequest_DecodesJSONAmounts(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "number amount", body: `{"account_id":"user-1","amount":100,"reference_id":"r-1"}`, want: "100"},
		{name: "string amount", body: `{"account_id":"user-1","amount":"99.99","reference_id":"r-1"}`, want: "99.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreditRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))
			require.True(t, req.Amount.Equal(decimal.RequireFromString(tt.want)))
		})
	}
}

func TestExecuteFlowRequest_ToUseCaseInput(t *testing.T) {
	req := &ExecuteFlowRequest{
		Rules: []domain.Rule{
			{
				Combinator: domain.CombinatorAnd,
				Conditions: []domain.RuleCondition{
					{Field: "user.status", Operator: domain.OperatorEq, Value: "active"},
				},
			},
		},
		Context:     map[string]any{"user": map[string]any{"status": "active"}},
		AccountID:   "user-9",
		ReferenceID: "flow-run-1",
	}

	got := req.ToUseCaseInput()
	require.Len(t, got.Rules, 1)
	require.Equal(t, "user-9", got.AccountID)
	require.Equal(t, "flow-run-1", got.ReferenceID)
	require.Equal(t, req.Context, got.Context)
}

func TestEvaluateRulesRequest_DecodesTypedActions(t *testing.T) {
	body := `{
		"rules": [{
			"operator": "AND",
			"conditions": [{"field": "order.total", "operator": "gt", "value": "50"}],
			"actions": [{"action_type": "credit_reward", "params": {"amount": 10}}]
		}],
		"context": {"order": {"total": 75}}
	}`

	var req EvaluateRulesRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	require.Len(t, req.Rules, 1)

	rule := req.Rules[0]
	require.Equal(t, domain.CombinatorAnd, rule.Combinator)
	require.Len(t, rule.Actions, 1)
	require.Equal(t, domain.ActionCreditReward, rule.Actions[0].Type)
	require.NotNil(t, rule.Actions[0].CreditReward)
	require.True(t, rule.Actions[0].CreditReward.Amount.Equal(decimal.NewFromInt(10)))
}
