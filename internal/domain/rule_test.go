package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
)

func TestRuleAction_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		check   func(t *testing.T, a domain.RuleAction)
	}{
		{
			name:    "credit_reward binds typed params",
			payload: `{"action_type":"credit_reward","params":{"amount":500,"account_id":"referrer-1"}}`,
			check: func(t *testing.T, a domain.RuleAction) {
				if a.Type != domain.ActionCreditReward {
					t.Errorf("expected credit_reward, got %s", a.Type)
				}
				if a.CreditReward == nil {
					t.Fatal("expected CreditReward params")
				}
				if !a.CreditReward.Amount.Equal(decimal.NewFromInt(500)) {
					t.Errorf("expected amount 500, got %s", a.CreditReward.Amount)
				}
				if a.CreditReward.AccountID != "referrer-1" {
					t.Errorf("expected account referrer-1, got %s", a.CreditReward.AccountID)
				}
			},
		},
		{
			name:    "send_email binds typed params",
			payload: `{"action_type":"send_email","params":{"template":"congrats"}}`,
			check: func(t *testing.T, a domain.RuleAction) {
				if a.Type != domain.ActionSendEmail {
					t.Errorf("expected send_email, got %s", a.Type)
				}
				if a.SendEmail == nil || a.SendEmail.Template != "congrats" {
					t.Errorf("expected congrats template, got %+v", a.SendEmail)
				}
			},
		},
		{
			name:    "unknown type keeps raw params",
			payload: `{"action_type":"post_webhook","params":{"url":"https://example.com"}}`,
			check: func(t *testing.T, a domain.RuleAction) {
				if a.Type != "post_webhook" {
					t.Errorf("expected post_webhook, got %s", a.Type)
				}
				if a.CreditReward != nil || a.SendEmail != nil {
					t.Error("unknown action types must not bind typed params")
				}
				if a.Params["url"] != "https://example.com" {
					t.Errorf("expected raw params preserved, got %v", a.Params)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a domain.RuleAction
			if err := json.Unmarshal([]byte(tt.payload), &a); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, a)
		})
	}
}

func TestRuleAction_MarshalRoundTrip(t *testing.T) {
	original := domain.RuleAction{
		Type: domain.ActionCreditReward,
		CreditReward: &domain.CreditRewardParams{
			Amount:    decimal.RequireFromString("250.50"),
			AccountID: "user-1",
		},
	}

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded domain.RuleAction
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if decoded.Type != original.Type {
		t.Errorf("expected type %s, got %s", original.Type, decoded.Type)
	}
	if decoded.CreditReward == nil || !decoded.CreditReward.Amount.Equal(original.CreditReward.Amount) {
		t.Errorf("amount did not survive the round trip: %+v", decoded.CreditReward)
	}
}

func TestRule_UnmarshalCombinatorKey(t *testing.T) {
	// The wire key for the combinator is "operator", matching the stored
	// flow document shape.
	payload := `{
		"id": "rule-1",
		"name": "referral",
		"operator": "AND",
		"conditions": [
			{"field": "referrer.status", "operator": "eq", "value": "paid"}
		],
		"actions": []
	}`

	var rule domain.Rule
	if err := json.Unmarshal([]byte(payload), &rule); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rule.Combinator != domain.CombinatorAnd {
		t.Errorf("expected AND combinator, got %q", rule.Combinator)
	}
	if len(rule.Conditions) != 1 || rule.Conditions[0].Operator != domain.OperatorEq {
		t.Errorf("unexpected conditions: %+v", rule.Conditions)
	}
}
