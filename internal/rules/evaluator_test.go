package rules_test

import (
	"testing"

	"github.com/pineos/rewardledger/internal/domain"
	"github.com/pineos/rewardledger/internal/rules"
)

func TestEvaluateCondition(t *testing.T) {
	context := map[string]any{
		"user": map[string]any{
			"status": "Paid",
			"score":  float64(150),
			"email":  "alice@example.com",
			"age":    "42",
		},
		"flat": "value",
	}

	tests := []struct {
		name string
		cond domain.RuleCondition
		want bool
	}{
		{
			name: "eq is case-insensitive",
			cond: domain.RuleCondition{Field: "user.status", Operator: "eq", Value: "paid"},
			want: true,
		},
		{
			name: "eq mismatch",
			cond: domain.RuleCondition{Field: "user.status", Operator: "eq", Value: "pending"},
			want: false,
		},
		{
			name: "eq against numeric value",
			cond: domain.RuleCondition{Field: "user.score", Operator: "eq", Value: "150"},
			want: true,
		},
		{
			name: "gt with numeric value",
			cond: domain.RuleCondition{Field: "user.score", Operator: "gt", Value: "100"},
			want: true,
		},
		{
			name: "gt not satisfied",
			cond: domain.RuleCondition{Field: "user.score", Operator: "gt", Value: "200"},
			want: false,
		},
		{
			name: "gt coerces numeric strings",
			cond: domain.RuleCondition{Field: "user.age", Operator: "gt", Value: "40"},
			want: true,
		},
		{
			name: "gt against non-numeric value fails closed",
			cond: domain.RuleCondition{Field: "user.status", Operator: "gt", Value: "10"},
			want: false,
		},
		{
			name: "gt with non-numeric operand fails closed",
			cond: domain.RuleCondition{Field: "user.score", Operator: "gt", Value: "lots"},
			want: false,
		},
		{
			name: "lt with numeric value",
			cond: domain.RuleCondition{Field: "user.score", Operator: "lt", Value: "200"},
			want: true,
		},
		{
			name: "contains substring",
			cond: domain.RuleCondition{Field: "user.email", Operator: "contains", Value: "@example"},
			want: true,
		},
		{
			name: "contains is case-sensitive",
			cond: domain.RuleCondition{Field: "user.email", Operator: "contains", Value: "@EXAMPLE"},
			want: false,
		},
		{
			name: "missing field fails closed",
			cond: domain.RuleCondition{Field: "user.missing", Operator: "eq", Value: "x"},
			want: false,
		},
		{
			name: "path through non-mapping fails closed",
			cond: domain.RuleCondition{Field: "flat.deeper", Operator: "eq", Value: "x"},
			want: false,
		},
		{
			name: "unknown operator fails closed",
			cond: domain.RuleCondition{Field: "user.status", Operator: "matches", Value: "Paid"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.EvaluateCondition(tt.cond, context)
			if got != tt.want {
				t.Errorf("EvaluateCondition() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluateRule(t *testing.T) {
	context := map[string]any{
		"user": map[string]any{
			"status": "paid",
			"score":  float64(150),
		},
	}

	actions := []domain.RuleAction{
		{Type: domain.ActionSendEmail, SendEmail: &domain.SendEmailParams{Template: "congrats"}},
	}

	passing := domain.RuleCondition{Field: "user.status", Operator: "eq", Value: "paid"}
	failing := domain.RuleCondition{Field: "user.score", Operator: "gt", Value: "1000"}

	tests := []struct {
		name       string
		rule       domain.Rule
		wantActive bool
	}{
		{
			name: "AND with all conditions passing",
			rule: domain.Rule{
				Combinator: "AND",
				Conditions: []domain.RuleCondition{passing, {Field: "user.score", Operator: "gt", Value: "100"}},
				Actions:    actions,
			},
			wantActive: true,
		},
		{
			name: "AND with one failing condition",
			rule: domain.Rule{
				Combinator: "AND",
				Conditions: []domain.RuleCondition{passing, failing},
				Actions:    actions,
			},
			wantActive: false,
		},
		{
			name: "OR with one passing condition",
			rule: domain.Rule{
				Combinator: "OR",
				Conditions: []domain.RuleCondition{failing, passing},
				Actions:    actions,
			},
			wantActive: true,
		},
		{
			name: "OR with no passing conditions",
			rule: domain.Rule{
				Combinator: "OR",
				Conditions: []domain.RuleCondition{failing},
				Actions:    actions,
			},
			wantActive: false,
		},
		{
			name: "AND with no conditions triggers",
			rule: domain.Rule{
				Combinator: "AND",
				Conditions: nil,
				Actions:    actions,
			},
			wantActive: true,
		},
		{
			name: "OR with no conditions never triggers",
			rule: domain.Rule{
				Combinator: "OR",
				Conditions: nil,
				Actions:    actions,
			},
			wantActive: false,
		},
		{
			name: "unknown combinator never triggers",
			rule: domain.Rule{
				Combinator: "XOR",
				Conditions: []domain.RuleCondition{passing},
				Actions:    actions,
			},
			wantActive: false,
		},
		{
			name: "lowercase combinator never triggers",
			rule: domain.Rule{
				Combinator: "and",
				Conditions: []domain.RuleCondition{passing},
				Actions:    actions,
			},
			wantActive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := rules.EvaluateRule(tt.rule, context)
			if tt.wantActive && len(got) != len(actions) {
				t.Errorf("expected %d actions, got %d", len(actions), len(got))
			}
			if !tt.wantActive && len(got) != 0 {
				t.Errorf("expected no actions, got %d", len(got))
			}
		})
	}
}

func TestRunFlow_OrderAndConcatenation(t *testing.T) {
	context := map[string]any{
		"user": map[string]any{"status": "paid"},
	}

	mkRule := func(template string, triggers bool) domain.Rule {
		value := "paid"
		if !triggers {
			value = "pending"
		}
		return domain.Rule{
			Combinator: "AND",
			Conditions: []domain.RuleCondition{
				{Field: "user.status", Operator: "eq", Value: value},
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSendEmail, SendEmail: &domain.SendEmailParams{Template: template}},
			},
		}
	}

	flow := []domain.Rule{
		mkRule("first", true),
		mkRule("skipped", false),
		mkRule("second", true),
	}

	actions := rules.RunFlow(flow, context)
	if len(actions) != 2 {
		t.Fatalf("expected 2 actions, got %d", len(actions))
	}
	if actions[0].SendEmail.Template != "first" || actions[1].SendEmail.Template != "second" {
		t.Errorf("actions out of order: %s, %s", actions[0].SendEmail.Template, actions[1].SendEmail.Template)
	}
}

func TestRunFlow_Deterministic(t *testing.T) {
	context := map[string]any{
		"user": map[string]any{"score": float64(150)},
	}
	flow := []domain.Rule{
		{
			Combinator: "AND",
			Conditions: []domain.RuleCondition{
				{Field: "user.score", Operator: "gt", Value: "100"},
			},
			Actions: []domain.RuleAction{
				{Type: domain.ActionSendEmail, SendEmail: &domain.SendEmailParams{Template: "congrats"}},
			},
		},
	}

	first := rules.RunFlow(flow, context)
	second := rules.RunFlow(flow, context)

	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected 1 action per run, got %d and %d", len(first), len(second))
	}
	if first[0].SendEmail.Template != second[0].SendEmail.Template {
		t.Error("evaluation must be deterministic")
	}
}
