// Package suggest provides a stub rule-suggestion service. It simulates an
// AI-backed generator with keyword matching so the flow builder can be
// exercised without any external model calls.
package suggest

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/pineos/rewardledger/internal/domain"
)

// Suggester produces a rule draft from a free-form prompt.
type Suggester interface {
	Suggest(ctx context.Context, prompt string) (domain.Rule, error)
}

// KeywordSuggester is the stub implementation: it recognizes the referral
// example prompt and falls back to a generic score rule otherwise.
type KeywordSuggester struct{}

// NewKeywordSuggester creates a new KeywordSuggester.
func NewKeywordSuggester() *KeywordSuggester {
	return &KeywordSuggester{}
}

// Suggest returns a canned rule for the given prompt.
func (s *KeywordSuggester) Suggest(_ context.Context, prompt string) (domain.Rule, error) {
	p := strings.ToLower(prompt)

	if strings.Contains(p, "referrer") && strings.Contains(p, "paid") {
		return domain.Rule{
			ID:         "ai_generated",
			Name:       "AI Generated Rule",
			Combinator: domain.CombinatorAnd,
			Conditions: []domain.RuleCondition{
				{Field: "referrer.status", Operator: domain.OperatorEq, Value: "paid"},
				{Field: "referred.action", Operator: domain.OperatorEq, Value: "subscribes"},
			},
			Actions: []domain.RuleAction{
				{
					Type:         domain.ActionCreditReward,
					CreditReward: &domain.CreditRewardParams{Amount: decimal.NewFromInt(500)},
				},
			},
		}, nil
	}

	return domain.Rule{
		ID:         "ai_generic",
		Name:       "Generic Rule",
		Combinator: domain.CombinatorAnd,
		Conditions: []domain.RuleCondition{
			{Field: "user.score", Operator: domain.OperatorGt, Value: "100"},
		},
		Actions: []domain.RuleAction{
			{
				Type:      domain.ActionSendEmail,
				SendEmail: &domain.SendEmailParams{Template: "congrats"},
			},
		},
	}, nil
}
