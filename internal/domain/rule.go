package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// Condition operators. Anything else evaluates to no match, not an error.
const (
	OperatorEq       = "eq"
	OperatorGt       = "gt"
	OperatorLt       = "lt"
	OperatorContains = "contains"
)

// Condition combinators. Anything else means the rule never triggers.
const (
	CombinatorAnd = "AND"
	CombinatorOr  = "OR"
)

// Rule is a stateless value object: an ordered condition list, a combinator
// and the actions to emit when the rule triggers.
type Rule struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Combinator string          `json:"operator"`
	Conditions []RuleCondition `json:"conditions"`
	Actions    []RuleAction    `json:"actions"`
}

// RuleCondition compares a dotted field path in the evaluation context
// against a string-encoded value.
type RuleCondition struct {
	Field    string `json:"field"`
	Operator string `json:"operator"`
	Value    string `json:"value"`
}

// ActionType tags a RuleAction payload.
type ActionType string

const (
	ActionCreditReward ActionType = "credit_reward"
	ActionSendEmail    ActionType = "send_email"
)

// CreditRewardParams is the payload of a credit_reward action. AccountID may
// be empty, in which case the flow dispatcher supplies the recipient.
type CreditRewardParams struct {
	Amount    decimal.Decimal `json:"amount"`
	AccountID string          `json:"account_id,omitempty"`
}

// SendEmailParams is the payload of a send_email action.
type SendEmailParams struct {
	Template string `json:"template"`
}

// RuleAction is a tagged variant keyed by action type. Known types carry a
// typed payload; unrecognized types keep their raw params for forward
// compatibility and are passed through untouched.
type RuleAction struct {
	Type         ActionType
	CreditReward *CreditRewardParams
	SendEmail    *SendEmailParams
	Params       map[string]any
}

type ruleActionEnvelope struct {
	ActionType ActionType      `json:"action_type"`
	Params     json.RawMessage `json:"params"`
}

// UnmarshalJSON decodes the {action_type, params} wire shape, binding params
// to the typed variant for known action types.
func (a *RuleAction) UnmarshalJSON(data []byte) error {
	var env ruleActionEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	a.Type = env.ActionType
	a.CreditReward = nil
	a.SendEmail = nil
	a.Params = nil

	if len(env.Params) > 0 {
		if err := json.Unmarshal(env.Params, &a.Params); err != nil {
			return err
		}
	}

	switch env.ActionType {
	case ActionCreditReward:
		var p CreditRewardParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return err
		}
		a.CreditReward = &p
	case ActionSendEmail:
		var p SendEmailParams
		if err := json.Unmarshal(env.Params, &p); err != nil {
			return err
		}
		a.SendEmail = &p
	}

	return nil
}

// MarshalJSON re-encodes the action in its wire shape.
func (a RuleAction) MarshalJSON() ([]byte, error) {
	var params any

	switch {
	case a.CreditReward != nil:
		params = a.CreditReward
	case a.SendEmail != nil:
		params = a.SendEmail
	case a.Params != nil:
		params = a.Params
	default:
		params = map[string]any{}
	}

	raw, err := json.Marshal(params)
	if err != nil {
		return nil, err
	}

	return json.Marshal(ruleActionEnvelope{ActionType: a.Type, Params: raw})
}
