// Package rules implements a pure interpreter for declarative rules: nested
// boolean condition trees evaluated against an arbitrary context mapping.
// Evaluation is fail-closed and never returns an error; malformed fields,
// operators and combinators resolve to "no match".
package rules

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pineos/rewardledger/internal/domain"
)

// EvaluateCondition resolves the condition's dotted field path in context and
// applies its operator. A missing key, a non-mapping intermediate, a failed
// numeric coercion or an unknown operator all yield false.
func EvaluateCondition(cond domain.RuleCondition, context map[string]any) bool {
	value, ok := resolvePath(cond.Field, context)
	if !ok {
		return false
	}

	switch cond.Operator {
	case domain.OperatorEq:
		return strings.EqualFold(stringify(value), cond.Value)
	case domain.OperatorGt:
		left, right, ok := coerceFloats(value, cond.Value)
		return ok && left > right
	case domain.OperatorLt:
		left, right, ok := coerceFloats(value, cond.Value)
		return ok && left < right
	case domain.OperatorContains:
		return strings.Contains(stringify(value), cond.Value)
	}

	return false
}

// EvaluateRule evaluates every condition in order (no short-circuit, so a
// later malformed condition behaves the same whatever the running result),
// combines with the rule's combinator, and returns the rule's actions
// verbatim when triggered.
func EvaluateRule(rule domain.Rule, context map[string]any) []domain.RuleAction {
	results := make([]bool, len(rule.Conditions))
	for i, cond := range rule.Conditions {
		results[i] = EvaluateCondition(cond, context)
	}

	triggered := false

	switch rule.Combinator {
	case domain.CombinatorAnd:
		triggered = true
		for _, r := range results {
			if !r {
				triggered = false
			}
		}
	case domain.CombinatorOr:
		for _, r := range results {
			if r {
				triggered = true
			}
		}
	}

	if !triggered {
		return nil
	}

	return rule.Actions
}

// RunFlow evaluates rules in the supplied order and concatenates triggered
// actions in that order. Rules are independent; the result is a pure function
// of (rules, context).
func RunFlow(flowRules []domain.Rule, context map[string]any) []domain.RuleAction {
	var actions []domain.RuleAction
	for _, rule := range flowRules {
		actions = append(actions, EvaluateRule(rule, context)...)
	}

	return actions
}

// resolvePath walks a dot-separated path through nested maps.
func resolvePath(path string, context map[string]any) (any, bool) {
	var value any = context

	for _, key := range strings.Split(path, ".") {
		m, ok := value.(map[string]any)
		if !ok {
			return nil, false
		}

		value, ok = m[key]
		if !ok {
			return nil, false
		}
	}

	return value, true
}

// stringify renders a resolved context value the way the rule author sees it.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

// coerceFloats converts both operands to float64 for numeric comparison.
func coerceFloats(value any, operand string) (float64, float64, bool) {
	var left float64

	switch v := value.(type) {
	case float64:
		left = v
	case int:
		left = float64(v)
	case int64:
		left = float64(v)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, 0, false
		}
		left = parsed
	default:
		return 0, 0, false
	}

	right, err := strconv.ParseFloat(strings.TrimSpace(operand), 64)
	if err != nil {
		return 0, 0, false
	}

	return left, right, true
}
