package assessment

import (
	"strconv"
	"strings"
)

// IsVisible decides whether a question should be shown given the answers
// collected so far. A question with no conditional rule is always visible; a
// rule whose dependent question is unanswered hides it. Unrecognized
// operators fail open so a misconfigured rule never hides content.
func IsVisible(q Question, responses map[string]Value) bool {
	cond := q.Conditional
	if cond == nil || cond.DependsOn == "" {
		return true
	}

	dep, ok := responses[cond.DependsOn]
	if !ok || dep.IsEmpty() {
		return false
	}

	switch cond.Operator {
	case OpEquals:
		return dep.equalsLiteral(cond.Value)
	case OpNotEquals:
		return !dep.equalsLiteral(cond.Value)
	case OpContains:
		return dep.Contains(cond.Value)
	case OpGreaterThan:
		n, err := strconv.ParseFloat(strings.TrimSpace(cond.Value), 64)
		return err == nil && dep.Kind == KindNumber && dep.Number > n
	case OpLessThan:
		n, err := strconv.ParseFloat(strings.TrimSpace(cond.Value), 64)
		return err == nil && dep.Kind == KindNumber && dep.Number < n
	default:
		return true
	}
}

// VisibleQuestions filters a section's questions through IsVisible, keeping
// the section's declaration order.
func VisibleQuestions(sec Section, responses map[string]Value) []Question {
	out := make([]Question, 0, len(sec.Questions))
	for _, q := range sec.Questions {
		if IsVisible(q, responses) {
			out = append(out, q)
		}
	}
	return out
}
