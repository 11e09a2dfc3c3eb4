package assessment

import "fmt"

// RequiredMessage is the single error reported for a required question left
// unanswered.
const RequiredMessage = "This field is required"

// Validate checks a candidate value against a question definition and returns
// the violated rule messages in declaration order. It never fails: rules whose
// expected value shape does not match the answer's runtime kind are skipped
// rather than treated as violations.
func Validate(q Question, v Value) []string {
	if q.Required && v.IsEmpty() {
		return []string{RequiredMessage}
	}
	// Optional questions accept emptiness no matter what rules are configured.
	if v.IsEmpty() {
		return nil
	}

	var errs []string
	for _, rule := range q.Validation {
		if msg, violated := applyRule(rule, v); violated {
			errs = append(errs, msg)
		}
	}
	return errs
}

func applyRule(rule ValidationRule, v Value) (string, bool) {
	switch rule.Type {
	case RuleMinLength:
		if v.Kind == KindText && len(v.Text) < int(rule.Value) {
			return ruleMessage(rule, "Minimum %d characters required"), true
		}
	case RuleMaxLength:
		if v.Kind == KindText && len(v.Text) > int(rule.Value) {
			return ruleMessage(rule, "Maximum %d characters allowed"), true
		}
	case RuleMinValue:
		if v.Kind == KindNumber && v.Number < rule.Value {
			return ruleMessage(rule, "Minimum value is %d"), true
		}
	case RuleMaxValue:
		if v.Kind == KindNumber && v.Number > rule.Value {
			return ruleMessage(rule, "Maximum value is %d"), true
		}
	}
	return "", false
}

func ruleMessage(rule ValidationRule, fallback string) string {
	if rule.Message != "" {
		return rule.Message
	}
	return fmt.Sprintf(fallback, int(rule.Value))
}
