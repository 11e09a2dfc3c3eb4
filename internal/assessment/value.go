package assessment

import (
	"encoding/json"
	"strconv"
	"strings"
)

// ValueKind discriminates the runtime shape of a response value.
type ValueKind string

const (
	KindEmpty   ValueKind = ""
	KindText    ValueKind = "text"
	KindNumber  ValueKind = "number"
	KindChoices ValueKind = "choices"
	KindFile    ValueKind = "file"
)

// FileMeta records an uploaded file as metadata only; binary content is
// never persisted.
type FileMeta struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type,omitempty"`
}

// Value is the tagged union of everything a candidate can submit for a single
// question: free text, a number, one or more choices, or a file descriptor.
// The zero Value means "not answered". On the wire it keeps the original
// scalar/array/object encoding rather than a wrapper object.
type Value struct {
	Kind    ValueKind
	Text    string
	Number  float64
	Choices []string
	File    *FileMeta
}

func TextValue(s string) Value       { return Value{Kind: KindText, Text: s} }
func NumberValue(n float64) Value    { return Value{Kind: KindNumber, Number: n} }
func ChoicesValue(c ...string) Value { return Value{Kind: KindChoices, Choices: c} }
func FileValue(meta FileMeta) Value  { return Value{Kind: KindFile, File: &meta} }

// IsEmpty reports whether the value counts as unanswered. Empty text and an
// empty choice list are unanswered; a numeric zero is a real answer.
func (v Value) IsEmpty() bool {
	switch v.Kind {
	case KindText:
		return v.Text == ""
	case KindNumber:
		return false
	case KindChoices:
		return len(v.Choices) == 0
	case KindFile:
		return v.File == nil
	default:
		return true
	}
}

// Contains reports whether a multi-choice answer includes option.
func (v Value) Contains(option string) bool {
	if v.Kind != KindChoices {
		return false
	}
	for _, c := range v.Choices {
		if c == option {
			return true
		}
	}
	return false
}

// String renders the value for flat exports. Choices join with "|", files
// render as their name.
func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case KindChoices:
		return strings.Join(v.Choices, "|")
	case KindFile:
		if v.File != nil {
			return v.File.Name
		}
		return ""
	default:
		return ""
	}
}

// equalsLiteral compares the value against a rule literal from a conditional
// rule. Text compares verbatim; numbers compare against the literal parsed as
// a float. Choice lists and files never equal a scalar literal.
func (v Value) equalsLiteral(lit string) bool {
	switch v.Kind {
	case KindText:
		return v.Text == lit
	case KindNumber:
		n, err := strconv.ParseFloat(strings.TrimSpace(lit), 64)
		return err == nil && v.Number == n
	default:
		return false
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case KindText:
		return json.Marshal(v.Text)
	case KindNumber:
		return json.Marshal(v.Number)
	case KindChoices:
		if v.Choices == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.Choices)
	case KindFile:
		return json.Marshal(v.File)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" || trimmed == "null" {
		*v = Value{}
		return nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = TextValue(s)
		return nil
	case '[':
		var c []string
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*v = Value{Kind: KindChoices, Choices: c}
		return nil
	case '{':
		var f FileMeta
		if err := json.Unmarshal(data, &f); err != nil {
			return err
		}
		*v = Value{Kind: KindFile, File: &f}
		return nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(data, &b); err != nil {
			return err
		}
		// checkboxes occasionally send bare booleans; coerce to text
		*v = TextValue(strconv.FormatBool(b))
		return nil
	default:
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*v = NumberValue(n)
		return nil
	}
}

// UnmarshalJSON accepts the rule value as either a JSON string or a bare
// number, since builders have historically written both.
func (r *ConditionalRule) UnmarshalJSON(data []byte) error {
	var raw struct {
		DependsOn string          `json:"dependsOn"`
		Operator  Operator        `json:"operator"`
		Value     json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.DependsOn = raw.DependsOn
	r.Operator = raw.Operator
	r.Value = ""
	if len(raw.Value) > 0 {
		var s string
		if err := json.Unmarshal(raw.Value, &s); err == nil {
			r.Value = s
		} else {
			r.Value = strings.TrimSpace(string(raw.Value))
		}
	}
	return nil
}
