package assessment

import "time"

// QuestionType enumerates the kinds of prompts an assessment can contain.
type QuestionType string

const (
	TypeShortText    QuestionType = "short-text"
	TypeLongText     QuestionType = "long-text"
	TypeSingleChoice QuestionType = "single-choice"
	TypeMultiChoice  QuestionType = "multi-choice"
	TypeNumeric      QuestionType = "numeric"
	TypeFileUpload   QuestionType = "file-upload"
)

// RuleType enumerates validation rule kinds. Requiredness is a flag on the
// question itself, not a rule.
type RuleType string

const (
	RuleMinLength RuleType = "min-length"
	RuleMaxLength RuleType = "max-length"
	RuleMinValue  RuleType = "min-value"
	RuleMaxValue  RuleType = "max-value"
)

// Operator enumerates conditional visibility comparisons.
type Operator string

const (
	OpEquals      Operator = "equals"
	OpNotEquals   Operator = "not-equals"
	OpContains    Operator = "contains"
	OpGreaterThan Operator = "greater-than"
	OpLessThan    Operator = "less-than"
)

type Assessment struct {
	ID          string    `json:"id"`
	JobID       string    `json:"jobId"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Sections    []Section `json:"sections"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Section struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Order       int        `json:"order"`
	Questions   []Question `json:"questions"`
}

type Question struct {
	ID          string           `json:"id"`
	Type        QuestionType     `json:"type"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Required    bool             `json:"required"`
	Order       int              `json:"order"`
	Options     []string         `json:"options,omitempty"`
	Validation  []ValidationRule `json:"validation,omitempty"`
	Conditional *ConditionalRule `json:"conditional,omitempty"`
}

// ValidationRule is one constraint on an answered value. Length rules compare
// against the text length, value rules against the numeric value.
type ValidationRule struct {
	Type    RuleType `json:"type"`
	Value   float64  `json:"value"`
	Message string   `json:"message,omitempty"`
}

// ConditionalRule gates a question's visibility on another question's answer.
// Value is kept as its wire string; numeric operators parse it on evaluation.
type ConditionalRule struct {
	DependsOn string   `json:"dependsOn"`
	Operator  Operator `json:"operator"`
	Value     string   `json:"value"`
}

// Submission is the immutable record produced by a completed attempt.
type Submission struct {
	ID           string           `json:"id"`
	AssessmentID string           `json:"assessmentId"`
	JobID        string           `json:"jobId"`
	CandidateID  string           `json:"candidateId"`
	Responses    map[string]Value `json:"responses"`
	CompletedAt  time.Time        `json:"completedAt"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// Job is the owning collaborator record; the engine only reads it for
// display context alongside an assessment.
type Job struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status,omitempty"`
	Location  string    `json:"location,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Clone returns a deep copy so stores can hand out canonical snapshots
// without sharing slices with callers.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	out := *a
	out.Sections = make([]Section, len(a.Sections))
	for i, sec := range a.Sections {
		cs := sec
		cs.Questions = make([]Question, len(sec.Questions))
		for j, q := range sec.Questions {
			cq := q
			cq.Options = append([]string(nil), q.Options...)
			cq.Validation = append([]ValidationRule(nil), q.Validation...)
			if q.Conditional != nil {
				cond := *q.Conditional
				cq.Conditional = &cond
			}
			cs.Questions[j] = cq
		}
		out.Sections[i] = cs
	}
	return &out
}

// FindQuestion locates a question by id across all sections.
func (a *Assessment) FindQuestion(questionID string) *Question {
	if a == nil {
		return nil
	}
	for si := range a.Sections {
		for qi := range a.Sections[si].Questions {
			if a.Sections[si].Questions[qi].ID == questionID {
				return &a.Sections[si].Questions[qi]
			}
		}
	}
	return nil
}

// FindSection locates a section by id.
func (a *Assessment) FindSection(sectionID string) *Section {
	if a == nil {
		return nil
	}
	for i := range a.Sections {
		if a.Sections[i].ID == sectionID {
			return &a.Sections[i]
		}
	}
	return nil
}
