package assessment

import (
	"context"
	"log"
	"time"
)

// BuilderStore abstracts the persistence operations the builder needs.
// Lookup is by job id: a job owns at most one assessment and Put upserts
// with last-write-wins semantics.
type BuilderStore interface {
	GetAssessmentByJob(ctx context.Context, jobID string) (*Assessment, error)
	PutAssessmentByJob(ctx context.Context, jobID string, a *Assessment) (*Assessment, error)
}

// Builder is one editing session over a single assessment definition.
// All structural mutations are local and synchronous; only Create, Load and
// Save touch the store. Mutations that reference a missing section or
// question id report false and otherwise leave state untouched, which keeps
// a stale editing surface from breaking the whole session.
type Builder struct {
	store   BuilderStore
	now     func() time.Time
	current *Assessment
	session *Session
}

func NewBuilder(store BuilderStore) *Builder {
	return &Builder{
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// Current returns the assessment being edited, or nil when none is loaded.
func (b *Builder) Current() *Assessment { return b.current }

// AttachSession links a taking session (e.g. the builder's preview pane) so
// that deleting a question also drops its collected answer.
func (b *Builder) AttachSession(s *Session) { b.session = s }

// DetailsUpdate, SectionUpdate and QuestionUpdate name exactly the fields an
// editor may change; nil pointers leave the field alone. Structural fields
// (sections, question lists, ids) are not reachable through them.
type DetailsUpdate struct {
	Title       *string
	Description *string
}

type SectionUpdate struct {
	Title       *string
	Description *string
}

type QuestionUpdate struct {
	Type        *QuestionType
	Title       *string
	Description *string
	Required    *bool
	Options     *[]string
}

// Create synthesizes an empty draft for the job with one default section and
// makes it current. The draft is saved immediately on a best-effort basis: a
// failed write is logged but the in-memory draft survives so editing can
// continue.
func (b *Builder) Create(ctx context.Context, jobID string) *Assessment {
	now := b.now()
	a := &Assessment{
		ID:          newAssessmentID(jobID),
		JobID:       jobID,
		Title:       "New Assessment",
		Description: "Please complete this assessment to help us evaluate your fit for this role.",
		Sections: []Section{{
			ID:          newSectionID(),
			Title:       "General Questions",
			Description: "Basic questions about your background and experience.",
			Order:       0,
			Questions:   []Question{},
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	b.current = a

	if saved, err := b.store.PutAssessmentByJob(ctx, jobID, a); err != nil {
		log.Printf("builder: auto-save of new assessment for job %s failed: %v", jobID, err)
	} else if saved != nil {
		b.current = saved
	}
	return b.current
}

// Load fetches the assessment owned by jobID. A job without an assessment is
// a valid terminal state: current becomes nil and no error is returned. Any
// other store failure propagates.
func (b *Builder) Load(ctx context.Context, jobID string) (*Assessment, error) {
	a, err := b.store.GetAssessmentByJob(ctx, jobID)
	if err != nil {
		if se, ok := AsServiceError(err); ok && se.Code == ErrorNotFound {
			b.current = nil
			return nil, nil
		}
		return nil, err
	}
	b.current = a
	return a, nil
}

// Save upserts the current assessment by job id and replaces it with the
// store's canonical copy.
func (b *Builder) Save(ctx context.Context) (*Assessment, error) {
	if b.current == nil {
		return nil, NewInvalidError("no assessment loaded")
	}
	saved, err := b.store.PutAssessmentByJob(ctx, b.current.JobID, b.current)
	if err != nil {
		return nil, err
	}
	if saved != nil {
		b.current = saved
	}
	return b.current, nil
}

// UpdateDetails applies a partial update to the assessment's own fields.
func (b *Builder) UpdateDetails(upd DetailsUpdate) bool {
	if b.current == nil {
		return false
	}
	if upd.Title != nil {
		b.current.Title = *upd.Title
	}
	if upd.Description != nil {
		b.current.Description = *upd.Description
	}
	b.touch()
	return true
}

// AddSection appends a new empty section. Order is the append index and is
// never renumbered afterwards; display order follows slice position.
func (b *Builder) AddSection() *Section {
	if b.current == nil {
		return nil
	}
	sec := Section{
		ID:        newSectionID(),
		Title:     "New Section",
		Order:     len(b.current.Sections),
		Questions: []Question{},
	}
	b.current.Sections = append(b.current.Sections, sec)
	b.touch()
	return &b.current.Sections[len(b.current.Sections)-1]
}

func (b *Builder) UpdateSection(sectionID string, upd SectionUpdate) bool {
	sec := b.current.FindSection(sectionID)
	if sec == nil {
		return false
	}
	if upd.Title != nil {
		sec.Title = *upd.Title
	}
	if upd.Description != nil {
		sec.Description = *upd.Description
	}
	b.touch()
	return true
}

func (b *Builder) DeleteSection(sectionID string) bool {
	if b.current == nil {
		return false
	}
	for i := range b.current.Sections {
		if b.current.Sections[i].ID == sectionID {
			b.current.Sections = append(b.current.Sections[:i], b.current.Sections[i+1:]...)
			b.touch()
			return true
		}
	}
	return false
}

// AddQuestion appends a question of the given type to a section, seeded with
// the type's default options and validation rules.
func (b *Builder) AddQuestion(sectionID string, qt QuestionType) *Question {
	sec := b.current.FindSection(sectionID)
	if sec == nil {
		return nil
	}
	q := Question{
		ID:       newQuestionID(),
		Type:     qt,
		Title:    "New Question",
		Required: false,
		Order:    len(sec.Questions),
	}
	switch qt {
	case TypeSingleChoice, TypeMultiChoice:
		q.Options = []string{"Option 1", "Option 2"}
	case TypeNumeric:
		q.Validation = []ValidationRule{{Type: RuleMinValue, Value: 0, Message: "Value must be positive"}}
	case TypeLongText:
		q.Validation = []ValidationRule{{Type: RuleMinLength, Value: 10, Message: "Please provide at least 10 characters"}}
	case TypeShortText:
		q.Validation = []ValidationRule{{Type: RuleMaxLength, Value: 500, Message: "Please keep under 500 characters"}}
	}
	sec.Questions = append(sec.Questions, q)
	b.touch()
	return &sec.Questions[len(sec.Questions)-1]
}

func (b *Builder) UpdateQuestion(sectionID, questionID string, upd QuestionUpdate) bool {
	q := b.questionIn(sectionID, questionID)
	if q == nil {
		return false
	}
	if upd.Type != nil {
		q.Type = *upd.Type
	}
	if upd.Title != nil {
		q.Title = *upd.Title
	}
	if upd.Description != nil {
		q.Description = *upd.Description
	}
	if upd.Required != nil {
		q.Required = *upd.Required
	}
	if upd.Options != nil {
		q.Options = *upd.Options
	}
	b.touch()
	return true
}

// DeleteQuestion removes the question and purges its entries from the
// attached session so no orphaned answer or error survives the definition.
func (b *Builder) DeleteQuestion(sectionID, questionID string) bool {
	sec := b.current.FindSection(sectionID)
	if sec == nil {
		return false
	}
	for i := range sec.Questions {
		if sec.Questions[i].ID == questionID {
			sec.Questions = append(sec.Questions[:i], sec.Questions[i+1:]...)
			if b.session != nil {
				b.session.forget(questionID)
			}
			b.touch()
			return true
		}
	}
	return false
}

// SetConditional sets or clears (rule == nil) the visibility rule as a whole.
func (b *Builder) SetConditional(sectionID, questionID string, rule *ConditionalRule) bool {
	q := b.questionIn(sectionID, questionID)
	if q == nil {
		return false
	}
	q.Conditional = rule
	b.touch()
	return true
}

// AddValidationRule appends a rule to the question's list. Rules are never
// edited in place; editors remove and re-add.
func (b *Builder) AddValidationRule(sectionID, questionID string, rule ValidationRule) bool {
	q := b.questionIn(sectionID, questionID)
	if q == nil {
		return false
	}
	q.Validation = append(q.Validation, rule)
	b.touch()
	return true
}

func (b *Builder) RemoveValidationRule(sectionID, questionID string, index int) bool {
	q := b.questionIn(sectionID, questionID)
	if q == nil || index < 0 || index >= len(q.Validation) {
		return false
	}
	q.Validation = append(q.Validation[:index], q.Validation[index+1:]...)
	b.touch()
	return true
}

func (b *Builder) questionIn(sectionID, questionID string) *Question {
	sec := b.current.FindSection(sectionID)
	if sec == nil {
		return nil
	}
	for i := range sec.Questions {
		if sec.Questions[i].ID == questionID {
			return &sec.Questions[i]
		}
	}
	return nil
}

func (b *Builder) touch() {
	if b.current != nil {
		b.current.UpdatedAt = b.now()
	}
}
