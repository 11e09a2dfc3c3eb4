package assessment

import (
	"context"
	"time"
)

// SubmissionStore persists completed attempts.
type SubmissionStore interface {
	AddSubmission(ctx context.Context, sub *Submission) (*Submission, error)
}

// Session is one candidate's attempt at an assessment: the answers collected
// so far, the current per-question validation errors, and the navigation
// position. There is exactly one writer (the candidate's own input events),
// so no locking is involved; every mutation is a whole-map-key write.
type Session struct {
	assessment  *Assessment
	candidateID string

	responses map[string]Value
	errors    map[string][]string

	section   int
	submitted bool

	now   func() time.Time
	idGen func() string
}

func NewSession(a *Assessment, candidateID string) *Session {
	if candidateID == "" {
		candidateID = "candidate-" + shortID(12)
	}
	return &Session{
		assessment:  a,
		candidateID: candidateID,
		responses:   map[string]Value{},
		errors:      map[string][]string{},
		now:         func() time.Time { return time.Now().UTC() },
		idGen:       newSubmissionID,
	}
}

func (s *Session) Assessment() *Assessment { return s.assessment }
func (s *Session) CandidateID() string     { return s.candidateID }
func (s *Session) Submitted() bool         { return s.submitted }

// SetResponse records an answer and revalidates that question in one step.
// Answers for question ids not present in the definition are stored but get
// no errors, mirroring how a half-loaded form behaves.
func (s *Session) SetResponse(questionID string, v Value) {
	s.responses[questionID] = v
	if q := s.assessment.FindQuestion(questionID); q != nil {
		s.errors[questionID] = Validate(*q, v)
	} else {
		s.errors[questionID] = nil
	}
}

// Response returns the current answer for a question; the zero Value means
// unanswered.
func (s *Session) Response(questionID string) Value {
	return s.responses[questionID]
}

// Responses returns a copy of the collected answers.
func (s *Session) Responses() map[string]Value {
	out := make(map[string]Value, len(s.responses))
	for k, v := range s.responses {
		out[k] = v
	}
	return out
}

// Errors returns the current validation errors for a question.
func (s *Session) Errors(questionID string) []string {
	return s.errors[questionID]
}

// AllErrors returns a copy of the full error map.
func (s *Session) AllErrors() map[string][]string {
	out := make(map[string][]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = append([]string(nil), v...)
	}
	return out
}

// ValidateAll revalidates every currently visible question and rebuilds the
// error map from scratch, dropping stale entries for questions that have
// since been hidden. Hidden questions are never validated. It reports whether
// the attempt is submittable and is a pure function of definition plus
// answers, so repeated calls agree.
func (s *Session) ValidateAll() bool {
	fresh := map[string][]string{}
	ok := true
	for _, sec := range s.assessment.Sections {
		for _, q := range sec.Questions {
			if !IsVisible(q, s.responses) {
				continue
			}
			if errs := Validate(q, s.responses[q.ID]); len(errs) > 0 {
				fresh[q.ID] = errs
				ok = false
			}
		}
	}
	s.errors = fresh
	return ok
}

// FirstInvalidQuestion returns the id of the first visible question carrying
// errors, in section order, so the UI can scroll to it. Empty when clean.
func (s *Session) FirstInvalidQuestion() string {
	for _, sec := range s.assessment.Sections {
		for _, q := range VisibleQuestions(sec, s.responses) {
			if len(s.errors[q.ID]) > 0 {
				return q.ID
			}
		}
	}
	return ""
}

// Clear wipes all answers and errors for a retake.
func (s *Session) Clear() {
	s.responses = map[string]Value{}
	s.errors = map[string][]string{}
}

// forget drops a single question's session state; used when the builder
// deletes the question out from under a preview.
func (s *Session) forget(questionID string) {
	delete(s.responses, questionID)
	delete(s.errors, questionID)
}

// VisibleSections returns the sections that currently have at least one
// visible question; only these are navigable.
func (s *Session) VisibleSections() []Section {
	out := make([]Section, 0, len(s.assessment.Sections))
	for _, sec := range s.assessment.Sections {
		if len(VisibleQuestions(sec, s.responses)) > 0 {
			out = append(out, sec)
		}
	}
	return out
}

// CurrentSection returns the clamped navigation index and the section it
// refers to. The second result is nil when nothing is navigable.
func (s *Session) CurrentSection() (int, *Section) {
	visible := s.VisibleSections()
	if len(visible) == 0 {
		return 0, nil
	}
	idx := s.section
	if idx < 0 {
		idx = 0
	}
	if idx > len(visible)-1 {
		idx = len(visible) - 1
	}
	return idx, &visible[idx]
}

func (s *Session) NextSection() {
	idx, _ := s.CurrentSection()
	s.section = idx + 1
}

func (s *Session) PreviousSection() {
	idx, _ := s.CurrentSection()
	if idx > 0 {
		s.section = idx - 1
	} else {
		s.section = 0
	}
}

// OnLastSection reports whether the attempt is on the final navigable
// section; submit is only offered there.
func (s *Session) OnLastSection() bool {
	visible := s.VisibleSections()
	if len(visible) == 0 {
		return false
	}
	idx, _ := s.CurrentSection()
	return idx == len(visible)-1
}

// Progress returns the answered share of all visible questions, in percent.
func (s *Session) Progress() float64 {
	total, answered := 0, 0
	for _, sec := range s.assessment.Sections {
		for _, q := range VisibleQuestions(sec, s.responses) {
			total++
			if !s.responses[q.ID].IsEmpty() {
				answered++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}

// SectionProgress returns the answered share of the section's visible
// questions, in percent.
func (s *Session) SectionProgress(sec Section) float64 {
	visible := VisibleQuestions(sec, s.responses)
	if len(visible) == 0 {
		return 0
	}
	answered := 0
	for _, q := range visible {
		if !s.responses[q.ID].IsEmpty() {
			answered++
		}
	}
	return float64(answered) / float64(len(visible)) * 100
}

// Submit gates on a full validation pass, then persists an immutable
// submission record and moves the session to its terminal submitted state.
// On a failed validation it returns ErrValidationFailed and leaves all
// collected answers intact.
func (s *Session) Submit(ctx context.Context, store SubmissionStore) (*Submission, error) {
	if s.submitted {
		return nil, ErrAlreadySubmitted
	}
	if !s.ValidateAll() {
		return nil, ErrValidationFailed
	}
	now := s.now()
	sub := &Submission{
		ID:           s.idGen(),
		AssessmentID: s.assessment.ID,
		JobID:        s.assessment.JobID,
		CandidateID:  s.candidateID,
		Responses:    s.Responses(),
		CompletedAt:  now,
		CreatedAt:    now,
	}
	saved, err := store.AddSubmission(ctx, sub)
	if err != nil {
		return nil, err
	}
	if saved != nil {
		sub = saved
	}
	s.submitted = true
	return sub, nil
}

// Retake clears the attempt and returns to the first section so the
// candidate can answer again.
func (s *Session) Retake() {
	s.submitted = false
	s.section = 0
	s.Clear()
}
