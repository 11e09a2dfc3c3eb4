package assessment

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubBuilderStore struct {
	assessments map[string]*Assessment
	putErr      error
	getErr      error
	putCalls    int
}

func newStubBuilderStore() *stubBuilderStore {
	return &stubBuilderStore{assessments: map[string]*Assessment{}}
}

func (s *stubBuilderStore) GetAssessmentByJob(_ context.Context, jobID string) (*Assessment, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	return s.assessments[jobID].Clone(), nil
}

func (s *stubBuilderStore) PutAssessmentByJob(_ context.Context, jobID string, a *Assessment) (*Assessment, error) {
	s.putCalls++
	if s.putErr != nil {
		return nil, s.putErr
	}
	stored := a.Clone()
	stored.JobID = jobID
	s.assessments[jobID] = stored
	return stored.Clone(), nil
}

func fixedBuilder(store BuilderStore) *Builder {
	b := NewBuilder(store)
	b.now = func() time.Time { return time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC) }
	return b
}

func TestCreateSeedsDefaultSection(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)

	a := b.Create(context.Background(), "job-7")
	if a == nil {
		t.Fatalf("Create returned nil")
	}
	if a.JobID != "job-7" {
		t.Fatalf("jobID = %q", a.JobID)
	}
	if len(a.Sections) != 1 || a.Sections[0].Title != "General Questions" {
		t.Fatalf("default section missing: %+v", a.Sections)
	}
	if len(a.Sections[0].Questions) != 0 {
		t.Fatalf("new assessment must start with no questions")
	}
	if store.putCalls != 1 {
		t.Fatalf("expected immediate auto-save, putCalls = %d", store.putCalls)
	}
}

func TestCreateSurvivesSaveFailure(t *testing.T) {
	store := newStubBuilderStore()
	store.putErr = errors.New("network down")
	b := fixedBuilder(store)

	a := b.Create(context.Background(), "job-7")
	if a == nil || b.Current() == nil {
		t.Fatalf("draft must survive a failed auto-save")
	}

	// Local edits keep working against the unsaved draft.
	sec := b.AddSection()
	if sec == nil {
		t.Fatalf("AddSection failed after save failure")
	}
	if len(b.Current().Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(b.Current().Sections))
	}
}

func TestLoadMissingAssessmentIsTerminal(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")

	a, err := b.Load(context.Background(), "job-without-assessment")
	if err != nil {
		t.Fatalf("not-found must not be an error, got %v", err)
	}
	if a != nil || b.Current() != nil {
		t.Fatalf("current must become nil for a job with no assessment")
	}
}

func TestLoadPropagatesStoreFailure(t *testing.T) {
	store := newStubBuilderStore()
	store.getErr = errors.New("boom")
	b := fixedBuilder(store)

	if _, err := b.Load(context.Background(), "job-1"); err == nil {
		t.Fatalf("expected store failure to propagate")
	}
}

func TestUpdateDetails(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)

	title := "x"
	if b.UpdateDetails(DetailsUpdate{Title: &title}) {
		t.Fatalf("update without a loaded assessment must be a no-op")
	}

	b.Create(context.Background(), "job-1")
	newTitle := "Frontend Screen"
	if !b.UpdateDetails(DetailsUpdate{Title: &newTitle}) {
		t.Fatalf("UpdateDetails failed")
	}
	if b.Current().Title != "Frontend Screen" {
		t.Fatalf("title = %q", b.Current().Title)
	}
	if b.Current().Description == "" {
		t.Fatalf("untouched description must survive a partial update")
	}
}

func TestAddQuestionTypeDefaults(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	secID := b.Current().Sections[0].ID

	choice := b.AddQuestion(secID, TypeMultiChoice)
	if len(choice.Options) != 2 {
		t.Fatalf("choice defaults = %v", choice.Options)
	}
	numeric := b.AddQuestion(secID, TypeNumeric)
	if len(numeric.Validation) != 1 || numeric.Validation[0].Type != RuleMinValue {
		t.Fatalf("numeric defaults = %+v", numeric.Validation)
	}
	long := b.AddQuestion(secID, TypeLongText)
	if len(long.Validation) != 1 || long.Validation[0].Type != RuleMinLength {
		t.Fatalf("long-text defaults = %+v", long.Validation)
	}
	short := b.AddQuestion(secID, TypeShortText)
	if len(short.Validation) != 1 || short.Validation[0].Type != RuleMaxLength {
		t.Fatalf("short-text defaults = %+v", short.Validation)
	}
	upload := b.AddQuestion(secID, TypeFileUpload)
	if len(upload.Validation) != 0 || upload.Options != nil {
		t.Fatalf("file-upload must have no defaults: %+v", upload)
	}

	// Order is the append index within the section.
	qs := b.Current().Sections[0].Questions
	for i, q := range qs {
		if q.Order != i {
			t.Fatalf("question %d order = %d", i, q.Order)
		}
	}
}

func TestSectionOrderNotRenumberedOnDelete(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	second := b.AddSection()
	third := b.AddSection()

	if !b.DeleteSection(second.ID) {
		t.Fatalf("DeleteSection failed")
	}
	sections := b.Current().Sections
	if len(sections) != 2 {
		t.Fatalf("sections = %d", len(sections))
	}
	if sections[1].ID != third.ID || sections[1].Order != 2 {
		t.Fatalf("surviving section must keep its original order, got %+v", sections[1])
	}
}

func TestDeleteQuestionPurgesSessionState(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	secID := b.Current().Sections[0].ID
	q := b.AddQuestion(secID, TypeMultiChoice)

	sess := NewSession(b.Current(), "cand-1")
	b.AttachSession(sess)
	sess.SetResponse(q.ID, ChoicesValue("x"))
	if sess.Response(q.ID).IsEmpty() {
		t.Fatalf("response not recorded")
	}

	if !b.DeleteQuestion(secID, q.ID) {
		t.Fatalf("DeleteQuestion failed")
	}
	if !sess.Response(q.ID).IsEmpty() {
		t.Fatalf("deleting a question must purge its response")
	}
	if sess.Errors(q.ID) != nil {
		t.Fatalf("deleting a question must purge its errors")
	}
}

func TestMutationsOnMissingIDsAreNoOps(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")

	title := "t"
	if b.UpdateSection("nope", SectionUpdate{Title: &title}) {
		t.Fatalf("missing section must report false")
	}
	if b.UpdateQuestion("nope", "nope", QuestionUpdate{Title: &title}) {
		t.Fatalf("missing question must report false")
	}
	if b.DeleteSection("nope") || b.DeleteQuestion("nope", "nope") {
		t.Fatalf("missing deletes must report false")
	}
	if len(b.Current().Sections) != 1 {
		t.Fatalf("failed mutations must leave state untouched")
	}
}

func TestValidationRuleAddRemove(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	secID := b.Current().Sections[0].ID
	q := b.AddQuestion(secID, TypeFileUpload)

	rule := ValidationRule{Type: RuleMaxValue, Value: 9, Message: "cap"}
	if !b.AddValidationRule(secID, q.ID, rule) {
		t.Fatalf("AddValidationRule failed")
	}
	if !b.RemoveValidationRule(secID, q.ID, 0) {
		t.Fatalf("RemoveValidationRule failed")
	}
	if b.RemoveValidationRule(secID, q.ID, 0) {
		t.Fatalf("out-of-range index must report false")
	}
}

func TestSetConditional(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	secID := b.Current().Sections[0].ID
	a := b.AddQuestion(secID, TypeSingleChoice)
	dep := b.AddQuestion(secID, TypeShortText)

	rule := &ConditionalRule{DependsOn: a.ID, Operator: OpEquals, Value: "yes"}
	if !b.SetConditional(secID, dep.ID, rule) {
		t.Fatalf("SetConditional failed")
	}
	if got := b.Current().Sections[0].Questions[1].Conditional; got == nil || got.DependsOn != a.ID {
		t.Fatalf("conditional not set: %+v", got)
	}
	if !b.SetConditional(secID, dep.ID, nil) {
		t.Fatalf("clearing conditional failed")
	}
	if b.Current().Sections[0].Questions[1].Conditional != nil {
		t.Fatalf("conditional not cleared")
	}
}

func TestSaveReplacesWithCanonicalCopy(t *testing.T) {
	store := newStubBuilderStore()
	b := fixedBuilder(store)
	b.Create(context.Background(), "job-1")
	b.AddSection()

	saved, err := b.Save(context.Background())
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	if saved != b.Current() {
		t.Fatalf("current must be the canonical saved copy")
	}
	if stored := store.assessments["job-1"]; len(stored.Sections) != 2 {
		t.Fatalf("store has %d sections, want 2", len(stored.Sections))
	}
}
