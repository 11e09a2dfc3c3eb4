package api

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/hireloop/hireloop/internal/assessment"
)

func fixedMemoryStore(t time.Time) *MemoryStore {
	s := NewMemoryStore()
	s.now = func() time.Time { return t }
	return s
}

func sampleAssessment() *assessment.Assessment {
	return &assessment.Assessment{
		Title:       "Frontend Screen",
		Description: "Tell us about your frontend work.",
		Sections: []assessment.Section{
			{
				ID:    "sec-1",
				Title: "Experience",
				Questions: []assessment.Question{
					{ID: "q-1", Type: assessment.TypeSingleChoice, Title: "Years?", Required: true, Options: []string{"0-2", "3-5", "5+"}},
					{ID: "q-2", Type: assessment.TypeLongText, Title: "Describe a project", Validation: []assessment.ValidationRule{
						{Type: assessment.RuleMinLength, Value: 100},
					}},
				},
			},
		},
	}
}

func TestMemoryStorePutGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := fixedMemoryStore(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	saved, err := s.PutAssessmentByJob(ctx, "job-1", sampleAssessment())
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if saved.ID == "" || saved.JobID != "job-1" {
		t.Fatalf("canonical copy missing ids: %+v", saved)
	}
	if saved.CreatedAt.IsZero() || saved.UpdatedAt.IsZero() {
		t.Fatalf("timestamps not stamped: %+v", saved)
	}

	got, err := s.GetAssessmentByJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got.Sections, saved.Sections) {
		t.Fatalf("sections changed across the store boundary:\n put %+v\n got %+v", saved.Sections, got.Sections)
	}
}

func TestMemoryStoreUpsertKeepsIdentity(t *testing.T) {
	ctx := context.Background()
	s := fixedMemoryStore(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	first, err := s.PutAssessmentByJob(ctx, "job-1", sampleAssessment())
	if err != nil {
		t.Fatalf("first put: %v", err)
	}

	s.now = func() time.Time { return time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC) }
	replacement := sampleAssessment()
	replacement.Title = "Frontend Screen v2"
	second, err := s.PutAssessmentByJob(ctx, "job-1", replacement)
	if err != nil {
		t.Fatalf("second put: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("upsert changed the id: %q -> %q", first.ID, second.ID)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("upsert changed CreatedAt")
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("upsert did not advance UpdatedAt")
	}
	if second.Title != "Frontend Screen v2" {
		t.Fatalf("upsert lost the new content")
	}
}

func TestMemoryStoreGetMissingReturnsNil(t *testing.T) {
	s := NewMemoryStore()
	a, err := s.GetAssessmentByJob(context.Background(), "nope")
	if err != nil || a != nil {
		t.Fatalf("want nil, nil for absent job, got %v, %v", a, err)
	}
}

func TestMemoryStoreHandsOutCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.PutAssessmentByJob(ctx, "job-1", sampleAssessment()); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, _ := s.GetAssessmentByJob(ctx, "job-1")
	got.Sections[0].Questions[0].Title = "mutated"

	again, _ := s.GetAssessmentByJob(ctx, "job-1")
	if again.Sections[0].Questions[0].Title == "mutated" {
		t.Fatalf("caller mutation leaked into the store")
	}
}

func TestMemoryStoreSubmissionsByJob(t *testing.T) {
	ctx := context.Background()
	s := fixedMemoryStore(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))

	for _, sub := range []*assessment.Submission{
		{ID: "r1", JobID: "job-1", CandidateID: "c1", Responses: map[string]assessment.Value{"q-1": assessment.TextValue("3-5")}},
		{ID: "r2", JobID: "job-2", CandidateID: "c2"},
		{ID: "r3", JobID: "job-1", CandidateID: "c3"},
	} {
		if _, err := s.AddSubmission(ctx, sub); err != nil {
			t.Fatalf("add %s: %v", sub.ID, err)
		}
	}

	subs, err := s.ListSubmissionsByJob(ctx, "job-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(subs) != 2 || subs[0].ID != "r1" || subs[1].ID != "r3" {
		t.Fatalf("unexpected submissions: %+v", subs)
	}
	if subs[0].CreatedAt.IsZero() {
		t.Fatalf("AddSubmission must stamp CreatedAt")
	}
}

func TestMemoryStoreSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state", "snapshot.json")

	s := fixedMemoryStore(time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC))
	if err := s.PutJob(ctx, &assessment.Job{ID: "job-1", Title: "Backend Engineer", Status: "active"}); err != nil {
		t.Fatalf("put job: %v", err)
	}
	if _, err := s.PutAssessmentByJob(ctx, "job-1", sampleAssessment()); err != nil {
		t.Fatalf("put assessment: %v", err)
	}
	if err := s.SaveSnapshot(path); err != nil {
		t.Fatalf("save snapshot: %v", err)
	}

	loaded, err := NewMemoryStoreFromPath(path)
	if err != nil {
		t.Fatalf("load snapshot: %v", err)
	}
	jobs, _ := loaded.ListJobs(ctx)
	if len(jobs) != 1 || jobs[0].Title != "Backend Engineer" {
		t.Fatalf("jobs lost across snapshot: %+v", jobs)
	}
	a, _ := loaded.GetAssessmentByJob(ctx, "job-1")
	if a == nil || len(a.Sections) != 1 || len(a.Sections[0].Questions) != 2 {
		t.Fatalf("assessment lost across snapshot: %+v", a)
	}
}

func TestMemoryStoreFromMissingPathIsEmpty(t *testing.T) {
	s, err := NewMemoryStoreFromPath(filepath.Join(t.TempDir(), "absent.json"))
	if err != nil {
		t.Fatalf("missing snapshot must not error: %v", err)
	}
	jobs, _ := s.ListJobs(context.Background())
	if len(jobs) != 0 {
		t.Fatalf("expected empty store")
	}
}
