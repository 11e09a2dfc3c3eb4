package api

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hireloop/hireloop/internal/assessment"
)

// Store is the persistence boundary the HTTP layer and the assessment engine
// share. Assessments are keyed by job id (upsert, last write wins);
// submissions by their own synthetic id. Gets return nil for absent records
// rather than an error.
type Store interface {
	GetAssessmentByJob(ctx context.Context, jobID string) (*assessment.Assessment, error)
	PutAssessmentByJob(ctx context.Context, jobID string, a *assessment.Assessment) (*assessment.Assessment, error)

	AddSubmission(ctx context.Context, sub *assessment.Submission) (*assessment.Submission, error)
	ListSubmissionsByJob(ctx context.Context, jobID string) ([]*assessment.Submission, error)

	GetJob(ctx context.Context, id string) (*assessment.Job, error)
	ListJobs(ctx context.Context) ([]*assessment.Job, error)
	PutJob(ctx context.Context, job *assessment.Job) error
}

// MemoryStore keeps everything in process, guarded by one RWMutex. It hands
// out deep copies so callers never share slices with the stored records.
// With a snapshot path set it can persist itself to a JSON file, which is
// all the durability a single-writer local deployment needs.
type MemoryStore struct {
	mu               sync.RWMutex
	assessmentsByJob map[string]*assessment.Assessment
	submissions      []*assessment.Submission
	jobs             map[string]*assessment.Job
	now              func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		assessmentsByJob: map[string]*assessment.Assessment{},
		submissions:      []*assessment.Submission{},
		jobs:             map[string]*assessment.Job{},
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) GetAssessmentByJob(_ context.Context, jobID string) (*assessment.Assessment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.assessmentsByJob[jobID].Clone(), nil
}

func (s *MemoryStore) PutAssessmentByJob(_ context.Context, jobID string, a *assessment.Assessment) (*assessment.Assessment, error) {
	if a == nil {
		return nil, assessment.NewInvalidError("assessment required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := a.Clone()
	stored.JobID = jobID
	now := s.now()
	if existing := s.assessmentsByJob[jobID]; existing != nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = "assessment-" + jobID
		}
		if stored.CreatedAt.IsZero() {
			stored.CreatedAt = now
		}
	}
	stored.UpdatedAt = now
	s.assessmentsByJob[jobID] = stored
	return stored.Clone(), nil
}

func (s *MemoryStore) AddSubmission(_ context.Context, sub *assessment.Submission) (*assessment.Submission, error) {
	if sub == nil {
		return nil, assessment.NewInvalidError("submission required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *sub
	stored.Responses = make(map[string]assessment.Value, len(sub.Responses))
	for k, v := range sub.Responses {
		stored.Responses[k] = v
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = s.now()
	}
	s.submissions = append(s.submissions, &stored)
	out := stored
	return &out, nil
}

func (s *MemoryStore) ListSubmissionsByJob(_ context.Context, jobID string) ([]*assessment.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*assessment.Submission{}
	for _, sub := range s.submissions {
		if sub.JobID == jobID {
			cp := *sub
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *MemoryStore) GetJob(_ context.Context, id string) (*assessment.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if j := s.jobs[id]; j != nil {
		cp := *j
		return &cp, nil
	}
	return nil, nil
}

func (s *MemoryStore) ListJobs(_ context.Context) ([]*assessment.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*assessment.Job, 0, len(s.jobs))
	for _, j := range s.jobs {
		cp := *j
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemoryStore) PutJob(_ context.Context, job *assessment.Job) error {
	if job == nil || job.ID == "" {
		return assessment.NewInvalidError("job id required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *job
	s.jobs[job.ID] = &cp
	return nil
}

type memorySnapshot struct {
	Assessments map[string]*assessment.Assessment `json:"assessments"`
	Submissions []*assessment.Submission          `json:"submissions"`
	Jobs        map[string]*assessment.Job        `json:"jobs"`
}

// SaveSnapshot writes the full store state to path as JSON.
func (s *MemoryStore) SaveSnapshot(path string) error {
	s.mu.RLock()
	snap := memorySnapshot{
		Assessments: s.assessmentsByJob,
		Submissions: s.submissions,
		Jobs:        s.jobs,
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	s.mu.RUnlock()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// NewMemoryStoreFromPath loads a snapshot written by SaveSnapshot. A missing
// file yields an empty store.
func NewMemoryStoreFromPath(path string) (*MemoryStore, error) {
	st := NewMemoryStore()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return st, nil
		}
		return nil, err
	}
	var snap memorySnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	if snap.Assessments != nil {
		st.assessmentsByJob = snap.Assessments
	}
	if snap.Submissions != nil {
		st.submissions = snap.Submissions
	}
	if snap.Jobs != nil {
		st.jobs = snap.Jobs
	}
	return st, nil
}
