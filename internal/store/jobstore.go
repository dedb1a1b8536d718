package store

import (
	"context"
	"errors"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// ErrJobNotFound signals a lookup or update against an unknown job id.
var ErrJobNotFound = errors.New("job not found")

// SnapshotStore mirrors the in-memory job collection to durable storage.
// The full collection is written on every mutation.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Job, error)
	Save(ctx context.Context, jobs []domain.Job) error
}

// JobStore owns the job collection. All mutations flow through AddJob and
// UpdateJob; readers receive snapshot copies. Memory is authoritative: a
// failed snapshot write is logged and the mutation stands.
type JobStore struct {
	mu       sync.RWMutex
	jobs     []domain.Job
	snapshot SnapshotStore
	logger   *zap.Logger
}

// NewJobStore constructs an empty store.
func NewJobStore(snapshot SnapshotStore, logger *zap.Logger) *JobStore {
	return &JobStore{snapshot: snapshot, logger: logger}
}

// Load populates the store from the snapshot, falling back to seed data when
// the snapshot is missing or unreadable. The fallback is then persisted so
// subsequent boots see a valid payload.
func (s *JobStore) Load(ctx context.Context, seed func() []domain.Job) {
	jobs, err := s.snapshot.Load(ctx)
	if err != nil {
		s.logger.Warn("job snapshot unreadable; regenerating seed data", zap.Error(err))
		jobs = nil
	}
	if jobs == nil {
		jobs = seed()
		s.logger.Info("seeded job collection", zap.Int("jobs", len(jobs)))
	}

	s.mu.Lock()
	s.jobs = jobs
	s.mu.Unlock()

	if err := s.snapshot.Save(ctx, jobs); err != nil {
		s.logger.Warn("failed to persist job snapshot", zap.Error(err))
	}
}

// Jobs returns a snapshot copy of the collection in display order.
func (s *JobStore) Jobs() []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Job, len(s.jobs))
	copy(out, s.jobs)
	return out
}

// GetJobByID matches by id or, failing that, by job number
// (case-insensitive). The dual-key lookup is deliberate: callers routinely
// hold either identifier.
func (s *JobStore) GetJobByID(id string) (*domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.jobs {
		if s.jobs[i].ID == id || strings.EqualFold(s.jobs[i].JobNumber, id) {
			job := s.jobs[i]
			return &job, true
		}
	}
	return nil, false
}

// GetJobByJobNumber matches the job number only, case-insensitively.
func (s *JobStore) GetJobByJobNumber(jobNumber string) (*domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.jobs {
		if strings.EqualFold(s.jobs[i].JobNumber, jobNumber) {
			job := s.jobs[i]
			return &job, true
		}
	}
	return nil, false
}

// GetJobsByTicketReference returns every job linked to the ticket reference,
// case-insensitively. The link is a loose string; referential integrity is
// not enforced.
func (s *JobStore) GetJobsByTicketReference(ref string) []domain.Job {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Job
	for i := range s.jobs {
		if strings.EqualFold(s.jobs[i].TicketReference, ref) {
			out = append(out, s.jobs[i])
		}
	}
	return out
}

// AddJob prepends the job and persists the full collection. Job numbers are
// not guaranteed unique; a duplicate is logged, not rejected.
func (s *JobStore) AddJob(ctx context.Context, job domain.Job) error {
	s.mu.Lock()
	for i := range s.jobs {
		if strings.EqualFold(s.jobs[i].JobNumber, job.JobNumber) {
			s.logger.Warn("duplicate job number",
				zap.String("job_number", job.JobNumber),
				zap.String("existing_id", s.jobs[i].ID),
				zap.String("new_id", job.ID))
			break
		}
	}
	s.jobs = append([]domain.Job{job}, s.jobs...)
	jobs := make([]domain.Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	s.persist(ctx, jobs)
	return nil
}

// UpdateJob replaces the job whose id matches and persists the full
// collection. Callers supply a complete replacement value; there is no
// partial-update path. Last writer wins.
func (s *JobStore) UpdateJob(ctx context.Context, updated domain.Job) error {
	s.mu.Lock()
	idx := -1
	for i := range s.jobs {
		if s.jobs[i].ID == updated.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()
		return ErrJobNotFound
	}
	s.jobs[idx] = updated
	jobs := make([]domain.Job, len(s.jobs))
	copy(jobs, s.jobs)
	s.mu.Unlock()

	s.persist(ctx, jobs)
	return nil
}

func (s *JobStore) persist(ctx context.Context, jobs []domain.Job) {
	if err := s.snapshot.Save(ctx, jobs); err != nil {
		s.logger.Warn("failed to persist job snapshot", zap.Error(err))
	}
}
