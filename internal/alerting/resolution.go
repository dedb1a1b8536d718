package alerting

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// SnapshotStore persists resolution records between restarts.
type SnapshotStore interface {
	Load(ctx context.Context) ([]domain.Resolution, error)
	Save(ctx context.Context, resolutions []domain.Resolution) error
}

// ResolutionStore tracks resolution state for derived alerts. Derived alerts
// are regenerated from jobs on every change, so resolved state must live
// outside the derivation and be re-merged afterwards; otherwise resolved
// alerts reappear on the next regeneration.
type ResolutionStore struct {
	mu       sync.RWMutex
	records  map[string]domain.Resolution
	snapshot SnapshotStore
	logger   *zap.Logger
}

// NewResolutionStore constructs an empty store.
func NewResolutionStore(snapshot SnapshotStore, logger *zap.Logger) *ResolutionStore {
	return &ResolutionStore{
		records:  make(map[string]domain.Resolution),
		snapshot: snapshot,
		logger:   logger,
	}
}

// Load restores persisted resolution records.
func (s *ResolutionStore) Load(ctx context.Context) {
	if s.snapshot == nil {
		return
	}
	records, err := s.snapshot.Load(ctx)
	if err != nil {
		s.logger.Warn("resolution snapshot unreadable; starting empty", zap.Error(err))
		return
	}
	s.mu.Lock()
	for _, r := range records {
		s.records[r.AlertID] = r
	}
	s.mu.Unlock()
}

// Resolve records a resolution for the given alert id. Re-resolving an
// already-resolved alert keeps the original record.
func (s *ResolutionStore) Resolve(ctx context.Context, res domain.Resolution) {
	s.mu.Lock()
	if _, exists := s.records[res.AlertID]; exists {
		s.mu.Unlock()
		return
	}
	s.records[res.AlertID] = res
	records := s.recordsLocked()
	s.mu.Unlock()

	s.persist(ctx, records)
}

// Get returns the resolution record for an alert id, if any.
func (s *ResolutionStore) Get(alertID string) (domain.Resolution, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[alertID]
	return r, ok
}

// Records returns every resolution record, newest first. Records whose alert
// no longer fires are retained here for historical display.
func (s *ResolutionStore) Records() []domain.Resolution {
	s.mu.RLock()
	records := s.recordsLocked()
	s.mu.RUnlock()

	sort.SliceStable(records, func(a, b int) bool {
		return records[a].ResolvedAt.After(records[b].ResolvedAt)
	})
	return records
}

// Merge applies stored resolution state to a freshly derived alert list.
// Alerts with a matching record come back resolved instead of active.
func (s *ResolutionStore) Merge(raw []domain.Alert) []domain.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()

	merged := make([]domain.Alert, len(raw))
	for i, alert := range raw {
		if rec, ok := s.records[alert.ID]; ok {
			alert.Resolved = true
			alert.ResolvedBy = rec.ResolvedBy
			resolvedAt := rec.ResolvedAt
			alert.ResolvedAt = &resolvedAt
			alert.Resolution = rec.Resolution
		}
		merged[i] = alert
	}
	return merged
}

func (s *ResolutionStore) recordsLocked() []domain.Resolution {
	records := make([]domain.Resolution, 0, len(s.records))
	for _, r := range s.records {
		records = append(records, r)
	}
	return records
}

func (s *ResolutionStore) persist(ctx context.Context, records []domain.Resolution) {
	if s.snapshot == nil {
		return
	}
	if err := s.snapshot.Save(ctx, records); err != nil {
		s.logger.Warn("failed to persist resolution snapshot", zap.Error(err))
	}
}
