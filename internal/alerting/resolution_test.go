package alerting

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

type fakeResolutionSnapshot struct {
	saved []domain.Resolution
	loads []domain.Resolution
	err   error
}

func (f *fakeResolutionSnapshot) Load(ctx context.Context) ([]domain.Resolution, error) {
	return f.loads, f.err
}

func (f *fakeResolutionSnapshot) Save(ctx context.Context, resolutions []domain.Resolution) error {
	f.saved = resolutions
	return nil
}

func TestMergeAppliesStoredResolution(t *testing.T) {
	store := NewResolutionStore(&fakeResolutionSnapshot{}, zap.NewNop())
	resolvedAt := base.Add(time.Hour)
	store.Resolve(context.Background(), domain.Resolution{
		AlertID:    "ACCEPTED-job-1",
		Type:       domain.AlertTypeAccepted,
		JobID:      "job-1",
		ResolvedBy: "ops",
		ResolvedAt: resolvedAt,
		Resolution: "chased engineer",
	})

	raw := []domain.Alert{
		{ID: "ACCEPTED-job-1", Type: domain.AlertTypeAccepted, JobID: "job-1"},
		{ID: "OVERDUE-job-2", Type: domain.AlertTypeOverdue, JobID: "job-2"},
	}
	merged := store.Merge(raw)

	if !merged[0].Resolved {
		t.Fatal("stored resolution not merged into derived alert")
	}
	if merged[0].ResolvedBy != "ops" || merged[0].Resolution != "chased engineer" {
		t.Errorf("merged fields wrong: %+v", merged[0])
	}
	if merged[0].ResolvedAt == nil || !merged[0].ResolvedAt.Equal(resolvedAt) {
		t.Errorf("resolvedAt = %v, want %v", merged[0].ResolvedAt, resolvedAt)
	}
	if merged[1].Resolved {
		t.Error("unrelated alert must stay active")
	}
}

func TestResolutionSurvivesRegeneration(t *testing.T) {
	store := NewResolutionStore(&fakeResolutionSnapshot{}, zap.NewNop())
	resolvedAt := base.Add(time.Hour)
	store.Resolve(context.Background(), domain.Resolution{
		AlertID:    "ONSITE-job-1",
		Type:       domain.AlertTypeOnsite,
		JobID:      "job-1",
		ResolvedBy: "ops",
		ResolvedAt: resolvedAt,
	})

	// Simulate two consecutive regenerations, as happens after mutating an
	// unrelated job. The resolution must stick with the same timestamp.
	for pass := 0; pass < 2; pass++ {
		merged := store.Merge([]domain.Alert{{ID: "ONSITE-job-1", Type: domain.AlertTypeOnsite, JobID: "job-1"}})
		if !merged[0].Resolved {
			t.Fatalf("pass %d: resolution lost across regeneration", pass)
		}
		if !merged[0].ResolvedAt.Equal(resolvedAt) {
			t.Fatalf("pass %d: resolvedAt drifted to %v", pass, merged[0].ResolvedAt)
		}
	}
}

func TestResolveKeepsOriginalRecord(t *testing.T) {
	store := NewResolutionStore(&fakeResolutionSnapshot{}, zap.NewNop())
	first := domain.Resolution{AlertID: "OVERDUE-job-1", ResolvedBy: "ops", ResolvedAt: base}
	store.Resolve(context.Background(), first)
	store.Resolve(context.Background(), domain.Resolution{AlertID: "OVERDUE-job-1", ResolvedBy: "someone-else", ResolvedAt: base.Add(time.Hour)})

	rec, ok := store.Get("OVERDUE-job-1")
	if !ok {
		t.Fatal("record missing")
	}
	if rec.ResolvedBy != "ops" {
		t.Errorf("re-resolution overwrote original record: %+v", rec)
	}
}

func TestRecordsRetainedForLapsedAlerts(t *testing.T) {
	store := NewResolutionStore(&fakeResolutionSnapshot{}, zap.NewNop())
	store.Resolve(context.Background(), domain.Resolution{
		AlertID: "ENGINEER_ACCEPT-job-9", Type: domain.AlertTypeEngineerAccept, JobID: "job-9",
		ResolvedBy: "System", ResolvedAt: base,
	})

	// The alert no longer fires (empty raw list) but history keeps the record.
	if merged := store.Merge(nil); len(merged) != 0 {
		t.Fatalf("merge of empty raw list returned %d alerts", len(merged))
	}
	records := store.Records()
	if len(records) != 1 || records[0].AlertID != "ENGINEER_ACCEPT-job-9" {
		t.Fatalf("lapsed alert record not retained: %+v", records)
	}
}

func TestLoadRestoresSnapshot(t *testing.T) {
	snap := &fakeResolutionSnapshot{loads: []domain.Resolution{
		{AlertID: "ACCEPTED-job-3", ResolvedBy: "ops", ResolvedAt: base},
	}}
	store := NewResolutionStore(snap, zap.NewNop())
	store.Load(context.Background())

	if _, ok := store.Get("ACCEPTED-job-3"); !ok {
		t.Fatal("persisted record not restored on load")
	}
}

func TestResolvePersistsToSnapshot(t *testing.T) {
	snap := &fakeResolutionSnapshot{}
	store := NewResolutionStore(snap, zap.NewNop())
	store.Resolve(context.Background(), domain.Resolution{AlertID: "COMPLETED-job-4", ResolvedAt: base})

	if len(snap.saved) != 1 || snap.saved[0].AlertID != "COMPLETED-job-4" {
		t.Fatalf("resolution not persisted: %+v", snap.saved)
	}
}
