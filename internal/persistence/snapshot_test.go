package persistence

import (
	"errors"
	"testing"
	"time"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

var testDefaults = domain.SLAConfig{AcceptMinutes: 30, OnsiteMinutes: 120, CompletedMinutes: 480}

func TestJobSnapshotRoundTrip(t *testing.T) {
	accepted := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	jobs := []domain.Job{
		{
			ID:           "job-1",
			JobNumber:    "C0012345",
			Status:       domain.JobStatusAllocated,
			Priority:     domain.JobPriorityHigh,
			DateLogged:   time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
			DateAccepted: &accepted,
			SLA:          domain.SLAConfig{AcceptMinutes: 15, OnsiteMinutes: 60, CompletedMinutes: 240},
			Customer:     "Northfield Retail",
			Site:         "Leeds Central",
			Engineer:     "Dave Thompson",
		},
	}

	data, err := EncodeJobs(jobs)
	if err != nil {
		t.Fatalf("EncodeJobs: %v", err)
	}
	decoded, err := DecodeJobs(data, testDefaults)
	if err != nil {
		t.Fatalf("DecodeJobs: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded %d jobs, want 1", len(decoded))
	}
	got := decoded[0]
	if got.ID != "job-1" || got.JobNumber != "C0012345" {
		t.Errorf("identity not preserved: %+v", got)
	}
	if got.SLA.AcceptMinutes != 15 {
		t.Errorf("per-job SLA not preserved: %+v", got.SLA)
	}
	if got.DateAccepted == nil || !got.DateAccepted.Equal(accepted) {
		t.Errorf("dateAccepted not preserved: %v", got.DateAccepted)
	}
}

func TestDecodeJobsMigratesVersionOne(t *testing.T) {
	payload := []byte(`{"schema_version":1,"jobs":[` +
		`{"id":"job-1","jobNumber":"C0000001","status":"new","priority":"Medium","dateLogged":"2026-03-01T09:00:00Z"},` +
		`{"id":"job-2","jobNumber":"C0000002","status":"new","priority":"Medium","dateLogged":"2026-03-01T09:00:00Z","customAlerts":{"acceptSLA":10,"onsiteSLA":20,"completedSLA":30}}` +
		`]}`)

	jobs, err := DecodeJobs(payload, testDefaults)
	if err != nil {
		t.Fatalf("DecodeJobs: %v", err)
	}
	if jobs[0].SLA != testDefaults {
		t.Errorf("v1 job without SLA should receive defaults, got %+v", jobs[0].SLA)
	}
	want := domain.SLAConfig{AcceptMinutes: 10, OnsiteMinutes: 20, CompletedMinutes: 30}
	if jobs[1].SLA != want {
		t.Errorf("v1 job with explicit SLA overwritten, got %+v", jobs[1].SLA)
	}
}

func TestDecodeJobsRejectsFutureVersion(t *testing.T) {
	_, err := DecodeJobs([]byte(`{"schema_version":99,"jobs":[]}`), testDefaults)
	if !errors.Is(err, ErrSnapshotVersion) {
		t.Fatalf("err = %v, want ErrSnapshotVersion", err)
	}
}

func TestDecodeJobsMalformedPayload(t *testing.T) {
	if _, err := DecodeJobs([]byte(`{"schema_version":`), testDefaults); err == nil {
		t.Fatal("malformed payload decoded without error")
	}
}
