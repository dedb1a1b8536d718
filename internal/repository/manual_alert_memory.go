package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// memoryManualAlertRepository backs manual alerts with process memory when no
// database is configured.
type memoryManualAlertRepository struct {
	mu     sync.RWMutex
	alerts map[string]domain.ManualAlert
}

// NewMemoryManualAlertRepository instantiates the in-memory repository.
func NewMemoryManualAlertRepository() ManualAlertRepository {
	return &memoryManualAlertRepository{alerts: make(map[string]domain.ManualAlert)}
}

func (r *memoryManualAlertRepository) Create(ctx context.Context, alert *domain.ManualAlert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if alert.CreatedAt.IsZero() {
		alert.CreatedAt = time.Now()
	}
	r.alerts[alert.ID] = *alert
	return nil
}

func (r *memoryManualAlertRepository) GetByID(ctx context.Context, id string) (*domain.ManualAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	alert, ok := r.alerts[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &alert, nil
}

func (r *memoryManualAlertRepository) List(ctx context.Context) ([]domain.ManualAlert, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]domain.ManualAlert, 0, len(r.alerts))
	for _, alert := range r.alerts {
		result = append(result, alert)
	}
	sort.SliceStable(result, func(a, b int) bool {
		return result[a].CreatedAt.After(result[b].CreatedAt)
	})
	return result, nil
}

func (r *memoryManualAlertRepository) Resolve(ctx context.Context, id, resolvedBy, resolution string, resolvedAt time.Time) (*domain.ManualAlert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	alert, ok := r.alerts[id]
	if !ok || alert.Resolved {
		return nil, pgx.ErrNoRows
	}
	alert.Resolved = true
	alert.ResolvedBy = resolvedBy
	alert.ResolvedAt = &resolvedAt
	alert.Resolution = resolution
	r.alerts[id] = alert
	return &alert, nil
}
