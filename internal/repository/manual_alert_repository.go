package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// ManualAlertRepository encapsulates storage of user-authored alerts.
// Unlike derived alerts these are stored directly and never regenerated.
type ManualAlertRepository interface {
	Create(ctx context.Context, alert *domain.ManualAlert) error
	GetByID(ctx context.Context, id string) (*domain.ManualAlert, error)
	List(ctx context.Context) ([]domain.ManualAlert, error)
	Resolve(ctx context.Context, id, resolvedBy, resolution string, resolvedAt time.Time) (*domain.ManualAlert, error)
}

type manualAlertRepository struct {
	pool *pgxpool.Pool
}

// NewManualAlertRepository instantiates the postgres-backed repository.
func NewManualAlertRepository(pool *pgxpool.Pool) ManualAlertRepository {
	return &manualAlertRepository{pool: pool}
}

func (r *manualAlertRepository) Create(ctx context.Context, alert *domain.ManualAlert) error {
	const query = `
        INSERT INTO manual_alerts (id, job_id, alert_type, message, severity, job_priority, job_status)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING created_at`
	return r.pool.QueryRow(ctx, query,
		alert.ID,
		alert.JobID,
		alert.Type,
		alert.Message,
		alert.Severity,
		alert.JobPriority,
		alert.JobStatus,
	).Scan(&alert.CreatedAt)
}

func (r *manualAlertRepository) GetByID(ctx context.Context, id string) (*domain.ManualAlert, error) {
	const query = `
        SELECT id, job_id, alert_type, message, severity, job_priority, job_status,
               created_at, resolved, resolved_by, resolved_at, resolution
        FROM manual_alerts WHERE id=$1`
	var alert domain.ManualAlert
	var resolvedBy, resolution *string
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&alert.ID,
		&alert.JobID,
		&alert.Type,
		&alert.Message,
		&alert.Severity,
		&alert.JobPriority,
		&alert.JobStatus,
		&alert.CreatedAt,
		&alert.Resolved,
		&resolvedBy,
		&alert.ResolvedAt,
		&resolution,
	); err != nil {
		return nil, err
	}
	if resolvedBy != nil {
		alert.ResolvedBy = *resolvedBy
	}
	if resolution != nil {
		alert.Resolution = *resolution
	}
	return &alert, nil
}

func (r *manualAlertRepository) List(ctx context.Context) ([]domain.ManualAlert, error) {
	const query = `
        SELECT id, job_id, alert_type, message, severity, job_priority, job_status,
               created_at, resolved, resolved_by, resolved_at, resolution
        FROM manual_alerts ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ManualAlert
	for rows.Next() {
		var alert domain.ManualAlert
		var resolvedBy, resolution *string
		if err := rows.Scan(
			&alert.ID,
			&alert.JobID,
			&alert.Type,
			&alert.Message,
			&alert.Severity,
			&alert.JobPriority,
			&alert.JobStatus,
			&alert.CreatedAt,
			&alert.Resolved,
			&resolvedBy,
			&alert.ResolvedAt,
			&resolution,
		); err != nil {
			return nil, err
		}
		if resolvedBy != nil {
			alert.ResolvedBy = *resolvedBy
		}
		if resolution != nil {
			alert.Resolution = *resolution
		}
		result = append(result, alert)
	}
	return result, rows.Err()
}

func (r *manualAlertRepository) Resolve(ctx context.Context, id, resolvedBy, resolution string, resolvedAt time.Time) (*domain.ManualAlert, error) {
	const query = `
        UPDATE manual_alerts
        SET resolved=TRUE, resolved_by=$1, resolved_at=$2, resolution=$3
        WHERE id=$4 AND resolved=FALSE`
	cmd, err := r.pool.Exec(ctx, query, resolvedBy, resolvedAt, resolution, id)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, id)
}
