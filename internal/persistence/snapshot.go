package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/fieldops-service/internal/domain"
)

// jobSchemaVersion is the current snapshot payload version. Older payloads
// are migrated in place on load; unknown future versions are rejected so the
// caller can fall back to regenerated seed data.
const jobSchemaVersion = 2

type jobSnapshot struct {
	SchemaVersion int          `json:"schema_version"`
	Jobs          []domain.Job `json:"jobs"`
}

type resolutionSnapshot struct {
	SchemaVersion int                 `json:"schema_version"`
	Resolutions   []domain.Resolution `json:"resolutions"`
}

// ErrSnapshotVersion signals a payload written by a newer build.
var ErrSnapshotVersion = errors.New("unsupported snapshot schema version")

// EncodeJobs serializes the job collection as a versioned envelope.
func EncodeJobs(jobs []domain.Job) ([]byte, error) {
	return json.Marshal(jobSnapshot{SchemaVersion: jobSchemaVersion, Jobs: jobs})
}

// DecodeJobs parses a snapshot payload, migrating older versions.
// Version 1 payloads predate per-job SLA configuration; their jobs receive
// the supplied defaults.
func DecodeJobs(data []byte, defaults domain.SLAConfig) ([]domain.Job, error) {
	var snap jobSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode job snapshot: %w", err)
	}
	switch snap.SchemaVersion {
	case jobSchemaVersion:
		return snap.Jobs, nil
	case 1:
		for i := range snap.Jobs {
			if snap.Jobs[i].SLA == (domain.SLAConfig{}) {
				snap.Jobs[i].SLA = defaults
			}
		}
		return snap.Jobs, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrSnapshotVersion, snap.SchemaVersion)
	}
}

// RedisJobSnapshot persists the full job collection as JSON under a single key.
type RedisJobSnapshot struct {
	redis    *Redis
	key      string
	defaults domain.SLAConfig
	logger   *zap.Logger
}

// NewRedisJobSnapshot constructs the snapshot store.
func NewRedisJobSnapshot(r *Redis, key string, defaults domain.SLAConfig, logger *zap.Logger) *RedisJobSnapshot {
	return &RedisJobSnapshot{redis: r, key: key, defaults: defaults, logger: logger}
}

// Load fetches and decodes the stored job collection. A missing key returns
// (nil, nil) so the caller can seed fresh data.
func (s *RedisJobSnapshot) Load(ctx context.Context) ([]domain.Job, error) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, nil
	}
	data, err := s.redis.Client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	jobs, err := DecodeJobs(data, s.defaults)
	if err != nil {
		s.logger.Warn("discarding unreadable job snapshot", zap.String("key", s.key), zap.Error(err))
		return nil, err
	}
	return jobs, nil
}

// Save writes the full job collection.
func (s *RedisJobSnapshot) Save(ctx context.Context, jobs []domain.Job) error {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	data, err := EncodeJobs(jobs)
	if err != nil {
		return err
	}
	return s.redis.Client.Set(ctx, s.key, data, 0).Err()
}

// RedisResolutionSnapshot persists alert resolution records under their own key.
type RedisResolutionSnapshot struct {
	redis  *Redis
	key    string
	logger *zap.Logger
}

// NewRedisResolutionSnapshot constructs the snapshot store.
func NewRedisResolutionSnapshot(r *Redis, key string, logger *zap.Logger) *RedisResolutionSnapshot {
	return &RedisResolutionSnapshot{redis: r, key: key, logger: logger}
}

// Load fetches stored resolution records. Unreadable payloads are dropped,
// not fatal: resolution history degrades, derivation does not.
func (s *RedisResolutionSnapshot) Load(ctx context.Context) ([]domain.Resolution, error) {
	if s.redis == nil || s.redis.Client == nil {
		return nil, nil
	}
	data, err := s.redis.Client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var snap resolutionSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("discarding unreadable resolution snapshot", zap.String("key", s.key), zap.Error(err))
		return nil, nil
	}
	return snap.Resolutions, nil
}

// Save writes all resolution records.
func (s *RedisResolutionSnapshot) Save(ctx context.Context, resolutions []domain.Resolution) error {
	if s.redis == nil || s.redis.Client == nil {
		return nil
	}
	data, err := json.Marshal(resolutionSnapshot{SchemaVersion: 1, Resolutions: resolutions})
	if err != nil {
		return err
	}
	return s.redis.Client.Set(ctx, s.key, data, 0).Err()
}
