package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/arcadia-store/arcadia/internal/auth"
)

// SessionPurgeJob removes session audit rows whose refresh tokens can
// no longer be used.
type SessionPurgeJob struct {
	repo   auth.Repository
	logger *slog.Logger
}

// NewSessionPurgeJob constructs the job.
func NewSessionPurgeJob(repo auth.Repository, logger *slog.Logger) *SessionPurgeJob {
	return &SessionPurgeJob{repo: repo, logger: logger}
}

// Handle processes TaskSessionPurge tasks.
func (j *SessionPurgeJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SessionPurgePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	cutoff := time.Now().Add(-time.Duration(payload.GraceHours) * time.Hour)
	purged, err := j.repo.DeleteExpiredSessions(ctx, cutoff)
	if err != nil {
		return err
	}
	if j.logger != nil {
		j.logger.Info("session purge complete",
			slog.Int64("purged", purged),
			slog.Time("cutoff", cutoff))
	}
	return nil
}
