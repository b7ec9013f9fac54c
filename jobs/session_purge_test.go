package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"

	"github.com/arcadia-store/arcadia/internal/auth"
)

type purgeRepo struct {
	auth.Repository
	cutoff time.Time
	purged int64
}

func (r *purgeRepo) DeleteExpiredSessions(ctx context.Context, before time.Time) (int64, error) {
	r.cutoff = before
	return r.purged, nil
}

func TestSessionPurgeJob(t *testing.T) {
	t.Parallel()

	repo := &purgeRepo{purged: 3}
	job := NewSessionPurgeJob(repo, nil)

	task, err := NewSessionPurgeTask(24)
	if err != nil {
		t.Fatalf("NewSessionPurgeTask error: %v", err)
	}

	if err := job.Handle(context.Background(), task); err != nil {
		t.Fatalf("Handle error: %v", err)
	}

	wantCutoff := time.Now().Add(-24 * time.Hour)
	if diff := repo.cutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Fatalf("unexpected cutoff %v", repo.cutoff)
	}
}

func TestSessionPurgeJobSkipsBadPayload(t *testing.T) {
	t.Parallel()

	job := NewSessionPurgeJob(&purgeRepo{}, nil)
	task := asynq.NewTask(TaskSessionPurge, []byte("{not json"))

	if err := job.Handle(context.Background(), task); err == nil {
		t.Fatalf("expected skip-retry error for bad payload")
	}
}
