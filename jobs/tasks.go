package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskSessionPurge is the task type for purging expired session
	// audit rows.
	TaskSessionPurge = "auth:session_purge"
)

// SessionPurgePayload configures a purge run.
type SessionPurgePayload struct {
	// GraceHours keeps rows around past expiry for investigation.
	GraceHours int `json:"grace_hours"`
}

// NewSessionPurgeTask constructs an Asynq task.
func NewSessionPurgeTask(graceHours int) (*asynq.Task, error) {
	data, err := json.Marshal(SessionPurgePayload{GraceHours: graceHours})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSessionPurge, data), nil
}
