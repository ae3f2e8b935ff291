package repository

import (
	"context"

	"github.com/google/uuid"
)

// PurgeTask is the message describing a pending account purge. The
// orchestrator's steps are idempotent, so the same task may be
// delivered and processed more than once.
type PurgeTask struct {
	AccountID  uuid.UUID `json:"account_id"`
	RetryCount int       `json:"retry_count"`
}

// MessageQueue defines the interface for publishing and consuming
// account purge tasks.
type MessageQueue interface {
	// PublishPurgeTask enqueues an account purge.
	PublishPurgeTask(ctx context.Context, task PurgeTask) error

	// ConsumePurgeTasks starts consuming purge tasks from the queue.
	// The handler is called for each received task; a handler error
	// triggers a retry-count republish.
	// Returns when context is cancelled or the channel is closed.
	ConsumePurgeTasks(ctx context.Context, handler func(task PurgeTask) error) error

	// Close gracefully shuts down the queue connection.
	Close() error
}
