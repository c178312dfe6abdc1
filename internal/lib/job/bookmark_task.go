package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TaskBookmarkCreated = "bookmark:created"

// BookmarkCreatedPayload is stored in Redis as JSON.
type BookmarkCreatedPayload struct {
	To         string `json:"to"`
	BookmarkID string `json:"bookmark_id"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	Rating     int    `json:"rating"`
}

func NewBookmarkCreatedTask(p BookmarkCreatedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskBookmarkCreated,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("low"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueBookmarkCreated queues the notification for a newly created bookmark.
func (j *JobService) EnqueueBookmarkCreated(ctx context.Context, p BookmarkCreatedPayload) error {
	task, err := NewBookmarkCreatedTask(p)
	if err != nil {
		return fmt.Errorf("failed to build %s task: %w", TaskBookmarkCreated, err)
	}

	info, err := j.enqueue.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s task: %w", TaskBookmarkCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("bookmark_id", p.BookmarkID).
		Msg("enqueued bookmark notification")

	return nil
}
