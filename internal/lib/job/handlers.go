package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/deppfellow/bookmarks-api/internal/lib/email"
	"github.com/hibiken/asynq"
)

func (j *JobService) handleBookmarkCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p BookmarkCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Retrying cannot fix a malformed payload.
		return fmt.Errorf("failed to unmarshal bookmark created payload: %v: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskBookmarkCreated).
		Str("to", p.To).
		Str("bookmark_id", p.BookmarkID).
		Logger()

	logger.Info().Msg("processing bookmark notification")

	err := j.mailer.SendBookmarkCreatedEmail(p.To, email.BookmarkCreated{
		ID:     p.BookmarkID,
		Title:  p.Title,
		URL:    p.URL,
		Rating: p.Rating,
	})
	if err != nil {
		logger.Error().Err(err).Msg("failed to send bookmark notification")
		return err
	}

	logger.Info().Msg("sent bookmark notification")
	return nil
}
