// Package job runs background work on Asynq, a Redis-backed task queue.
//
// The API enqueues tasks through Client; the worker server started by
// Start consumes them.
package job

import (
	"context"

	"github.com/deppfellow/bookmarks-api/internal/config"
	"github.com/deppfellow/bookmarks-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Mailer sends the emails produced by task handlers.
type Mailer interface {
	SendBookmarkCreatedEmail(to string, b email.BookmarkCreated) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
	mailer Mailer

	// enqueue is Client unless replaced in tests.
	enqueue enqueuer
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	client := asynq.NewClient(redisOpt)

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.InfoLevel,
		},
	)

	return &JobService{
		Client:  client,
		server:  server,
		logger:  logger,
		mailer:  email.NewClient(cfg, logger),
		enqueue: client,
	}
}

// Mux routes task types to their handlers.
func (j *JobService) Mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookmarkCreated, j.handleBookmarkCreatedTask)
	return mux
}

// Start launches the worker goroutines and returns once they are running.
func (j *JobService) Start() error {
	j.logger.Info().Msg("starting background job server")
	return j.server.Start(j.Mux())
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}
