// Package job runs background work on an Asynq queue backed by Redis.
//
// The API enqueues tasks through the Client; the Server pulls them from Redis
// and dispatches them to the handlers registered in Start.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/lib/email"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger

	emailClient *email.Client
	notifyEmail string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Queue weights give critical tasks roughly six of every ten worker slots.
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
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// Start registers task handlers and starts the workers. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskContactCreated, j.handleContactCreatedTask)

	j.logger.Info().Msg("starting background job server")

	if err := j.server.Start(mux); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}
	return nil
}

// Stop waits for in-flight tasks, then closes the enqueue client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("failed to close job client")
	}
}

// EnqueueContactCreated queues the notification for a newly created contact.
func (j *JobService) EnqueueContactCreated(ctx context.Context, contact *model.Contact) error {
	task, err := NewContactCreatedTask(contact)
	if err != nil {
		return err
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue %s: %w", TaskContactCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("contact_id", contact.ID).
		Msg("enqueued contact created task")
	return nil
}
