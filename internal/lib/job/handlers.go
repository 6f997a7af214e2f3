package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/lib/email"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// InitHandlers builds the dependencies the task handlers use. It must run
// before Start.
func (j *JobService) InitHandlers(cfg *config.Config, logger *zerolog.Logger) {
	j.emailClient = email.NewClient(cfg, logger)
	j.notifyEmail = cfg.Integration.NotifyEmail
}

func (j *JobService) handleContactCreatedTask(ctx context.Context, t *asynq.Task) error {
	var p ContactCreatedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal contact created payload: %v: %w", err, asynq.SkipRetry)
	}

	log := j.logger.With().
		Str("type", TaskContactCreated).
		Str("contact_id", p.ContactID).
		Logger()

	if j.notifyEmail == "" {
		log.Debug().Msg("no notification address configured, skipping")
		return nil
	}

	log.Info().Str("to", j.notifyEmail).Msg("processing contact created task")

	if err := j.emailClient.SendContactCreatedEmail(j.notifyEmail, p.ContactID, p.Name, p.Email, p.Phone); err != nil {
		log.Error().Err(err).Msg("failed to send contact created email")
		if errors.Is(err, email.ErrNotConfigured) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	log.Info().Msg("sent contact created email")
	return nil
}
