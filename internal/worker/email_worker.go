package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pvmlabs/examgate-backend/internal/config"
	"github.com/pvmlabs/examgate-backend/internal/mailer"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	EmailPollTimeout = 1 * time.Second
	EmailSendTimeout = 30 * time.Second
	EmailMaxRetries  = 3
)

// EmailWorker drains the outbound email queue and delivers through the
// configured mailer. Delivery failures requeue the message up to
// EmailMaxRetries, so a transient SMTP outage does not drop mail.
type EmailWorker struct {
	rdb    *redis.Client
	mailer *mailer.Mailer
	log    zerolog.Logger
}

func NewEmailWorker(rdb *redis.Client, m *mailer.Mailer, log zerolog.Logger) *EmailWorker {
	return &EmailWorker{
		rdb:    rdb,
		mailer: m,
		log:    log.With().Str("component", "email_worker").Logger(),
	}
}

// queuedMessage wraps a mailer message with its retry count on the queue.
type queuedMessage struct {
	mailer.Message
	Attempts int `json:"attempts,omitempty"`
}

func (w *EmailWorker) Start(ctx context.Context) {
	if !w.mailer.Enabled() {
		w.log.Warn().Msg("EmailWorker idle: no SMTP host configured, queued mail will wait")
	}
	w.log.Info().Msg("EmailWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Shutdown requested. EmailWorker stopping...")
			return

		default:
			item, err := w.rdb.BLPop(ctx, EmailPollTimeout, config.WorkerKey.OutboundEmailQueue).Result()
			if err != nil {
				if err != redis.Nil && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}

			if len(item) < 2 {
				continue
			}

			var msg queuedMessage
			if err := json.Unmarshal([]byte(item[1]), &msg); err != nil {
				w.log.Error().Err(err).Msg("Invalid JSON payload, dropping")
				continue
			}

			if !w.mailer.Enabled() {
				// Leave the message on the queue for a configured deployment.
				w.requeue(ctx, msg)
				time.Sleep(EmailPollTimeout)
				continue
			}

			w.deliver(ctx, msg)
		}
	}
}

func (w *EmailWorker) deliver(ctx context.Context, msg queuedMessage) {
	sendCtx, cancel := context.WithTimeout(ctx, EmailSendTimeout)
	defer cancel()

	if err := w.mailer.Send(sendCtx, msg.Message); err != nil {
		msg.Attempts++
		if msg.Attempts >= EmailMaxRetries {
			w.log.Error().Err(err).
				Str("to", msg.To).
				Int("attempts", msg.Attempts).
				Msg("delivery failed, giving up")
			return
		}
		w.log.Warn().Err(err).
			Str("to", msg.To).
			Int("attempts", msg.Attempts).
			Msg("delivery failed, requeueing")
		w.requeue(ctx, msg)
		return
	}

	w.log.Info().Str("to", msg.To).Msg("email delivered")
}

func (w *EmailWorker) requeue(ctx context.Context, msg queuedMessage) {
	raw, err := json.Marshal(msg)
	if err != nil {
		return
	}
	// Use a fresh context so shutdown does not lose the message.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := w.rdb.RPush(ctx, config.WorkerKey.OutboundEmailQueue, raw).Err(); err != nil {
		w.log.Error().Err(err).Str("to", msg.To).Msg("requeue failed")
	}
}
