package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
)

// TypeDomainEvent is the asynq task type carrying domain event envelopes.
const TypeDomainEvent = "heimdall:domain_event"

type eventPayload struct {
	EventID    string            `json:"event_id"`
	EventType  string            `json:"event_type"`
	OccurredAt time.Time         `json:"occurred_at"`
	Data       map[string]string `json:"data"`
}

// AsynqEventBus publishes domain events as asynq tasks so read-model and
// notification consumers can process them off the request path.
type AsynqEventBus struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewAsynqEventBus(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *AsynqEventBus {
	return &AsynqEventBus{client: asynq.NewClient(redisOpt), log: log}
}

func (b *AsynqEventBus) Close() error {
	return b.client.Close()
}

func (b *AsynqEventBus) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(eventPayload{
		EventID:    event.ID,
		EventType:  event.Type,
		OccurredAt: event.OccurredAt,
		Data:       event.Data,
	})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeDomainEvent, payload)
	if _, err := b.client.EnqueueContext(ctx, task); err != nil {
		b.log.Warn().Err(err).Str("event_type", event.Type).Msg("enqueue domain event failed")
		return err
	}
	return nil
}

var _ ports.EventBus = (*AsynqEventBus)(nil)
