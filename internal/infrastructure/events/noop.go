package events

import (
	"context"

	"github.com/fandangolas/heimdall/internal/application/ports"
	"github.com/fandangolas/heimdall/internal/domain"
)

// NoopEventBus drops events when Redis/Asynq is not configured.
type NoopEventBus struct{}

func NewNoopEventBus() *NoopEventBus {
	return &NoopEventBus{}
}

func (b *NoopEventBus) Publish(ctx context.Context, event domain.Event) error {
	return nil
}

var _ ports.EventBus = (*NoopEventBus)(nil)
