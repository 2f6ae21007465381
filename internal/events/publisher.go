package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/todoflow-labs/fragment-service/internal/dto"
	"github.com/todoflow-labs/fragment-service/internal/logging"
	"github.com/todoflow-labs/fragment-service/internal/metrics"
)

// Publisher hands task events to the event bus.
type Publisher interface {
	Publish(ctx context.Context, evt dto.TaskEvent) error
}

// Nop drops every event. Used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, dto.TaskEvent) error { return nil }

type JetStreamPublisher struct {
	js      nats.JetStreamContext
	subject string
	logger  *logging.Logger
}

// NewJetStreamPublisher ensures the stream exists and returns a publisher for subject.
func NewJetStreamPublisher(js nats.JetStreamContext, stream, subject string, logger *logging.Logger) (*JetStreamPublisher, error) {
	_, err := js.AddStream(&nats.StreamConfig{
		Name:     stream,
		Subjects: []string{subject},
	})
	if err != nil && !errors.Is(err, nats.ErrStreamNameAlreadyInUse) {
		return nil, fmt.Errorf("create stream %s: %w", stream, err)
	}
	return &JetStreamPublisher{js: js, subject: subject, logger: logger}, nil
}

func (p *JetStreamPublisher) Publish(ctx context.Context, evt dto.TaskEvent) error {
	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}
	data, err := json.Marshal(evt)
	if err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("marshal %s event: %w", evt.Type, err)
	}

	if _, err := p.js.Publish(p.subject, data, nats.Context(ctx)); err != nil {
		metrics.EventsPublished.WithLabelValues("error").Inc()
		return fmt.Errorf("publish %s event: %w", evt.Type, err)
	}

	p.logger.Debug().Str("type", string(evt.Type)).Str("task_id", evt.TaskID).Msg("task event published")
	metrics.EventsPublished.WithLabelValues("success").Inc()
	return nil
}
