// Package events publishes booking domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/metinatakli/popcorn-palace/internal/domain"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

// Publisher marshals domain events to JSON and hands them to a watermill
// publisher, using the event's topic.
type Publisher struct {
	pub    message.Publisher
	prefix string
}

func NewPublisher(pub message.Publisher, topicPrefix string) *Publisher {
	return &Publisher{
		pub:    pub,
		prefix: topicPrefix,
	}
}

// NewRedisPublisher publishes to Redis streams named after each event topic.
func NewRedisPublisher(client redis.UniversalClient, topicPrefix string, logger *slog.Logger) (*Publisher, error) {
	pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
		Client: client,
	}, NewWatermillLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create redis stream publisher: %w", err)
	}

	return NewPublisher(tracingDecorator{Publisher: pub}, topicPrefix), nil
}

func (p *Publisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", event.Topic(), err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("type", fmt.Sprintf("%T", event))

	return p.pub.Publish(p.topic(event), msg)
}

func (p *Publisher) topic(event domain.Event) string {
	if p.prefix == "" {
		return event.Topic()
	}

	return p.prefix + "." + event.Topic()
}

func (p *Publisher) Close() error {
	return p.pub.Close()
}

// tracingDecorator carries the active trace context in message metadata.
type tracingDecorator struct {
	message.Publisher
}

func (d tracingDecorator) Publish(topic string, messages ...*message.Message) error {
	for i := range messages {
		otel.GetTextMapPropagator().Inject(messages[i].Context(), propagation.MapCarrier(messages[i].Metadata))
	}

	return d.Publisher.Publish(topic, messages...)
}

// NopPublisher drops every event. It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, domain.Event) error {
	return nil
}
