// Package kafka publishes shipment status changes to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"github.com/rs/zerolog"
	skafka "github.com/segmentio/kafka-go"
)

// Writer is the part of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// StatusChangedMessage is the JSON payload of one status change.
type StatusChangedMessage struct {
	ShipmentID string    `json:"shipment_id"`
	Code       string    `json:"code"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	CarrierID  *string   `json:"carrier_id,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher writes one message per event, keyed by shipment id so that all changes of a
// shipment land on the same partition in order.
type Publisher struct {
	writer Writer
	log    zerolog.Logger
}

var _ ports.EventPublisher = (*Publisher)(nil)

// NewPublisher connects to the broker lazily on first write.
func NewPublisher(brokerURL, topic string, log zerolog.Logger) *Publisher {
	w := &skafka.Writer{
		Addr:                   skafka.TCP(brokerURL),
		Topic:                  topic,
		Balancer:               &skafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return NewPublisherWithWriter(w, log)
}

func NewPublisherWithWriter(w Writer, log zerolog.Logger) *Publisher {
	return &Publisher{writer: w, log: log}
}

func (p *Publisher) Publish(ctx context.Context, events ...shipment.StatusChanged) error {
	if len(events) == 0 {
		return nil
	}

	msgs := make([]skafka.Message, 0, len(events))
	for _, ev := range events {
		value, err := json.Marshal(newStatusChangedMessage(ev))
		if err != nil {
			return fmt.Errorf("marshal status change: %w", err)
		}
		msgs = append(msgs, skafka.Message{
			Key:   []byte(ev.ShipmentID.String()),
			Value: value,
			Time:  ev.OccurredAt,
		})
	}

	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		return fmt.Errorf("write %d status changes: %w", len(msgs), err)
	}

	p.log.Debug().Int("count", len(msgs)).Msg("status changes published")
	return nil
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func newStatusChangedMessage(ev shipment.StatusChanged) StatusChangedMessage {
	msg := StatusChangedMessage{
		ShipmentID: ev.ShipmentID.String(),
		Code:       ev.Code.String(),
		From:       ev.From.String(),
		To:         ev.To.String(),
		Reason:     ev.Reason,
		OccurredAt: ev.OccurredAt.UTC(),
	}
	if ev.CarrierID != nil {
		id := ev.CarrierID.String()
		msg.CarrierID = &id
	}
	return msg
}

// NopPublisher discards events. It is used when no broker is configured.
type NopPublisher struct{}

var _ ports.EventPublisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, ...shipment.StatusChanged) error {
	return nil
}

func (NopPublisher) Close() error {
	return nil
}
