// Package events publishes order events to Kafka.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/irsalhamdi/e-commerce-shop/core/order"
	"github.com/segmentio/kafka-go"
)

const OrderCreated = "order.created"

// Event is the envelope written as the message value.
type Event struct {
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurredAt"`
	Order      order.Summary `json:"order"`
}

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	w writer
}

// Brokers splits a comma separated broker list, dropping blanks.
func Brokers(csv string) []string {
	var brokers []string
	for _, b := range strings.Split(csv, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		w: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		},
	}
}

func message(s order.Summary, now time.Time) (kafka.Message, error) {
	data, err := json.Marshal(Event{
		Type:       OrderCreated,
		OccurredAt: now,
		Order:      s,
	})
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encoding order[%s] event: %w", s.OrderID, err)
	}

	return kafka.Message{
		Key:   []byte(s.OrderID),
		Value: data,
		Time:  now,
	}, nil
}

// Notify publishes an order.created event keyed by order id, so every event
// of one order lands on the same partition.
func (p *Publisher) Notify(ctx context.Context, s order.Summary) error {
	msg, err := message(s, time.Now().UTC())
	if err != nil {
		return err
	}

	if err := p.w.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publishing order[%s] event: %w", s.OrderID, err)
	}
	return nil
}

func (p *Publisher) Close() error {
	return p.w.Close()
}
