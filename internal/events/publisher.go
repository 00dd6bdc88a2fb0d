// Package events publishes alert events onto a message topic so that
// systems downstream of the transmission site (dashboards, duty rosters)
// can react without polling the record store.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
)

// Alert is the wire form of one raised alert.
type Alert struct {
	Kind     string    `json:"kind"` // "pre_reading" or "missing_data"
	Slot     string    `json:"slot"`
	Date     string    `json:"date"`
	Message  string    `json:"message"`
	RaisedAt time.Time `json:"raised_at"`
}

// Publisher writes alert events to a Kafka topic. A nil Publisher is
// valid and drops every event, so callers need no broker in dev.
type Publisher struct {
	writer *kafka.Writer
	logger *logrus.Logger
}

func NewPublisher(broker, topic string, logger *logrus.Logger) *Publisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(broker),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: w, logger: logger}
}

// Publish sends one alert event. Marshal failures and broker errors are
// returned to the caller, which logs and moves on; alert delivery to
// operators never depends on the event stream.
func (p *Publisher) Publish(ctx context.Context, alert Alert) error {
	if p == nil {
		return nil
	}
	value, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("marshal alert event: %w", err)
	}
	msg := kafka.Message{
		Key:   []byte(alert.Kind),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish alert event: %w", err)
	}
	p.logger.Debugf("published %s alert event for slot %s", alert.Kind, alert.Slot)
	return nil
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}
