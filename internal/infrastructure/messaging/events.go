// Package messaging publishes floor events for other systems such as a
// kitchen display or an accounting bridge.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sangkips/gestor-mesas/internal/config"
)

// Routing keys of the published events
const (
	EventTableInvoiced = "table.invoiced"
	EventTableReopened = "table.reopened"
	EventOrderAdded    = "order.added"
)

// Event is the envelope of every published message
type Event struct {
	Type       string      `json:"type"`
	TableID    string      `json:"table_id"`
	TableName  string      `json:"table_name"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload,omitempty"`
}

// EventPublisher delivers floor events. Delivery is best effort: callers log
// failures and carry on.
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// NewPublisherFromConfig returns the publisher selected by cfg.Driver
func NewPublisherFromConfig(cfg *config.EventsConfig) (EventPublisher, error) {
	switch cfg.Driver {
	case "rabbitmq":
		p, err := DialRabbitMQ(cfg.URL, cfg.Exchange)
		if err != nil {
			return nil, err
		}
		return p, nil
	case "none", "":
		return NewLogPublisher(), nil
	default:
		return nil, fmt.Errorf("events: unknown driver %q (use rabbitmq or none)", cfg.Driver)
	}
}

type logPublisher struct{}

// NewLogPublisher writes events to the standard logger only
func NewLogPublisher() EventPublisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, e Event) error {
	log.Printf("Event %s table=%s (%s)", e.Type, e.TableID, e.TableName)
	return nil
}

func (logPublisher) Close() error {
	return nil
}

// RecordingPublisher keeps published events in memory
type RecordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (p *RecordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *RecordingPublisher) Close() error {
	return nil
}

// Events returns a copy of everything published so far
func (p *RecordingPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Event(nil), p.events...)
}

// Types returns the event types published so far, in order
func (p *RecordingPublisher) Types() []string {
	events := p.Events()
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.Type
	}
	return out
}

func encode(e Event) ([]byte, error) {
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now()
	}
	return json.Marshal(e)
}
