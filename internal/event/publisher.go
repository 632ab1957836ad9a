package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Event types, also used as routing keys
const (
	TypeReviewDue         = "review.due"
	TypeAnalysisCompleted = "analysis.completed"
)

// Event is the envelope of every published message
type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// ReviewDue announces that a user has review items waiting
type ReviewDue struct {
	UserID   string `json:"user_id"`
	DueCount int    `json:"due_count"`
}

// AnalysisCompleted announces a finished exam analysis
type AnalysisCompleted struct {
	Name           string   `json:"name"`
	TotalQuestions int      `json:"total_questions"`
	Net            float64  `json:"net"`
	WeakTopics     []string `json:"weak_topics"`
}

// Channel is the part of an AMQP channel the publisher uses
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher publishes events to a topic exchange
type Publisher struct {
	conn     *amqp.Connection
	channel  Channel
	exchange string
	logger   *slog.Logger
	now      func() time.Time
}

// NewPublisher connects to the broker and declares a durable topic exchange
func NewPublisher(amqpURL, exchange string, logger *slog.Logger) (*Publisher, error) {
	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	err = ch.ExchangeDeclare(
		exchange,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	p := NewChannelPublisher(ch, exchange, logger)
	p.conn = conn
	return p, nil
}

// NewChannelPublisher publishes on an already opened channel
func NewChannelPublisher(ch Channel, exchange string, logger *slog.Logger) *Publisher {
	return &Publisher{
		channel:  ch,
		exchange: exchange,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Encode builds the JSON body of an event
func Encode(eventType string, payload interface{}, at time.Time) ([]byte, error) {
	return json.Marshal(Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: at,
		Payload:    payload,
	})
}

// Publish sends an event using its type as the routing key
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	body, err := Encode(eventType, payload, p.now())
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", eventType, err)
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,
		eventType, // routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", eventType, err)
	}

	p.logger.Debug("published event", "type", eventType, "exchange", p.exchange)
	return nil
}

// NotifyDue publishes a review.due event
func (p *Publisher) NotifyDue(ctx context.Context, userID string, due int) error {
	return p.Publish(ctx, TypeReviewDue, ReviewDue{UserID: userID, DueCount: due})
}

// Close closes the channel and connection
func (p *Publisher) Close() {
	if p.channel != nil {
		_ = p.channel.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
