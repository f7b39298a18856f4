package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"judicial_capture/internal/domain"
)

type RabbitMQ struct {
	conn       *amqp.Connection
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     *slog.Logger
}

type Config struct {
	URL        string
	Exchange   string
	RoutingKey string
	QueueName  string
}

func NewRabbitMQ(cfg Config, logger *slog.Logger) (*RabbitMQ, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	q, err := ch.QueueDeclare(
		cfg.QueueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue: %w", err)
	}

	err = ch.QueueBind(
		q.Name,
		cfg.RoutingKey,
		cfg.Exchange,
		false,
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("bind queue: %w", err)
	}

	logger.Info("connected to rabbitmq",
		"exchange", cfg.Exchange,
		"queue", cfg.QueueName,
		"routing_key", cfg.RoutingKey,
	)

	return &RabbitMQ{
		conn:       conn,
		channel:    ch,
		exchange:   cfg.Exchange,
		routingKey: cfg.RoutingKey,
		logger:     logger.With("component", "publisher"),
	}, nil
}

const (
	ActionCaptureCompleted = "capture.completed"
	ActionCaptureFailed    = "capture.failed"
	ActionLinked           = "communication.linked"
)

type RunEvent struct {
	Action    string            `json:"action"`
	Run       domain.CaptureRun `json:"run"`
	Timestamp time.Time         `json:"timestamp"`
}

type LinkEvent struct {
	Action          string    `json:"action"`
	CommunicationID int64     `json:"communication_id"`
	ExpedienteID    int64     `json:"expediente_id"`
	Hash            string    `json:"hash"`
	Timestamp       time.Time `json:"timestamp"`
}

func newRunEvent(run *domain.CaptureRun, now time.Time) (RunEvent, error) {
	var action string
	switch run.Status {
	case domain.RunCompleted:
		action = ActionCaptureCompleted
	case domain.RunFailed:
		action = ActionCaptureFailed
	default:
		return RunEvent{}, fmt.Errorf("run %s is not terminal: %s", run.ID, run.Status)
	}
	return RunEvent{Action: action, Run: *run, Timestamp: now.UTC()}, nil
}

func newLinkEvent(link domain.Link, now time.Time) LinkEvent {
	return LinkEvent{
		Action:          ActionLinked,
		CommunicationID: link.CommunicationID,
		ExpedienteID:    link.ExpedienteID,
		Hash:            link.Hash,
		Timestamp:       now.UTC(),
	}
}

// PublishRun announces a run that reached a terminal state.
func (r *RabbitMQ) PublishRun(ctx context.Context, run *domain.CaptureRun) error {
	event, err := newRunEvent(run, time.Now())
	if err != nil {
		return err
	}
	if err := r.publish(ctx, event.Action, event); err != nil {
		return err
	}

	r.logger.Debug("published run event",
		"run_id", run.ID,
		"action", event.Action,
	)
	return nil
}

func (r *RabbitMQ) PublishLink(ctx context.Context, link domain.Link) error {
	event := newLinkEvent(link, time.Now())
	if err := r.publish(ctx, event.Action, event); err != nil {
		return err
	}

	r.logger.Debug("published link event",
		"communication_id", link.CommunicationID,
		"expediente_id", link.ExpedienteID,
	)
	return nil
}

func (r *RabbitMQ) publish(ctx context.Context, action string, event any) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		r.exchange,
		r.routingKey,
		false,
		false,
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Type:         action,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}
	return nil
}

func (r *RabbitMQ) Close() error {
	if r.channel != nil {
		r.channel.Close()
	}
	if r.conn != nil {
		return r.conn.Close()
	}
	return nil
}
