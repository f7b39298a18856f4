//go:build integration

package publisher

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"

	"judicial_capture/internal/domain"
	"judicial_capture/testdata/utils"
)

type RabbitMQIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *rabbitmq.RabbitMQContainer
	amqpURL   string
	logger    *slog.Logger
}

func (s *RabbitMQIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()
	s.logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

	container, err := rabbitmq.Run(s.ctx,
		"rabbitmq:3.13-management-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Server startup complete").
				WithStartupTimeout(60*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	amqpURL, err := container.AmqpURL(s.ctx)
	s.Require().NoError(err)
	s.amqpURL = amqpURL
}

func (s *RabbitMQIntegrationSuite) TearDownSuite() {
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func TestRabbitMQIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RabbitMQIntegrationSuite))
}

func (s *RabbitMQIntegrationSuite) TestPublisher_Connection() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange",
		RoutingKey: "test-routing-key",
		QueueName:  "test-queue",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.NoError(err)
	s.NotNil(pub)

	err = pub.Close()
	s.NoError(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishCompletedRun() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-completed",
		RoutingKey: "test-routing-key-completed",
		QueueName:  "test-queue-completed",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	finished := time.Now().Truncate(time.Millisecond)
	run := &domain.CaptureRun{
		ID:           "6f1c7a5e-2f3b-4b7e-9a61-0c8d2f4e1a10",
		Type:         domain.CaptureGeneralDocket,
		Status:       domain.RunCompleted,
		CredentialID: "trt3-1g",
		AttorneyID:   12345,
		Tribunal:     "TRT3",
		Instance:     domain.InstanceTrial,
		FinishedAt:   &finished,
		Summary:      &domain.RunSummary{Inserted: 10, Discarded: 2, TotalProcessed: 12},
	}

	err = pub.PublishRun(s.ctx, run)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal("application/json", msg.ContentType)
	s.Equal(ActionCaptureCompleted, msg.Type)

	var received RunEvent
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(ActionCaptureCompleted, received.Action)
	s.Equal(run.ID, received.Run.ID)
	s.Equal(domain.CaptureGeneralDocket, received.Run.Type)
	s.Require().NotNil(received.Run.Summary)
	s.Equal(10, received.Run.Summary.Inserted)
	s.False(received.Timestamp.IsZero())
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishFailedRun() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-failed",
		RoutingKey: "test-routing-key-failed",
		QueueName:  "test-queue-failed",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	run := &domain.CaptureRun{
		ID:     "run-failed",
		Type:   domain.CaptureHearings,
		Status: domain.RunFailed,
		Error:  utils.Ptr("fetch page 2: unexpected status 500"),
	}

	err = pub.PublishRun(s.ctx, run)
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)

	var received RunEvent
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(ActionCaptureFailed, received.Action)
	s.Require().NotNil(received.Run.Error)
	s.Contains(*received.Run.Error, "500")
	s.Nil(received.Run.Summary)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_NonTerminalRunIsRejected() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-pending",
		RoutingKey: "test-routing-key-pending",
		QueueName:  "test-queue-pending",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.PublishRun(s.ctx, &domain.CaptureRun{ID: "run-pending", Status: domain.RunPending})
	s.Error(err)
}

func (s *RabbitMQIntegrationSuite) TestPublisher_PublishLink() {
	cfg := Config{
		URL:        s.amqpURL,
		Exchange:   "test-exchange-link",
		RoutingKey: "test-routing-key-link",
		QueueName:  "test-queue-link",
	}

	pub, err := NewRabbitMQ(cfg, s.logger)
	s.Require().NoError(err)
	defer pub.Close()

	err = pub.PublishLink(s.ctx, domain.Link{CommunicationID: 7, ExpedienteID: 70, Hash: "abc123"})
	s.NoError(err)

	msg := s.consumeMessage(cfg)
	s.Require().NotNil(msg)
	s.Equal(uint8(amqp.Persistent), msg.DeliveryMode)
	s.Equal(ActionLinked, msg.Type)

	var received LinkEvent
	err = json.Unmarshal(msg.Body, &received)
	s.NoError(err)
	s.Equal(int64(7), received.CommunicationID)
	s.Equal(int64(70), received.ExpedienteID)
	s.Equal("abc123", received.Hash)
}

func (s *RabbitMQIntegrationSuite) consumeMessage(cfg Config) *amqp.Delivery {
	conn, err := amqp.Dial(s.amqpURL)
	s.Require().NoError(err)
	defer conn.Close()

	ch, err := conn.Channel()
	s.Require().NoError(err)
	defer ch.Close()

	msgs, err := ch.Consume(cfg.QueueName, "", true, false, false, false, nil)
	s.Require().NoError(err)

	select {
	case msg := <-msgs:
		return &msg
	case <-time.After(5 * time.Second):
		s.Fail("Timeout waiting for message")
		return nil
	}
}
