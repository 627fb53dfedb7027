// Package events hands committed order status changes to other services.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleetdelivery/internal/core/domain/model/order"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// TaskStatusChanged is the asynq task type of StatusChangedPayload.
const TaskStatusChanged = "delivery_order:status_changed"

// DefaultQueue is the asynq queue status changes are enqueued on.
const DefaultQueue = "default"

// StatusChangedPayload is the task body consumers decode.
type StatusChangedPayload struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	From        string    `json:"from"`
	To          string    `json:"to"`
	Actor       string    `json:"actor"`
	At          time.Time `json:"at"`
}

// NewStatusChangedTask builds the task for one status change.
func NewStatusChangedTask(event order.StatusChanged) (*asynq.Task, error) {
	body, err := json.Marshal(StatusChangedPayload{
		OrderID:     event.OrderID.String(),
		OrderNumber: event.OrderNumber,
		From:        event.From.String(),
		To:          event.To.String(),
		Actor:       event.Actor.String(),
		At:          event.At.UTC(),
	})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatusChanged, body), nil
}

// Enqueuer is the part of *asynq.Client the publisher uses.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqEventPublisher implements ports.EventPublisher on an asynq queue.
type AsynqEventPublisher struct {
	client Enqueuer
	queue  string
	logger *zap.Logger
}

func NewAsynqEventPublisher(client Enqueuer, queue string, logger *zap.Logger) *AsynqEventPublisher {
	if queue == "" {
		queue = DefaultQueue
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AsynqEventPublisher{
		client: client,
		queue:  queue,
		logger: logger.With(zap.String("component", "event_publisher")),
	}
}

func (p *AsynqEventPublisher) Publish(ctx context.Context, event order.StatusChanged) error {
	task, err := NewStatusChangedTask(event)
	if err != nil {
		return fmt.Errorf("encode status change: %w", err)
	}
	info, err := p.client.EnqueueContext(ctx, task, asynq.Queue(p.queue), asynq.MaxRetry(5))
	if err != nil {
		return fmt.Errorf("enqueue status change: %w", err)
	}
	p.logger.Debug("status change enqueued",
		zap.String("task_id", info.ID),
		zap.String("order_number", event.OrderNumber),
		zap.String("to", event.To.String()),
	)
	return nil
}

// LogPublisher only logs status changes. It is used when no queue is
// configured.
type LogPublisher struct {
	logger *zap.Logger
}

func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogPublisher{logger: logger.With(zap.String("component", "event_publisher"))}
}

func (p *LogPublisher) Publish(_ context.Context, event order.StatusChanged) error {
	p.logger.Info("delivery order status changed",
		zap.String("order_id", event.OrderID.String()),
		zap.String("order_number", event.OrderNumber),
		zap.String("from", event.From.String()),
		zap.String("to", event.To.String()),
		zap.String("actor", event.Actor.String()),
		zap.Time("at", event.At),
	)
	return nil
}
