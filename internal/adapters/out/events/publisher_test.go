package events_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"fleetdelivery/internal/adapters/out/events"
	"fleetdelivery/internal/core/domain/model/kernel"
	"fleetdelivery/internal/core/domain/model/order"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type MockEnqueuer struct {
	mock.Mock
}

func (m *MockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	if info := args.Get(0); info != nil {
		return info.(*asynq.TaskInfo), args.Error(1)
	}
	return nil, args.Error(1)
}

func statusChanged() order.StatusChanged {
	return order.StatusChanged{
		OrderID:     kernel.NewUUID(),
		OrderNumber: "SM250314JK0001",
		From:        order.StatusAssigned,
		To:          order.StatusInProgress,
		Actor:       kernel.NewUUID(),
		At:          time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestAsynqEventPublisher_Publish(t *testing.T) {
	t.Run("should enqueue the encoded status change", func(t *testing.T) {
		event := statusChanged()
		client := &MockEnqueuer{}
		var captured *asynq.Task
		client.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { captured = args.Get(1).(*asynq.Task) }).
			Return(&asynq.TaskInfo{ID: "task-1"}, nil).Once()

		err := events.NewAsynqEventPublisher(client, "", nil).Publish(t.Context(), event)

		require.NoError(t, err)
		require.NotNil(t, captured)
		assert.Equal(t, events.TaskStatusChanged, captured.Type())
		var payload events.StatusChangedPayload
		require.NoError(t, json.Unmarshal(captured.Payload(), &payload))
		assert.Equal(t, event.OrderID.String(), payload.OrderID)
		assert.Equal(t, "SM250314JK0001", payload.OrderNumber)
		assert.Equal(t, "assigned", payload.From)
		assert.Equal(t, "in_progress", payload.To)
		assert.True(t, payload.At.Equal(event.At))
		client.AssertExpectations(t)
	})

	t.Run("should return enqueue failures", func(t *testing.T) {
		client := &MockEnqueuer{}
		client.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("redis down")).Once()

		err := events.NewAsynqEventPublisher(client, "events", nil).Publish(t.Context(), statusChanged())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
	})
}

func TestLogPublisher_Publish(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	err := events.NewLogPublisher(zap.New(core)).Publish(t.Context(), statusChanged())

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "delivery order status changed", entry.Message)
	assert.Equal(t, "in_progress", entry.ContextMap()["to"])
}
