package worker_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	appErrors "github.com/aaravmahajanofficial/minimal-ecommerce/internal/errors"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/queue"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/services/mocks"
	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/worker"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func receiptTask(t *testing.T, orderID uuid.UUID) *asynq.Task {
	t.Helper()

	task, err := queue.NewOrderReceiptTask(queue.OrderReceiptPayload{OrderID: orderID})
	require.NoError(t, err)

	return task
}

func TestConsumer_HandleOrderReceipt(t *testing.T) {
	orderID := uuid.New()

	t.Run("Success - Receipt sent", func(t *testing.T) {
		notifications := mocks.NewNotificationService(t)
		notifications.On("SendOrderReceipt", mock.Anything, orderID).Return(nil).Once()

		err := worker.NewConsumer(notifications).HandleOrderReceipt(context.Background(), receiptTask(t, orderID))

		assert.NoError(t, err)
	})

	t.Run("Failure - Provider error is retried", func(t *testing.T) {
		notifications := mocks.NewNotificationService(t)
		notifications.On("SendOrderReceipt", mock.Anything, orderID).
			Return(appErrors.ThirdPartyError("Failed to send order receipt")).Once()

		err := worker.NewConsumer(notifications).HandleOrderReceipt(context.Background(), receiptTask(t, orderID))

		require.Error(t, err)
		assert.False(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("Failure - Missing order is not retried", func(t *testing.T) {
		notifications := mocks.NewNotificationService(t)
		notifications.On("SendOrderReceipt", mock.Anything, orderID).
			Return(appErrors.NotFoundError("Order not found")).Once()

		err := worker.NewConsumer(notifications).HandleOrderReceipt(context.Background(), receiptTask(t, orderID))

		require.Error(t, err)
		assert.True(t, errors.Is(err, asynq.SkipRetry))
	})

	t.Run("Failure - Malformed payload is not retried", func(t *testing.T) {
		notifications := mocks.NewNotificationService(t)
		body, _ := json.Marshal(map[string]string{"order_id": "not-a-uuid"})

		err := worker.NewConsumer(notifications).HandleOrderReceipt(context.Background(), asynq.NewTask(queue.TypeOrderReceipt, body))

		require.Error(t, err)
		assert.True(t, errors.Is(err, asynq.SkipRetry))
		notifications.AssertNotCalled(t, "SendOrderReceipt", mock.Anything, mock.Anything)
	})
}

func TestConsumer_Register(t *testing.T) {
	mux := asynq.NewServeMux()
	worker.NewConsumer(mocks.NewNotificationService(t)).Register(mux)

	h, pattern := mux.Handler(asynq.NewTask(queue.TypeOrderReceipt, nil))

	assert.NotNil(t, h)
	assert.Equal(t, queue.TypeOrderReceipt, pattern)
}
