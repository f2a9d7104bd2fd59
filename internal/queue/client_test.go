package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/config"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.tasks = append(f.tasks, task)

	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

func TestClient_EnqueueOrderReceipt(t *testing.T) {
	orderID := uuid.New()

	t.Run("Success - Task carries the order id", func(t *testing.T) {
		fake := &fakeEnqueuer{}
		client := &Client{client: fake, enabled: true}

		err := client.EnqueueOrderReceipt(context.Background(), orderID)

		require.NoError(t, err)
		require.Len(t, fake.tasks, 1)
		assert.Equal(t, TypeOrderReceipt, fake.tasks[0].Type())

		payload, err := ParseOrderReceiptPayload(fake.tasks[0])
		require.NoError(t, err)
		assert.Equal(t, orderID, payload.OrderID)
	})

	t.Run("Success - Disabled client drops the job", func(t *testing.T) {
		client := NewClient(&config.Config{})

		assert.False(t, client.Enabled())
		assert.NoError(t, client.EnqueueOrderReceipt(context.Background(), orderID))
		assert.NoError(t, client.Close())
	})

	t.Run("Failure - Broker error", func(t *testing.T) {
		client := &Client{client: &fakeEnqueuer{err: errors.New("redis down")}, enabled: true}

		err := client.EnqueueOrderReceipt(context.Background(), orderID)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "redis down")
	})
}

func TestParseOrderReceiptPayload(t *testing.T) {
	t.Run("Malformed payload", func(t *testing.T) {
		_, err := ParseOrderReceiptPayload(asynq.NewTask(TypeOrderReceipt, []byte("{")))
		assert.Error(t, err)
	})

	t.Run("Missing order id", func(t *testing.T) {
		_, err := ParseOrderReceiptPayload(asynq.NewTask(TypeOrderReceipt, []byte(`{}`)))
		assert.Error(t, err)
	})
}

func TestServerConfig(t *testing.T) {
	cfg := ServerConfig(config.QueueConfig{Concurrency: 0}, nil)

	assert.Equal(t, 5, cfg.Concurrency)
	assert.Equal(t, map[string]int{DefaultQueue: 1}, cfg.Queues)

	opt := RedisOpt(config.RedisConnect{Host: "redis", Port: "6380", DB: 2})
	assert.Equal(t, "redis:6380", opt.Addr)
	assert.Equal(t, 2, opt.DB)
}
