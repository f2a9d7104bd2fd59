package queue

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

const (
	DefaultQueue = "default"

	TypeOrderReceipt = "order:receipt"
)

type OrderReceiptPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

func NewOrderReceiptTask(payload OrderReceiptPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal receipt payload: %w", err)
	}

	return asynq.NewTask(TypeOrderReceipt, body), nil
}

func ParseOrderReceiptPayload(task *asynq.Task) (OrderReceiptPayload, error) {
	var payload OrderReceiptPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal receipt payload: %w", err)
	}

	if payload.OrderID == uuid.Nil {
		return payload, fmt.Errorf("receipt payload has no order id")
	}

	return payload, nil
}
