package service_test

import (
	"context"

	"github.com/aaravmahajanofficial/minimal-ecommerce/internal/repositories/mocks"
	"github.com/stretchr/testify/mock"
)

// runInline makes every WithinTransaction call on tx run fn directly.
func runInline(tx *mocks.Transactor) *mock.Call {
	return tx.On("WithinTransaction", mock.Anything, mock.Anything).
		Return(func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
}
