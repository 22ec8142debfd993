package mocks

import (
	"context"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockCartStore struct {
	mock.Mock
	domain.CartStore
}

func (m *MockCartStore) Empty(ctx context.Context, sessionID string) error {
	args := m.Called(ctx, sessionID)
	return args.Error(0)
}
