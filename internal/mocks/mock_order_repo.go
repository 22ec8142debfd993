package mocks

import (
	"context"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockOrderRepo struct {
	mock.Mock
	domain.OrderRepository
}

func (m *MockOrderRepo) GetById(ctx context.Context, id int) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepo) ReduceStock(ctx context.Context, order *domain.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepo) CancelURL(order *domain.Order) string {
	args := m.Called(order)
	return args.String(0)
}

func (m *MockOrderRepo) ReturnURL(order *domain.Order) string {
	args := m.Called(order)
	return args.String(0)
}
