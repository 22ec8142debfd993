package payment

import (
	"context"
	"sync"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

// MockPaymentProvider answers every request with CheckoutSession or Err and
// remembers the requests it received.
type MockPaymentProvider struct {
	mu              sync.Mutex
	CheckoutSession *domain.CheckoutSession
	Err             error
	requests        []domain.SessionRequest
}

func NewMockPaymentProvider() *MockPaymentProvider {
	return &MockPaymentProvider{}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	req domain.SessionRequest) (*domain.CheckoutSession, error) {

	m.mu.Lock()
	defer m.mu.Unlock()

	m.requests = append(m.requests, req)

	if m.Err != nil {
		return nil, m.Err
	}

	return m.CheckoutSession, nil
}

// Requests returns a copy of the requests received so far.
func (m *MockPaymentProvider) Requests() []domain.SessionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	requests := make([]domain.SessionRequest, len(m.requests))
	copy(requests, m.requests)
	return requests
}

func (m *MockPaymentProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CheckoutSession = nil
	m.Err = nil
	m.requests = nil
}
