package mocks

import (
	"context"

	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

// MockSettingsRepo serves options from a map. Keys missing from Options are
// reported as domain.ErrRecordNotFound, GetOptionFunc overrides the lookup.
type MockSettingsRepo struct {
	domain.SettingsRepository
	Options       map[string]string
	GetOptionFunc func(ctx context.Context, key string) (string, error)
}

func (m *MockSettingsRepo) GetOption(ctx context.Context, key string) (string, error) {
	if m.GetOptionFunc != nil {
		return m.GetOptionFunc(ctx, key)
	}

	value, ok := m.Options[key]
	if !ok {
		return "", domain.ErrRecordNotFound
	}
	return value, nil
}

func (m *MockSettingsRepo) SetOption(ctx context.Context, key, value string) error {
	if m.Options == nil {
		m.Options = make(map[string]string)
	}
	m.Options[key] = value
	return nil
}
