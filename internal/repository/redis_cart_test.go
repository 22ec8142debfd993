package repository

import (
	"context"
	"testing"

	"github.com/metinatakli/stripe-checkout-gateway/internal/mocks"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRedisCartStoreEmpty(t *testing.T) {
	tests := []struct {
		name       string
		sessionID  string
		setupMocks func(*mocks.MockRedisClient)
		wantErr    bool
	}{
		{
			name:      "should do nothing without a session",
			sessionID: "",
		},
		{
			name:      "should do nothing when the session has no cart",
			sessionID: "session-1",
			setupMocks: func(m *mocks.MockRedisClient) {
				m.On("Get", mock.Anything, "cart_session:session-1").
					Return(redis.NewStringResult("", redis.Nil)).Once()
			},
		},
		{
			name:      "should delete the cart and its session binding",
			sessionID: "session-1",
			setupMocks: func(m *mocks.MockRedisClient) {
				m.On("Get", mock.Anything, "cart_session:session-1").
					Return(redis.NewStringResult("cart-7", nil)).Once()
				m.On("Del", mock.Anything, []string{"cart_session:session-1", "cart:cart-7"}).
					Return(redis.NewIntResult(2, nil)).Once()
			},
		},
		{
			name:      "should fail when the cart lookup fails",
			sessionID: "session-1",
			setupMocks: func(m *mocks.MockRedisClient) {
				m.On("Get", mock.Anything, "cart_session:session-1").
					Return(redis.NewStringResult("", mocks.MockRedisError{Msg: "connection refused"})).Once()
			},
			wantErr: true,
		},
		{
			name:      "should fail when the delete fails",
			sessionID: "session-1",
			setupMocks: func(m *mocks.MockRedisClient) {
				m.On("Get", mock.Anything, "cart_session:session-1").
					Return(redis.NewStringResult("cart-7", nil)).Once()
				m.On("Del", mock.Anything, mock.Anything).
					Return(redis.NewIntResult(0, mocks.MockRedisError{Msg: "READONLY"})).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := new(mocks.MockRedisClient)
			if tt.setupMocks != nil {
				tt.setupMocks(client)
			}

			err := NewRedisCartStore(client).Empty(context.Background(), tt.sessionID)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}

			client.AssertExpectations(t)
		})
	}
}
