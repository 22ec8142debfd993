package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisCartStore removes carts the storefront keeps in Redis. A shopper's
// session token maps to a cart id under CartSessionKey, the cart itself lives
// under CartKey.
type RedisCartStore struct {
	client redis.UniversalClient
}

func NewRedisCartStore(client redis.UniversalClient) *RedisCartStore {
	return &RedisCartStore{
		client: client,
	}
}

func CartSessionKey(sessionID string) string {
	return "cart_session:" + sessionID
}

func CartKey(cartID string) string {
	return "cart:" + cartID
}

func (s *RedisCartStore) Empty(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	sessionKey := CartSessionKey(sessionID)

	cartID, err := s.client.Get(ctx, sessionKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return err
	}

	return s.client.Del(ctx, sessionKey, CartKey(cartID)).Err()
}
