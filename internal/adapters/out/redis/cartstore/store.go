package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/cart"
	"restaurant/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// keyPrefix namespaces cart documents by session.
const keyPrefix = "restaurant:cart:"

// RedisCartStore implements ports.CartStore on a Redis client.
type RedisCartStore struct {
	client *redis.Client
}

// NewRedisCartStore creates a cart store on the given client.
func NewRedisCartStore(client *redis.Client) (*RedisCartStore, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisCartStore{client: client}, nil
}

// Load retrieves the session's cart, nil when the session has none.
func (s *RedisCartStore) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, keyPrefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", sessionID, err)
	}

	var dto cartDTO
	if err = json.Unmarshal([]byte(data), &dto); err != nil {
		return nil, fmt.Errorf("decode cart %s: %w", sessionID, err)
	}

	c, err := toDomain(dto)
	if err != nil {
		return nil, fmt.Errorf("restore cart %s: %w", sessionID, err)
	}
	return c, nil
}

// Save replaces the session's cart.
func (s *RedisCartStore) Save(ctx context.Context, c *cart.Cart) error {
	if err := c.Validate(); err != nil {
		return err
	}

	data, err := json.Marshal(fromDomain(c))
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", c.SessionID(), err)
	}

	if err = s.client.Set(ctx, keyPrefix+c.SessionID(), data, 0).Err(); err != nil {
		return fmt.Errorf("save cart %s: %w", c.SessionID(), err)
	}
	return nil
}

// Delete drops the session's cart.
func (s *RedisCartStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("delete cart %s: %w", sessionID, err)
	}
	return nil
}
