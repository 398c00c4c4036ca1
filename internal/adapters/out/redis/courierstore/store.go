package courierstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/courier"
	"restaurant/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// rosterKey is the fixed key holding the full roster document.
const rosterKey = "restaurant:couriers"

// RedisCourierStore implements ports.CourierStore on a Redis client.
type RedisCourierStore struct {
	client *redis.Client
}

// NewRedisCourierStore creates a courier store on the given client.
func NewRedisCourierStore(client *redis.Client) (*RedisCourierStore, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisCourierStore{client: client}, nil
}

// Load retrieves the full roster. An absent key yields an empty slice.
func (s *RedisCourierStore) Load(ctx context.Context) ([]*courier.Courier, error) {
	data, err := s.client.Get(ctx, rosterKey).Result()
	if errors.Is(err, redis.Nil) {
		return []*courier.Courier{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load couriers: %w", err)
	}

	var dtos []courierDTO
	if err = json.Unmarshal([]byte(data), &dtos); err != nil {
		return nil, fmt.Errorf("decode couriers: %w", err)
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, toErr := toDomain(dto)
		if toErr != nil {
			return nil, fmt.Errorf("restore courier %s: %w", dto.ID, toErr)
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}

// Save replaces the full roster.
func (s *RedisCourierStore) Save(ctx context.Context, couriers []*courier.Courier) error {
	dtos := make([]courierDTO, 0, len(couriers))
	for _, c := range couriers {
		dtos = append(dtos, fromDomain(c))
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("encode couriers: %w", err)
	}

	if err = s.client.Set(ctx, rosterKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save couriers: %w", err)
	}
	return nil
}
