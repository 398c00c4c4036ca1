package tablestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"restaurant/internal/core/domain/model/table"
	"restaurant/internal/pkg/errs"

	"github.com/go-redis/redis/v8"
)

// layoutKey is the fixed key holding the full floor plan document.
const layoutKey = "restaurant:tables"

// RedisTableStore implements ports.TableStore on a Redis client.
type RedisTableStore struct {
	client *redis.Client
}

// NewRedisTableStore creates a table store on the given client.
func NewRedisTableStore(client *redis.Client) (*RedisTableStore, error) {
	if client == nil {
		return nil, errs.NewValueIsRequiredError("client")
	}
	return &RedisTableStore{client: client}, nil
}

// Load retrieves the full floor plan. An absent key yields an empty slice.
func (s *RedisTableStore) Load(ctx context.Context) ([]*table.Table, error) {
	data, err := s.client.Get(ctx, layoutKey).Result()
	if errors.Is(err, redis.Nil) {
		return []*table.Table{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load tables: %w", err)
	}

	var dtos []tableDTO
	if err = json.Unmarshal([]byte(data), &dtos); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}

	tables := make([]*table.Table, 0, len(dtos))
	for _, dto := range dtos {
		t, toErr := toDomain(dto)
		if toErr != nil {
			return nil, fmt.Errorf("restore table %s: %w", dto.ID, toErr)
		}
		tables = append(tables, t)
	}

	return tables, nil
}

// Save replaces the full floor plan.
func (s *RedisTableStore) Save(ctx context.Context, tables []*table.Table) error {
	dtos := make([]tableDTO, 0, len(tables))
	for _, t := range tables {
		dtos = append(dtos, fromDomain(t))
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return fmt.Errorf("encode tables: %w", err)
	}

	if err = s.client.Set(ctx, layoutKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save tables: %w", err)
	}
	return nil
}
