package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"crypto-checkout/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// OrderStore keeps orders as JSON blobs in Redis. It is the swap-in
// backend for deployments that want orders to survive a process restart;
// the in-memory store remains the default.
type OrderStore struct {
	client *goredis.Client
	prefix string
	ttl    time.Duration // 0 = no expiry
}

// NewOrderStore creates a Redis-backed order store.
func NewOrderStore(client *goredis.Client, ttl time.Duration) *OrderStore {
	return &OrderStore{
		client: client,
		prefix: "order:",
		ttl:    ttl,
	}
}

func (s *OrderStore) key(id string) string {
	return s.prefix + id
}

// Put implements ports.OrderStore.
func (s *OrderStore) Put(ctx context.Context, order *domain.Order) error {
	blob, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order %s: %w", order.ID, err)
	}
	if err := s.client.Set(ctx, s.key(order.ID), blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("store order %s: %w", order.ID, err)
	}
	return nil
}

// Get implements ports.OrderStore. It returns (nil, nil) when absent.
func (s *OrderStore) Get(ctx context.Context, id string) (*domain.Order, error) {
	blob, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == goredis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch order %s: %w", id, err)
	}

	var order domain.Order
	if err := json.Unmarshal(blob, &order); err != nil {
		return nil, fmt.Errorf("unmarshal order %s: %w", id, err)
	}
	return &order, nil
}

// Update implements ports.OrderStore. The write preserves the key's
// remaining TTL so a paid stamp does not extend an order's lifetime.
func (s *OrderStore) Update(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, nil
	}

	if err := fn(order); err != nil {
		return nil, err
	}

	blob, err := json.Marshal(order)
	if err != nil {
		return nil, fmt.Errorf("marshal order %s: %w", id, err)
	}
	if err := s.client.Set(ctx, s.key(id), blob, goredis.KeepTTL).Err(); err != nil {
		return nil, fmt.Errorf("update order %s: %w", id, err)
	}
	return order, nil
}
