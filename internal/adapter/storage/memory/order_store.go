// Package memory provides the default in-process order store. Orders are
// never evicted; they live for the life of the process, which is the
// intended lifetime of an open crypto order.
package memory

import (
	"context"
	"sync"

	"crypto-checkout/internal/core/domain"
)

// OrderStore is a mutex-guarded in-memory order map.
type OrderStore struct {
	mu     sync.RWMutex
	orders map[string]*domain.Order
}

// NewOrderStore creates an empty in-memory order store.
func NewOrderStore() *OrderStore {
	return &OrderStore{orders: make(map[string]*domain.Order)}
}

// Put implements ports.OrderStore.
func (s *OrderStore) Put(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[order.ID] = order
	return nil
}

// Get implements ports.OrderStore. It returns (nil, nil) when absent.
func (s *OrderStore) Get(_ context.Context, id string) (*domain.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.orders[id], nil
}

// Update implements ports.OrderStore. fn runs under the store lock.
func (s *OrderStore) Update(_ context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	order, ok := s.orders[id]
	if !ok {
		return nil, nil
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	return order, nil
}

// Len reports the number of stored orders.
func (s *OrderStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.orders)
}
