package ports

import (
	"context"

	"crypto-checkout/internal/core/domain"
)

// OrderStore is the single source of truth for open crypto orders.
// Implementations return (nil, nil) from Get when the order is absent.
type OrderStore interface {
	Put(ctx context.Context, order *domain.Order) error
	Get(ctx context.Context, id string) (*domain.Order, error)
	// Update applies fn to the stored order and persists the result. It is
	// how payment stamps reach the store through any backend. fn is not
	// called when the order is absent; Update then returns (nil, nil).
	Update(ctx context.Context, id string, fn func(*domain.Order) error) (*domain.Order, error)
}
