package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/iyhunko/catalog-service/internal/model"
)

var (
	// ErrNotFound is returned when no product exists with the requested ID.
	ErrNotFound = errors.New("product not found")
)

// ProductRepository defines the store contract used by the catalog service.
type ProductRepository interface {
	Create(ctx context.Context, product *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Product, error)
	Update(ctx context.Context, product *model.Product) (*model.Product, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	// Count returns the number of products matching the query filters, ignoring pagination.
	Count(ctx context.Context, query Query) (int64, error)
	// List returns one sorted page of products matching the query filters.
	List(ctx context.Context, query Query) ([]*model.Product, error)
}

// ConstraintError represents a database constraint violation.
type ConstraintError struct {
	Code   string
	Detail string
}

func (c *ConstraintError) Error() string {
	return "product violates a store constraint: " + c.Detail
}
