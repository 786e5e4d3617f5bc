package shop

import (
	"context"

	"github.com/google/uuid"
)

// ProductRepository defines the persistence contract for shop products.
type ProductRepository interface {
	// FindByID retrieves a product by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// List retrieves all products ordered by creation time descending.
	List(ctx context.Context) ([]*Product, error)

	// Save persists a new product.
	Save(ctx context.Context, p *Product) error

	// UpdateFields merges the given columns into an existing product and
	// refreshes updated_at.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a product permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
