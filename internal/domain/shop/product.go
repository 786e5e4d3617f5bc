package shop

import (
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/google/uuid"
)

// Product is a shop item: supplements, apparel, training programs.
type Product struct {
	id          uuid.UUID
	name        string
	description string
	priceCents  int64
	category    string
	rating      float64
	imageURL    string
	inStock     bool

	createdAt time.Time
	updatedAt time.Time
}

// NewProduct creates a new Product with validated fields.
func NewProduct(name, description string, priceCents int64, category string, rating float64, imageURL string, inStock bool) (*Product, error) {
	if name == "" {
		return nil, domain.NewValidationError("product name is required")
	}
	if priceCents < 0 {
		return nil, domain.NewValidationError("product price must not be negative")
	}
	if rating < 0 || rating > 5 {
		return nil, domain.NewValidationError("product rating must be between 0 and 5")
	}

	now := time.Now().UTC()
	return &Product{
		id:          uuid.New(),
		name:        name,
		description: description,
		priceCents:  priceCents,
		category:    category,
		rating:      rating,
		imageURL:    imageURL,
		inStock:     inStock,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Product from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	name, description string,
	priceCents int64,
	category string,
	rating float64,
	imageURL string,
	inStock bool,
	createdAt, updatedAt time.Time,
) *Product {
	return &Product{
		id:          id,
		name:        name,
		description: description,
		priceCents:  priceCents,
		category:    category,
		rating:      rating,
		imageURL:    imageURL,
		inStock:     inStock,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the product's unique identifier.
func (p *Product) ID() uuid.UUID { return p.id }

// Name returns the product name.
func (p *Product) Name() string { return p.name }

// Description returns the product description.
func (p *Product) Description() string { return p.description }

// PriceCents returns the price in cents.
func (p *Product) PriceCents() int64 { return p.priceCents }

// Category returns the product category.
func (p *Product) Category() string { return p.category }

// Rating returns the average customer rating (0 to 5).
func (p *Product) Rating() float64 { return p.rating }

// ImageURL returns the product image URL.
func (p *Product) ImageURL() string { return p.imageURL }

// InStock returns whether the product is currently available.
func (p *Product) InStock() bool { return p.inStock }

// CreatedAt returns the creation timestamp.
func (p *Product) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (p *Product) UpdatedAt() time.Time { return p.updatedAt }
