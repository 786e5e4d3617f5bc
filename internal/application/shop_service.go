package application

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/shop"
)

// ProductSort names the shop listing sort keys.
type ProductSort string

const (
	SortDefault   ProductSort = ""
	SortName      ProductSort = "name"
	SortPriceAsc  ProductSort = "price_asc"
	SortPriceDesc ProductSort = "price_desc"
	SortRating    ProductSort = "rating"
	SortNewest    ProductSort = "newest"
)

// ProductFilter holds the shop listing filter and sort inputs.
type ProductFilter struct {
	Category      string
	MinPriceCents int64
	MaxPriceCents int64
	Sort          ProductSort
}

// CreateProductRequest is the request DTO for creating a product.
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	Category    string  `json:"category"`
	Rating      float64 `json:"rating"`
	ImageURL    string  `json:"image_url"`
	InStock     bool    `json:"in_stock"`
}

// UpdateProductRequest holds the optional fields an admin may change.
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	PriceCents  *int64   `json:"price_cents"`
	Category    *string  `json:"category"`
	Rating      *float64 `json:"rating"`
	ImageURL    *string  `json:"image_url"`
	InStock     *bool    `json:"in_stock"`
}

// ProductDTO is the API response representation of a product.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"price_cents"`
	Category    string    `json:"category,omitempty"`
	Rating      float64   `json:"rating"`
	ImageURL    string    `json:"image_url,omitempty"`
	InStock     bool      `json:"in_stock"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ShopService orchestrates product use cases.
type ShopService struct {
	repo   shop.ProductRepository
	logger *zap.Logger
}

// NewShopService creates a new ShopService.
func NewShopService(repo shop.ProductRepository, logger *zap.Logger) *ShopService {
	return &ShopService{repo: repo, logger: logger}
}

// CreateProduct creates a new product.
func (s *ShopService) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDTO, error) {
	product, err := shop.NewProduct(req.Name, req.Description, req.PriceCents, req.Category, req.Rating, req.ImageURL, req.InStock)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to save product: %w", err)
	}

	result := toProductDTO(product)
	return &result, nil
}

// GetProduct retrieves a single product by ID.
func (s *ShopService) GetProduct(ctx context.Context, id uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toProductDTO(product)
	return &result, nil
}

// ListProducts returns the filtered, sorted shop listing. Sorting is stable:
// ties keep the repository's newest-first input order.
func (s *ShopService) ListProducts(ctx context.Context, filter ProductFilter) ([]ProductDTO, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	filtered := make([]*shop.Product, 0, len(products))
	for _, p := range products {
		if filter.Category != "" && p.Category() != filter.Category {
			continue
		}
		if filter.MinPriceCents > 0 && p.PriceCents() < filter.MinPriceCents {
			continue
		}
		if filter.MaxPriceCents > 0 && p.PriceCents() > filter.MaxPriceCents {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, filter.Sort)

	dtos := make([]ProductDTO, len(filtered))
	for i, p := range filtered {
		dtos[i] = toProductDTO(p)
	}
	return dtos, nil
}

// UpdateProduct merges the provided fields into the product.
func (s *ShopService) UpdateProduct(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductDTO, error) {
	fields := make(map[string]interface{})
	if req.Name != nil {
		fields["name"] = *req.Name
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.PriceCents != nil {
		if *req.PriceCents < 0 {
			return nil, domain.NewValidationError("product price must not be negative")
		}
		fields["price_cents"] = *req.PriceCents
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.Rating != nil {
		if *req.Rating < 0 || *req.Rating > 5 {
			return nil, domain.NewValidationError("product rating must be between 0 and 5")
		}
		fields["rating"] = *req.Rating
	}
	if req.ImageURL != nil {
		fields["image_url"] = *req.ImageURL
	}
	if req.InStock != nil {
		fields["in_stock"] = *req.InStock
	}
	if len(fields) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}

	if err := s.repo.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

// DeleteProduct removes a product permanently.
func (s *ShopService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func sortProducts(products []*shop.Product, key ProductSort) {
	switch key {
	case SortName:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Name() < products[j].Name()
		})
	case SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents() < products[j].PriceCents()
		})
	case SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].PriceCents() > products[j].PriceCents()
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating() > products[j].Rating()
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt().After(products[j].CreatedAt())
		})
	}
}

func toProductDTO(p *shop.Product) ProductDTO {
	return ProductDTO{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		PriceCents:  p.PriceCents(),
		Category:    p.Category(),
		Rating:      p.Rating(),
		ImageURL:    p.ImageURL(),
		InStock:     p.InStock(),
		CreatedAt:   p.CreatedAt(),
		UpdatedAt:   p.UpdatedAt(),
	}
}
