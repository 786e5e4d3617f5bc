package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/shop"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name        string    `gorm:"not null;size:300"`
	Description string    `gorm:"size:2000"`
	PriceCents  int64     `gorm:"not null"`
	Category    string    `gorm:"size:100;index"`
	Rating      float64   `gorm:"not null;default:0"`
	ImageURL    string    `gorm:"size:500"`
	InStock     bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null;index"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ProductModel) TableName() string {
	return "products"
}

var productColumns = map[string]bool{
	"name":        true,
	"description": true,
	"price_cents": true,
	"category":    true,
	"rating":      true,
	"image_url":   true,
	"in_stock":    true,
}

// GormProductRepository is the GORM-based implementation of shop.ProductRepository.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// FindByID retrieves a product by its unique identifier.
func (r *GormProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*shop.Product, error) {
	var model ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Product", id.String())
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return toDomainProduct(&model), nil
}

// List retrieves all products ordered by creation time descending.
func (r *GormProductRepository) List(ctx context.Context) ([]*shop.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*shop.Product, len(models))
	for i := range models {
		products[i] = toDomainProduct(&models[i])
	}
	return products, nil
}

// Save persists a new product.
func (r *GormProductRepository) Save(ctx context.Context, p *shop.Product) error {
	model := toProductModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}
	return nil
}

// UpdateFields merges the given columns into an existing product.
func (r *GormProductRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		if !productColumns[column] {
			return domain.NewValidationError("unknown product field: " + column)
		}
		updates[column] = value
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Product", id.String())
	}
	return nil
}

// Delete removes a product permanently.
func (r *GormProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Product", id.String())
	}
	return nil
}

func toProductModel(p *shop.Product) *ProductModel {
	return &ProductModel{
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

func toDomainProduct(m *ProductModel) *shop.Product {
	return shop.Reconstruct(
		m.ID,
		m.Name,
		m.Description,
		m.PriceCents,
		m.Category,
		m.Rating,
		m.ImageURL,
		m.InStock,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
