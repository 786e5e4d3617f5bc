package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/blog"
)

// PostModel is the GORM model for the blog_posts table.
type PostModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null;size:300"`
	Slug      string    `gorm:"uniqueIndex;not null;size:300"`
	Excerpt   string    `gorm:"size:1000"`
	Content   string    `gorm:"type:text;not null"`
	Category  string    `gorm:"size:100;index"`
	CoverURL  string    `gorm:"size:500"`
	Published bool      `gorm:"not null;default:false;index"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (PostModel) TableName() string {
	return "blog_posts"
}

var postColumns = map[string]bool{
	"title":     true,
	"slug":      true,
	"excerpt":   true,
	"content":   true,
	"category":  true,
	"cover_url": true,
	"published": true,
}

// GormPostRepository is the GORM-based implementation of blog.PostRepository.
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository creates a new GormPostRepository.
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// FindByID retrieves a post by its unique identifier.
func (r *GormPostRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Post, error) {
	var model PostModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Post", id.String())
		}
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}
	return toDomainPost(&model), nil
}

// FindBySlug retrieves a post by its slug.
func (r *GormPostRepository) FindBySlug(ctx context.Context, slug string) (*blog.Post, error) {
	var model PostModel
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Post", slug)
		}
		return nil, fmt.Errorf("failed to find post by slug: %w", err)
	}
	return toDomainPost(&model), nil
}

// SlugExists reports whether any post already uses the given slug.
func (r *GormPostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&PostModel{}).
		Where("slug = ?", slug).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check slug existence: %w", err)
	}
	return count > 0, nil
}

// List retrieves posts ordered by creation time descending.
func (r *GormPostRepository) List(ctx context.Context, publishedOnly bool) ([]*blog.Post, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var models []PostModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	posts := make([]*blog.Post, len(models))
	for i := range models {
		posts[i] = toDomainPost(&models[i])
	}
	return posts, nil
}

// Save persists a new post.
func (r *GormPostRepository) Save(ctx context.Context, p *blog.Post) error {
	model := toPostModel(p)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save post: %w", err)
	}
	return nil
}

// UpdateFields merges the given columns into an existing post.
func (r *GormPostRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		if !postColumns[column] {
			return domain.NewValidationError("unknown post field: " + column)
		}
		updates[column] = value
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&PostModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Post", id.String())
	}
	return nil
}

// Delete removes a post permanently.
func (r *GormPostRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PostModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Post", id.String())
	}
	return nil
}

func toPostModel(p *blog.Post) *PostModel {
	return &PostModel{
		ID:        p.ID(),
		Title:     p.Title(),
		Slug:      p.Slug(),
		Excerpt:   p.Excerpt(),
		Content:   p.Content(),
		Category:  p.Category(),
		CoverURL:  p.CoverURL(),
		Published: p.Published(),
		CreatedAt: p.CreatedAt(),
		UpdatedAt: p.UpdatedAt(),
	}
}

func toDomainPost(m *PostModel) *blog.Post {
	return blog.ReconstructPost(
		m.ID,
		m.Title,
		m.Slug,
		m.Excerpt,
		m.Content,
		m.Category,
		m.CoverURL,
		m.Published,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
