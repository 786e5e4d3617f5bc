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

// CommentModel is the GORM model for the comments table.
type CommentModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorName string    `gorm:"not null;size:200"`
	Email      string    `gorm:"size:200"`
	Content    string    `gorm:"type:text;not null"`
	Approved   bool      `gorm:"not null;default:false;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
	UpdatedAt  time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (CommentModel) TableName() string {
	return "comments"
}

var commentColumns = map[string]bool{
	"author_name": true,
	"email":       true,
	"content":     true,
	"approved":    true,
}

// GormCommentRepository is the GORM-based implementation of blog.CommentRepository.
type GormCommentRepository struct {
	db *gorm.DB
}

// NewGormCommentRepository creates a new GormCommentRepository.
func NewGormCommentRepository(db *gorm.DB) *GormCommentRepository {
	return &GormCommentRepository{db: db}
}

// FindByID retrieves a comment by its unique identifier.
func (r *GormCommentRepository) FindByID(ctx context.Context, id uuid.UUID) (*blog.Comment, error) {
	var model CommentModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Comment", id.String())
		}
		return nil, fmt.Errorf("failed to find comment by ID: %w", err)
	}
	return toDomainComment(&model), nil
}

// ListByPost retrieves comments for a post ordered by creation time descending.
func (r *GormCommentRepository) ListByPost(ctx context.Context, postID uuid.UUID, approvedOnly bool) ([]*blog.Comment, error) {
	query := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at DESC")
	if approvedOnly {
		query = query.Where("approved = ?", true)
	}

	var models []CommentModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	comments := make([]*blog.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments, nil
}

// ListPending retrieves all comments awaiting moderation.
func (r *GormCommentRepository) ListPending(ctx context.Context) ([]*blog.Comment, error) {
	var models []CommentModel
	if err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("created_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list pending comments: %w", err)
	}

	comments := make([]*blog.Comment, len(models))
	for i := range models {
		comments[i] = toDomainComment(&models[i])
	}
	return comments, nil
}

// Save persists a new comment.
func (r *GormCommentRepository) Save(ctx context.Context, c *blog.Comment) error {
	model := toCommentModel(c)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save comment: %w", err)
	}
	return nil
}

// UpdateFields merges the given columns into an existing comment.
func (r *GormCommentRepository) UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	updates := make(map[string]interface{}, len(fields)+1)
	for column, value := range fields {
		if !commentColumns[column] {
			return domain.NewValidationError("unknown comment field: " + column)
		}
		updates[column] = value
	}
	updates["updated_at"] = time.Now().UTC()

	result := r.db.WithContext(ctx).
		Model(&CommentModel{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Comment", id.String())
	}
	return nil
}

// Delete removes a comment permanently.
func (r *GormCommentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CommentModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete comment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Comment", id.String())
	}
	return nil
}

func toCommentModel(c *blog.Comment) *CommentModel {
	return &CommentModel{
		ID:         c.ID(),
		PostID:     c.PostID(),
		AuthorName: c.AuthorName(),
		Email:      c.Email(),
		Content:    c.Content(),
		Approved:   c.Approved(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

func toDomainComment(m *CommentModel) *blog.Comment {
	return blog.ReconstructComment(
		m.ID,
		m.PostID,
		m.AuthorName,
		m.Email,
		m.Content,
		m.Approved,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
