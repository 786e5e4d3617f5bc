package blog

import (
	"context"

	"github.com/google/uuid"
)

// PostRepository defines the persistence contract for blog posts.
type PostRepository interface {
	// FindByID retrieves a post by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Post, error)

	// FindBySlug retrieves a post by its slug.
	FindBySlug(ctx context.Context, slug string) (*Post, error)

	// SlugExists reports whether any post already uses the given slug.
	SlugExists(ctx context.Context, slug string) (bool, error)

	// List retrieves posts ordered by creation time descending. When
	// publishedOnly is true, drafts are excluded.
	List(ctx context.Context, publishedOnly bool) ([]*Post, error)

	// Save persists a new post.
	Save(ctx context.Context, p *Post) error

	// UpdateFields merges the given columns into an existing post and
	// refreshes updated_at.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a post permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommentRepository defines the persistence contract for post comments.
type CommentRepository interface {
	// FindByID retrieves a comment by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Comment, error)

	// ListByPost retrieves comments for a post ordered by creation time
	// descending. When approvedOnly is true, unmoderated comments are
	// excluded.
	ListByPost(ctx context.Context, postID uuid.UUID, approvedOnly bool) ([]*Comment, error)

	// ListPending retrieves all comments awaiting moderation.
	ListPending(ctx context.Context) ([]*Comment, error)

	// Save persists a new comment.
	Save(ctx context.Context, c *Comment) error

	// UpdateFields merges the given columns into an existing comment and
	// refreshes updated_at.
	UpdateFields(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a comment permanently.
	Delete(ctx context.Context, id uuid.UUID) error
}
