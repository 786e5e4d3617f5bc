package blog

import (
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/google/uuid"
)

// Post is the aggregate root for a blog article.
type Post struct {
	id        uuid.UUID
	title     string
	slug      string
	excerpt   string
	content   string
	category  string
	coverURL  string
	published bool

	createdAt time.Time
	updatedAt time.Time
}

// NewPost creates a new Post with validated fields. The slug must already be
// unique within the collection; uniqueness is resolved by the caller.
func NewPost(title, slug, excerpt, content, category, coverURL string, published bool) (*Post, error) {
	if title == "" {
		return nil, domain.NewValidationError("post title is required")
	}
	if slug == "" {
		return nil, domain.NewValidationError("post slug is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("post content is required")
	}

	now := time.Now().UTC()
	return &Post{
		id:        uuid.New(),
		title:     title,
		slug:      slug,
		excerpt:   excerpt,
		content:   content,
		category:  category,
		coverURL:  coverURL,
		published: published,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructPost rebuilds a Post from persistence data (no validation).
func ReconstructPost(
	id uuid.UUID,
	title, slug, excerpt, content, category, coverURL string,
	published bool,
	createdAt, updatedAt time.Time,
) *Post {
	return &Post{
		id:        id,
		title:     title,
		slug:      slug,
		excerpt:   excerpt,
		content:   content,
		category:  category,
		coverURL:  coverURL,
		published: published,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// ID returns the post's unique identifier.
func (p *Post) ID() uuid.UUID { return p.id }

// Title returns the post title.
func (p *Post) Title() string { return p.title }

// Slug returns the URL-safe unique identifier derived from the title.
func (p *Post) Slug() string { return p.slug }

// Excerpt returns the short summary shown in listings.
func (p *Post) Excerpt() string { return p.excerpt }

// Content returns the article body.
func (p *Post) Content() string { return p.content }

// Category returns the post category.
func (p *Post) Category() string { return p.category }

// CoverURL returns the cover image URL.
func (p *Post) CoverURL() string { return p.coverURL }

// Published returns whether the post is publicly visible.
func (p *Post) Published() bool { return p.published }

// CreatedAt returns the creation timestamp.
func (p *Post) CreatedAt() time.Time { return p.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (p *Post) UpdatedAt() time.Time { return p.updatedAt }
