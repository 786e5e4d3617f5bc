package blog

import (
	"time"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/google/uuid"
)

// Comment is a reader comment attached to a blog post. Comments start
// unapproved and become visible after admin moderation.
type Comment struct {
	id         uuid.UUID
	postID     uuid.UUID
	authorName string
	email      string
	content    string
	approved   bool

	createdAt time.Time
	updatedAt time.Time
}

// NewComment creates a new unapproved Comment with validated fields.
func NewComment(postID uuid.UUID, authorName, email, content string) (*Comment, error) {
	if postID == uuid.Nil {
		return nil, domain.NewValidationError("comment post ID is required")
	}
	if authorName == "" {
		return nil, domain.NewValidationError("comment author name is required")
	}
	if content == "" {
		return nil, domain.NewValidationError("comment content is required")
	}

	now := time.Now().UTC()
	return &Comment{
		id:         uuid.New(),
		postID:     postID,
		authorName: authorName,
		email:      email,
		content:    content,
		approved:   false,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// ReconstructComment rebuilds a Comment from persistence data (no validation).
func ReconstructComment(
	id, postID uuid.UUID,
	authorName, email, content string,
	approved bool,
	createdAt, updatedAt time.Time,
) *Comment {
	return &Comment{
		id:         id,
		postID:     postID,
		authorName: authorName,
		email:      email,
		content:    content,
		approved:   approved,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// ID returns the comment's unique identifier.
func (c *Comment) ID() uuid.UUID { return c.id }

// PostID returns the identifier of the post this comment belongs to.
func (c *Comment) PostID() uuid.UUID { return c.postID }

// AuthorName returns the display name of the comment author.
func (c *Comment) AuthorName() string { return c.authorName }

// Email returns the author's email address.
func (c *Comment) Email() string { return c.email }

// Content returns the comment body.
func (c *Comment) Content() string { return c.content }

// Approved returns whether the comment has passed moderation.
func (c *Comment) Approved() bool { return c.approved }

// CreatedAt returns the creation timestamp.
func (c *Comment) CreatedAt() time.Time { return c.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }
