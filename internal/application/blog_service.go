package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/blog"
)

// CreatePostRequest is the request DTO for creating a blog post.
type CreatePostRequest struct {
	Title     string `json:"title" binding:"required"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content" binding:"required"`
	Category  string `json:"category"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
}

// UpdatePostRequest holds the optional fields an admin may change on a post.
type UpdatePostRequest struct {
	Title     *string `json:"title"`
	Excerpt   *string `json:"excerpt"`
	Content   *string `json:"content"`
	Category  *string `json:"category"`
	CoverURL  *string `json:"cover_url"`
	Published *bool   `json:"published"`
}

// PostDTO is the API response representation of a blog post.
type PostDTO struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Slug      string    `json:"slug"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Content   string    `json:"content"`
	Category  string    `json:"category,omitempty"`
	CoverURL  string    `json:"cover_url,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateCommentRequest is the request DTO for leaving a comment.
type CreateCommentRequest struct {
	AuthorName string `json:"author_name" binding:"required"`
	Email      string `json:"email"`
	Content    string `json:"content" binding:"required"`
}

// CommentDTO is the API response representation of a comment.
type CommentDTO struct {
	ID         uuid.UUID `json:"id"`
	PostID     uuid.UUID `json:"post_id"`
	AuthorName string    `json:"author_name"`
	Email      string    `json:"email,omitempty"`
	Content    string    `json:"content"`
	Approved   bool      `json:"approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// maxSlugAttempts bounds the numeric-suffix retry when resolving collisions.
const maxSlugAttempts = 50

// BlogService orchestrates blog post and comment use cases.
type BlogService struct {
	posts    blog.PostRepository
	comments blog.CommentRepository
	logger   *zap.Logger
}

// NewBlogService creates a new BlogService.
func NewBlogService(posts blog.PostRepository, comments blog.CommentRepository, logger *zap.Logger) *BlogService {
	return &BlogService{posts: posts, comments: comments, logger: logger}
}

// CreatePost creates a blog post under a slug guaranteed unique at write
// time: when the title's slug is taken, numeric suffixes -2, -3, ... are
// tried in order.
func (s *BlogService) CreatePost(ctx context.Context, req CreatePostRequest) (*PostDTO, error) {
	slug, err := s.uniqueSlug(ctx, req.Title)
	if err != nil {
		return nil, err
	}

	post, err := blog.NewPost(req.Title, slug, req.Excerpt, req.Content, req.Category, req.CoverURL, req.Published)
	if err != nil {
		return nil, err
	}

	if err := s.posts.Save(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to save post: %w", err)
	}

	s.logger.Info("blog post created",
		zap.String("post_id", post.ID().String()),
		zap.String("slug", post.Slug()),
	)

	result := toPostDTO(post)
	return &result, nil
}

// GetPostBySlug retrieves a single post by its slug.
func (s *BlogService) GetPostBySlug(ctx context.Context, slug string) (*PostDTO, error) {
	post, err := s.posts.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	result := toPostDTO(post)
	return &result, nil
}

// ListPosts returns posts newest first; publishedOnly drops drafts.
func (s *BlogService) ListPosts(ctx context.Context, publishedOnly bool) ([]PostDTO, error) {
	posts, err := s.posts.List(ctx, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	dtos := make([]PostDTO, len(posts))
	for i, p := range posts {
		dtos[i] = toPostDTO(p)
	}
	return dtos, nil
}

// UpdatePost merges the provided fields into the post. A title change
// re-derives the slug, resolving collisions the same way creation does.
func (s *BlogService) UpdatePost(ctx context.Context, id uuid.UUID, req UpdatePostRequest) (*PostDTO, error) {
	current, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := make(map[string]interface{})
	if req.Title != nil && *req.Title != current.Title() {
		slug, err := s.uniqueSlug(ctx, *req.Title)
		if err != nil {
			return nil, err
		}
		fields["title"] = *req.Title
		fields["slug"] = slug
	}
	if req.Excerpt != nil {
		fields["excerpt"] = *req.Excerpt
	}
	if req.Content != nil {
		fields["content"] = *req.Content
	}
	if req.Category != nil {
		fields["category"] = *req.Category
	}
	if req.CoverURL != nil {
		fields["cover_url"] = *req.CoverURL
	}
	if req.Published != nil {
		fields["published"] = *req.Published
	}
	if len(fields) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}

	if err := s.posts.UpdateFields(ctx, id, fields); err != nil {
		return nil, err
	}

	updated, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toPostDTO(updated)
	return &result, nil
}

// DeletePost removes a post permanently.
func (s *BlogService) DeletePost(ctx context.Context, id uuid.UUID) error {
	return s.posts.Delete(ctx, id)
}

// AddComment attaches a new unapproved comment to a published post.
func (s *BlogService) AddComment(ctx context.Context, postID uuid.UUID, req CreateCommentRequest) (*CommentDTO, error) {
	if _, err := s.posts.FindByID(ctx, postID); err != nil {
		return nil, err
	}

	comment, err := blog.NewComment(postID, req.AuthorName, req.Email, req.Content)
	if err != nil {
		return nil, err
	}

	if err := s.comments.Save(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to save comment: %w", err)
	}

	result := toCommentDTO(comment)
	return &result, nil
}

// ListComments returns comments for a post; approvedOnly hides unmoderated
// ones (the public view).
func (s *BlogService) ListComments(ctx context.Context, postID uuid.UUID, approvedOnly bool) ([]CommentDTO, error) {
	comments, err := s.comments.ListByPost(ctx, postID, approvedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos, nil
}

// ListPendingComments returns all comments awaiting moderation (admin).
func (s *BlogService) ListPendingComments(ctx context.Context) ([]CommentDTO, error) {
	comments, err := s.comments.ListPending(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending comments: %w", err)
	}

	dtos := make([]CommentDTO, len(comments))
	for i, c := range comments {
		dtos[i] = toCommentDTO(c)
	}
	return dtos, nil
}

// ApproveComment marks a comment as approved.
func (s *BlogService) ApproveComment(ctx context.Context, id uuid.UUID) (*CommentDTO, error) {
	if err := s.comments.UpdateFields(ctx, id, map[string]interface{}{"approved": true}); err != nil {
		return nil, err
	}

	comment, err := s.comments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	result := toCommentDTO(comment)
	return &result, nil
}

// DeleteComment removes a comment permanently.
func (s *BlogService) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return s.comments.Delete(ctx, id)
}

// uniqueSlug derives the slug for a title and resolves collisions with a
// pre-write existence check and numeric-suffix retry.
func (s *BlogService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := blog.Slugify(title)
	if base == "" {
		return "", domain.NewValidationError("title produces an empty slug: " + title)
	}

	candidate := base
	for attempt := 2; attempt <= maxSlugAttempts; attempt++ {
		exists, err := s.posts.SlugExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check slug: %w", err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", domain.NewConflictError("could not find a free slug for: " + base)
}

func toPostDTO(p *blog.Post) PostDTO {
	return PostDTO{
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

func toCommentDTO(c *blog.Comment) CommentDTO {
	return CommentDTO{
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
