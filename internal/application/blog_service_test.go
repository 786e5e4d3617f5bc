package application

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/David-19-dev/abdouperformence-sub001/internal/domain"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/blog"
)

type memoryPostRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*blog.Post
}

func newMemoryPostRepo() *memoryPostRepo {
	return &memoryPostRepo{items: make(map[uuid.UUID]*blog.Post)}
}

func (r *memoryPostRepo) FindByID(_ context.Context, id uuid.UUID) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("post", id.String())
	}
	return p, nil
}

func (r *memoryPostRepo) FindBySlug(_ context.Context, slug string) (*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Slug() == slug {
			return p, nil
		}
	}
	return nil, domain.NewNotFoundError("post", slug)
}

func (r *memoryPostRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.items {
		if p.Slug() == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryPostRepo) List(_ context.Context, publishedOnly bool) ([]*blog.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*blog.Post, 0, len(r.items))
	for _, p := range r.items {
		if publishedOnly && !p.Published() {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *memoryPostRepo) Save(_ context.Context, p *blog.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.Slug() == p.Slug() {
			return domain.NewConflictError("slug already exists: " + p.Slug())
		}
	}
	r.items[p.ID()] = p
	return nil
}

func (r *memoryPostRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.NewNotFoundError("post", id.String())
	}

	title, slug := p.Title(), p.Slug()
	excerpt, content := p.Excerpt(), p.Content()
	category, coverURL := p.Category(), p.CoverURL()
	published := p.Published()

	for column, value := range fields {
		switch column {
		case "title":
			title = value.(string)
		case "slug":
			slug = value.(string)
		case "excerpt":
			excerpt = value.(string)
		case "content":
			content = value.(string)
		case "category":
			category = value.(string)
		case "cover_url":
			coverURL = value.(string)
		case "published":
			published = value.(bool)
		}
	}

	r.items[id] = blog.ReconstructPost(
		id, title, slug, excerpt, content, category, coverURL, published,
		p.CreatedAt(), time.Now().UTC(),
	)
	return nil
}

func (r *memoryPostRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("post", id.String())
	}
	delete(r.items, id)
	return nil
}

type memoryCommentRepo struct {
	mu    sync.Mutex
	items map[uuid.UUID]*blog.Comment
}

func newMemoryCommentRepo() *memoryCommentRepo {
	return &memoryCommentRepo{items: make(map[uuid.UUID]*blog.Comment)}
}

func (r *memoryCommentRepo) FindByID(_ context.Context, id uuid.UUID) (*blog.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return nil, domain.NewNotFoundError("comment", id.String())
	}
	return c, nil
}

func (r *memoryCommentRepo) ListByPost(_ context.Context, postID uuid.UUID, approvedOnly bool) ([]*blog.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*blog.Comment, 0)
	for _, c := range r.items {
		if c.PostID() != postID {
			continue
		}
		if approvedOnly && !c.Approved() {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func (r *memoryCommentRepo) ListPending(_ context.Context) ([]*blog.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*blog.Comment, 0)
	for _, c := range r.items {
		if !c.Approved() {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *memoryCommentRepo) Save(_ context.Context, c *blog.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[c.ID()] = c
	return nil
}

func (r *memoryCommentRepo) UpdateFields(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.items[id]
	if !ok {
		return domain.NewNotFoundError("comment", id.String())
	}

	approved := c.Approved()
	content := c.Content()
	for column, value := range fields {
		switch column {
		case "approved":
			approved = value.(bool)
		case "content":
			content = value.(string)
		}
	}

	r.items[id] = blog.ReconstructComment(
		id, c.PostID(), c.AuthorName(), c.Email(), content, approved,
		c.CreatedAt(), time.Now().UTC(),
	)
	return nil
}

func (r *memoryCommentRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.NewNotFoundError("comment", id.String())
	}
	delete(r.items, id)
	return nil
}

func newTestBlogService() *BlogService {
	return NewBlogService(newMemoryPostRepo(), newMemoryCommentRepo(), zap.NewNop())
}

func postRequest(title string) CreatePostRequest {
	return CreatePostRequest{
		Title:     title,
		Excerpt:   "extrait",
		Content:   "contenu de l'article",
		Category:  "nutrition",
		Published: true,
	}
}

func TestCreatePost_SlugFromTitle(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, postRequest("Guide Complet"))
	require.NoError(t, err)
	assert.Equal(t, "guide-complet", post.Slug)

	found, err := svc.GetPostBySlug(ctx, "guide-complet")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)
}

func TestCreatePost_SlugCollisionSuffix(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	first, err := svc.CreatePost(ctx, postRequest("Guide Complet"))
	require.NoError(t, err)
	second, err := svc.CreatePost(ctx, postRequest("Guide complet !"))
	require.NoError(t, err)
	third, err := svc.CreatePost(ctx, postRequest("Guide complet"))
	require.NoError(t, err)

	assert.Equal(t, "guide-complet", first.Slug)
	assert.Equal(t, "guide-complet-2", second.Slug)
	assert.Equal(t, "guide-complet-3", third.Slug)
}

func TestCreatePost_EmptySlugRejected(t *testing.T) {
	svc := newTestBlogService()

	_, err := svc.CreatePost(context.Background(), postRequest("???"))
	require.Error(t, err)
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindValidation, domainErr.Kind)
}

func TestListPosts_PublishedOnly(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, postRequest("Article publié"))
	require.NoError(t, err)

	draft := postRequest("Brouillon")
	draft.Published = false
	_, err = svc.CreatePost(ctx, draft)
	require.NoError(t, err)

	public, err := svc.ListPosts(ctx, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "article-publie", public[0].Slug)

	all, err := svc.ListPosts(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUpdatePost_TitleChangeReslugifies(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	_, err := svc.CreatePost(ctx, postRequest("Nouveau Programme"))
	require.NoError(t, err)
	post, err := svc.CreatePost(ctx, postRequest("Ancien Programme"))
	require.NoError(t, err)

	// Renaming onto an occupied slug picks the next free suffix.
	newTitle := "Nouveau Programme"
	updated, err := svc.UpdatePost(ctx, post.ID, UpdatePostRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Nouveau Programme", updated.Title)
	assert.Equal(t, "nouveau-programme-2", updated.Slug)
}

func TestUpdatePost_SameTitleKeepsSlug(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, postRequest("Guide Complet"))
	require.NoError(t, err)

	sameTitle := post.Title
	published := false
	updated, err := svc.UpdatePost(ctx, post.ID, UpdatePostRequest{Title: &sameTitle, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, "guide-complet", updated.Slug)
	assert.False(t, updated.Published)
}

func TestComments_ModerationFlow(t *testing.T) {
	svc := newTestBlogService()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, postRequest("Guide Complet"))
	require.NoError(t, err)

	comment, err := svc.AddComment(ctx, post.ID, CreateCommentRequest{
		AuthorName: "Awa Diop",
		Email:      "awa@example.com",
		Content:    "Très utile, merci !",
	})
	require.NoError(t, err)
	assert.False(t, comment.Approved)

	// Unmoderated comments are hidden from the public view.
	public, err := svc.ListComments(ctx, post.ID, true)
	require.NoError(t, err)
	assert.Empty(t, public)

	pending, err := svc.ListPendingComments(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	approved, err := svc.ApproveComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, approved.Approved)

	public, err = svc.ListComments(ctx, post.ID, true)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, comment.ID, public[0].ID)

	pending, err = svc.ListPendingComments(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAddComment_UnknownPost(t *testing.T) {
	svc := newTestBlogService()

	_, err := svc.AddComment(context.Background(), uuid.New(), CreateCommentRequest{
		AuthorName: "Awa Diop",
		Content:    "bonjour",
	})
	var domainErr *domain.Error
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.KindNotFound, domainErr.Kind)
}
