package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/David-19-dev/abdouperformence-sub001/internal/application"
	"github.com/David-19-dev/abdouperformence-sub001/internal/auth"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/user"
	"github.com/David-19-dev/abdouperformence-sub001/internal/middleware"
	"github.com/David-19-dev/abdouperformence-sub001/internal/response"
)

// BlogHandler handles public and admin blog endpoints.
type BlogHandler struct {
	service *application.BlogService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(service *application.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

// RegisterRoutes registers public blog routes and JWT-protected admin routes.
func (h *BlogHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	blog := r.Group("/api/v1/blog")
	{
		blog.GET("/posts", h.ListPublished)
		blog.GET("/posts/:slug", h.GetPost)
		blog.GET("/posts/:slug/comments", h.ListComments)
		blog.POST("/posts/:slug/comments", h.AddComment)
	}

	admin := r.Group("/api/v1/admin/blog")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(string(user.RoleAdmin)))
	{
		admin.GET("/posts", h.ListAll)
		admin.POST("/posts", h.CreatePost)
		admin.PATCH("/posts/:id", h.UpdatePost)
		admin.DELETE("/posts/:id", h.DeletePost)
		admin.GET("/comments/pending", h.ListPendingComments)
		admin.POST("/comments/:id/approve", h.ApproveComment)
		admin.DELETE("/comments/:id", h.DeleteComment)
	}
}

// ListPublished handles GET /api/v1/blog/posts.
func (h *BlogHandler) ListPublished(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context(), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// GetPost handles GET /api/v1/blog/posts/:slug.
func (h *BlogHandler) GetPost(c *gin.Context) {
	result, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ListComments handles GET /api/v1/blog/posts/:slug/comments, returning only
// approved comments.
func (h *BlogHandler) ListComments(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), post.ID, true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// AddComment handles POST /api/v1/blog/posts/:slug/comments.
func (h *BlogHandler) AddComment(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var req application.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddComment(c.Request.Context(), post.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// ListAll handles GET /api/v1/admin/blog/posts, drafts included.
func (h *BlogHandler) ListAll(c *gin.Context) {
	posts, err := h.service.ListPosts(c.Request.Context(), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

// CreatePost handles POST /api/v1/admin/blog/posts.
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req application.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreatePost(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdatePost handles PATCH /api/v1/admin/blog/posts/:id.
func (h *BlogHandler) UpdatePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	var req application.UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdatePost(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeletePost handles DELETE /api/v1/admin/blog/posts/:id.
func (h *BlogHandler) DeletePost(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid post ID")
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPendingComments handles GET /api/v1/admin/blog/comments/pending.
func (h *BlogHandler) ListPendingComments(c *gin.Context) {
	comments, err := h.service.ListPendingComments(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

// ApproveComment handles POST /api/v1/admin/blog/comments/:id/approve.
func (h *BlogHandler) ApproveComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment ID")
		return
	}

	result, err := h.service.ApproveComment(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteComment handles DELETE /api/v1/admin/blog/comments/:id.
func (h *BlogHandler) DeleteComment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid comment ID")
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
