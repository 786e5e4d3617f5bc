package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/David-19-dev/abdouperformence-sub001/internal/application"
	"github.com/David-19-dev/abdouperformence-sub001/internal/auth"
	"github.com/David-19-dev/abdouperformence-sub001/internal/domain/user"
	"github.com/David-19-dev/abdouperformence-sub001/internal/middleware"
	"github.com/David-19-dev/abdouperformence-sub001/internal/response"
)

// ShopHandler handles public shop browsing and admin product management.
type ShopHandler struct {
	service *application.ShopService
}

// NewShopHandler creates a new ShopHandler.
func NewShopHandler(service *application.ShopService) *ShopHandler {
	return &ShopHandler{service: service}
}

// RegisterRoutes registers public shop routes and JWT-protected admin routes.
func (h *ShopHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	shop := r.Group("/api/v1/shop")
	{
		shop.GET("/products", h.ListProducts)
		shop.GET("/products/:id", h.GetProduct)
	}

	admin := r.Group("/api/v1/admin/shop")
	admin.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(string(user.RoleAdmin)))
	{
		admin.POST("/products", h.CreateProduct)
		admin.PATCH("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
	}
}

// ListProducts handles GET /api/v1/shop/products with filter and sort
// query parameters.
func (h *ShopHandler) ListProducts(c *gin.Context) {
	minPrice, _ := strconv.ParseInt(c.DefaultQuery("min_price", "0"), 10, 64)
	maxPrice, _ := strconv.ParseInt(c.DefaultQuery("max_price", "0"), 10, 64)

	filter := application.ProductFilter{
		Category:      c.Query("category"),
		MinPriceCents: minPrice,
		MaxPriceCents: maxPrice,
		Sort:          application.ProductSort(c.Query("sort")),
	}

	products, err := h.service.ListProducts(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct handles GET /api/v1/shop/products/:id.
func (h *ShopHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID")
		return
	}

	result, err := h.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateProduct handles POST /api/v1/admin/shop/products.
func (h *ShopHandler) CreateProduct(c *gin.Context) {
	var req application.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateProduct(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateProduct handles PATCH /api/v1/admin/shop/products/:id.
func (h *ShopHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID")
		return
	}

	var req application.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateProduct(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteProduct handles DELETE /api/v1/admin/shop/products/:id.
func (h *ShopHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid product ID")
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
