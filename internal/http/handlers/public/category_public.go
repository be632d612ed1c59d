package public

import (
	"errors"
	"strings"
	"time"

	"github.com/sparkzonn-blog/internal/cache"
	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	publicCategoriesCacheKey = "public:categories"
	publicCategoriesCacheTTL = 60 * time.Second
)

// GetCategories 获取分类列表
func (h *Handler) GetCategories(c *gin.Context) {
	var cached []models.Category
	if hit, err := cache.GetJSON(c.Request.Context(), publicCategoriesCacheKey, &cached); err == nil && hit {
		response.Success(c, cached)
		return
	}

	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch categories", err)
		return
	}

	_ = cache.SetJSON(c.Request.Context(), publicCategoriesCacheKey, categories, publicCategoriesCacheTTL)
	response.Success(c, categories)
}

// GetCategory 按 slug 获取分类详情
func (h *Handler) GetCategory(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	category, err := h.CategoryService.GetBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Category not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch category", err)
		return
	}

	response.Success(c, category)
}
