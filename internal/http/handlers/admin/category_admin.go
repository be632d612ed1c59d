package admin

import (
	"errors"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetCategories 获取分类列表 (Admin)
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.CategoryService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch categories", err)
		return
	}

	response.Success(c, categories)
}

// CategoryRequest 分类创建/更新请求
type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// CreateCategory 创建分类
func (h *Handler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	category, err := h.CategoryService.Create(req.Name, req.Description)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	response.Success(c, category)
}

// UpdateCategory 更新分类
func (h *Handler) UpdateCategory(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	category, err := h.CategoryService.Update(id, req.Name, req.Description)
	if err != nil {
		h.respondCategoryError(c, err)
		return
	}

	response.Success(c, category)
}

// DeleteCategory 删除分类
func (h *Handler) DeleteCategory(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	if err := h.CategoryService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Category not found", nil)
		case errors.Is(err, service.ErrCategoryInUse):
			respondError(c, response.CodeBadRequest, "Category still has posts", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to delete category", err)
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Category not found", nil)
	case errors.Is(err, service.ErrMissingFields):
		respondError(c, response.CodeBadRequest, "Missing required fields", nil)
	case errors.Is(err, service.ErrNameExists):
		respondError(c, response.CodeBadRequest, "Category name already exists", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "A category with the same slug already exists", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save category", err)
	}
}
