package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetPosts 获取已发布文章列表
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	categorySlug := c.Query("category")
	search := strings.TrimSpace(c.Query("search"))

	posts, total, err := h.PostService.ListPublic(categorySlug, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch posts", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, posts, pagination)
}

// GetPost 按 slug 获取已发布文章详情
func (h *Handler) GetPost(c *gin.Context) {
	slug := strings.TrimSpace(c.Param("slug"))
	if slug == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	post, err := h.PostService.GetPublicBySlug(slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch post", err)
		return
	}

	response.Success(c, post)
}

// LikePost 文章点赞
// 路由参数段承载文章 ID
func (h *Handler) LikePost(c *gin.Context) {
	id := strings.TrimSpace(c.Param("slug"))
	if id == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	likes, err := h.PostService.Like(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to like post", err)
		return
	}

	response.Success(c, gin.H{"likes": likes})
}
