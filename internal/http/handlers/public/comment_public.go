package public

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetPostComments 获取文章评论列表
// 路由参数段承载文章 ID
func (h *Handler) GetPostComments(c *gin.Context) {
	postID := strings.TrimSpace(c.Param("slug"))
	if postID == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)

	comments, total, err := h.CommentService.ListByPost(postID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch comments", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, comments, pagination)
}

// CreateCommentRequest 发表评论请求
type CreateCommentRequest struct {
	PostID   string `json:"post_id" binding:"required"`
	UserName string `json:"user_name" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

// CreateComment 发表评论
func (h *Handler) CreateComment(c *gin.Context) {
	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	comment, err := h.CommentService.Create(service.CreateCommentInput{
		PostID:   req.PostID,
		UserName: req.UserName,
		Content:  req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "Post not found", nil)
		case errors.Is(err, service.ErrMissingFields):
			respondError(c, response.CodeBadRequest, "Missing required fields", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to create comment", err)
		}
		return
	}

	response.Success(c, comment)
}
