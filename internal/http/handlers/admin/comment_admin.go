package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetComments 获取评论列表 (Admin)
func (h *Handler) GetComments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	postID := c.Query("post_id")

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

// DeleteComment 删除评论
func (h *Handler) DeleteComment(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	if err := h.CommentService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Comment not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to delete comment", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
