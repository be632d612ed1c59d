package public

import (
	"errors"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscribeRequest 订阅请求
type SubscribeRequest struct {
	Email string `json:"email" binding:"required"`
}

// SubscribeNewsletter 订阅邮件列表
func (h *Handler) SubscribeNewsletter(c *gin.Context) {
	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	if err := h.NewsletterService.Subscribe(c.Request.Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrNewsletterDisabled):
			respondError(c, response.CodeInternal, "Newsletter is not available", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to subscribe", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Subscribed", nil)
}
