package admin

import (
	"errors"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// EmailTestRequest 测试邮件发送请求
type EmailTestRequest struct {
	ToEmail string `json:"to_email" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// TestEmail 发送测试邮件，验证 SMTP 配置是否可用
func (h *Handler) TestEmail(c *gin.Context) {
	var req EmailTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	err := h.EmailService.SendCustomEmail(strings.TrimSpace(req.ToEmail), req.Subject, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
		case errors.Is(err, service.ErrEmailServiceDisabled), errors.Is(err, service.ErrEmailServiceNotConfigured):
			respondError(c, response.CodeBadRequest, "Email service is not configured", nil)
		case errors.Is(err, service.ErrEmailRecipientRejected):
			respondError(c, response.CodeBadRequest, "Recipient address rejected", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to send test email", err)
		}
		return
	}

	response.Success(c, gin.H{"sent": true})
}
