package public

import (
	"errors"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// ForgotPasswordRequest 找回密码请求
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// ForgotPassword 请求发送密码重置邮件
// 无论邮箱是否存在都返回相同提示，避免账号枚举。
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	if err := h.AuthService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrInvalidEmail) {
			respondError(c, response.CodeBadRequest, "Invalid email address", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to process request", err)
		return
	}

	response.SuccessWithMsg(c, "If that email exists, a reset link has been sent", nil)
}

// ResetPasswordRequest 重置密码请求
type ResetPasswordRequest struct {
	Token    string `json:"token" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ResetPassword 使用重置令牌设置新密码
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	if err := h.AuthService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrResetTokenInvalid):
			respondError(c, response.CodeBadRequest, "Reset link is invalid or has expired", nil)
		case errors.Is(err, service.ErrWeakPassword):
			respondError(c, response.CodeBadRequest, err.Error(), nil)
		default:
			respondError(c, response.CodeInternal, "Failed to reset password", err)
		}
		return
	}

	response.SuccessWithMsg(c, "Password has been reset", nil)
}
