package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetUsers 获取用户列表 (Admin)
func (h *Handler) GetUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	keyword := c.Query("keyword")
	role := c.Query("role")

	users, total, err := h.UserService.List(keyword, role, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch users", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, users, pagination)
}

// UserRequest 用户创建/更新请求
type UserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// CreateUser 创建用户
func (h *Handler) CreateUser(c *gin.Context) {
	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	user, err := h.UserService.Create(service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	response.Success(c, user)
}

// UpdateUser 更新用户
func (h *Handler) UpdateUser(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	var req UserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	user, err := h.UserService.Update(id, service.UserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		Password: req.Password,
	})
	if err != nil {
		h.respondUserError(c, err)
		return
	}

	response.Success(c, user)
}

// DeleteUser 删除用户
func (h *Handler) DeleteUser(c *gin.Context) {
	actorID, ok := getUserID(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	if err := h.UserService.Delete(id, actorID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			respondError(c, response.CodeNotFound, "User not found", nil)
		case errors.Is(err, service.ErrSelfDelete):
			respondError(c, response.CodeBadRequest, "Cannot delete your own account", nil)
		default:
			respondError(c, response.CodeInternal, "Failed to delete user", err)
		}
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "User not found", nil)
	case errors.Is(err, service.ErrMissingFields):
		respondError(c, response.CodeBadRequest, "Missing required fields", nil)
	case errors.Is(err, service.ErrEmailExists):
		respondError(c, response.CodeBadRequest, "Email already in use", nil)
	case errors.Is(err, service.ErrInvalidEmail):
		respondError(c, response.CodeBadRequest, "Invalid email address", nil)
	case errors.Is(err, service.ErrInvalidRole):
		respondError(c, response.CodeBadRequest, "Invalid role", nil)
	case errors.Is(err, service.ErrWeakPassword):
		respondError(c, response.CodeBadRequest, err.Error(), nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save user", err)
	}
}
