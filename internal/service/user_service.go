package service

import (
	"strings"
	"time"

	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var allowedUserRoles = map[string]struct{}{
	constants.RoleAdmin:      {},
	constants.RoleSuperAdmin: {},
}

// UserService 后台用户管理服务，仅超级管理员可用
type UserService struct {
	cfg  *config.Config
	repo repository.UserRepository
}

// NewUserService 创建用户管理服务
func NewUserService(cfg *config.Config, repo repository.UserRepository) *UserService {
	return &UserService{cfg: cfg, repo: repo}
}

// UserInput 创建/更新用户输入
type UserInput struct {
	Name     string
	Email    string
	Role     string
	Password string // 为空时创建使用默认密码，更新保持原密码
}

// List 用户列表
func (s *UserService) List(keyword, role string, page, pageSize int) ([]models.User, int64, error) {
	return s.repo.List(repository.UserListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  keyword,
		Role:     role,
	})
}

// Create 创建用户，未指定密码时使用默认密码并要求首登修改
func (s *UserService) Create(input UserInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = constants.RoleAdmin
	}
	if !isAllowedUserRole(role) {
		return nil, ErrInvalidRole
	}

	count, err := s.repo.CountByEmail(email, nil)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	password := input.Password
	passwordChanged := password != ""
	if password == "" {
		password = constants.DefaultAdminPassword
	} else if err := validatePassword(s.cfg.Security.PasswordPolicy, password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:            name,
		Email:           email,
		PasswordHash:    string(hash),
		Role:            role,
		PasswordChanged: passwordChanged,
	}
	if err := s.repo.Create(&user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update 更新用户资料，传入密码时重置并失效既有会话
func (s *UserService) Update(id string, input UserInput) (*models.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	role := strings.TrimSpace(input.Role)
	if role == "" {
		role = user.Role
	}
	if !isAllowedUserRole(role) {
		return nil, ErrInvalidRole
	}

	count, err := s.repo.CountByEmail(email, &id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailExists
	}

	user.Name = name
	user.Email = email
	user.Role = role

	if input.Password != "" {
		if err := validatePassword(s.cfg.Security.PasswordPolicy, input.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), constants.BcryptCost)
		if err != nil {
			return nil, err
		}
		now := time.Now()
		user.PasswordHash = string(hash)
		user.PasswordChanged = input.Password != constants.DefaultAdminPassword
		user.TokenVersion++
		user.TokenInvalidBefore = &now
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete 删除用户，不允许删除当前登录账号
func (s *UserService) Delete(id string, actorID uint) error {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if user.ID == actorID {
		return ErrSelfDelete
	}
	return s.repo.Delete(id)
}

func isAllowedUserRole(role string) bool {
	_, ok := allowedUserRoles[role]
	return ok
}
