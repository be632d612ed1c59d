package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/sparkzonn-blog/internal/cache"
	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/crypto/bcrypt"
)

// ResetEmailEnqueuer 密码重置邮件队列入口
type ResetEmailEnqueuer interface {
	EnqueuePasswordResetEmail(payload queue.PasswordResetEmailPayload, opts ...asynq.Option) error
}

// AuthService 认证服务
type AuthService struct {
	cfg      *config.Config
	userRepo repository.UserRepository
	enqueuer ResetEmailEnqueuer
}

// NewAuthService 创建认证服务实例
func NewAuthService(cfg *config.Config, userRepo repository.UserRepository, enqueuer ResetEmailEnqueuer) *AuthService {
	return &AuthService{
		cfg:      cfg,
		userRepo: userRepo,
		enqueuer: enqueuer,
	}
}

// HashPassword 使用 bcrypt 加密密码
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword 验证密码
func (s *AuthService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// ValidatePassword 校验密码是否符合策略
func (s *AuthService) ValidatePassword(password string) error {
	if s == nil || s.cfg == nil {
		return nil
	}
	return validatePassword(s.cfg.Security.PasswordPolicy, password)
}

// JWTClaims JWT 声明
type JWTClaims struct {
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
	Role         string `json:"role"`
	TokenVersion uint64 `json:"token_version"`
	jwt.RegisteredClaims
}

// GenerateJWT 生成 JWT Token
func (s *AuthService) GenerateJWT(user *models.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(time.Duration(s.cfg.JWT.ExpireHours) * time.Hour)

	claims := JWTClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		TokenVersion: user.TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.cfg.JWT.SecretKey))
	if err != nil {
		return "", time.Time{}, err
	}

	return tokenString, expiresAt, nil
}

// ParseJWT 解析 JWT Token
func (s *AuthService) ParseJWT(tokenString string) (*JWTClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	token, err := parser.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.SecretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*JWTClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, errors.New("无效的 token")
}

// Login 后台用户登录
func (s *AuthService) Login(email, password string) (*models.User, string, time.Time, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if user == nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	if err := s.VerifyPassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, "", time.Time{}, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))

	return user, token, expiresAt, nil
}

// UpdateProfile 更新当前用户资料
func (s *AuthService) UpdateProfile(userID uint, name, email string) (*models.User, error) {
	user, err := s.userRepo.GetByID(uintToID(userID))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return nil, ErrMissingFields
	}

	if email != user.Email {
		id := uintToID(userID)
		count, err := s.userRepo.CountByEmail(email, &id)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrEmailExists
		}
	}

	user.Name = name
	user.Email = email
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return user, nil
}

// ChangePassword 修改当前用户密码，旧会话全部失效
func (s *AuthService) ChangePassword(userID uint, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(uintToID(userID))
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	if err := s.VerifyPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidPassword
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hashedPassword
	user.PasswordChanged = true
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

// ForgotPassword 发起密码重置。
// 无论邮箱是否存在都静默成功，避免探测注册邮箱。
func (s *AuthService) ForgotPassword(email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil
	}

	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		logger.Infow("password_reset_requested_for_unknown_email", "email", email)
		return nil
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}
	expiresAt := time.Now().Add(constants.ResetTokenExpireMinutes * time.Minute)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt
	if err := s.userRepo.Update(user); err != nil {
		return err
	}

	if s.enqueuer != nil {
		if err := s.enqueuer.EnqueuePasswordResetEmail(queue.PasswordResetEmailPayload{
			UserID: user.ID,
			Email:  user.Email,
			Token:  token,
		}); err != nil {
			logger.Errorw("password_reset_email_enqueue_failed", "user_id", user.ID, "error", err)
			return err
		}
	}
	return nil
}

// ResetPassword 使用重置令牌设置新密码
func (s *AuthService) ResetPassword(token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrResetTokenInvalid
	}

	user, err := s.userRepo.GetByResetToken(token)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrResetTokenInvalid
	}
	if user.ResetTokenExpiresAt == nil || time.Now().After(*user.ResetTokenExpiresAt) {
		return ErrResetTokenInvalid
	}

	if err := s.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := s.HashPassword(newPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	user.PasswordHash = hashedPassword
	user.PasswordChanged = true
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	user.TokenVersion++
	user.TokenInvalidBefore = &now
	if err := s.userRepo.Update(user); err != nil {
		return err
	}
	_ = cache.SetUserAuthState(context.Background(), cache.BuildUserAuthState(user))
	return nil
}

func generateResetToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

func uintToID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
