package models

import (
	"strings"

	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认超级管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&User{}).Count(&count)

	// 如果已有用户，确保默认账号保留超级管理员角色
	if count > 0 {
		if email != "" {
			if err := DB.Model(&User{}).Where("email = ?", email).
				Update("role", constants.RoleSuperAdmin).Error; err != nil {
				logger.Warnw("ensure_default_admin_role_failed", "error", err)
			}
		}
		return nil
	}

	if email == "" {
		email = "admin@sparkzonn.com"
	}
	if password == "" {
		password = constants.DefaultAdminPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return err
	}

	user := User{
		Name:            "Admin",
		Email:           strings.ToLower(strings.TrimSpace(email)),
		PasswordHash:    string(hash),
		Role:            constants.RoleSuperAdmin,
		PasswordChanged: password != constants.DefaultAdminPassword,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == constants.DefaultAdminPassword {
		logger.Warnw("default_admin_created_with_default_password", "email", user.Email)
		logger.Warnw("default_admin_password_change_required", "email", user.Email)
	} else {
		logger.Warnw("default_admin_created", "email", user.Email, "password_hidden", true)
	}

	return nil
}
