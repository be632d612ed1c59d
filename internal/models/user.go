package models

import (
	"time"

	"gorm.io/gorm"
)

// User 后台用户表
type User struct {
	ID                  uint           `gorm:"primarykey" json:"id"`                                // 主键
	Name                string         `gorm:"type:varchar(120);not null" json:"name"`              // 显示名称
	Email               string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"` // 登录邮箱
	PasswordHash        string         `gorm:"not null" json:"-"`                                   // 密码哈希（不返回给前端）
	Role                string         `gorm:"type:varchar(30);not null;index" json:"role"`         // 角色（admin/super_admin）
	PasswordChanged     bool           `gorm:"not null;default:false" json:"password_changed"`      // 是否已修改初始密码
	TokenVersion        uint64         `gorm:"not null;default:0" json:"-"`                         // Token 版本（用于全量失效）
	TokenInvalidBefore  *time.Time     `gorm:"index" json:"-"`                                      // 该时间点前签发的 Token 失效
	ResetToken          *string        `gorm:"type:varchar(128);index" json:"-"`                    // 密码重置令牌
	ResetTokenExpiresAt *time.Time     `json:"-"`                                                   // 重置令牌过期时间
	LastLoginAt         *time.Time     `json:"last_login_at"`                                       // 最后登录时间
	CreatedAt           time.Time      `gorm:"index" json:"created_at"`                             // 创建时间
	UpdatedAt           time.Time      `json:"updated_at"`                                          // 更新时间
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`                                      // 软删除时间
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// IsSuper 是否超级管理员
func (u *User) IsSuper() bool {
	return u.Role == "super_admin"
}
