package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment 文章评论表
type Comment struct {
	ID        uint           `gorm:"primarykey" json:"id"`                      // 主键
	PostID    uint           `gorm:"not null;index" json:"post_id"`             // 所属文章
	UserName  string         `gorm:"type:varchar(120);not null" json:"user_name"` // 访客昵称
	Content   string         `gorm:"type:varchar(2000);not null" json:"content"`  // 评论内容
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                   // 创建时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                            // 软删除时间
}

// TableName 指定表名
func (Comment) TableName() string {
	return "comments"
}
