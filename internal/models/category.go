package models

import (
	"time"

	"gorm.io/gorm"
)

// Category 文章分类表
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                               // 主键
	Name        string         `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"` // 分类名称
	Slug        string         `gorm:"type:varchar(160);uniqueIndex;not null" json:"slug"` // 唯一标识
	Description string         `gorm:"type:varchar(500)" json:"description"`               // 描述
	PostCount   int64          `gorm:"-" json:"post_count"`                                // 文章数（查询时填充）
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt   time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}
