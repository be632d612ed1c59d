package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"gorm.io/gorm"
)

// StringArray 字符串数组类型，JSON 编码存储，用于 tags
type StringArray []string

// Value 实现 driver.Valuer 接口
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan 实现 sql.Scanner 接口
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		if str, isStr := value.(string); isStr {
			bytes = []byte(str)
		} else {
			return nil
		}
	}
	return json.Unmarshal(bytes, s)
}

// Post 文章表
type Post struct {
	ID            uint           `gorm:"primarykey" json:"id"`                               // 主键
	Slug          string         `gorm:"type:varchar(200);uniqueIndex;not null" json:"slug"` // 唯一标识（由标题生成）
	Title         string         `gorm:"type:varchar(300);not null" json:"title"`            // 标题
	Excerpt       string         `gorm:"type:varchar(1000);not null" json:"excerpt"`         // 摘要
	Content       string         `gorm:"type:text" json:"content,omitempty"`                 // 正文（公开列表不返回）
	Author        string         `gorm:"type:varchar(120);not null" json:"author"`           // 作者署名
	CoverImageURL string         `gorm:"type:varchar(500)" json:"cover_image_url"`           // 封面图地址
	CoverImageID  string         `gorm:"type:varchar(200)" json:"cover_image_id"`            // 资产托管方文件 ID，删除时回收用
	Tags          StringArray    `gorm:"type:json" json:"tags"`                              // 标签
	Featured      bool           `gorm:"default:false" json:"featured"`                      // 是否置顶推荐
	Published     bool           `gorm:"default:false;index" json:"published"`               // 是否发布
	Likes         int64          `gorm:"not null;default:0" json:"likes"`                    // 点赞数
	CategoryID    uint           `gorm:"not null;index" json:"category_id"`                  // 所属分类
	Category      *Category      `gorm:"foreignKey:CategoryID" json:"category,omitempty"`    // 分类关联
	Comments      []Comment      `gorm:"foreignKey:PostID" json:"comments,omitempty"`        // 评论关联
	CommentCount  int64          `gorm:"-" json:"comment_count"`                             // 评论数（查询时填充）
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`                            // 创建时间
	UpdatedAt     time.Time      `json:"updated_at"`                                         // 更新时间
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`                                     // 软删除时间
}

// TableName 指定表名
func (Post) TableName() string {
	return "posts"
}
