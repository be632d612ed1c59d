package models

import (
	"time"

	"gorm.io/gorm"
)

// Ad 广告位表
type Ad struct {
	ID        uint           `gorm:"primarykey" json:"id"`                            // 主键
	Title     string         `gorm:"type:varchar(200);not null" json:"title"`         // 广告标题
	ImageURL  string         `gorm:"type:varchar(500);not null" json:"image_url"`     // 广告图片地址
	AssetID   string         `gorm:"type:varchar(200)" json:"asset_id"`               // 资产托管方文件 ID，删除时回收用
	LinkURL   string         `gorm:"type:varchar(1000);not null" json:"link_url"`     // 跳转链接
	Position  string         `gorm:"type:varchar(30);not null;index" json:"position"` // 投放位置（header/sidebar/footer/inline）
	Active    bool           `gorm:"default:true;index" json:"active"`                // 是否启用
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                         // 创建时间
	UpdatedAt time.Time      `json:"updated_at"`                                      // 更新时间
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                  // 软删除时间
}

// TableName 指定表名
func (Ad) TableName() string {
	return "ads"
}
