package repository

import (
	"errors"

	"github.com/sparkzonn-blog/internal/models"

	"gorm.io/gorm"
)

// AdRepository 广告数据访问接口
type AdRepository interface {
	List(filter AdListFilter) ([]models.Ad, int64, error)
	GetByID(id string) (*models.Ad, error)
	Create(ad *models.Ad) error
	Update(ad *models.Ad) error
	Delete(id string) error
}

// GormAdRepository GORM 实现
type GormAdRepository struct {
	db *gorm.DB
}

// NewAdRepository 创建广告仓库
func NewAdRepository(db *gorm.DB) *GormAdRepository {
	return &GormAdRepository{db: db}
}

// List 广告列表
func (r *GormAdRepository) List(filter AdListFilter) ([]models.Ad, int64, error) {
	var ads []models.Ad
	query := r.db.Model(&models.Ad{})

	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.Position != "" {
		query = query.Where("position = ?", filter.Position)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "created_at DESC"
	}

	if err := query.Order(orderBy).Find(&ads).Error; err != nil {
		return nil, 0, err
	}
	return ads, total, nil
}

// GetByID 根据 ID 获取广告
func (r *GormAdRepository) GetByID(id string) (*models.Ad, error) {
	var ad models.Ad
	if err := r.db.First(&ad, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &ad, nil
}

// Create 创建广告
func (r *GormAdRepository) Create(ad *models.Ad) error {
	return r.db.Create(ad).Error
}

// Update 更新广告
func (r *GormAdRepository) Update(ad *models.Ad) error {
	return r.db.Save(ad).Error
}

// Delete 删除广告
func (r *GormAdRepository) Delete(id string) error {
	return r.db.Delete(&models.Ad{}, "id = ?", id).Error
}
