package service

import (
	"strings"

	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/repository"
)

var allowedAdPositions = map[string]struct{}{
	constants.AdPositionHeader:  {},
	constants.AdPositionSidebar: {},
	constants.AdPositionFooter:  {},
	constants.AdPositionInline:  {},
}

// AdService 广告业务服务
type AdService struct {
	repo    repository.AdRepository
	cleaner AssetCleaner
}

// NewAdService 创建广告服务
func NewAdService(repo repository.AdRepository, cleaner AssetCleaner) *AdService {
	return &AdService{repo: repo, cleaner: cleaner}
}

// AdInput 创建/更新广告输入
type AdInput struct {
	Title    string
	ImageURL string
	AssetID  string
	LinkURL  string
	Position string
	Active   *bool
}

// ListPublic 获取公开的启用广告，可按位置过滤
func (s *AdService) ListPublic(position string) ([]models.Ad, error) {
	if position != "" && !isAllowedAdPosition(position) {
		return nil, ErrInvalidAdPosition
	}
	ads, _, err := s.repo.List(repository.AdListFilter{
		Position:   position,
		ActiveOnly: true,
		OrderBy:    "created_at DESC",
	})
	return ads, err
}

// ListAdmin 获取后台广告列表
func (s *AdService) ListAdmin(position string, activeOnly bool, page, pageSize int) ([]models.Ad, int64, error) {
	if position != "" && !isAllowedAdPosition(position) {
		return nil, 0, ErrInvalidAdPosition
	}
	return s.repo.List(repository.AdListFilter{
		Page:       page,
		PageSize:   pageSize,
		Position:   position,
		ActiveOnly: activeOnly,
	})
}

// Create 创建广告，图片必填
func (s *AdService) Create(input AdInput) (*models.Ad, error) {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.LinkURL) == "" {
		s.scheduleCleanup(input.AssetID, "ad_create_invalid")
		return nil, ErrMissingFields
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return nil, ErrAdImageRequired
	}
	position := strings.ToLower(strings.TrimSpace(input.Position))
	if !isAllowedAdPosition(position) {
		s.scheduleCleanup(input.AssetID, "ad_create_invalid")
		return nil, ErrInvalidAdPosition
	}

	active := true
	if input.Active != nil {
		active = *input.Active
	}

	ad := models.Ad{
		Title:    strings.TrimSpace(input.Title),
		ImageURL: input.ImageURL,
		AssetID:  input.AssetID,
		LinkURL:  strings.TrimSpace(input.LinkURL),
		Position: position,
		Active:   active,
	}
	if err := s.repo.Create(&ad); err != nil {
		s.scheduleCleanup(input.AssetID, "ad_create_failed")
		return nil, err
	}
	return &ad, nil
}

// Update 更新广告，传入新图片时回收旧图
func (s *AdService) Update(id string, input AdInput) (*models.Ad, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		s.scheduleCleanup(input.AssetID, "ad_update_failed")
		return nil, err
	}
	if ad == nil {
		s.scheduleCleanup(input.AssetID, "ad_update_missing")
		return nil, ErrNotFound
	}

	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.LinkURL) == "" {
		s.scheduleCleanup(input.AssetID, "ad_update_invalid")
		return nil, ErrMissingFields
	}
	position := strings.ToLower(strings.TrimSpace(input.Position))
	if !isAllowedAdPosition(position) {
		s.scheduleCleanup(input.AssetID, "ad_update_invalid")
		return nil, ErrInvalidAdPosition
	}

	oldAssetID := ad.AssetID
	replacingImage := input.AssetID != "" && input.AssetID != oldAssetID

	ad.Title = strings.TrimSpace(input.Title)
	ad.LinkURL = strings.TrimSpace(input.LinkURL)
	ad.Position = position
	if replacingImage {
		ad.ImageURL = input.ImageURL
		ad.AssetID = input.AssetID
	}
	if input.Active != nil {
		ad.Active = *input.Active
	}

	if err := s.repo.Update(ad); err != nil {
		if replacingImage {
			s.scheduleCleanup(input.AssetID, "ad_update_failed")
		}
		return nil, err
	}
	if replacingImage {
		s.scheduleCleanup(oldAssetID, "ad_image_replaced")
	}
	return ad, nil
}

// ToggleActive 切换启用状态
func (s *AdService) ToggleActive(id string, active bool) (*models.Ad, error) {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if ad == nil {
		return nil, ErrNotFound
	}
	ad.Active = active
	if err := s.repo.Update(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

// Delete 删除广告并回收图片
func (s *AdService) Delete(id string) error {
	ad, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if ad == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.scheduleCleanup(ad.AssetID, "ad_deleted")
	return nil
}

func (s *AdService) scheduleCleanup(fileID, reason string) {
	sharedScheduleCleanup(s.cleaner, fileID, reason)
}

func isAllowedAdPosition(position string) bool {
	_, ok := allowedAdPositions[position]
	return ok
}
