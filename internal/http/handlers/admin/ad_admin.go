package admin

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAds 获取广告列表 (Admin)
func (h *Handler) GetAds(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	position := c.Query("position")
	activeOnly := c.Query("is_active") == "true"

	ads, total, err := h.AdService.ListAdmin(position, activeOnly, page, pageSize)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdPosition) {
			respondError(c, response.CodeBadRequest, "Invalid ad position", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch ads", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, ads, pagination)
}

// AdRequest 广告创建/更新请求
type AdRequest struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	AssetID  string `json:"asset_id"`
	LinkURL  string `json:"link_url"`
	Position string `json:"position"`
	Active   *bool  `json:"active"`
}

// bindAdInput 兼容 JSON 与 multipart 两种提交方式。
func (h *Handler) bindAdInput(c *gin.Context) (service.AdInput, bool) {
	if c.ContentType() == "multipart/form-data" {
		input := service.AdInput{
			Title:    c.PostForm("title"),
			LinkURL:  c.PostForm("link_url"),
			Position: c.PostForm("position"),
		}
		if raw := c.PostForm("active"); raw != "" {
			active := raw == "true" || raw == "1"
			input.Active = &active
		}
		file, err := c.FormFile("image")
		if err == nil && file != nil {
			result, uploadErr := h.UploadService.SaveFile(c.Request.Context(), file, constants.UploadSceneAd)
			if uploadErr != nil {
				respondError(c, response.CodeBadRequest, uploadErr.Error(), nil)
				return service.AdInput{}, false
			}
			input.ImageURL = result.URL
			input.AssetID = result.FileID
		}
		return input, true
	}

	var req AdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return service.AdInput{}, false
	}
	return service.AdInput{
		Title:    req.Title,
		ImageURL: req.ImageURL,
		AssetID:  req.AssetID,
		LinkURL:  req.LinkURL,
		Position: req.Position,
		Active:   req.Active,
	}, true
}

// CreateAd 创建广告
func (h *Handler) CreateAd(c *gin.Context) {
	input, ok := h.bindAdInput(c)
	if !ok {
		return
	}

	ad, err := h.AdService.Create(input)
	if err != nil {
		h.respondAdError(c, err)
		return
	}

	response.Success(c, ad)
}

// UpdateAd 更新广告
func (h *Handler) UpdateAd(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	input, ok := h.bindAdInput(c)
	if !ok {
		return
	}

	ad, err := h.AdService.Update(id, input)
	if err != nil {
		h.respondAdError(c, err)
		return
	}

	response.Success(c, ad)
}

// ToggleAdRequest 切换广告状态请求
type ToggleAdRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ToggleAd 启用/停用广告
func (h *Handler) ToggleAd(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	var req ToggleAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return
	}

	ad, err := h.AdService.ToggleActive(id, *req.Active)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Ad not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to update ad", err)
		return
	}

	response.Success(c, ad)
}

// DeleteAd 删除广告
func (h *Handler) DeleteAd(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	if err := h.AdService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Ad not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to delete ad", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondAdError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Ad not found", nil)
	case errors.Is(err, service.ErrMissingFields):
		respondError(c, response.CodeBadRequest, "Missing required fields", nil)
	case errors.Is(err, service.ErrAdImageRequired):
		respondError(c, response.CodeBadRequest, "Ad image is required", nil)
	case errors.Is(err, service.ErrInvalidAdPosition):
		respondError(c, response.CodeBadRequest, "Invalid ad position", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save ad", err)
	}
}
