package public

import (
	"errors"

	"github.com/sparkzonn-blog/internal/http/response"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
)

// GetAds 获取启用中的广告，可按位置过滤
func (h *Handler) GetAds(c *gin.Context) {
	position := c.Query("position")

	ads, err := h.AdService.ListPublic(position)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAdPosition) {
			respondError(c, response.CodeBadRequest, "Invalid ad position", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch ads", err)
		return
	}

	response.Success(c, ads)
}
