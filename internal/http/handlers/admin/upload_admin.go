package admin

import (
	"errors"

	"github.com/sparkzonn-blog/internal/assets"
	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 文件上传
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "File is required", nil)
		return
	}
	scene := c.DefaultPostForm("scene", constants.UploadSceneCommon)

	result, err := h.UploadService.SaveFile(c.Request.Context(), file, scene)
	if err != nil {
		if errors.Is(err, assets.ErrNotConfigured) {
			respondError(c, response.CodeInternal, "Asset storage is not configured", err)
			return
		}
		respondError(c, response.CodeBadRequest, err.Error(), nil)
		return
	}

	response.Success(c, gin.H{
		"url":      result.URL,
		"file_id":  result.FileID,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
