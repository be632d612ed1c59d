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

// GetPosts 获取文章列表 (Admin)
func (h *Handler) GetPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	page, pageSize = normalizePagination(page, pageSize)
	categoryID := c.Query("category_id")
	search := c.Query("search")

	posts, total, err := h.PostService.ListAdmin(categoryID, search, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch posts", err)
		return
	}

	pagination := response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
	}
	response.SuccessWithPage(c, posts, pagination)
}

// GetPost 获取文章详情 (Admin)
func (h *Handler) GetPost(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	post, err := h.PostService.GetByID(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to fetch post", err)
		return
	}

	response.Success(c, post)
}

// PostRequest 文章创建/更新请求
type PostRequest struct {
	Title         string   `json:"title"`
	Excerpt       string   `json:"excerpt"`
	Content       string   `json:"content"`
	Category      string   `json:"category"`
	Author        string   `json:"author"`
	Tags          []string `json:"tags"`
	CoverImageURL string   `json:"cover_image_url"`
	CoverImageID  string   `json:"cover_image_id"`
	Featured      *bool    `json:"featured"`
	Published     *bool    `json:"published"`
}

// bindPostInput 兼容 JSON 与 multipart 两种提交方式。
// multipart 提交时封面文件随表单一起上传。
func (h *Handler) bindPostInput(c *gin.Context) (service.CreatePostInput, bool) {
	contentType := c.ContentType()
	if contentType == "multipart/form-data" {
		input := service.CreatePostInput{
			Title:        c.PostForm("title"),
			Excerpt:      c.PostForm("excerpt"),
			Content:      c.PostForm("content"),
			CategoryName: c.PostForm("category"),
			Author:       c.PostForm("author"),
			Tags:         splitTags(c.PostForm("tags")),
		}
		if raw := c.PostForm("featured"); raw != "" {
			featured := raw == "true" || raw == "1"
			input.Featured = &featured
		}
		if raw := c.PostForm("published"); raw != "" {
			published := raw == "true" || raw == "1"
			input.Published = &published
		}
		file, err := c.FormFile("cover_image")
		if err == nil && file != nil {
			result, uploadErr := h.UploadService.SaveFile(c.Request.Context(), file, constants.UploadSceneBlogCover)
			if uploadErr != nil {
				respondError(c, response.CodeBadRequest, uploadErr.Error(), nil)
				return service.CreatePostInput{}, false
			}
			input.CoverImageURL = result.URL
			input.CoverImageID = result.FileID
		}
		return input, true
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "Invalid request", err)
		return service.CreatePostInput{}, false
	}
	return service.CreatePostInput{
		Title:         req.Title,
		Excerpt:       req.Excerpt,
		Content:       req.Content,
		CategoryName:  req.Category,
		Author:        req.Author,
		Tags:          req.Tags,
		CoverImageURL: req.CoverImageURL,
		CoverImageID:  req.CoverImageID,
		Featured:      req.Featured,
		Published:     req.Published,
	}, true
}

// CreatePost 创建文章
func (h *Handler) CreatePost(c *gin.Context) {
	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.PostService.Create(input)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, post)
}

// UpdatePost 更新文章
func (h *Handler) UpdatePost(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	input, ok := h.bindPostInput(c)
	if !ok {
		return
	}

	post, err := h.PostService.Update(id, input)
	if err != nil {
		h.respondPostError(c, err)
		return
	}

	response.Success(c, post)
}

// DeletePost 删除文章
func (h *Handler) DeletePost(c *gin.Context) {
	id := c.Param("id")
	if strings.TrimSpace(id) == "" {
		respondError(c, response.CodeBadRequest, "Invalid request", nil)
		return
	}

	if err := h.PostService.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			respondError(c, response.CodeNotFound, "Post not found", nil)
			return
		}
		respondError(c, response.CodeInternal, "Failed to delete post", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}

func (h *Handler) respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(c, response.CodeNotFound, "Post not found", nil)
	case errors.Is(err, service.ErrMissingFields):
		respondError(c, response.CodeBadRequest, "Missing required fields", nil)
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, response.CodeBadRequest, "Category not found", nil)
	case errors.Is(err, service.ErrSlugExists):
		respondError(c, response.CodeBadRequest, "A post with the same title already exists", nil)
	default:
		respondError(c, response.CodeInternal, "Failed to save post", err)
	}
}

func splitTags(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
	}
	return tags
}
