package service

import (
	"strings"

	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/repository"

	"github.com/hibiken/asynq"
)

// AssetCleaner 资产回收队列入口
type AssetCleaner interface {
	EnqueueAssetCleanup(payload queue.AssetCleanupPayload, opts ...asynq.Option) error
}

// PostService 文章业务服务
type PostService struct {
	repo         repository.PostRepository
	categoryRepo repository.CategoryRepository
	cleaner      AssetCleaner
}

// NewPostService 创建文章服务
func NewPostService(repo repository.PostRepository, categoryRepo repository.CategoryRepository, cleaner AssetCleaner) *PostService {
	return &PostService{
		repo:         repo,
		categoryRepo: categoryRepo,
		cleaner:      cleaner,
	}
}

// CreatePostInput 创建/更新文章输入
// 封面图由调用方先上传，失败时本服务负责回收
type CreatePostInput struct {
	Title         string
	Excerpt       string
	Content       string
	CategoryName  string
	Author        string
	Tags          []string
	CoverImageURL string
	CoverImageID  string
	Featured      *bool
	Published     *bool
}

// ListPublic 获取公开文章列表，正文不随列表返回
func (s *PostService) ListPublic(categorySlug, search string, page, pageSize int) ([]models.Post, int64, error) {
	filter := repository.PostListFilter{
		Page:          page,
		PageSize:      pageSize,
		CategorySlug:  categorySlug,
		Search:        search,
		OnlyPublished: true,
		WithCategory:  true,
		OrderBy:       "posts.created_at DESC",
	}
	posts, total, err := s.repo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for i := range posts {
		posts[i].Content = ""
	}
	return posts, total, nil
}

// GetPublicBySlug 获取公开文章详情
func (s *PostService) GetPublicBySlug(slug string) (*models.Post, error) {
	post, err := s.repo.GetBySlug(slug, true)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// ListAdmin 获取后台文章列表
func (s *PostService) ListAdmin(categoryID, search string, page, pageSize int) ([]models.Post, int64, error) {
	filter := repository.PostListFilter{
		Page:         page,
		PageSize:     pageSize,
		CategoryID:   categoryID,
		Search:       search,
		WithCategory: true,
		OrderBy:      "posts.created_at DESC",
	}
	return s.repo.List(filter)
}

// GetByID 获取文章详情（后台）
func (s *PostService) GetByID(id string) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}

// Like 点赞并返回最新点赞数
func (s *PostService) Like(id string) (int64, error) {
	likes, err := s.repo.IncrementLikes(id)
	if err != nil {
		if isRecordNotFound(err) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return likes, nil
}

// Create 创建文章，分类按名称解析，slug 由标题生成
func (s *PostService) Create(input CreatePostInput) (*models.Post, error) {
	if err := validatePostInput(input, true); err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_create_invalid")
		return nil, err
	}

	category, err := s.categoryRepo.GetByName(strings.TrimSpace(input.CategoryName))
	if err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_create_failed")
		return nil, err
	}
	if category == nil {
		s.scheduleCleanup(input.CoverImageID, "post_create_invalid")
		return nil, ErrCategoryNotFound
	}

	slug := Slugify(input.Title)
	if slug == "" {
		s.scheduleCleanup(input.CoverImageID, "post_create_invalid")
		return nil, ErrMissingFields
	}
	count, err := s.repo.CountBySlug(slug, nil)
	if err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_create_failed")
		return nil, err
	}
	if count > 0 {
		s.scheduleCleanup(input.CoverImageID, "post_create_conflict")
		return nil, ErrSlugExists
	}

	published := false
	if input.Published != nil {
		published = *input.Published
	}
	featured := false
	if input.Featured != nil {
		featured = *input.Featured
	}

	post := models.Post{
		Slug:          slug,
		Title:         strings.TrimSpace(input.Title),
		Excerpt:       strings.TrimSpace(input.Excerpt),
		Content:       input.Content,
		Author:        strings.TrimSpace(input.Author),
		CoverImageURL: input.CoverImageURL,
		CoverImageID:  input.CoverImageID,
		Tags:          models.StringArray(input.Tags),
		Featured:      featured,
		Published:     published,
		CategoryID:    category.ID,
	}

	if err := s.repo.Create(&post); err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_create_failed")
		return nil, err
	}
	post.Category = category
	return &post, nil
}

// Update 更新文章，传入新封面时回收旧封面
func (s *PostService) Update(id string, input CreatePostInput) (*models.Post, error) {
	post, err := s.repo.GetByID(id)
	if err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_failed")
		return nil, err
	}
	if post == nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_missing")
		return nil, ErrNotFound
	}

	// 更新时作者可以不传，缺省保留原署名
	if err := validatePostInput(input, false); err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_invalid")
		return nil, err
	}

	category, err := s.categoryRepo.GetByName(strings.TrimSpace(input.CategoryName))
	if err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_failed")
		return nil, err
	}
	if category == nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_invalid")
		return nil, ErrCategoryNotFound
	}

	slug := Slugify(input.Title)
	if slug == "" {
		s.scheduleCleanup(input.CoverImageID, "post_update_invalid")
		return nil, ErrMissingFields
	}
	count, err := s.repo.CountBySlug(slug, &id)
	if err != nil {
		s.scheduleCleanup(input.CoverImageID, "post_update_failed")
		return nil, err
	}
	if count > 0 {
		s.scheduleCleanup(input.CoverImageID, "post_update_conflict")
		return nil, ErrSlugExists
	}

	oldCoverID := post.CoverImageID
	replacingCover := input.CoverImageID != "" && input.CoverImageID != oldCoverID

	post.Slug = slug
	post.Title = strings.TrimSpace(input.Title)
	post.Excerpt = strings.TrimSpace(input.Excerpt)
	post.Content = input.Content
	if author := strings.TrimSpace(input.Author); author != "" {
		post.Author = author
	}
	post.Tags = models.StringArray(input.Tags)
	post.CategoryID = category.ID
	if replacingCover {
		post.CoverImageURL = input.CoverImageURL
		post.CoverImageID = input.CoverImageID
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}
	if input.Published != nil {
		post.Published = *input.Published
	}

	if err := s.repo.Update(post); err != nil {
		if replacingCover {
			s.scheduleCleanup(input.CoverImageID, "post_update_failed")
		}
		return nil, err
	}
	if replacingCover {
		s.scheduleCleanup(oldCoverID, "post_cover_replaced")
	}
	post.Category = category
	return post, nil
}

// Delete 删除文章并回收封面
func (s *PostService) Delete(id string) error {
	post, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.scheduleCleanup(post.CoverImageID, "post_deleted")
	return nil
}

func (s *PostService) scheduleCleanup(fileID, reason string) {
	sharedScheduleCleanup(s.cleaner, fileID, reason)
}

// sharedScheduleCleanup 尽力而为地回收已上传资产，失败只记录日志
func sharedScheduleCleanup(cleaner AssetCleaner, fileID, reason string) {
	if cleaner == nil || strings.TrimSpace(fileID) == "" {
		return
	}
	if err := cleaner.EnqueueAssetCleanup(queue.AssetCleanupPayload{FileID: fileID, Reason: reason}); err != nil {
		logger.Warnw("asset_cleanup_enqueue_failed", "file_id", fileID, "reason", reason, "error", err)
	}
}

func validatePostInput(input CreatePostInput, requireAuthor bool) error {
	if strings.TrimSpace(input.Title) == "" ||
		strings.TrimSpace(input.Excerpt) == "" ||
		strings.TrimSpace(input.Content) == "" ||
		strings.TrimSpace(input.CategoryName) == "" {
		return ErrMissingFields
	}
	if requireAuthor && strings.TrimSpace(input.Author) == "" {
		return ErrMissingFields
	}
	return nil
}
