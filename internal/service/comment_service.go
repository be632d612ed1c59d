package service

import (
	"strings"

	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/repository"
)

// CommentService 评论业务服务
type CommentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
}

// NewCommentService 创建评论服务
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo}
}

// CreateCommentInput 创建评论输入
type CreateCommentInput struct {
	PostID   string
	UserName string
	Content  string
}

// Create 创建评论，文章必须存在
func (s *CommentService) Create(input CreateCommentInput) (*models.Comment, error) {
	if strings.TrimSpace(input.PostID) == "" ||
		strings.TrimSpace(input.UserName) == "" ||
		strings.TrimSpace(input.Content) == "" {
		return nil, ErrMissingFields
	}

	post, err := s.postRepo.GetByID(input.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}

	comment := models.Comment{
		PostID:   post.ID,
		UserName: strings.TrimSpace(input.UserName),
		Content:  strings.TrimSpace(input.Content),
	}
	if err := s.repo.Create(&comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListByPost 获取某文章的评论列表
func (s *CommentService) ListByPost(postID string, page, pageSize int) ([]models.Comment, int64, error) {
	return s.repo.List(repository.CommentListFilter{
		Page:     page,
		PageSize: pageSize,
		PostID:   postID,
	})
}

// Delete 删除评论（后台）
func (s *CommentService) Delete(id string) error {
	comment, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrNotFound
	}
	return s.repo.Delete(id)
}
