package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/repository"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCommentServiceTest(t *testing.T) (*CommentService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate comment tables failed: %v", err)
	}
	svc := NewCommentService(repository.NewCommentRepository(db), repository.NewPostRepository(db))
	return svc, db
}

func seedCommentPost(t *testing.T, db *gorm.DB, slug string) *models.Post {
	t.Helper()
	category := models.Category{Name: "Comments " + slug, Slug: "comments-" + slug}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post := models.Post{
		Slug:       slug,
		Title:      "t",
		Excerpt:    "e",
		Content:    "c",
		Author:     "a",
		Published:  true,
		CategoryID: category.ID,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	return &post
}

func TestCommentCreateTrimsFields(t *testing.T) {
	svc, db := setupCommentServiceTest(t)
	post := seedCommentPost(t, db, "comment-target")

	comment, err := svc.Create(CreateCommentInput{
		PostID:   uintToID(post.ID),
		UserName: "  reader  ",
		Content:  "  nice post  ",
	})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if comment.UserName != "reader" || comment.Content != "nice post" {
		t.Fatalf("fields not trimmed: %+v", comment)
	}
	if comment.PostID != post.ID {
		t.Fatalf("post id want %d got %d", post.ID, comment.PostID)
	}
}

func TestCommentCreateMissingPost(t *testing.T) {
	svc, _ := setupCommentServiceTest(t)

	_, err := svc.Create(CreateCommentInput{PostID: "99999", UserName: "x", Content: "y"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}

	_, err = svc.Create(CreateCommentInput{PostID: "", UserName: "x", Content: "y"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields got %v", err)
	}
}

func TestCommentListByPost(t *testing.T) {
	svc, db := setupCommentServiceTest(t)
	post := seedCommentPost(t, db, "comment-list")
	other := seedCommentPost(t, db, "comment-other")

	for _, name := range []string{"alice", "bob"} {
		if _, err := svc.Create(CreateCommentInput{PostID: uintToID(post.ID), UserName: name, Content: "hi"}); err != nil {
			t.Fatalf("create comment failed: %v", err)
		}
	}
	if _, err := svc.Create(CreateCommentInput{PostID: uintToID(other.ID), UserName: "carol", Content: "hi"}); err != nil {
		t.Fatalf("create other comment failed: %v", err)
	}

	comments, total, err := svc.ListByPost(uintToID(post.ID), 1, 10)
	if err != nil {
		t.Fatalf("list comments failed: %v", err)
	}
	if total != 2 || len(comments) != 2 {
		t.Fatalf("want 2 comments got total=%d len=%d", total, len(comments))
	}
}

func TestCommentDelete(t *testing.T) {
	svc, db := setupCommentServiceTest(t)
	post := seedCommentPost(t, db, "comment-delete")

	comment, err := svc.Create(CreateCommentInput{PostID: uintToID(post.ID), UserName: "x", Content: "bye"})
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	if err := svc.Delete(uintToID(comment.ID)); err != nil {
		t.Fatalf("delete comment failed: %v", err)
	}
	if err := svc.Delete(uintToID(comment.ID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete want ErrNotFound got %v", err)
	}
}
