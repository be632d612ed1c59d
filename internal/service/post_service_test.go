package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

type recordingCleaner struct {
	payloads []queue.AssetCleanupPayload
}

func (c *recordingCleaner) EnqueueAssetCleanup(payload queue.AssetCleanupPayload, _ ...asynq.Option) error {
	c.payloads = append(c.payloads, payload)
	return nil
}

func setupPostServiceTest(t *testing.T) (*PostService, *recordingCleaner, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrate post tables failed: %v", err)
	}
	cleaner := &recordingCleaner{}
	svc := NewPostService(repository.NewPostRepository(db), repository.NewCategoryRepository(db), cleaner)
	return svc, cleaner, db
}

func seedServiceCategory(t *testing.T, db *gorm.DB, name, slug string) *models.Category {
	t.Helper()
	category := &models.Category{Name: name, Slug: slug}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	return category
}

func boolPtr(v bool) *bool {
	return &v
}

func TestCreatePostResolvesCategoryByName(t *testing.T) {
	svc, cleaner, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	post, err := svc.Create(CreatePostInput{
		Title:        "Hello Sparkzonn",
		Excerpt:      "intro",
		Content:      "body",
		CategoryName: "Engineering",
		Author:       "alice",
		Tags:         []string{"go", "blog"},
		Published:    boolPtr(true),
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if post.Slug != "hello-sparkzonn" {
		t.Fatalf("slug want hello-sparkzonn got %q", post.Slug)
	}
	if post.Category == nil || post.Category.Slug != "engineering" {
		t.Fatalf("category not resolved: %+v", post.Category)
	}
	if !post.Published {
		t.Fatal("post should be published")
	}
	if len(cleaner.payloads) != 0 {
		t.Fatalf("unexpected cleanup payloads: %v", cleaner.payloads)
	}
}

func TestCreatePostUnknownCategorySchedulesCleanup(t *testing.T) {
	svc, cleaner, _ := setupPostServiceTest(t)

	_, err := svc.Create(CreatePostInput{
		Title:        "Orphan",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Missing",
		Author:       "alice",
		CoverImageID: "file-123",
	})
	if !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("want ErrCategoryNotFound got %v", err)
	}
	if len(cleaner.payloads) != 1 || cleaner.payloads[0].FileID != "file-123" {
		t.Fatalf("cover cleanup not scheduled: %v", cleaner.payloads)
	}
}

func TestCreatePostSlugConflict(t *testing.T) {
	svc, cleaner, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	if _, err := svc.Create(CreatePostInput{
		Title:        "Same Title",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
	}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	_, err := svc.Create(CreatePostInput{
		Title:        "Same Title",
		Excerpt:      "e2",
		Content:      "c2",
		CategoryName: "Engineering",
		Author:       "bob",
		CoverImageID: "file-dup",
	})
	if !errors.Is(err, ErrSlugExists) {
		t.Fatalf("want ErrSlugExists got %v", err)
	}
	if len(cleaner.payloads) != 1 || cleaner.payloads[0].Reason != "post_create_conflict" {
		t.Fatalf("conflict cleanup not scheduled: %v", cleaner.payloads)
	}
}

func TestCreatePostMissingFields(t *testing.T) {
	svc, _, _ := setupPostServiceTest(t)

	_, err := svc.Create(CreatePostInput{Title: "Only Title"})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields got %v", err)
	}
}

func TestCreatePostTitleWithoutSlugChars(t *testing.T) {
	svc, _, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	_, err := svc.Create(CreatePostInput{
		Title:        "!!!",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields got %v", err)
	}
}

func TestUpdatePostTitleWithoutSlugChars(t *testing.T) {
	svc, _, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	post, err := svc.Create(CreatePostInput{
		Title:        "Readable Title",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	_, err = svc.Update(uintToID(post.ID), CreatePostInput{
		Title:        "!!!",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
	})
	if !errors.Is(err, ErrMissingFields) {
		t.Fatalf("want ErrMissingFields got %v", err)
	}

	kept, err := svc.GetByID(uintToID(post.ID))
	if err != nil {
		t.Fatalf("reload post failed: %v", err)
	}
	if kept.Slug != "readable-title" {
		t.Fatalf("slug want readable-title got %q", kept.Slug)
	}
}

func TestUpdatePostReplacingCoverReclaimsOldOne(t *testing.T) {
	svc, cleaner, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	post, err := svc.Create(CreatePostInput{
		Title:         "Cover Story",
		Excerpt:       "e",
		Content:       "c",
		CategoryName:  "Engineering",
		Author:        "alice",
		CoverImageURL: "https://cdn.example.com/old.png",
		CoverImageID:  "old-cover",
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	updated, err := svc.Update(uintToID(post.ID), CreatePostInput{
		Title:         "Cover Story",
		Excerpt:       "e",
		Content:       "c",
		CategoryName:  "Engineering",
		Author:        "alice",
		CoverImageURL: "https://cdn.example.com/new.png",
		CoverImageID:  "new-cover",
	})
	if err != nil {
		t.Fatalf("update post failed: %v", err)
	}
	if updated.CoverImageID != "new-cover" {
		t.Fatalf("cover not replaced: %q", updated.CoverImageID)
	}
	if len(cleaner.payloads) != 1 || cleaner.payloads[0].FileID != "old-cover" || cleaner.payloads[0].Reason != "post_cover_replaced" {
		t.Fatalf("old cover cleanup not scheduled: %v", cleaner.payloads)
	}
}

func TestUpdatePostKeepsAuthorWhenOmitted(t *testing.T) {
	svc, _, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	post, err := svc.Create(CreatePostInput{
		Title:        "Authored Post",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	updated, err := svc.Update(uintToID(post.ID), CreatePostInput{
		Title:        "Authored Post",
		Excerpt:      "e2",
		Content:      "c2",
		CategoryName: "Engineering",
	})
	if err != nil {
		t.Fatalf("update without author failed: %v", err)
	}
	if updated.Author != "alice" {
		t.Fatalf("author should be kept, got %q", updated.Author)
	}
}

func TestDeletePostReclaimsCover(t *testing.T) {
	svc, cleaner, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	post, err := svc.Create(CreatePostInput{
		Title:        "Short Lived",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
		CoverImageID: "cover-1",
	})
	if err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := svc.Delete(uintToID(post.ID)); err != nil {
		t.Fatalf("delete post failed: %v", err)
	}
	if len(cleaner.payloads) != 1 || cleaner.payloads[0].Reason != "post_deleted" {
		t.Fatalf("cover cleanup not scheduled on delete: %v", cleaner.payloads)
	}
	if _, err := svc.GetByID(uintToID(post.ID)); !errors.Is(err, ErrNotFound) {
		t.Fatalf("post should be gone, got %v", err)
	}
}

func TestLikePostNotFound(t *testing.T) {
	svc, _, _ := setupPostServiceTest(t)

	if _, err := svc.Like("424242"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestListPublicStripsContent(t *testing.T) {
	svc, _, db := setupPostServiceTest(t)
	seedServiceCategory(t, db, "Engineering", "engineering")

	if _, err := svc.Create(CreatePostInput{
		Title:        "Visible",
		Excerpt:      "e",
		Content:      "long body",
		CategoryName: "Engineering",
		Author:       "alice",
		Published:    boolPtr(true),
	}); err != nil {
		t.Fatalf("create post failed: %v", err)
	}
	if _, err := svc.Create(CreatePostInput{
		Title:        "Draft Only",
		Excerpt:      "e",
		Content:      "c",
		CategoryName: "Engineering",
		Author:       "alice",
	}); err != nil {
		t.Fatalf("create draft failed: %v", err)
	}

	posts, total, err := svc.ListPublic("", "", 1, 10)
	if err != nil {
		t.Fatalf("list public failed: %v", err)
	}
	if total != 1 || len(posts) != 1 {
		t.Fatalf("want only published post, got total=%d len=%d", total, len(posts))
	}
	if posts[0].Content != "" {
		t.Fatalf("list content should be stripped, got %q", posts[0].Content)
	}
}
