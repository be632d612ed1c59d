package repository

import (
	"testing"

	"github.com/sparkzonn-blog/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupCategoryRepositoryTest(t *testing.T) (*GormCategoryRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}); err != nil {
		t.Fatalf("migrate category tables failed: %v", err)
	}
	return NewCategoryRepository(db), db
}

func TestCategoryGetByNameAndSlug(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	category := &models.Category{Name: "Lookup Target", Slug: "lookup-target"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	byName, err := repo.GetByName("Lookup Target")
	if err != nil {
		t.Fatalf("get by name failed: %v", err)
	}
	if byName == nil || byName.ID != category.ID {
		t.Fatalf("get by name want id=%d got %+v", category.ID, byName)
	}

	bySlug, err := repo.GetBySlug("lookup-target")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if bySlug == nil || bySlug.ID != category.ID {
		t.Fatalf("get by slug want id=%d got %+v", category.ID, bySlug)
	}

	missing, err := repo.GetByName("No Such Category")
	if err != nil {
		t.Fatalf("get missing by name failed: %v", err)
	}
	if missing != nil {
		t.Fatalf("expect nil for missing category, got %+v", missing)
	}
}

func TestCategoryListAttachesPostCounts(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	counted := &models.Category{Name: "List Counted", Slug: "list-counted"}
	empty := &models.Category{Name: "List Empty", Slug: "list-empty"}
	for _, category := range []*models.Category{counted, empty} {
		if err := db.Create(category).Error; err != nil {
			t.Fatalf("create category failed: %v", err)
		}
	}
	for i, slug := range []string{"list-counted-a", "list-counted-b"} {
		post := models.Post{
			Slug:       slug,
			Title:      "t",
			Excerpt:    "e",
			Content:    "c",
			Author:     "a",
			Published:  i == 0,
			CategoryID: counted.ID,
		}
		if err := db.Create(&post).Error; err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	categories, err := repo.List()
	if err != nil {
		t.Fatalf("list categories failed: %v", err)
	}
	bySlug := map[string]models.Category{}
	for _, category := range categories {
		bySlug[category.Slug] = category
	}
	if got := bySlug["list-counted"].PostCount; got != 2 {
		t.Fatalf("post count want 2 got %d", got)
	}
	if got := bySlug["list-empty"].PostCount; got != 0 {
		t.Fatalf("empty category post count want 0 got %d", got)
	}
}

func TestCategoryCountPosts(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	category := &models.Category{Name: "Post Counter", Slug: "post-counter"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	for _, slug := range []string{"counted-one", "counted-two"} {
		post := &models.Post{
			Slug:       slug,
			Title:      slug,
			Excerpt:    "e",
			Author:     "tester",
			CategoryID: category.ID,
		}
		if err := db.Create(post).Error; err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	count, err := repo.CountPosts(idString(category.ID))
	if err != nil {
		t.Fatalf("count posts failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("post count want 2 got %d", count)
	}
}

func TestCategoryCountByNameExcludesID(t *testing.T) {
	repo, db := setupCategoryRepositoryTest(t)
	category := &models.Category{Name: "Unique Name Check", Slug: "unique-name-check"}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	count, err := repo.CountByName("Unique Name Check", nil)
	if err != nil {
		t.Fatalf("count by name failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("count want 1 got %d", count)
	}

	exclude := idString(category.ID)
	count, err = repo.CountByName("Unique Name Check", &exclude)
	if err != nil {
		t.Fatalf("count with exclusion failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("count with exclusion want 0 got %d", count)
	}
}
