//go:build integration
// +build integration

package repository

import (
	"os"
	"strings"
	"testing"

	"github.com/sparkzonn-blog/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.Comment{},
		&models.Post{},
		&models.Ad{},
		&models.Category{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Post{},
		&models.Comment{},
		&models.Ad{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresPostSearchUsesILike(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPostRepository(db)

	category := models.Category{Name: "Engineering", Slug: "engineering"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	posts := []models.Post{
		{Slug: "pg-alpha", Title: "Alpha Release Notes", Excerpt: "e", Content: "c", Author: "a", Published: true, CategoryID: category.ID},
		{Slug: "pg-beta", Title: "Beta Roadmap", Excerpt: "e", Content: "c", Author: "a", Published: true, CategoryID: category.ID},
	}
	for i := range posts {
		if err := db.Create(&posts[i]).Error; err != nil {
			t.Fatalf("create post failed: %v", err)
		}
	}

	// ILIKE 大小写不敏感
	found, total, err := repo.List(PostListFilter{Page: 1, PageSize: 10, Search: "alpha", OnlyPublished: true})
	if err != nil {
		t.Fatalf("list posts failed: %v", err)
	}
	if total != 1 || len(found) != 1 || found[0].Slug != "pg-alpha" {
		t.Fatalf("search want pg-alpha, got total=%d posts=%v", total, found)
	}
}

func TestPostgresIncrementLikes(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewPostRepository(db)

	category := models.Category{Name: "Product", Slug: "product"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post := models.Post{Slug: "pg-likes", Title: "t", Excerpt: "e", Content: "c", Author: "a", Published: true, CategoryID: category.ID}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	id := post.ID
	likes, err := repo.IncrementLikes(idString(id))
	if err != nil {
		t.Fatalf("increment likes failed: %v", err)
	}
	if likes != 1 {
		t.Fatalf("likes want 1 got %d", likes)
	}
}
