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

func setupCategoryServiceTest(t *testing.T) (*CategoryService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}); err != nil {
		t.Fatalf("migrate category tables failed: %v", err)
	}
	return NewCategoryService(repository.NewCategoryRepository(db)), db
}

func TestCategoryCreateGeneratesSlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	category, err := svc.Create("  Cloud Native  ", "  Notes on cloud platforms  ")
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	if category.Name != "Cloud Native" {
		t.Fatalf("name want trimmed got %q", category.Name)
	}
	if category.Slug != "cloud-native" {
		t.Fatalf("slug want cloud-native got %q", category.Slug)
	}
	if category.Description != "Notes on cloud platforms" {
		t.Fatalf("description want trimmed got %q", category.Description)
	}
}

func TestCategoryGetBySlug(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	created, err := svc.Create("Observability", "Traces and metrics")
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	found, err := svc.GetBySlug("  observability  ")
	if err != nil {
		t.Fatalf("get by slug failed: %v", err)
	}
	if found.ID != created.ID {
		t.Fatalf("id want %d got %d", created.ID, found.ID)
	}

	if _, err := svc.GetBySlug("no-such-category"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound got %v", err)
	}
}

func TestCategoryCreateDuplicateName(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	if _, err := svc.Create("Databases", ""); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create("Databases", ""); !errors.Is(err, ErrNameExists) {
		t.Fatalf("want ErrNameExists got %v", err)
	}
}

func TestCategoryUpdateSlugConflict(t *testing.T) {
	svc, _ := setupCategoryServiceTest(t)

	first, err := svc.Create("First Topic", "")
	if err != nil {
		t.Fatalf("create first failed: %v", err)
	}
	second, err := svc.Create("Second Topic", "")
	if err != nil {
		t.Fatalf("create second failed: %v", err)
	}

	if _, err := svc.Update(uintToID(second.ID), "First Topic", ""); !errors.Is(err, ErrNameExists) {
		t.Fatalf("want ErrNameExists got %v", err)
	}
	// 改回自身名称不算冲突
	if _, err := svc.Update(uintToID(first.ID), "First Topic", ""); err != nil {
		t.Fatalf("self rename failed: %v", err)
	}
}

func TestCategoryDeleteBlockedWhenInUse(t *testing.T) {
	svc, db := setupCategoryServiceTest(t)

	category, err := svc.Create("Busy Topic", "")
	if err != nil {
		t.Fatalf("create category failed: %v", err)
	}
	post := models.Post{
		Slug:       "busy-post",
		Title:      "t",
		Excerpt:    "e",
		Content:    "c",
		Author:     "a",
		CategoryID: category.ID,
	}
	if err := db.Create(&post).Error; err != nil {
		t.Fatalf("create post failed: %v", err)
	}

	if err := svc.Delete(uintToID(category.ID)); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("want ErrCategoryInUse got %v", err)
	}

	if err := db.Delete(&post).Error; err != nil {
		t.Fatalf("remove post failed: %v", err)
	}
	if err := svc.Delete(uintToID(category.ID)); err != nil {
		t.Fatalf("delete empty category failed: %v", err)
	}
}
