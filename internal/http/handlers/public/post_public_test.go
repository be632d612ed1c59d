package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/provider"
	"github.com/sparkzonn-blog/internal/repository"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

type publicPostFixture struct {
	CategoryID      uint
	PublishedID     uint
	PublishedSlug   string
	DraftSlug       string
	PublishedClicks int64
}

func setupPublicPostHandlerTest(t *testing.T) (*Handler, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:public_post_handler_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	postRepo := repository.NewPostRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	postService := service.NewPostService(postRepo, categoryRepo, nil)

	h := &Handler{Container: &provider.Container{
		PostService: postService,
	}}
	return h, db
}

func seedPublicPostData(t *testing.T, db *gorm.DB) publicPostFixture {
	t.Helper()

	category := models.Category{Name: "Engineering", Slug: "engineering"}
	if err := db.Create(&category).Error; err != nil {
		t.Fatalf("create category failed: %v", err)
	}

	published := models.Post{
		Slug:       "public-handler-published",
		Title:      "Published Post",
		Excerpt:    "visible excerpt",
		Content:    "full body that the public list must not leak",
		Author:     "alice",
		Published:  true,
		CategoryID: category.ID,
	}
	if err := db.Create(&published).Error; err != nil {
		t.Fatalf("create published post failed: %v", err)
	}

	draft := models.Post{
		Slug:       "public-handler-draft",
		Title:      "Draft Post",
		Excerpt:    "draft excerpt",
		Content:    "draft body",
		Author:     "alice",
		Published:  false,
		CategoryID: category.ID,
	}
	if err := db.Create(&draft).Error; err != nil {
		t.Fatalf("create draft post failed: %v", err)
	}

	return publicPostFixture{
		CategoryID:    category.ID,
		PublishedID:   published.ID,
		PublishedSlug: published.Slug,
		DraftSlug:     draft.Slug,
	}
}

func TestGetPostsHidesDraftsAndStripsContent(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	fixture := seedPublicPostData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/public/posts?page=1&page_size=20", nil)

	h.GetPosts(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d", w.Code)
	}

	var resp struct {
		StatusCode int `json:"status_code"`
		Pagination struct {
			Total int64 `json:"total"`
		} `json:"pagination"`
		Data []map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Pagination.Total != 1 {
		t.Fatalf("pagination total want 1 got %d", resp.Pagination.Total)
	}
	if len(resp.Data) != 1 {
		t.Fatalf("data len want 1 got %d", len(resp.Data))
	}
	row := resp.Data[0]
	if row["slug"] != fixture.PublishedSlug {
		t.Fatalf("slug want %q got %v", fixture.PublishedSlug, row["slug"])
	}
	if content, ok := row["content"]; ok && content != "" {
		t.Fatalf("list row leaked content: %v", content)
	}
}

func TestGetPostDraftNotFound(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	fixture := seedPublicPostData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/public/posts/"+fixture.DraftSlug, nil)
	c.Params = gin.Params{{Key: "slug", Value: fixture.DraftSlug}}

	h.GetPost(c)

	var resp struct {
		StatusCode int    `json:"status_code"`
		Msg        string `json:"msg"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("status_code want 404 got %d", resp.StatusCode)
	}
}

func TestGetPostReturnsPublishedDetail(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	fixture := seedPublicPostData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/public/posts/"+fixture.PublishedSlug, nil)
	c.Params = gin.Params{{Key: "slug", Value: fixture.PublishedSlug}}

	h.GetPost(c)

	var resp struct {
		StatusCode int                    `json:"status_code"`
		Data       map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if content, ok := resp.Data["content"].(string); !ok || content == "" {
		t.Fatalf("detail should include content, got %v", resp.Data["content"])
	}
	if resp.Data["slug"] != fixture.PublishedSlug {
		t.Fatalf("slug want %q got %v", fixture.PublishedSlug, resp.Data["slug"])
	}
}

func TestLikePostReturnsCount(t *testing.T) {
	h, db := setupPublicPostHandlerTest(t)
	fixture := seedPublicPostData(t, db)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	id := fmt.Sprintf("%d", fixture.PublishedID)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/public/posts/"+id+"/like", nil)
	c.Params = gin.Params{{Key: "slug", Value: id}}

	h.LikePost(c)

	var resp struct {
		StatusCode int `json:"status_code"`
		Data       struct {
			Likes int64 `json:"likes"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response failed: %v", err)
	}
	if resp.StatusCode != 0 {
		t.Fatalf("status_code want 0 got %d", resp.StatusCode)
	}
	if resp.Data.Likes != 1 {
		t.Fatalf("likes want 1 got %d", resp.Data.Likes)
	}
}
