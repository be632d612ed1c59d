package main

import (
	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/service"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认超级管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 预置分类
	categories := map[string]string{
		"Engineering": "Build logs and technical deep dives",
		"Product":     "Product thinking and process notes",
		"Life":        "Everything away from the keyboard",
	}
	categoryIDs := map[string]uint{}
	for name, description := range categories {
		slug := service.Slugify(name)
		var existing models.Category
		if err := models.DB.Where("slug = ?", slug).First(&existing).Error; err != nil {
			category := models.Category{Name: name, Slug: slug, Description: description}
			if err := models.DB.Create(&category).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", slug, err)
				continue
			}
			categoryIDs[slug] = category.ID
			stdLog.Printf("Created category: %s", slug)
		} else {
			categoryIDs[slug] = existing.ID
			stdLog.Printf("Category already exists: %s", slug)
		}
	}

	// 示例文章
	published := true
	posts := []models.Post{
		{
			Title:      "Hello Sparkzonn",
			Excerpt:    "Welcome to the Sparkzonn engineering blog.",
			Content:    "This is the first post on the Sparkzonn blog. More to come.",
			Author:     "Sparkzonn Team",
			Tags:       models.StringArray{"welcome", "meta"},
			Featured:   true,
			Published:  published,
			CategoryID: categoryIDs[service.Slugify("Engineering")],
		},
		{
			Title:      "Shipping a Side Project",
			Excerpt:    "Notes on getting a side project over the finish line.",
			Content:    "Scope small, ship early, iterate in public.",
			Author:     "Sparkzonn Team",
			Tags:       models.StringArray{"product", "process"},
			Published:  published,
			CategoryID: categoryIDs[service.Slugify("Product")],
		},
		{
			Title:      "A Week Away from Screens",
			Excerpt:    "What a week offline taught us about focus.",
			Content:    "Draft post, not published yet.",
			Author:     "Sparkzonn Team",
			Tags:       models.StringArray{"life"},
			Published:  false,
			CategoryID: categoryIDs[service.Slugify("Life")],
		},
	}
	for _, post := range posts {
		post.Slug = service.Slugify(post.Title)
		var existing models.Post
		if err := models.DB.Where("slug = ?", post.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&post).Error; err != nil {
				stdLog.Printf("Failed to create post %s: %v", post.Slug, err)
			} else {
				stdLog.Printf("Created post: %s", post.Slug)
			}
		} else {
			stdLog.Printf("Post already exists: %s", post.Slug)
		}
	}

	// 示例广告位
	ads := []models.Ad{
		{
			Title:    "Sparkzonn Newsletter",
			ImageURL: "/uploads/ads/newsletter.png",
			LinkURL:  "https://blog.sparkzonn.com/newsletter",
			Position: constants.AdPositionSidebar,
			Active:   true,
		},
	}
	for _, ad := range ads {
		var existing models.Ad
		if err := models.DB.Where("title = ?", ad.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&ad).Error; err != nil {
				stdLog.Printf("Failed to create ad %s: %v", ad.Title, err)
			} else {
				stdLog.Printf("Created ad: %s", ad.Title)
			}
		} else {
			stdLog.Printf("Ad already exists: %s", ad.Title)
		}
	}

	stdLog.Println("Seed finished")
}
