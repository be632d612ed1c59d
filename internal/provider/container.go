package provider

import (
	"time"

	"github.com/sparkzonn-blog/internal/assets"
	"github.com/sparkzonn-blog/internal/authz"
	"github.com/sparkzonn-blog/internal/cache"
	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/constants"
	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/models"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/repository"
	"github.com/sparkzonn-blog/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config       *config.Config
	QueueClient  *queue.Client
	AssetGateway assets.Gateway

	// Repositories
	UserRepo     repository.UserRepository
	CategoryRepo repository.CategoryRepository
	PostRepo     repository.PostRepository
	CommentRepo  repository.CommentRepository
	AdRepo       repository.AdRepository

	// Services
	AuthzService      *authz.Service
	AuthService       *service.AuthService
	UserService       *service.UserService
	PostService       *service.PostService
	CategoryService   *service.CategoryService
	CommentService    *service.CommentService
	AdService         *service.AdService
	UploadService     *service.UploadService
	EmailService      *service.EmailService
	NewsletterService *service.NewsletterService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化资源网关
	c.initAssetGateway()

	// 2. 初始化 Repositories
	c.initRepositories()

	// 3. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initAssetGateway() {
	switch c.Config.Assets.Driver {
	case constants.AssetDriverImageKit:
		c.AssetGateway = assets.NewImageKitGateway(assets.ImageKitOptions{
			PrivateKey: c.Config.Assets.ImageKit.PrivateKey,
			UploadURL:  c.Config.Assets.ImageKit.UploadURL,
			APIBaseURL: c.Config.Assets.ImageKit.APIBaseURL,
			Timeout:    time.Duration(c.Config.Assets.ImageKit.TimeoutMS) * time.Millisecond,
		})
	default:
		c.AssetGateway = assets.NewLocalGateway(c.Config.Assets.LocalDir)
	}
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.AdRepo = repository.NewAdRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email, &c.Config.Site)
	c.AuthService = service.NewAuthService(c.Config, c.UserRepo, c.QueueClient)
	c.UserService = service.NewUserService(c.Config, c.UserRepo)
	c.UploadService = service.NewUploadService(c.Config, c.AssetGateway)
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.QueueClient)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo)
	c.AdService = service.NewAdService(c.AdRepo, c.QueueClient)
	c.NewsletterService = service.NewNewsletterService(&c.Config.Newsletter)
}
