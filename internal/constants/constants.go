package constants

// 管理员角色常量
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// 广告位置常量
const (
	AdPositionHeader  = "header"
	AdPositionSidebar = "sidebar"
	AdPositionFooter  = "footer"
	AdPositionInline  = "inline"
)

// 支持的广告位置顺序
var AdPositions = []string{AdPositionHeader, AdPositionSidebar, AdPositionFooter, AdPositionInline}

// 默认管理员密码（未指定密码创建账号时使用，登录后强制修改）
const DefaultAdminPassword = "sparkzonnadmin"

// 密码哈希成本
const BcryptCost = 12

// 重置密码 Token 有效期（分钟）
const ResetTokenExpireMinutes = 10

// 队列常量
const (
	QueueDefault           = "default"
	TaskPasswordResetEmail = "auth:password_reset_email"
	TaskAssetCleanup       = "asset:cleanup"
)

// 缓存默认配置常量
const (
	RedisPrefixDefault = "sz"
)

// 上传场景常量
const (
	UploadSceneBlogCover = "blog-covers"
	UploadSceneAd        = "ads"
	UploadSceneEditor    = "editor"
	UploadSceneCommon    = "common"
)

// 资产存储驱动常量
const (
	AssetDriverLocal    = "local"
	AssetDriverImageKit = "imagekit"
)
