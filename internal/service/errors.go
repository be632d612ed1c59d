package service

import (
	"errors"

	"gorm.io/gorm"
)

// 业务层统一错误，handler 通过 errors.Is 映射为响应码
var (
	ErrNotFound           = errors.New("记录不存在")
	ErrSlugExists         = errors.New("slug 已存在")
	ErrNameExists         = errors.New("名称已存在")
	ErrEmailExists        = errors.New("邮箱已被占用")
	ErrCategoryNotFound   = errors.New("分类不存在")
	ErrCategoryInUse      = errors.New("分类下仍有文章")
	ErrInvalidCredentials = errors.New("账号或密码错误")
	ErrInvalidPassword    = errors.New("当前密码不正确")
	ErrWeakPassword       = errors.New("密码强度不足")
	ErrResetTokenInvalid  = errors.New("重置链接无效或已过期")
	ErrInvalidRole        = errors.New("无效的角色")
	ErrSelfDelete         = errors.New("不能删除当前登录账号")
	ErrInvalidAdPosition  = errors.New("无效的广告位置")
	ErrAdImageRequired    = errors.New("广告图片不能为空")
	ErrMissingFields      = errors.New("必填字段缺失")

	ErrInvalidEmail              = errors.New("邮箱格式不正确")
	ErrEmailServiceDisabled      = errors.New("邮件服务未启用")
	ErrEmailServiceNotConfigured = errors.New("邮件服务未配置")
	ErrEmailRecipientRejected    = errors.New("收件人地址被拒绝")
	ErrNewsletterDisabled        = errors.New("订阅服务未启用")
)

func isRecordNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
