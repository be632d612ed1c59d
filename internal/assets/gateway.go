package assets

import (
	"context"
	"errors"
	"io"
)

// ErrNotConfigured 未配置可用的资产存储驱动
var ErrNotConfigured = errors.New("asset gateway not configured")

// UploadResult 上传结果
type UploadResult struct {
	URL    string // 外链地址
	FileID string // 托管方文件 ID，删除时使用
}

// Gateway 图片资产存储接口
type Gateway interface {
	Upload(ctx context.Context, reader io.Reader, filename, folder string) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}
