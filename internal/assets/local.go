package assets

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalGateway 本地磁盘存储实现
type LocalGateway struct {
	baseDir string
}

// NewLocalGateway 创建本地存储网关
func NewLocalGateway(baseDir string) *LocalGateway {
	dir := strings.TrimSpace(baseDir)
	if dir == "" {
		dir = "uploads"
	}
	return &LocalGateway{baseDir: dir}
}

// Upload 按 folder/年/月 目录保存文件，文件名使用 UUID 防止冲突
func (g *LocalGateway) Upload(_ context.Context, reader io.Reader, filename, folder string) (*UploadResult, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	now := time.Now()
	relPath := path.Join(sanitizeFolder(folder), now.Format("2006"), now.Format("01"),
		uuid.New().String()+ext)

	savePath := filepath.Join(g.baseDir, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(savePath), 0o755); err != nil {
		return nil, err
	}

	dst, err := os.Create(savePath)
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, reader); err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:    "/uploads/" + relPath,
		FileID: relPath,
	}, nil
}

// Delete 删除本地文件，fileID 为 Upload 返回的相对路径
func (g *LocalGateway) Delete(_ context.Context, fileID string) error {
	cleaned := path.Clean(strings.TrimSpace(fileID))
	if cleaned == "" || cleaned == "." || strings.HasPrefix(cleaned, "..") || path.IsAbs(cleaned) {
		return fmt.Errorf("invalid local asset id: %s", fileID)
	}
	target := filepath.Join(g.baseDir, filepath.FromSlash(cleaned))
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return nil
}

func sanitizeFolder(raw string) string {
	folder := strings.Trim(path.Clean(strings.TrimSpace(raw)), "/")
	if folder == "" || folder == "." || strings.HasPrefix(folder, "..") {
		return "common"
	}
	return folder
}
