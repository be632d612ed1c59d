package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	defaultImageKitUploadURL  = "https://upload.imagekit.io/api/v1/files/upload"
	defaultImageKitAPIBaseURL = "https://api.imagekit.io"
	defaultImageKitTimeout    = 15 * time.Second
)

// ImageKitOptions ImageKit 网关配置
type ImageKitOptions struct {
	PrivateKey string
	UploadURL  string
	APIBaseURL string
	Timeout    time.Duration
}

// ImageKitGateway ImageKit REST 实现
type ImageKitGateway struct {
	privateKey string
	uploadURL  string
	apiBaseURL string
	client     *http.Client
}

// NewImageKitGateway 创建 ImageKit 网关
func NewImageKitGateway(options ImageKitOptions) *ImageKitGateway {
	uploadURL := strings.TrimSpace(options.UploadURL)
	if uploadURL == "" {
		uploadURL = defaultImageKitUploadURL
	}
	apiBaseURL := strings.TrimRight(strings.TrimSpace(options.APIBaseURL), "/")
	if apiBaseURL == "" {
		apiBaseURL = defaultImageKitAPIBaseURL
	}
	timeout := options.Timeout
	if timeout <= 0 {
		timeout = defaultImageKitTimeout
	}
	return &ImageKitGateway{
		privateKey: strings.TrimSpace(options.PrivateKey),
		uploadURL:  uploadURL,
		apiBaseURL: apiBaseURL,
		client:     &http.Client{Timeout: timeout},
	}
}

type imageKitUploadResponse struct {
	FileID  string `json:"fileId"`
	Name    string `json:"name"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// Upload 通过 multipart 上传到 ImageKit
func (g *ImageKitGateway) Upload(ctx context.Context, reader io.Reader, filename, folder string) (*UploadResult, error) {
	if g.privateKey == "" {
		return nil, ErrNotConfigured
	}

	var body strings.Builder
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, reader); err != nil {
		return nil, err
	}
	fields := map[string]string{
		"fileName":          filename,
		"useUniqueFileName": "true",
	}
	if folder = strings.TrimSpace(folder); folder != "" {
		fields["folder"] = "/" + strings.Trim(folder, "/")
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.uploadURL, strings.NewReader(body.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.SetBasicAuth(g.privateKey, "")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var decoded imageKitUploadResponse
	if err := json.Unmarshal(payload, &decoded); err != nil {
		return nil, fmt.Errorf("imagekit upload: decode response failed: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("imagekit upload failed: status=%d message=%s", resp.StatusCode, decoded.Message)
	}
	if decoded.FileID == "" || decoded.URL == "" {
		return nil, fmt.Errorf("imagekit upload: incomplete response: %s", string(payload))
	}

	return &UploadResult{URL: decoded.URL, FileID: decoded.FileID}, nil
}

// Delete 删除 ImageKit 上的文件
func (g *ImageKitGateway) Delete(ctx context.Context, fileID string) error {
	if g.privateKey == "" {
		return ErrNotConfigured
	}
	fileID = strings.TrimSpace(fileID)
	if fileID == "" {
		return nil
	}

	endpoint := fmt.Sprintf("%s/v1/files/%s", g.apiBaseURL, url.PathEscape(fileID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(g.privateKey, "")

	resp, err := g.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// 已删除的文件视为成功，保证清理操作幂等
	if resp.StatusCode == http.StatusNotFound {
		return nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("imagekit delete failed: status=%d body=%s", resp.StatusCode, string(payload))
	}
	return nil
}
