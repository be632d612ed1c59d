package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/sparkzonn-blog/internal/assets"
	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/provider"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/hibiken/asynq"
)

type stubAssetGateway struct {
	deleted []string
	err     error
}

func (g *stubAssetGateway) Upload(_ context.Context, _ io.Reader, _, _ string) (*assets.UploadResult, error) {
	return nil, errors.New("not implemented")
}

func (g *stubAssetGateway) Delete(_ context.Context, fileID string) error {
	if g.err != nil {
		return g.err
	}
	g.deleted = append(g.deleted, fileID)
	return nil
}

func newAssetCleanupTask(t *testing.T, payload queue.AssetCleanupPayload) *asynq.Task {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	return asynq.NewTask(queue.TaskAssetCleanup, data)
}

func TestHandleAssetCleanupDeletesFile(t *testing.T) {
	gateway := &stubAssetGateway{}
	consumer := NewConsumer(&provider.Container{AssetGateway: gateway})

	task := newAssetCleanupTask(t, queue.AssetCleanupPayload{FileID: "blog-covers/2026/08/a.webp", Reason: "post_deleted"})
	if err := consumer.handleAssetCleanup(context.Background(), task); err != nil {
		t.Fatalf("handle asset cleanup failed: %v", err)
	}
	if len(gateway.deleted) != 1 || gateway.deleted[0] != "blog-covers/2026/08/a.webp" {
		t.Fatalf("unexpected deleted files: %v", gateway.deleted)
	}
}

func TestHandleAssetCleanupEmptyFileIDSkipped(t *testing.T) {
	gateway := &stubAssetGateway{}
	consumer := NewConsumer(&provider.Container{AssetGateway: gateway})

	task := newAssetCleanupTask(t, queue.AssetCleanupPayload{FileID: "   ", Reason: "post_deleted"})
	if err := consumer.handleAssetCleanup(context.Background(), task); err != nil {
		t.Fatalf("expected skip without error, got: %v", err)
	}
	if len(gateway.deleted) != 0 {
		t.Fatalf("expected no deletion, got: %v", gateway.deleted)
	}
}

func TestHandleAssetCleanupGatewayErrorRetried(t *testing.T) {
	gateway := &stubAssetGateway{err: errors.New("upstream unavailable")}
	consumer := NewConsumer(&provider.Container{AssetGateway: gateway})

	task := newAssetCleanupTask(t, queue.AssetCleanupPayload{FileID: "ads/2026/08/b.png", Reason: "ad_deleted"})
	if err := consumer.handleAssetCleanup(context.Background(), task); err == nil {
		t.Fatalf("expected error to trigger retry")
	}
}

func TestHandlePasswordResetEmailDisabledServiceSkipped(t *testing.T) {
	emailSvc := service.NewEmailService(&config.EmailConfig{Enabled: false}, &config.SiteConfig{BaseURL: "https://blog.example.com"})
	consumer := NewConsumer(&provider.Container{EmailService: emailSvc})

	payload, err := json.Marshal(queue.PasswordResetEmailPayload{UserID: 7, Email: "user@example.com", Token: "abc123"})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskPasswordResetEmail, payload)
	if err := consumer.handlePasswordResetEmail(context.Background(), task); err != nil {
		t.Fatalf("expected disabled email service to be skipped, got: %v", err)
	}
}

func TestHandlePasswordResetEmailInvalidPayloadSkipped(t *testing.T) {
	consumer := NewConsumer(&provider.Container{})

	payload, err := json.Marshal(queue.PasswordResetEmailPayload{UserID: 7, Email: "", Token: ""})
	if err != nil {
		t.Fatalf("marshal payload failed: %v", err)
	}
	task := asynq.NewTask(queue.TaskPasswordResetEmail, payload)
	if err := consumer.handlePasswordResetEmail(context.Background(), task); err != nil {
		t.Fatalf("expected invalid payload to be skipped, got: %v", err)
	}
}
