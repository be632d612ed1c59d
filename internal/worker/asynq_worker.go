package worker

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/sparkzonn-blog/internal/logger"
	"github.com/sparkzonn-blog/internal/provider"
	"github.com/sparkzonn-blog/internal/queue"
	"github.com/sparkzonn-blog/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskPasswordResetEmail, c.handlePasswordResetEmail)
	mux.HandleFunc(queue.TaskAssetCleanup, c.handleAssetCleanup)
}

func (c *Consumer) handlePasswordResetEmail(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_password_reset_email_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PasswordResetEmailPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_password_reset_email_unmarshal_failed", "error", err)
		return err
	}
	email := strings.TrimSpace(payload.Email)
	token := strings.TrimSpace(payload.Token)
	if email == "" || token == "" {
		logger.Debugw("worker_password_reset_email_skip_invalid_payload", "user_id", payload.UserID)
		return nil
	}
	if c.EmailService == nil {
		logger.Warnw("worker_password_reset_email_skip_email_service_nil", "user_id", payload.UserID)
		return nil
	}
	if err := c.EmailService.SendPasswordResetEmail(email, token); err != nil {
		switch {
		case errors.Is(err, service.ErrEmailServiceDisabled),
			errors.Is(err, service.ErrEmailServiceNotConfigured):
			logger.Warnw("worker_password_reset_email_skip_service_unavailable", "user_id", payload.UserID, "error", err)
			return nil
		case errors.Is(err, service.ErrEmailRecipientRejected):
			logger.Warnw("worker_password_reset_email_skip_recipient_rejected", "user_id", payload.UserID, "error", err)
			return nil
		default:
			logger.Warnw("worker_password_reset_email_send_failed", "user_id", payload.UserID, "error", err)
			return err
		}
	}
	return nil
}

func (c *Consumer) handleAssetCleanup(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_asset_cleanup_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.AssetCleanupPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_asset_cleanup_unmarshal_failed", "error", err)
		return err
	}
	fileID := strings.TrimSpace(payload.FileID)
	if fileID == "" {
		logger.Debugw("worker_asset_cleanup_skip_empty_file_id", "reason", payload.Reason)
		return nil
	}
	if c.AssetGateway == nil {
		logger.Warnw("worker_asset_cleanup_skip_gateway_nil", "file_id", fileID)
		return nil
	}
	if err := c.AssetGateway.Delete(ctx, fileID); err != nil {
		logger.Warnw("worker_asset_cleanup_delete_failed", "file_id", fileID, "reason", payload.Reason, "error", err)
		return err
	}
	logger.Infow("worker_asset_cleanup_done", "file_id", fileID, "reason", payload.Reason)
	return nil
}
