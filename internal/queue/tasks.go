package queue

import (
	"encoding/json"

	"github.com/sparkzonn-blog/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskPasswordResetEmail 密码重置邮件任务
	TaskPasswordResetEmail = constants.TaskPasswordResetEmail
	// TaskAssetCleanup 资产回收任务
	TaskAssetCleanup = constants.TaskAssetCleanup
)

// PasswordResetEmailPayload 密码重置邮件任务载荷
type PasswordResetEmailPayload struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

// AssetCleanupPayload 资产回收任务载荷
type AssetCleanupPayload struct {
	FileID string `json:"file_id"`
	Reason string `json:"reason"`
}

// NewPasswordResetEmailTask 创建密码重置邮件任务
func NewPasswordResetEmailTask(payload PasswordResetEmailPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPasswordResetEmail, body), nil
}

// NewAssetCleanupTask 创建资产回收任务
func NewAssetCleanupTask(payload AssetCleanupPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskAssetCleanup, body), nil
}
