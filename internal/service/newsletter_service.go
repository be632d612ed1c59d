package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/sparkzonn-blog/internal/config"
	"github.com/sparkzonn-blog/internal/logger"
)

const defaultNewsletterTimeout = 5 * time.Second

// NewsletterService 邮件订阅代理，转发到上游订阅服务
type NewsletterService struct {
	cfg    *config.NewsletterConfig
	client *http.Client
}

// NewNewsletterService 创建订阅服务
func NewNewsletterService(cfg *config.NewsletterConfig) *NewsletterService {
	timeout := defaultNewsletterTimeout
	if cfg != nil && cfg.TimeoutMS > 0 {
		timeout = time.Duration(cfg.TimeoutMS) * time.Millisecond
	}
	return &NewsletterService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
	}
}

type newsletterSubscribeRequest struct {
	Email  string   `json:"email"`
	Groups []string `json:"groups,omitempty"`
}

// Subscribe 订阅邮件列表
func (s *NewsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if s.cfg == nil || !s.cfg.Enabled || strings.TrimSpace(s.cfg.Token) == "" {
		return ErrNewsletterDisabled
	}

	payload, err := json.Marshal(newsletterSubscribeRequest{
		Email:  email,
		Groups: s.cfg.Groups,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.APIURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+strings.TrimSpace(s.cfg.Token))

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		logger.Warnw("newsletter_subscribe_upstream_error",
			"status", resp.StatusCode,
			"body", string(body),
		)
		return fmt.Errorf("newsletter subscribe failed: status=%d", resp.StatusCode)
	}
	return nil
}
