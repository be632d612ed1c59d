package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sparkzonn-blog/internal/config"
)

func TestNewsletterSubscribeForwardsUpstream(t *testing.T) {
	var gotAuth string
	var gotBody newsletterSubscribeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body failed: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	svc := NewNewsletterService(&config.NewsletterConfig{
		Enabled: true,
		APIURL:  server.URL,
		Token:   "sender-token",
		Groups:  []string{"blog-updates"},
	})

	if err := svc.Subscribe(context.Background(), "reader@example.com"); err != nil {
		t.Fatalf("subscribe failed: %v", err)
	}
	if gotAuth != "Bearer sender-token" {
		t.Fatalf("authorization header want bearer token got %q", gotAuth)
	}
	if gotBody.Email != "reader@example.com" {
		t.Fatalf("email want reader@example.com got %q", gotBody.Email)
	}
	if len(gotBody.Groups) != 1 || gotBody.Groups[0] != "blog-updates" {
		t.Fatalf("groups not forwarded: %v", gotBody.Groups)
	}
}

func TestNewsletterSubscribeUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer server.Close()

	svc := NewNewsletterService(&config.NewsletterConfig{
		Enabled: true,
		APIURL:  server.URL,
		Token:   "sender-token",
	})

	if err := svc.Subscribe(context.Background(), "reader@example.com"); err == nil {
		t.Fatal("upstream non-2xx should fail")
	}
}

func TestNewsletterSubscribeInvalidEmail(t *testing.T) {
	svc := NewNewsletterService(&config.NewsletterConfig{Enabled: true, Token: "x"})

	if err := svc.Subscribe(context.Background(), "not-an-email"); !errors.Is(err, ErrInvalidEmail) {
		t.Fatalf("want ErrInvalidEmail got %v", err)
	}
}

func TestNewsletterSubscribeDisabled(t *testing.T) {
	svc := NewNewsletterService(&config.NewsletterConfig{Enabled: false})

	if err := svc.Subscribe(context.Background(), "reader@example.com"); !errors.Is(err, ErrNewsletterDisabled) {
		t.Fatalf("want ErrNewsletterDisabled got %v", err)
	}
}
