package test

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/sandevgo/tuskchat/internal/config"
)

// KVConfigOrSkip returns credentials for a live KV endpoint.
// Tests skip unless KV_REST_API_URL and KV_REST_API_TOKEN are exported.
func KVConfigOrSkip(t *testing.T) *config.KVConfig {
	t.Helper()

	url, token := os.Getenv("KV_REST_API_URL"), os.Getenv("KV_REST_API_TOKEN")
	if url == "" || token == "" {
		t.Skip("KV_REST_API_URL / KV_REST_API_TOKEN not set")
	}
	return &config.KVConfig{URL: url, Token: token, Timeout: 10 * time.Second}
}

// UniqueUserID keeps parallel runs against a shared KV from colliding.
func UniqueUserID(t *testing.T) string {
	return fmt.Sprintf("it-%s-%d", t.Name(), time.Now().UnixNano())
}
