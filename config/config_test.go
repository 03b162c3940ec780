package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("写入配置文件失败: %v", err)
	}
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef-secret"
upstream:
  base_url: "http://api.local"
  timeout: 3s
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Upstream.BaseURL != "http://api.local" {
		t.Errorf("期望 base_url=http://api.local，实际=%s", cfg.Upstream.BaseURL)
	}
	if cfg.Upstream.Timeout != 3*time.Second {
		t.Errorf("期望 timeout=3s，实际=%v", cfg.Upstream.Timeout)
	}
	if cfg.Portal.PageSize != 10 {
		t.Errorf("期望默认 page_size=10，实际=%d", cfg.Portal.PageSize)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("期望默认端口 8080，实际=%d", cfg.Server.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, `
auth:
  jwt_secret: "0123456789abcdef-secret"
`)
	t.Setenv("PORTAL_SERVER_PORT", "9090")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("期望环境变量覆盖端口为 9090，实际=%d", cfg.Server.Port)
	}
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Server:   ServerConfig{Port: 8080},
			Auth:     AuthConfig{JWTSecret: "0123456789abcdef"},
			Upstream: UpstreamConfig{BaseURL: "http://api"},
			Portal:   PortalConfig{PageSize: 10},
		}
	}

	ok := base()
	if err := ok.Validate(); err != nil {
		t.Fatalf("合法配置不应报错: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"空密钥", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"短密钥", func(c *Config) { c.Auth.JWTSecret = "short" }},
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"缺少上游地址", func(c *Config) { c.Upstream.BaseURL = " " }},
		{"分页大小为零", func(c *Config) { c.Portal.PageSize = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("期望校验失败")
			}
		})
	}
}
