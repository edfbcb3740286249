package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Port != 8080 {
		t.Errorf("app port = %d, want 8080", cfg.App.Port)
	}
	if cfg.JWT.AccessTokenTTL != 24*time.Hour {
		t.Errorf("token ttl = %v, want 24h", cfg.JWT.AccessTokenTTL)
	}
	if cfg.RateLimit.LoginMaxAttempts != 5 {
		t.Errorf("login max attempts = %d, want 5", cfg.RateLimit.LoginMaxAttempts)
	}
	if cfg.Verify.PageSize != 200 {
		t.Errorf("verify page size = %d, want 200", cfg.Verify.PageSize)
	}
	if cfg.Verify.HTTPTimeout != 10*time.Second {
		t.Errorf("verify http timeout = %v, want 10s", cfg.Verify.HTTPTimeout)
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("COMMUNITY_APP_PORT", "9090")
	t.Setenv("COMMUNITY_JWT_SECRET", "c2VjcmV0")
	t.Setenv("COMMUNITY_VERIFY_BASE_URL", "http://api.internal:8080")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.App.Port != 9090 {
		t.Errorf("app port = %d, want 9090", cfg.App.Port)
	}
	if cfg.JWT.Secret != "c2VjcmV0" {
		t.Errorf("jwt secret = %q", cfg.JWT.Secret)
	}
	if cfg.Verify.BaseURL != "http://api.internal:8080" {
		t.Errorf("verify base url = %q", cfg.Verify.BaseURL)
	}
}
