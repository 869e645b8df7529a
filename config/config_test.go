package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("JWT_REFRESH_TTL", "")
	cfg := Load()
	if cfg.AccessTTL != 15*time.Minute {
		t.Fatalf("expected 15m access ttl, got %v", cfg.AccessTTL)
	}
	if cfg.RefreshTTL != 168*time.Hour {
		t.Fatalf("expected 168h refresh ttl, got %v", cfg.RefreshTTL)
	}
	if cfg.JWTLeeway != 0 {
		t.Fatalf("expected zero leeway, got %v", cfg.JWTLeeway)
	}
}

func TestLoadOverridesAndBadValues(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "5m")
	t.Setenv("JWT_LEEWAY", "not-a-duration")
	t.Setenv("MAX_REFRESH_TOKENS", "3")
	t.Setenv("MAIL_SEND_ENABLED", "maybe")

	cfg := Load()
	if cfg.AccessTTL != 5*time.Minute {
		t.Fatalf("expected override, got %v", cfg.AccessTTL)
	}
	if cfg.JWTLeeway != 0 {
		t.Fatalf("expected default on bad duration, got %v", cfg.JWTLeeway)
	}
	if cfg.MaxRefreshTokens != 3 {
		t.Fatalf("expected 3, got %d", cfg.MaxRefreshTokens)
	}
	if cfg.MailSendEnabled {
		t.Fatal("expected default on bad bool")
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: " http://a.test , ,http://b.test", ElasticsearchAddrs: ""}
	got := cfg.CORSOrigins()
	if len(got) != 2 || got[0] != "http://a.test" || got[1] != "http://b.test" {
		t.Fatalf("unexpected origins %v", got)
	}
	if len(cfg.ESAddrs()) != 0 {
		t.Fatal("expected no ES addresses")
	}
}

func TestWarnings(t *testing.T) {
	cfg := &Config{Env: "production", JWTSecret: DevJWTSecret, AccessTTL: time.Minute, RefreshTTL: time.Hour}
	if len(cfg.Warnings()) != 2 {
		t.Fatalf("expected secret and google warnings, got %v", cfg.Warnings())
	}
	cfg = &Config{Env: "development", JWTSecret: DevJWTSecret, GoogleClientID: "id", AccessTTL: time.Minute, RefreshTTL: time.Hour}
	if w := cfg.Warnings(); len(w) != 0 {
		t.Fatalf("expected no warnings, got %v", w)
	}
}
