package app

import "testing"

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ACCESS_TOKEN_SECRET", "access-secret")
	t.Setenv("REFRESH_TOKEN_SECRET", "refresh-secret")
}

func TestLoadConfigDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig error: %v", err)
	}
	if cfg.AppAddr != ":4000" {
		t.Fatalf("unexpected addr %q", cfg.AppAddr)
	}
	if cfg.AccessTokenTTL >= cfg.RefreshTokenTTL {
		t.Fatalf("default access TTL %v must be below refresh TTL %v", cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	}
	if cfg.IsProduction() {
		t.Fatalf("development must not report production")
	}
}

func TestLoadConfigRejectsSharedSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REFRESH_TOKEN_SECRET", "access-secret")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for identical secrets")
	}
}

func TestLoadConfigRejectsInvertedTTLs(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL", "10h")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error for access TTL above refresh TTL")
	}
}
