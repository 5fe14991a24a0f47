package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadUsesDefaultsAndYAMLOverrides(t *testing.T) {
	clearConfigEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "config.yaml")
	yaml := `
http:
  addr: ":9090"
session:
  ttl: 12h
matching:
  top_k: 3
s3:
  bucket: photos-test
  url_ttl: 5m
`
	if err := os.WriteFile(path, []byte(yaml), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":9090" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 12*time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.Session.TTL)
	}
	if cfg.Matching.TopK != 3 {
		t.Fatalf("unexpected matching top_k: %d", cfg.Matching.TopK)
	}
	if cfg.S3.Bucket != "photos-test" {
		t.Fatalf("unexpected s3 bucket: %s", cfg.S3.Bucket)
	}
	if cfg.S3.URLTTL != 5*time.Minute {
		t.Fatalf("unexpected s3 url ttl: %s", cfg.S3.URLTTL)
	}

	if cfg.Matching.CandidateLimit != 500 {
		t.Fatalf("matching candidate_limit default should stay 500, got %d", cfg.Matching.CandidateLimit)
	}
	if cfg.HTTP.ReadTimeout != 5*time.Second {
		t.Fatalf("http read timeout default should stay 5s, got %s", cfg.HTTP.ReadTimeout)
	}
}

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config with missing file: %v", err)
	}

	if cfg.Matching.TopK != 5 {
		t.Fatalf("unexpected default top_k: %d", cfg.Matching.TopK)
	}
	if cfg.Session.TTL != 24*time.Hour {
		t.Fatalf("unexpected default session ttl: %s", cfg.Session.TTL)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected default redis addr: %s", cfg.Redis.Addr)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HTTP_ADDR", ":7070")
	t.Setenv("SESSION_TTL", "36h")
	t.Setenv("MATCHING_TOP_K", "7")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.HTTP.Addr != ":7070" {
		t.Fatalf("unexpected http addr: %s", cfg.HTTP.Addr)
	}
	if cfg.Session.TTL != 36*time.Hour {
		t.Fatalf("unexpected session ttl: %s", cfg.Session.TTL)
	}
	if cfg.Matching.TopK != 7 {
		t.Fatalf("unexpected matching top_k: %d", cfg.Matching.TopK)
	}
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV",
		"HTTP_ADDR",
		"HTTP_READ_TIMEOUT",
		"HTTP_WRITE_TIMEOUT",
		"HTTP_IDLE_TIMEOUT",
		"LOG_LEVEL",
		"POSTGRES_DSN",
		"REDIS_ADDR",
		"REDIS_PASSWORD",
		"REDIS_DB",
		"S3_ENDPOINT",
		"S3_ACCESS_KEY",
		"S3_SECRET_KEY",
		"S3_BUCKET",
		"S3_USE_SSL",
		"S3_URL_TTL",
		"JWT_SECRET",
		"SESSION_TTL",
		"MATCHING_TOP_K",
		"MATCHING_CANDIDATE_LIMIT",
	} {
		t.Setenv(key, "")
	}
}
