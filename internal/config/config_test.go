package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("PAPERS_S3_BUCKET", "papers-test")
	os.Setenv("PAPERS_AWS_REGION", "eu-west-1")
	os.Setenv("PAPERS_MAX_ASSET_SIZE", "5M")
	os.Setenv("PAPERS_MAX_ASSETS_PER_DOCUMENT", "3")
	os.Setenv("PAPERS_BEARER", "secret-string")
	defer func() {
		for _, k := range []string{
			"PAPERS_S3_BUCKET", "PAPERS_AWS_REGION", "PAPERS_MAX_ASSET_SIZE",
			"PAPERS_MAX_ASSETS_PER_DOCUMENT", "PAPERS_BEARER",
		} {
			os.Unsetenv(k)
		}
	}()

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.S3.Bucket != "papers-test" {
		t.Fatalf("unexpected bucket: %+v", cfg.S3)
	}
	if cfg.Job.MaxAssetSize != 5_000_000 {
		t.Fatalf("unexpected max asset size: %d", cfg.Job.MaxAssetSize)
	}
	if cfg.Job.MaxAssetsPerDocument != 3 {
		t.Fatalf("unexpected max assets per document: %d", cfg.Job.MaxAssetsPerDocument)
	}
	if cfg.Server.Bearer != "secret-string" {
		t.Fatalf("unexpected bearer: %q", cfg.Server.Bearer)
	}
}

func TestIsDebugActive(t *testing.T) {
	cfg := &Config{Log: LogConfig{Level: "PAPERS_LOG_LEVEL=debug-ish"}}
	if !cfg.IsDebugActive() {
		t.Fatalf("expected debug-active for substring match")
	}
	cfg.Log.Level = "info"
	if cfg.IsDebugActive() {
		t.Fatalf("expected not debug-active for info")
	}
}
