package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8090" {
		t.Errorf("Port = %q, want 8090", cfg.Port)
	}
	if cfg.MaxUploadBytes != 52428800 {
		t.Errorf("MaxUploadBytes = %d", cfg.MaxUploadBytes)
	}
	if cfg.DefaultChunkSize != 1500 || cfg.DefaultChunkOverlap != 200 {
		t.Errorf("chunk defaults = %d/%d", cfg.DefaultChunkSize, cfg.DefaultChunkOverlap)
	}
	if cfg.WorkerCount != 4 || cfg.MaxQueueSize != 100 {
		t.Errorf("pipeline defaults = %d/%d", cfg.WorkerCount, cfg.MaxQueueSize)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("JobTTL = %v", cfg.JobTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DEFAULT_CHUNK_SIZE", "800")
	t.Setenv("DEFAULT_CHUNK_OVERLAP", "100")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("JOB_TTL", "30m")
	t.Setenv("PDF_FALLBACK_PDFTOTEXT", "false")

	cfg := Load()

	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.DefaultChunkSize != 800 || cfg.DefaultChunkOverlap != 100 {
		t.Errorf("chunk config = %d/%d", cfg.DefaultChunkSize, cfg.DefaultChunkOverlap)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("WorkerCount = %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != 30*time.Minute {
		t.Errorf("JobTTL = %v", cfg.JobTTL)
	}
	if cfg.PDFFallbackPdftotext {
		t.Error("PDFFallbackPdftotext should be disabled")
	}
}

func TestLoad_ClampsInvalidOverlap(t *testing.T) {
	t.Setenv("DEFAULT_CHUNK_SIZE", "100")
	t.Setenv("DEFAULT_CHUNK_OVERLAP", "100")

	cfg := Load()

	if cfg.DefaultChunkOverlap >= cfg.DefaultChunkSize {
		t.Errorf("overlap %d not clamped below size %d", cfg.DefaultChunkOverlap, cfg.DefaultChunkSize)
	}
}

func TestValidate_RequiresAPIKey(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing API key")
	}
	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
