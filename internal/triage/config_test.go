package triage

import (
	"testing"

	"github.com/abhisek/triage/internal/fuzzy"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Workers < 1 {
		t.Errorf("Workers = %d, want >= 1", cfg.Workers)
	}
	if cfg.ParallelThreshold != 256 {
		t.Errorf("ParallelThreshold = %d, want 256", cfg.ParallelThreshold)
	}
	if cfg.MaxDepth != fuzzy.DefaultMaxDepth {
		t.Errorf("MaxDepth = %d, want %d", cfg.MaxDepth, fuzzy.DefaultMaxDepth)
	}
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("TRIAGE_WORKERS", "3")
	t.Setenv("TRIAGE_PARALLEL_THRESHOLD", "0")
	t.Setenv("TRIAGE_MAX_DEPTH", "12")

	cfg := ConfigFromEnv()
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
	if cfg.ParallelThreshold != 0 {
		t.Errorf("ParallelThreshold = %d, want 0", cfg.ParallelThreshold)
	}
	if cfg.MaxDepth != 12 {
		t.Errorf("MaxDepth = %d, want 12", cfg.MaxDepth)
	}
}

func TestConfigFromEnv_IgnoresBadValues(t *testing.T) {
	t.Setenv("TRIAGE_WORKERS", "many")
	t.Setenv("TRIAGE_MAX_DEPTH", "-4")

	got := ConfigFromEnv()
	want := DefaultConfig()
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}
