package triage

import (
	"os"
	"runtime"
	"strconv"

	"github.com/abhisek/triage/internal/fuzzy"
)

// Config holds ranker configuration.
type Config struct {
	// Workers bounds how many conditions are scored concurrently.
	// Default: GOMAXPROCS.
	Workers int

	// ParallelThreshold is the catalogue size above which scoring fans
	// out to workers. Smaller catalogues are scored inline. Default: 256.
	ParallelThreshold int

	// MaxDepth is the evaluator's recursion guard. Default: 64.
	MaxDepth int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Workers:           runtime.GOMAXPROCS(0),
		ParallelThreshold: 256,
		MaxDepth:          fuzzy.DefaultMaxDepth,
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset or unparsable values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if n, ok := envInt("TRIAGE_WORKERS"); ok && n > 0 {
		cfg.Workers = n
	}
	if n, ok := envInt("TRIAGE_PARALLEL_THRESHOLD"); ok && n >= 0 {
		cfg.ParallelThreshold = n
	}
	if n, ok := envInt("TRIAGE_MAX_DEPTH"); ok && n > 0 {
		cfg.MaxDepth = n
	}

	return cfg
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
