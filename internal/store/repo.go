package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/triage"
)

// QueryOpts configures run queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	Since time.Time // created at or after Since
}

// RunRepo persists triage reports. It satisfies triage.Recorder.
type RunRepo interface {
	// Append stores a report. Report IDs are unique.
	Append(ctx context.Context, report *triage.Report) error

	// Get returns the report with the given ID, or ErrNotFound.
	Get(ctx context.Context, id uuid.UUID) (*triage.Report, error)

	// List returns reports newest first. Runs created at the same instant
	// are ordered by id, descending.
	List(ctx context.Context, opts QueryOpts) ([]*triage.Report, error)

	// Prune deletes all but the keep most recent reports, in List order, and
	// returns how many were deleted. Exactly min(keep, total) runs remain.
	Prune(ctx context.Context, keep int) (int64, error)
}

// CatalogueInfo describes a stored catalogue version.
type CatalogueInfo struct {
	Version    string
	Name       string
	Conditions int
	CreatedAt  time.Time
}

// CatalogueRepo stores versioned catalogues.
type CatalogueRepo interface {
	// Save stores c under its version. Versions are immutable: saving an
	// existing version returns ErrVersionExists.
	Save(ctx context.Context, c *catalogue.Catalogue) error

	// Get returns the catalogue stored under version, or ErrNotFound.
	Get(ctx context.Context, version string) (*catalogue.Catalogue, error)

	// Latest returns the catalogue with the highest semantic version, or
	// ErrNotFound if none are stored.
	Latest(ctx context.Context) (*catalogue.Catalogue, error)

	// List returns stored versions, highest first.
	List(ctx context.Context) ([]CatalogueInfo, error)
}

var _ triage.Recorder = RunRepo(nil)
