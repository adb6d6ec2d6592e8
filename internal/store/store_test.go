package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triage/internal/catalogue"
	"github.com/abhisek/triage/internal/rules"
	"github.com/abhisek/triage/internal/triage"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "triage.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil database handle")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "triage.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		require.NoError(t, err, "open #%d", i)
		require.NoError(t, s.Close())
	}
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TRIAGE_DB", filepath.Join(dir, "custom", "x.db"))
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "custom", "x.db"), p)
	assert.DirExists(t, filepath.Join(dir, "custom"))

	t.Setenv("TRIAGE_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "triage", "triage.db"), p)
}

func newReport(at time.Time, top string) *triage.Report {
	rep := &triage.Report{
		ID:               uuid.New(),
		CreatedAt:        at,
		CatalogueVersion: "1.0.0",
		Symptoms:         []string{"fever"},
		Contexts:         []string{},
		Results:          []triage.Result{},
	}
	if top != "" {
		rep.Results = append(rep.Results, triage.Result{ConditionID: top, Label: top, Score: 0.5, Base: 0.5})
	}
	return rep
}

func TestRunAppendAndGet(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	now := time.Now().UTC()
	rep := newReport(now, "influenza")
	rep.UnrecognizedSymptoms = []string{"glowing"}
	require.NoError(t, repo.Append(ctx, rep))

	got, err := repo.Get(ctx, rep.ID)
	require.NoError(t, err)
	assert.Equal(t, rep.ID, got.ID)
	assert.True(t, now.Equal(got.CreatedAt), "created at %v, want %v", got.CreatedAt, now)
	assert.Equal(t, rep.Results, got.Results)
	assert.Equal(t, []string{"glowing"}, got.UnrecognizedSymptoms)

	_, err = repo.Get(ctx, uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))

	// IDs are primary keys.
	assert.Error(t, repo.Append(ctx, rep))
}

func TestRunListAndPrune(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var reps []*triage.Report
	for i := 0; i < 5; i++ {
		rep := newReport(base.Add(time.Duration(i)*time.Hour), "")
		reps = append(reps, rep)
		require.NoError(t, repo.Append(ctx, rep))
	}

	all, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, reps[4].ID, all[0].ID, "newest first")
	assert.Equal(t, reps[0].ID, all[4].ID)

	limited, err := repo.List(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, reps[3].ID, limited[1].ID)

	since, err := repo.List(ctx, QueryOpts{Since: base.Add(3 * time.Hour)})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	n, err := repo.Prune(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, left, 3)
	assert.Equal(t, reps[2].ID, left[2].ID)

	n, err = repo.Prune(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = repo.Prune(ctx, -1)
	assert.Error(t, err)
}

func TestRunPruneBreaksTimestampTies(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Append(ctx, newReport(at.Add(-time.Minute), "")))
	for i := 0; i < 4; i++ {
		require.NoError(t, repo.Append(ctx, newReport(at, "")))
	}

	before, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, before, 5)

	n, err := repo.Prune(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	left, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, left, 2)
	assert.Equal(t, before[0].ID, left[0].ID)
	assert.Equal(t, before[1].ID, left[1].ID)

	n, err = repo.Prune(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestRunRepoRecordsTriage(t *testing.T) {
	s := openTestStore(t)
	svc := triage.NewService(catalogue.Builtin(), triage.NewRanker(triage.DefaultConfig()), s.RunRepo(), nil)
	ctx := context.Background()

	rep, err := svc.Triage(ctx, triage.Request{Symptoms: []string{"fever", "stiff_neck", "headache"}})
	require.NoError(t, err)

	got, err := s.RunRepo().Get(ctx, rep.ID)
	require.NoError(t, err)
	require.NotEmpty(t, got.Results)
	assert.Equal(t, "meningitis", got.Results[0].ConditionID)

	var top string
	require.NoError(t, s.DB().QueryRow("SELECT top_condition FROM triage_runs WHERE id = ?", rep.ID.String()).Scan(&top))
	assert.Equal(t, "meningitis", top)
}

func testCatalogue(version string) *catalogue.Catalogue {
	return catalogue.New(version, "clinic",
		[]catalogue.Symptom{{ID: "a", Label: "A"}},
		[]catalogue.Context{{ID: "x", Label: "X"}},
		[]catalogue.Condition{{ID: "c", Label: "C", Rule: rules.Negate(rules.Sym("a"))}},
	)
}

func TestCatalogueSaveGetLatest(t *testing.T) {
	repo := openTestStore(t).CatalogueRepo()
	ctx := context.Background()

	_, err := repo.Latest(ctx)
	assert.True(t, errors.Is(err, ErrNotFound))

	for _, v := range []string{"1.2.0", "1.10.0", "1.9.3"} {
		require.NoError(t, repo.Save(ctx, testCatalogue(v)))
	}

	err = repo.Save(ctx, testCatalogue("v1.2.0"))
	assert.True(t, errors.Is(err, ErrVersionExists))

	latest, err := repo.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.10.0", latest.Version)
	assert.Equal(t, "clinic", latest.Name)
	require.Len(t, latest.Conditions, 1)
	assert.Equal(t, rules.KindNot, latest.Conditions[0].Rule.Kind())

	got, err := repo.Get(ctx, "v1.9.3")
	require.NoError(t, err)
	assert.Equal(t, "1.9.3", got.Version)

	_, err = repo.Get(ctx, "2.0.0")
	assert.True(t, errors.Is(err, ErrNotFound))

	infos, err := repo.List(ctx)
	require.NoError(t, err)
	versions := make([]string, 0, len(infos))
	for _, info := range infos {
		versions = append(versions, info.Version)
		assert.Equal(t, 1, info.Conditions)
		assert.False(t, info.CreatedAt.IsZero())
	}
	assert.Equal(t, []string{"1.10.0", "1.9.3", "1.2.0"}, versions)
}

func TestCatalogueSaveBuiltin(t *testing.T) {
	repo := openTestStore(t).CatalogueRepo()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, catalogue.Builtin()))
	got, err := repo.Get(ctx, catalogue.BuiltinVersion)
	require.NoError(t, err)
	assert.Len(t, got.Conditions, len(catalogue.Builtin().Conditions))
	assert.NoError(t, catalogue.Validate(got))
}

func TestCatalogueSaveRejectsBadVersion(t *testing.T) {
	repo := openTestStore(t).CatalogueRepo()
	err := repo.Save(context.Background(), testCatalogue("latest"))
	assert.Error(t, err)
}
