package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"

	"github.com/abhisek/triage/internal/triage"
)

// runRepo implements RunRepo with ent's SQL builders.
type runRepo struct {
	db *sql.DB
}

func (r *runRepo) Append(ctx context.Context, report *triage.Report) error {
	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	var top any
	if len(report.Results) > 0 {
		top = report.Results[0].ConditionID
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(runsTable).
		Columns("id", "created_at", "catalogue_version", "top_condition", "result_count", "report").
		Values(report.ID.String(), report.CreatedAt.UnixNano(), report.CatalogueVersion, top, len(report.Results), data).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append run: %w", err)
	}
	return nil
}

func (r *runRepo) Get(ctx context.Context, id uuid.UUID) (*triage.Report, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("report").
		From(entsql.Table(runsTable)).
		Where(entsql.EQ("id", id.String())).
		Query()

	var data []byte
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query run: %w", err)
	}
	return decodeReport(data)
}

func (r *runRepo) List(ctx context.Context, opts QueryOpts) ([]*triage.Report, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("report").
		From(entsql.Table(runsTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id"))
	if !opts.Since.IsZero() {
		sel.Where(entsql.GTE("created_at", opts.Since.UnixNano()))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var reports []*triage.Report
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rep, err := decodeReport(data)
		if err != nil {
			return nil, err
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return reports, nil
}

func (r *runRepo) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("prune runs: keep must be >= 0, got %d", keep)
	}

	// Find the newest run that should go. Runs are ordered by creation time,
	// then id, the same order List uses.
	query, args := entsql.Dialect(dialect.SQLite).
		Select("created_at", "id").
		From(entsql.Table(runsTable)).
		OrderBy(entsql.Desc("created_at"), entsql.Desc("id")).
		Limit(1).
		Offset(keep).
		Query()

	var (
		threshold int64
		lastID    string
	)
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&threshold, &lastID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil // fewer than keep runs exist
	}
	if err != nil {
		return 0, fmt.Errorf("query runs for prune: %w", err)
	}

	query, args = entsql.Dialect(dialect.SQLite).
		Delete(runsTable).
		Where(entsql.Or(
			entsql.LT("created_at", threshold),
			entsql.And(
				entsql.EQ("created_at", threshold),
				entsql.LTE("id", lastID),
			),
		)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("prune runs: %w", err)
	}
	return n, nil
}

func decodeReport(data []byte) (*triage.Report, error) {
	var rep triage.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &rep, nil
}
