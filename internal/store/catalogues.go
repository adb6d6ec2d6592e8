package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/triage/internal/catalogue"
)

// catalogueRepo implements CatalogueRepo. Catalogues are stored as their
// JSON documents.
type catalogueRepo struct {
	db *sql.DB
}

func (r *catalogueRepo) Save(ctx context.Context, c *catalogue.Catalogue) error {
	version, err := catalogue.CanonicalVersion(c.Version)
	if err != nil {
		return err
	}
	doc, err := catalogue.Marshal(c, catalogue.FormatJSON)
	if err != nil {
		return err
	}

	exists, err := r.exists(ctx, version)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("save catalogue %s: %w", version, ErrVersionExists)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(cataloguesTable).
		Columns("version", "name", "condition_count", "created_at", "document").
		Values(version, c.Name, len(c.Conditions), time.Now().UnixNano(), doc).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save catalogue %s: %w", version, err)
	}
	return nil
}

func (r *catalogueRepo) exists(ctx context.Context, version string) (bool, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(cataloguesTable)).
		Where(entsql.EQ("version", version)).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("query catalogue %s: %w", version, err)
	}
	return n > 0, nil
}

func (r *catalogueRepo) Get(ctx context.Context, version string) (*catalogue.Catalogue, error) {
	canon, err := catalogue.CanonicalVersion(version)
	if err != nil {
		return nil, err
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Select("document").
		From(entsql.Table(cataloguesTable)).
		Where(entsql.EQ("version", canon)).
		Query()

	var doc []byte
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("catalogue %s: %w", canon, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query catalogue %s: %w", canon, err)
	}

	c, err := catalogue.Parse(doc, catalogue.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("decode catalogue %s: %w", canon, err)
	}
	return c, nil
}

func (r *catalogueRepo) Latest(ctx context.Context) (*catalogue.Catalogue, error) {
	infos, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return nil, fmt.Errorf("latest catalogue: %w", ErrNotFound)
	}
	return r.Get(ctx, infos[0].Version)
}

func (r *catalogueRepo) List(ctx context.Context) ([]CatalogueInfo, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("version", "name", "condition_count", "created_at").
		From(entsql.Table(cataloguesTable)).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query catalogues: %w", err)
	}
	defer rows.Close()

	var infos []CatalogueInfo
	for rows.Next() {
		var (
			info    CatalogueInfo
			created int64
		)
		if err := rows.Scan(&info.Version, &info.Name, &info.Conditions, &created); err != nil {
			return nil, fmt.Errorf("scan catalogue: %w", err)
		}
		info.CreatedAt = time.Unix(0, created).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate catalogues: %w", err)
	}

	// Semantic order is not lexical order, so sort here rather than in SQL.
	sort.Slice(infos, func(i, j int) bool {
		return catalogue.CompareVersions(infos[i].Version, infos[j].Version) > 0
	})
	return infos, nil
}
