// Copyright (c) 2026 Catalog. All rights reserved.

package search

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkline/catalog/internal/platform/dberr"
)

// PostgresStore runs a lowered [Plan]'s two statements directly: the
// lowerer already emits complete, parameterized SQL against
// posted_articles, so there is no schema-column indirection to apply here.
type PostgresStore struct {
	db *pgxpool.Pool
}

func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Count(ctx context.Context, plan Plan) (int, error) {
	var count int
	err := s.db.QueryRow(ctx, plan.CountSQL, plan.CountBinds...).Scan(&count)
	if err != nil {
		return 0, dberr.Wrap(err, "search_count")
	}
	return count, nil
}

func (s *PostgresStore) List(ctx context.Context, plan Plan) ([]string, error) {
	rows, err := s.db.Query(ctx, plan.ListSQL, plan.ListBinds...)
	if err != nil {
		return nil, dberr.Wrap(err, "search_list")
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dberr.Wrap(err, "search_list_scan")
		}
		ids = append(ids, id)
	}
	return ids, nil
}
