// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inkline/catalog/internal/platform/database/schema"
)

// ensureCacheRow inserts (key, expiration) and one (key, tag) row per
// tagValue that resolves to a known tag, or — if key already has a row —
// updates only its expiration_time. Tag values with no matching row in tags
// are silently omitted, matching the tolerant-by-design tag resolution used
// throughout the search domain.
func ensureCacheRow(ctx context.Context, tx pgx.Tx, key string, tagValues []string, expiration time.Time) error {
	var exists bool
	existsQuery := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.TagSearchCache.Table, schema.TagSearchCache.ID)
	if err := tx.QueryRow(ctx, existsQuery, key).Scan(&exists); err != nil {
		return err
	}

	if exists {
		updateQuery := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
			schema.TagSearchCache.Table, schema.TagSearchCache.ExpirationTime, schema.TagSearchCache.ID)
		_, err := tx.Exec(ctx, updateQuery, expiration, key)
		return err
	}

	insertQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
		schema.TagSearchCache.Table, schema.TagSearchCache.ID, schema.TagSearchCache.ExpirationTime)
	if _, err := tx.Exec(ctx, insertQuery, key, expiration); err != nil {
		return err
	}

	if len(tagValues) == 0 {
		return nil
	}

	joinQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s)
		SELECT $1, id FROM %s WHERE %s = ANY($2)
	`,
		schema.TagSearchCacheTag.Table, schema.TagSearchCacheTag.CacheID, schema.TagSearchCacheTag.TagID,
		schema.Tag.Table, schema.Tag.NormName,
	)
	_, err := tx.Exec(ctx, joinQuery, key, tagValues)
	return err
}

// deleteCacheRow removes key's index row and its tag associations.
func deleteCacheRow(ctx context.Context, tx pgx.Tx, key string) error {
	tagQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.TagSearchCacheTag.Table, schema.TagSearchCacheTag.CacheID)
	if _, err := tx.Exec(ctx, tagQuery, key); err != nil {
		return err
	}

	entryQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.TagSearchCache.Table, schema.TagSearchCache.ID)
	_, err := tx.Exec(ctx, entryQuery, key)
	return err
}

// syncCacheExpiration overwrites key's DB expiration_time to match an
// on-disk value a reader has already extended, without touching the
// filesystem.
func syncCacheExpiration(ctx context.Context, tx pgx.Tx, key string, expiration time.Time) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $1 WHERE %s = $2`,
		schema.TagSearchCache.Table, schema.TagSearchCache.ExpirationTime, schema.TagSearchCache.ID)
	_, err := tx.Exec(ctx, query, expiration, key)
	return err
}
