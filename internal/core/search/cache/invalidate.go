// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"context"
	"os"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/inkline/catalog/pkg/pointer"
)

// timestampLayout names the rename-for-delete marker: <key>.<YYYYMMDDHHMMSS>.
const timestampLayout = "20060102150405"

// deleteDuringTx takes key out of the visible namespace and removes its DB
// rows, all under tx. If the directory rename fails — another process holds
// it open — the entry is left in place but its expiration is dropped to now
// so a future sweep and the next deleteByDatetime pass pick it up.
func (m *Manager) deleteDuringTx(ctx context.Context, tx pgx.Tx, key string) error {
	renamed := m.entryDir(key) + "." + time.Now().Format(timestampLayout)
	if err := os.Rename(m.entryDir(key), renamed); err == nil {
		return deleteCacheRow(ctx, tx, key)
	}

	now := time.Now()
	_ = m.Update(key, pointer.To(now))
	return syncCacheExpiration(ctx, tx, key, now)
}

// DeleteByTag invalidates every cache entry that depends on the tag named
// normName, via the temp-table join described in the schema's invalidation
// design: every cache_id referencing that tag is materialized once, then
// each is invalidated independently within the same transaction.
func (m *Manager) DeleteByTag(ctx context.Context, normName string) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		CREATE TEMPORARY TABLE delete_caches ON COMMIT DROP AS
		SELECT DISTINCT tsct.cache_id
		FROM tag_search_caches_tags tsct
		JOIN tags g ON g.id = tsct.tag_id
		WHERE g.norm_name = $1
	`, normName); err != nil {
		return err
	}

	rows, err := tx.Query(ctx, `SELECT cache_id FROM delete_caches`)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		if err := m.deleteDuringTx(ctx, tx, id); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DROP TABLE delete_caches`); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// DeleteByDatetime invalidates every DB-indexed entry whose expiration_time
// is at or before cutoff, re-checking each against its on-disk expiration
// first in case a concurrent reader already slid it into the future — in
// that race the DB row is merely synced rather than the entry invalidated.
func (m *Manager) DeleteByDatetime(ctx context.Context, cutoff time.Time) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	rows, err := tx.Query(ctx, `SELECT id FROM tag_search_caches WHERE expiration_time <= $1`, cutoff)
	if err != nil {
		return err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()

	for _, id := range ids {
		onDisk, ok, err := m.GetExpirationTime(id)
		if err != nil {
			continue // corrupt entry: leave it for manual cleanup rather than guessing
		}
		if !ok {
			continue // transient lock contention: retry on the next pass
		}
		if !onDisk.After(time.Now()) {
			if err := m.deleteDuringTx(ctx, tx, id); err != nil {
				return err
			}
			continue
		}
		if err := syncCacheExpiration(ctx, tx, id, onDisk); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}
