// Copyright (c) 2026 Catalog. All rights reserved.

package article

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkline/catalog/internal/platform/database/schema"
	"github.com/inkline/catalog/internal/platform/dberr"
	"github.com/inkline/catalog/pkg/uuidv7"
)

// tagIDWidth and articleIDWidth match the schema's CHAR(14)/CHAR(12) columns.
const (
	tagIDWidth     = 14
	articleIDWidth = 12
)

// PostgresRepository is the pgx-backed [Repository].
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Set upserts the article row, then diffs its existing tag set against tags
// to compute exactly which join rows to insert and which to remove. Both
// the diffed sets are normalized already by the caller.
func (repository *PostgresRepository) Set(ctx context.Context, id, postDate, updateDate string, tags []string) ([]string, error) {
	if id == "" {
		id = uuidv7.Short(articleIDWidth)
	}

	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "article_set_begin")
	}
	defer tx.Rollback(ctx)

	upsertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s
	`,
		schema.PostedArticle.Table, schema.PostedArticle.ID, schema.PostedArticle.PostDate, schema.PostedArticle.UpdateDate,
		schema.PostedArticle.ID,
		schema.PostedArticle.PostDate, schema.PostedArticle.PostDate,
		schema.PostedArticle.UpdateDate, schema.PostedArticle.UpdateDate,
	)
	if _, err := tx.Exec(ctx, upsertQuery, id, postDate, updateDate); err != nil {
		return nil, dberr.Wrap(err, "article_upsert")
	}

	existing, err := existingTags(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	toInsert, toRemove := diff(existing, tags)

	for _, name := range toInsert {
		tagID, err := ensureTag(ctx, tx, name)
		if err != nil {
			return nil, err
		}
		joinQuery := fmt.Sprintf(`INSERT INTO %s (%s, %s) VALUES ($1, $2)`,
			schema.PostedArticleTag.Table, schema.PostedArticleTag.ArticleID, schema.PostedArticleTag.TagID)
		if _, err := tx.Exec(ctx, joinQuery, id, tagID); err != nil {
			return nil, dberr.Wrap(err, "article_tag_insert")
		}
	}

	if len(toRemove) > 0 {
		removeQuery := fmt.Sprintf(`
			DELETE FROM %s
			WHERE %s = $1 AND %s IN (SELECT %s FROM %s WHERE %s = ANY($2))
		`,
			schema.PostedArticleTag.Table, schema.PostedArticleTag.ArticleID, schema.PostedArticleTag.TagID,
			schema.Tag.ID, schema.Tag.Table, schema.Tag.NormName,
		)
		if _, err := tx.Exec(ctx, removeQuery, id, toRemove); err != nil {
			return nil, dberr.Wrap(err, "article_tag_remove")
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "article_set_commit")
	}

	return append(toInsert, toRemove...), nil
}

// Delete removes id's join rows and article row, returning the tags it
// carried just before deletion so the caller can invalidate them.
func (repository *PostgresRepository) Delete(ctx context.Context, id string) ([]string, error) {
	tagsBefore, err := repository.tagsOf(ctx, id)
	if err != nil {
		return nil, err
	}

	tx, err := repository.db.Begin(ctx)
	if err != nil {
		return nil, dberr.Wrap(err, "article_delete_begin")
	}
	defer tx.Rollback(ctx)

	joinQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.PostedArticleTag.Table, schema.PostedArticleTag.ArticleID)
	if _, err := tx.Exec(ctx, joinQuery, id); err != nil {
		return nil, dberr.Wrap(err, "article_delete_tags")
	}

	articleQuery := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.PostedArticle.Table, schema.PostedArticle.ID)
	if _, err := tx.Exec(ctx, articleQuery, id); err != nil {
		return nil, dberr.Wrap(err, "article_delete")
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, dberr.Wrap(err, "article_delete_commit")
	}

	return tagsBefore, nil
}

func (repository *PostgresRepository) tagsOf(ctx context.Context, articleID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT g.%s FROM %s t JOIN %s g ON g.%s = t.%s WHERE t.%s = $1
	`,
		schema.Tag.NormName, schema.PostedArticleTag.Table, schema.Tag.Table,
		schema.Tag.ID, schema.PostedArticleTag.TagID, schema.PostedArticleTag.ArticleID,
	)
	rows, err := repository.db.Query(ctx, query, articleID)
	if err != nil {
		return nil, dberr.Wrap(err, "article_tags_of")
	}
	defer rows.Close()

	return scanNormNames(rows)
}

func existingTags(ctx context.Context, tx pgx.Tx, articleID string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT g.%s FROM %s t JOIN %s g ON g.%s = t.%s WHERE t.%s = $1
	`,
		schema.Tag.NormName, schema.PostedArticleTag.Table, schema.Tag.Table,
		schema.Tag.ID, schema.PostedArticleTag.TagID, schema.PostedArticleTag.ArticleID,
	)
	rows, err := tx.Query(ctx, query, articleID)
	if err != nil {
		return nil, dberr.Wrap(err, "article_existing_tags")
	}
	defer rows.Close()

	return scanNormNames(rows)
}

func scanNormNames(rows pgx.Rows) ([]string, error) {
	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, dberr.Wrap(err, "article_scan_tag_name")
		}
		names = append(names, name)
	}
	return names, nil
}

// ensureTag resolves name to a tag id, creating the row if it doesn't exist.
func ensureTag(ctx context.Context, tx pgx.Tx, name string) (string, error) {
	selectQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, schema.Tag.ID, schema.Tag.Table, schema.Tag.NormName)
	var id string
	err := tx.QueryRow(ctx, selectQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if err != pgx.ErrNoRows {
		return "", dberr.Wrap(err, "tag_lookup")
	}

	id = uuidv7.Short(tagIDWidth)
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3)
		ON CONFLICT (%s) DO UPDATE SET %s = %s.%s
		RETURNING %s
	`,
		schema.Tag.Table, schema.Tag.ID, schema.Tag.OrgName, schema.Tag.NormName,
		schema.Tag.NormName, schema.Tag.ID, schema.Tag.Table, schema.Tag.ID,
		schema.Tag.ID,
	)
	if err := tx.QueryRow(ctx, insertQuery, id, name, name).Scan(&id); err != nil {
		return "", dberr.Wrap(err, "tag_insert")
	}
	return id, nil
}

// diff splits tags into what must be inserted (present in tags, absent from
// existing) and removed (present in existing, absent from tags).
func diff(existing, tags []string) (toInsert, toRemove []string) {
	existingSet := toSet(existing)
	tagSet := toSet(tags)

	for _, t := range tags {
		if _, ok := existingSet[t]; !ok {
			toInsert = append(toInsert, t)
		}
	}
	for _, t := range existing {
		if _, ok := tagSet[t]; !ok {
			toRemove = append(toRemove, t)
		}
	}
	return toInsert, toRemove
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
