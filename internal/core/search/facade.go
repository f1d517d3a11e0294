// Copyright (c) 2026 Catalog. All rights reserved.

/*
Package search implements the tag-search query engine: lexer, parser,
canonical query tree, SQL lowerer, and — in this file — the façade that
orchestrates them against the two-tier [cache.Manager].

Facade.Search is the only entry point a transport handler needs: parse,
canonicalize, hash, look up, and on miss, query and populate. Everything
upstream of it is pure; everything downstream is the cache manager and the
store.
*/
package search

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/inkline/catalog/internal/core/search/cache"
	"github.com/inkline/catalog/internal/platform/ctxutil"
	"github.com/inkline/catalog/pkg/normalize"
)

const (
	pinnedExpiration = "9999-01-01T00:00:00Z"
	missExpiryMin    = 15
	hitExpiryMin     = 7 * 24 * 60
)

// Facade ties the parser/lowerer to a cache manager and a store.
type Facade struct {
	cache    *cache.Manager
	store    Store
	pageSize int
	limitTag int
}

func NewFacade(c *cache.Manager, store Store, pageSize, limitTag int) *Facade {
	return &Facade{cache: c, store: store, pageSize: pageSize, limitTag: limitTag}
}

// Result is one page of a search, alongside the total match count.
type Result struct {
	IDs   []string
	Count int
}

// Search parses queryText, serves the page from cache when possible, and
// otherwise queries the store and populates the cache before returning.
func (f *Facade) Search(ctx context.Context, queryText string, page int, order Order) (Result, error) {
	tree := Parse(queryText, f.limitTag)
	key := cacheKey(tree)
	prefix := order.PagePrefix()

	if ids, count, ok := f.tryCache(key, page, prefix); ok {
		return Result{IDs: ids, Count: count}, nil
	}

	plan, err := Lower(tree, order, page, f.pageSize)
	if err != nil {
		return Result{}, err
	}

	count, err := f.store.Count(ctx, plan)
	if err != nil {
		return Result{}, err
	}
	ids, err := f.store.List(ctx, plan)
	if err != nil {
		return Result{}, err
	}

	f.populate(ctx, key, prefix, page, plan.TagBinds, count, ids)
	return Result{IDs: ids, Count: count}, nil
}

// tryCache attempts to serve page entirely from the cache manager. ok is
// false if either the count or the page itself is unavailable, in which
// case the caller must fall back to the store.
func (f *Facade) tryCache(key string, page int, prefix string) (ids []string, count int, ok bool) {
	if !f.cache.Has(key) {
		return nil, 0, false
	}
	cfg, err := f.cache.Config(key)
	if err != nil {
		return nil, 0, false
	}
	pageIDs, err := f.cache.Get(key, page, prefix)
	if err != nil {
		return nil, 0, false
	}
	return pageIDs, cfg.Count, true
}

// populate creates the cache entry if it doesn't exist yet and writes the
// requested page if it's missing. Every error here is logged at warn level
// and swallowed: cache population is best-effort and never allowed to fail a
// search that already has its answer.
func (f *Facade) populate(ctx context.Context, key, prefix string, page int, tagBinds []string, count int, ids []string) {
	if !f.cache.Has(key) {
		expiration := expirationPolicy(tagBinds, count)
		cfg := cache.Config{Count: count, MaxPage: maxPage(count, f.pageSize)}
		if err := f.cache.Create(ctx, key, dedupe(tagBinds), expiration, cfg); err != nil {
			ctxutil.GetLogger(ctx).Warn("search_cache_create_failed", slog.String("cache_key", key), slog.Any("error", err))
		}
	}
	if !f.cache.HasPage(key, prefix, page) {
		if err := f.cache.Set(key, prefix, page, ids, false); err != nil {
			ctxutil.GetLogger(ctx).Warn("search_cache_set_failed", slog.String("cache_key", key), slog.Any("error", err))
		}
	}
}

// expirationPolicy implements §4.7: a query bound to zero or exactly one tag
// with a non-empty result is pinned permanently (the result can only change
// via explicit invalidation); an empty result expires quickly in case the
// tag is created shortly after; everything else gets a week.
func expirationPolicy(tagBinds []string, count int) cache.Expiration {
	distinct := dedupe(tagBinds)

	if len(distinct) == 0 || (len(distinct) == 1 && count > 0) {
		pinned, _ := time.Parse(time.RFC3339, pinnedExpiration)
		return cache.Expiration{Expiration: pinned, Interval: 0}
	}
	if count == 0 {
		return cache.Expiration{Expiration: time.Now().Add(missExpiryMin * time.Minute), Interval: missExpiryMin}
	}
	return cache.Expiration{Expiration: time.Now().Add(hitExpiryMin * time.Minute), Interval: hitExpiryMin}
}

func maxPage(count, pageSize int) int {
	if count == 0 {
		return 1
	}
	pages := count / pageSize
	if count%pageSize != 0 {
		pages++
	}
	return pages
}

func dedupe(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// InvalidateTags drops every cache entry that depends on any of normNames.
// Called by the article domain after an article write commits; errors are
// logged at warn level and swallowed per §4.7. A missed invalidation never
// fails the write itself, but the affected entries keep serving their old
// results until they expire, which for a pinned entry is never.
func (f *Facade) InvalidateTags(ctx context.Context, normNames []string) {
	for _, name := range normNames {
		if err := f.cache.DeleteByTag(ctx, name); err != nil {
			ctxutil.GetLogger(ctx).Warn("search_cache_invalidate_failed", slog.String("tag", name), slog.Any("error", err))
		}
	}
}

// cacheKey hashes tree's canonical string after passing it through
// normalize.Token. A nil tree (no tag literals parsed) canonicalizes to the
// empty string, same as the base spec's empty-tree case.
func cacheKey(tree Node) string {
	canonical := ""
	if tree != nil {
		canonical = normalize.Token(tree.Canonical())
	}
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}
