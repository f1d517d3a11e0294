// Copyright (c) 2026 Catalog. All rights reserved.

/*
Package cache implements the two-tier result cache for tag searches: a
relational index (tag_search_caches / tag_search_caches_tags) recording which
keys exist and when they expire, plus a filesystem tree of JSON files holding
the actual page data. The two tiers are kept loosely consistent — the
database is authoritative for "does this key exist and what tags does it
depend on", the filesystem is authoritative for "what did we compute".

Every entry lives at <base>/<key>/ and holds three kinds of file:

  - expiration.json — {expiration, interval}, mutated under an exclusive lock
    on every slide-forward.
  - config.json — {count, max-page}, written once at creation and never
    modified again.
  - <prefix><page>.json — one JSON array of article ids per page, written
    once under an exclusive lock.

Concurrent readers never block each other and never block a writer that is
sliding the expiration forward; a writer invalidating an entry never blocks
on readers either — it renames the directory out of the visible namespace
and leaves the old directory for [Manager.Sweep] to reclaim.
*/
package cache

import (
	"errors"
	"time"
)

// ErrMiss indicates the requested key or page is not present in the cache,
// whether because it was never created, a file is missing, or a file failed
// to parse. Callers treat it uniformly as "go compute this".
var ErrMiss = errors.New("cache: miss")

// ErrCorrupt indicates an entry's expiration.json is absent, so the entry is
// incomplete. GetExpirationTime returns it; Get never does, since it reports
// every missing or unparsable file as ErrMiss.
var ErrCorrupt = errors.New("cache: corrupt entry")

// Config is the page-count metadata written once when an entry is created.
type Config struct {
	Count   int `json:"count"`
	MaxPage int `json:"max-page"`
}

// Expiration is the sliding-expiration record. Interval is in minutes; zero
// means the expiration is absolute and never slides.
type Expiration struct {
	Expiration time.Time `json:"expiration"`
	Interval   int       `json:"interval"`
}

func (e Expiration) pinned() bool { return e.Interval == 0 }
