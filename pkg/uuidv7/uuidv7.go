// Copyright (c) 2026 Catalog. All rights reserved.

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// # Why UUIDv7?
//
// Article and tag primary keys are built from it via [Short], which truncates
// it to the tables' fixed id width. Because it is time-sortable, it keeps
// those keys clustered-index friendly in PostgreSQL, avoiding the "index
// fragmentation" common with random UUIDv4.
package uuidv7

import (
	"strings"

	"github.com/google/uuid"
)

// New generates a new UUIDv7 string.
//
// # Safety
//
// It panics only if the OS random source is unavailable (extremely rare).
// This is acceptable as OS entropy failure is an unrecoverable system-level error.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic("uuidv7: failed to generate UUID: " + err.Error())
	}

	return id.String()
}

// Must generates a new UUIDv7 or panics.
//
// This is an alias for [New] kept for readability and consistency with
// Go's "Must" pattern in call sites.
func Must() string {
	return New()
}

// Short returns the first n hex characters of a freshly generated UUIDv7
// with hyphens stripped. Some tables use a fixed-width id narrower than a
// full UUID; truncating keeps most of the leading, time-ordered bits intact
// so ids stay roughly chronologically sortable even at reduced width.
func Short(n int) string {
	full := strings.ReplaceAll(New(), "-", "")
	if n > len(full) {
		n = len(full)
	}
	return full[:n]
}
