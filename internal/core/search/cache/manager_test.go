// Copyright (c) 2026 Catalog. All rights reserved.

package cache

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seed writes an entry's expiration.json and config.json directly, bypassing
// Create (and its DB-indexed row) so these tests can run without a Postgres
// pool. Manager's read/update/sweep paths never touch the database.
func seed(t *testing.T, m *Manager, key string, exp Expiration, cfg Config) {
	t.Helper()
	require.NoError(t, os.MkdirAll(m.entryDir(key), 0o777))
	require.NoError(t, writeJSONExclusive(m.expirationPath(key), exp))
	require.NoError(t, writeJSONExclusive(m.configPath(key), cfg))
}

/*
TestExpiration_Pinned checks that an Interval of zero marks an entry as
pinned (never slides), and any nonzero interval does not.
*/
func TestExpiration_Pinned(t *testing.T) {
	assert.True(t, Expiration{Interval: 0}.pinned())
	assert.False(t, Expiration{Interval: 15}.pinned())
}

/*
TestManager_Has checks that Has requires the directory and both metadata
files to exist, not just the directory.
*/
func TestManager_Has(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	assert.False(t, m.Has("missing"))

	seed(t, m, "present", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 15}, Config{Count: 1, MaxPage: 1})
	assert.True(t, m.Has("present"))
}

/*
TestManager_Get_OutOfRangePage checks that a page number outside
[1, MaxPage] is a valid empty result, never touching the filesystem for the
page file itself.
*/
func TestManager_Get_OutOfRangePage(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	seed(t, m, "k", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 15}, Config{Count: 5, MaxPage: 1})

	ids, err := m.Get("k", 2, "DESC_POSTDATE.")
	require.NoError(t, err)
	assert.Equal(t, []string{}, ids)
}

/*
TestManager_Get_Miss checks that a missing entry or missing page file both
collapse to ErrMiss.
*/
func TestManager_Get_Miss(t *testing.T) {
	m := NewManager(t.TempDir(), nil)

	_, err := m.Get("nonexistent", 1, "DESC_POSTDATE.")
	assert.ErrorIs(t, err, ErrMiss)

	seed(t, m, "k", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 15}, Config{Count: 5, MaxPage: 1})
	_, err = m.Get("k", 1, "DESC_POSTDATE.")
	assert.ErrorIs(t, err, ErrMiss)
}

/*
TestManager_SetThenGet checks the round trip of writing a page and reading
it back.
*/
func TestManager_SetThenGet(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	seed(t, m, "k", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 15}, Config{Count: 2, MaxPage: 1})

	require.NoError(t, m.Set("k", "DESC_POSTDATE.", 1, []string{"a1", "a2"}, false))

	ids, err := m.Get("k", 1, "DESC_POSTDATE.")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2"}, ids)
}

/*
TestManager_Set_RequiresExistingEntry checks that Set never creates an
entry — it only writes pages into one Create already established.
*/
func TestManager_Set_RequiresExistingEntry(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	err := m.Set("ghost", "DESC_POSTDATE.", 1, []string{"a"}, false)
	assert.ErrorIs(t, err, ErrMiss)
}

/*
TestManager_Update_SlidesForward checks that Update with no override extends
a non-pinned entry's expiration by its own interval.
*/
func TestManager_Update_SlidesForward(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	original := time.Now().Add(time.Minute)
	seed(t, m, "k", Expiration{Expiration: original, Interval: 30}, Config{Count: 1, MaxPage: 1})

	require.NoError(t, m.Update("k", nil))

	updated, ok, err := m.GetExpirationTime("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, updated.After(original))
}

/*
TestManager_Update_PinnedNeverSlides checks that an Interval-zero entry's
expiration is left untouched by a no-override Update.
*/
func TestManager_Update_PinnedNeverSlides(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	fixed := time.Now().Add(time.Hour).Truncate(time.Second)
	seed(t, m, "k", Expiration{Expiration: fixed, Interval: 0}, Config{Count: 1, MaxPage: 1})

	require.NoError(t, m.Update("k", nil))

	got, ok, err := m.GetExpirationTime("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(fixed))
}

/*
TestManager_Update_Override checks that a non-nil override replaces the
expiration outright and pins it (Interval reset to zero).
*/
func TestManager_Update_Override(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	seed(t, m, "k", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 30}, Config{Count: 1, MaxPage: 1})

	forced := time.Now().Truncate(time.Second)
	require.NoError(t, m.Update("k", &forced))

	got, ok, err := m.GetExpirationTime("k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, got.Equal(forced))
}

/*
TestManager_GetExpirationTime_Absent checks that a missing entry reports
ErrCorrupt, distinct from the transient lock-contention case.
*/
func TestManager_GetExpirationTime_Absent(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	_, ok, err := m.GetExpirationTime("nonexistent")
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrCorrupt)
}

/*
TestManager_Sweep checks that a renamed-for-delete directory (basename
containing a dot) is reclaimed, while a live entry is left alone.
*/
func TestManager_Sweep(t *testing.T) {
	m := NewManager(t.TempDir(), nil)
	seed(t, m, "live", Expiration{Expiration: time.Now().Add(time.Hour), Interval: 15}, Config{Count: 1, MaxPage: 1})
	seed(t, m, "dead.20260101120000", Expiration{Expiration: time.Now(), Interval: 0}, Config{Count: 1, MaxPage: 1})

	require.NoError(t, m.Sweep())

	assert.True(t, m.Has("live"))
	_, err := os.Stat(m.entryDir("dead.20260101120000"))
	assert.True(t, os.IsNotExist(err))
}
