// Copyright (c) 2026 Catalog. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/catalog/internal/core/search"
)

/*
TestOrder_Valid checks that only the four documented orders pass validation.
*/
func TestOrder_Valid(t *testing.T) {
	valid := []search.Order{
		search.AscPostDate, search.AscUpdateDate, search.DescPostDate, search.DescUpdateDate,
	}
	for _, o := range valid {
		assert.True(t, o.Valid(), "expected %q to be valid", o)
	}
	assert.False(t, search.Order("BOGUS").Valid())
	assert.False(t, search.Order("").Valid())
}

/*
TestOrder_SQL checks each order renders its documented clause, and that an
unrecognized order is a caller error rather than a silent fallback.
*/
func TestOrder_SQL(t *testing.T) {
	sql, err := search.DescPostDate.SQL()
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY posted_articles.id DESC", sql)

	sql, err = search.AscUpdateDate.SQL()
	require.NoError(t, err)
	assert.Equal(t, "ORDER BY posted_articles.update_date ASC", sql)

	_, err = search.Order("BOGUS").SQL()
	assert.Error(t, err)
}

/*
TestOrder_PagePrefix checks the cache page filename prefix is the order's
literal string plus a trailing dot, since it is persisted on disk.
*/
func TestOrder_PagePrefix(t *testing.T) {
	assert.Equal(t, "DESC_POSTDATE.", search.DescPostDate.PagePrefix())
}
