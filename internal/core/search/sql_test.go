// Copyright (c) 2026 Catalog. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkline/catalog/internal/core/search"
)

/*
TestLower_NilTree checks that a query with no tag literals lowers to a plain,
unfiltered paginated scan of posted_articles.
*/
func TestLower_NilTree(t *testing.T) {
	plan, err := search.Lower(nil, search.DescPostDate, 2, 20)
	require.NoError(t, err)

	assert.Equal(t, "SELECT COUNT(*) FROM posted_articles", plan.CountSQL)
	assert.Nil(t, plan.CountBinds)
	assert.Contains(t, plan.ListSQL, "ORDER BY posted_articles.id DESC")
	assert.Contains(t, plan.ListSQL, "LIMIT $1 OFFSET $2")
	assert.Equal(t, []any{20, 20}, plan.ListBinds)
}

/*
TestLower_SingleTag checks the single-leaf case renders one tag subselect and
renumbers its placeholder to $1.
*/
func TestLower_SingleTag(t *testing.T) {
	tree := search.NewTag("GOLANG")
	plan, err := search.Lower(tree, search.DescPostDate, 1, 20)
	require.NoError(t, err)

	assert.Contains(t, plan.CountSQL, "tags WHERE norm_name = $1")
	assert.Equal(t, []any{"GOLANG"}, plan.CountBinds)
	assert.Equal(t, []string{"GOLANG"}, plan.TagBinds)
	assert.Contains(t, plan.ListSQL, "$2") // limit placeholder follows the tag bind
}

/*
TestLower_And checks intersection lowers to a nested INNER JOIN with
distinct table aliases, and that both tag binds are carried in order.
*/
func TestLower_And(t *testing.T) {
	tree := search.NewAnd([]search.Node{search.NewTag("A"), search.NewTag("B")})
	plan, err := search.Lower(tree, search.AscPostDate, 1, 10)
	require.NoError(t, err)

	assert.Contains(t, plan.ListSQL, "INNER JOIN")
	assert.Contains(t, plan.ListSQL, " AS t0")
	assert.Contains(t, plan.ListSQL, " AS t1")
	assert.Equal(t, []string{"A", "B"}, plan.TagBinds)
}

/*
TestLower_Or checks union lowers to a UNION of the two tag subselects.
*/
func TestLower_Or(t *testing.T) {
	tree := search.NewOr([]search.Node{search.NewTag("A"), search.NewTag("B")})
	plan, err := search.Lower(tree, search.AscPostDate, 1, 10)
	require.NoError(t, err)

	assert.Contains(t, plan.ListSQL, "UNION")
}

/*
TestLower_Minus checks set difference lowers to a NOT IN subselect.
*/
func TestLower_Minus(t *testing.T) {
	tree := search.NewMinus([]search.Node{search.NewTag("A"), search.NewTag("B")})
	plan, err := search.Lower(tree, search.AscPostDate, 1, 10)
	require.NoError(t, err)

	assert.Contains(t, plan.ListSQL, "NOT IN")
}

/*
TestLower_Pagination checks that offset is computed from (page-1)*pageSize
and that an out-of-range page number never goes negative.
*/
func TestLower_Pagination(t *testing.T) {
	plan, err := search.Lower(nil, search.DescPostDate, 3, 10)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 20}, plan.ListBinds)

	plan, err = search.Lower(nil, search.DescPostDate, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, []any{10, 0}, plan.ListBinds)
}

/*
TestLower_InvalidOrder checks that Lower surfaces the order's own SQL error
rather than silently defaulting.
*/
func TestLower_InvalidOrder(t *testing.T) {
	_, err := search.Lower(nil, search.Order("BOGUS"), 1, 10)
	assert.Error(t, err)
}
