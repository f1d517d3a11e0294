// Copyright (c) 2026 Catalog. All rights reserved.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestExpirationPolicy_ZeroTags checks that a tagless query (e.g. a full-table
scan) is pinned permanently, regardless of its result count.
*/
func TestExpirationPolicy_ZeroTags(t *testing.T) {
	exp := expirationPolicy(nil, 42)
	assert.Equal(t, 0, exp.Interval)
}

/*
TestExpirationPolicy_SingleTagHit checks that a single-tag query with a
nonzero result count is pinned: nothing but an explicit invalidation can
change the answer.
*/
func TestExpirationPolicy_SingleTagHit(t *testing.T) {
	exp := expirationPolicy([]string{"GOLANG"}, 3)
	assert.Equal(t, 0, exp.Interval)
}

/*
TestExpirationPolicy_SingleTagMiss checks that a single-tag query with zero
results still expires quickly, since the tag might be created afterward.
*/
func TestExpirationPolicy_SingleTagMiss(t *testing.T) {
	exp := expirationPolicy([]string{"GOLANG"}, 0)
	assert.Equal(t, missExpiryMin, exp.Interval)
}

/*
TestExpirationPolicy_MultiTagHit checks the week-long expiry for a
multi-tag query with results.
*/
func TestExpirationPolicy_MultiTagHit(t *testing.T) {
	exp := expirationPolicy([]string{"GOLANG", "POSTGRES"}, 10)
	assert.Equal(t, hitExpiryMin, exp.Interval)
}

/*
TestExpirationPolicy_MultiTagMiss checks the short expiry for a multi-tag
query with zero results.
*/
func TestExpirationPolicy_MultiTagMiss(t *testing.T) {
	exp := expirationPolicy([]string{"GOLANG", "POSTGRES"}, 0)
	assert.Equal(t, missExpiryMin, exp.Interval)
}

/*
TestExpirationPolicy_DedupesBindsBeforeCounting checks that duplicate tag
binds (e.g. "a a") count as one distinct tag, not two.
*/
func TestExpirationPolicy_DedupesBindsBeforeCounting(t *testing.T) {
	exp := expirationPolicy([]string{"GOLANG", "GOLANG"}, 5)
	assert.Equal(t, 0, exp.Interval)
}

/*
TestMaxPage checks page count rounds up on any remainder and floors at 1
for an empty result set.
*/
func TestMaxPage(t *testing.T) {
	assert.Equal(t, 1, maxPage(0, 20))
	assert.Equal(t, 1, maxPage(20, 20))
	assert.Equal(t, 2, maxPage(21, 20))
	assert.Equal(t, 3, maxPage(41, 20))
}

/*
TestDedupe checks first-seen order is preserved and duplicates are dropped.
*/
func TestDedupe(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, dedupe([]string{"A", "B", "A"}))
}

/*
TestCacheKey_NilTreeIsEmptyCanonical checks that a nil tree hashes to the
SHA-256 of the empty string, so every tagless query hits the same cache slot.
*/
func TestCacheKey_NilTreeIsEmptyCanonical(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", cacheKey(nil))
	assert.NotEqual(t, cacheKey(nil), cacheKey(NewTag("A")))
}

/*
TestCacheKey_Deterministic checks that two trees with the same canonical
form hash to the same key.
*/
func TestCacheKey_Deterministic(t *testing.T) {
	a := NewAnd([]Node{NewTag("A"), NewTag("B")})
	b := NewAnd([]Node{NewTag("B"), NewTag("A")})
	assert.Equal(t, cacheKey(a), cacheKey(b))
}
