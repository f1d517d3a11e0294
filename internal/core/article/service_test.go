// Copyright (c) 2026 Catalog. All rights reserved.

package article

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

/*
TestNormalizeTags_DedupesAndNormalizes checks that repeated tags (modulo
case/whitespace) collapse to one normalized entry, in first-seen order.
*/
func TestNormalizeTags_DedupesAndNormalizes(t *testing.T) {
	got := normalizeTags([]string{" golang ", "Golang", "GOLANG", "postgres"})
	assert.Equal(t, []string{"GOLANG", "POSTGRES"}, got)
}

/*
TestNormalizeTags_DropsEmptyResults checks that a tag normalizing to the
empty string (all whitespace) is dropped rather than kept as a blank tag.
*/
func TestNormalizeTags_DropsEmptyResults(t *testing.T) {
	got := normalizeTags([]string{"   ", "golang"})
	assert.Equal(t, []string{"GOLANG"}, got)
}

/*
TestNormalizeTags_Empty checks the zero-tag input yields an empty, non-nil
slice rather than panicking on a nil range.
*/
func TestNormalizeTags_Empty(t *testing.T) {
	got := normalizeTags(nil)
	assert.Empty(t, got)
}

/*
TestDiff_InsertsAndRemoves checks that diff reports only what changed
between the existing and desired tag sets, and nothing for unchanged tags.
*/
func TestDiff_InsertsAndRemoves(t *testing.T) {
	existing := []string{"A", "B", "C"}
	tags := []string{"B", "C", "D"}

	toInsert, toRemove := diff(existing, tags)

	assert.Equal(t, []string{"D"}, toInsert)
	assert.Equal(t, []string{"A"}, toRemove)
}

/*
TestDiff_NoChange checks that an identical tag set produces no inserts or
removals.
*/
func TestDiff_NoChange(t *testing.T) {
	toInsert, toRemove := diff([]string{"A", "B"}, []string{"A", "B"})
	assert.Empty(t, toInsert)
	assert.Empty(t, toRemove)
}

/*
TestDiff_AllNew checks an empty existing set inserts every desired tag.
*/
func TestDiff_AllNew(t *testing.T) {
	toInsert, toRemove := diff(nil, []string{"A", "B"})
	assert.ElementsMatch(t, []string{"A", "B"}, toInsert)
	assert.Empty(t, toRemove)
}

/*
TestDiff_AllRemoved checks an empty desired set removes every existing tag.
*/
func TestDiff_AllRemoved(t *testing.T) {
	toInsert, toRemove := diff([]string{"A", "B"}, nil)
	assert.Empty(t, toInsert)
	assert.ElementsMatch(t, []string{"A", "B"}, toRemove)
}
