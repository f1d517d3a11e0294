// Copyright (c) 2026 Catalog. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkline/catalog/internal/core/search"
)

func canonicalOf(t *testing.T, query string, limitTag int) string {
	t.Helper()
	tree := search.Parse(query, limitTag)
	if tree == nil {
		return ""
	}
	return tree.Canonical()
}

/*
TestParse_SingleTag checks the trivial one-literal query.
*/
func TestParse_SingleTag(t *testing.T) {
	assert.Equal(t, `"FOO"`, canonicalOf(t, "foo", 0))
}

/*
TestParse_ImplicitAnd checks that adjacent barewords are ANDed together.
*/
func TestParse_ImplicitAnd(t *testing.T) {
	assert.Equal(t, `"BAR" "FOO"`, canonicalOf(t, "foo bar", 0))
}

/*
TestParse_Or checks that the OR keyword (case-insensitive) disjoins terms.
*/
func TestParse_Or(t *testing.T) {
	assert.Equal(t, `"BAR"OR"FOO"`, canonicalOf(t, "foo or bar", 0))
}

/*
TestParse_Minus checks that '-' subtracts a term from the preceding
aggregate.
*/
func TestParse_Minus(t *testing.T) {
	assert.Equal(t, `"FOO"-"BAR"`, canonicalOf(t, "foo -bar", 0))
}

/*
TestParse_Grouping checks that parens override the default precedence, so
an OR inside a group binds before the implicit AND around it.
*/
func TestParse_Grouping(t *testing.T) {
	assert.Equal(t, `("BAR"OR"BAZ") "FOO"`, canonicalOf(t, "(bar or baz) foo", 0))
}

/*
TestParse_LeadingMinusNoMinuend checks the recovery rule for a query that
opens with '-' and has no preceding term: the first minus-list operand
becomes the minuend instead of raising an error.
*/
func TestParse_LeadingMinusNoMinuend(t *testing.T) {
	assert.Equal(t, `"FOO"-"BAR"`, canonicalOf(t, "-foo -bar", 0))
}

/*
TestParse_EmptyQuery checks that a query with no tag literals at all parses
to a nil tree.
*/
func TestParse_EmptyQuery(t *testing.T) {
	assert.Nil(t, search.Parse("", 0))
	assert.Nil(t, search.Parse("   ", 0))
}

/*
TestParse_UnterminatedGroup checks that a missing closing paren is
tolerated, with end-of-input acting as an implicit close.
*/
func TestParse_UnterminatedGroup(t *testing.T) {
	assert.Equal(t, `("BAR" "FOO")`, canonicalOf(t, "(foo bar", 0))
}

/*
TestParse_TagLimit checks that once limitTag tag literals have been
accepted, any further tag is silently dropped rather than erroring.
*/
func TestParse_TagLimit(t *testing.T) {
	assert.Equal(t, `"FOO"`, canonicalOf(t, "foo bar baz", 1))
	assert.Equal(t, `"BAR" "FOO"`, canonicalOf(t, "foo bar baz", 2))
}

/*
TestParse_QuotedTagWithOperatorText checks that a quoted literal containing
operator-like text is treated as a single opaque tag, not re-lexed.
*/
func TestParse_QuotedTagWithOperatorText(t *testing.T) {
	assert.Equal(t, `"A OR B"`, canonicalOf(t, `"a or b"`, 0))
}
