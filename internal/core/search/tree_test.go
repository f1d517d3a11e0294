// Copyright (c) 2026 Catalog. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkline/catalog/internal/core/search"
)

/*
TestNewParen_Elision checks invariants 1-2: a Paren around a Tag or another
Paren collapses away rather than nesting.
*/
func TestNewParen_Elision(t *testing.T) {
	tag := search.NewTag("A")
	assert.Same(t, tag, search.NewParen(tag))

	inner := search.NewParen(search.NewOr([]search.Node{search.NewTag("A"), search.NewTag("B")}))
	assert.Same(t, inner, search.NewParen(inner))
}

/*
TestNewAnd_FlattenAndCollapse checks that nested same-operator Parens flatten
into one And, and a single remaining operand collapses to a bare node.
*/
func TestNewAnd_FlattenAndCollapse(t *testing.T) {
	a, b, c := search.NewTag("A"), search.NewTag("B"), search.NewTag("C")

	nested := search.NewAnd([]search.Node{a, search.NewParen(search.NewAnd([]search.Node{b, c}))})
	assert.Equal(t, `"A" "B" "C"`, nested.Canonical())

	single := search.NewAnd([]search.Node{a})
	assert.Equal(t, search.KindTag, single.Kind())
}

/*
TestNewOr_CanonicalOrder checks tags sort lexically within an Or.
*/
func TestNewOr_CanonicalOrder(t *testing.T) {
	tree := search.NewOr([]search.Node{search.NewTag("ZEBRA"), search.NewTag("APPLE")})
	assert.Equal(t, `"APPLE"OR"ZEBRA"`, tree.Canonical())
}

/*
TestNewMinus_MinuendKeepsPosition checks that the first operand (minuend) is
never reordered, while the rest are sorted among themselves.
*/
func TestNewMinus_MinuendKeepsPosition(t *testing.T) {
	minuend := search.NewTag("ZEBRA")
	tree := search.NewMinus([]search.Node{minuend, search.NewTag("B"), search.NewTag("A")})
	assert.Equal(t, `"ZEBRA"-"A"-"B"`, tree.Canonical())
}

/*
TestNewMinus_SingleOperand checks that a Minus with nothing to subtract
collapses to its sole operand, and an empty operand list yields nil.
*/
func TestNewMinus_SingleOperand(t *testing.T) {
	tag := search.NewTag("A")
	assert.Same(t, tag, search.NewMinus([]search.Node{tag}))
	assert.Nil(t, search.NewMinus(nil))
}

/*
TestCanonical_ParenthesizesLowerPrecedence checks that an Or or Minus nested
as a bare operand of an And is wrapped in parens to preserve precedence on
reconstruction.
*/
func TestCanonical_ParenthesizesLowerPrecedence(t *testing.T) {
	or := search.NewOr([]search.Node{search.NewTag("A"), search.NewTag("B")})
	tree := search.NewAnd([]search.Node{or, search.NewTag("C")})
	assert.Equal(t, `("A"OR"B") "C"`, tree.Canonical())
}

/*
TestQuoteEscaping checks that an embedded double quote in a tag value is
escaped by doubling, matching the lexer's own unescaping rule.
*/
func TestQuoteEscaping(t *testing.T) {
	tag := search.NewTag(`SAY "HI"`)
	assert.Equal(t, `"SAY ""HI"""`, tag.Canonical())
}
