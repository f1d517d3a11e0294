// Copyright (c) 2026 Catalog. All rights reserved.

package search_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inkline/catalog/internal/core/search"
)

func drain(l *search.Lexer) []search.Token {
	var tokens []search.Token
	for {
		tok := l.Next()
		tokens = append(tokens, tok)
		if tok.Kind == search.TokenEnd {
			return tokens
		}
	}
}

/*
TestLexer_Barewords checks that whitespace-separated barewords become Word
tokens, normalized to upper case.
*/
func TestLexer_Barewords(t *testing.T) {
	tokens := drain(search.NewLexer("foo   bar"))
	assert.Equal(t, []search.Token{
		{Kind: search.TokenWord, Text: "FOO"},
		{Kind: search.TokenWord, Text: "BAR"},
		{Kind: search.TokenEnd},
	}, tokens)
}

/*
TestLexer_Punctuation checks parens and minus lex as standalone tokens even
when abutting a word with no separating space.
*/
func TestLexer_Punctuation(t *testing.T) {
	tokens := drain(search.NewLexer("(a-b)"))
	assert.Equal(t, []search.Token{
		{Kind: search.TokenLParen},
		{Kind: search.TokenWord, Text: "A"},
		{Kind: search.TokenMinus},
		{Kind: search.TokenWord, Text: "B"},
		{Kind: search.TokenRParen},
		{Kind: search.TokenEnd},
	}, tokens)
}

/*
TestLexer_QuotedLiteral checks that a quoted literal may contain whitespace
and operator characters verbatim.
*/
func TestLexer_QuotedLiteral(t *testing.T) {
	tokens := drain(search.NewLexer(`"a-b or c"`))
	assert.Equal(t, []search.Token{
		{Kind: search.TokenTag, Text: "A-B OR C"},
		{Kind: search.TokenEnd},
	}, tokens)
}

/*
TestLexer_EscapedQuote checks that a doubled quote inside a literal is
unescaped to a single literal quote character.
*/
func TestLexer_EscapedQuote(t *testing.T) {
	tokens := drain(search.NewLexer(`"say ""hi"""`))
	assert.Equal(t, []search.Token{
		{Kind: search.TokenTag, Text: `SAY "HI"`},
		{Kind: search.TokenEnd},
	}, tokens)
}

/*
TestLexer_UnterminatedQuote checks that an unclosed quote recovers into a
tag token built from whatever was read, rather than an error.
*/
func TestLexer_UnterminatedQuote(t *testing.T) {
	tokens := drain(search.NewLexer(`"unterminated`))
	assert.Equal(t, []search.Token{
		{Kind: search.TokenTag, Text: "UNTERMINATED"},
		{Kind: search.TokenEnd},
	}, tokens)
}

/*
TestLexer_EmptyInput checks that an empty query immediately yields End.
*/
func TestLexer_EmptyInput(t *testing.T) {
	tokens := drain(search.NewLexer(""))
	assert.Equal(t, []search.Token{{Kind: search.TokenEnd}}, tokens)
}
