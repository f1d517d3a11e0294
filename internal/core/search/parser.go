// Copyright (c) 2026 Catalog. All rights reserved.

package search

// Parser is a recursive-descent parser over the grammar:
//
//	expr = term (OR term | '-' term)*
//	term = fact+
//	fact = '(' expr ')' | tag
//
// It never returns an error. Malformed input — an unterminated group, a
// stray operator, an over-long tag list — recovers silently per §7's
// ParseRecoverable/OverLimit error kinds: the parser either drops the
// offending piece or treats EOF as an implicit closing token.
type Parser struct {
	lexer    *Lexer
	cur      Token
	limitTag int // 0 means unlimited
	tagCount int
}

// NewParser creates a parser over query, capping the number of Tag leaves it
// will emit at limitTag (0 for unlimited).
func NewParser(query string, limitTag int) *Parser {
	p := &Parser{lexer: NewLexer(query), limitTag: limitTag}
	p.advance()
	return p
}

// Parse parses query into a canonical [Node], or nil if the query contains
// no tag literals at all (the empty-tree case of §8's worked scenarios).
func Parse(query string, limitTag int) Node {
	return NewParser(query, limitTag).parseExpr()
}

func (p *Parser) advance() {
	p.cur = p.lexer.Next()
}

// parseExpr implements the top-level grammar rule, collecting an OR-list and
// a separate MINUS-list of terms.
func (p *Parser) parseExpr() Node {
	var orList, minusList []Node

	if first := p.parseTerm(); first != nil {
		orList = append(orList, first)
	}

	for {
		switch {
		case p.cur.isOrKeyword():
			p.advance()
			if t := p.parseTerm(); t != nil {
				orList = append(orList, t)
			}
		case p.cur.Kind == TokenMinus:
			p.advance()
			if t := p.parseTerm(); t != nil {
				minusList = append(minusList, t)
			}
		default:
			return p.combine(orList, minusList)
		}
	}
}

// combine assembles the OR-list and MINUS-list into the final node: the bare
// OR-aggregate when there's nothing to subtract, or a Minus whose first
// child is the OR-aggregate and whose tail is the MINUS-list.
func (p *Parser) combine(orList, minusList []Node) Node {
	var orAggregate Node
	switch len(orList) {
	case 0:
		orAggregate = nil
	case 1:
		orAggregate = orList[0]
	default:
		orAggregate = NewOr(orList)
	}

	if len(minusList) == 0 {
		return orAggregate
	}

	if orAggregate == nil {
		// A leading '-' with nothing preceding it (e.g. "-a"): there is no
		// minuend to subtract from. Recover by treating the first
		// minus-list term as the minuend instead of surfacing an error.
		orAggregate, minusList = minusList[0], minusList[1:]
		if len(minusList) == 0 {
			return orAggregate
		}
	}

	return NewMinus(append([]Node{orAggregate}, minusList...))
}

// parseTerm collects consecutive facts until an OR, '-', ')', or end-of-input
// is seen.
func (p *Parser) parseTerm() Node {
	var facts []Node
	for !p.atTermBoundary() {
		if f := p.parseFact(); f != nil {
			facts = append(facts, f)
		}
	}
	switch len(facts) {
	case 0:
		return nil
	case 1:
		return facts[0]
	default:
		return NewAnd(facts)
	}
}

// atTermBoundary reports whether the current token ends a term: end of
// input, a closing paren, the '-' operator, or the OR keyword.
func (p *Parser) atTermBoundary() bool {
	switch p.cur.Kind {
	case TokenEnd, TokenRParen, TokenMinus:
		return true
	default:
		return p.cur.isOrKeyword()
	}
}

// parseFact consumes either a parenthesized sub-expression or a single tag
// literal, returning nil if the tag was dropped for exceeding limitTag.
func (p *Parser) parseFact() Node {
	switch p.cur.Kind {
	case TokenLParen:
		p.advance()
		inner := p.parseExpr()
		if p.cur.Kind == TokenRParen {
			p.advance()
		}
		// A missing closing paren (end-of-input reached instead) is
		// tolerated: there's nothing left to consume.
		if inner == nil {
			return nil
		}
		return NewParen(inner)

	case TokenTag, TokenWord:
		text := p.cur.Text
		p.advance()
		if p.limitTag > 0 && p.tagCount >= p.limitTag {
			return nil
		}
		p.tagCount++
		return NewTag(text)

	default:
		// Unreachable under normal use: atTermBoundary already filters out
		// Minus/RParen/End before parseFact is called. Guard against being
		// called directly by consuming the token so callers can't loop.
		p.advance()
		return nil
	}
}
