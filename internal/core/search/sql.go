// Copyright (c) 2026 Catalog. All rights reserved.

package search

import (
	"fmt"
	"strconv"
	"strings"
)

// tagSelectFragment is the primitive every Tag leaf lowers to: the set of
// article ids carrying that tag.
const tagSelectFragment = "SELECT article_id FROM posted_articles_tags WHERE tag_id IN (SELECT id FROM tags WHERE norm_name = ?)"

// lowered carries a SQL fragment alongside the bind values its placeholders
// require, in left-to-right order.
type lowered struct {
	sql   string
	binds []string
}

// aliasSeq is the fresh-id generator threaded through a single lowering pass
// so every derived table alias (t0, t1, …) is unique within one query.
type aliasSeq struct{ next int }

func (s *aliasSeq) take() string {
	alias := fmt.Sprintf("t%d", s.next)
	s.next++
	return alias
}

// lowerNode recursively lowers n into a SQL fragment selecting matching
// article ids, per §4.5.
func lowerNode(n Node, seq *aliasSeq) lowered {
	switch v := n.(type) {
	case *TagNode:
		return lowered{sql: tagSelectFragment, binds: []string{v.Value}}
	case *ParenNode:
		return lowerNode(v.Child, seq)
	case *AndNode:
		return lowerFold(v.Operands, seq, foldAnd)
	case *OrNode:
		return lowerFold(v.Operands, seq, foldOr)
	case *MinusNode:
		return lowerFold(v.Operands, seq, foldMinus)
	default:
		panic(fmt.Sprintf("search: unhandled node kind %T", n))
	}
}

type foldFunc func(lhsSQL, rhsSQL string, seq *aliasSeq) string

func foldAnd(lhsSQL, rhsSQL string, seq *aliasSeq) string {
	a, b := seq.take(), seq.take()
	return fmt.Sprintf(
		"SELECT %s.article_id FROM (%s) AS %s INNER JOIN (%s) AS %s ON %s.article_id = %s.article_id",
		a, lhsSQL, a, rhsSQL, b, a, b,
	)
}

func foldOr(lhsSQL, rhsSQL string, _ *aliasSeq) string {
	return fmt.Sprintf("(%s) UNION (%s)", lhsSQL, rhsSQL)
}

func foldMinus(lhsSQL, rhsSQL string, seq *aliasSeq) string {
	a := seq.take()
	return fmt.Sprintf("SELECT article_id FROM (%s) AS %s WHERE article_id NOT IN (%s)", lhsSQL, a, rhsSQL)
}

// lowerFold left-folds operands through fold, threading bind values in the
// order their placeholders appear.
func lowerFold(operands []Node, seq *aliasSeq, fold foldFunc) lowered {
	acc := lowerNode(operands[0], seq)
	for _, operand := range operands[1:] {
		rhs := lowerNode(operand, seq)
		acc = lowered{
			sql:   fold(acc.sql, rhs.sql, seq),
			binds: append(acc.binds, rhs.binds...),
		}
	}
	return acc
}

// Plan is the compiled, driver-ready pair of statements a façade needs to
// serve one page of a search: the total match count, and the page's
// ordered, limited slice of article ids.
type Plan struct {
	CountSQL   string
	CountBinds []any
	ListSQL    string
	ListBinds  []any

	// TagBinds is the raw, in-order list of tag values bound into the
	// query, before the COUNT/LIST wrapping and before any page/limit
	// parameters are appended. Empty for the empty-tree case. The façade
	// uses it to pick the expiration policy (§4.7) and hands it to the
	// cache manager to resolve which tag rows a new entry depends on.
	TagBinds []string
}

// Lower compiles tree (nil for the empty-query case) into a [Plan] for the
// given order, page (1-indexed), and pageSize.
func Lower(tree Node, order Order, page, pageSize int) (Plan, error) {
	orderSQL, err := order.SQL()
	if err != nil {
		return Plan{}, err
	}

	if tree == nil {
		return Plan{
			CountSQL:   "SELECT COUNT(*) FROM posted_articles",
			CountBinds: nil,
			ListSQL:    renumber(fmt.Sprintf("SELECT posted_articles.id FROM posted_articles %s LIMIT ? OFFSET ?", orderSQL)),
			ListBinds:  []any{pageSize, offsetOf(page, pageSize)},
		}, nil
	}

	seq := &aliasSeq{}
	inner := lowerNode(tree, seq)
	binds := bindsToAny(inner.binds)

	countSQL := fmt.Sprintf(
		"SELECT COUNT(*) FROM posted_articles INNER JOIN (%s) AS r ON posted_articles.id = r.article_id",
		inner.sql,
	)
	listSQL := fmt.Sprintf(
		"SELECT posted_articles.id FROM posted_articles INNER JOIN (%s) AS r ON posted_articles.id = r.article_id %s LIMIT ? OFFSET ?",
		inner.sql, orderSQL,
	)

	return Plan{
		CountSQL:   renumber(countSQL),
		CountBinds: binds,
		ListSQL:    renumber(listSQL),
		ListBinds:  append(append([]any{}, binds...), pageSize, offsetOf(page, pageSize)),
		TagBinds:   inner.binds,
	}, nil
}

func offsetOf(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

func bindsToAny(binds []string) []any {
	out := make([]any, len(binds))
	for i, b := range binds {
		out[i] = b
	}
	return out
}

// renumber rewrites the driver-agnostic '?' placeholders the lowering
// produces into pgx's positional '$1, $2, …' form.
func renumber(sql string) string {
	var b strings.Builder
	n := 0
	for _, r := range sql {
		if r == '?' {
			n++
			b.WriteString("$")
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
