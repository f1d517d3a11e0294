// Copyright (c) 2026 Catalog. All rights reserved.

package search

import (
	"sort"
	"strings"
)

// NodeKind discriminates the variants of the query tree sum type.
type NodeKind int

const (
	KindTag NodeKind = iota
	KindAnd
	KindOr
	KindMinus
	KindParen
)

// Node is the algebraic query tree. Every constructor (NewTag, NewAnd, NewOr,
// NewMinus, NewParen) performs the flattening, parenthesis elision, and
// canonical-ordering pass described in the package's normalizer, so any Node
// reachable from a constructor already satisfies the tree's structural
// invariants — there is no separate "normalize" step to run afterwards.
type Node interface {
	Kind() NodeKind

	// Canonical renders the unique textual reconstruction used as the
	// cache-key hash input. Trees with byte-identical Canonical strings are
	// semantically equivalent; the converse does not hold, since duplicate
	// operands are kept (e.g. `"A" "A"` and `"A"` differ).
	Canonical() string

	// level reports operator precedence for binary nodes (And=2, Or=Minus=1).
	// Leaves (Tag, Paren) return 0; the value is only meaningful when
	// comparing two binary siblings.
	level() int
}

// # Tag

// TagNode is a single normalized tag literal.
type TagNode struct {
	Value string
}

// NewTag constructs a tag leaf. value must already be normalized
// (see pkg/normalize.Token).
func NewTag(value string) Node {
	return &TagNode{Value: value}
}

func (t *TagNode) Kind() NodeKind { return KindTag }
func (t *TagNode) level() int     { return 0 }

func (t *TagNode) Canonical() string {
	return `"` + strings.ReplaceAll(t.Value, `"`, `""`) + `"`
}

// # Paren

// ParenNode preserves an explicit grouping for canonical reconstruction. It
// carries no algebraic meaning of its own — Canonical is the only thing that
// distinguishes a Paren-wrapped subtree from its bare child.
type ParenNode struct {
	Child Node
}

// NewParen wraps child in a grouping marker, eliding it away per invariants
// 1–2: a Paren around a Tag is pointless (returns the Tag itself) and a Paren
// around another Paren collapses to the inner Paren.
func NewParen(child Node) Node {
	switch child.Kind() {
	case KindTag, KindParen:
		return child
	default:
		return &ParenNode{Child: child}
	}
}

func (p *ParenNode) Kind() NodeKind { return KindParen }
func (p *ParenNode) level() int     { return 0 }

func (p *ParenNode) Canonical() string {
	// By construction Child is never a Tag (NewParen elides that case), but
	// guard it anyway so Canonical stays correct even if a Node is built by
	// hand rather than through the constructor.
	if p.Child.Kind() == KindTag {
		return p.Child.Canonical()
	}
	return "(" + p.Child.Canonical() + ")"
}

// # Binary operators

// AndNode is intersection over two or more operands, all sorted into
// canonical order.
type AndNode struct{ Operands []Node }

// OrNode is union over two or more operands, all sorted into canonical order.
type OrNode struct{ Operands []Node }

// MinusNode is left-folded set difference: operand 0 is the minuend and
// keeps its position; operands 1..n are sorted.
type MinusNode struct{ Operands []Node }

func (a *AndNode) Kind() NodeKind   { return KindAnd }
func (a *AndNode) level() int       { return 2 }
func (o *OrNode) Kind() NodeKind    { return KindOr }
func (o *OrNode) level() int        { return 1 }
func (m *MinusNode) Kind() NodeKind { return KindMinus }
func (m *MinusNode) level() int     { return 1 }

func (a *AndNode) Canonical() string { return joinOperands(a, a.Operands, " ") }
func (o *OrNode) Canonical() string  { return joinOperands(o, o.Operands, "OR") }
func (m *MinusNode) Canonical() string {
	return joinOperands(m, m.Operands, "-")
}

// joinOperands renders parent's operands with sep between them, parenthesizing
// any bare binary operand whose precedence is strictly lower than parent's.
func joinOperands(parent Node, operands []Node, sep string) string {
	parts := make([]string, len(operands))
	for i, child := range operands {
		text := child.Canonical()
		if isBinary(child) && child.level() < parent.level() {
			text = "(" + text + ")"
		}
		parts[i] = text
	}
	return strings.Join(parts, sep)
}

func isBinary(n Node) bool {
	switch n.Kind() {
	case KindAnd, KindOr, KindMinus:
		return true
	default:
		return false
	}
}

// # Smart constructors: flatten, elide, sort, collapse

// NewAnd builds an intersection over children, flattening nested Parens of
// the same operator, sorting all operands into canonical order, and
// collapsing to the sole operand if only one remains.
func NewAnd(children []Node) Node {
	flat := flattenSameOperator(KindAnd, children)
	if len(flat) == 1 {
		return flat[0]
	}
	sortOperands(flat)
	return &AndNode{Operands: flat}
}

// NewOr builds a union over children with the same flattening/sorting rules
// as NewAnd.
func NewOr(children []Node) Node {
	flat := flattenSameOperator(KindOr, children)
	if len(flat) == 1 {
		return flat[0]
	}
	sortOperands(flat)
	return &OrNode{Operands: flat}
}

// NewMinus builds a left-folded set difference. The first element of
// children is the minuend and is never reordered; the remaining elements are
// flattened against nested same-operator Parens and sorted among themselves.
func NewMinus(children []Node) Node {
	if len(children) == 0 {
		return nil
	}
	if len(children) == 1 {
		return children[0]
	}

	first := children[0]
	rest := flattenSameOperator(KindMinus, children[1:])
	if len(rest) == 0 {
		return first
	}
	sortOperands(rest)

	return &MinusNode{Operands: append([]Node{first}, rest...)}
}

// flattenSameOperator splices in the operands of any child that is either a
// bare node of kind or a Paren wrapping a node of kind, satisfying invariants
// 3–4 (no And/Or child is a same-operator or Tag-wrapping Paren).
func flattenSameOperator(kind NodeKind, children []Node) []Node {
	flat := make([]Node, 0, len(children))
	for _, child := range children {
		inner := child
		if child.Kind() == KindParen {
			inner = child.(*ParenNode).Child
		}
		if inner.Kind() == kind {
			flat = append(flat, operandsOf(inner)...)
			continue
		}
		flat = append(flat, child)
	}
	return flat
}

func operandsOf(n Node) []Node {
	switch v := n.(type) {
	case *AndNode:
		return v.Operands
	case *OrNode:
		return v.Operands
	case *MinusNode:
		return v.Operands
	default:
		return nil
	}
}

// sortOperands orders nodes by the total order from §4.4: non-Tag before
// Tag, Paren before binary among non-Tag, Tags by lexical value, Parens
// recursively by child, binaries by descending precedence then canonical
// operator rank then descending operand count.
func sortOperands(nodes []Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return compareNode(nodes[i], nodes[j]) < 0
	})
}

// compareNode implements the total order. It returns <0, 0, or >0 exactly
// like strings.Compare.
func compareNode(a, b Node) int {
	aTag, bTag := a.Kind() == KindTag, b.Kind() == KindTag
	if aTag != bTag {
		if aTag {
			return 1
		}
		return -1
	}
	if aTag && bTag {
		av, bv := a.(*TagNode).Value, b.(*TagNode).Value
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	}

	// Both non-Tag: Paren sorts before any binary operator.
	aParen, bParen := a.Kind() == KindParen, b.Kind() == KindParen
	if aParen != bParen {
		if aParen {
			return -1
		}
		return 1
	}
	if aParen && bParen {
		return compareNode(a.(*ParenNode).Child, b.(*ParenNode).Child)
	}

	// Both binary nodes: descending level, then ascending operator rank,
	// then descending operand count.
	if al, bl := a.level(), b.level(); al != bl {
		if al > bl {
			return -1
		}
		return 1
	}
	if ar, br := operatorRank(a.Kind()), operatorRank(b.Kind()); ar != br {
		if ar < br {
			return -1
		}
		return 1
	}
	if ac, bc := len(operandsOf(a)), len(operandsOf(b)); ac != bc {
		if ac > bc {
			return -1
		}
		return 1
	}
	return 0
}

// operatorRank gives the canonical, stable tie-break order among binary
// operators of equal precedence: And, then Minus, then Or.
func operatorRank(k NodeKind) int {
	switch k {
	case KindAnd:
		return 0
	case KindMinus:
		return 1
	case KindOr:
		return 2
	default:
		return -1
	}
}
