// Copyright (c) 2026 Catalog. All rights reserved.

package search

import "fmt"

// Order selects both the SQL ORDER BY clause and the cache page-file prefix
// for a search. Its string form plus a trailing dot is the literal prefix
// used on disk (e.g. "DESC_POSTDATE."), so renaming a constant here changes
// on-disk filenames for any live cache.
type Order string

const (
	AscPostDate    Order = "ASC_POSTDATE"
	AscUpdateDate  Order = "ASC_UPDATEDATE"
	DescPostDate   Order = "DESC_POSTDATE"
	DescUpdateDate Order = "DESC_UPDATEDATE"
)

// Valid reports whether o is one of the four recognized orders.
func (o Order) Valid() bool {
	switch o {
	case AscPostDate, AscUpdateDate, DescPostDate, DescUpdateDate:
		return true
	default:
		return false
	}
}

// SQL renders the ORDER BY clause for o. Callers must check Valid first;
// an unrecognized Order is a fatal caller error (§4.5), not a recoverable one.
func (o Order) SQL() (string, error) {
	switch o {
	case AscPostDate:
		return "ORDER BY posted_articles.id ASC", nil
	case DescPostDate:
		return "ORDER BY posted_articles.id DESC", nil
	case AscUpdateDate:
		return "ORDER BY posted_articles.update_date ASC", nil
	case DescUpdateDate:
		return "ORDER BY posted_articles.update_date DESC", nil
	default:
		return "", fmt.Errorf("search: unknown order %q", string(o))
	}
}

// PagePrefix is the cache page filename prefix for this order, e.g.
// "DESC_POSTDATE.".
func (o Order) PagePrefix() string {
	return string(o) + "."
}
