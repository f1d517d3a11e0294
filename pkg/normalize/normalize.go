// Copyright (c) 2026 Catalog. All rights reserved.

/*
Package normalize canonicalizes free-form tag and query tokens into the
single comparable form the search engine hashes and indexes on.

Transformation Pipeline:

 1. Trim: Strip leading/trailing whitespace.
 2. NFKC Normalization: Folds compatibility variants (full-width, ligatures,
    etc.) into their canonical composed form.
 3. Uppercasing: Ensures case-insensitive tag matching.

Every tag literal, bareword, and the canonical query string itself is run
through [Token] before it is compared, hashed, or bound to SQL, so that two
textually different but Unicode-equivalent queries collapse to one cache key.
*/
package normalize

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Token normalizes s into the canonical comparable form: trimmed, NFKC-folded,
// upper-cased.
func Token(s string) string {
	trimmed := strings.TrimSpace(s)
	folded := norm.NFKC.String(trimmed)
	return strings.ToUpper(folded)
}
