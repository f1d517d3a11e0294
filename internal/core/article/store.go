// Copyright (c) 2026 Catalog. All rights reserved.

package article

import "context"

// Repository defines the data access contract for articles. Set and Delete
// return the list of normalized tags whose membership changed, so the
// caller knows exactly which cache entries to invalidate.
type Repository interface {
	// Set upserts an article by id, replacing its tag assignments with
	// tags (already normalized). It returns the union of inserted and
	// removed tags.
	Set(ctx context.Context, id, postDate, updateDate string, tags []string) (changedTags []string, err error)

	// Delete removes an article and its tag assignments, returning the
	// tags it carried immediately before deletion.
	Delete(ctx context.Context, id string) (removedTags []string, err error)
}
