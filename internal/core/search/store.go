// Copyright (c) 2026 Catalog. All rights reserved.

package search

import "context"

// Store executes a compiled [Plan] against the article index. It is the
// façade's only external collaborator on a cache miss.
type Store interface {
	Count(ctx context.Context, plan Plan) (int, error)
	List(ctx context.Context, plan Plan) ([]string, error)
}
