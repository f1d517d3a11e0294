// Copyright (c) 2026 Catalog. All rights reserved.

/*
Package article manages posted articles and their tag assignments.

It is the write side of the tag-search system: every create, update, or
delete here is what makes the [search] package's cached query results
eventually need invalidating. The repository layer never talks to the
cache directly — it reports which tags changed, and [Service] takes that
changed-tag list and invalidates the affected entries through a
[search.Facade].
*/
package article

import "time"

// Article is a posted article identified by its CHAR(12) id.
type Article struct {
	ID         string    `json:"id"`
	PostDate   string    `json:"post_date"`
	UpdateDate string    `json:"update_date"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldID         = "id"
	FieldPostDate   = "post_date"
	FieldUpdateDate = "update_date"
	FieldTags       = "tags"
)
