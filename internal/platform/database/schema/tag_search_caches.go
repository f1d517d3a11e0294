package schema

// TagSearchCacheTable represents the 'tag_search_caches' table.
type TagSearchCacheTable struct {
	Table          string
	ID             string
	ExpirationTime string
}

// TagSearchCache is the schema definition for tag_search_caches.
var TagSearchCache = TagSearchCacheTable{
	Table:          "tag_search_caches",
	ID:             "id",
	ExpirationTime: "expiration_time",
}

func (t TagSearchCacheTable) Columns() []string {
	return []string{t.ID, t.ExpirationTime}
}

// TagSearchCacheTagTable represents the 'tag_search_caches_tags' join table.
type TagSearchCacheTagTable struct {
	Table   string
	CacheID string
	TagID   string
}

// TagSearchCacheTag is the schema definition for tag_search_caches_tags.
var TagSearchCacheTag = TagSearchCacheTagTable{
	Table:   "tag_search_caches_tags",
	CacheID: "cache_id",
	TagID:   "tag_id",
}

func (t TagSearchCacheTagTable) Columns() []string {
	return []string{t.CacheID, t.TagID}
}
