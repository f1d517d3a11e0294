package schema

// PostedArticleTagTable represents the 'posted_articles_tags' join table.
type PostedArticleTagTable struct {
	Table     string
	ArticleID string
	TagID     string
}

// PostedArticleTag is the schema definition for posted_articles_tags.
var PostedArticleTag = PostedArticleTagTable{
	Table:     "posted_articles_tags",
	ArticleID: "article_id",
	TagID:     "tag_id",
}

func (t PostedArticleTagTable) Columns() []string {
	return []string{t.ArticleID, t.TagID}
}
