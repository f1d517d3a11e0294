package schema

// PostedArticleTable represents the 'posted_articles' table.
type PostedArticleTable struct {
	Table      string
	ID         string
	PostDate   string
	UpdateDate string
}

// PostedArticle is the schema definition for posted_articles.
var PostedArticle = PostedArticleTable{
	Table:      "posted_articles",
	ID:         "id",
	PostDate:   "post_date",
	UpdateDate: "update_date",
}

func (t PostedArticleTable) Columns() []string {
	return []string{t.ID, t.PostDate, t.UpdateDate}
}
