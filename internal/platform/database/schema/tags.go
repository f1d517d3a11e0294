package schema

// TagTable represents the 'tags' table.
type TagTable struct {
	Table    string
	ID       string
	OrgName  string
	NormName string
}

// Tag is the schema definition for tags.
var Tag = TagTable{
	Table:    "tags",
	ID:       "id",
	OrgName:  "org_name",
	NormName: "norm_name",
}

func (t TagTable) Columns() []string {
	return []string{t.ID, t.OrgName, t.NormName}
}
