package schema

// CatalogImageTable represents the 'catalog.image' table
type CatalogImageTable struct {
	Table     string
	ID        string
	Filename  string
	Path      string
	CreatedBy string
	CreatedAt string
}

// CatalogImage is the schema definition for catalog.image
var CatalogImage = CatalogImageTable{
	Table:     "catalog.image",
	ID:        "id",
	Filename:  "filename",
	Path:      "path",
	CreatedBy: "createdby",
	CreatedAt: "createdat",
}

func (t CatalogImageTable) Columns() []string {
	return []string{t.ID, t.Filename, t.Path, t.CreatedBy, t.CreatedAt}
}
