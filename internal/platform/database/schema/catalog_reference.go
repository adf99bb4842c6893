package schema

// CatalogReferenceTable describes the shared shape of the author, category and
// publisher tables. Attributes lists the kind-specific text columns in the
// order they are scanned.
type CatalogReferenceTable struct {
	Table      string
	ID         string
	Name       string
	Attributes []string
	CreatedAt  string
	UpdatedAt  string
}

// CatalogAuthor is the schema definition for catalog.author
var CatalogAuthor = CatalogReferenceTable{
	Table:      "catalog.author",
	ID:         "id",
	Name:       "name",
	Attributes: []string{"biography"},
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// CatalogCategory is the schema definition for catalog.category
var CatalogCategory = CatalogReferenceTable{
	Table:      "catalog.category",
	ID:         "id",
	Name:       "name",
	Attributes: []string{"description"},
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

// CatalogPublisher is the schema definition for catalog.publisher
var CatalogPublisher = CatalogReferenceTable{
	Table:      "catalog.publisher",
	ID:         "id",
	Name:       "name",
	Attributes: []string{"address", "contact"},
	CreatedAt:  "createdat",
	UpdatedAt:  "updatedat",
}

func (t CatalogReferenceTable) Columns() []string {
	columns := []string{t.ID, t.Name}
	columns = append(columns, t.Attributes...)
	return append(columns, t.CreatedAt, t.UpdatedAt)
}
