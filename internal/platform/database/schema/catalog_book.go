package schema

// CatalogBookTable represents the 'catalog.book' table
type CatalogBookTable struct {
	Table              string
	ID                 string
	Title              string
	TitleNoAccent      string
	Description        string
	Price              string
	ImageIDs           string
	CategoryID         string
	PublisherID        string
	AuthorID           string
	Availability       string
	StockCount         string
	SalesCount         string
	Status             string
	AverageRating      string
	TotalReviews       string
	RatingDistribution string
	CreatedAt          string
	UpdatedAt          string
}

// CatalogBook is the schema definition for catalog.book
var CatalogBook = CatalogBookTable{
	Table:              "catalog.book",
	ID:                 "id",
	Title:              "title",
	TitleNoAccent:      "titlenoaccent",
	Description:        "description",
	Price:              "price",
	ImageIDs:           "imageids",
	CategoryID:         "categoryid",
	PublisherID:        "publisherid",
	AuthorID:           "authorid",
	Availability:       "availability",
	StockCount:         "stockcount",
	SalesCount:         "salescount",
	Status:             "status",
	AverageRating:      "averagerating",
	TotalReviews:       "totalreviews",
	RatingDistribution: "ratingdistribution",
	CreatedAt:          "createdat",
	UpdatedAt:          "updatedat",
}

func (t CatalogBookTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.TitleNoAccent, t.Description, t.Price, t.ImageIDs,
		t.CategoryID, t.PublisherID, t.AuthorID, t.Availability, t.StockCount, t.SalesCount,
		t.Status, t.AverageRating, t.TotalReviews, t.RatingDistribution, t.CreatedAt, t.UpdatedAt,
	}
}
