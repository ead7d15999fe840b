package importer

// Record shapes of the source export, one JSON object per line. The
// numeric ids are only meaningful within the export itself; slugs are
// the durable keys.

type CollectionRecord struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type CategoryRecord struct {
	Name         string `json:"name"`
	Slug         string `json:"slug"`
	CollectionID int64  `json:"collection_id"`
	ImageURL     string `json:"image_url"`
}

type SubcollectionRecord struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CategorySlug string `json:"category_slug"`
}

type SubcategoryRecord struct {
	Name            string `json:"name"`
	Slug            string `json:"slug"`
	SubcollectionID int64  `json:"subcollection_id"`
	ImageURL        string `json:"image_url"`
}

type ProductRecord struct {
	Slug            string  `json:"slug"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	Price           float64 `json:"price"`
	SubcategorySlug string  `json:"subcategory_slug"`
	ImageURL        string  `json:"image_url"`
}
