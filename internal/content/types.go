// Package content provides the entity persistence layer consumed by the
// bulk importer. Each Create* method validates nothing beyond what the
// database enforces; field validation happens in the importer package.
package content

// StoreCreate is the create request for an affiliate store.
type StoreCreate struct {
	Name       string
	BaseURL    string
	FaviconURL string
}

// ProductCreate is the create request for a product.
type ProductCreate struct {
	Name          string
	StoreIDs      []int32
	AffiliateURLs []string
	SEOKeyword    string
	Rating        *float64
}

// ArticleCreate is the create request for an article.
type ArticleCreate struct {
	Title               string
	Slug                string
	CategoriesIDList    []int32
	AuthorID            *int32
	Status              string
	SEOKeywords         []string
	MetaTitle           string
	MetaDescription     string
	MainImageURL        string
	BuyersGuideImageURL string
	ProductsIDList      []int32
}

// PromptCreate is the create request for an AI prompt template.
type PromptCreate struct {
	Name    string
	Type    string
	Subtype string
	Text    string
}
