package content

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the interface for database operations.
// Satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// Store persists entities in PostgreSQL.
type Store struct {
	db DBTX
}

// NewStore creates a Store backed by a pgx pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{db: pool}
}

// CreateStore inserts a new affiliate store record.
func (s *Store) CreateStore(ctx context.Context, req StoreCreate) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO stores (name, base_url, favicon_url) VALUES ($1, $2, $3)`,
		req.Name, req.BaseURL, nullIfEmpty(req.FaviconURL),
	)
	if err != nil {
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// CreateProduct inserts a new product record.
func (s *Store) CreateProduct(ctx context.Context, req ProductCreate) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO products (name, store_ids, affiliate_urls, seo_keyword, rating)
		 VALUES ($1, $2, $3, $4, $5)`,
		req.Name, req.StoreIDs, req.AffiliateURLs, nullIfEmpty(req.SEOKeyword), req.Rating,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// CreateArticle inserts a new article record.
func (s *Store) CreateArticle(ctx context.Context, req ArticleCreate) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO articles
		   (title, slug, categories_id_list, author_id, status, seo_keywords,
		    meta_title, meta_description, main_image_url, buyers_guide_image_url,
		    products_id_list)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		req.Title, req.Slug, req.CategoriesIDList, req.AuthorID, req.Status,
		req.SEOKeywords, nullIfEmpty(req.MetaTitle), nullIfEmpty(req.MetaDescription),
		nullIfEmpty(req.MainImageURL), nullIfEmpty(req.BuyersGuideImageURL),
		req.ProductsIDList,
	)
	if err != nil {
		return fmt.Errorf("insert article: %w", err)
	}
	return nil
}

// CreatePrompt inserts a new prompt record.
func (s *Store) CreatePrompt(ctx context.Context, req PromptCreate) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO prompts (name, type, subtype, text) VALUES ($1, $2, $3, $4)`,
		req.Name, req.Type, req.Subtype, req.Text,
	)
	if err != nil {
		return fmt.Errorf("insert prompt: %w", err)
	}
	return nil
}

// nullIfEmpty maps "" to NULL so optional columns stay NULL instead of
// accumulating empty strings.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
