package importer

import (
	"context"
	"strconv"

	"github.com/contentdesk/cms-admin/internal/content"
)

// productImporter imports products. Required columns: name, store_ids
// (comma-separated integers), affiliate_urls (comma-separated URLs).
// Optional: seo_keyword, rating.
type productImporter struct {
	creator EntityCreator
}

func (imp *productImporter) ProcessEntry(ctx context.Context, row Row) (Status, error) {
	name, _ := trimmed(row, "name")
	if name == "" {
		return failRow("Missing or empty name column")
	}

	storeIDsRaw, hasStoreIDs := trimmed(row, "store_ids")
	if !hasStoreIDs {
		return failRow("Missing store_ids column")
	}
	if storeIDsRaw == "" {
		return failRow("No store_ids provided")
	}

	affiliateURLsRaw, _ := trimmed(row, "affiliate_urls")
	if affiliateURLsRaw == "" {
		return failRow("Missing or empty affiliate_urls column")
	}

	storeIDs := splitIntList(storeIDsRaw)
	if len(storeIDs) == 0 {
		return failRow("Invalid store_ids format or empty list")
	}
	affiliateURLs := splitList(affiliateURLsRaw)
	if len(affiliateURLs) == 0 {
		return failRow("Invalid affiliate_urls format or empty list")
	}

	req := content.ProductCreate{
		Name:          name,
		StoreIDs:      storeIDs,
		AffiliateURLs: affiliateURLs,
	}
	if kw, _ := trimmed(row, "seo_keyword"); kw != "" {
		req.SEOKeyword = kw
	}
	if raw, _ := trimmed(row, "rating"); raw != "" {
		rating, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return failRow("Invalid rating value: %s", raw)
		}
		req.Rating = &rating
	}

	if err := imp.creator.CreateProduct(ctx, req); err != nil {
		return StatusFailed, err
	}
	return StatusSuccess, nil
}
