package importer

import (
	"context"
	"strconv"

	"github.com/contentdesk/cms-admin/internal/content"
)

// articleImporter imports articles. Required columns: title, slug.
// Optional: seo_keywords, categories_id_list, products_id_list,
// author_id, status (defaults to draft), meta_title, meta_description,
// main_image_url, buyers_guide_image_url, upload_to_wordpress.
type articleImporter struct {
	creator EntityCreator
	images  ImageUploader
}

func (imp *articleImporter) ProcessEntry(ctx context.Context, row Row) (Status, error) {
	title, _ := trimmed(row, "title")
	if title == "" {
		return failRow("Missing or empty title column")
	}
	slug, _ := trimmed(row, "slug")
	if slug == "" {
		return failRow("Missing or empty slug column")
	}

	req := content.ArticleCreate{
		Title:  title,
		Slug:   slug,
		Status: "draft",
	}

	if raw, _ := trimmed(row, "seo_keywords"); raw != "" {
		req.SEOKeywords = splitList(raw)
	}
	if raw, _ := trimmed(row, "categories_id_list"); raw != "" {
		req.CategoriesIDList = splitIntList(raw)
	}
	if raw, _ := trimmed(row, "products_id_list"); raw != "" {
		req.ProductsIDList = splitIntList(raw)
	}
	if raw, _ := trimmed(row, "author_id"); isDigits(raw) {
		if n, err := strconv.ParseInt(raw, 10, 32); err == nil {
			id := int32(n)
			req.AuthorID = &id
		}
	}
	if status, _ := trimmed(row, "status"); status != "" {
		req.Status = status
	}
	req.MetaTitle, _ = trimmed(row, "meta_title")
	req.MetaDescription, _ = trimmed(row, "meta_description")
	req.MainImageURL, _ = trimmed(row, "main_image_url")
	req.BuyersGuideImageURL, _ = trimmed(row, "buyers_guide_image_url")

	if boolToggle(row, "upload_to_wordpress") && imp.images != nil {
		if req.MainImageURL != "" {
			hosted, err := imp.images.UploadImage(ctx, req.MainImageURL)
			if err != nil {
				return StatusFailed, err
			}
			req.MainImageURL = hosted
		}
		if req.BuyersGuideImageURL != "" {
			hosted, err := imp.images.UploadImage(ctx, req.BuyersGuideImageURL)
			if err != nil {
				return StatusFailed, err
			}
			req.BuyersGuideImageURL = hosted
		}
	}

	if err := imp.creator.CreateArticle(ctx, req); err != nil {
		return StatusFailed, err
	}
	return StatusSuccess, nil
}
