package importer

import (
	"context"

	"github.com/contentdesk/cms-admin/internal/content"
)

// storeImporter imports affiliate stores. Required columns: name,
// base_url. Optional: favicon_url (re-hosted when upload_to_wordpress
// is set), upload_to_wordpress.
type storeImporter struct {
	creator EntityCreator
	images  ImageUploader
}

func (imp *storeImporter) ProcessEntry(ctx context.Context, row Row) (Status, error) {
	name, hasName := trimmed(row, "name")
	if !hasName {
		return failRow("Missing name column")
	}
	baseURL, hasBaseURL := trimmed(row, "base_url")
	if !hasBaseURL {
		return failRow("Missing base_url column")
	}
	if name == "" {
		return failRow("Empty name value")
	}
	if baseURL == "" {
		return failRow("Empty base_url value")
	}

	req := content.StoreCreate{
		Name:    name,
		BaseURL: baseURL,
	}

	if boolToggle(row, "upload_to_wordpress") && imp.images != nil {
		if favicon, _ := trimmed(row, "favicon_url"); favicon != "" {
			hosted, err := imp.images.UploadImage(ctx, favicon)
			if err != nil {
				return StatusFailed, err
			}
			req.FaviconURL = hosted
		}
	}

	if err := imp.creator.CreateStore(ctx, req); err != nil {
		return StatusFailed, err
	}
	return StatusSuccess, nil
}
