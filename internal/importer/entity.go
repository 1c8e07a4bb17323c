package importer

import (
	"context"
	"fmt"

	"github.com/contentdesk/cms-admin/internal/content"
)

// EntityImporter validates one raw row and executes the corresponding
// create operation. Implementations return StatusFailed with a non-nil
// error describing the row problem; they never panic and never let a
// collaborator failure escape.
type EntityImporter interface {
	ProcessEntry(ctx context.Context, row Row) (Status, error)
}

// EntityCreator is the persistence collaborator: given a validated
// create request, persist the entity or fail. Implemented by
// content.Store; tests substitute stubs.
type EntityCreator interface {
	CreateStore(ctx context.Context, req content.StoreCreate) error
	CreateProduct(ctx context.Context, req content.ProductCreate) error
	CreateArticle(ctx context.Context, req content.ArticleCreate) error
	CreatePrompt(ctx context.Context, req content.PromptCreate) error
}

// ImageUploader is the optional side-effect collaborator toggled per
// row by the upload_to_wordpress column: it re-hosts a source image and
// returns the hosted URL.
type ImageUploader interface {
	UploadImage(ctx context.Context, sourceURL string) (string, error)
}

// newImporters builds the entity-type dispatch table. The set of keys
// is the set of valid entity_type values for task creation.
func newImporters(creator EntityCreator, images ImageUploader) map[string]EntityImporter {
	return map[string]EntityImporter{
		"store":   &storeImporter{creator: creator, images: images},
		"product": &productImporter{creator: creator},
		"article": &articleImporter{creator: creator, images: images},
		"prompt":  &promptImporter{creator: creator},
	}
}

// EntityTypes returns the entity type keys accepted at task creation.
func EntityTypes() []string {
	return []string{"article", "product", "prompt", "store"}
}

// failRow wraps a row-validation message as a failed outcome.
func failRow(format string, args ...any) (Status, error) {
	return StatusFailed, fmt.Errorf(format, args...)
}
