package importer

import (
	"context"

	"github.com/contentdesk/cms-admin/internal/content"
)

// promptImporter imports AI prompt templates. Required columns: name,
// type, subtype, text.
type promptImporter struct {
	creator EntityCreator
}

func (imp *promptImporter) ProcessEntry(ctx context.Context, row Row) (Status, error) {
	name, _ := trimmed(row, "name")
	if name == "" {
		return failRow("Missing or empty name column")
	}
	promptType, _ := trimmed(row, "type")
	if promptType == "" {
		return failRow("Missing or empty type column")
	}
	subtype, _ := trimmed(row, "subtype")
	if subtype == "" {
		return failRow("Missing or empty subtype column")
	}
	text, _ := trimmed(row, "text")
	if text == "" {
		return failRow("Missing or empty text column")
	}

	req := content.PromptCreate{
		Name:    name,
		Type:    promptType,
		Subtype: subtype,
		Text:    text,
	}

	if err := imp.creator.CreatePrompt(ctx, req); err != nil {
		return StatusFailed, err
	}
	return StatusSuccess, nil
}
