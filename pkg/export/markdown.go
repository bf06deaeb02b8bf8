package export

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
)

const defaultIndexTitle = "Prompt Template Catalog"

// Markdown renders a category/subcategory index suitable for README-style
// browsing.
type Markdown struct{}

// NewMarkdown constructs the markdown exporter.
func NewMarkdown() *Markdown {
	return &Markdown{}
}

// Name returns the registry identifier.
func (m *Markdown) Name() string {
	return "markdown"
}

// Export renders the result grouped by category, then subcategory, in the
// result's stable order.
func (m *Markdown) Export(ctx context.Context, result *catalog.Result, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("export: result is required")
	}

	title := opts.Title
	if title == "" {
		title = defaultIndexTitle
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", title)

	for _, category := range result.Categories() {
		fmt.Fprintf(&sb, "\n## %s\n", category)
		for _, subcategory := range result.Subcategories(category) {
			fmt.Fprintf(&sb, "\n### %s\n\n", subcategory)
			for _, record := range result.ByCategory(category) {
				if !strings.EqualFold(record.Subcategory, subcategory) {
					continue
				}
				writeRecord(&sb, record)
			}
		}
	}

	if opts.IncludeIssues && len(result.Issues) > 0 {
		sb.WriteString("\n## Load issues\n\n")
		for _, issue := range result.Issues {
			fmt.Fprintf(&sb, "- `%s`\n", issue.String())
		}
	}

	return []byte(sb.String()), nil
}

func writeRecord(sb *strings.Builder, record template.Template) {
	fmt.Fprintf(sb, "- **%s**", record.Title)
	if record.Difficulty != "" {
		fmt.Fprintf(sb, " _(%s)_", record.Difficulty)
	}
	fmt.Fprintf(sb, " - `%s`\n", record.Path)
	if summary := firstLine(record.Description); summary != "" {
		fmt.Fprintf(sb, "  %s\n", summary)
	}
}

func firstLine(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}
	if idx := strings.IndexByte(trimmed, '\n'); idx >= 0 {
		trimmed = strings.TrimSpace(trimmed[:idx])
	}
	return trimmed
}
