package export

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
)

// JSON dumps the result for downstream tools.
type JSON struct{}

// NewJSON constructs the json exporter.
func NewJSON() *JSON {
	return &JSON{}
}

// Name returns the registry identifier.
func (j *JSON) Name() string {
	return "json"
}

// jsonDocument is the wire shape of an export. Issues flatten to path and
// reason pairs so consumers do not need the catalog's error types.
type jsonDocument struct {
	Title     string              `json:"title,omitempty"`
	Templates []template.Template `json:"templates"`
	Issues    []jsonIssue         `json:"issues,omitempty"`
}

type jsonIssue struct {
	Path string `json:"path"`

	// Segment is always emitted: 0 is a real first-segment index and -1
	// marks whole-file issues.
	Segment int      `json:"segment"`
	Kind    string   `json:"kind"`
	Fields  []string `json:"fields,omitempty"`
	Reason  string   `json:"reason"`
}

// Export marshals the result with stable ordering inherited from the
// load.
func (j *JSON) Export(ctx context.Context, result *catalog.Result, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("export: result is required")
	}

	doc := jsonDocument{
		Title:     opts.Title,
		Templates: result.Templates,
	}
	if doc.Templates == nil {
		doc.Templates = []template.Template{}
	}

	if opts.IncludeIssues {
		for _, issue := range result.Issues {
			doc.Issues = append(doc.Issues, jsonIssue{
				Path:    issue.Path,
				Segment: issue.Segment,
				Kind:    string(issue.Kind),
				Fields:  issue.Fields,
				Reason:  issue.Reason(),
			})
		}
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: marshal result: %w", err)
	}
	return data, nil
}
