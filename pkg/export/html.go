package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
)

// HTML renders a self-contained index page. Multi-line fields are treated
// as markdown, converted with goldmark, and sanitized with bluemonday
// before they reach the template.
type HTML struct {
	once     sync.Once
	initErr  error
	tpl      *pongo2.Template
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
}

// NewHTML constructs the html exporter using the embedded template.
func NewHTML() *HTML {
	return &HTML{}
}

// Name returns the registry identifier.
func (h *HTML) Name() string {
	return "html"
}

type recordView struct {
	Title               string
	Difficulty          string
	Path                string
	DescriptionHTML     string
	ExampleHTML         string
	ExpectedOutcomeHTML string
	NotesHTML           string
}

type subcategoryView struct {
	Name    string
	Records []recordView
}

type categoryView struct {
	Name          string
	Subcategories []subcategoryView
}

// Export renders the index page.
func (h *HTML) Export(ctx context.Context, result *catalog.Result, opts Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, errors.New("export: result is required")
	}
	if err := h.initialise(); err != nil {
		return nil, err
	}

	title := opts.Title
	if title == "" {
		title = defaultIndexTitle
	}

	categories, err := h.buildViews(result)
	if err != nil {
		return nil, err
	}

	data := pongo2.Context{
		"title":      title,
		"categories": categories,
	}
	if opts.IncludeIssues {
		issues := make([]string, 0, len(result.Issues))
		for _, issue := range result.Issues {
			issues = append(issues, issue.String())
		}
		data["issues"] = issues
	}

	out, err := h.tpl.ExecuteBytes(data)
	if err != nil {
		return nil, fmt.Errorf("export: execute html template: %w", err)
	}
	return out, nil
}

func (h *HTML) initialise() error {
	h.once.Do(func() {
		set := pongo2.NewSet("promptstore", pongo2.NewFSLoader(TemplatesFS()))
		tpl, err := set.FromFile("index.html.tpl")
		if err != nil {
			h.initErr = fmt.Errorf("export: load html template: %w", err)
			return
		}
		h.tpl = tpl
		h.markdown = goldmark.New()
		h.policy = bluemonday.UGCPolicy()
	})
	return h.initErr
}

func (h *HTML) buildViews(result *catalog.Result) ([]categoryView, error) {
	var categories []categoryView
	for _, categoryName := range result.Categories() {
		category := categoryView{Name: categoryName}
		for _, subcategoryName := range result.Subcategories(categoryName) {
			subcategory := subcategoryView{Name: subcategoryName}
			for _, record := range result.ByCategory(categoryName) {
				if !strings.EqualFold(record.Subcategory, subcategoryName) {
					continue
				}
				view, err := h.buildRecord(record)
				if err != nil {
					return nil, err
				}
				subcategory.Records = append(subcategory.Records, view)
			}
			category.Subcategories = append(category.Subcategories, subcategory)
		}
		categories = append(categories, category)
	}
	return categories, nil
}

func (h *HTML) buildRecord(record template.Template) (recordView, error) {
	view := recordView{
		Title:      record.Title,
		Difficulty: record.Difficulty,
		Path:       record.Path,
	}

	fields := []struct {
		source string
		target *string
	}{
		{record.Description, &view.DescriptionHTML},
		{record.Example, &view.ExampleHTML},
		{record.ExpectedOutcome, &view.ExpectedOutcomeHTML},
		{record.Notes, &view.NotesHTML},
	}
	for _, field := range fields {
		if strings.TrimSpace(field.source) == "" {
			continue
		}
		rendered, err := h.renderMarkdown(field.source)
		if err != nil {
			return recordView{}, fmt.Errorf("export: render %s: %w", record.Path, err)
		}
		*field.target = rendered
	}

	return view, nil
}

func (h *HTML) renderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return string(h.policy.SanitizeBytes(buf.Bytes())), nil
}
