package catalog

import (
	"sort"
	"strings"

	"github.com/goliatone/go-promptstore/pkg/template"
)

// Result is the outcome of one load: every record that passed validation
// plus the issues recorded along the way. Partial success is deliberate;
// callers decide whether a non-empty issue list is acceptable.
type Result struct {
	Templates []template.Template
	Issues    []Issue
}

// Clean reports whether the load produced no issues.
func (r *Result) Clean() bool {
	return r == nil || len(r.Issues) == 0
}

// Len returns the number of valid records.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Templates)
}

// Categories returns the distinct category values present in the result,
// sorted.
func (r *Result) Categories() []string {
	return r.distinct(func(t template.Template) string { return t.Category })
}

// Subcategories returns the distinct subcategory values within a category,
// sorted. An empty category matches every record.
func (r *Result) Subcategories(category string) []string {
	return r.distinct(func(t template.Template) string {
		if category != "" && !strings.EqualFold(t.Category, category) {
			return ""
		}
		return t.Subcategory
	})
}

// ByCategory returns the records carrying the given category, preserving
// load order.
func (r *Result) ByCategory(category string) []template.Template {
	if r == nil {
		return nil
	}
	var out []template.Template
	for _, t := range r.Templates {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out
}

// Find returns the first record whose title matches, case-insensitively.
func (r *Result) Find(title string) (template.Template, bool) {
	if r == nil {
		return template.Template{}, false
	}
	for _, t := range r.Templates {
		if strings.EqualFold(t.Title, title) {
			return t, true
		}
	}
	return template.Template{}, false
}

// ByPath returns the records loaded from the given root-relative path.
func (r *Result) ByPath(path string) []template.Template {
	if r == nil {
		return nil
	}
	var out []template.Template
	for _, t := range r.Templates {
		if t.Path == path {
			out = append(out, t)
		}
	}
	return out
}

func (r *Result) distinct(key func(template.Template) string) []string {
	if r == nil {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, t := range r.Templates {
		value := key(t)
		if value == "" {
			continue
		}
		normalized := strings.ToLower(value)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}

// sortResult fixes the ordering to path, then segment, so identical
// directory snapshots load identically.
func sortResult(res *Result) {
	sort.SliceStable(res.Templates, func(i, j int) bool {
		a, b := res.Templates[i], res.Templates[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Segment < b.Segment
	})
	sort.SliceStable(res.Issues, func(i, j int) bool {
		a, b := res.Issues[i], res.Issues[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		return a.Segment < b.Segment
	})
}
