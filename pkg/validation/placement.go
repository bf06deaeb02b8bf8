package validation

import (
	"fmt"
	"path"
	"strings"

	"github.com/goliatone/go-promptstore/pkg/template"
)

// PlacementError reports a mismatch between a record's category or
// subcategory fields and the directory it was loaded from. The directory
// layout encodes the same information redundantly, so disagreement usually
// means one side is stale.
type PlacementError struct {
	Path     string
	Field    string
	Document string
	Layout   string
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("%s %q does not match directory %q", e.Field, e.Document, e.Layout)
}

// CheckPlacement compares the record's category and subcategory against
// the walk-relative path it was found under (category/subcategory/name).
// Paths too shallow to encode a layout are skipped: the store does not
// require the conventional tree to function. Comparison is
// case-insensitive.
func CheckPlacement(record template.Template, relPath string) []*PlacementError {
	dir := path.Dir(path.Clean(relPath))
	if dir == "." || dir == "/" {
		return nil
	}

	segments := strings.Split(dir, "/")
	var errs []*PlacementError

	layoutCategory := segments[0]
	if record.Category != "" && !strings.EqualFold(record.Category, layoutCategory) {
		errs = append(errs, &PlacementError{
			Path:     relPath,
			Field:    template.FieldCategory,
			Document: record.Category,
			Layout:   layoutCategory,
		})
	}

	if len(segments) > 1 {
		layoutSubcategory := segments[1]
		if record.Subcategory != "" && !strings.EqualFold(record.Subcategory, layoutSubcategory) {
			errs = append(errs, &PlacementError{
				Path:     relPath,
				Field:    template.FieldSubcategory,
				Document: record.Subcategory,
				Layout:   layoutSubcategory,
			})
		}
	}

	return errs
}
