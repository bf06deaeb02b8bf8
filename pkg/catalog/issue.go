package catalog

import (
	"fmt"
	"strings"
)

// IssueKind classifies why a document (or one of its segments) was
// excluded from, or flagged against, the result set.
type IssueKind string

const (
	// IssueRead marks a file that could not be read.
	IssueRead IssueKind = "read"

	// IssueParse marks a segment whose text could not be decomposed into
	// the expected key/value structure.
	IssueParse IssueKind = "parse"

	// IssueSchema marks a segment missing required fields.
	IssueSchema IssueKind = "schema"

	// IssuePlacement marks a segment whose category or subcategory fields
	// disagree with the directory it lives in. Advisory unless the catalog
	// runs with strict placement.
	IssuePlacement IssueKind = "placement"
)

// WholeFile is the Segment value for issues that concern a file rather
// than one segment within it.
const WholeFile = -1

// Issue records one problem found while loading the store.
type Issue struct {
	// Path is the document location relative to the load root.
	Path string

	// Segment is the zero-based segment index, or WholeFile.
	Segment int

	// Kind classifies the failure.
	Kind IssueKind

	// Fields names the offending keys for schema and placement issues.
	Fields []string

	// Err carries the underlying error.
	Err error
}

// Reason returns a human-readable description without the path prefix.
func (i Issue) Reason() string {
	if i.Err != nil {
		return i.Err.Error()
	}
	if len(i.Fields) > 0 {
		return fmt.Sprintf("%s issue: %s", i.Kind, strings.Join(i.Fields, ", "))
	}
	return string(i.Kind) + " issue"
}

// String renders the issue with its location for logs and lint output.
func (i Issue) String() string {
	location := i.Path
	if i.Segment != WholeFile {
		location = fmt.Sprintf("%s#%d", i.Path, i.Segment)
	}
	return location + ": " + i.Reason()
}
