package template

import (
	"context"
	"strings"
)

// DefaultSeparator is the literal token that splits concatenated template
// records within a single document.
const DefaultSeparator = "---"

// Segment is the outcome of parsing one separated piece of a document.
// Exactly one of Template or Err is meaningful: when Err is non-nil the
// segment failed structurally and Template holds its zero value.
type Segment struct {
	// Index is the zero-based position of the segment within the document.
	Index int

	// Template is the decoded record. Provenance fields are left for the
	// caller to fill in since the parser does not know the walk-relative
	// path.
	Template Template

	// Err reports a structural parse failure local to this segment.
	Err error
}

// Parser decomposes a document into template records. A structural failure
// in one segment must not fail sibling segments; only an empty payload or
// a cancelled context is a document-level error.
type Parser interface {
	Parse(ctx context.Context, doc Document) ([]Segment, error)
}

// ParserOptions configures parsing behaviour.
type ParserOptions struct {
	// Separator overrides the document separator token. Empty selects
	// DefaultSeparator. The token matches only when it occupies a line on
	// its own.
	Separator string
}

// ParserOption mutates ParserOptions prior to construction.
type ParserOption func(*ParserOptions)

// WithSeparator overrides the separator token used when splitting
// concatenated documents.
func WithSeparator(token string) ParserOption {
	return func(opts *ParserOptions) {
		trimmed := strings.TrimSpace(token)
		if trimmed != "" {
			opts.Separator = trimmed
		}
	}
}

// NewParserOptions applies a set of ParserOption values and returns the
// resulting configuration.
func NewParserOptions(options ...ParserOption) ParserOptions {
	cfg := ParserOptions{Separator: DefaultSeparator}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	return cfg
}
