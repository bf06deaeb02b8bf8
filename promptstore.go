// Package promptstore loads, validates, and exposes a directory tree of
// prompt template documents. The heavy lifting lives in pkg/catalog and
// pkg/template; this package re-exports the common entry points so most
// callers need a single import.
package promptstore

import (
	"context"

	"github.com/goliatone/go-promptstore/internal/store/loader"
	"github.com/goliatone/go-promptstore/internal/store/parser"
	"github.com/goliatone/go-promptstore/pkg/catalog"
	"github.com/goliatone/go-promptstore/pkg/template"
)

// Template is one prompt template record.
type Template = template.Template

// Result is the outcome of one catalog load.
type Result = catalog.Result

// Issue records one problem found while loading the store.
type Issue = catalog.Issue

// Option customises catalog construction.
type Option = catalog.Option

// NewCatalog exposes the catalog constructor from the top-level module.
func NewCatalog(options ...Option) *catalog.Catalog {
	return catalog.New(options...)
}

// Load walks root with a default catalog and returns every valid record
// plus the per-document issues. It is the simplest entry point for
// callers that just want the templates.
func Load(ctx context.Context, root string, options ...Option) (*Result, error) {
	return catalog.New(options...).Load(ctx, root)
}

// NewLoader constructs the built-in document loader from loader options.
func NewLoader(options ...template.LoaderOption) template.Loader {
	return loader.New(template.NewLoaderOptions(options...))
}

// NewParser constructs the built-in document parser from parser options.
func NewParser(options ...template.ParserOption) template.Parser {
	return parser.New(template.NewParserOptions(options...))
}

// WithStrictPlacement re-exports the catalog option most callers reach
// for when directory layout must agree with document fields.
func WithStrictPlacement() Option {
	return catalog.WithStrictPlacement()
}
